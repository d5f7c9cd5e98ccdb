package shell

import (
	"net"
	"net/http"
	"time"
)

func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   16 * time.Second,
				KeepAlive: 16 * time.Second,
			}).DialContext,
			MaxIdleConns:          4,
			IdleConnTimeout:       32 * time.Second,
			TLSHandshakeTimeout:   16 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ResponseHeaderTimeout: 64 * time.Second,
		},
	}
}
