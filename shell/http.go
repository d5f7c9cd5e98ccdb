package shell

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

type HTTPDownloader struct {
	client *http.Client
	token  string
	logger *slog.Logger
}

func NewHTTPDownloader(client *http.Client, token string, logger *slog.Logger) *HTTPDownloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPDownloader{client: client, token: token, logger: logger}
}

func (this *HTTPDownloader) Download(ctx context.Context, address url.URL) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, address.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.V("url", address.String()), goerr.T(contracts.TagFetch))
	}
	request.Header.Set("Accept", "application/octet-stream")
	if this.token != "" {
		request.Header.Set("Authorization", "Bearer "+this.token)
	}

	response, err := this.client.Do(request)
	if err != nil {
		return nil, goerr.Wrap(err, "request failed", goerr.V("url", address.String()), goerr.T(contracts.TagFetch))
	}
	if response.StatusCode != http.StatusOK {
		this.dump(response)
		_ = response.Body.Close()
		return nil, goerr.New("unexpected status code",
			goerr.V("url", address.String()),
			goerr.V("status", response.Status),
			goerr.T(contracts.TagFetch))
	}
	return response.Body, nil
}

func (this *HTTPDownloader) dump(response *http.Response) {
	responseDump, _ := httputil.DumpResponse(response, false)
	this.logger.Debug("unexpected status code", slog.String("response", string(responseDump)))
}
