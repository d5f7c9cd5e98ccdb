package shell

import (
	"context"
	"io"
	"net/url"

	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

// SchemeRouter dispatches each download to the downloader registered for the
// address scheme.
type SchemeRouter map[string]contracts.Downloader

func (this SchemeRouter) Download(ctx context.Context, address url.URL) (io.ReadCloser, error) {
	downloader, found := this[address.Scheme]
	if !found {
		return nil, goerr.New("unsupported url scheme",
			goerr.V("scheme", address.Scheme),
			goerr.V("url", address.String()),
			goerr.T(contracts.TagFetch))
	}
	return downloader.Download(ctx, address)
}
