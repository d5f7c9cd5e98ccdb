package shell

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

// GoogleCloudStorageDownloader resolves gs://bucket/object addresses.
type GoogleCloudStorageDownloader struct {
	client *storage.Client
}

func NewGoogleCloudStorageDownloader(client *storage.Client) *GoogleCloudStorageDownloader {
	return &GoogleCloudStorageDownloader{client: client}
}

func (this *GoogleCloudStorageDownloader) Download(ctx context.Context, address url.URL) (io.ReadCloser, error) {
	bucket, object := address.Host, strings.TrimPrefix(address.Path, "/")
	if bucket == "" || object == "" {
		return nil, goerr.New("malformed storage address", goerr.V("url", address.String()), goerr.T(contracts.TagFetch))
	}

	reader, err := this.client.Bucket(bucket).Object(object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, goerr.Wrap(err, "object not found", goerr.V("url", address.String()), goerr.T(contracts.TagFetch))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open object", goerr.V("url", address.String()), goerr.T(contracts.TagFetch))
	}
	return reader, nil
}

func (this *GoogleCloudStorageDownloader) Close() error {
	return this.client.Close()
}
