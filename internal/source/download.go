package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/codexup/codexup/internal/logging"
)

// newDownloadClient returns an http client retrying once with backoff on a
// transient failure. More than one retry would block the user's workflow, so
// anything past that fails fast.
func newDownloadClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 1
	client.RetryWaitMin = 1 * time.Second
	client.RetryWaitMax = 3 * time.Second
	client.Logger = nil
	return client
}

// DownloadURL downloads the content at url, sending the extra headers along.
// It returns an io.ReadCloser: it is the caller's responsibility to Close it.
func DownloadURL(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	logging.Printf("downloading %q", url)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	response, err := newDownloadClient().Do(req)
	if err != nil {
		return nil, err
	}
	if response.StatusCode == http.StatusTooManyRequests {
		response.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d from %q", ErrRateLimited, response.StatusCode, url)
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("HTTP request failed with status code %d", response.StatusCode)
	}
	return response, nil
}
