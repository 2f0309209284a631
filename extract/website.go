package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// WebFetcher retrieves a page and extracts its visible text.
type WebFetcher struct {
	Client *http.Client
	// MaxBytes bounds the response body read. <= 0 means 10MB.
	MaxBytes int64
}

func (f *WebFetcher) Extract(ctx context.Context, link Link) (string, error) {
	pageURL, err := url.Parse(link.URL)
	if err != nil {
		return "", &FetchError{URL: link.URL, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.URL, nil)
	if err != nil {
		return "", &FetchError{URL: link.URL, Err: err}
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return "", &FetchError{URL: link.URL, Err: wrapCtx(err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: link.URL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}
	max := f.MaxBytes
	if max <= 0 {
		max = 10 * 1024 * 1024
	}
	text, err := readableText(io.LimitReader(resp.Body, max), pageURL)
	if err != nil {
		return "", &ExtractionError{Kind: link.Kind(), Key: link.Key(), Err: err}
	}
	return text, nil
}

func (f *WebFetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}
