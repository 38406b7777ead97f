package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default fetcher settings.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultMaxBodySize  = 32 << 20
	DefaultUserAgent    = "sheetfetch/1.0"
)

// Document is the raw CSV payload returned by one fetch.
type Document struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	Duration    time.Duration
}

// Fetcher retrieves the source document.
type Fetcher interface {
	Fetch(ctx context.Context) (*Document, error)
}

// FetcherConfig holds everything the HTTP fetcher needs. Nothing is read from
// the environment.
type FetcherConfig struct {
	URL         string
	Timeout     time.Duration // 0 means DefaultFetchTimeout
	MaxBodySize int64         // 0 means DefaultMaxBodySize, negative disables the limit
	UserAgent   string
}

// HTTPFetcher issues one GET per call against a fixed URL. It keeps no state
// between calls and is safe for concurrent use.
type HTTPFetcher struct {
	url       string
	maxBody   int64
	userAgent string
	client    *http.Client
}

// NewHTTPFetcher creates a fetcher with its own http.Client.
func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return NewHTTPFetcherWithClient(cfg, &http.Client{Timeout: timeout})
}

// NewHTTPFetcherWithClient creates a fetcher that uses client for transport.
// cfg.Timeout is ignored; the client's own settings apply.
func NewHTTPFetcherWithClient(cfg FetcherConfig, client *http.Client) *HTTPFetcher {
	maxBody := cfg.MaxBodySize
	if maxBody == 0 {
		maxBody = DefaultMaxBodySize
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &HTTPFetcher{
		url:       cfg.URL,
		maxBody:   maxBody,
		userAgent: ua,
		client:    client,
	}
}

// Fetch downloads the source document. A missing URL fails with a
// ConfigurationError before any request is made; every transport or status
// failure is returned as a FetchError. Nothing is retried.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*Document, error) {
	if f.url == "" {
		return nil, &ConfigurationError{Setting: SourceURLSetting, Err: ErrMissingSourceURL}
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{
			URL:        f.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(newLimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode, Err: err}
	}

	return &Document{
		URL:         f.url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		Duration:    time.Since(start),
	}, nil
}
