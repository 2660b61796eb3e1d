package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPStatusError is returned when a remote resource answers with a non-2xx
// status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

type Fetcher struct {
	client *http.Client
	log    *logrus.Logger
}

type FetcherOptions struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	Logger *logrus.Logger
}

func NewFetcher(options *FetcherOptions) *Fetcher {
	f := &Fetcher{}

	f.client = options.Client

	if f.client == nil {
		f.client = http.DefaultClient
	}

	f.log = options.Logger

	return f
}

// Fetch issues a single GET and returns the body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	f.log.WithFields(logrus.Fields{
		"url":   url,
		"bytes": len(body),
	}).Debugf("Fetched in %s", time.Since(start))

	return body, nil
}

// FetchDocument fetches url and parses the body as HTML.
func (f *Fetcher) FetchDocument(ctx context.Context, url string) (Node, error) {
	body, err := f.Fetch(ctx, url)

	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(bytes.NewReader(body))

	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", url, err)
	}

	return doc, nil
}
