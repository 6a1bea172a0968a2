// Package fulltext implements C4: for eligible site dialects,
// dereference a record's canonical URI to retrieve a plain-text body.
package fulltext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paper-app/backend/internal/domain"
)

// ErrUnsupported is returned for any site type other than amusewiki.
// Callers treat it as an empty body, not a record-level failure
// (spec §4.4, §7).
var ErrUnsupported = errors.New("fulltext: site type does not support full-text retrieval")

// Fetcher retrieves the plain-text body of amusewiki records by
// dereferencing `{uri}.bare.html`.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher(hc *http.Client) *Fetcher {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{httpClient: hc}
}

// Fetch returns the bare-HTML body for uri on amusewiki sites, and
// ErrUnsupported for every other site type.
func (f *Fetcher) Fetch(ctx context.Context, siteType domain.SiteType, uri string) (string, error) {
	if siteType != domain.SiteTypeAmusewiki {
		return "", ErrUnsupported
	}
	if uri == "" {
		return "", fmt.Errorf("fulltext: no uri to fetch")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+".bare.html", nil)
	if err != nil {
		return "", fmt.Errorf("fulltext: build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fulltext: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fulltext: HTTP %d from %s", resp.StatusCode, uri)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fulltext: read body: %w", err)
	}
	return string(body), nil
}
