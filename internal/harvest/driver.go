// Package harvest implements C5: the per-site state machine that
// drives the Protocol Client through an initial request, any number of
// resumptions, and submission of each yielded record to Persistence.
package harvest

import (
	"context"
	"log"
	"net/url"

	"github.com/paper-app/backend/internal/domain"
	"github.com/paper-app/backend/internal/marc"
	"github.com/paper-app/backend/pkg/oaipmh"
)

// Client is the subset of the protocol client the driver depends on —
// narrowed to an interface so tests can stub paged responses (spec §8
// property 10).
type Client interface {
	Fetch(ctx context.Context, rawURL string) (*oaipmh.Result, error)
}

// Persister is the subset of Persistence the driver depends on.
type Persister interface {
	InsertHarvestedRecord(ctx context.Context, site domain.Site, rec domain.HarvestedRecord) (int32, error)
}

// Driver runs the harvest state machine for one site.
type Driver struct {
	Client    Client
	Persister Persister
}

func NewDriver(client Client, persister Persister) *Driver {
	return &Driver{Client: client, Persister: persister}
}

// Run drives the Initial → Requesting → Parsing → Emitting → Done
// state machine of spec §4.5 to completion for one site. Transport/
// HTTP errors and envelopes missing ListRecords log and terminate the
// site's task gracefully — partial progress already persisted is kept,
// never rolled back.
func (d *Driver) Run(ctx context.Context, site domain.Site) {
	host := hostOf(site.BaseURL)
	dialect := marc.DialectForSiteType(site.SiteType)

	token := ""
	first := true
	for {
		select {
		case <-ctx.Done():
			log.Printf("harvest[%s]: cancelled", site.BaseURL)
			return
		default:
		}

		var (
			rawURL string
			err    error
		)
		if first {
			rawURL, err = oaipmh.BuildURL(oaipmh.Params{
				BaseURL: site.BaseURL,
				Set:     setFor(site.SiteType),
			})
			first = false
		} else {
			rawURL, err = oaipmh.BuildURL(oaipmh.Params{BaseURL: site.BaseURL, Token: token})
		}
		if err != nil {
			log.Printf("harvest[%s]: build url: %v", site.BaseURL, err)
			return
		}

		result, err := d.Client.Fetch(ctx, rawURL)
		if err != nil {
			log.Printf("harvest[%s]: request failed: %v", site.BaseURL, err)
			return
		}

		if result.ProtoError != nil {
			log.Printf("harvest[%s]: protocol error [%s]: %s", site.BaseURL, result.ProtoError.Code, result.ProtoError.Message)
			return
		}

		if result.Records == nil && result.ResumptionToken == "" {
			log.Printf("harvest[%s]: envelope carried no ListRecords", site.BaseURL)
			return
		}

		for _, raw := range result.Records {
			rec := marc.NewHarvestedRecord(raw, dialect, host)
			if _, err := d.Persister.InsertHarvestedRecord(ctx, site, rec); err != nil {
				log.Printf("harvest[%s]: persist %s: %v", site.BaseURL, raw.Identifier, err)
			}
		}

		// A single-character token (or none) signals end-of-stream —
		// some servers emit a near-empty token rather than omitting
		// it (spec §4.5 rationale).
		if len(result.ResumptionToken) <= 1 {
			return
		}
		token = result.ResumptionToken
	}
}

func setFor(t domain.SiteType) string {
	if t == domain.SiteTypeAmusewiki {
		return "web"
	}
	return ""
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
