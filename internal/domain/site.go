package domain

import (
	"context"
	"time"
)

// SiteType is a closed set of the dialects the harvester understands.
// Do not extend it with inheritance or open registration — C3's field
// extractor dispatches on these three values only.
type SiteType string

const (
	SiteTypeAmusewiki    SiteType = "amusewiki"
	SiteTypeKohaMarc21   SiteType = "koha-marc21"
	SiteTypeKohaUnimarc  SiteType = "koha-unimarc"
)

// Valid reports whether s is one of the three recognized site types.
func (s SiteType) Valid() bool {
	switch s {
	case SiteTypeAmusewiki, SiteTypeKohaMarc21, SiteTypeKohaUnimarc:
		return true
	}
	return false
}

// Site is a remote OAI-PMH endpoint. Read-only to the harvester: only
// the Orchestrator reads it, nothing in this codebase writes to it.
type Site struct {
	SiteID        int32
	LibraryID     int32
	LibraryName   string
	BaseURL       string
	SiteType      SiteType
	LastHarvested *time.Time
}

// SiteRepository lists the sites the Orchestrator should harvest.
type SiteRepository interface {
	ListHarvestable(ctx context.Context) ([]Site, error)
}
