package domain

import (
	"context"
	"time"
)

// Entry is a deduplicated bibliographic work. Created on first ingest,
// re-ingested entries are matched and updated by Checksum.
type Entry struct {
	EntryID      int32
	Title        string
	Subtitle     string
	Checksum     string
	SearchText   string
	LastIndexed  time.Time
}

// Agent is a creator/author, unique by FullName.
type Agent struct {
	AgentID      int32
	FullName     string
	SearchText   string
	LastModified time.Time
}

// KnownLanguage is the reference table of language codes the harvester
// has seen, append-only; LastModified is set when the code is first
// inserted and is not updated when the code is seen again.
type KnownLanguage struct {
	LanguageCode string
	NativeName   string
	EnglishName  string
	LastModified time.Time
}

// Datasource is one physical manifestation of an Entry on one Site,
// uniquely identified by (SiteID, OAIPMHIdentifier).
type Datasource struct {
	DatasourceID                       int32
	SiteID                             int32
	OAIPMHIdentifier                   string
	EntryID                            int32
	Datestamp                          time.Time
	Description                        string
	YearEdition                        *int32
	YearFirstEdition                   *int32
	Publisher                          string
	ISBN                               string
	URI                                *string
	URILabel                           *string
	ContentType                        *string
	MaterialDescription                string
	ShelfLocationCode                  string
	EditionStatement                   string
	PlaceDateOfPublicationDistribution string
	SearchText                         string
	LastModified                       time.Time
}

// HarvestedRecord is the minimal view C6 needs of a parsed record; it
// is satisfied by *marc.HarvestedRecord without this package importing
// marc, keeping the dependency direction leaf-ward (domain has no
// imports of its own besides context/time).
type HarvestedRecord interface {
	OAIPMHIdentifier() string
	Datestamp() string
	Title() string
	Subtitle() string
	Authors() []string
	Languages() []string
	Description() string
	EditionYears() []int
	Publisher() string
	ISBN() string
	MaterialDescription() string
	ShelfLocationCode() string
	EditionStatement() string
	PlaceDateOfPublicationDistribution() string
	Checksum() string
	ResolvedURI() (uri, label, contentType string, ok bool)
}

// EntryRepository performs the idempotent three-stage upsert described
// in spec §4.6: Entry, then Agents/Languages/Datasource.
type EntryRepository interface {
	InsertHarvestedRecord(ctx context.Context, site Site, rec HarvestedRecord) (entryID int32, err error)
}

// SearchHit is one ranked row of a search response.
type SearchHit struct {
	EntryID int32   `json:"entry_id"`
	Title   string  `json:"title"`
	Rank    float32 `json:"rank"`
}

// FacetItem is one grouped count within a facet list.
type FacetItem struct {
	Count int64  `json:"count"`
	Term  string `json:"term"`
	ID    string `json:"id"`
}

// SearchFacets bundles the three facet breakdowns of spec §4.8.
type SearchFacets struct {
	Library  []FacetItem `json:"library"`
	Creator  []FacetItem `json:"creator"`
	Language []FacetItem `json:"language"`
}

// SearchResult is the full `GET /search` response body.
type SearchResult struct {
	Entries []SearchHit  `json:"entries"`
	Facets  SearchFacets `json:"facets"`
}

// SearchRepository backs the Search Service (C8); implemented against
// the same relational store the harvester writes to.
type SearchRepository interface {
	Search(ctx context.Context, query string) (SearchResult, error)
}
