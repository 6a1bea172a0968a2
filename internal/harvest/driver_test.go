package harvest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paper-app/backend/internal/domain"
	"github.com/paper-app/backend/internal/marc"
	"github.com/paper-app/backend/pkg/oaipmh"
)

type fakeClient struct {
	pages []*oaipmh.Result
	calls int
}

func (f *fakeClient) Fetch(ctx context.Context, rawURL string) (*oaipmh.Result, error) {
	defer func() { f.calls++ }()
	return f.pages[f.calls], nil
}

type fakePersister struct {
	inserted []string
}

func (f *fakePersister) InsertHarvestedRecord(ctx context.Context, site domain.Site, rec domain.HarvestedRecord) (int32, error) {
	f.inserted = append(f.inserted, rec.OAIPMHIdentifier())
	return int32(len(f.inserted)), nil
}

func TestDriverFollowsResumptionUntilShortToken(t *testing.T) {
	client := &fakeClient{pages: []*oaipmh.Result{
		{Records: []marc.RawRecord{{Identifier: "oai:1"}}, ResumptionToken: "page-2-token"},
		{Records: []marc.RawRecord{{Identifier: "oai:2"}}, ResumptionToken: "x"},
	}}
	persister := &fakePersister{}
	driver := NewDriver(client, persister)

	driver.Run(context.Background(), domain.Site{SiteType: domain.SiteTypeKohaMarc21, BaseURL: "https://example.org/oai"})

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, []string{"oai:1", "oai:2"}, persister.inserted)
}

func TestDriverStopsOnProtocolError(t *testing.T) {
	client := &fakeClient{pages: []*oaipmh.Result{
		{ProtoError: &oaipmh.ProtoError{Code: "noRecordsMatch"}},
	}}
	persister := &fakePersister{}
	driver := NewDriver(client, persister)

	driver.Run(context.Background(), domain.Site{SiteType: domain.SiteTypeAmusewiki, BaseURL: "https://example.org/oai"})

	require.Equal(t, 1, client.calls)
	assert.Empty(t, persister.inserted)
}

func TestDriverStopsOnEmptyEnvelope(t *testing.T) {
	client := &fakeClient{pages: []*oaipmh.Result{{}}}
	persister := &fakePersister{}
	driver := NewDriver(client, persister)

	driver.Run(context.Background(), domain.Site{SiteType: domain.SiteTypeAmusewiki, BaseURL: "https://example.org/oai"})

	assert.Equal(t, 1, client.calls)
	assert.Empty(t, persister.inserted)
}
