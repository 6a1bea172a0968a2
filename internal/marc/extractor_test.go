package marc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paper-app/backend/internal/domain"
)

func df(tag string, subfields ...SubField) DataField {
	return DataField{Tag: tag, SubFields: subfields}
}

func sf(code, text string) SubField {
	return SubField{Code: code, Text: text}
}

func marc21Record() RawRecord {
	return RawRecord{
		Identifier: "oai:example.org:1",
		Datestamp:  "2024-01-02T03:04:05Z",
		Status:     "",
		Body: Record{DataFields: []DataField{
			df("245", sf("a", "The Title")),
			df("246", sf("a", "A Subtitle")),
			df("100", sf("a", "Doe, Jane")),
			df("041", sf("a", "ita")),
			df("264", sf("b", "ACME Press"), sf("c", "1987")),
			df("856", sf("u", "https://other.org/book"), sf("q", "text/html")),
			df("856", sf("u", "https://example.org/book"), sf("q", "text/html"), sf("y", "Read online")),
			df("773", sf("t", "Some Journal"), sf("g", "12")),
		}},
	}
}

func TestHarvestedRecordMarc21Fields(t *testing.T) {
	rec := NewHarvestedRecord(marc21Record(), DialectMarc21, "example.org")

	assert.Equal(t, "The Title", rec.Title())
	assert.Equal(t, "A Subtitle", rec.Subtitle())
	assert.Equal(t, []string{"Doe, Jane"}, rec.Authors())
	assert.Equal(t, []string{"it"}, rec.Languages())
	assert.Equal(t, "ACME Press", rec.Publisher())
	assert.Equal(t, []int{1987}, rec.EditionYears())
}

func TestHarvestedRecordResolvedURIPrefersSameHost(t *testing.T) {
	rec := NewHarvestedRecord(marc21Record(), DialectMarc21, "example.org")

	uri, label, contentType, ok := rec.ResolvedURI()
	require.True(t, ok)
	assert.Equal(t, "https://example.org/book", uri)
	assert.Equal(t, "Read online", label)
	assert.Equal(t, "text/html", contentType)
}

func TestHarvestedRecordResolvedURIFallsBackTo952(t *testing.T) {
	raw := RawRecord{Body: Record{DataFields: []DataField{
		df("952", sf("u", "https://fallback.example/item")),
	}}}
	rec := NewHarvestedRecord(raw, DialectMarc21, "example.org")

	uri, label, contentType, ok := rec.ResolvedURI()
	require.True(t, ok)
	assert.Equal(t, "https://fallback.example/item", uri)
	assert.Empty(t, label)
	assert.Empty(t, contentType)
}

func TestHarvestedRecordUniMarcNeverResolvesURI(t *testing.T) {
	rec := NewHarvestedRecord(RawRecord{}, DialectUniMarc, "example.org")
	_, _, _, ok := rec.ResolvedURI()
	assert.False(t, ok)
}

func TestHarvestedRecordAggregationsDiscardNameless(t *testing.T) {
	raw := RawRecord{Body: Record{DataFields: []DataField{
		df("773", sf("t", "Named Journal"), sf("g", "3")),
		df("773", sf("g", "4")), // no $t, discarded
	}}}
	rec := NewHarvestedRecord(raw, DialectMarc21, "example.org")

	aggs := rec.Aggregations()
	require.Len(t, aggs, 1)
	assert.Equal(t, "Named Journal", aggs[0].Name())
}

func TestHarvestedRecordChecksumStableAndSensitive(t *testing.T) {
	a := NewHarvestedRecord(marc21Record(), DialectMarc21, "example.org")
	b := NewHarvestedRecord(marc21Record(), DialectMarc21, "example.org")
	assert.Equal(t, a.Checksum(), b.Checksum(), "same input must produce the same checksum")

	changed := marc21Record()
	changed.Body.DataFields[0] = df("245", sf("a", "A Different Title"))
	c := NewHarvestedRecord(changed, DialectMarc21, "example.org")
	assert.NotEqual(t, a.Checksum(), c.Checksum(), "changing the title must change the checksum")
}

func TestDialectForSiteType(t *testing.T) {
	assert.Equal(t, DialectUniMarc, DialectForSiteType(domain.SiteTypeKohaUnimarc))
	assert.Equal(t, DialectMarc21, DialectForSiteType(domain.SiteTypeKohaMarc21))
	assert.Equal(t, DialectMarc21, DialectForSiteType(domain.SiteTypeAmusewiki))
}
