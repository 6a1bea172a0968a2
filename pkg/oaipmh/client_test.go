package oaipmh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURLInitialRequest(t *testing.T) {
	u, err := BuildURL(Params{BaseURL: "https://example.org/oai", Set: "web"})
	require.NoError(t, err)
	assert.Contains(t, u, "verb=ListRecords")
	assert.Contains(t, u, "metadataPrefix=marc21")
	assert.Contains(t, u, "set=web")
}

func TestBuildURLResumptionOmitsSetAndFrom(t *testing.T) {
	u, err := BuildURL(Params{
		BaseURL: "https://example.org/oai",
		Set:     "web",
		From:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Token:   "abc123",
	})
	require.NoError(t, err)
	assert.Contains(t, u, "resumptionToken=abc123")
	assert.NotContains(t, u, "set=")
	assert.NotContains(t, u, "from=")
}

func TestFetchDecodesListRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<?xml version="1.0"?>
<OAI-PMH>
  <responseDate>2024-01-02T00:00:00Z</responseDate>
  <ListRecords>
    <record>
      <header><identifier>oai:example.org:1</identifier><datestamp>2024-01-01T00:00:00Z</datestamp></header>
      <metadata><record><datafield tag="245"><subfield code="a">A Title</subfield></datafield></record></metadata>
    </record>
    <resumptionToken>tok-2</resumptionToken>
  </ListRecords>
</OAI-PMH>`))
	}))
	defer srv.Close()

	client := NewClient(nil)
	result, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Nil(t, result.ProtoError)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "oai:example.org:1", result.Records[0].Identifier)
	assert.Equal(t, "tok-2", result.ResumptionToken)
}

func TestFetchSurfacesProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<OAI-PMH><responseDate>2024-01-02T00:00:00Z</responseDate><error code="noRecordsMatch">nothing here</error></OAI-PMH>`))
	}))
	defer srv.Close()

	client := NewClient(nil)
	result, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NotNil(t, result.ProtoError)
	assert.Equal(t, "noRecordsMatch", result.ProtoError.Code)
}

func TestFetchMalformedXMLDoesNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not xml at all`))
	}))
	defer srv.Close()

	client := NewClient(nil)
	result, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err, "malformed XML must surface as a protocol error, not a Go error")
	require.NotNil(t, result.ProtoError)
}

func TestFetchNon200IsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(nil)
	_, err := client.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
