// Package oaipmh implements a client for the OAI-PMH v2.0 ListRecords
// verb, generalized from arXiv's metadata-exchange protocol to any
// list-records endpoint: build a request URL, perform the GET, and
// decode the XML envelope into records plus an optional resumption
// token for paging.
package oaipmh

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/paper-app/backend/internal/marc"
)

// MetadataPrefix is transmitted for every site type. Per spec §4.5
// this is deliberately "marc21" even for koha-unimarc sites — an
// upstream misconfiguration we do not "fix"; dialect dispatch happens
// by site type (marc.DialectForSiteType), never by this value.
const MetadataPrefix = "marc21"

// Client speaks the ListRecords verb over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a Client. The default transport timeout is the
// effective request timeout (spec §5): callers that want per-request
// timeouts can pass an *http.Client with one configured.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{httpClient: hc}
}

// Params selects either a resumption request (Token non-empty, in
// which case Set/From are ignored per spec §4.1) or an initial
// request (optional Set and From).
type Params struct {
	BaseURL string
	Set     string
	From    time.Time
	Token   string
}

// BuildURL constructs the fully qualified request URL per spec §4.1.
// If Token is present, only verb, metadataPrefix, and resumptionToken
// are attached — resumption is opaque, so the site-specific set/from
// filters are omitted entirely.
func BuildURL(p Params) (string, error) {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", fmt.Errorf("oaipmh: parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("verb", "ListRecords")
	q.Set("metadataPrefix", MetadataPrefix)
	if p.Token != "" {
		q.Set("resumptionToken", p.Token)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	if p.Set != "" {
		q.Set("set", p.Set)
	}
	if !p.From.IsZero() {
		q.Set("from", p.From.UTC().Format("2006-01-02T15:04:05Z"))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ---------- XML envelope ----------

// Envelope is the top-level OAI-PMH response (spec §4.1).
type Envelope struct {
	XMLName      xml.Name     `xml:"OAI-PMH"`
	ResponseDate string       `xml:"responseDate"`
	Request      string       `xml:"request"`
	Error        *ProtoError  `xml:"error"`
	ListRecords  *ListRecords `xml:"ListRecords"`
}

// ProtoError is a protocol-level error reported inside the envelope —
// as opposed to a transport/HTTP error, which never produces an
// Envelope at all.
type ProtoError struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

// ListRecords holds the page of records and an optional token for
// continuation.
type ListRecords struct {
	ResumptionToken *ResumptionToken `xml:"resumptionToken"`
	Records         []XMLRecord      `xml:"record"`
}

// ResumptionToken carries opaque paging state the client must
// re-present verbatim to continue (spec GLOSSARY).
type ResumptionToken struct {
	Token string `xml:",chardata"`
}

// XMLRecord is one header + metadata body as they appear on the wire.
type XMLRecord struct {
	Header struct {
		Identifier string `xml:"identifier"`
		Datestamp  string `xml:"datestamp"`
		Status     string `xml:"status,attr"`
	} `xml:"header"`
	Metadata struct {
		Record marc.Record `xml:"record"`
	} `xml:"metadata"`
}

// Result is one page of the harvest: the raw records plus whatever
// resumption token the server returned (empty/short tokens signal
// end-of-stream per spec §4.5).
type Result struct {
	Records         []marc.RawRecord
	ResumptionToken string
	ProtoError      *ProtoError
}

// Fetch performs the GET and decodes the XML envelope. Malformed XML
// MUST NOT crash the harvest (spec §4.1): it surfaces as a synthetic
// envelope carrying a protocol error, same as a server-reported one,
// so callers inspect err/Result.ProtoError uniformly. Non-200
// responses are a transport error, distinct from a protocol error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("oaipmh: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oaipmh: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oaipmh: HTTP %d from %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("oaipmh: read response: %w", err)
	}

	var env Envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return &Result{ProtoError: &ProtoError{Code: "invalid-xml", Message: err.Error()}}, nil
	}

	if env.Error != nil {
		return &Result{ProtoError: env.Error}, nil
	}

	if env.ListRecords == nil {
		return &Result{}, nil
	}

	result := &Result{}
	if env.ListRecords.ResumptionToken != nil {
		result.ResumptionToken = env.ListRecords.ResumptionToken.Token
	}
	for _, rec := range env.ListRecords.Records {
		result.Records = append(result.Records, marc.RawRecord{
			Identifier: rec.Header.Identifier,
			Datestamp:  rec.Header.Datestamp,
			Status:     rec.Header.Status,
			Body:       rec.Metadata.Record,
		})
	}
	return result, nil
}
