package marc

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/paper-app/backend/internal/domain"
)

// Dialect is the closed set of positional conventions a record can
// follow. Extraction dispatches on this value; do not extend it with
// inheritance or open registration (spec §9 Design Notes).
type Dialect int

const (
	DialectMarc21 Dialect = iota
	DialectUniMarc
)

// DialectForSiteType maps a site's recorded type to the dialect its
// records must be parsed with. koha-unimarc records are requested with
// metadataPrefix=marc21 (spec §4.5) but still parsed as UniMarc —
// dispatch is by site type, never by the transmitted prefix.
func DialectForSiteType(t domain.SiteType) Dialect {
	if t == domain.SiteTypeKohaUnimarc {
		return DialectUniMarc
	}
	return DialectMarc21
}

// RawRecord is the header + positional body produced by decoding one
// OAI-PMH <record> element.
type RawRecord struct {
	Identifier string
	Datestamp  string
	Status     string
	Body       Record
}

// HarvestedRecord maps a RawRecord plus the issuing site's dialect and
// host to the semantic accessors spec §4.3 requires. It satisfies
// domain.HarvestedRecord.
type HarvestedRecord struct {
	raw     RawRecord
	dialect Dialect
	host    string
}

// NewHarvestedRecord constructs a HarvestedRecord for one site's
// dialect and hostname (the hostname of the site's base URL, used by
// URI selection and aggregation identifiers).
func NewHarvestedRecord(raw RawRecord, dialect Dialect, host string) *HarvestedRecord {
	return &HarvestedRecord{raw: raw, dialect: dialect, host: host}
}

func (h *HarvestedRecord) IsDeleted() bool { return h.raw.Status == "deleted" }

func (h *HarvestedRecord) OAIPMHIdentifier() string { return h.raw.Identifier }
func (h *HarvestedRecord) Datestamp() string        { return h.raw.Datestamp }

func (h *HarvestedRecord) Identifier() string {
	switch h.dialect {
	case DialectUniMarc:
		return strings.Join(extract(h.raw.Body, "090", "a"), " ")
	default:
		return strings.Join(extract(h.raw.Body, "024", "a"), " ")
	}
}

func (h *HarvestedRecord) Title() string {
	switch h.dialect {
	case DialectUniMarc:
		return strings.Join(extract(h.raw.Body, "200", "ae"), " ")
	default:
		return strings.Join(extract(h.raw.Body, "245", "abc"), " ")
	}
}

func (h *HarvestedRecord) Subtitle() string {
	if h.dialect == DialectUniMarc {
		return ""
	}
	return strings.Join(extract(h.raw.Body, "246", "ab"), " ")
}

func (h *HarvestedRecord) Authors() []string {
	if h.dialect == DialectUniMarc {
		return extract(h.raw.Body, "200", "f")
	}
	return extract(h.raw.Body, "100", "a")
}

func (h *HarvestedRecord) Languages() []string {
	var raw []string
	if h.dialect == DialectUniMarc {
		raw = extract(h.raw.Body, "101", "a")
	} else {
		raw = append(raw, extract(h.raw.Body, "041", "a")...)
		raw = append(raw, extract(h.raw.Body, "546", "a")...)
	}
	out := make([]string, len(raw))
	for i, lang := range raw {
		out[i] = LanguageISOCode(lang)
	}
	return out
}

func (h *HarvestedRecord) Description() string {
	if h.dialect == DialectUniMarc {
		out := extract(h.raw.Body, "300", "a")
		out = append(out, extract(h.raw.Body, "330", "a")...)
		return strings.Join(out, " ")
	}
	return strings.Join(extract(h.raw.Body, "520", "a"), " ")
}

func (h *HarvestedRecord) dates() []string {
	if h.dialect == DialectUniMarc {
		return extract(h.raw.Body, "210", "d")
	}
	out := extract(h.raw.Body, "264", "c")
	out = append(out, extract(h.raw.Body, "363", "i")...)
	out = append(out, extract(h.raw.Body, "362", "a")...)
	return out
}

var yearPattern = regexp.MustCompile(`\b\d{4}\b`)

// EditionYears scans the dialect's dates list for four-digit year
// tokens at word boundaries, deduplicates, and sorts ascending per
// spec §4.3.
func (h *HarvestedRecord) EditionYears() []int {
	joined := strings.Join(h.dates(), " ")
	seen := make(map[int]struct{})
	var years []int
	for _, m := range yearPattern.FindAllString(joined, -1) {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func (h *HarvestedRecord) Publisher() string {
	if h.dialect == DialectUniMarc {
		return strings.Join(extract(h.raw.Body, "210", "c"), " ")
	}
	out := extract(h.raw.Body, "260", "b")
	out = append(out, extract(h.raw.Body, "264", "b")...)
	return strings.Join(out, " ")
}

func (h *HarvestedRecord) ISBN() string {
	if h.dialect == DialectUniMarc {
		return strings.Join(extract(h.raw.Body, "010", "a"), " ")
	}
	return strings.Join(extract(h.raw.Body, "020", "a"), " ")
}

func (h *HarvestedRecord) MaterialDescription() string {
	if h.dialect == DialectUniMarc {
		return strings.Join(extract(h.raw.Body, "215", "acde"), " ")
	}
	return strings.Join(extract(h.raw.Body, "300", "abce"), " ")
}

func (h *HarvestedRecord) ShelfLocationCode() string {
	if h.dialect == DialectUniMarc {
		out := extract(h.raw.Body, "950", "a")
		out = append(out, extract(h.raw.Body, "676", "a")...)
		return strings.Join(out, " ")
	}
	out := extract(h.raw.Body, "952", "o")
	out = append(out, extract(h.raw.Body, "852", "c")...)
	return strings.Join(out, " ")
}

func (h *HarvestedRecord) EditionStatement() string {
	if h.dialect == DialectUniMarc {
		return strings.Join(extract(h.raw.Body, "255", "av"), " ")
	}
	return strings.Join(extract(h.raw.Body, "250", "a"), " ")
}

func (h *HarvestedRecord) PlaceDateOfPublicationDistribution() string {
	if h.dialect == DialectUniMarc {
		return strings.Join(extract(h.raw.Body, "210", "ad"), " ")
	}
	out := extract(h.raw.Body, "260", "ac")
	out = append(out, extract(h.raw.Body, "264", "ac")...)
	return strings.Join(out, " ")
}

var httpURIPattern = regexp.MustCompile(`^https?://`)

// ResolvedURI selects a record's canonical URI per spec §4.3. Marc21
// only: scans 856 fields in document order, preferring a same-host
// URL and stopping scanning as soon as one is found; falls back to
// the first 952$u as a bare URI with no type/label. UniMarc always
// returns ok=false.
func (h *HarvestedRecord) ResolvedURI() (uri, label, contentType string, ok bool) {
	if h.dialect == DialectUniMarc {
		return "", "", "", false
	}
	for _, df := range h.raw.Body.fields("856") {
		var u, q, y string
		var found bool
		for _, sf := range df.SubFields {
			switch sf.Code {
			case "u":
				if httpURIPattern.MatchString(sf.Text) {
					u = sf.Text
					found = true
				}
			case "q":
				q = sf.Text
			case "y":
				y = sf.Text
			}
		}
		if !found {
			continue
		}
		uri, contentType, label, ok = u, q, y, true
		if strings.Contains(u, h.host) {
			return uri, label, contentType, true
		}
	}
	if ok {
		return uri, label, contentType, true
	}
	if fallback := extract(h.raw.Body, "952", "u"); len(fallback) > 0 {
		return fallback[0], "", "", true
	}
	return "", "", "", false
}

// Aggregations parses every 773 datafield into an Aggregation,
// discarding any without a name (spec §4.3). Marc21 only.
func (h *HarvestedRecord) Aggregations() []Aggregation {
	if h.dialect == DialectUniMarc {
		return nil
	}
	var out []Aggregation
	for _, df := range h.raw.Body.fields("773") {
		agg := Aggregation{Host: h.host}
		for _, sf := range df.SubFields {
			switch sf.Code {
			case "t":
				text := sf.Text
				agg.name = &text
			case "g":
				agg.Issue = sf.Text
			case "z":
				agg.ISBN = sf.Text
			case "q":
				if n, err := strconv.Atoi(sf.Text); err == nil {
					agg.Order = &n
				}
			case "d":
				agg.PlaceDatePublisher = sf.Text
			case "o":
				agg.ItemIdentifier = sf.Text
			case "6":
				agg.Linkage = sf.Text
			}
		}
		if agg.name != nil {
			out = append(out, agg)
		}
	}
	return out
}

// Checksum is the deterministic SHA-256 identity of the record for
// deduplication (spec §4.3): the byte concatenation, in this fixed
// order, of each aggregation's FullAggregationName, each author, each
// normalized language, the subtitle, then the title. The order is
// part of the contract and must never change.
func (h *HarvestedRecord) Checksum() string {
	hasher := sha256.New()
	for _, agg := range h.Aggregations() {
		hasher.Write([]byte(agg.FullAggregationName()))
	}
	for _, author := range h.Authors() {
		hasher.Write([]byte(author))
	}
	for _, lang := range h.Languages() {
		hasher.Write([]byte(lang))
	}
	hasher.Write([]byte(h.Subtitle()))
	hasher.Write([]byte(h.Title()))
	return hex.EncodeToString(hasher.Sum(nil))
}
