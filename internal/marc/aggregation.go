package marc

import "strings"

// Aggregation is a parent bibliographic container (journal, series)
// referenced from a child record via a Marc21 773 datafield.
// Constructing one with no Name set and then calling Name or
// FullAggregationName is a programmer error and panics; Identifier
// panics too unless ItemIdentifier is set, since it then never reads
// the name. Production code never hits this path because
// the 773 parser (see extractor.go) discards nameless aggregations
// before they escape the package.
type Aggregation struct {
	name              *string
	Issue             string
	ISBN              string
	Order             *int
	PlaceDatePublisher string
	ItemIdentifier    string
	Linkage           string
	Host              string
}

// Name returns the aggregation's name, panicking if none was set.
func (a Aggregation) Name() string {
	if a.name == nil {
		panic("marc: Aggregation.Name called without a name set")
	}
	return *a.name
}

// Identifier builds the colon-joined aggregation identifier per
// spec §4.3: ["aggregation", host, ...]. If ItemIdentifier is present
// it is the sole remaining component; otherwise Name (and Issue, if
// present) are appended.
func (a Aggregation) Identifier() string {
	parts := []string{"aggregation", a.Host}
	if a.ItemIdentifier != "" {
		parts = append(parts, a.ItemIdentifier)
	} else {
		parts = append(parts, a.Name())
		if a.Issue != "" {
			parts = append(parts, a.Issue)
		}
	}
	return strings.Join(parts, ":")
}

// FullAggregationName is the space-joined [name, issue?, place/date/
// publisher?] used both for display and as an input to Entry.Checksum.
func (a Aggregation) FullAggregationName() string {
	parts := []string{a.Name()}
	if a.Issue != "" {
		parts = append(parts, a.Issue)
	}
	if a.PlaceDatePublisher != "" {
		parts = append(parts, a.PlaceDatePublisher)
	}
	return strings.Join(parts, " ")
}
