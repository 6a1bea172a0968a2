// Package marc models the positional datafield/subfield structure
// shared by the Marc21 and UniMarc dialects (spec §4.2), and the
// dialect-aware field extraction that maps a raw record onto the
// semantic attributes the harvester and persistence layer need
// (spec §4.3).
package marc

// SubField is a single-character-coded piece of text content.
type SubField struct {
	Code string `xml:"code,attr"`
	Text string `xml:",chardata"`
}

// DataField is a three-character-tagged field with two indicators and
// a sequence of subfields. Extraction is purely positional: (tag,
// code) selects the data, nothing more.
type DataField struct {
	Tag        string     `xml:"tag,attr"`
	Indicator1 string     `xml:"ind1,attr"`
	Indicator2 string     `xml:"ind2,attr"`
	SubFields  []SubField `xml:"subfield"`
}

// Record is a catalog record: a sequence of datafields. It decodes
// the `<record>` element nested under a ListRecords/record/metadata
// in the OAI-PMH envelope.
type Record struct {
	DataFields []DataField `xml:"datafield"`
}

// fields returns every datafield with the given tag, in document order.
func (r Record) fields(tag string) []DataField {
	var out []DataField
	for _, df := range r.DataFields {
		if df.Tag == tag {
			out = append(out, df)
		}
	}
	return out
}

// extract returns the text of every subfield in every datafield
// matching tag whose code is in codes, in document order. Callers that
// need a single string join the result with a single space.
func extract(r Record, tag string, codes string) []string {
	var out []string
	for _, df := range r.fields(tag) {
		for _, sf := range df.SubFields {
			for i := 0; i < len(codes); i++ {
				if len(sf.Code) == 1 && sf.Code[0] == codes[i] {
					out = append(out, sf.Text)
					break
				}
			}
		}
	}
	return out
}
