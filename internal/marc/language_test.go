package marc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageISOCode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already two-letter", "en", "en"},
		{"three-letter code", "ita", "it"},
		{"three-letter bibliographic", "fre", "fr"},
		{"italian vernacular name", "italiano", "it"},
		{"german vernacular name", "tedesco", "de"},
		{"mixed case normalizes", "ENG", "en"},
		{"stray punctuation stripped", "en.", "en"},
		{"unknown falls back", "xx-unknown-lang", "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LanguageISOCode(tc.in))
		})
	}
}
