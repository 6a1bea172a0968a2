package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDiacritics(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ascii passes through", "Hello World", "Hello World"},
		{"accented latin", "Café à la carte", "Cafe a la carte"},
		{"italian title", "società", "societa"},
		{"german umlaut", "Müller", "Muller"},
		{"empty string", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripDiacritics(tc.in))
		})
	}
}
