package marc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withName(n string) *string { return &n }

func TestAggregationIdentifier(t *testing.T) {
	t.Run("item identifier wins over name", func(t *testing.T) {
		agg := Aggregation{name: withName("Some Journal"), Issue: "12", ItemIdentifier: "oai:example.org:1", Host: "example.org"}
		assert.Equal(t, "aggregation:example.org:oai:example.org:1", agg.Identifier())
	})

	t.Run("name and issue without item identifier", func(t *testing.T) {
		agg := Aggregation{name: withName("Some Journal"), Issue: "12", Host: "example.org"}
		assert.Equal(t, "aggregation:example.org:Some Journal:12", agg.Identifier())
	})

	t.Run("name only", func(t *testing.T) {
		agg := Aggregation{name: withName("Some Journal"), Host: "example.org"}
		assert.Equal(t, "aggregation:example.org:Some Journal", agg.Identifier())
	})
}

func TestAggregationFullAggregationName(t *testing.T) {
	agg := Aggregation{
		name:               withName("Some Journal"),
		Issue:              "12",
		PlaceDatePublisher: "Rome 1987 ACME",
	}
	assert.Equal(t, "Some Journal 12 Rome 1987 ACME", agg.FullAggregationName())
}

func TestAggregationNamePanicsWithoutName(t *testing.T) {
	agg := Aggregation{Host: "example.org"}
	assert.Panics(t, func() { agg.Name() })
}
