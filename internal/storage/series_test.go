package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesTable(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range AllSeries() {
		def := s.Def()
		assert.NotEmpty(t, def.Key)
		assert.NotEmpty(t, def.Label)
		assert.NotEmpty(t, def.Table)
		assert.NotEmpty(t, def.Column)
		assert.False(t, seen[def.Key], "duplicate key %s", def.Key)
		seen[def.Key] = true

		parsed, ok := ParseSeries(def.Key)
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
		assert.Equal(t, def.Key, s.String())
	}

	_, ok := ParseSeries("cholesterol")
	assert.False(t, ok)
	assert.False(t, Series(-1).Valid())
	assert.Equal(t, "unknown", Series(99).String())
}
