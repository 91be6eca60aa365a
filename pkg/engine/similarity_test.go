package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolbuild/pkg/schema"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"email", "emial", 2},
		{"zoë", "zoe", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, levenshteinDistance(tt.b, tt.a), "%q vs %q", tt.b, tt.a)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 1.0, similarity("code", "code"))
	assert.InDelta(t, 0.6, similarity("email", "emial"), 1e-9)
	assert.Equal(t, 0.0, similarity("abc", "xyz"))
}

func TestSuggestColumn(t *testing.T) {
	tbl := &schema.Table{Columns: []string{"Stud ID", "Emal", "Fcaulty"}}

	assert.Equal(t, "Emal", SuggestColumn(tbl, "Email"))
	assert.Equal(t, "Fcaulty", SuggestColumn(tbl, "Faculty"))
	assert.Equal(t, "", SuggestColumn(tbl, "Rotation"))
	assert.Equal(t, "", SuggestColumn(nil, "Email"))
	assert.Equal(t, "", SuggestColumn(tbl, "--"))
}
