package engine

import (
	"schoolbuild/pkg/schema"
)

// suggestThreshold is the minimum similarity for a column suggestion.
const suggestThreshold = 0.6

// levenshteinDistance computes the Levenshtein edit distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to transform string a into string b.
func levenshteinDistance(a, b string) int {
	aRunes := []rune(a)
	bRunes := []rune(b)
	if len(aRunes) == 0 {
		return len(bRunes)
	}
	if len(bRunes) == 0 {
		return len(aRunes)
	}

	// Two rows, iterating the shorter string in the inner loop.
	if len(aRunes) > len(bRunes) {
		aRunes, bRunes = bRunes, aRunes
	}

	prevRow := make([]int, len(aRunes)+1)
	currRow := make([]int, len(aRunes)+1)
	for i := range prevRow {
		prevRow[i] = i
	}

	for j := 1; j <= len(bRunes); j++ {
		currRow[0] = j
		for i := 1; i <= len(aRunes); i++ {
			cost := 1
			if aRunes[i-1] == bRunes[j-1] {
				cost = 0
			}
			currRow[i] = min(prevRow[i]+1, currRow[i-1]+1, prevRow[i-1]+cost)
		}
		prevRow, currRow = currRow, prevRow
	}

	return prevRow[len(aRunes)]
}

// similarity computes a normalized similarity score between two strings.
// Returns a value between 0.0 (completely different) and 1.0 (identical).
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// SuggestColumn returns the column of t whose normalized header is most
// similar to the normalized target name, or "" when no column reaches the
// suggestion threshold. Ties keep the earlier column.
func SuggestColumn(t *schema.Table, target string) string {
	want := schema.NormalizeHeader(target)
	if t == nil || want == "" {
		return ""
	}

	best, bestScore := "", 0.0
	for _, c := range t.Columns {
		score := similarity(schema.NormalizeHeader(c), want)
		if score >= suggestThreshold && score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
