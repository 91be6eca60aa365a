package schema

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Canonical rotation labels.
const (
	WholeYear = "WHOLE YEAR"
	Semester1 = "SEMESTER 1"
	Semester2 = "SEMESTER 2"
	Term1     = "TERM 1"
	Term2     = "TERM 2"
	Term3     = "TERM 3"
	Term4     = "TERM 4"
)

// Pre-compiled regular expressions and lookup tables.
var (
	rotationSepRe  = regexp.MustCompile(`[;:/\s]+`)
	nonDigitRe     = regexp.MustCompile(`[^0-9]`)
	yearRe         = regexp.MustCompile(`(yr|year)[\s\-]?(\d{1,2})`)
	classColumnRe  = regexp.MustCompile(`(?i)^class[\s_]*\d+$`)
	classLeadSepRe = regexp.MustCompile(`^[\s\-._/]+`)
	termLabels     = map[string]string{"1": Term1, "2": Term2, "3": Term3, "4": Term4}
)

// SplitName splits a free-text person name into (first, last).
//   - "Last, First" puts everything after the first comma in first
//   - a single word is a last name
//   - otherwise the final word is the last name and the rest the first name
func SplitName(name string) (first, last string) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", ""
	}

	if l, f, ok := strings.Cut(s, ","); ok {
		return strings.TrimSpace(f), strings.TrimSpace(l)
	}

	parts := strings.Fields(s)
	if len(parts) == 1 {
		return "", parts[0]
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// NormalizeRotation maps a free-text term designator onto a rotation label.
// Separators ; : / and whitespace are unified to commas, each token is
// reduced to its digits, and the set of term digits 1-4 is classified:
//
//	{1,2} SEMESTER 1, {3,4} SEMESTER 2, {n} TERM n
//
// Any other set yields the sorted, de-duplicated labels of every digit
// token, with digits outside 1-4 passed through as-is. No digits at all
// means WHOLE YEAR.
func NormalizeRotation(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return WholeYear
	}

	var tokens []string
	terms := make(map[string]bool, 4)
	for _, p := range strings.Split(rotationSepRe.ReplaceAllString(s, ","), ",") {
		d := nonDigitRe.ReplaceAllString(p, "")
		if d == "" {
			continue
		}
		tokens = append(tokens, d)
		if _, ok := termLabels[d]; ok {
			terms[d] = true
		}
	}

	switch {
	case len(terms) == 2 && terms["1"] && terms["2"]:
		return Semester1
	case len(terms) == 2 && terms["3"] && terms["4"]:
		return Semester2
	case len(terms) == 1:
		for d := range terms {
			return termLabels[d]
		}
	}

	if len(tokens) == 0 {
		return WholeYear
	}

	seen := make(map[string]bool, len(tokens))
	labels := make([]string, 0, len(tokens))
	for _, d := range tokens {
		label, ok := termLabels[d]
		if !ok {
			label = d
		}
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}

// InferYear extracts a year level from a file name such as "Year 7.xlsx" or
// "yr-10_students.csv". It returns "" when no marker is present.
func InferYear(filename string) string {
	m := yearRe.FindStringSubmatch(strings.ToLower(filename))
	if m == nil {
		return ""
	}
	return m[2]
}

// SortCodes returns the distinct non-blank codes, trimmed, ordered longest
// first. Codes of equal length keep their original order.
func SortCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

// SplitClass splits a composite class value into the longest known course
// code that prefixes it and the remaining class identifier. Leading
// separators are stripped from the remainder. codes must already be in
// SortCodes order. Without a matching code the whole value is the
// identifier.
func SplitClass(value string, codes []string) (code, identifier string) {
	for _, c := range codes {
		if strings.HasPrefix(value, c) {
			return c, classLeadSepRe.ReplaceAllString(value[len(c):], "")
		}
	}
	return "", value
}

// IsClassColumn reports whether a header looks like "Class 1", "class_2" or
// "CLASS3".
func IsClassColumn(header string) bool {
	h := strings.ReplaceAll(strings.TrimSpace(header), " ", "_")
	return classColumnRe.MatchString(h)
}

// ParseInteger parses a numeric cell, truncating any fraction toward zero.
// Blank, non-numeric or out-of-range text yields 0.
func ParseInteger(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}
