package engine

import (
	"strings"

	"schoolbuild/pkg/schema"
)

// Grade is the fill quality of one output field.
type Grade string

const (
	GradeOK         Grade = "OK"
	GradePartial    Grade = "PARTIAL"
	GradeEmpty      Grade = "EMPTY"
	GradeUnresolved Grade = "UNRESOLVED"
)

// FieldQuality describes how well one target field was populated.
type FieldQuality struct {
	Field      string   `json:"field"`
	Grade      Grade    `json:"grade"`
	Filled     int      `json:"filled"`
	Total      int      `json:"total"`
	Columns    []string `json:"columns,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// GradeDataset grades every field of ds in schema order. A field is:
//   - UNRESOLVED when it was looked up in at least one source and no
//     column matched anywhere
//   - EMPTY when no row holds a value
//   - OK when every row holds a value
//   - PARTIAL otherwise
//
// Integer fields count as filled when non-zero. For unresolved fields the
// closest column among tables is offered as a suggestion.
func GradeDataset(ds *schema.Dataset, tables ...*schema.Table) []FieldQuality {
	out := make([]FieldQuality, 0, len(ds.Schema.Fields))

	for _, f := range ds.Schema.Fields {
		q := FieldQuality{Field: f.Name, Total: ds.Len()}
		for i := 0; i < ds.Len(); i++ {
			if filled(ds.Value(i, f.Name)) {
				q.Filled++
			}
		}

		bound, looked := boundColumns(ds, f.Name)
		q.Columns = bound

		switch {
		case looked && len(bound) == 0:
			q.Grade = GradeUnresolved
			q.Suggestion = suggest(ds, f.Name, tables)
		case q.Filled == 0:
			q.Grade = GradeEmpty
		case q.Filled == q.Total:
			q.Grade = GradeOK
		default:
			q.Grade = GradePartial
		}
		out = append(out, q)
	}
	return out
}

func filled(v any) bool {
	switch x := v.(type) {
	case int:
		return x != 0
	case string:
		return strings.TrimSpace(x) != ""
	}
	return false
}

// boundColumns returns the distinct non-empty columns bound to field and
// whether the field was looked up at all.
func boundColumns(ds *schema.Dataset, field string) ([]string, bool) {
	var cols []string
	seen := make(map[string]bool)
	looked := false
	for _, b := range ds.Bindings {
		if b.Field != field {
			continue
		}
		looked = true
		if b.Column != "" && !seen[b.Column] {
			seen[b.Column] = true
			cols = append(cols, b.Column)
		}
	}
	return cols, looked
}

// suggest looks for a near-miss column for field in the sources where it
// failed to resolve, comparing against the field's first candidate.
func suggest(ds *schema.Dataset, field string, tables []*schema.Table) string {
	for _, b := range ds.Bindings {
		if b.Field != field || len(b.Candidates) == 0 {
			continue
		}
		for _, t := range tables {
			if t == nil || t.Name != b.Source {
				continue
			}
			if c := SuggestColumn(t, b.Candidates[0]); c != "" {
				return c
			}
		}
	}
	return ""
}
