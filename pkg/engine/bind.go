package engine

import (
	"schoolbuild/pkg/schema"
)

// binder resolves columns of one source table into a dataset, recording a
// binding for every field it looks up.
type binder struct {
	t  *schema.Table
	ds *schema.Dataset
}

func bind(t *schema.Table, ds *schema.Dataset) binder {
	return binder{t: t, ds: ds}
}

// column resolves candidates against the table and returns the matched
// column's cells, or empty cells when nothing matched.
func (b binder) column(field string, candidates []string) []string {
	return b.shared(candidates, field)
}

// shared resolves one column feeding several fields.
func (b binder) shared(candidates []string, fields ...string) []string {
	col := schema.Resolve(b.t, candidates)
	for _, f := range fields {
		b.ds.Bind(b.t.Name, f, col, candidates)
	}
	return b.t.Column(col)
}

// names resolves the person-name column and splits every cell into
// FirstName and LastName.
func (b binder) names() (first, last []string) {
	cells := b.shared(schema.NameCandidates, "FirstName", "LastName")
	first = make([]string, len(cells))
	last = make([]string, len(cells))
	for i, c := range cells {
		first[i], last[i] = schema.SplitName(c)
	}
	return first, last
}

// sourceRow converts a zero-based data row index into the 1-based line of
// the source file, counting the header as line 1.
func sourceRow(i int) int {
	return i + 2
}
