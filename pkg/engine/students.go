package engine

import (
	"strings"

	"schoolbuild/pkg/schema"
)

// BuildStudents normalizes one or more student exports. Each file's year
// level is inferred from its name and copied into YearLevelCode, YearLevel
// and Curriculum. Rows are concatenated in file order.
func BuildStudents(tables []*schema.Table) *schema.Dataset {
	ds := schema.NewDataset(schema.Students)

	for _, t := range tables {
		b := bind(t, ds)
		year := schema.InferYear(t.Name)
		if year == "" {
			ds.Warn(t.Name, 0, "no year level in file name")
		}

		codes := b.column("StudentCode", schema.StudentCodeCandidates)
		first, last := b.names()
		bodies := b.column("CoreStudentBodyCode", schema.CoreBodyCandidates)
		emails := b.column("Email", schema.EmailCandidates)

		for i := range codes {
			ds.Append(schema.Record{
				"StudentCode":         codes[i],
				"FirstName":           first[i],
				"LastName":            last[i],
				"CoreStudentBodyCode": bodies[i],
				"YearLevelCode":       year,
				"YearLevel":           year,
				"Curriculum":          year,
				"Gender":              "",
				"Email":               emails[i],
			})
		}
	}
	return ds
}

// BuildClassMemberships melts the class columns of each student export into
// one (StudentCode, ClassCode) row per non-blank cell. Rows are emitted
// column by column. A file without a student code column or without any
// class column contributes nothing.
func BuildClassMemberships(tables []*schema.Table) *schema.Dataset {
	ds := schema.NewDataset(schema.ClassMemberships)

	for _, t := range tables {
		codeCol := schema.Resolve(t, schema.MembershipCodeCandidates)
		if codeCol == "" {
			ds.Warn(t.Name, 0, "skipped: no student code column")
			continue
		}
		ds.Bind(t.Name, "StudentCode", codeCol, schema.MembershipCodeCandidates)

		classCols := ClassColumns(t, codeCol)
		if len(classCols) == 0 {
			ds.Warn(t.Name, 0, "skipped: no class columns")
			continue
		}

		codes := t.Column(codeCol)
		for _, col := range classCols {
			ds.Bind(t.Name, "ClassCode", col, nil)
			for i, cell := range t.Column(col) {
				if strings.TrimSpace(cell) == "" {
					continue
				}
				ds.Append(schema.Record{"StudentCode": codes[i], "ClassCode": cell})
			}
		}
	}
	return ds
}

// ClassColumns lists the columns of t holding class enrolments, in column
// order. Headers shaped like "Class 1" are preferred; failing that any
// column whose normalized name contains "class" qualifies. exclude is never
// returned.
func ClassColumns(t *schema.Table, exclude string) []string {
	var cols []string
	for _, c := range t.Columns {
		if c != exclude && schema.IsClassColumn(c) {
			cols = append(cols, c)
		}
	}
	if len(cols) > 0 {
		return cols
	}

	for _, c := range t.Columns {
		if c != exclude && strings.Contains(schema.NormalizeHeader(c), "class") {
			cols = append(cols, c)
		}
	}
	return cols
}
