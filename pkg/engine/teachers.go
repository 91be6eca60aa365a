package engine

import (
	"schoolbuild/pkg/schema"
)

// BuildTeachers normalizes a staff export. HomeSpace and LearningSupport have
// no source column and are always empty.
func BuildTeachers(t *schema.Table) *schema.Dataset {
	ds := schema.NewDataset(schema.Teachers)
	b := bind(t, ds)

	codes := b.column("TeacherCode", schema.TeacherCodeCandidates)
	first, last := b.names()
	faculties := b.column("FacultyCode", schema.FacultyCandidates)

	for i := range codes {
		ds.Append(schema.Record{
			"TeacherCode":     codes[i],
			"FirstName":       first[i],
			"LastName":        last[i],
			"FacultyCode":     faculties[i],
			"HomeSpace":       "",
			"LearningSupport": "",
		})
	}
	return ds
}
