package engine

import (
	"strings"

	"schoolbuild/pkg/schema"
)

// Course type values.
const (
	TypeCore     = "Core"
	TypeElective = "Elective"
)

// BuildCourses normalizes one or more course exports. Each file's year level
// becomes CurriculumName. After concatenation:
//  1. rows with a blank CourseCode are dropped
//  2. duplicate codes keep their first occurrence in file-then-row order
//
// Every discarded duplicate is reported as a warning listing the fields
// where it disagrees with the kept row.
func BuildCourses(tables []*schema.Table) *schema.Dataset {
	ds := schema.NewDataset(schema.Courses)
	kept := make(map[string]schema.Record)

	for _, t := range tables {
		b := bind(t, ds)
		year := schema.InferYear(t.Name)

		codes := b.column("CourseCode", schema.CourseCodeCandidates)
		names := b.column("CourseName", schema.CourseNameCandidates)
		subjects := b.column("SubjectCode", schema.SubjectCodeCandidates)
		lines := b.column("Type", schema.LineCandidates)
		rots := b.column("RotationSet", schema.CourseRotCandidates)

		for i, code := range codes {
			if strings.TrimSpace(code) == "" {
				continue
			}
			rec := schema.Record{
				"CourseCode":     code,
				"CourseName":     names[i],
				"CurriculumName": year,
				"SubjectCode":    subjects[i],
				"Type":           CourseType(lines[i]),
				"RotationSet":    schema.NormalizeRotation(rots[i]),
			}
			if first, ok := kept[code]; ok {
				ds.Warn(t.Name, sourceRow(i), "duplicate course %s dropped%s", code, describeConflicts(DetectConflicts(first, rec)))
				continue
			}
			kept[code] = rec
			ds.Append(rec)
		}
	}
	return ds
}

// CourseType classifies a line/type cell: values starting with "group" are
// core courses, everything else is elective.
func CourseType(line string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "group") {
		return TypeCore
	}
	return TypeElective
}
