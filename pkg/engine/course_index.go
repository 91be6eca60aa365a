package engine

import (
	"strings"

	"schoolbuild/pkg/schema"
)

// CourseIndex provides lookup of built courses by code for the classes join.
type CourseIndex struct {
	// ByCode maps a trimmed course code to its rotation set. The first
	// occurrence wins.
	ByCode map[string]string `json:"byCode"`
	// Codes holds the distinct codes ordered longest first, ready for
	// schema.SplitClass.
	Codes []string   `json:"codes"`
	Stats IndexStats `json:"stats"`
}

// IndexStats contains aggregate statistics about the course index.
type IndexStats struct {
	TotalCourses int `json:"totalCourses"`
	UniqueCodes  int `json:"uniqueCodes"`
	WholeYear    int `json:"wholeYear"`
}

// BuildCourseIndex indexes a Courses dataset. A nil dataset yields an empty
// index.
func BuildCourseIndex(courses *schema.Dataset) *CourseIndex {
	codes := courses.Column("CourseCode")
	rots := courses.Column("RotationSet")

	index := &CourseIndex{
		ByCode: make(map[string]string, len(codes)),
		Codes:  schema.SortCodes(codes),
	}

	for i, code := range codes {
		key := strings.TrimSpace(code)
		if key == "" {
			continue
		}
		if _, exists := index.ByCode[key]; !exists {
			index.ByCode[key] = rots[i]
		}
		if rots[i] == schema.WholeYear {
			index.Stats.WholeYear++
		}
	}

	index.Stats.TotalCourses = len(codes)
	index.Stats.UniqueCodes = len(index.ByCode)
	return index
}

// Split splits a composite class value against the indexed codes.
func (ix *CourseIndex) Split(value string) (code, identifier string) {
	return schema.SplitClass(value, ix.Codes)
}

// Rotation returns the rotation set of the course with the given code.
func (ix *CourseIndex) Rotation(code string) (string, bool) {
	rot, ok := ix.ByCode[strings.TrimSpace(code)]
	return rot, ok
}
