package engine

import (
	"fmt"
	"strings"

	"schoolbuild/pkg/schema"
)

// FieldConflict is a disagreement between the kept row for a course code and
// a later duplicate. The kept value always wins.
type FieldConflict struct {
	Field     string `json:"field"`
	Kept      string `json:"kept"`
	Discarded string `json:"discarded"`
}

// conflictFields are the course fields compared between duplicates.
var conflictFields = []string{"CourseName", "CurriculumName", "SubjectCode", "Type", "RotationSet"}

// DetectConflicts compares two course records field by field. Values are
// compared case-insensitively and a blank value on either side never
// conflicts.
func DetectConflicts(kept, dup schema.Record) []FieldConflict {
	var conflicts []FieldConflict
	for _, f := range conflictFields {
		a, _ := kept[f].(string)
		b, _ := dup[f].(string)
		if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
			continue
		}
		if !strings.EqualFold(a, b) {
			conflicts = append(conflicts, FieldConflict{Field: f, Kept: a, Discarded: b})
		}
	}
	return conflicts
}

func describeConflicts(conflicts []FieldConflict) string {
	if len(conflicts) == 0 {
		return ""
	}
	parts := make([]string, len(conflicts))
	for i, c := range conflicts {
		parts[i] = fmt.Sprintf("%s %q kept over %q", c.Field, c.Kept, c.Discarded)
	}
	return ": " + strings.Join(parts, "; ")
}
