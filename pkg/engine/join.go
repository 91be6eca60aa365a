package engine

import (
	"strings"

	"schoolbuild/pkg/schema"
)

// JoinStats contains aggregate statistics about the classes join.
type JoinStats struct {
	TotalProcessed int `json:"totalProcessed"`
	Matched        int `json:"matched"`
	Unmatched      int `json:"unmatched"`
	RowRotation    int `json:"rowRotation"`
}

// BuildClassesAndLessons joins a timetable export against the built courses.
// For each row:
//  1. PeriodCode is Day followed by Period with no separator
//  2. the class value is split into CourseCode and ClassIdentifier using the
//     longest course code that prefixes it
//  3. Rotation comes from the matched course, falling back to the row's own
//     rotation column
//
// courses may be nil, in which case no class value resolves a course.
func BuildClassesAndLessons(t *schema.Table, courses *schema.Dataset) (*schema.Dataset, JoinStats) {
	ds := schema.NewDataset(schema.ClassesAndLessons)
	index := BuildCourseIndex(courses)
	b := bind(t, ds)

	days := b.column("PeriodCode", schema.DayCandidates)
	periods := b.column("PeriodCode", schema.PeriodCandidates)
	classes := b.shared(schema.ClassCandidates, "CourseCode", "ClassIdentifier")
	teachers := b.column("TeacherCode", schema.ClassTeacherCandidates)
	rooms := b.column("RoomCode", schema.ClassRoomCandidates)
	rots := b.column("Rotation", schema.ClassRotCandidates)

	var stats JoinStats
	unknown := make(map[string]bool)

	for i := range classes {
		code, ident := index.Split(classes[i])
		rot, ok := index.Rotation(code)
		if ok {
			stats.Matched++
		} else {
			rot = rots[i]
			stats.RowRotation++
		}
		if code == "" {
			stats.Unmatched++
			if v := strings.TrimSpace(classes[i]); v != "" && !unknown[v] {
				unknown[v] = true
				ds.Warn(t.Name, sourceRow(i), "class %q matches no known course code", v)
			}
		}

		ds.Append(schema.Record{
			"PeriodCode":      days[i] + periods[i],
			"CourseCode":      code,
			"ClassIdentifier": ident,
			"TeacherCode":     teachers[i],
			"RoomCode":        rooms[i],
			"Rotation":        rot,
		})
		stats.TotalProcessed++
	}

	return ds, stats
}
