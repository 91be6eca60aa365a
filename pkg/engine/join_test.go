package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbuild/pkg/engine"
	"schoolbuild/pkg/schema"
)

func coursesFixture() *schema.Dataset {
	return engine.BuildCourses([]*schema.Table{
		table("Year 7.csv",
			[]string{"Course", "Rot"},
			[]string{"MATH1", "1"},
			[]string{"MATH101", "1,2"},
			[]string{"ENG1", ""},
		),
	})
}

func TestBuildClassesAndLessons(t *testing.T) {
	tt := table("timetable.csv",
		[]string{"Day", "Period", "Class", "Teacher", "Rm", "Rotation"},
		[]string{"Mon", "1", "MATH101-A", "T1", "R1", "TERM 4"},
		[]string{"Tue", "3", "MATH1.B", "T2", "R2", ""},
		[]string{"Wed", "", "ART7 C", "T3", "", "TERM 3"},
		[]string{"Thu", "2", "", "", "", ""},
	)

	ds, stats := engine.BuildClassesAndLessons(tt, coursesFixture())

	require.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"Mon1", "MATH101", "A", "T1", "R1", "SEMESTER 1"}, ds.Strings(0))
	assert.Equal(t, []string{"Tue3", "MATH1", "B", "T2", "R2", "TERM 1"}, ds.Strings(1))
	assert.Equal(t, []string{"Wed", "", "ART7 C", "T3", "", "TERM 3"}, ds.Strings(2))
	assert.Equal(t, []string{"Thu2", "", "", "", "", ""}, ds.Strings(3))

	assert.Equal(t, engine.JoinStats{TotalProcessed: 4, Matched: 2, Unmatched: 2, RowRotation: 2}, stats)
	require.Len(t, ds.Warnings, 1)
	assert.Equal(t, 4, ds.Warnings[0].Row)
	assert.Contains(t, ds.Warnings[0].Message, "ART7 C")
}

func TestBuildClassesAndLessonsWithoutCourses(t *testing.T) {
	tt := table("timetable.csv",
		[]string{"DayName", "Per", "ClassCode", "StaffCode", "RoomCode", "Rot"},
		[]string{"Fri", "5", "ENG1A", "T9", "R9", "TERM 2"},
	)

	ds, stats := engine.BuildClassesAndLessons(tt, nil)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, []string{"Fri5", "", "ENG1A", "T9", "R9", "TERM 2"}, ds.Strings(0))
	assert.Equal(t, 1, stats.RowRotation)
}

func TestCourseIndex(t *testing.T) {
	ix := engine.BuildCourseIndex(coursesFixture())

	assert.Equal(t, []string{"MATH101", "MATH1", "ENG1"}, ix.Codes)
	assert.Equal(t, engine.IndexStats{TotalCourses: 3, UniqueCodes: 3, WholeYear: 1}, ix.Stats)

	code, ident := ix.Split("MATH101-A")
	assert.Equal(t, "MATH101", code)
	assert.Equal(t, "A", ident)

	rot, ok := ix.Rotation(" ENG1 ")
	assert.True(t, ok)
	assert.Equal(t, schema.WholeYear, rot)

	_, ok = ix.Rotation("SCI")
	assert.False(t, ok)

	empty := engine.BuildCourseIndex(nil)
	assert.Empty(t, empty.Codes)
	_, ok = empty.Rotation("")
	assert.False(t, ok)
}
