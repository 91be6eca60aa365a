package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbuild/pkg/schema"
)

func TestSchemaHeaders(t *testing.T) {
	tests := []struct {
		schema *schema.Schema
		want   []string
	}{
		{schema.Rooms, []string{"RoomCode", "RoomName", "Capacity"}},
		{schema.Teachers, []string{"TeacherCode", "FirstName", "LastName", "FacultyCode", "HomeSpace", "LearningSupport"}},
		{schema.Students, []string{"StudentCode", "FirstName", "LastName", "CoreStudentBodyCode", "YearLevelCode", "YearLevel", "Curriculum", "Gender", "Email"}},
		{schema.ClassMemberships, []string{"StudentCode", "ClassCode"}},
		{schema.Courses, []string{"CourseCode", "CourseName", "CurriculumName", "SubjectCode", "Type", "RotationSet"}},
		{schema.ClassesAndLessons, []string{"PeriodCode", "CourseCode", "ClassIdentifier", "TeacherCode", "RoomCode", "Rotation"}},
	}
	for _, tt := range tests {
		t.Run(tt.schema.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.Header())
		})
	}
	assert.Len(t, schema.All, 6)
}

func TestDatasetAppendDefaults(t *testing.T) {
	ds := schema.NewDataset(schema.Rooms)
	ds.Append(schema.Record{"RoomCode": "R1"})
	ds.Append(schema.Record{"RoomCode": "R2", "RoomName": "Lab", "Capacity": "25.9", "Unknown": "x"})
	ds.Append(schema.Record{"Capacity": 30, "RoomName": nil})

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"R1", "", "0"}, ds.Strings(0))
	assert.Equal(t, 0, ds.Value(0, "Capacity"))
	assert.Equal(t, 25, ds.Value(1, "Capacity"))
	assert.Equal(t, "", ds.Value(2, "RoomName"))
	assert.Equal(t, 30, ds.Value(2, "Capacity"))
	assert.Nil(t, ds.Value(0, "Unknown"))
	assert.Equal(t, []string{"R1", "R2", ""}, ds.Column("RoomCode"))
}

func TestDatasetCoercesText(t *testing.T) {
	ds := schema.NewDataset(schema.ClassMemberships)
	ds.Append(schema.Record{"StudentCode": 1001, "ClassCode": "MATH"})
	assert.Equal(t, "1001", ds.Text(0, "StudentCode"))
}

func TestDatasetBindingsAndWarnings(t *testing.T) {
	ds := schema.NewDataset(schema.Courses)
	ds.Bind("yr7.csv", "CourseCode", "Course", schema.CourseCodeCandidates)
	ds.Warn("yr7.csv", 3, "duplicate course %s", "ENG1")

	require.Len(t, ds.Bindings, 1)
	assert.Equal(t, "Course", ds.Bindings[0].Column)
	assert.Equal(t, []string{"Course", "CourseCode", "Course Code"}, ds.Bindings[0].Candidates)
	require.Len(t, ds.Warnings, 1)
	assert.Equal(t, "duplicate course ENG1", ds.Warnings[0].Message)
	assert.Equal(t, 3, ds.Warnings[0].Row)
}

func TestTableColumn(t *testing.T) {
	tbl := &schema.Table{
		Columns: []string{"Code", "Name"},
		Rows:    [][]string{{"A", "Ann"}, {"B"}},
	}
	assert.Equal(t, []string{"Ann", ""}, tbl.Column("Name"))
	assert.Equal(t, []string{"", ""}, tbl.Column(""))
	assert.Equal(t, []string{"", ""}, tbl.Column("Missing"))
	assert.False(t, tbl.Empty())
	assert.True(t, (&schema.Table{Columns: []string{"Code"}}).Empty())
}

func TestFieldDefaults(t *testing.T) {
	assert.Equal(t, "", schema.Field{Name: "x", Type: schema.Text}.Default())
	assert.Equal(t, 0, schema.Field{Name: "x", Type: schema.Integer}.Default())
	assert.Equal(t, "integer", schema.Integer.String())
	assert.Equal(t, "text", schema.Text.String())
}
