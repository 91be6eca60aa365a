package engine_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbuild/pkg/engine"
	pkgerrors "schoolbuild/pkg/errors"
	"schoolbuild/pkg/logging"
)

func src(name, data string) engine.Source {
	return engine.Source{Name: name, Data: []byte(data)}
}

func ptr(s engine.Source) *engine.Source { return &s }

func quietContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := logging.New(&buf, zerolog.DebugLevel)
	return logging.WithLogger(context.Background(), &logger), &buf
}

func TestBuild(t *testing.T) {
	ctx, logs := quietContext(t)

	res := engine.Build(ctx, engine.Inputs{
		Rooms:    ptr(src("rooms.csv", "Code,Notes,Size\nR1,Library,30\n")),
		Teachers: ptr(src("staff.csv", "Code,Name,Faculty\nT1,\"Smith, John\",SCI\n")),
		Students: []engine.Source{
			src("Year 7.csv", "Code,Name,Class 1,Class 2\nS001,Ann Lee,MATH101,\n"),
			src("Year 8.csv", "Code;Name;Class 1\nS002;Bo Chan;ENG1A\n"),
		},
		Courses: []engine.Source{
			src("Year 7 courses.csv", "Course,Subject,Faculty,Line,Rot\nMATH101,Maths,MAT,Group A,1;2\nENG1,English,ENG,,3\n"),
			src("Year 8 courses.csv", "Course,Subject\nENG1,English\n"),
		},
		Classes:  ptr(src("timetable.csv", "Day,Period,Class,Teacher,Room,Rotation\nMon,1,MATH101-A,T1,R1,\n")),
		Subjects: ptr(src("subjects.csv", "raw,bytes\r\nkept;as-is\r\n")),
	})

	require.Empty(t, res.Failures)
	require.NoError(t, res.Err())

	names := make([]string, len(res.Outputs))
	for i, o := range res.Outputs {
		names[i] = o.Name
	}
	assert.Equal(t, engine.OutputNames, names)

	courses := res.Output(engine.OutputCourses)
	require.NotNil(t, courses)
	assert.Equal(t, 2, courses.Rows())
	require.Len(t, courses.Dataset.Warnings, 1)

	members, err := res.Output(engine.OutputMemberships).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "StudentCode,ClassCode\nS001,MATH101\nS002,ENG1A\n", string(members))

	classes := res.Output(engine.OutputClasses)
	assert.Equal(t, []string{"Mon1", "MATH101", "A", "T1", "R1", "SEMESTER 1"}, classes.Dataset.Strings(0))
	require.NotNil(t, classes.Join)
	assert.Equal(t, 1, classes.Join.Matched)

	subjects := res.Output(engine.OutputSubjects)
	raw, err := subjects.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "raw,bytes\r\nkept;as-is\r\n", string(raw))
	assert.Equal(t, -1, subjects.Rows())

	assert.Contains(t, logs.String(), `"output":"ROOM.csv"`)
}

func TestBuildSkipsMissingInputs(t *testing.T) {
	ctx, _ := quietContext(t)

	res := engine.Build(ctx, engine.Inputs{
		Rooms: ptr(src("rooms.csv", "Code\n")),
	})

	require.Len(t, res.Outputs, 1)
	assert.Nil(t, res.Output(engine.OutputTeachers))
	out, err := res.Output(engine.OutputRooms).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "RoomCode,RoomName,Capacity\n", string(out))

	assert.True(t, engine.Inputs{}.Empty())
	assert.False(t, engine.Inputs{Courses: []engine.Source{src("c.csv", "")}}.Empty())
}

func TestBuildIsolatesFailures(t *testing.T) {
	ctx, _ := quietContext(t)

	res := engine.Build(ctx, engine.Inputs{
		Rooms:    ptr(src("rooms.csv", "")),
		Teachers: ptr(src("staff.csv", "Code,Name\nT1,Ann\n")),
		Students: []engine.Source{
			src("Year 7.csv", "Code,Name\nS1,Ann\n"),
			src("Year 8.xls", "\xd0\xcf\x11\xe0"),
		},
		Courses: []engine.Source{src("courses.xlsx", "not a workbook")},
		Classes: ptr(src("timetable.csv", "Class,Rotation\nMATH1A,TERM 2\n")),
	})

	require.Len(t, res.Failures, 4)
	assert.Equal(t, engine.OutputRooms, res.Failures[0].Output)
	assert.Equal(t, engine.OutputCourses, res.Failures[1].Output)
	assert.Equal(t, engine.OutputStudents, res.Failures[2].Output)
	assert.Equal(t, "students[2] Year 8.xls", res.Failures[2].Input)
	assert.Equal(t, engine.OutputMemberships, res.Failures[3].Output)
	for _, f := range res.Failures {
		assert.True(t, pkgerrors.IsUnreadable(f), f.Error())
	}
	assert.True(t, pkgerrors.IsUnsupportedFormat(res.Failures[2]))
	assert.Error(t, res.Err())

	require.NotNil(t, res.Output(engine.OutputTeachers))

	classes := res.Output(engine.OutputClasses)
	require.NotNil(t, classes)
	assert.Equal(t, []string{"", "", "MATH1A", "", "", "TERM 2"}, classes.Dataset.Strings(0))
	var found bool
	for _, w := range classes.Dataset.Warnings {
		if w.Row == 0 {
			found = true
			assert.Contains(t, w.Message, "courses unavailable")
		}
	}
	assert.True(t, found)
}

func TestBuildCarriesParseWarnings(t *testing.T) {
	ctx, _ := quietContext(t)

	res := engine.Build(ctx, engine.Inputs{
		Rooms: ptr(src("rooms.csv", "Code,Notes,Size\nR1,Hall\n")),
	})

	rooms := res.Output(engine.OutputRooms)
	require.NotNil(t, rooms)
	require.Len(t, rooms.Dataset.Warnings, 1)
	assert.Equal(t, "rooms.csv", rooms.Dataset.Warnings[0].Source)
	assert.Equal(t, 2, rooms.Dataset.Warnings[0].Row)
	require.Len(t, rooms.Quality, 3)
	assert.Equal(t, engine.GradeEmpty, rooms.Quality[2].Grade)
}
