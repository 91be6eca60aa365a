package app

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "schoolbuild/pkg/errors"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	testChdir(t, t.TempDir())
	t.Setenv("SCHOOLBUILD_LOG_OUTPUT", "discard")

	a, err := New("1.2.3", "abc123", "2026-01-01")
	require.NoError(t, err)
	return a
}

func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	return name
}

func TestApp_New(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, "1.2.3", a.Version())
	assert.NotNil(t, a.Logger())
	assert.Equal(t, "out", a.Config().OutputDir)
}

func TestBuildCommand(t *testing.T) {
	a := newTestApp(t)
	rooms := write(t, "rooms.csv", "Code,Notes,Size\nR1,Hall,120\n")
	students := write(t, "Year 7.csv", "Code,Name,Class 1\nS1,Ann Lee,MATH1A\n")
	courses := write(t, "Year 7 courses.csv", "Course,Subject,Rot\nMATH1,Maths,1;2\n")
	classes := write(t, "timetable.csv", "Day,Period,Class\nMon,1,MATH1A\n")

	out, err := run(t, a, "build", "--format", "json",
		"--rooms", rooms, "--students", students, "--courses", courses, "--classes", classes,
		"--out", "result")
	require.NoError(t, err)

	var summary struct {
		Outputs []struct {
			Name string `json:"name"`
			Rows int    `json:"rows"`
		} `json:"outputs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Len(t, summary.Outputs, 5)
	assert.Equal(t, "ROOM.csv", summary.Outputs[0].Name)

	data, err := os.ReadFile(filepath.Join("result", "ClassesAndLessons.csv"))
	require.NoError(t, err)
	assert.Equal(t, "PeriodCode,CourseCode,ClassIdentifier,TeacherCode,RoomCode,Rotation\nMon1,MATH1,A,,,SEMESTER 1\n", string(data))
}

func TestBuildCommandBundle(t *testing.T) {
	a := newTestApp(t)
	rooms := write(t, "rooms.csv", "Code\nR1\n")
	subjects := write(t, "subjects.csv", "anything")
	require.NoError(t, os.Mkdir("dist", 0o755))

	_, err := run(t, a, "build", "-o", "table", "--rooms", rooms, "--subjects", subjects, "--bundle", "dist")
	require.NoError(t, err)

	zr, err := zip.OpenReader(filepath.Join("dist", "school-data-bundle.zip"))
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 2)
	assert.Equal(t, "ROOM.csv", zr.File[0].Name)
	assert.Equal(t, "SUBJECT.csv", zr.File[1].Name)
}

func TestBuildCommandErrors(t *testing.T) {
	a := newTestApp(t)

	_, err := run(t, a, "build", "--format", "json")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)

	broken := write(t, "rooms.csv", "")
	_, err = run(t, a, "build", "--format", "json", "--rooms", broken)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnreadable(err))

	_, err = run(t, a, "build", "--rooms", "missing.csv")
	assert.ErrorContains(t, err, "missing.csv")

	_, err = run(t, a, "schemas", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestInspectCommand(t *testing.T) {
	a := newTestApp(t)
	staff := write(t, "staff.csv", "Staff Code,Full Name,Facutly\nT1,\"Lee, Ann\",SCI\n")

	out, err := run(t, a, "inspect", staff, "--as", "teachers", "--format", "json")
	require.NoError(t, err)

	var in Inspection
	require.NoError(t, json.Unmarshal([]byte(out), &in))
	assert.Equal(t, "teachers", in.Role)
	assert.Equal(t, 1, in.Rows)
	require.Len(t, in.Fields, 6)
	assert.Equal(t, []string{"Staff Code"}, in.Fields[0].Columns)
	assert.Equal(t, []string{"Full Name"}, in.Fields[1].Columns)
	assert.Equal(t, "Facutly", in.Fields[3].Suggestion)

	_, err = run(t, a, "inspect", staff, "--as", "parents")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
}

func TestSchemasCommand(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "schemas", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Rooms")
	assert.Contains(t, out, "type: integer")

	out, err = run(t, a, "schemas", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "ClassIdentifier")
}

func TestVersionCommand(t *testing.T) {
	a := newTestApp(t)
	out, err := run(t, a, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "schoolbuild 1.2.3")
	assert.Contains(t, out, "abc123")
}
