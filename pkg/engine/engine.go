// Package engine builds the normalized school datasets from parsed source
// tables. Builders are pure functions of their inputs; Build wires them
// together in dependency order for a set of uploaded files.
package engine

import (
	"context"
	"fmt"

	pkgerrors "schoolbuild/pkg/errors"
	"schoolbuild/pkg/logging"
	"schoolbuild/pkg/parser"
	"schoolbuild/pkg/schema"
)

// Output file names.
const (
	OutputRooms       = "ROOM.csv"
	OutputTeachers    = "Teacher.csv"
	OutputCourses     = "COURSES.csv"
	OutputStudents    = "Student.csv"
	OutputMemberships = "ClassMemberships.csv"
	OutputClasses     = "ClassesAndLessons.csv"
	OutputSubjects    = "SUBJECT.csv"
)

// OutputNames lists every output in build order.
var OutputNames = []string{
	OutputRooms, OutputTeachers, OutputCourses, OutputStudents,
	OutputMemberships, OutputClasses, OutputSubjects,
}

// Source is one uploaded file.
type Source struct {
	Name string
	Data []byte
}

// Inputs holds the uploaded files by role. A nil or empty role skips the
// builders that depend on it.
type Inputs struct {
	Rooms    *Source
	Teachers *Source
	Students []Source
	Courses  []Source
	Classes  *Source
	Subjects *Source
}

// Empty reports whether no file was supplied for any role.
func (in Inputs) Empty() bool {
	return in.Rooms == nil && in.Teachers == nil && in.Classes == nil && in.Subjects == nil &&
		len(in.Students) == 0 && len(in.Courses) == 0
}

// Output is one produced file. Subjects are passed through as Raw bytes;
// every other output carries a Dataset.
type Output struct {
	Name    string          `json:"name"`
	Dataset *schema.Dataset `json:"dataset,omitempty"`
	Raw     []byte          `json:"-"`
	Quality []FieldQuality  `json:"quality,omitempty"`
	Join    *JoinStats      `json:"join,omitempty"`
}

// Bytes renders the output file contents.
func (o *Output) Bytes() ([]byte, error) {
	if o.Dataset == nil {
		return o.Raw, nil
	}
	return MarshalCSV(o.Dataset)
}

// Rows returns the number of data rows, or -1 for pass-through outputs.
func (o *Output) Rows() int {
	if o.Dataset == nil {
		return -1
	}
	return o.Dataset.Len()
}

// Result is the outcome of a Build. Outputs are in build order; a builder
// whose input could not be parsed appears in Failures instead.
type Result struct {
	Outputs  []*Output               `json:"outputs"`
	Failures []*pkgerrors.BuildError `json:"-"`
}

// Output returns the named output, or nil when it was not produced.
func (r *Result) Output(name string) *Output {
	for _, o := range r.Outputs {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Err joins every failure into one error, or nil.
func (r *Result) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return pkgerrors.Join(errs...)
}

// parsed is a source table together with its parse warnings.
type parsed struct {
	table    *schema.Table
	warnings []parser.ParseWarning
}

// Build parses every supplied file once and runs the builders whose inputs
// are present:
//  1. Rooms, Teachers
//  2. Courses
//  3. Students and Class Memberships, sharing the parsed student files
//  4. Classes & Lessons, joined against the Courses output
//  5. Subjects, copied through untouched
//
// An unreadable file fails only the builders that read it. Without usable
// courses, Classes & Lessons still builds and takes every rotation from the
// timetable itself.
func Build(ctx context.Context, in Inputs) *Result {
	logger := logging.FromContext(ctx)
	res := &Result{}

	add := func(name string, ds *schema.Dataset, sources []parsed) *Output {
		tables := make([]*schema.Table, len(sources))
		var warnings []schema.Warning
		for i, p := range sources {
			tables[i] = p.table
			for _, w := range p.warnings {
				warnings = append(warnings, schema.Warning{Source: p.table.Name, Row: w.Row, Message: w.Message})
			}
		}
		ds.Warnings = append(warnings, ds.Warnings...)

		out := &Output{Name: name, Dataset: ds, Quality: GradeDataset(ds, tables...)}
		res.Outputs = append(res.Outputs, out)
		logger.Info().
			Str("output", name).
			Int("rows", ds.Len()).
			Int("warnings", len(ds.Warnings)).
			Msg("built output")
		return out
	}
	fail := func(name string, err *pkgerrors.BuildError) {
		res.Failures = append(res.Failures, err)
		logger.Warn().Err(err).Str("output", name).Msg("output failed")
	}

	if in.Rooms != nil {
		if p, err := parseOne(OutputRooms, "rooms", *in.Rooms); err != nil {
			fail(OutputRooms, err)
		} else {
			add(OutputRooms, BuildRooms(p.table), []parsed{p})
		}
	}

	if in.Teachers != nil {
		if p, err := parseOne(OutputTeachers, "teachers", *in.Teachers); err != nil {
			fail(OutputTeachers, err)
		} else {
			add(OutputTeachers, BuildTeachers(p.table), []parsed{p})
		}
	}

	var courses *schema.Dataset
	var coursesErr *pkgerrors.BuildError
	if len(in.Courses) > 0 {
		ps, err := parseAll(OutputCourses, "courses", in.Courses)
		if err != nil {
			coursesErr = err
			fail(OutputCourses, err)
		} else {
			courses = BuildCourses(tablesOf(ps))
			add(OutputCourses, courses, ps)
		}
	}

	if len(in.Students) > 0 {
		ps, err := parseAll(OutputStudents, "students", in.Students)
		if err != nil {
			fail(OutputStudents, err)
			fail(OutputMemberships, pkgerrors.NewBuildError(OutputMemberships, err.Input, err.Err))
		} else {
			add(OutputStudents, BuildStudents(tablesOf(ps)), ps)
			add(OutputMemberships, BuildClassMemberships(tablesOf(ps)), ps)
		}
	}

	if in.Classes != nil {
		if p, err := parseOne(OutputClasses, "classes", *in.Classes); err != nil {
			fail(OutputClasses, err)
		} else {
			ds, stats := BuildClassesAndLessons(p.table, courses)
			if coursesErr != nil {
				ds.Warn(p.table.Name, 0, "courses unavailable (%v); rotations taken from the timetable", coursesErr.Err)
			}
			out := add(OutputClasses, ds, []parsed{p})
			out.Join = &stats
			logger.Debug().
				Int("matched", stats.Matched).
				Int("unmatched", stats.Unmatched).
				Int("row_rotation", stats.RowRotation).
				Msg("joined classes against courses")
		}
	}

	if in.Subjects != nil {
		res.Outputs = append(res.Outputs, &Output{Name: OutputSubjects, Raw: in.Subjects.Data})
		logger.Info().Str("output", OutputSubjects).Int("bytes", len(in.Subjects.Data)).Msg("passed through")
	}

	return res
}

func parseOne(output, role string, src Source) (parsed, *pkgerrors.BuildError) {
	r, err := parser.Read(src.Name, src.Data)
	if err != nil {
		return parsed{}, pkgerrors.NewBuildError(output, fmt.Sprintf("%s %s", role, src.Name), err)
	}
	return parsed{table: r.Table, warnings: r.Warnings}, nil
}

func parseAll(output, role string, srcs []Source) ([]parsed, *pkgerrors.BuildError) {
	out := make([]parsed, 0, len(srcs))
	for i, src := range srcs {
		p, err := parseOne(output, fmt.Sprintf("%s[%d]", role, i+1), src)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func tablesOf(ps []parsed) []*schema.Table {
	out := make([]*schema.Table, len(ps))
	for i, p := range ps {
		out[i] = p.table
	}
	return out
}
