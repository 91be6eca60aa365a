package schema

import (
	"fmt"
	"strconv"
)

// Table is one uploaded source table. Column names are untrusted; every row
// holds exactly len(Columns) cells and missing cells are empty strings.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows or no columns.
func (t *Table) Empty() bool {
	return t == nil || len(t.Columns) == 0 || len(t.Rows) == 0
}

// Column returns the cells of the named column, one per row. An empty or
// unknown name yields a column of empty strings so unresolved fields still
// line up with the source rows.
func (t *Table) Column(name string) []string {
	out := make([]string, t.Len())
	if name == "" {
		return out
	}
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return out
	}
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// FieldType is the declared type of a target field.
type FieldType int

const (
	// Text fields default to the empty string.
	Text FieldType = iota
	// Integer fields default to zero.
	Integer
)

// String returns the type name.
func (ft FieldType) String() string {
	if ft == Integer {
		return "integer"
	}
	return "text"
}

// MarshalText renders the type by name in JSON and YAML output.
func (ft FieldType) MarshalText() ([]byte, error) {
	return []byte(ft.String()), nil
}

// Field is one column of a target schema.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Default returns the value used when the field has no source.
func (f Field) Default() any {
	if f.Type == Integer {
		return 0
	}
	return ""
}

// Schema is the fixed, ordered field list of one output table.
type Schema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Header returns the field names in schema order.
func (s *Schema) Header() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Index returns the position of the named field, or -1.
func (s *Schema) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func text(names ...string) []Field {
	out := make([]Field, len(names))
	for i, n := range names {
		out[i] = Field{Name: n, Type: Text}
	}
	return out
}

// Target schemas. Field order is part of the output contract.
var (
	Rooms = &Schema{
		Name: "Rooms",
		Fields: []Field{
			{Name: "RoomCode", Type: Text},
			{Name: "RoomName", Type: Text},
			{Name: "Capacity", Type: Integer},
		},
	}

	Teachers = &Schema{
		Name:   "Teachers",
		Fields: text("TeacherCode", "FirstName", "LastName", "FacultyCode", "HomeSpace", "LearningSupport"),
	}

	Students = &Schema{
		Name: "Students",
		Fields: text("StudentCode", "FirstName", "LastName", "CoreStudentBodyCode",
			"YearLevelCode", "YearLevel", "Curriculum", "Gender", "Email"),
	}

	ClassMemberships = &Schema{
		Name:   "ClassMemberships",
		Fields: text("StudentCode", "ClassCode"),
	}

	Courses = &Schema{
		Name:   "Courses",
		Fields: text("CourseCode", "CourseName", "CurriculumName", "SubjectCode", "Type", "RotationSet"),
	}

	ClassesAndLessons = &Schema{
		Name:   "ClassesAndLessons",
		Fields: text("PeriodCode", "CourseCode", "ClassIdentifier", "TeacherCode", "RoomCode", "Rotation"),
	}
)

// All lists every target schema in build order.
var All = []*Schema{Rooms, Teachers, Courses, Students, ClassMemberships, ClassesAndLessons}

// Record is one output row keyed by field name. Absent fields take their
// declared default.
type Record map[string]any

// Binding records which source column fed a target field. Column is empty
// when no column resolved.
type Binding struct {
	Source     string   `json:"source"`
	Field      string   `json:"field"`
	Column     string   `json:"column"`
	Candidates []string `json:"candidates,omitempty"`
}

// Warning is a non-fatal data-quality note raised while building.
type Warning struct {
	Source  string `json:"source"`
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

// Dataset is a target table: rows of typed cells in schema order.
type Dataset struct {
	Schema   *Schema   `json:"schema"`
	Bindings []Binding `json:"bindings,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
	rows     [][]any
}

// NewDataset creates an empty dataset for s.
func NewDataset(s *Schema) *Dataset {
	return &Dataset{Schema: s}
}

// Append adds a row. Missing fields get their default, values are coerced
// to the declared field type and unknown keys are ignored.
func (d *Dataset) Append(r Record) {
	row := make([]any, len(d.Schema.Fields))
	for i, f := range d.Schema.Fields {
		v, ok := r[f.Name]
		if !ok || v == nil {
			row[i] = f.Default()
			continue
		}
		row[i] = coerce(f, v)
	}
	d.rows = append(d.rows, row)
}

// Bind records that field was read from column of source after resolving
// candidates.
func (d *Dataset) Bind(source, field, column string, candidates []string) {
	d.Bindings = append(d.Bindings, Binding{Source: source, Field: field, Column: column, Candidates: candidates})
}

// Warn records a data-quality warning.
func (d *Dataset) Warn(source string, row int, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{Source: source, Row: row, Message: fmt.Sprintf(format, args...)})
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Value returns the typed cell at row i for field, or nil when the field is
// not part of the schema.
func (d *Dataset) Value(i int, field string) any {
	idx := d.Schema.Index(field)
	if idx < 0 {
		return nil
	}
	return d.rows[i][idx]
}

// Text returns the cell at row i for field formatted as text.
func (d *Dataset) Text(i int, field string) string {
	v := d.Value(i, field)
	if v == nil {
		return ""
	}
	return format(v)
}

// Strings returns row i formatted as text in schema order.
func (d *Dataset) Strings(i int) []string {
	out := make([]string, len(d.rows[i]))
	for j, v := range d.rows[i] {
		out[j] = format(v)
	}
	return out
}

// Column returns every row's value of field formatted as text.
func (d *Dataset) Column(field string) []string {
	out := make([]string, d.Len())
	for i := range out {
		out[i] = d.Text(i, field)
	}
	return out
}

func coerce(f Field, v any) any {
	switch f.Type {
	case Integer:
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		case string:
			return ParseInteger(n)
		default:
			return 0
		}
	default:
		return format(v)
	}
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
