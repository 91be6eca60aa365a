// Package report turns a build result into diagnostics and output files.
package report

import (
	"schoolbuild/pkg/engine"
	"schoolbuild/pkg/schema"
)

// OutputSummary describes one produced output.
type OutputSummary struct {
	Name        string                `json:"name"`
	Schema      string                `json:"schema,omitempty"`
	Rows        int                   `json:"rows"`
	PassThrough bool                  `json:"passThrough,omitempty"`
	Bindings    []schema.Binding      `json:"bindings,omitempty"`
	Fields      []engine.FieldQuality `json:"fields,omitempty"`
	Warnings    []schema.Warning      `json:"warnings,omitempty"`
	Join        *engine.JoinStats     `json:"join,omitempty"`
}

// FailureSummary describes one output that could not be built.
type FailureSummary struct {
	Output string `json:"output"`
	Input  string `json:"input,omitempty"`
	Error  string `json:"error"`
}

// GradeSummary counts fields at each quality grade across all outputs.
type GradeSummary struct {
	OK         int `json:"ok"`
	Partial    int `json:"partial"`
	Empty      int `json:"empty"`
	Unresolved int `json:"unresolved"`
}

// Summary is the diagnostic view of a build.
type Summary struct {
	Outputs       []OutputSummary  `json:"outputs"`
	Failures      []FailureSummary `json:"failures,omitempty"`
	TotalRows     int              `json:"totalRows"`
	TotalWarnings int              `json:"totalWarnings"`
	Grades        GradeSummary     `json:"grades"`
}

// Summarize compiles per-output diagnostics in build order, followed by the
// failures.
func Summarize(res *engine.Result) *Summary {
	s := &Summary{
		Outputs:  make([]OutputSummary, 0, len(res.Outputs)),
		Failures: make([]FailureSummary, 0, len(res.Failures)),
	}

	for _, o := range res.Outputs {
		out := OutputSummary{Name: o.Name, Join: o.Join, Fields: o.Quality}
		if o.Dataset == nil {
			out.PassThrough = true
			s.Outputs = append(s.Outputs, out)
			continue
		}

		out.Schema = o.Dataset.Schema.Name
		out.Rows = o.Dataset.Len()
		out.Bindings = o.Dataset.Bindings
		out.Warnings = o.Dataset.Warnings

		s.TotalRows += out.Rows
		s.TotalWarnings += len(out.Warnings)
		for _, fq := range o.Quality {
			updateGradeSummary(&s.Grades, fq.Grade)
		}
		s.Outputs = append(s.Outputs, out)
	}

	for _, f := range res.Failures {
		fs := FailureSummary{Output: f.Output, Input: f.Input}
		if f.Err != nil {
			fs.Error = f.Err.Error()
		}
		s.Failures = append(s.Failures, fs)
	}

	return s
}

// Unresolved lists "output.field" for every field that matched no column.
func (s *Summary) Unresolved() []string {
	var out []string
	for _, o := range s.Outputs {
		for _, f := range o.Fields {
			if f.Grade == engine.GradeUnresolved {
				out = append(out, o.Name+"."+f.Field)
			}
		}
	}
	return out
}

// updateGradeSummary increments the counter for the given grade.
func updateGradeSummary(gs *GradeSummary, g engine.Grade) {
	switch g {
	case engine.GradeOK:
		gs.OK++
	case engine.GradePartial:
		gs.Partial++
	case engine.GradeEmpty:
		gs.Empty++
	case engine.GradeUnresolved:
		gs.Unresolved++
	}
}
