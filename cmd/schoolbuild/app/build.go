package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"schoolbuild/internal/output"
	"schoolbuild/pkg/engine"
	pkgerrors "schoolbuild/pkg/errors"
	"schoolbuild/pkg/logging"
	"schoolbuild/pkg/report"
)

// buildFlags holds the file arguments of the build command.
type buildFlags struct {
	rooms    string
	teachers string
	students []string
	courses  []string
	classes  string
	subjects string
	out      string
	bundle   string
}

// NewBuildCommand creates the build command.
func (a *App) NewBuildCommand() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build normalized CSV files from school data exports",
		Long: `Build reads every supplied export, builds the target datasets whose
inputs are present and writes them to a directory or a ZIP bundle.

Student and course files may be repeated; the year level of each file is
taken from its name (for example "Year 7.xlsx" or "yr10.csv").`,
		Example: `  schoolbuild build --rooms rooms.csv --teachers staff.xlsx \
    --students "Year 7.xlsx" --students "Year 8.xlsx" \
    --courses courses.csv --classes timetable.csv --out out/`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuild(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.rooms, "rooms", "", "rooms export")
	cmd.Flags().StringVar(&f.teachers, "teachers", "", "staff export")
	cmd.Flags().StringArrayVar(&f.students, "students", nil, "student export (repeatable)")
	cmd.Flags().StringArrayVar(&f.courses, "courses", nil, "course export (repeatable)")
	cmd.Flags().StringVar(&f.classes, "classes", "", "timetable export")
	cmd.Flags().StringVar(&f.subjects, "subjects", "", "subjects file, copied through unchanged")
	cmd.Flags().StringVar(&f.out, "out", "", "output directory (default from config, \"out\")")
	cmd.Flags().StringVar(&f.bundle, "bundle", "", "write a ZIP bundle to this path instead of a directory")
	cmd.MarkFlagsMutuallyExclusive("out", "bundle")

	return cmd
}

func (a *App) runBuild(cmd *cobra.Command, f buildFlags) error {
	logger := logging.FromContext(cmd.Context())

	in, err := readInputs(f)
	if err != nil {
		return err
	}
	if in.Empty() {
		return fmt.Errorf("%w: no input files given", pkgerrors.ErrInvalidInput)
	}

	res := engine.Build(cmd.Context(), in)

	if len(res.Outputs) > 0 {
		dest, err := a.writeOutputs(f, res.Outputs)
		if err != nil {
			return err
		}
		logger.Info().Str("destination", dest).Int("files", len(res.Outputs)).Msg("wrote outputs")
	}

	summary := report.Summarize(res)
	format := output.DetectFormat(a.config.Format)
	var data any = summary
	if format == output.FormatTable {
		data = summaryView{summary}
	}
	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), data); err != nil {
		return err
	}

	if len(res.Outputs) == 0 {
		return fmt.Errorf("every output failed: %w", res.Err())
	}
	return nil
}

// writeOutputs writes the bundle or the output directory and returns its path.
func (a *App) writeOutputs(f buildFlags, outputs []*engine.Output) (string, error) {
	bundle := f.bundle
	if bundle == "" && f.out == "" {
		bundle = a.config.Bundle
	}
	if bundle != "" {
		if info, err := os.Stat(bundle); err == nil && info.IsDir() {
			bundle = filepath.Join(bundle, report.DefaultBundleName)
		}
		return bundle, report.WriteZipFile(bundle, outputs)
	}

	dir := f.out
	if dir == "" {
		dir = a.config.OutputDir
	}
	_, err := report.WriteDir(dir, outputs)
	return dir, err
}

func readInputs(f buildFlags) (engine.Inputs, error) {
	var in engine.Inputs

	singles := []struct {
		path string
		dst  **engine.Source
	}{
		{f.rooms, &in.Rooms},
		{f.teachers, &in.Teachers},
		{f.classes, &in.Classes},
		{f.subjects, &in.Subjects},
	}
	for _, s := range singles {
		if s.path == "" {
			continue
		}
		src, err := readSource(s.path)
		if err != nil {
			return in, err
		}
		*s.dst = &src
	}

	for _, p := range f.students {
		src, err := readSource(p)
		if err != nil {
			return in, err
		}
		in.Students = append(in.Students, src)
	}
	for _, p := range f.courses {
		src, err := readSource(p)
		if err != nil {
			return in, err
		}
		in.Courses = append(in.Courses, src)
	}
	return in, nil
}

func readSource(path string) (engine.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return engine.Source{Name: filepath.Base(path), Data: data}, nil
}

// summaryView lays a build summary out as tables.
type summaryView struct {
	*report.Summary
}

// Tables implements output.Tabler.
func (s summaryView) Tables() []output.Data {
	outputs := output.Data{
		Title:   "Outputs",
		Headers: []string{"File", "Rows", "Warnings", "Unresolved"},
	}
	for _, o := range s.Outputs {
		rows := strconv.Itoa(o.Rows)
		if o.PassThrough {
			rows = "copied"
		}
		unresolved := 0
		for _, fq := range o.Fields {
			if fq.Grade == engine.GradeUnresolved {
				unresolved++
			}
		}
		outputs.Rows = append(outputs.Rows, []string{o.Name, rows, strconv.Itoa(len(o.Warnings)), strconv.Itoa(unresolved)})
	}
	tables := []output.Data{outputs}

	fields := output.Data{
		Title:   "Fields needing attention",
		Headers: []string{"File", "Field", "Grade", "Filled", "Suggestion"},
	}
	for _, o := range s.Outputs {
		for _, fq := range o.Fields {
			if fq.Grade == engine.GradeOK {
				continue
			}
			fields.Rows = append(fields.Rows, []string{
				o.Name, fq.Field, string(fq.Grade),
				fmt.Sprintf("%d/%d", fq.Filled, fq.Total), fq.Suggestion,
			})
		}
	}
	if len(fields.Rows) > 0 {
		tables = append(tables, fields)
	}

	warnings := output.Data{
		Title:   "Warnings",
		Headers: []string{"File", "Source", "Row", "Message"},
	}
	for _, o := range s.Outputs {
		for _, w := range o.Warnings {
			row := ""
			if w.Row > 0 {
				row = strconv.Itoa(w.Row)
			}
			warnings.Rows = append(warnings.Rows, []string{o.Name, w.Source, row, w.Message})
		}
	}
	if len(warnings.Rows) > 0 {
		tables = append(tables, warnings)
	}

	if len(s.Failures) > 0 {
		failures := output.Data{
			Title:   "Failures",
			Headers: []string{"File", "Input", "Error"},
		}
		for _, f := range s.Failures {
			failures.Rows = append(failures.Rows, []string{f.Output, f.Input, f.Error})
		}
		tables = append(tables, failures)
	}
	return tables
}
