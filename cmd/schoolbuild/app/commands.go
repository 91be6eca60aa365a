package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"schoolbuild/internal/output"
	"schoolbuild/pkg/engine"
	pkgerrors "schoolbuild/pkg/errors"
	"schoolbuild/pkg/parser"
	"schoolbuild/pkg/schema"
)

// roles maps an inspect role to the builder that reads it.
var roles = map[string]func(*schema.Table) *schema.Dataset{
	"rooms":       engine.BuildRooms,
	"teachers":    engine.BuildTeachers,
	"students":    func(t *schema.Table) *schema.Dataset { return engine.BuildStudents([]*schema.Table{t}) },
	"memberships": func(t *schema.Table) *schema.Dataset { return engine.BuildClassMemberships([]*schema.Table{t}) },
	"courses":     func(t *schema.Table) *schema.Dataset { return engine.BuildCourses([]*schema.Table{t}) },
	"classes": func(t *schema.Table) *schema.Dataset {
		ds, _ := engine.BuildClassesAndLessons(t, nil)
		return ds
	},
}

func roleNames() []string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Inspection is the result of the inspect command.
type Inspection struct {
	File     string                `json:"file"`
	Role     string                `json:"role"`
	Encoding string                `json:"encoding"`
	Columns  []string              `json:"columns"`
	Rows     int                   `json:"rows"`
	Bindings []schema.Binding      `json:"bindings"`
	Fields   []engine.FieldQuality `json:"fields"`
	Warnings []schema.Warning      `json:"warnings,omitempty"`
}

// Tables implements output.Tabler.
func (in *Inspection) Tables() []output.Data {
	file := output.Data{
		Title:   output.Title(in.Role) + " from " + in.File,
		Headers: []string{"Encoding", "Rows", "Columns"},
		Rows:    [][]string{{in.Encoding, strconv.Itoa(in.Rows), strings.Join(in.Columns, ", ")}},
	}

	fields := output.Data{Headers: []string{"Field", "Column", "Grade", "Filled", "Suggestion"}}
	for _, fq := range in.Fields {
		fields.Rows = append(fields.Rows, []string{
			fq.Field, strings.Join(fq.Columns, ", "), string(fq.Grade),
			fmt.Sprintf("%d/%d", fq.Filled, fq.Total), fq.Suggestion,
		})
	}
	return []output.Data{file, fields}
}

// NewInspectCommand creates the inspect command.
func (a *App) NewInspectCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show how the columns of one export map onto a target dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := roles[role]
			if !ok {
				return fmt.Errorf("%w: unknown role %q (want one of %s)",
					pkgerrors.ErrInvalidInput, role, strings.Join(roleNames(), ", "))
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			parsed, err := parser.Read(filepath.Base(args[0]), data)
			if err != nil {
				return err
			}

			ds := build(parsed.Table)
			in := &Inspection{
				File:     parsed.Table.Name,
				Role:     role,
				Encoding: parsed.Encoding,
				Columns:  parsed.Table.Columns,
				Rows:     parsed.Table.Len(),
				Bindings: ds.Bindings,
				Fields:   engine.GradeDataset(ds, parsed.Table),
				Warnings: ds.Warnings,
			}
			return output.NewFormatter(output.DetectFormat(a.config.Format)).Format(cmd.OutOrStdout(), in)
		},
	}

	cmd.Flags().StringVar(&role, "as", "", "target role: "+strings.Join(roleNames(), ", "))
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

// schemaList lays the target schemas out as tables.
type schemaList []*schema.Schema

// Tables implements output.Tabler.
func (l schemaList) Tables() []output.Data {
	tables := make([]output.Data, len(l))
	for i, s := range l {
		d := output.Data{Title: s.Name, Headers: []string{"#", "Field", "Type"}}
		for j, f := range s.Fields {
			d.Rows = append(d.Rows, []string{strconv.Itoa(j + 1), f.Name, f.Type.String()})
		}
		tables[i] = d
	}
	return tables
}

// NewSchemasCommand creates the schemas command.
func (a *App) NewSchemasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the target schemas and their field order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return output.NewFormatter(output.DetectFormat(a.config.Format)).Format(cmd.OutOrStdout(), schemaList(schema.All))
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("schoolbuild %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit: %s\n", a.commit)
				cmd.Printf("  built:  %s\n", a.date)
			}
		},
	}
}
