// Package parser turns uploaded spreadsheet bytes into source tables.
package parser

import (
	"path/filepath"
	"strings"

	pkgerrors "schoolbuild/pkg/errors"
)

// Read parses an uploaded file, choosing the reader from its extension.
// Workbooks go through ParseWorkbook, legacy .xls is rejected and
// everything else is treated as delimited text.
func Read(name string, data []byte) (*ParseResult, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ParseWorkbook(name, data)
	case ".xls":
		return nil, pkgerrors.NewParseError("xls", name, "legacy .xls workbooks are not supported; save as .xlsx or .csv", pkgerrors.ErrUnsupportedFormat)
	default:
		return ParseCSV(name, data)
	}
}
