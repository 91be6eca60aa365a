package parser

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	pkgerrors "schoolbuild/pkg/errors"
	"schoolbuild/pkg/schema"
)

// ParseWorkbook reads an .xlsx/.xlsm workbook. The sheet with the most rows
// among those holding at least one non-blank data row is used; when every
// sheet is blank the first sheet is used.
func ParseWorkbook(name string, data []byte) (*ParseResult, error) {
	if len(data) == 0 {
		return nil, pkgerrors.NewParseError("xlsx", name, "empty file", pkgerrors.ErrEmptyInput)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.NewParseError("xlsx", name, "cannot open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.NewParseError("xlsx", name, "workbook has no sheets", pkgerrors.ErrEmptyInput)
	}

	var best [][]string
	bestSheet := ""
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, pkgerrors.NewParseError("xlsx", name, "cannot read sheet "+sheet, err)
		}
		if !hasData(rows) {
			continue
		}
		if best == nil || len(rows) > len(best) {
			best, bestSheet = rows, sheet
		}
	}
	if best == nil {
		bestSheet = sheets[0]
		if best, err = f.GetRows(bestSheet); err != nil {
			return nil, pkgerrors.NewParseError("xlsx", name, "cannot read sheet "+bestSheet, err)
		}
	}
	if len(best) == 0 {
		return nil, pkgerrors.NewParseError("xlsx", name, "sheet "+bestSheet+" has no header row", pkgerrors.ErrEmptyInput)
	}

	headers := CleanHeaders(best[0])
	result := &ParseResult{
		Table:    &schema.Table{Name: name, Columns: headers},
		Encoding: "sheet:" + bestSheet,
	}
	for i, row := range best[1:] {
		if isBlank(row) {
			continue
		}
		row, warning := fitRow(row, len(headers))
		if warning != "" {
			result.Warnings = append(result.Warnings, ParseWarning{Row: i + 2, Message: warning})
		}
		result.Table.Rows = append(result.Table.Rows, row)
	}
	return result, nil
}

// hasData reports whether any row after the header has a non-blank cell.
func hasData(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	for _, row := range rows[1:] {
		if !isBlank(row) {
			return true
		}
	}
	return false
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
