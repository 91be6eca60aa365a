package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "schoolbuild/pkg/errors"
	"schoolbuild/pkg/schema"
)

// ParseWarning represents a non-fatal issue encountered during parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult contains the parsed table alongside any warnings.
type ParseResult struct {
	Table    *schema.Table  `json:"table"`
	Encoding string         `json:"encoding,omitempty"`
	Warnings []ParseWarning `json:"warnings"`
}

// Delimiters tried when sniffing delimited text, in preference order.
var delimiters = []rune{',', ';', '\t', '|'}

// sniffLines is how many leading lines take part in delimiter sniffing.
const sniffLines = 20

// ParseCSV parses delimited text into a table. It handles encodings, sniffs
// the delimiter, and pads or truncates rows whose field count differs from
// the header. A header-only file is a valid table with zero rows.
func ParseCSV(name string, data []byte) (*ParseResult, error) {
	decoded, enc, err := DetectAndDecode(data)
	if err != nil {
		return nil, pkgerrors.NewParseError("csv", name, "encoding detection failed", err)
	}
	if len(bytes.TrimSpace(decoded)) == 0 {
		return nil, pkgerrors.NewParseError("csv", name, "empty file: no header row found", pkgerrors.ErrEmptyInput)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sniffDelimiter(string(decoded))
	// We handle padding/truncation ourselves.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, pkgerrors.NewParseError("csv", name, "empty file: no header row found", pkgerrors.ErrEmptyInput)
		}
		return nil, pkgerrors.NewParseError("csv", name, "failed to read header row", err)
	}
	headers = CleanHeaders(headers)

	result := &ParseResult{
		Table:    &schema.Table{Name: name, Columns: headers},
		Encoding: enc,
	}
	rowNum := 1 // header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		row, warning := fitRow(row, len(headers))
		if warning != "" {
			result.Warnings = append(result.Warnings, ParseWarning{Row: rowNum, Message: warning})
		}
		result.Table.Rows = append(result.Table.Rows, row)
	}

	return result, nil
}

// CleanHeaders trims header cells, names blank ones "Unnamed: <i>" and
// suffixes repeated names with ".1", ".2", ... so every column is
// addressable by name.
func CleanHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = h + "." + strconv.Itoa(n+1)
		} else {
			seen[h] = 0
		}
		out[i] = h
	}
	return out
}

// fitRow pads or truncates row to width cells.
func fitRow(row []string, width int) ([]string, string) {
	switch {
	case len(row) < width:
		padded := make([]string, width)
		copy(padded, row)
		return padded, fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), width)
	case len(row) > width:
		extra := false
		for _, v := range row[width:] {
			if strings.TrimSpace(v) != "" {
				extra = true
				break
			}
		}
		if !extra {
			return row[:width], ""
		}
		return row[:width], fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), width)
	default:
		return row, ""
	}
}

// sniffDelimiter picks the delimiter whose per-line field count is most
// consistent across the first lines, preferring more fields on a tie.
// Comma wins when nothing else is convincing.
func sniffDelimiter(text string) rune {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) == sniffLines {
			break
		}
	}
	if len(lines) == 0 {
		return ','
	}

	best, bestConsistent, bestCount := ',', 0, 0
	for _, d := range delimiters {
		count := countOutsideQuotes(lines[0], d)
		if count == 0 {
			continue
		}
		consistent := 0
		for _, l := range lines {
			if countOutsideQuotes(l, d) == count {
				consistent++
			}
		}
		if consistent > bestConsistent || (consistent == bestConsistent && count > bestCount) {
			best, bestConsistent, bestCount = d, consistent, count
		}
	}
	return best
}

func countOutsideQuotes(line string, d rune) int {
	n := 0
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == d && !quoted:
			n++
		}
	}
	return n
}
