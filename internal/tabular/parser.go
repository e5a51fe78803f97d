// Package tabular parses the semicolon/newline-delimited data payload
// carried by dataset records into typed rows.
package tabular

import (
	"strconv"
	"strings"
)

// Row is one parsed data row, keyed by column name.
type Row map[string]interface{}

// Parse converts a semicolon-delimited header line and a newline-delimited
// body into rows. Lines whose value count does not match the header count
// are dropped. The column named "Year" is renamed "year"; cell values that
// parse as numbers become float64, everything else stays a trimmed string.
func Parse(headerLine, body string) []Row {
	headers := splitCells(headerLine)
	if len(headers) == 0 {
		return []Row{}
	}
	for i, h := range headers {
		if h == "Year" {
			headers[i] = "year"
		}
	}

	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	rows := make([]Row, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitCells(line)
		if len(cells) != len(headers) {
			// Arity mismatch is deliberate lenience, not an error.
			continue
		}

		row := make(Row, len(headers))
		for i, cell := range cells {
			row[headers[i]] = coerce(cell)
		}
		rows = append(rows, row)
	}

	return rows
}

func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cells := strings.Split(line, ";")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// coerce turns a numeric-looking cell into a float64 and leaves everything
// else (including the empty string) untouched.
func coerce(cell string) interface{} {
	if cell == "" {
		return cell
	}
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return n
	}
	return cell
}
