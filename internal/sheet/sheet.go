// Package sheet holds the row normalizer every spreadsheet read goes through.
package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one spreadsheet row as delivered by a source. Cells may be strings,
// numbers, booleans or nil, and trailing cells are often omitted.
type Row []any

// Cell returns the normalized string value of row[index]. Absent cells yield "".
func Cell(row Row, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	raw := stringify(row[index])
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, `"`)
	raw = strings.TrimSuffix(raw, `"`)
	return strings.TrimSpace(raw)
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Rows converts a string grid (for example from a workbook) into rows.
func Rows(grid [][]string) []Row {
	rows := make([]Row, len(grid))
	for i, cells := range grid {
		row := make(Row, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		rows[i] = row
	}
	return rows
}

// At returns rows[index], or an empty row when index is outside the grid.
func At(rows []Row, index int) Row {
	if index < 0 || index >= len(rows) {
		return nil
	}
	return rows[index]
}

// NormalizeKey lowercases s and drops everything except ASCII letters and digits,
// so "Tug-of-War" and "tug of war" compare equal.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LeadingInt parses an optional sign followed by leading digits ("2nd" -> 2).
// ok is false when no digits are present.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
