package order

import (
	"strconv"
	"strings"
)

// Field is one CSV cell. Quoted fields are wrapped in double quotes with
// internal quotes doubled; raw fields are written as-is (line numbers and
// bare quantities in the exports).
type Field struct {
	Text   string
	Quoted bool
}

func quoted(s string) Field {
	return Field{Text: s, Quoted: true}
}

func raw(s string) Field {
	return Field{Text: s}
}

// csvLine joins a row of fields with commas, escaping quoted fields.
func csvLine(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f.Quoted {
			parts[i] = `"` + strings.ReplaceAll(f.Text, `"`, `""`) + `"`
		} else {
			parts[i] = f.Text
		}
	}
	return strings.Join(parts, ",")
}

// CSV renders a header line followed by one line per row, joined with \n and
// no trailing newline. Header fields are written unquoted.
func CSV(header []string, rows [][]Field) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		lines = append(lines, csvLine(row))
	}
	return strings.Join(lines, "\n")
}

// formatNumber renders a number without an exponent and without trailing
// zeros, independent of locale.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatMoney renders a monetary value with exactly two decimal places.
func formatMoney(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
