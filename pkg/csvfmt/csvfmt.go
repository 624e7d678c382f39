// Package csvfmt renders tool results as CSV text. Tools return tabular
// data to the agent as delimited text rather than nested objects, so the
// LLM can scan rows without parsing structure.
package csvfmt

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Table accumulates rows under a fixed header.
type Table struct {
	Header []string
	rows   [][]string
}

// New creates a table with the given column order.
func New(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow appends a row. Values are converted with Value; the row is padded
// or truncated to the header width.
func (t *Table) AddRow(vals ...any) {
	row := make([]string, len(t.Header))
	for i := range t.Header {
		if i < len(vals) {
			row[i] = Value(vals[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the table as CSV text, header first.
// CRLF row endings match the output the agent prompts were tuned on.
func (t *Table) Render() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.UseCRLF = true
	_ = w.Write(t.Header)
	_ = w.WriteAll(t.rows)
	w.Flush()
	return sb.String()
}

// RenderOr returns the rendered CSV, or the sentinel when the table is
// empty. Empty result sets must read as a fixed phrase, not a bare header.
func (t *Table) RenderOr(sentinel string) string {
	if t.Empty() {
		return sentinel
	}
	return t.Render()
}

// Value converts a cell to its CSV text form. Nil values become empty
// strings.
func Value(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case *string:
		if tv == nil {
			return ""
		}
		return *tv
	case bool:
		return strconv.FormatBool(tv)
	case int:
		return strconv.Itoa(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case uint64:
		return strconv.FormatUint(tv, 10)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case *float64:
		if tv == nil {
			return ""
		}
		return strconv.FormatFloat(*tv, 'f', -1, 64)
	case json.Number:
		// Normalize "1.0" and friends the same way float64 renders.
		if f, err := tv.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return tv.String()
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprintf("%v", tv)
	}
}
