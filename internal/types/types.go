package types

// Table holds a parsed spreadsheet: one header row plus raw cell text for
// every data row. Rows may be shorter than Headers when the source file is
// ragged; Cell papers over that.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the cell at (row, col), or "" when the row is short or the
// indices are out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}
