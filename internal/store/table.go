package store

import "fmt"

// Table is an in-memory copy of one CSV file: a header and rows of string
// cells. Every row holds exactly one cell per column.
//
// Tables never share storage. Constructors and accessors copy, so a Table
// derived from another can be modified without affecting its source.
type Table struct {
	columns []string
	rows    [][]string
}

// Column is a single column's values across every row of a table, in row order.
type Column struct {
	Name   string
	Values []string
}

// Record is one row paired with the header it was read under.
type Record struct {
	Columns []string
	Values  []string
}

// Get returns the value of the named column.
func (r *Record) Get(column string) (string, bool) {
	for i, c := range r.Columns {
		if c == column {
			if i < len(r.Values) {
				return r.Values[i], true
			}
			return "", true
		}
	}
	return "", false
}

// New builds a table from columns and rows. Short rows are padded with empty
// cells and long rows are truncated to the column count.
func New(columns []string, rows ...[]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.appendRow(r)
	}
	return t
}

// appendRow copies cells into a new row sized to the header.
func (t *Table) appendRow(cells []string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns a copy of row i. It panics if i is out of range, like a slice index.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Rows returns a deep copy of every row.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// ColumnIndex returns the position of the first column named name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row i in the named column.
func (t *Table) Cell(i int, column string) (string, error) {
	idx, err := t.index(column)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(t.rows) {
		return "", fmt.Errorf("row %d of %d: %w", i, len(t.rows), ErrIndexOutOfRange)
	}
	return t.rows[i][idx], nil
}

// Record returns row i as a Record.
func (t *Table) Record(i int) *Record {
	return &Record{Columns: t.Columns(), Values: t.Row(i)}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	return New(t.columns, t.rows...)
}

// index resolves a column name or reports ErrColumnNotFound.
func (t *Table) index(column string) (int, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	return idx, nil
}

// emptyLike returns a table with t's header and no rows.
func (t *Table) emptyLike(capacity int) *Table {
	return &Table{
		columns: append([]string(nil), t.columns...),
		rows:    make([][]string, 0, capacity),
	}
}
