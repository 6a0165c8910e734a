package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// JoinPlaceholder fills the right-hand columns of a KeyJoin row with no match.
const JoinPlaceholder = "-"

/* ---- FILTERING ---- */

// Filter returns the rows of t whose cell in column equals value exactly,
// in their original order.
func Filter(t *Table, column, value string) (*Table, error) {
	if t == nil {
		return nil, ErrNoTable
	}
	idx, err := t.index(column)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	out := t.emptyLike(0)
	for _, row := range t.rows {
		if row[idx] == value {
			out.appendRow(row)
		}
	}
	return out, nil
}

// FilterTwo applies two Filters in sequence.
func FilterTwo(t *Table, column1, value1, column2, value2 string) (*Table, error) {
	first, err := Filter(t, column1, value1)
	if err != nil {
		return nil, err
	}
	return Filter(first, column2, value2)
}

/* ---- JOIN ---- */

// KeyJoin left-joins right onto left where right's rightKey cell equals
// left's leftKey cell. The result has left's columns followed by right's
// columns without rightKey, and exactly one row per left row. The first
// matching right row wins; a left row without a match gets JoinPlaceholder
// in every right-hand column.
func KeyJoin(left *Table, leftKey string, right *Table, rightKey string) (*Table, error) {
	if left == nil || right == nil {
		return nil, ErrNoTable
	}
	li, err := left.index(leftKey)
	if err != nil {
		return nil, fmt.Errorf("join left: %w", err)
	}
	ri, err := right.index(rightKey)
	if err != nil {
		return nil, fmt.Errorf("join right: %w", err)
	}

	columns := append([]string(nil), left.columns...)
	for i, c := range right.columns {
		if i != ri {
			columns = append(columns, c)
		}
	}

	out := &Table{columns: columns, rows: make([][]string, 0, len(left.rows))}
	for _, lrow := range left.rows {
		row := make([]string, 0, len(columns))
		row = append(row, lrow...)

		var match []string
		for _, rrow := range right.rows {
			if rrow[ri] == lrow[li] {
				match = rrow
				break
			}
		}

		for i := range right.columns {
			if i == ri {
				continue
			}
			if match == nil {
				row = append(row, JoinPlaceholder)
			} else {
				row = append(row, match[i])
			}
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

/* ---- PROJECTION ---- */

// Project returns a table holding only the requested columns, in the
// requested order.
func Project(t *Table, columns ...string) (*Table, error) {
	if t == nil {
		return nil, ErrNoTable
	}

	idx := make([]int, len(columns))
	for i, c := range columns {
		j, err := t.index(c)
		if err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
		idx[i] = j
	}

	out := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([][]string, 0, len(t.rows)),
	}
	for _, row := range t.rows {
		cells := make([]string, len(idx))
		for i, j := range idx {
			cells[i] = row[j]
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// ExtractColumn returns one column's values in row order.
func ExtractColumn(t *Table, column string) (*Column, error) {
	if t == nil {
		return nil, ErrNoTable
	}
	idx, err := t.index(column)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return &Column{Name: column, Values: values}, nil
}

/* ---- SORTING ---- */

// CompareCells orders two cells. Cells that both parse as decimal numbers
// compare numerically, numbers sort before text, and everything else
// compares byte-wise. Numerically equal cells fall back to byte order so
// "7" and "07" still have a fixed order.
func CompareCells(a, b string) int {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	switch {
	case errA == nil && errB == nil:
		if c := da.Cmp(db); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// SortByOneKey returns a copy of t ordered by column using CompareCells.
// Rows with equal keys keep their relative order.
func SortByOneKey(t *Table, column string, ascending bool) (*Table, error) {
	if t == nil {
		return nil, ErrNoTable
	}
	idx, err := t.index(column)
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}

	out := t.Clone()
	sort.SliceStable(out.rows, func(i, j int) bool {
		c := CompareCells(out.rows[i][idx], out.rows[j][idx])
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return out, nil
}

// SortByTwoKeys returns a copy of t ordered by primary, breaking ties with
// secondary. Both keys follow the ascending flag, so a descending sort is
// the exact reverse of the ascending composite order apart from full ties,
// which keep their relative order.
func SortByTwoKeys(t *Table, primary, secondary string, ascending bool) (*Table, error) {
	if t == nil {
		return nil, ErrNoTable
	}
	pi, err := t.index(primary)
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}
	si, err := t.index(secondary)
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}

	out := t.Clone()
	sort.SliceStable(out.rows, func(i, j int) bool {
		a, b := out.rows[i], out.rows[j]
		c := CompareCells(a[pi], b[pi])
		if c == 0 {
			c = CompareCells(a[si], b[si])
		}
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return out, nil
}
