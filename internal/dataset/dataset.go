package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	apperrors "fusecli/internal/errors"
)

// Dataset is an in-memory table. Columns is the ordered list of column
// names; every row in Rows has exactly len(Columns) cells. Cell values
// are string, int, or float64 (math.NaN() marks a missing numeric).
type Dataset struct {
	Columns []string
	Rows    [][]any
}

// Row is a read-only name->value view of a single row, used by Filter
// predicates.
type Row struct {
	ds  *Dataset
	idx int
}

// Get returns the named cell of the row, or nil if the column does not
// exist.
func (r Row) Get(column string) any {
	ci, ok := r.ds.ColumnIndex(column)
	if !ok {
		return nil
	}
	return r.ds.Rows[r.idx][ci]
}

// String returns the named cell as a string. Non-string cells are
// formatted with their natural representation.
func (r Row) String(column string) string {
	return formatCell(r.Get(column))
}

// New creates a dataset with the given columns and no rows.
func New(columns ...string) Dataset {
	return Dataset{Columns: columns}
}

// NumRows returns the number of rows.
func (d Dataset) NumRows() int {
	return len(d.Rows)
}

// NumColumns returns the number of columns.
func (d Dataset) NumColumns() int {
	return len(d.Columns)
}

// Shape returns (rows, columns), mirroring the diagnostic output of the
// comparator.
func (d Dataset) Shape() (int, int) {
	return len(d.Rows), len(d.Columns)
}

// ColumnIndex returns the position of the named column.
func (d Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Append adds a row. The row must have one cell per column.
func (d *Dataset) Append(row ...any) error {
	if len(row) != len(d.Columns) {
		return apperrors.NewValidationError(
			fmt.Sprintf("row has %d cells, dataset has %d columns", len(row), len(d.Columns)))
	}
	d.Rows = append(d.Rows, row)
	return nil
}

// Select returns a new dataset containing the requested columns in the
// requested order. A column absent from the dataset yields a
// VALIDATION error; this is the comparator's SchemaMismatch condition.
func (d Dataset) Select(columns ...string) (Dataset, error) {
	indices := make([]int, len(columns))
	for i, name := range columns {
		ci, ok := d.ColumnIndex(name)
		if !ok {
			return Dataset{}, apperrors.NewValidationError(
				fmt.Sprintf("column %q not present in dataset", name))
		}
		indices[i] = ci
	}

	out := Dataset{Columns: append([]string(nil), columns...)}
	out.Rows = make([][]any, len(d.Rows))
	for ri, row := range d.Rows {
		cells := make([]any, len(indices))
		for i, ci := range indices {
			cells[i] = row[ci]
		}
		out.Rows[ri] = cells
	}
	return out, nil
}

// SortBy returns a new dataset with rows stably sorted ascending by the
// given key columns. Numeric cells compare numerically, strings
// lexically; mixed cells fall back to string comparison. Rows with
// equal keys keep their input order.
func (d Dataset) SortBy(keys ...string) (Dataset, error) {
	indices := make([]int, len(keys))
	for i, name := range keys {
		ci, ok := d.ColumnIndex(name)
		if !ok {
			return Dataset{}, apperrors.NewValidationError(
				fmt.Sprintf("sort key %q not present in dataset", name))
		}
		indices[i] = ci
	}

	out := Dataset{Columns: append([]string(nil), d.Columns...)}
	out.Rows = make([][]any, len(d.Rows))
	copy(out.Rows, d.Rows)

	sort.SliceStable(out.Rows, func(a, b int) bool {
		for _, ci := range indices {
			if c := compareCells(out.Rows[a][ci], out.Rows[b][ci]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out, nil
}

// Filter returns a new dataset containing only the rows for which keep
// returns true. Zero matching rows is not an error.
func (d Dataset) Filter(keep func(Row) bool) Dataset {
	out := Dataset{Columns: append([]string(nil), d.Columns...)}
	for i := range d.Rows {
		if keep(Row{ds: &d, idx: i}) {
			out.Rows = append(out.Rows, d.Rows[i])
		}
	}
	return out
}

// compareCells orders two cells: numeric vs numeric compares by value,
// otherwise both sides are formatted and compared as strings. NaN sorts
// before any other numeric, matching the ascending sort the comparator
// depends on.
func compareCells(a, b any) int {
	af, aNum := cellFloat(a)
	bf, bNum := cellFloat(b)
	if aNum && bNum {
		switch {
		case math.IsNaN(af) && math.IsNaN(bf):
			return 0
		case math.IsNaN(af):
			return -1
		case math.IsNaN(bf):
			return 1
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, bs := formatCell(a), formatCell(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// cellFloat reports the numeric value of a cell, if it has one.
func cellFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// formatCell renders a cell the way the CSV writer does: integers
// without a decimal point, floats with the shortest round-trip
// representation.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) && !math.IsNaN(x) && math.Abs(x) < 1e15 {
			return strconv.FormatFloat(x, 'f', 1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// FormatCell renders a single cell for CSV output and diff reporting.
func FormatCell(v any) string {
	return formatCell(v)
}
