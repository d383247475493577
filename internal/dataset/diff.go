package dataset

import "math"

// CellDiff records one conflicting cell between two row-aligned
// datasets.
type CellDiff struct {
	Column string
	Left   any
	Right  any
}

// RowDiff lists the conflicting cells at one row position.
type RowDiff struct {
	Row   int
	Cells []CellDiff
}

// Equal reports whether the two datasets have the same columns in the
// same order and cell-wise equal rows. NaN cells compare equal to NaN
// cells; an int cell equals a float cell holding the same value.
func (d Dataset) Equal(other Dataset) bool {
	if len(d.Columns) != len(other.Columns) || len(d.Rows) != len(other.Rows) {
		return false
	}
	for i, c := range d.Columns {
		if other.Columns[i] != c {
			return false
		}
	}
	for ri := range d.Rows {
		for ci := range d.Columns {
			if !cellsEqual(d.Rows[ri][ci], other.Rows[ri][ci]) {
				return false
			}
		}
	}
	return true
}

// Diff compares two datasets position by position and returns one
// RowDiff per row that has at least one conflicting cell. Both datasets
// must already be aligned (same columns, same row count); rows beyond
// the shorter dataset are reported with every cell in conflict against
// a nil counterpart.
func (d Dataset) Diff(other Dataset) []RowDiff {
	var diffs []RowDiff
	rows := len(d.Rows)
	if len(other.Rows) > rows {
		rows = len(other.Rows)
	}
	for ri := 0; ri < rows; ri++ {
		var cells []CellDiff
		for ci, col := range d.Columns {
			var left, right any
			if ri < len(d.Rows) {
				left = d.Rows[ri][ci]
			}
			if ri < len(other.Rows) && ci < len(other.Columns) {
				right = other.Rows[ri][ci]
			}
			if !cellsEqual(left, right) {
				cells = append(cells, CellDiff{Column: col, Left: left, Right: right})
			}
		}
		if len(cells) > 0 {
			diffs = append(diffs, RowDiff{Row: ri, Cells: cells})
		}
	}
	return diffs
}

// cellsEqual compares two cells. Numerics compare by value with
// NaN == NaN; everything else compares by formatted text.
func cellsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aNum := cellFloat(a)
	bf, bNum := cellFloat(b)
	if aNum && bNum {
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	if aNum != bNum {
		return false
	}
	return formatCell(a) == formatCell(b)
}
