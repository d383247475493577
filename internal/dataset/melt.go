package dataset

import (
	"fmt"

	apperrors "fusecli/internal/errors"
)

// Melt reshapes the dataset from wide to long form. Every column not
// listed in idVars is treated as a value column: for each input row and
// each value column, one output row is produced carrying the id cells,
// the value column's name under varName, and its cell under valueName.
// Output rows are grouped by input row, value columns in their original
// left-to-right order.
func (d Dataset) Melt(idVars []string, varName, valueName string) (Dataset, error) {
	idIdx := make([]int, len(idVars))
	isID := make(map[int]bool, len(idVars))
	for i, name := range idVars {
		ci, ok := d.ColumnIndex(name)
		if !ok {
			return Dataset{}, apperrors.NewValidationError(
				fmt.Sprintf("melt id column %q not present in dataset", name))
		}
		idIdx[i] = ci
		isID[ci] = true
	}

	var valueIdx []int
	for ci := range d.Columns {
		if !isID[ci] {
			valueIdx = append(valueIdx, ci)
		}
	}

	columns := append(append([]string(nil), idVars...), varName, valueName)
	out := Dataset{Columns: columns}
	out.Rows = make([][]any, 0, len(d.Rows)*len(valueIdx))
	for _, row := range d.Rows {
		for _, vi := range valueIdx {
			cells := make([]any, 0, len(columns))
			for _, ii := range idIdx {
				cells = append(cells, row[ii])
			}
			cells = append(cells, d.Columns[vi], row[vi])
			out.Rows = append(out.Rows, cells)
		}
	}
	return out, nil
}
