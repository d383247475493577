package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "fusecli/internal/errors"
)

// InnerJoin matches rows of d against rows of right where the leftKeys
// cells equal the rightKeys cells pairwise, and returns the combined
// rows. Only matching rows survive; multiple matches on either side
// produce the cross product. Output columns are d's columns followed by
// right's columns minus its key columns.
//
// Key cells are normalized before comparison so that an int year joins
// against a float or string year holding the same value.
func (d Dataset) InnerJoin(right Dataset, leftKeys, rightKeys []string) (Dataset, error) {
	if len(leftKeys) != len(rightKeys) {
		return Dataset{}, apperrors.NewValidationError(
			fmt.Sprintf("join key count mismatch: %d left, %d right", len(leftKeys), len(rightKeys)))
	}

	leftIdx := make([]int, len(leftKeys))
	for i, name := range leftKeys {
		ci, ok := d.ColumnIndex(name)
		if !ok {
			return Dataset{}, apperrors.NewValidationError(
				fmt.Sprintf("join key %q not present in left dataset", name))
		}
		leftIdx[i] = ci
	}
	rightIdx := make([]int, len(rightKeys))
	isRightKey := make(map[int]bool, len(rightKeys))
	for i, name := range rightKeys {
		ci, ok := right.ColumnIndex(name)
		if !ok {
			return Dataset{}, apperrors.NewValidationError(
				fmt.Sprintf("join key %q not present in right dataset", name))
		}
		rightIdx[i] = ci
		isRightKey[ci] = true
	}

	// Hash the right side by normalized key.
	index := make(map[string][]int, len(right.Rows))
	for ri, row := range right.Rows {
		key := joinKey(row, rightIdx)
		index[key] = append(index[key], ri)
	}

	var carryIdx []int
	for ci := range right.Columns {
		if !isRightKey[ci] {
			carryIdx = append(carryIdx, ci)
		}
	}

	columns := append([]string(nil), d.Columns...)
	for _, ci := range carryIdx {
		columns = append(columns, right.Columns[ci])
	}

	out := Dataset{Columns: columns}
	for _, row := range d.Rows {
		for _, ri := range index[joinKey(row, leftIdx)] {
			cells := make([]any, 0, len(columns))
			cells = append(cells, row...)
			for _, ci := range carryIdx {
				cells = append(cells, right.Rows[ri][ci])
			}
			out.Rows = append(out.Rows, cells)
		}
	}
	return out, nil
}

// joinKey builds the normalized composite key for one row.
func joinKey(row []any, indices []int) string {
	parts := make([]string, len(indices))
	for i, ci := range indices {
		parts[i] = normalizeKeyCell(row[ci])
	}
	return strings.Join(parts, "\x1f")
}

// normalizeKeyCell maps a key cell to a canonical string so that
// int(2020), float64(2020) and "2020" all produce the same key.
func normalizeKeyCell(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) && !math.IsNaN(x) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil && n == math.Trunc(n) {
			return strconv.FormatInt(int64(n), 10)
		}
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
