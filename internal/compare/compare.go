// Package compare checks two tabular files for equal content: columns
// are aligned to the original file's order, both tables are sorted by
// (year, country), and every cell is compared. On mismatch the result
// carries a row-aligned diff naming the conflicting columns.
package compare

import (
	"context"
	"fmt"
	"log/slog"

	"fusecli/internal/config"
	"fusecli/internal/dataset"
	"fusecli/internal/loader"
)

// Result is the outcome of one comparison.
type Result struct {
	Equal bool
	Diffs []dataset.RowDiff

	GeneratedRows int
	OriginalRows  int
	Columns       []string
}

// Files loads both CSV files and compares them. The generated file must
// carry at least every column of the original file; a missing column is
// a VALIDATION error. Shapes and column lists are logged before the
// comparison for diagnostics.
func Files(ctx context.Context, generatedPath, originalPath string, logger *slog.Logger) (*Result, error) {
	generated, err := loader.LoadCSV(generatedPath)
	if err != nil {
		return nil, fmt.Errorf("load generated file: %w", err)
	}
	original, err := loader.LoadCSV(originalPath)
	if err != nil {
		return nil, fmt.Errorf("load original file: %w", err)
	}

	genRows, genCols := generated.Shape()
	origRows, origCols := original.Shape()
	logger.InfoContext(ctx, "loaded files for comparison",
		slog.String("generated", generatedPath),
		slog.Int("generated_rows", genRows),
		slog.Int("generated_columns", genCols),
		slog.String("original", originalPath),
		slog.Int("original_rows", origRows),
		slog.Int("original_columns", origCols))

	return Datasets(ctx, generated, original, logger)
}

// Datasets compares two already-loaded datasets with the same alignment
// and sorting rules Files applies.
func Datasets(ctx context.Context, generated, original dataset.Dataset, logger *slog.Logger) (*Result, error) {
	// Align the generated dataset to the original's column order.
	aligned, err := generated.Select(original.Columns...)
	if err != nil {
		return nil, fmt.Errorf("align generated columns to original: %w", err)
	}
	logger.InfoContext(ctx, "aligned columns",
		slog.Any("generated_columns", aligned.Columns),
		slog.Any("original_columns", original.Columns))

	alignedSorted, err := aligned.SortBy(config.CompareSortKeys...)
	if err != nil {
		return nil, fmt.Errorf("sort generated dataset: %w", err)
	}
	originalSorted, err := original.SortBy(config.CompareSortKeys...)
	if err != nil {
		return nil, fmt.Errorf("sort original dataset: %w", err)
	}

	result := &Result{
		GeneratedRows: alignedSorted.NumRows(),
		OriginalRows:  originalSorted.NumRows(),
		Columns:       originalSorted.Columns,
	}
	if alignedSorted.Equal(originalSorted) {
		result.Equal = true
		logger.InfoContext(ctx, "files contain the same data")
		return result, nil
	}

	result.Diffs = alignedSorted.Diff(originalSorted)
	logger.InfoContext(ctx, "files do not contain the same data",
		slog.Int("differing_rows", len(result.Diffs)))
	return result, nil
}
