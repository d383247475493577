package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
	// BOMPrefix adds a UTF-8 BOM for Excel compatibility
	BOMPrefix bool
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteDataset serializes the dataset to dir/fileName, creating the
// directory recursively if needed, and returns the output path. Failure
// to create the directory or write the file is a STORAGE error.
func (w *CSVWriter) WriteDataset(ctx context.Context, dir, fileName string, ds dataset.Dataset) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create output directory", err).
			WithContext("dir", dir)
	}

	outputPath := filepath.Join(dir, fileName)
	file, err := os.Create(outputPath)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create output file", err).
			WithContext("path", outputPath)
	}
	defer file.Close()

	if w.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", apperrors.NewStorageError("failed to write BOM", err).
				WithContext("path", outputPath)
		}
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(ds.Columns); err != nil {
		return "", apperrors.NewStorageError("failed to write header row", err).
			WithContext("path", outputPath)
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for ci, cell := range row {
			record[ci] = dataset.FormatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return "", apperrors.NewStorageError("failed to write record", err).
				WithContext("path", outputPath)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", apperrors.NewStorageError("failed to flush output file", err).
			WithContext("path", outputPath)
	}

	w.logger.InfoContext(ctx, "data saved",
		slog.String("path", outputPath),
		slog.Int("rows", ds.NumRows()))
	return outputPath, nil
}
