package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

// LoadCSV reads a CSV file with a header row into a dataset. Each
// column is scanned once: if every non-empty cell parses as a number
// the column becomes float64 (empty cells as NaN), otherwise it stays
// string.
func LoadCSV(path string) (dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return dataset.Dataset{}, apperrors.NewNotFoundError(
			fmt.Sprintf("data file %s", path), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return dataset.Dataset{}, apperrors.NewNotFoundError(
			fmt.Sprintf("data file %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return dataset.Dataset{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to parse CSV file %s", path), err)
	}
	if len(records) == 0 {
		return dataset.Dataset{}, apperrors.NewParsingError(
			fmt.Sprintf("CSV file %s has no header row", path), nil)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return buildDataset(path, header, records[1:])
}

// LoadPopulation reads the population projection file, dispatching on
// the file extension: .xlsx workbooks go through excelize, anything
// else is treated as CSV.
func LoadPopulation(path string) (dataset.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadExcel(path)
	}
	return LoadCSV(path)
}

// buildDataset turns raw string records into a typed dataset, applying
// per-column numeric inference.
func buildDataset(path string, header []string, records [][]string) (dataset.Dataset, error) {
	numeric := make([]bool, len(header))
	for ci := range header {
		numeric[ci] = columnIsNumeric(records, ci)
	}

	ds := dataset.New(header...)
	for ri, record := range records {
		if len(record) != len(header) {
			return dataset.Dataset{}, apperrors.NewParsingError(
				fmt.Sprintf("row %d of %s has %d fields, header has %d",
					ri+1, path, len(record), len(header)), nil)
		}
		cells := make([]any, len(header))
		for ci, raw := range record {
			raw = strings.TrimSpace(raw)
			if numeric[ci] {
				if raw == "" {
					cells[ci] = math.NaN()
				} else {
					v, _ := strconv.ParseFloat(raw, 64)
					cells[ci] = v
				}
			} else {
				cells[ci] = raw
			}
		}
		ds.Rows = append(ds.Rows, cells)
	}
	return ds, nil
}

// columnIsNumeric reports whether every non-empty cell in the column
// parses as a float. Columns with no non-empty cells stay string.
func columnIsNumeric(records [][]string, ci int) bool {
	seen := false
	for _, record := range records {
		if ci >= len(record) {
			continue
		}
		raw := strings.TrimSpace(record[ci])
		if raw == "" {
			continue
		}
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
