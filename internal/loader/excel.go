package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

// LoadExcel reads an xlsx workbook into a dataset. The SSP database
// ships projections as workbooks with the data on a sheet whose header
// row carries the MODEL and SCENARIO columns, so sheets are probed in
// order until one matches. Type inference is identical to the CSV
// path.
func LoadExcel(path string) (dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return dataset.Dataset{}, apperrors.NewNotFoundError(
			fmt.Sprintf("data file %s", path), err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataset.Dataset{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	var rows [][]string
	found := false
	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil || len(sheetRows) == 0 {
			continue
		}
		if isProjectionHeader(sheetRows[0]) {
			rows = sheetRows
			found = true
			break
		}
	}
	if !found {
		return dataset.Dataset{}, apperrors.NewParsingError(
			fmt.Sprintf("no sheet in %s carries a MODEL/SCENARIO header row", path), nil)
	}

	header := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		header[i] = strings.TrimSpace(c)
	}

	// excelize truncates trailing empty cells per row; pad them back so
	// every record matches the header width.
	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]string, len(header))
		copy(record, row)
		records = append(records, record)
	}
	return buildDataset(path, header, records)
}

// isProjectionHeader reports whether a header row names both selection
// columns of the projection data.
func isProjectionHeader(header []string) bool {
	hasModel, hasScenario := false, false
	for _, c := range header {
		switch strings.TrimSpace(c) {
		case "MODEL":
			hasModel = true
		case "SCENARIO":
			hasScenario = true
		}
	}
	return hasModel && hasScenario
}
