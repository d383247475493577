package loader

import (
	"fmt"
	"math"
	"os"

	"github.com/kshedden/datareader"

	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

// LoadStata reads a Stata .dta binary table into a dataset. Value
// labels are applied, so categorical columns such as country come out
// as strings. Missing numeric cells become NaN.
func LoadStata(path string) (dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return dataset.Dataset{}, apperrors.NewNotFoundError(
			fmt.Sprintf("energy price data file %s", path), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return dataset.Dataset{}, apperrors.NewNotFoundError(
			fmt.Sprintf("energy price data file %s", path), err)
	}
	defer f.Close()

	reader, err := datareader.NewStataReader(f)
	if err != nil {
		return dataset.Dataset{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to read Stata header of %s", path), err)
	}
	reader.ConvertDates = true
	reader.InsertCategoryLabels = true

	series, err := reader.Read(-1)
	if err != nil {
		return dataset.Dataset{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to read Stata records of %s", path), err)
	}

	return seriesToDataset(reader.ColumnNames(), series)
}

// seriesToDataset converts datareader's column-oriented Series output
// into the row-oriented dataset the pipeline stages work on.
func seriesToDataset(names []string, series []*datareader.Series) (dataset.Dataset, error) {
	ds := dataset.New(names...)
	if len(series) == 0 {
		return ds, nil
	}

	numRows := series[0].Length()
	columns := make([][]any, len(series))
	for ci, ser := range series {
		if ser.Length() != numRows {
			return dataset.Dataset{}, apperrors.NewParsingError(
				fmt.Sprintf("column %s has %d values, expected %d", names[ci], ser.Length(), numRows), nil)
		}
		cells := make([]any, numRows)
		if values, missing, err := ser.AsFloat64Slice(); err == nil {
			for ri, v := range values {
				if missing != nil && missing[ri] {
					cells[ri] = math.NaN()
				} else {
					cells[ri] = v
				}
			}
		} else if values, missing, err := ser.AsStringSlice(); err == nil {
			for ri, v := range values {
				if missing != nil && missing[ri] {
					cells[ri] = ""
				} else {
					cells[ri] = v
				}
			}
		} else {
			return dataset.Dataset{}, apperrors.NewParsingError(
				fmt.Sprintf("column %s has an unsupported Stata type", names[ci]), err)
		}
		columns[ci] = cells
	}

	for ri := 0; ri < numRows; ri++ {
		row := make([]any, len(columns))
		for ci := range columns {
			row[ci] = columns[ci][ri]
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}
