package fusion

import (
	"fmt"
	"strconv"

	"fusecli/internal/config"
	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

// FilterPopulation keeps only the rows of one model/scenario
// combination. Zero matching rows is not an error; downstream stages
// then run on an empty dataset.
func FilterPopulation(ds dataset.Dataset, model, scenario string) dataset.Dataset {
	return ds.Filter(func(r dataset.Row) bool {
		return r.String("MODEL") == model && r.String("SCENARIO") == scenario
	})
}

// MeltPopulation reshapes the filtered projection data from one row per
// region with a column per year into one row per (region, year), with
// the year parsed as an integer under "year" and its cell under "pop".
func MeltPopulation(ds dataset.Dataset) (dataset.Dataset, error) {
	melted, err := ds.Melt(config.PopulationIDColumns, "year", "pop")
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("melt population data: %w", err)
	}

	yearIdx, _ := melted.ColumnIndex("year")
	for ri, row := range melted.Rows {
		name, ok := row[yearIdx].(string)
		if !ok {
			name = dataset.FormatCell(row[yearIdx])
		}
		year, err := strconv.Atoi(name)
		if err != nil {
			return dataset.Dataset{}, apperrors.NewParsingError(
				fmt.Sprintf("population column %q is not a year", name), err).
				WithContext("row", ri)
		}
		row[yearIdx] = year
	}
	return melted, nil
}

// Merge joins the interpolated population series against the energy
// price table on (REGION, year) = (country, year) and projects the
// result onto the output column order. Standard inner-join semantics:
// unmatched rows drop, duplicate keys multiply.
func Merge(population, prices dataset.Dataset) (dataset.Dataset, error) {
	combined, err := population.InnerJoin(prices,
		[]string{"REGION", "year"}, []string{"country", "year"})
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("join population against prices: %w", err)
	}

	// The join consumed the right-side key columns; the output carries
	// the region value under its price-table name.
	renamed := combined
	if ci, ok := renamed.ColumnIndex("REGION"); ok {
		renamed.Columns = append([]string(nil), renamed.Columns...)
		renamed.Columns[ci] = "country"
	}

	out, err := renamed.Select(config.OutputColumns...)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("project combined columns: %w", err)
	}
	return out, nil
}
