package fusion

import (
	"fmt"
	"math"
	"sort"

	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

// anchor is one known (year, pop) observation for a region.
type anchor struct {
	year int
	pop  float64
}

// Interpolate produces a dense population series: one row per (region,
// year) for every year in [startYear, endYear), regions in
// first-occurrence order of the melted input. Values between two
// anchors are linearly interpolated; target years at or beyond the
// observed range clamp to the nearest boundary anchor. A region with a
// single anchor yields a constant series; a region with none is an
// INSUFFICIENT_DATA error.
func Interpolate(melted dataset.Dataset, startYear, endYear int) (dataset.Dataset, error) {
	regionIdx, ok := melted.ColumnIndex("REGION")
	if !ok {
		return dataset.Dataset{}, apperrors.NewValidationError("melted dataset has no REGION column")
	}
	yearIdx, ok := melted.ColumnIndex("year")
	if !ok {
		return dataset.Dataset{}, apperrors.NewValidationError("melted dataset has no year column")
	}
	popIdx, ok := melted.ColumnIndex("pop")
	if !ok {
		return dataset.Dataset{}, apperrors.NewValidationError("melted dataset has no pop column")
	}

	var regions []string
	anchors := make(map[string][]anchor)
	for ri, row := range melted.Rows {
		region := dataset.FormatCell(row[regionIdx])
		if _, seen := anchors[region]; !seen {
			regions = append(regions, region)
			anchors[region] = nil
		}

		year, ok := row[yearIdx].(int)
		if !ok {
			return dataset.Dataset{}, apperrors.NewParsingError(
				fmt.Sprintf("row %d of melted dataset has a non-integer year", ri), nil)
		}
		pop, err := numericCell(row[popIdx])
		if err != nil {
			return dataset.Dataset{}, apperrors.NewParsingError(
				fmt.Sprintf("row %d of melted dataset has a non-numeric population", ri), err)
		}
		// Missing observations carry no information; a region whose
		// observations are all missing ends up with zero anchors.
		if !math.IsNaN(pop) {
			anchors[region] = append(anchors[region], anchor{year: year, pop: pop})
		}
	}

	out := dataset.New("REGION", "year", "pop")
	for _, region := range regions {
		series := anchors[region]
		if len(series) == 0 {
			return dataset.Dataset{}, apperrors.NewInsufficientDataError(
				fmt.Sprintf("region %q has no population data points to interpolate", region))
		}
		sort.Slice(series, func(a, b int) bool { return series[a].year < series[b].year })

		for year := startYear; year < endYear; year++ {
			out.Rows = append(out.Rows, []any{region, year, interpolateAt(series, year)})
		}
	}
	return out, nil
}

// interpolateAt evaluates the piecewise-linear function through the
// sorted anchors at the target year, clamping outside the observed
// range.
func interpolateAt(series []anchor, year int) float64 {
	first, last := series[0], series[len(series)-1]
	if year <= first.year {
		return first.pop
	}
	if year >= last.year {
		return last.pop
	}

	// First anchor at or beyond the target year.
	hi := sort.Search(len(series), func(i int) bool { return series[i].year >= year })
	if series[hi].year == year {
		return series[hi].pop
	}
	lo := hi - 1
	a, b := series[lo], series[hi]
	frac := float64(year-a.year) / float64(b.year-a.year)
	return a.pop + frac*(b.pop-a.pop)
}

// numericCell coerces a population cell to float64.
func numericCell(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("cell %v has type %T", v, v)
	}
}
