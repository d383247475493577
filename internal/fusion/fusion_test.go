package fusion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fusecli/internal/config"
	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

// populationInput builds a wide projection dataset the way the CSV
// loader produces it: id columns as strings, year columns as float64.
func populationInput(t *testing.T, rows ...[]any) dataset.Dataset {
	t.Helper()
	ds := dataset.New("MODEL", "SCENARIO", "REGION", "UNIT", "VAR1", "VAR2", "VAR3", "VAR4", "2020", "2050", "2100")
	for _, row := range rows {
		require.NoError(t, ds.Append(row...))
	}
	return ds
}

func worldRow(model, scenario string, p2020, p2050, p2100 float64) []any {
	return []any{model, scenario, "World", "million", "v1", "v2", "v3", "v4", p2020, p2050, p2100}
}

func TestFilterPopulation(t *testing.T) {
	ds := populationInput(t,
		worldRow("IIASA-WiC POP", "SSP3_v9_130115", 100, 200, 300),
		worldRow("IIASA-WiC POP", "SSP1_v9_130115", 1, 2, 3),
		worldRow("OECD Env-Growth", "SSP3_v9_130115", 4, 5, 6),
	)

	out := FilterPopulation(ds, "IIASA-WiC POP", "SSP3_v9_130115")
	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, 100.0, out.Rows[0][8])
}

func TestFilterPopulation_NoMatchIsEmptyNotError(t *testing.T) {
	ds := populationInput(t, worldRow("IIASA-WiC POP", "SSP3_v9_130115", 100, 200, 300))

	out := FilterPopulation(ds, "IIASA-WiC POP", "SSP5_v9_130115")
	assert.Equal(t, 0, out.NumRows())
}

func TestMeltPopulation(t *testing.T) {
	ds := populationInput(t, worldRow("IIASA-WiC POP", "SSP3_v9_130115", 100, 200, 300))

	melted, err := MeltPopulation(ds)
	require.NoError(t, err)

	assert.Equal(t, []string{"MODEL", "SCENARIO", "REGION", "UNIT", "VAR1", "VAR2", "VAR3", "VAR4", "year", "pop"}, melted.Columns)
	require.Equal(t, 3, melted.NumRows())

	yearIdx, _ := melted.ColumnIndex("year")
	popIdx, _ := melted.ColumnIndex("pop")
	assert.Equal(t, 2020, melted.Rows[0][yearIdx])
	assert.Equal(t, 100.0, melted.Rows[0][popIdx])
	assert.Equal(t, 2100, melted.Rows[2][yearIdx])
	assert.Equal(t, 300.0, melted.Rows[2][popIdx])
}

func TestMeltPopulation_NonYearColumn(t *testing.T) {
	ds := dataset.New("MODEL", "SCENARIO", "REGION", "UNIT", "VAR1", "VAR2", "VAR3", "VAR4", "notes")
	require.NoError(t, ds.Append("m", "s", "World", "u", "a", "b", "c", "d", "free text"))

	_, err := MeltPopulation(ds)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func meltedSeries(t *testing.T, region string, points map[int]float64) dataset.Dataset {
	t.Helper()
	ds := dataset.New("REGION", "year", "pop")
	for year, pop := range points {
		require.NoError(t, ds.Append(region, year, pop))
	}
	return ds
}

func TestInterpolate_AnchorPassThrough(t *testing.T) {
	ds := meltedSeries(t, "World", map[int]float64{2020: 100, 2050: 200, 2080: 260})

	out, err := Interpolate(ds, 2020, 2100)
	require.NoError(t, err)
	require.Equal(t, 80, out.NumRows())

	values := seriesByYear(t, out, "World")
	assert.Equal(t, 100.0, values[2020])
	assert.Equal(t, 200.0, values[2050])
	assert.Equal(t, 260.0, values[2080])
}

func TestInterpolate_WorldScenario(t *testing.T) {
	// Anchors 2020:100, 2050:200, 2100:300; 2100 lies outside the
	// emitted range but still shapes the 2050..2099 segment.
	ds := meltedSeries(t, "World", map[int]float64{2020: 100, 2050: 200, 2100: 300})

	out, err := Interpolate(ds, 2020, 2100)
	require.NoError(t, err)

	values := seriesByYear(t, out, "World")
	assert.Equal(t, 100.0, values[2020])
	assert.Equal(t, 150.0, values[2035])
	assert.InDelta(t, 298.0, values[2099], 1e-9)
	_, has2100 := values[2100]
	assert.False(t, has2100)
}

func TestInterpolate_ClampsOutsideObservedRange(t *testing.T) {
	ds := meltedSeries(t, "World", map[int]float64{2040: 50, 2060: 70})

	out, err := Interpolate(ds, 2020, 2100)
	require.NoError(t, err)

	values := seriesByYear(t, out, "World")
	assert.Equal(t, 50.0, values[2020])
	assert.Equal(t, 50.0, values[2039])
	assert.Equal(t, 70.0, values[2061])
	assert.Equal(t, 70.0, values[2099])
}

func TestInterpolate_SingleAnchorIsConstant(t *testing.T) {
	ds := meltedSeries(t, "World", map[int]float64{2050: 42})

	out, err := Interpolate(ds, 2020, 2100)
	require.NoError(t, err)

	values := seriesByYear(t, out, "World")
	assert.Equal(t, 42.0, values[2020])
	assert.Equal(t, 42.0, values[2050])
	assert.Equal(t, 42.0, values[2099])
}

func TestInterpolate_UnsortedInputYears(t *testing.T) {
	ds := dataset.New("REGION", "year", "pop")
	require.NoError(t, ds.Append("World", 2090, 300.0))
	require.NoError(t, ds.Append("World", 2020, 100.0))
	require.NoError(t, ds.Append("World", 2055, 200.0))

	out, err := Interpolate(ds, 2020, 2100)
	require.NoError(t, err)

	values := seriesByYear(t, out, "World")
	assert.Equal(t, 100.0, values[2020])
	assert.Equal(t, 200.0, values[2055])
	assert.Equal(t, 300.0, values[2090])
}

func TestInterpolate_RegionsInFirstOccurrenceOrder(t *testing.T) {
	ds := dataset.New("REGION", "year", "pop")
	require.NoError(t, ds.Append("Zambia", 2020, 1.0))
	require.NoError(t, ds.Append("Austria", 2020, 2.0))
	require.NoError(t, ds.Append("Zambia", 2050, 3.0))

	out, err := Interpolate(ds, 2020, 2100)
	require.NoError(t, err)
	require.Equal(t, 160, out.NumRows())

	assert.Equal(t, "Zambia", out.Rows[0][0])
	assert.Equal(t, "Austria", out.Rows[80][0])
	// 80 consecutive year rows per region.
	assert.Equal(t, 2020, out.Rows[0][1])
	assert.Equal(t, 2099, out.Rows[79][1])
}

func TestInterpolate_NoAnchorsFails(t *testing.T) {
	ds := dataset.New("REGION", "year", "pop")
	require.NoError(t, ds.Append("World", 2020, math.NaN()))

	_, err := Interpolate(ds, 2020, 2100)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInsufficientData))
	assert.Contains(t, err.Error(), "World")
}

func TestInterpolate_EmptyInputYieldsEmptyOutput(t *testing.T) {
	ds := dataset.New("REGION", "year", "pop")

	out, err := Interpolate(ds, 2020, 2100)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NumRows())
}

func priceTable(t *testing.T, rows ...[]any) dataset.Dataset {
	t.Helper()
	ds := dataset.New("country", "year",
		"other_energycompile_price", "electricitycompile_price", "electricitycompile_peakprice")
	for _, row := range rows {
		require.NoError(t, ds.Append(row...))
	}
	return ds
}

func TestMerge(t *testing.T) {
	population := dataset.New("REGION", "year", "pop")
	require.NoError(t, population.Append("USA", 2020, 330.0))
	require.NoError(t, population.Append("USA", 2021, 331.0))
	require.NoError(t, population.Append("Atlantis", 2020, 1.0))

	prices := priceTable(t,
		[]any{"USA", 2020.0, 1.1, 2.2, 3.3},
		[]any{"France", 2020.0, 4.4, 5.5, 6.6},
	)

	out, err := Merge(population, prices)
	require.NoError(t, err)

	assert.Equal(t, config.OutputColumns, out.Columns)
	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, []any{2020, 330.0, "USA", 1.1, 2.2, 3.3}, out.Rows[0])
}

func TestMerge_RowCountBound(t *testing.T) {
	population := dataset.New("REGION", "year", "pop")
	require.NoError(t, population.Append("USA", 2020, 330.0))
	require.NoError(t, population.Append("France", 2020, 67.0))

	prices := priceTable(t,
		[]any{"USA", 2020.0, 1.0, 2.0, 3.0},
		[]any{"USA", 2021.0, 1.5, 2.5, 3.5},
		[]any{"France", 2020.0, 4.0, 5.0, 6.0},
	)

	out, err := Merge(population, prices)
	require.NoError(t, err)
	assert.LessOrEqual(t, out.NumRows(), population.NumRows())
	assert.LessOrEqual(t, out.NumRows(), prices.NumRows())
}

func TestCombined_EndToEnd(t *testing.T) {
	popData := populationInput(t,
		worldRow("IIASA-WiC POP", "SSP3_v9_130115", 100, 200, 300),
		worldRow("OECD Env-Growth", "SSP3_v9_130115", 999, 999, 999),
	)
	prices := priceTable(t,
		[]any{"World", 2035.0, 1.0, 2.0, 3.0},
		[]any{"World", 2099.0, 4.0, 5.0, 6.0},
		[]any{"Mars", 2035.0, 7.0, 8.0, 9.0},
	)

	cfg := config.Default().Pipeline
	out, err := Combined(popData, prices, cfg)
	require.NoError(t, err)

	require.Equal(t, 2, out.NumRows())
	assert.Equal(t, []any{2035, 150.0, "World", 1.0, 2.0, 3.0}, out.Rows[0])
	year2099 := out.Rows[1]
	assert.Equal(t, 2099, year2099[0])
	assert.InDelta(t, 298.0, year2099[1].(float64), 1e-9)
}

// seriesByYear indexes the interpolated rows of one region by year.
func seriesByYear(t *testing.T, ds dataset.Dataset, region string) map[int]float64 {
	t.Helper()
	values := make(map[int]float64)
	for _, row := range ds.Rows {
		if row[0] != region {
			continue
		}
		year, ok := row[1].(int)
		require.True(t, ok)
		pop, ok := row[2].(float64)
		require.True(t, ok)
		values[year] = pop
	}
	return values
}
