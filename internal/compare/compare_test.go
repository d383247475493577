package compare

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fusecli/internal/dataset"
	apperrors "fusecli/internal/errors"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFiles_SelfComparisonIsEqual(t *testing.T) {
	content := "year,country,price\n2021,USA,3.5\n2020,France,2.0\n"
	a := writeCSV(t, "a.csv", content)
	b := writeCSV(t, "b.csv", content)

	result, err := Files(context.Background(), a, b, discard())
	require.NoError(t, err)
	assert.True(t, result.Equal)
	assert.Empty(t, result.Diffs)
	assert.Equal(t, 2, result.GeneratedRows)
	assert.Equal(t, 2, result.OriginalRows)
}

func TestFiles_EqualAfterRowAndColumnReorder(t *testing.T) {
	a := writeCSV(t, "a.csv", "price,year,country\n2.0,2020,France\n3.5,2021,USA\n")
	b := writeCSV(t, "b.csv", "year,country,price\n2021,USA,3.5\n2020,France,2.0\n")

	result, err := Files(context.Background(), a, b, discard())
	require.NoError(t, err)
	assert.True(t, result.Equal)
}

func TestFiles_OneDifferingCell(t *testing.T) {
	a := writeCSV(t, "a.csv", "year,country,price\n2020,USA,2.0\n2021,USA,3.5\n")
	b := writeCSV(t, "b.csv", "year,country,price\n2020,USA,2.0\n2021,USA,9.9\n")

	result, err := Files(context.Background(), a, b, discard())
	require.NoError(t, err)
	assert.False(t, result.Equal)

	require.Len(t, result.Diffs, 1)
	diff := result.Diffs[0]
	require.Len(t, diff.Cells, 1)
	assert.Equal(t, "price", diff.Cells[0].Column)
	assert.Equal(t, 3.5, diff.Cells[0].Left)
	assert.Equal(t, 9.9, diff.Cells[0].Right)
}

func TestFiles_SchemaMismatch(t *testing.T) {
	a := writeCSV(t, "a.csv", "year,country\n2020,USA\n")
	b := writeCSV(t, "b.csv", "year,country,price\n2020,USA,2.0\n")

	_, err := Files(context.Background(), a, b, discard())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.Contains(t, err.Error(), "price")
}

func TestFiles_ExtraGeneratedColumnsIgnored(t *testing.T) {
	a := writeCSV(t, "a.csv", "year,country,price,extra\n2020,USA,2.0,x\n")
	b := writeCSV(t, "b.csv", "year,country,price\n2020,USA,2.0\n")

	result, err := Files(context.Background(), a, b, discard())
	require.NoError(t, err)
	assert.True(t, result.Equal)
}

func TestFiles_MissingFile(t *testing.T) {
	b := writeCSV(t, "b.csv", "year,country\n2020,USA\n")

	_, err := Files(context.Background(), filepath.Join(t.TempDir(), "gone.csv"), b, discard())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestDatasets_NaNCellsCompareEqual(t *testing.T) {
	a := dataset.New("year", "country", "price")
	require.NoError(t, a.Append(2020, "USA", math.NaN()))
	b := dataset.New("year", "country", "price")
	require.NoError(t, b.Append(2020, "USA", math.NaN()))

	result, err := Datasets(context.Background(), a, b, discard())
	require.NoError(t, err)
	assert.True(t, result.Equal)
}

func TestDatasets_RowCountMismatch(t *testing.T) {
	a := dataset.New("year", "country")
	require.NoError(t, a.Append(2020, "USA"))
	require.NoError(t, a.Append(2021, "USA"))
	b := dataset.New("year", "country")
	require.NoError(t, b.Append(2020, "USA"))

	result, err := Datasets(context.Background(), a, b, discard())
	require.NoError(t, err)
	assert.False(t, result.Equal)
	require.Len(t, result.Diffs, 1)
	assert.Equal(t, 1, result.Diffs[0].Row)
}
