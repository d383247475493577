// Command comparecsv checks whether two CSV files contain the same
// data. Columns of the generated file are aligned to the original
// file's order, both tables are sorted by (year, country), and every
// cell is compared; differences are printed as a row-aligned table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"fusecli/internal/compare"
	"fusecli/internal/config"
	"fusecli/internal/dataset"
	"fusecli/internal/infrastructure"
)

func main() {
	generated := flag.String("generated", "", "generated CSV file (default output/valinfo.csv)")
	original := flag.String("original", "", "original CSV file (default data/valinfo_orig.csv)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *generated != "" {
		cfg.Compare.GeneratedFile = *generated
	}
	if *original != "" {
		cfg.Compare.OriginalFile = *original
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())
	logger.InfoContext(ctx, "Starting file comparison",
		slog.String("generated", cfg.Compare.GeneratedFile),
		slog.String("original", cfg.Compare.OriginalFile))

	result, err := compare.Files(ctx, cfg.Compare.GeneratedFile, cfg.Compare.OriginalFile, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Comparison failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if result.Equal {
		fmt.Println("The files contain the same data.")
		return
	}

	fmt.Println("The files do not contain the same data.")
	fmt.Println("Differences between the files:")
	printDiffs(os.Stdout, result.Diffs)
	os.Exit(1)
}

// printDiffs renders the row-aligned differences as an aligned table.
func printDiffs(out io.Writer, diffs []dataset.RowDiff) {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "row\tcolumn\tgenerated\toriginal")
	for _, diff := range diffs {
		for _, cell := range diff.Cells {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				diff.Row, cell.Column,
				dataset.FormatCell(cell.Left), dataset.FormatCell(cell.Right))
		}
	}
	w.Flush()
}
