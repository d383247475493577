// Package loader reads the pipeline's input files into datasets. It
// handles three formats: delimited text (population projections and the
// comparator's CSVs), Stata .dta binary tables (IEA energy prices), and
// xlsx workbooks (population projections as distributed by the SSP
// database). Numeric columns come out as float64, everything else as
// string, regardless of format.
package loader
