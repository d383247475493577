package config

// Application constants shared by the fusion and comparison tools
const (
	// Application Info
	AppName    = "fusecli"
	AppVersion = "1.0.0"

	// Population projection selection
	DefaultModel    = "IIASA-WiC POP"
	DefaultScenario = "SSP3_v9_130115"

	// Interpolation target range, inclusive start, exclusive end
	DefaultStartYear = 2020
	DefaultEndYear   = 2100

	// File Paths (relative to working directory)
	DefaultDataDir         = "data"
	DefaultOutputDir       = "output"
	DefaultPopulationFile  = "data/population.csv"
	DefaultEnergyPriceFile = "data/IEA_Price_FIN_Clean_gr014_GLOBAL.dta"
	DefaultOutputFileName  = "valinfo.csv"
	DefaultOriginalFile    = "data/valinfo_orig.csv"
	DefaultConfigFileName  = "fusecli.yaml"
	DefaultLogsDir         = "logs"
)

// Population dataset identifier columns, in source order. Every other
// column in the population file is a year column.
var PopulationIDColumns = []string{"MODEL", "SCENARIO", "REGION", "UNIT", "VAR1", "VAR2", "VAR3", "VAR4"}

// Output column order of the fused dataset.
var OutputColumns = []string{
	"year", "pop", "country",
	"other_energycompile_price", "electricitycompile_price", "electricitycompile_peakprice",
}

// Comparator sort key, ascending.
var CompareSortKeys = []string{"year", "country"}
