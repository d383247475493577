// Package config centralizes every path and literal the two tools
// depend on. Values load from environment variables (prefix FUSE),
// optionally overlaid by a YAML file, and are validated before use.
// The defaults reproduce the canonical run: population projections from
// data/population.csv, IEA prices from the bundled Stata file, fused
// output under output/valinfo.csv.
package config
