// Package exporter serializes datasets to delimited text files: header
// row of column names, comma-separated values, no index column.
package exporter
