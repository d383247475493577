// Package fusion implements the population/energy-price fusion
// pipeline: filter the projection data down to one model and scenario,
// melt the year columns into rows, interpolate each region onto the
// target year range, join against the IEA price table and write the
// combined series. Every stage consumes one dataset and produces a new
// one; the first error aborts the run.
package fusion
