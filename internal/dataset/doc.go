// Package dataset provides the in-memory tabular value the pipeline
// stages pass between each other: ordered rows under a fixed ordered
// set of column names, with relational operations (select, sort,
// filter, melt, inner join) that return new datasets rather than
// mutating the receiver.
package dataset
