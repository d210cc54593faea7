package common

import "io"

// RowProvider exposes the tables found in one source.
type RowProvider interface {
	GetTableNames() []string
	GetHeaders(tableName string) []string
	// ScanRows iterates over the data rows of the given table in source order.
	// It calls the yield function for each row.
	// If yield returns an error, iteration stops and that error is returned.
	ScanRows(tableName string, yield func([]string) error) error
}

// Driver defines the interface that must be implemented by a converter package.
type Driver interface {
	// Open returns a new RowProvider for the given input.
	Open(source io.Reader, config *ConversionConfig) (RowProvider, error)
}

// Table is a fully materialized tabular source.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}
