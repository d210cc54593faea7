package common

import "fmt"

// RowPolicy controls rows whose field count differs from the header.
type RowPolicy int

const (
	// RowReject fails the run with ErrSchemaMismatch.
	RowReject RowPolicy = iota
	// RowPad fills missing trailing fields with the column's zero value and drops surplus fields.
	RowPad
)

// ConversionConfig stores configuration options for the conversion process.
type ConversionConfig struct {
	Delimiter     rune         // Field delimiter for delimited text; 0 means detect from the header line
	TableName     string       // Table name for single-table sources; set by the walker to the source base name
	Strategy      TypeStrategy // Column type resolution; nil means FirstRowStrategy
	Quotes        QuotePolicy  // Handling of single quotes inside quoted values
	Rows          RowPolicy    // Handling of rows with the wrong field count
	SanitizeNames bool         // Rewrite table and column names with GenCompliantNames
	Verbose       bool         // Enable detailed logging
}

// TypeStrategy returns the configured strategy, defaulting to FirstRowStrategy.
func (c *ConversionConfig) TypeStrategy() TypeStrategy {
	if c == nil || c.Strategy == nil {
		return FirstRowStrategy{}
	}
	return c.Strategy
}

// FitRow applies the row policy so that the returned row has exactly len(colTypes) fields.
// The input slice is never modified.
func FitRow(tableName string, rowNum int, row []string, colTypes []ColumnType, policy RowPolicy) ([]string, error) {
	if len(row) == len(colTypes) {
		return row, nil
	}
	if policy != RowPad {
		return nil, fmt.Errorf("%w: table %s row %d has %d fields, want %d", ErrSchemaMismatch, tableName, rowNum, len(row), len(colTypes))
	}

	fitted := make([]string, len(colTypes))
	n := copy(fitted, row)
	for i := n; i < len(colTypes); i++ {
		fitted[i] = colTypes[i].ZeroValue()
	}
	return fitted, nil
}
