package common

import "errors"

var (
	// ErrSchemaMismatch is returned when a row's field count differs from its table's column count.
	ErrSchemaMismatch = errors.New("field count does not match column count")
	// ErrEmbeddedQuote is returned under QuoteReject when a quoted value contains a single quote.
	ErrEmbeddedQuote = errors.New("value contains an embedded single quote")
	// ErrUnsupportedSource is returned when no driver is registered for a source name.
	ErrUnsupportedSource = errors.New("unsupported source type")
	// ErrNoTables is returned by multi-table drivers when a document contains no table.
	ErrNoTables = errors.New("no tables found")
)
