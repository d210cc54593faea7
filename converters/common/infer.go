package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultEmptyTextLength is the char length given to columns of a table that has no data rows.
const DefaultEmptyTextLength = 255

// InferField assigns a column type to a single sample field.
// The first matching rule wins:
//   - any letter: char(n) where n is the field's length in characters
//   - both ':' and '-': datetime
//   - '.': float
//   - anything else, including the empty field: int
func InferField(field string) ColumnType {
	if strings.IndexFunc(field, unicode.IsLetter) >= 0 {
		return TextType(utf8.RuneCountInString(field))
	}
	if strings.ContainsRune(field, ':') && strings.ContainsRune(field, '-') {
		return TimestampType
	}
	if strings.ContainsRune(field, '.') {
		return FloatType
	}
	return IntType
}

// InferRow assigns a column type to each field of a sample row, in order.
func InferRow(row []string) []ColumnType {
	types := make([]ColumnType, len(row))
	for i, field := range row {
		types[i] = InferField(field)
	}
	return types
}

// TypeStrategy decides the column types of a table before any insert is emitted.
// sample is the table's first data row, or nil when the table has no rows.
// The returned types apply unchanged to every row of the table.
type TypeStrategy interface {
	Resolve(table string, columns []string, sample []string) ([]ColumnType, error)
}

// FirstRowStrategy infers every column from the first data row.
type FirstRowStrategy struct {
	// EmptyTextLength is used for every column when there is no sample row.
	// Zero means DefaultEmptyTextLength.
	EmptyTextLength int
}

// Resolve implements TypeStrategy
func (s FirstRowStrategy) Resolve(table string, columns []string, sample []string) ([]ColumnType, error) {
	if sample == nil {
		n := s.EmptyTextLength
		if n <= 0 {
			n = DefaultEmptyTextLength
		}
		types := make([]ColumnType, len(columns))
		for i := range types {
			types[i] = TextType(n)
		}
		return types, nil
	}
	return InferRow(sample), nil
}

// ExplicitStrategy uses declared types where the configuration has them and
// defers the remaining columns to Fallback.
type ExplicitStrategy struct {
	// Tables maps table name to column name to declared type.
	Tables   map[string]map[string]ColumnType
	Fallback TypeStrategy
}

// Resolve implements TypeStrategy
func (s ExplicitStrategy) Resolve(table string, columns []string, sample []string) ([]ColumnType, error) {
	fallback := s.Fallback
	if fallback == nil {
		fallback = FirstRowStrategy{}
	}
	types, err := fallback.Resolve(table, columns, sample)
	if err != nil {
		return nil, err
	}

	declared := s.Tables[table]
	if len(declared) == 0 {
		return types, nil
	}
	if len(types) < len(columns) {
		grown := make([]ColumnType, len(columns))
		copy(grown, types)
		types = grown
	}
	for i, col := range columns {
		if t, ok := declared[col]; ok {
			types[i] = t
		}
	}
	return types, nil
}
