package common

import (
	"fmt"
	"strings"
)

// StmtKind defines the kind of a generated statement
type StmtKind string

const (
	CreateStmt StmtKind = "CREATE"
	InsertStmt StmtKind = "INSERT"
)

// Statement is one rendered line of the fixture dialect, without its trailing newline.
type Statement struct {
	Kind StmtKind
	Text string
}

// QuotePolicy controls how single quotes inside quoted values are handled.
type QuotePolicy int

const (
	// QuoteEscape doubles embedded single quotes.
	QuoteEscape QuotePolicy = iota
	// QuoteReject fails the row with ErrEmbeddedQuote.
	QuoteReject
)

// GenCreateTableSQL generates a create table statement, e.g.
//
//	create table t (id int, name char(5));
//
// A table without columns renders as "create table t ();".
func GenCreateTableSQL(tableName string, columnNames []string, colTypes []ColumnType) (string, error) {
	if len(columnNames) != len(colTypes) {
		return "", fmt.Errorf("%w: table %s has %d columns and %d types", ErrSchemaMismatch, tableName, len(columnNames), len(colTypes))
	}

	var builder strings.Builder
	builder.Grow(len(tableName) + len(columnNames)*20) // Heuristic pre-allocation

	builder.WriteString("create table ")
	builder.WriteString(tableName)
	builder.WriteString(" (")
	for i, name := range columnNames {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(flattenLineBreaks(name))
		builder.WriteByte(' ')
		builder.WriteString(colTypes[i].String())
	}
	builder.WriteString(");")
	return builder.String(), nil
}

// GenInsertSQL generates an insert statement for one row, e.g.
//
//	insert into t values(1, 'Alice');
//
// int and float values are written as-is. datetime values are quoted.
// char(n) values are clipped to n characters, then quoted.
// Line breaks inside a value become single spaces so the statement stays on one line.
func GenInsertSQL(tableName string, row []string, colTypes []ColumnType, quotes QuotePolicy) (string, error) {
	if len(row) != len(colTypes) {
		return "", fmt.Errorf("%w: table %s row has %d fields, want %d", ErrSchemaMismatch, tableName, len(row), len(colTypes))
	}

	var builder strings.Builder
	builder.Grow(len(tableName) + 20 + len(row)*12)

	builder.WriteString("insert into ")
	builder.WriteString(tableName)
	builder.WriteString(" values(")
	for i, val := range row {
		if i > 0 {
			builder.WriteString(", ")
		}
		ct := colTypes[i]
		val = flattenLineBreaks(val)
		if !ct.Quoted() {
			builder.WriteString(val)
			continue
		}
		if ct.Kind == Text {
			val = Truncate(val, ct.Length)
		}
		if strings.IndexByte(val, '\'') >= 0 {
			if quotes == QuoteReject {
				return "", fmt.Errorf("%w: table %s column %d value %q", ErrEmbeddedQuote, tableName, i, val)
			}
			val = strings.ReplaceAll(val, "'", "''")
		}
		builder.WriteByte('\'')
		builder.WriteString(val)
		builder.WriteByte('\'')
	}
	builder.WriteString(");")
	return builder.String(), nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func flattenLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return lineBreaks.Replace(s)
}

// Truncate clips s to at most n characters. Shorter values are returned unchanged.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
