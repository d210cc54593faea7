package common

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeKind identifies one of the storage types understood by the fixture dialect.
type TypeKind int

const (
	Integer TypeKind = iota
	Text
	Float
	Timestamp
)

func (k TypeKind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Text:
		return "Text"
	case Float:
		return "Float"
	case Timestamp:
		return "Timestamp"
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// ColumnType is the storage type of one column. Length is only meaningful for Text.
type ColumnType struct {
	Kind   TypeKind
	Length int
}

// IntType, FloatType and TimestampType are the fixed-width column types.
var (
	IntType       = ColumnType{Kind: Integer}
	FloatType     = ColumnType{Kind: Float}
	TimestampType = ColumnType{Kind: Timestamp}
)

// TextType returns a char(n) column type.
func TextType(n int) ColumnType {
	return ColumnType{Kind: Text, Length: n}
}

// String renders the dialect keyword for the type.
func (t ColumnType) String() string {
	switch t.Kind {
	case Integer:
		return "int"
	case Float:
		return "float"
	case Timestamp:
		return "datetime"
	case Text:
		return "char(" + strconv.Itoa(t.Length) + ")"
	}
	return "unknown"
}

// Quoted reports whether values of this type are rendered as quoted literals.
func (t ColumnType) Quoted() bool {
	return t.Kind == Text || t.Kind == Timestamp
}

// ZeroValue is the raw field used to fill a missing trailing field under RowPad.
func (t ColumnType) ZeroValue() string {
	switch t.Kind {
	case Integer:
		return "0"
	case Float:
		return "0.0"
	case Timestamp:
		return "1970-01-01 00:00:00"
	}
	return ""
}

// ParseColumnType parses a dialect keyword (int, float, datetime, char(n)).
func ParseColumnType(s string) (ColumnType, error) {
	kw := strings.ToLower(strings.TrimSpace(s))
	switch kw {
	case "int":
		return IntType, nil
	case "float":
		return FloatType, nil
	case "datetime":
		return TimestampType, nil
	}

	if strings.HasPrefix(kw, "char(") && strings.HasSuffix(kw, ")") {
		n, err := strconv.Atoi(strings.TrimSpace(kw[len("char(") : len(kw)-1]))
		if err != nil {
			return ColumnType{}, fmt.Errorf("invalid char length in %q: %w", s, err)
		}
		if n < 1 {
			return ColumnType{}, fmt.Errorf("char length must be positive in %q", s)
		}
		return TextType(n), nil
	}

	return ColumnType{}, fmt.Errorf("unsupported column type %q", s)
}
