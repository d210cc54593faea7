package common

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGenTablesNames(t *testing.T) {
	rawnames := []string{"Organized", "Timeline", "Raw Content", ""}
	expected := []string{"organized", "timeline", "raw_content", "tb3"}
	clean := GenTableNames(rawnames)
	t.Logf("Input: %v", rawnames)
	t.Logf("Output: %v", clean)
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenCompliantNamesDigits(t *testing.T) {
	rawnames := []string{"4658.25", "123", "abc"}
	// idx 0: "4658.25" -> "465825" -> starts with digit -> prefix "cl" + idx 0 + "465825" -> "cl0465825"
	// idx 1: "123" -> "123" -> starts with digit -> prefix "cl" + idx 1 + "123" -> "cl1123"
	expected := []string{"cl0465825", "cl1123", "abc"}
	clean := GenCompliantNames(rawnames, "cl")
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenCompliantNamesKeywords(t *testing.T) {
	rawnames := []string{"group", "order", "select", "table", "where", "datetime"}
	expected := []string{"group_", "order_", "select_", "table_", "where_", "datetime_"}
	clean := GenCompliantNames(rawnames, "cl")
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenCompliantNamesAccentsAndCollisions(t *testing.T) {
	rawnames := []string{"Café Owner", "a", "A", "a"}
	expected := []string{"cafe_owner", "a", "a2", "a3"}
	clean := GenColumnNames(rawnames)
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"orders.csv":          "orders",
		"orders.csv.gz":       "orders",
		"data/orders.csv":     "orders",
		"noext":               "noext",
		"book.2024.xlsx":      "book",
		`windows\dir\t1.html`: "t1",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenCreateTableSQL(t *testing.T) {
	cols := []string{"id", "name", "score", "seen"}
	types := []ColumnType{IntType, TextType(5), FloatType, TimestampType}

	got, err := GenCreateTableSQL("t", cols, types)
	if err != nil {
		t.Fatalf("GenCreateTableSQL failed: %v", err)
	}
	want := "create table t (id int, name char(5), score float, seen datetime);"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenCreateTableSQLNoColumns(t *testing.T) {
	got, err := GenCreateTableSQL("t", nil, nil)
	if err != nil {
		t.Fatalf("GenCreateTableSQL failed: %v", err)
	}
	if got != "create table t ();" {
		t.Errorf("got %q", got)
	}
}

func TestGenCreateTableSQLMismatch(t *testing.T) {
	_, err := GenCreateTableSQL("t", []string{"a", "b"}, []ColumnType{IntType})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestGenInsertSQL(t *testing.T) {
	types := []ColumnType{IntType, TextType(5), FloatType, TimestampType}

	tests := []struct {
		name string
		row  []string
		want string
	}{
		{
			name: "SampleRow",
			row:  []string{"1", "Alice", "3.5", "2023-07-01 10:00:00"},
			want: "insert into t values(1, 'Alice', 3.5, '2023-07-01 10:00:00');",
		},
		{
			name: "TruncatesText",
			row:  []string{"2", "Alexandria", "4.25", "2023-07-02 11:30:00"},
			want: "insert into t values(2, 'Alexa', 4.25, '2023-07-02 11:30:00');",
		},
		{
			name: "ShortTextNotPadded",
			row:  []string{"3", "Bo", "1.0", "2023-07-03 00:00:00"},
			want: "insert into t values(3, 'Bo', 1.0, '2023-07-03 00:00:00');",
		},
		{
			name: "LongTimestampKept",
			row:  []string{"4", "Cy", "2.0", "2023-07-04 00:00:00.123456"},
			want: "insert into t values(4, 'Cy', 2.0, '2023-07-04 00:00:00.123456');",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenInsertSQL("t", tt.row, types, QuoteEscape)
			if err != nil {
				t.Fatalf("GenInsertSQL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenInsertSQLIdempotent(t *testing.T) {
	types := []ColumnType{IntType, TextType(3)}
	row := []string{"7", "abcdef"}
	first, err := GenInsertSQL("t", row, types, QuoteEscape)
	if err != nil {
		t.Fatalf("GenInsertSQL failed: %v", err)
	}
	second, err := GenInsertSQL("t", row, types, QuoteEscape)
	if err != nil {
		t.Fatalf("GenInsertSQL failed: %v", err)
	}
	if first != second {
		t.Errorf("emission not idempotent: %q vs %q", first, second)
	}
}

func TestGenInsertSQLValueCount(t *testing.T) {
	types := []ColumnType{IntType, TextType(4), FloatType}
	got, err := GenInsertSQL("t", []string{"1", "abcd", "2.5"}, types, QuoteEscape)
	if err != nil {
		t.Fatalf("GenInsertSQL failed: %v", err)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(got, "insert into t values("), ");")
	if n := len(strings.Split(inner, ", ")); n != len(types) {
		t.Errorf("got %d values, want %d", n, len(types))
	}
}

func TestGenInsertSQLQuotes(t *testing.T) {
	types := []ColumnType{TextType(10)}

	got, err := GenInsertSQL("t", []string{"O'Brien"}, types, QuoteEscape)
	if err != nil {
		t.Fatalf("GenInsertSQL failed: %v", err)
	}
	if got != "insert into t values('O''Brien');" {
		t.Errorf("got %q", got)
	}

	_, err = GenInsertSQL("t", []string{"O'Brien"}, types, QuoteReject)
	if !errors.Is(err, ErrEmbeddedQuote) {
		t.Fatalf("expected ErrEmbeddedQuote, got %v", err)
	}
}

func TestGenInsertSQLTruncatesBeforeEscaping(t *testing.T) {
	// "ab'" fits in 3 characters; the doubled quote must not be split.
	got, err := GenInsertSQL("t", []string{"ab'cd"}, []ColumnType{TextType(3)}, QuoteEscape)
	if err != nil {
		t.Fatalf("GenInsertSQL failed: %v", err)
	}
	if got != "insert into t values('ab''');" {
		t.Errorf("got %q", got)
	}
}

func TestGenInsertSQLFlattensLineBreaks(t *testing.T) {
	types := []ColumnType{IntType, TextType(8), TextType(5)}
	got, err := GenInsertSQL("t", []string{"1", "New\nYork", "a\r\nb\rc"}, types, QuoteEscape)
	if err != nil {
		t.Fatalf("GenInsertSQL failed: %v", err)
	}
	if got != "insert into t values(1, 'New York', 'a b c');" {
		t.Errorf("got %q", got)
	}

	got, err = GenCreateTableSQL("t", []string{"id", "first\nname"}, []ColumnType{IntType, TextType(3)})
	if err != nil {
		t.Fatalf("GenCreateTableSQL failed: %v", err)
	}
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("create statement spans lines: %q", got)
	}
}

func TestGenInsertSQLMismatch(t *testing.T) {
	_, err := GenInsertSQL("t", []string{"1"}, []ColumnType{IntType, IntType}, QuoteEscape)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Alexandria", 5, "Alexa"},
		{"Alice", 5, "Alice"},
		{"Al", 5, "Al"},
		{"", 3, ""},
		{"héllo", 2, "hé"},
		{"日本語テキスト", 3, "日本語"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if utf8.RuneCountInString(got) > tt.n {
			t.Errorf("Truncate(%q, %d) exceeds limit", tt.in, tt.n)
		}
	}
}
