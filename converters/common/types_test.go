package common

import "testing"

func TestColumnTypeString(t *testing.T) {
	tests := []struct {
		ct   ColumnType
		want string
	}{
		{IntType, "int"},
		{FloatType, "float"},
		{TimestampType, "datetime"},
		{TextType(16), "char(16)"},
	}
	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseColumnType(t *testing.T) {
	tests := []struct {
		in      string
		want    ColumnType
		wantErr bool
	}{
		{in: "int", want: IntType},
		{in: " FLOAT ", want: FloatType},
		{in: "datetime", want: TimestampType},
		{in: "char(16)", want: TextType(16)},
		{in: "char( 4 )", want: TextType(4)},
		{in: "char(0)", wantErr: true},
		{in: "char(x)", wantErr: true},
		{in: "bigint", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColumnType(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColumnType(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColumnType(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColumnType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
