package core

import (
	"errors"
	"reflect"
	"testing"
)

const ratesCSV = ",USD,EUR\nUSA,1.0,0.9\nGermany,1.11,1.0\n"

func TestParse(t *testing.T) {
	table, err := Parse([]byte(ratesCSV))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if want := []string{"", "USD", "EUR"}; !reflect.DeepEqual(table.Header, want) {
		t.Errorf("Header = %q, want %q", table.Header, want)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(table.Rows))
	}

	want := []map[string]string{
		{"": "USA", "USD": "1.0", "EUR": "0.9"},
		{"": "Germany", "USD": "1.11", "EUR": "1.0"},
	}
	for i, row := range table.Rows {
		if got := row.Map(); !reflect.DeepEqual(got, want[i]) {
			t.Errorf("row %d = %v, want %v", i, got, want[i])
		}
		if cols := row.Columns(); !reflect.DeepEqual(cols, table.Header) {
			t.Errorf("row %d columns = %q, want header order", i, cols)
		}
	}
	if !table.HasKeyColumn() {
		t.Error("HasKeyColumn() = false, want true")
	}
}

func TestParse_Leniency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []map[string]string
	}{
		{
			name:  "short row keeps present cells",
			input: ",USD,EUR\nUSA,1.0\n",
			want:  []map[string]string{{"": "USA", "USD": "1.0"}},
		},
		{
			name:  "extra cells keyed by index",
			input: ",USD\nUSA,1.0,extra\n",
			want:  []map[string]string{{"": "USA", "USD": "1.0", "_2": "extra"}},
		},
		{
			name:  "blank lines skipped",
			input: ",USD\n\nUSA,1.0\n\n\nGermany,1.1\n",
			want: []map[string]string{
				{"": "USA", "USD": "1.0"},
				{"": "Germany", "USD": "1.1"},
			},
		},
		{
			name:  "CRLF line endings",
			input: ",USD\r\nUSA,1.0\r\n",
			want:  []map[string]string{{"": "USA", "USD": "1.0"}},
		},
		{
			name:  "quoted fields with commas and newlines",
			input: ",Name\nUS,\"United States, of America\"\nGB,\"two\nlines\"\n",
			want: []map[string]string{
				{"": "US", "Name": "United States, of America"},
				{"": "GB", "Name": "two\nlines"},
			},
		},
		{
			name:  "BOM before empty header",
			input: "\xEF\xBB\xBF,USD\nUSA,1.0\n",
			want:  []map[string]string{{"": "USA", "USD": "1.0"}},
		},
		{
			name:  "no trailing newline",
			input: ",USD\nUSA,1.0",
			want:  []map[string]string{{"": "USA", "USD": "1.0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(table.Rows) != len(tt.want) {
				t.Fatalf("len(Rows) = %d, want %d", len(table.Rows), len(tt.want))
			}
			for i, row := range table.Rows {
				if got := row.Map(); !reflect.DeepEqual(got, tt.want[i]) {
					t.Errorf("row %d = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n"} {
		table, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if len(table.Rows) != 0 || len(table.Header) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty table", input, table)
		}
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	table, err := Parse([]byte(",USD,EUR\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("len(Rows) = %d, want 0", len(table.Rows))
	}
	if len(table.Header) != 3 {
		t.Errorf("len(Header) = %d, want 3", len(table.Header))
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated quoted field", input: ",USD\nUSA,\"1.0\n"},
		{name: "bare quote in field", input: ",USD\nUS\"A,1.0\n"},
		{name: "bare quote mid value", input: ",USD\nUSA,1\"0\n"},
		{name: "malformed header", input: "\"a\"b,USD\nUSA,1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if parseErr.Line == 0 {
				t.Error("ParseError.Line = 0, want line of failure")
			}
		})
	}
}

func TestParse_InvalidEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{name: "invalid byte in key", input: ",USD\nUS\xffA,1.0\n", wantLine: 2},
		{name: "invalid byte in value", input: ",USD\nUSA,1.0\nGB,\xc3\n", wantLine: 3},
		{name: "invalid byte in header", input: ",US\x80D\nUSA,1.0\n", wantLine: 1},
		{name: "truncated rune at end", input: ",USD\nUSA,1.\xc3", wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("Parse() = %+v, want error", table)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("err = %v, want ErrInvalidEncoding", err)
			}
			if parseErr.Line != tt.wantLine {
				t.Errorf("ParseError.Line = %d, want %d", parseErr.Line, tt.wantLine)
			}
		})
	}
}

func TestParse_ValidMultibyte(t *testing.T) {
	table, err := Parse([]byte(",Name\nAT,Österreich\nJP,日本\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, _ := table.Rows[0].Get("Name"); got != "Österreich" {
		t.Errorf("row 0 Name = %q, want %q", got, "Österreich")
	}
	if got, _ := table.Rows[1].Get("Name"); got != "日本" {
		t.Errorf("row 1 Name = %q, want %q", got, "日本")
	}
}

func TestParse_NoKeyColumn(t *testing.T) {
	table, err := Parse([]byte("country,USD\nUSA,1.0\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.HasKeyColumn() {
		t.Error("HasKeyColumn() = true, want false")
	}
}
