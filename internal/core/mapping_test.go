package core

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

func TestMapping_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  ReformatOptions
		want  string
	}{
		{
			name:  "plain",
			input: ratesCSV,
			want:  `{"USA":{"USD":"1.0","EUR":"0.9"},"Germany":{"USD":"1.11","EUR":"1.0"}}`,
		},
		{
			name:  "tracked",
			input: ratesCSV,
			opts:  ReformatOptions{TrackSupported: true},
			want:  `{"USA":{"USD":"1.0","EUR":"0.9"},"Germany":{"USD":"1.11","EUR":"1.0"},"SUPPORTED":["USD","EUR"]}`,
		},
		{
			name:  "tracked list replaces colliding row in place",
			input: ",USD\nSUPPORTED,9\nUSA,1.0\n",
			opts:  ReformatOptions{TrackSupported: true},
			want:  `{"SUPPORTED":["USD"],"USA":{"USD":"1.0"}}`,
		},
		{
			name:  "empty document",
			input: "",
			want:  `{}`,
		},
		{
			name:  "tracked empty document",
			input: ",USD\n",
			opts:  ReformatOptions{TrackSupported: true},
			want:  `{"SUPPORTED":[]}`,
		},
		{
			name:  "escaping",
			input: ",\"say \"\"hi\"\"\"\nk\\1,a/b\n",
			want:  `{"k\\1":{"say \"hi\"":"a/b"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewReformatter(tt.opts).Reformat(mustParseRows(t, tt.input))

			got, err := m.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestMapping_MarshalJSONViaSonic(t *testing.T) {
	m := NewReformatter(ReformatOptions{}).Reformat(mustParseRows(t, ratesCSV))

	got, err := sonic.ConfigStd.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]map[string]string
	if err := sonic.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["Germany"]["USD"] != "1.11" {
		t.Errorf("decoded Germany.USD = %q, want %q", decoded["Germany"]["USD"], "1.11")
	}
}

func TestMapping_MarshalYAML(t *testing.T) {
	m := NewReformatter(ReformatOptions{TrackSupported: true}).Reformat(mustParseRows(t, ratesCSV))

	got, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	want := strings.Join([]string{
		"USA:",
		`    USD: "1.0"`,
		`    EUR: "0.9"`,
		"Germany:",
		`    USD: "1.11"`,
		`    EUR: "1.0"`,
		"SUPPORTED:",
		"    - USD",
		"    - EUR",
		"",
	}, "\n")
	if string(got) != want {
		t.Errorf("yaml.Marshal() =\n%s\nwant\n%s", got, want)
	}
}
