// Package render prints a reformatted mapping for people and scripts.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/sheetfetch/internal/core"
	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Format selects an output representation.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, json or yaml)", s)
	}
}

// Render writes m to w in the given format.
func Render(w io.Writer, m *core.Mapping, f Format) error {
	switch f {
	case FormatTable:
		return Table(w, m)
	case FormatJSON:
		return JSON(w, m)
	case FormatYAML:
		return YAML(w, m)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// JSON writes m as indented JSON followed by a newline.
func JSON(w io.Writer, m *core.Mapping) error {
	b, err := sonic.ConfigStd.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// YAML writes m as a YAML document.
func YAML(w io.Writer, m *core.Mapping) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
