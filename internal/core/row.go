package core

import (
	"bytes"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Row is one parsed CSV data line: header name to cell value, in header order.
// Values are never coerced; every cell stays a string.
type Row struct {
	columns []string
	values  map[string]string
}

// NewRow returns an empty row with room for n columns.
func NewRow(n int) *Row {
	return &Row{
		columns: make([]string, 0, n),
		values:  make(map[string]string, n),
	}
}

// Set stores value under column. Setting an existing column replaces the
// value but keeps the column's original position.
func (r *Row) Set(column, value string) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value stored under column.
func (r *Row) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Delete removes column and returns the value it held.
func (r *Row) Delete(column string) (string, bool) {
	v, ok := r.values[column]
	if !ok {
		return "", false
	}
	delete(r.values, column)
	for i, c := range r.columns {
		if c == column {
			r.columns = append(r.columns[:i], r.columns[i+1:]...)
			break
		}
	}
	return v, true
}

// Columns returns the column names in order. The slice must not be modified.
func (r *Row) Columns() []string {
	return r.columns
}

// Len returns the number of columns.
func (r *Row) Len() int {
	return len(r.columns)
}

// Map returns a copy of the row as a plain map.
func (r *Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// MarshalJSON writes the row as a JSON object in column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, col); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, r.values[col]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node in column order.
func (r *Row) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, col := range r.columns {
		node.Content = append(node.Content, stringNode(col), stringNode(r.values[col]))
	}
	return node, nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := sonic.ConfigStd.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
