package core

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Mapping is the reformatted document: key column value to remaining row,
// in order of first appearance. When supported-column tracking is enabled it
// also carries the list of non-key headers under a reserved field name.
type Mapping struct {
	keys []string
	rows map[string]*Row

	tracked        bool
	supportedField string
	supported      []string
}

func newMapping(n int) *Mapping {
	return &Mapping{
		keys: make([]string, 0, n),
		rows: make(map[string]*Row, n),
	}
}

// put stores row under key. A repeated key overwrites the stored row in place.
func (m *Mapping) put(key string, row *Row) {
	if _, ok := m.rows[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.rows[key] = row
}

// setSupported attaches the tracked columns under field. A row already stored
// under field is replaced by the list.
func (m *Mapping) setSupported(field string, columns []string) {
	m.tracked = true
	m.supportedField = field
	m.supported = columns
	if _, ok := m.rows[field]; ok {
		delete(m.rows, field)
		return
	}
	m.keys = append(m.keys, field)
}

// Keys returns the row keys in order. The reserved supported field is not
// included.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, len(m.rows))
	for _, k := range m.keys {
		if _, ok := m.rows[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Get returns the row stored under key.
func (m *Mapping) Get(key string) (*Row, bool) {
	r, ok := m.rows[key]
	return r, ok
}

// Len returns the number of rows.
func (m *Mapping) Len() int {
	return len(m.rows)
}

// Supported returns the tracked columns in first-seen order and whether
// tracking was enabled.
func (m *Mapping) Supported() ([]string, bool) {
	return m.supported, m.tracked
}

// SupportedField returns the reserved field name, or "" when tracking was off.
func (m *Mapping) SupportedField() string {
	return m.supportedField
}

// MarshalJSON writes the mapping as one JSON object preserving entry order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')

		if m.tracked && key == m.supportedField {
			buf.WriteByte('[')
			for j, col := range m.supported {
				if j > 0 {
					buf.WriteByte(',')
				}
				if err := writeJSONString(&buf, col); err != nil {
					return nil, err
				}
			}
			buf.WriteByte(']')
			continue
		}

		b, err := m.rows[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node preserving entry order.
func (m *Mapping) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		if m.tracked && key == m.supportedField {
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, col := range m.supported {
				seq.Content = append(seq.Content, stringNode(col))
			}
			node.Content = append(node.Content, stringNode(key), seq)
			continue
		}
		value, err := m.rows[key].MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, stringNode(key), value.(*yaml.Node))
	}
	return node, nil
}
