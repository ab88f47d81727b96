// core/samplesheet/document.go
// Package samplesheet folds classified FASTQ records into the nested
// sample → read-group → ordered-reads document and gives that document a
// stable, insertion-ordered JSON/YAML form.
package samplesheet

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that preserves insertion order through
// JSON and YAML round trips. Values are scalars, []any sequences, or
// nested *Map. Encoders that sort map keys would scramble samplesheets,
// so the mapping carries its own key order.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap returns an empty ordered mapping.
func NewMap() *Map {
	return &Map{vals: make(map[string]any)}
}

// Set inserts or replaces key. The first insertion fixes the key's position.
func (m *Map) Set(key string, v any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Len returns the number of keys.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string { return append([]string(nil), m.keys...) }

// MarshalJSON emits the mapping as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the mapping, keeping the key
// order of the document. Numbers come back as json.Number so they survive
// a reserialization untouched.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("samplesheet: expected object, got %v", tok)
	}
	m.keys = nil
	m.vals = make(map[string]any)
	return m.decodeJSONObject(dec)
}

func (m *Map) decodeJSONObject(dec *json.Decoder) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("samplesheet: expected object key, got %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return err
		}
		m.Set(key, v)
	}
	_, err := dec.Token() // closing brace
	return err
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // string, json.Number, bool or nil
	}
	switch d {
	case '{':
		child := NewMap()
		if err := child.decodeJSONObject(dec); err != nil {
			return nil, err
		}
		return child, nil
	case '[':
		list := []any{}
		for dec.More() {
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		if _, err := dec.Token(); err != nil { // closing bracket
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("samplesheet: unexpected delimiter %v", d)
}

// MarshalYAML renders the mapping as a block-style YAML mapping node in
// insertion order.
func (m *Map) MarshalYAML() (any, error) {
	return m.yamlNode()
}

func (m *Map) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		val, err := yamlValueNode(m.vals[k])
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			val,
		)
	}
	return node, nil
}

func yamlValueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *Map:
		return t.yamlNode()
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range t {
			child, err := yamlValueNode(el)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

// UnmarshalYAML decodes a YAML mapping node, keeping the document's key
// order.
func (m *Map) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("samplesheet: expected mapping, got %s", value.Tag)
	}
	m.keys = nil
	m.vals = make(map[string]any)
	for i := 0; i+1 < len(value.Content); i += 2 {
		v, err := yamlValue(value.Content[i+1])
		if err != nil {
			return err
		}
		m.Set(value.Content[i].Value, v)
	}
	return nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		child := NewMap()
		if err := child.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return child, nil
	case yaml.SequenceNode:
		list := []any{}
		for _, el := range node.Content {
			v, err := yamlValue(el)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
