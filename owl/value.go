package owl

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueKind identifies the variant of a Value.
type ValueKind uint8

const (
	// ScalarValue is the string form of a named identifier or literal.
	ScalarValue ValueKind = iota + 1
	// ListValue is an ordered sequence of values.
	ListValue
	// MapValue maps predicates to ordered sequences of values.
	MapValue
)

// Value is the nested representation of a converted node.
type Value struct {
	kind   ValueKind
	text   string
	items  []Value
	fields *PredicateMap
}

// Scalar returns a scalar value.
func Scalar(text string) Value {
	return Value{kind: ScalarValue, text: text}
}

// ListOf returns a list value holding items.
func ListOf(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ListValue, items: items}
}

// MapOf returns a map value backed by m.
func MapOf(m *PredicateMap) Value {
	if m == nil {
		m = NewPredicateMap()
	}
	return Value{kind: MapValue, fields: m}
}

// Kind returns the variant of v. The zero Value has kind 0.
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the string of a scalar value.
func (v Value) Text() string { return v.text }

// Items returns the elements of a list value.
func (v Value) Items() []Value { return v.items }

// Fields returns the mapping of a map value.
func (v Value) Fields() *PredicateMap { return v.fields }

// String renders v as compact JSON.
func (v Value) String() string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}

// MarshalJSON encodes scalars as strings, lists as arrays and maps as objects
// whose keys keep insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ScalarValue:
		return json.Marshal(v.text)
	case ListValue:
		return marshalJSONList(v.items)
	case MapValue:
		return v.fields.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML encodes v as a yaml.Node that keeps map key order.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case ScalarValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.text}
	case ListValue:
		return yamlSequence(v.items)
	case MapValue:
		return v.fields.yamlNode()
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// PredicateMap maps predicate IRIs to ordered value sequences and remembers
// the order in which predicates were first added.
type PredicateMap struct {
	keys   []string
	values map[string][]Value
}

// NewPredicateMap returns an empty map.
func NewPredicateMap() *PredicateMap {
	return &PredicateMap{values: make(map[string][]Value)}
}

// Append adds v to the sequence stored under key, creating it when absent.
func (m *PredicateMap) Append(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(m.values[key], v)
}

// Set replaces the sequence stored under key with the items of list.
// The key keeps its first position.
func (m *PredicateMap) Set(key string, list Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	items := list.items
	if list.kind != ListValue {
		items = []Value{list}
	}
	m.values[key] = append([]Value{}, items...)
}

// Get returns the sequence under key as a list value.
func (m *PredicateMap) Get(key string) (Value, bool) {
	items, ok := m.values[key]
	if !ok {
		return Value{}, false
	}
	return ListOf(items...), true
}

// Keys returns the predicates in insertion order.
func (m *PredicateMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of predicates.
func (m *PredicateMap) Len() int {
	return len(m.keys)
}

// MarshalJSON encodes the map as an object in insertion order.
func (m *PredicateMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		list, err := marshalJSONList(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(list)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a mapping node in insertion order.
func (m *PredicateMap) MarshalYAML() (interface{}, error) {
	return m.yamlNode(), nil
}

func (m *PredicateMap) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			yamlSequence(m.values[key]),
		)
	}
	return node
}

func marshalJSONList(items []Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := item.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func yamlSequence(items []Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		node.Content = append(node.Content, item.yamlNode())
	}
	return node
}
