// Package loader decodes one JSON or YAML document into a generic value
// tree whose objects preserve source key order.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Member is a single key-value entry of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a decoded mapping. Unlike map[string]any it is ordered: members
// appear in the same order as in the source document, which is what makes
// the projected tree deterministic.
type Object []Member

// Get returns the value for key and whether it was present.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders the object with its members in source order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a single JSON or YAML document. Input that parses as JSON is
// validated with the standard JSON decoder first so that malformed JSON is
// rejected with a proper JSON diagnostic instead of a YAML one. The actual
// value tree is built from the yaml.v3 node representation in both cases,
// since yaml.Node preserves mapping key order and YAML 1.2 is a superset of
// JSON.
//
// Objects decode to Object, arrays to []any, scalars to
// nil/bool/int/int64/uint64/float64/string.
func Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	if looksLikeJSON(trimmed) {
		if !json.Valid(trimmed) {
			// Re-run the decoder to surface its error message.
			var probe any
			if err := json.Unmarshal(trimmed, &probe); err != nil {
				return nil, fmt.Errorf("invalid JSON: %w", err)
			}
			return nil, fmt.Errorf("invalid JSON input")
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return nodeValue(doc.Content[0])
}

// DecodeFile reads and decodes a single document from path.
func DecodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Decode(data)
}

// looksLikeJSON reports whether data plausibly starts a JSON document. YAML
// block syntax never starts with these bytes at the top level.
func looksLikeJSON(data []byte) bool {
	switch data[0] {
	case '{', '[', '"':
		return true
	}
	// Bare JSON scalars: numbers, true, false, null.
	if data[0] == '-' || (data[0] >= '0' && data[0] <= '9') {
		return json.Valid(data)
	}
	for _, lit := range []string{"true", "false", "null"} {
		if string(data) == lit {
			return true
		}
	}
	return false
}

// nodeValue converts a yaml.Node into the generic value tree, keeping
// mapping members in document order.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		obj := make(Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				key = n.Content[i].Value
			}
			val, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Key: key, Value: val})
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		var val any
		if err := n.Decode(&val); err != nil {
			return n.Value, nil
		}
		return val, nil
	case yaml.AliasNode:
		if n.Alias != nil {
			return nodeValue(n.Alias)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

// JSONText renders a decoded value back to compact JSON text. It is used for
// leaf labels, so failures degrade to fmt formatting rather than erroring.
func JSONText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
