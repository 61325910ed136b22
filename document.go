package schemaform

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Document is a decoded JSON Schema document with object key order preserved.
// Plain map decoding loses declaration order, and declaration order is the
// form's field order, so documents are decoded through a token stream into an
// ordered value tree.
type Document struct {
	root *docValue
}

type docKind int

const (
	docScalar docKind = iota
	docObject
	docArray
)

// docValue is one value of the decoded document. Object entries keep their
// declaration order in keys.
type docValue struct {
	kind   docKind
	keys   []string
	fields map[string]*docValue
	items  []*docValue
	scalar any // nil, bool, string or json.Number
}

func newDocObject() *docValue {
	return &docValue{kind: docObject, fields: map[string]*docValue{}}
}

func (v *docValue) set(key string, child *docValue) {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = child
}

func (v *docValue) field(key string) (*docValue, bool) {
	if v == nil || v.kind != docObject {
		return nil, false
	}
	c, ok := v.fields[key]
	return c, ok
}

func (v *docValue) stringField(key string) (string, bool) {
	c, ok := v.field(key)
	if !ok || c.kind != docScalar {
		return "", false
	}
	s, ok := c.scalar.(string)
	return s, ok
}

func (v *docValue) boolField(key string) (bool, bool) {
	c, ok := v.field(key)
	if !ok || c.kind != docScalar {
		return false, false
	}
	b, ok := c.scalar.(bool)
	return b, ok
}

func (v *docValue) floatField(key string) (float64, bool) {
	c, ok := v.field(key)
	if !ok || c.kind != docScalar {
		return 0, false
	}
	switch n := c.scalar.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (v *docValue) intField(key string) (int, bool) {
	f, ok := v.floatField(key)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// stringItems returns the string entries of an array-valued field, e.g. the
// required list. Non-string entries are skipped.
func (v *docValue) stringItems(key string) []string {
	c, ok := v.field(key)
	if !ok || c.kind != docArray {
		return nil
	}
	var out []string
	for _, it := range c.items {
		if s, ok := it.scalar.(string); ok && it.kind == docScalar {
			out = append(out, s)
		}
	}
	return out
}

// Interface converts the value back to plain decoded Go data
// (map[string]any, []any, scalars). Object key order is lost.
func (v *docValue) Interface() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case docObject:
		m := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			m[k] = v.fields[k].Interface()
		}
		return m
	case docArray:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	default:
		return v.scalar
	}
}

// DocumentFromJSON decodes a JSON schema document, preserving object key
// order. Numbers decode as json.Number.
func DocumentFromJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeDocValue(dec)
	if err != nil {
		return nil, fmt.Errorf("schemaform: invalid JSON document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("schemaform: trailing data after JSON document")
	}
	if root.kind != docObject {
		return nil, fmt.Errorf("schemaform: schema document root must be an object")
	}
	return &Document{root: root}, nil
}

func decodeDocValue(dec *json.Decoder) (*docValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*docValue, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := newDocObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", kt)
				}
				child, err := decodeDocValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, child)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := &docValue{kind: docArray}
			for dec.More() {
				child, err := decodeDocValue(dec)
				if err != nil {
					return nil, err
				}
				arr.items = append(arr.items, child)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return &docValue{kind: docScalar, scalar: tok}, nil
	}
}

// DocumentFromYAML decodes a YAML schema document. yaml.Node keeps mapping
// order, so YAML and JSON renditions of the same schema build identical
// trees.
func DocumentFromYAML(data []byte) (*Document, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("schemaform: invalid YAML document: %w", err)
	}
	root := &n
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("schemaform: empty YAML document")
		}
		root = root.Content[0]
	}
	v, err := yamlToDocValue(root)
	if err != nil {
		return nil, err
	}
	if v.kind != docObject {
		return nil, fmt.Errorf("schemaform: schema document root must be a mapping")
	}
	return &Document{root: v}, nil
}

func yamlToDocValue(n *yaml.Node) (*docValue, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlToDocValue(n.Alias)
	case yaml.MappingNode:
		obj := newDocObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("schemaform: non-string YAML mapping key at line %d", n.Content[i].Line)
			}
			child, err := yamlToDocValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.set(key, child)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := &docValue{kind: docArray}
		for _, c := range n.Content {
			child, err := yamlToDocValue(c)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, child)
		}
		return arr, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("schemaform: undecodable YAML scalar at line %d: %w", n.Line, err)
		}
		switch t := v.(type) {
		case int:
			return &docValue{kind: docScalar, scalar: json.Number(fmt.Sprint(t))}, nil
		case int64:
			return &docValue{kind: docScalar, scalar: json.Number(fmt.Sprint(t))}, nil
		case float64:
			return &docValue{kind: docScalar, scalar: json.Number(formatNumber(t))}, nil
		default:
			return &docValue{kind: docScalar, scalar: v}, nil
		}
	}
}

// DocumentFromValue wraps already-decoded data. Plain maps carry no order,
// so object keys fall back to sorted order.
func DocumentFromValue(v any) (*Document, error) {
	dv, err := valueToDocValue(v)
	if err != nil {
		return nil, err
	}
	if dv.kind != docObject {
		return nil, fmt.Errorf("schemaform: schema document root must be a map")
	}
	return &Document{root: dv}, nil
}

func valueToDocValue(v any) (*docValue, error) {
	switch t := v.(type) {
	case map[string]any:
		obj := newDocObject()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child, err := valueToDocValue(t[k])
			if err != nil {
				return nil, err
			}
			obj.set(k, child)
		}
		return obj, nil
	case []any:
		arr := &docValue{kind: docArray}
		for _, it := range t {
			child, err := valueToDocValue(it)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, child)
		}
		return arr, nil
	case nil, bool, string, json.Number:
		return &docValue{kind: docScalar, scalar: t}, nil
	case float64:
		return &docValue{kind: docScalar, scalar: json.Number(formatNumber(t))}, nil
	case int:
		return &docValue{kind: docScalar, scalar: json.Number(fmt.Sprint(t))}, nil
	case int64:
		return &docValue{kind: docScalar, scalar: json.Number(fmt.Sprint(t))}, nil
	default:
		return nil, fmt.Errorf("schemaform: unsupported value %T in schema document", v)
	}
}

// Interface returns the document as plain decoded Go data.
func (d *Document) Interface() any {
	if d == nil {
		return nil
	}
	return d.root.Interface()
}

// resolvePointer navigates a local JSON pointer ("#/definitions/Address",
// "#/components/schemas/Part", or any "#/a/b/c"). It returns false for
// external refs, pointers through arrays, and missing targets. Token escapes
// ~0 and ~1 decode per RFC 6901.
func (d *Document) resolvePointer(ref string) (*docValue, bool) {
	if d == nil || !strings.HasPrefix(ref, "#") {
		return nil, false
	}
	path := strings.TrimPrefix(ref, "#")
	cur := d.root
	if path == "" || path == "/" {
		return cur, true
	}
	for _, tok := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		next, ok := cur.field(tok)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
