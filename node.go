package arazzo

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// kind identifies the shape of a document-tree node.
type kind int

const (
	kindInvalid kind = iota
	kindNull
	kindBool
	kindInt
	kindFloat
	kindString
	kindMapping
	kindSequence
)

func (k kind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindBool:
		return "bool"
	case kindInt:
		return "integer"
	case kindFloat:
		return "number"
	case kindString:
		return "string"
	case kindMapping:
		return "mapping"
	case kindSequence:
		return "sequence"
	default:
		return "invalid"
	}
}

// node is a read-only view over one node of a parsed document tree.
// Two implementations exist: anyNode wraps the plain Go trees produced
// by JSON parsers (map[string]any, []any, scalars), yamlNode wraps
// *yaml.Node so YAML documents keep their key order and scalar tags.
// Builders never touch a concrete representation directly.
type node interface {
	Kind() kind

	Bool() bool
	Int() int64
	Float() float64
	Str() string

	Len() int
	Index(i int) node
	Get(key string) (node, bool)
	Keys() []string

	// Interface materializes the subtree as plain normalized Go values.
	// Used for opaque fragments: extension values, structured payloads,
	// input schemas.
	Interface() any
}

// wrap selects the node implementation for a caller-supplied tree.
func wrap(tree any) node {
	switch t := tree.(type) {
	case *yaml.Node:
		return yamlNode{t}
	case yaml.Node:
		return yamlNode{&t}
	case node:
		return t
	default:
		return anyNode{t}
	}
}

// describe names a node's shape for diagnostics. Unsupported Go types
// report their dynamic type instead of a kind name.
func describe(n node) string {
	if n.Kind() == kindInvalid {
		if a, ok := n.(anyNode); ok {
			return fmt.Sprintf("%T", a.v)
		}
	}
	return n.Kind().String()
}

// Paths locate a field from the document root, e.g.
// $.workflows[0].steps[2].stepId.
const rootPath = "$"

func pathField(p, key string) string {
	return p + "." + key
}

func pathIndex(p string, i int) string {
	return fmt.Sprintf("%s[%d]", p, i)
}

// anyNode wraps plain Go value trees.
type anyNode struct {
	v any
}

func (n anyNode) Kind() kind {
	switch v := n.v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case string:
		return kindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return kindInt
	case float32, float64:
		return kindFloat
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return kindInt
		}
		return kindFloat
	case map[string]any, map[any]any:
		return kindMapping
	case []any:
		return kindSequence
	default:
		return kindInvalid
	}
}

func (n anyNode) Bool() bool {
	b, _ := n.v.(bool)
	return b
}

func (n anyNode) Int() int64 {
	switch v := n.v.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case json.Number:
		i, _ := v.Int64()
		return i
	}
	return 0
}

func (n anyNode) Float() float64 {
	switch v := n.v.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	}
	if n.Kind() == kindInt {
		return float64(n.Int())
	}
	return 0
}

func (n anyNode) Str() string {
	s, _ := n.v.(string)
	return s
}

func (n anyNode) Len() int {
	switch v := n.v.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	case map[any]any:
		return len(v)
	}
	return 0
}

func (n anyNode) Index(i int) node {
	if s, ok := n.v.([]any); ok && i >= 0 && i < len(s) {
		return anyNode{s[i]}
	}
	return anyNode{nil}
}

func (n anyNode) Get(key string) (node, bool) {
	switch m := n.v.(type) {
	case map[string]any:
		v, ok := m[key]
		return anyNode{v}, ok
	case map[any]any:
		v, ok := m[key]
		return anyNode{v}, ok
	}
	return anyNode{nil}, false
}

// Keys returns mapping keys sorted for determinism; plain Go maps have
// no document order to preserve.
func (n anyNode) Keys() []string {
	var keys []string
	switch m := n.v.(type) {
	case map[string]any:
		keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
	case map[any]any:
		keys = make([]string, 0, len(m))
		for k := range m {
			if s, ok := k.(string); ok {
				keys = append(keys, s)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func (n anyNode) Interface() any {
	return normalizeTree(n.v)
}

// yamlNode wraps gopkg.in/yaml.v3 nodes. Alias nodes are followed and
// document nodes unwrapped before any inspection.
type yamlNode struct {
	n *yaml.Node
}

func (n yamlNode) resolve() *yaml.Node {
	y := n.n
	for y != nil {
		switch {
		case y.Kind == yaml.DocumentNode && len(y.Content) > 0:
			y = y.Content[0]
		case y.Kind == yaml.AliasNode && y.Alias != nil:
			y = y.Alias
		default:
			return y
		}
	}
	return y
}

func (n yamlNode) Kind() kind {
	y := n.resolve()
	if y == nil {
		return kindNull
	}
	switch y.Kind {
	case yaml.MappingNode:
		return kindMapping
	case yaml.SequenceNode:
		return kindSequence
	case yaml.ScalarNode:
		switch y.Tag {
		case "!!null", "":
			if y.Tag == "" && y.Value != "" {
				return kindString
			}
			return kindNull
		case "!!bool":
			return kindBool
		case "!!int":
			return kindInt
		case "!!float":
			return kindFloat
		default:
			return kindString
		}
	case 0:
		// zero node from an empty document
		return kindNull
	}
	return kindInvalid
}

func (n yamlNode) Bool() bool {
	var b bool
	if y := n.resolve(); y != nil {
		_ = y.Decode(&b)
	}
	return b
}

func (n yamlNode) Int() int64 {
	var i int64
	if y := n.resolve(); y != nil {
		_ = y.Decode(&i)
	}
	return i
}

func (n yamlNode) Float() float64 {
	var f float64
	if y := n.resolve(); y != nil {
		_ = y.Decode(&f)
	}
	return f
}

func (n yamlNode) Str() string {
	if y := n.resolve(); y != nil {
		return y.Value
	}
	return ""
}

func (n yamlNode) Len() int {
	y := n.resolve()
	if y == nil {
		return 0
	}
	switch y.Kind {
	case yaml.SequenceNode:
		return len(y.Content)
	case yaml.MappingNode:
		return len(y.Content) / 2
	}
	return 0
}

func (n yamlNode) Index(i int) node {
	y := n.resolve()
	if y != nil && y.Kind == yaml.SequenceNode && i >= 0 && i < len(y.Content) {
		return yamlNode{y.Content[i]}
	}
	return anyNode{nil}
}

func (n yamlNode) Get(key string) (node, bool) {
	y := n.resolve()
	if y == nil || y.Kind != yaml.MappingNode {
		return anyNode{nil}, false
	}
	for i := 0; i+1 < len(y.Content); i += 2 {
		if y.Content[i].Value == key {
			return yamlNode{y.Content[i+1]}, true
		}
	}
	return anyNode{nil}, false
}

// Keys returns mapping keys in document order.
func (n yamlNode) Keys() []string {
	y := n.resolve()
	if y == nil || y.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		keys = append(keys, y.Content[i].Value)
	}
	return keys
}

func (n yamlNode) Interface() any {
	y := n.resolve()
	if y == nil {
		return nil
	}
	var v any
	if err := y.Decode(&v); err != nil {
		return nil
	}
	return normalizeTree(v)
}

// normalizeTree rewrites a fragment so the same document produces the
// same Go values whichever representation it arrived through: integers
// become int64, floats float64, json.Number is resolved, and non-string
// map keys are stringified. Emitted trees then marshal cleanly to both
// output formats.
func normalizeTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = normalizeTree(e)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalizeTree(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = normalizeTree(e)
		}
		return s
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
