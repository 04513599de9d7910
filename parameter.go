package arazzo

import "fmt"

// ParameterLocation names where a parameter is applied on the target
// operation.
type ParameterLocation string

const (
	LocationPath   ParameterLocation = "path"
	LocationQuery  ParameterLocation = "query"
	LocationHeader ParameterLocation = "header"
	LocationCookie ParameterLocation = "cookie"
)

var parameterLocations = map[ParameterLocation]bool{
	LocationPath:   true,
	LocationQuery:  true,
	LocationHeader: true,
	LocationCookie: true,
}

// ValueKind discriminates the two shapes a supplied value can take.
type ValueKind string

const (
	ValueLiteral    ValueKind = "literal"
	ValueExpression ValueKind = "expression"
)

// Value is either a literal tree fragment or an opaque runtime
// expression, discriminated by Kind. Used by parameters and payload
// replacements.
type Value struct {
	Kind       ValueKind `validate:"required,oneof=literal expression"`
	Literal    any
	Expression string
}

// LiteralValue wraps a plain value.
func LiteralValue(v any) Value {
	return Value{Kind: ValueLiteral, Literal: v}
}

// ExpressionValue wraps a runtime expression string.
func ExpressionValue(expr string) Value {
	return Value{Kind: ValueExpression, Expression: expr}
}

// buildValue applies the value union policy: a string carrying the
// runtime-expression prefix is an expression, anything else a literal.
func buildValue(n node) Value {
	if n.Kind() == kindString && IsExpression(n.Str()) {
		return ExpressionValue(n.Str())
	}
	return LiteralValue(n.Interface())
}

func (v Value) tree() any {
	if v.Kind == ValueExpression {
		return v.Expression
	}
	return v.Literal
}

// Parameter supplies a named value to the operation or workflow a step
// invokes. Reusable references to declared parameters are handled by
// the enclosing Reusable wrapper, never by this type.
type Parameter struct {
	Name       string            `validate:"required"`
	In         ParameterLocation `validate:"omitempty,oneof=path query header cookie"`
	Value      Value
	Extensions Extensions
}

func buildParameter(n node, path string) (Parameter, error) {
	var p Parameter
	if err := requireMapping(n, path); err != nil {
		return p, err
	}

	name, err := requiredString(n, path, "name")
	if err != nil {
		return p, err
	}
	p.Name = name

	in, err := optionalString(n, path, "in")
	if err != nil {
		return p, err
	}
	if in != "" && !parameterLocations[ParameterLocation(in)] {
		return p, errType(path, "in", `one of "path", "query", "header", "cookie"`, fmt.Sprintf("%q", in))
	}
	p.In = ParameterLocation(in)

	vn, ok := n.Get("value")
	if !ok {
		return p, errMissing(path, "value")
	}
	p.Value = buildValue(vn)

	p.Extensions = collectExtensions(n, "name", "in", "value")
	return p, nil
}

func (p Parameter) tree() map[string]any {
	m := map[string]any{
		"name":  p.Name,
		"value": p.Value.tree(),
	}
	if p.In != "" {
		m["in"] = string(p.In)
	}
	mergeExtensions(m, p.Extensions)
	return m
}
