package arazzo

import (
	"reflect"
	"testing"
)

// docWithParameter puts one inline parameter on the minimal workflow.
func docWithParameter(p map[string]any) map[string]any {
	return docWithWorkflow(map[string]any{
		"workflowId": "w1",
		"parameters": []any{p},
		"steps": []any{
			map[string]any{"stepId": "s1", "operationId": "op"},
		},
	})
}

func decodeParameter(t *testing.T, p map[string]any) Parameter {
	t.Helper()
	d := mustDecode(t, docWithParameter(p))
	return d.Workflows[0].Parameters[0].Object
}

// Test the value union policy across node shapes
func TestDecode_ParameterValueKinds(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		wantKind    ValueKind
		wantLiteral any
	}{
		{name: "expression string", value: "$inputs.petType", wantKind: ValueExpression},
		{name: "bare prefix", value: "$", wantKind: ValueExpression},
		{name: "plain string", value: "available", wantKind: ValueLiteral, wantLiteral: "available"},
		{name: "integer", value: 25, wantKind: ValueLiteral, wantLiteral: int64(25)},
		{name: "boolean", value: true, wantKind: ValueLiteral, wantLiteral: true},
		{name: "null", value: nil, wantKind: ValueLiteral, wantLiteral: nil},
		{
			name:        "mapping",
			value:       map[string]any{"lat": 52.5, "lon": 13.4},
			wantKind:    ValueLiteral,
			wantLiteral: map[string]any{"lat": 52.5, "lon": 13.4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodeParameter(t, map[string]any{"name": "p", "value": tt.value})
			if p.Value.Kind != tt.wantKind {
				t.Fatalf("got kind %q, want %q", p.Value.Kind, tt.wantKind)
			}
			if tt.wantKind == ValueExpression {
				if p.Value.Expression != tt.value.(string) {
					t.Errorf("got expression %q, want %q", p.Value.Expression, tt.value)
				}
				return
			}
			if !reflect.DeepEqual(p.Value.Literal, tt.wantLiteral) {
				t.Errorf("got literal %v, want %v", p.Value.Literal, tt.wantLiteral)
			}
		})
	}
}

// Test the location enumeration
func TestDecode_ParameterInInvalid(t *testing.T) {
	doc := docWithParameter(map[string]any{"name": "p", "in": "body", "value": 1})
	de := wantDecodeError(t, doc, ErrorCodeTypeMismatch)
	if de.Key != "in" {
		t.Errorf("Expected key 'in', got '%s'", de.Key)
	}
	if de.Expected != `one of "path", "query", "header", "cookie"` {
		t.Errorf("Expected location enumeration, got '%s'", de.Expected)
	}
	if de.Actual != `"body"` {
		t.Errorf("Expected actual '\"body\"', got '%s'", de.Actual)
	}
}

// Test name and value are required, location is not
func TestDecode_ParameterRequiredFields(t *testing.T) {
	de := wantDecodeError(t, docWithParameter(map[string]any{"value": 1}), ErrorCodeMissingField)
	if de.Key != "name" {
		t.Errorf("Expected key 'name', got '%s'", de.Key)
	}

	de = wantDecodeError(t, docWithParameter(map[string]any{"name": "p"}), ErrorCodeMissingField)
	if de.Key != "value" {
		t.Errorf("Expected key 'value', got '%s'", de.Key)
	}

	p := decodeParameter(t, map[string]any{"name": "p", "value": 1})
	if p.In != "" {
		t.Errorf("Expected empty location, got '%s'", p.In)
	}
}

// Test emission mirrors the decoded shape
func TestParameter_Tree(t *testing.T) {
	p := decodeParameter(t, map[string]any{
		"name":    "limit",
		"in":      "query",
		"value":   "$inputs.limit",
		"x-cache": false,
	})

	want := map[string]any{
		"name":    "limit",
		"in":      "query",
		"value":   "$inputs.limit",
		"x-cache": false,
	}
	if got := p.tree(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	bare := Parameter{Name: "limit", Value: LiteralValue(int64(10))}
	tree := bare.tree()
	if _, ok := tree["in"]; ok {
		t.Error("Expected tree to omit empty location")
	}
	if tree["value"] != int64(10) {
		t.Errorf("Expected literal value 10, got %v", tree["value"])
	}
}

// Test the value constructors
func TestValueConstructors(t *testing.T) {
	lit := LiteralValue(42)
	if lit.Kind != ValueLiteral || lit.Literal != 42 {
		t.Errorf("Expected literal 42, got %v", lit)
	}
	expr := ExpressionValue("$response.body")
	if expr.Kind != ValueExpression || expr.Expression != "$response.body" {
		t.Errorf("Expected expression '$response.body', got %v", expr)
	}
	if lit.tree() != 42 || expr.tree() != "$response.body" {
		t.Error("Expected trees to carry the wrapped values")
	}
}
