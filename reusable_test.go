package arazzo

import (
	"reflect"
	"testing"
)

// Test the reference discriminator separates the two forms
func TestDecode_ReusableForms(t *testing.T) {
	doc := docWithWorkflow(map[string]any{
		"workflowId": "w1",
		"parameters": []any{
			map[string]any{"reference": "$components.parameters.pageLimit"},
			map[string]any{"reference": "$components.parameters.pageLimit", "value": 50},
			map[string]any{"name": "status", "in": "query", "value": "available"},
		},
		"steps": []any{
			map[string]any{"stepId": "s1", "operationId": "op"},
		},
	})
	doc["components"] = map[string]any{
		"parameters": map[string]any{
			"pageLimit": map[string]any{"name": "limit", "in": "query", "value": 25},
		},
	}

	d := mustDecode(t, doc)
	params := d.Workflows[0].Parameters

	if !params[0].IsReference() {
		t.Error("Expected the first entry to be a reference")
	}
	if params[0].Value != nil {
		t.Errorf("Expected no override value, got %v", params[0].Value)
	}
	if params[1].Value != int64(50) {
		t.Errorf("Expected override value 50, got %v", params[1].Value)
	}
	if params[2].IsReference() {
		t.Error("Expected the third entry to be inline")
	}
	if params[2].Object.Name != "status" {
		t.Errorf("Expected inline parameter 'status', got '%s'", params[2].Object.Name)
	}
}

// Test the reference key must hold a string
func TestDecode_ReusableReferenceNotString(t *testing.T) {
	doc := docWithWorkflow(map[string]any{
		"workflowId": "w1",
		"parameters": []any{
			map[string]any{"reference": 5},
		},
		"steps": []any{
			map[string]any{"stepId": "s1", "operationId": "op"},
		},
	})
	de := wantDecodeError(t, doc, ErrorCodeTypeMismatch)
	if de.Key != "reference" {
		t.Errorf("Expected key 'reference', got '%s'", de.Key)
	}
	if de.Path != "$.workflows[0].parameters[0]" {
		t.Errorf("Expected the list-entry path, got '%s'", de.Path)
	}
}

// Test reference string parsing, dotted names included
func TestParseComponentsReference(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		wantSection string
		wantName    string
		wantOK      bool
	}{
		{name: "parameter", ref: "$components.parameters.pageLimit", wantSection: "parameters", wantName: "pageLimit", wantOK: true},
		{name: "dotted name", ref: "$components.inputs.pets.page", wantSection: "inputs", wantName: "pets.page", wantOK: true},
		{name: "other expression", ref: "$inputs.petType", wantOK: false},
		{name: "section only", ref: "$components.parameters", wantOK: false},
		{name: "empty name", ref: "$components.parameters.", wantOK: false},
		{name: "empty section", ref: "$components..pageLimit", wantOK: false},
		{name: "plain string", ref: "pageLimit", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, name, ok := parseComponentsReference(tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("got ok=%v, want %v", ok, tt.wantOK)
			}
			if section != tt.wantSection || name != tt.wantName {
				t.Errorf("got %q/%q, want %q/%q", section, name, tt.wantSection, tt.wantName)
			}
		})
	}
}

// Test emission keeps the populated variant only
func TestReusableTree(t *testing.T) {
	ref := Reusable[Parameter]{Reference: "$components.parameters.pageLimit"}
	want := map[string]any{"reference": "$components.parameters.pageLimit"}
	if got := reusableTree(ref, Parameter.tree); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	ref.Value = int64(50)
	if got := reusableTree(ref, Parameter.tree); got["value"] != int64(50) {
		t.Errorf("Expected the override value, got %v", got)
	}

	inline := Reusable[Parameter]{Object: Parameter{Name: "status", Value: LiteralValue("available")}}
	got := reusableTree(inline, Parameter.tree)
	if _, ok := got["reference"]; ok {
		t.Error("Expected no reference key on the inline form")
	}
	if got["name"] != "status" {
		t.Errorf("Expected the inline object tree, got %v", got)
	}
}
