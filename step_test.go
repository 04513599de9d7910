package arazzo

import (
	"reflect"
	"testing"
)

// docWithStep wraps a single step tree in a one-workflow document.
func docWithStep(s map[string]any) map[string]any {
	return docWithWorkflow(map[string]any{
		"workflowId": "w1",
		"steps":      []any{s},
	})
}

// Test each operation-reference variant on its own decodes
func TestDecode_StepTargetVariants(t *testing.T) {
	tests := []struct {
		name      string
		step      map[string]any
		wantField string
		wantValue string
	}{
		{
			name:      "operationId",
			step:      map[string]any{"stepId": "s1", "operationId": "findPets"},
			wantField: "operationId",
			wantValue: "findPets",
		},
		{
			name:      "operationPath",
			step:      map[string]any{"stepId": "s1", "operationPath": "{$sourceDescriptions.api.url}#/paths/~1pets/get"},
			wantField: "operationPath",
			wantValue: "{$sourceDescriptions.api.url}#/paths/~1pets/get",
		},
		{
			name:      "workflowId",
			step:      map[string]any{"stepId": "s1", "workflowId": "notify"},
			wantField: "workflowId",
			wantValue: "notify",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDecode(t, docWithStep(tt.step))
			field, value := d.Workflows[0].Steps[0].Target()
			if field != tt.wantField || value != tt.wantValue {
				t.Errorf("got %q=%q, want %q=%q", field, value, tt.wantField, tt.wantValue)
			}
		})
	}
}

// Test a step with no target is rejected
func TestDecode_StepNoTarget(t *testing.T) {
	doc := docWithStep(map[string]any{"stepId": "s1"})
	de := wantDecodeError(t, doc, ErrorCodeInvalidUnion)
	if de.Path != "$.workflows[0].steps[0]" {
		t.Errorf("Expected step path, got '%s'", de.Path)
	}
	want := []string{"operationId", "operationPath", "workflowId"}
	if !reflect.DeepEqual(de.Candidates, want) {
		t.Errorf("Expected candidates %v, got %v", want, de.Candidates)
	}
}

// Test a step with two targets is rejected
func TestDecode_StepTwoTargets(t *testing.T) {
	doc := docWithStep(map[string]any{
		"stepId":      "s1",
		"operationId": "findPets",
		"workflowId":  "notify",
	})
	wantDecodeError(t, doc, ErrorCodeInvalidUnion)
}

// Test the step identifier is required
func TestDecode_StepMissingId(t *testing.T) {
	doc := docWithStep(map[string]any{"operationId": "findPets"})
	de := wantDecodeError(t, doc, ErrorCodeMissingField)
	if de.Path != "$.workflows[0].steps[0]" || de.Key != "stepId" {
		t.Errorf("Expected $.workflows[0].steps[0] stepId, got %s %s", de.Path, de.Key)
	}
}

// Test nested step sections are wired through their builders
func TestDecode_StepSections(t *testing.T) {
	doc := docWithStep(map[string]any{
		"stepId":      "order",
		"description": "Place the order.",
		"operationId": "placeOrder",
		"parameters": []any{
			map[string]any{"name": "status", "in": "query", "value": "available"},
			map[string]any{"reference": "$components.parameters.pageLimit"},
		},
		"requestBody": map[string]any{
			"contentType": "application/json",
			"payload":     map[string]any{"petId": "$steps.find.outputs.petId"},
		},
		"successCriteria": []any{
			map[string]any{"condition": "$statusCode == 200"},
		},
		"onSuccess": []any{
			map[string]any{"name": "done", "type": "end"},
		},
		"onFailure": []any{
			map[string]any{"reference": "$components.failureActions.retryOrder"},
		},
		"outputs": map[string]any{
			"orderId": "$response.body#/id",
		},
		"x-timeout": "30s",
	})
	// The document only carries the components the references point at.
	doc["components"] = map[string]any{
		"parameters": map[string]any{
			"pageLimit": map[string]any{"name": "limit", "in": "query", "value": 25},
		},
		"failureActions": map[string]any{
			"retryOrder": map[string]any{"name": "retryOrder", "type": "retry", "retryAfter": 1, "retryLimit": 3},
		},
	}

	d := mustDecode(t, doc)
	s := d.Workflows[0].Steps[0]

	if s.Description != "Place the order." {
		t.Errorf("Expected description, got '%s'", s.Description)
	}
	if len(s.Parameters) != 2 {
		t.Fatalf("Expected 2 parameters, got %d", len(s.Parameters))
	}
	if s.Parameters[0].IsReference() {
		t.Error("Expected first parameter to be inline")
	}
	if !s.Parameters[1].IsReference() {
		t.Error("Expected second parameter to be a reference")
	}
	if s.RequestBody == nil || s.RequestBody.ContentType != "application/json" {
		t.Fatalf("Expected application/json request body, got %v", s.RequestBody)
	}
	if s.RequestBody.Payload.Kind != PayloadStructured {
		t.Errorf("Expected structured payload, got '%s'", s.RequestBody.Payload.Kind)
	}
	if len(s.SuccessCriteria) != 1 || s.SuccessCriteria[0].Condition != "$statusCode == 200" {
		t.Errorf("Expected one simple criterion, got %v", s.SuccessCriteria)
	}
	if len(s.OnSuccess) != 1 || s.OnSuccess[0].Object.Name != "done" {
		t.Errorf("Expected inline end action, got %v", s.OnSuccess)
	}
	if len(s.OnFailure) != 1 || s.OnFailure[0].Reference != "$components.failureActions.retryOrder" {
		t.Errorf("Expected failure action reference, got %v", s.OnFailure)
	}
	if s.Outputs["orderId"] != "$response.body#/id" {
		t.Errorf("Expected orderId output, got %v", s.Outputs)
	}
	if s.Extensions["x-timeout"] != "30s" {
		t.Errorf("Expected x-timeout extension, got %v", s.Extensions)
	}
}

// Test step outputs values must be strings
func TestDecode_StepOutputsValueNotString(t *testing.T) {
	doc := docWithStep(map[string]any{
		"stepId":      "s1",
		"operationId": "op",
		"outputs":     map[string]any{"id": true},
	})
	de := wantDecodeError(t, doc, ErrorCodeTypeMismatch)
	if de.Path != "$.workflows[0].steps[0].outputs" || de.Key != "id" {
		t.Errorf("Expected outputs path and key, got %s %s", de.Path, de.Key)
	}
}
