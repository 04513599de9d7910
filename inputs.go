package arazzo

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

// InputValidationError represents runtime input values rejected by a
// workflow's inputs schema.
type InputValidationError struct {
	Message string
	Details []string
}

func (e *InputValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

// ValidateInputs checks runtime input values against the workflow's
// inputs JSON Schema. A workflow without an inputs schema accepts
// anything. The schema itself stays opaque until this call; a fragment
// that is not a valid schema surfaces here as a compile error.
func (w *Workflow) ValidateInputs(values map[string]any) error {
	if w.Inputs == nil {
		return nil
	}

	schemaData, err := json.Marshal(w.Inputs)
	if err != nil {
		return fmt.Errorf("encoding inputs schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(schemaData)
	if err != nil {
		return fmt.Errorf("compiling inputs schema: %w", err)
	}

	result := schema.Validate(values)
	if !result.IsValid() {
		var details []string
		for _, detail := range result.Errors {
			details = append(details, detail.Message)
		}
		return &InputValidationError{
			Message: fmt.Sprintf("workflow %q input validation failed", w.WorkflowID),
			Details: details,
		}
	}

	return nil
}
