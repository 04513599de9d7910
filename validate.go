package arazzo

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Package-level validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	registerModelValidators()
}

// Validate checks a description against the structural rules decoding
// enforces, reference resolution included. Decoded descriptions always
// pass; the point is catching inconsistencies in hand-built or mutated
// models before emission.
func Validate(d *Description) error {
	if d == nil {
		return fmt.Errorf("description cannot be nil")
	}

	if err := validate.Struct(d); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMessages []string
			for _, fieldErr := range validationErrors {
				errMessages = append(errMessages, fmt.Sprintf(
					"field '%s' failed validation (rule: %s)",
					fieldErr.Namespace(),
					fieldErr.Tag(),
				))
			}
			return fmt.Errorf("description validation failed:\n  - %s", strings.Join(errMessages, "\n  - "))
		}
		return fmt.Errorf("description validation failed: %w", err)
	}

	return resolveReferences(d)
}

// registerModelValidators registers the custom field validators and the
// cross-field rules the struct tags cannot express.
func registerModelValidators() {
	// expression validates the runtime-expression prefix
	validate.RegisterValidation("expression", func(fl validator.FieldLevel) bool {
		return IsExpression(fl.Field().String())
	})

	validate.RegisterStructValidation(descriptionStructLevel, Description{})
	validate.RegisterStructValidation(stepStructLevel, Step{})
	validate.RegisterStructValidation(successActionStructLevel, SuccessAction{})
	validate.RegisterStructValidation(failureActionStructLevel, FailureAction{})
	validate.RegisterStructValidation(criterionStructLevel, Criterion{})
	validate.RegisterStructValidation(valueStructLevel, Value{})
	validate.RegisterStructValidation(payloadStructLevel, Payload{})
	validate.RegisterStructValidation(requestBodyStructLevel, RequestBody{})
	validate.RegisterStructValidation(reusableStructLevel[Parameter], Reusable[Parameter]{})
	validate.RegisterStructValidation(reusableStructLevel[SuccessAction], Reusable[SuccessAction]{})
	validate.RegisterStructValidation(reusableStructLevel[FailureAction], Reusable[FailureAction]{})
}

func descriptionStructLevel(sl validator.StructLevel) {
	d := sl.Current().Interface().(Description)
	if d.Arazzo == "" {
		return
	}
	if checkVersion(d.Arazzo) != nil {
		sl.ReportError(d.Arazzo, "Arazzo", "Arazzo", "supported_version",
			strings.Join(supportedVersions, " "))
	}
}

func stepStructLevel(sl validator.StructLevel) {
	s := sl.Current().Interface().(Step)
	if countNonEmpty(s.OperationID, s.OperationPath, s.WorkflowID) != 1 {
		sl.ReportError(s.OperationID, "OperationID", "OperationID", "step_target", "")
	}
}

func successActionStructLevel(sl validator.StructLevel) {
	a := sl.Current().Interface().(SuccessAction)
	if !actionTargetValid(a.Type, a.WorkflowID, a.StepID) {
		sl.ReportError(a.WorkflowID, "WorkflowID", "WorkflowID", "action_target", string(a.Type))
	}
}

func failureActionStructLevel(sl validator.StructLevel) {
	a := sl.Current().Interface().(FailureAction)
	if !actionTargetValid(a.Type, a.WorkflowID, a.StepID) {
		sl.ReportError(a.WorkflowID, "WorkflowID", "WorkflowID", "action_target", string(a.Type))
	}
	if a.Type == ActionRetry {
		if a.RetryAfter == nil {
			sl.ReportError(a.RetryAfter, "RetryAfter", "RetryAfter", "required_for_retry", "")
		}
		if a.RetryLimit == nil {
			sl.ReportError(a.RetryLimit, "RetryLimit", "RetryLimit", "required_for_retry", "")
		}
	}
}

func criterionStructLevel(sl validator.StructLevel) {
	c := sl.Current().Interface().(Criterion)
	contextual := c.Type.Kind == CriterionJSONPath || c.Type.Kind == CriterionXPath
	if contextual && c.Context == "" {
		sl.ReportError(c.Context, "Context", "Context", "required_with_syntax", string(c.Type.Kind))
	}
	if c.Type.Version != "" && !contextual {
		sl.ReportError(c.Type.Version, "Type.Version", "Type.Version", "versioned_syntax", string(c.Type.Kind))
	}
}

func valueStructLevel(sl validator.StructLevel) {
	v := sl.Current().Interface().(Value)
	switch v.Kind {
	case ValueExpression:
		if !IsExpression(v.Expression) {
			sl.ReportError(v.Expression, "Expression", "Expression", "expression", "")
		}
	case ValueLiteral:
		if v.Expression != "" {
			sl.ReportError(v.Expression, "Expression", "Expression", "excluded_for_literal", "")
		}
	}
}

func payloadStructLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(Payload)
	if p.Kind == PayloadExpression && !IsExpression(p.Expression) {
		sl.ReportError(p.Expression, "Expression", "Expression", "expression", "")
	}
}

func requestBodyStructLevel(sl validator.StructLevel) {
	rb := sl.Current().Interface().(RequestBody)
	if rb.Payload != nil && rb.ContentType == "" {
		sl.ReportError(rb.ContentType, "ContentType", "ContentType", "required_with_payload", "")
	}
}

// reusableStructLevel gates the inline object behind the reference
// discriminator: the reference form skips object validation entirely,
// the inline form validates the object and forbids an override value.
func reusableStructLevel[T any](sl validator.StructLevel) {
	r := sl.Current().Interface().(Reusable[T])
	if r.IsReference() {
		return
	}
	if r.Value != nil {
		sl.ReportError(r.Value, "Value", "Value", "excluded_without", "Reference")
	}
	if err := sl.Validator().Struct(r.Object); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			sl.ReportValidationErrors("Object.", "Object.", validationErrors)
		}
	}
}
