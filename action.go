package arazzo

import "fmt"

// ActionType classifies what happens once a step's criteria match.
type ActionType string

const (
	ActionEnd   ActionType = "end"
	ActionGoto  ActionType = "goto"
	ActionRetry ActionType = "retry"
)

// SuccessAction ends the workflow or transfers control to another step
// or workflow when its criteria match.
type SuccessAction struct {
	Name       string      `validate:"required"`
	Type       ActionType  `validate:"required,oneof=end goto"`
	WorkflowID string
	StepID     string
	Criteria   []Criterion `validate:"omitempty,dive"`
	Extensions Extensions
}

// FailureAction additionally supports retrying, with a delay in
// seconds and an attempt limit. Retry fields use pointers so emission
// can tell absent from zero.
type FailureAction struct {
	Name       string      `validate:"required"`
	Type       ActionType  `validate:"required,oneof=end goto retry"`
	WorkflowID string
	StepID     string
	RetryAfter *float64    `validate:"omitempty,gte=0"`
	RetryLimit *int64      `validate:"omitempty,gte=0"`
	Criteria   []Criterion `validate:"omitempty,dive"`
	Extensions Extensions
}

// actionTargetValid enforces the conditional target rule: goto demands
// exactly one of workflowId/stepId, retry allows at most one, end needs
// none.
func actionTargetValid(typ ActionType, workflowID, stepID string) bool {
	populated := countNonEmpty(workflowID, stepID)
	switch typ {
	case ActionGoto:
		return populated == 1
	case ActionRetry:
		return populated <= 1
	}
	return true
}

func checkGotoTarget(path string, typ ActionType, workflowID, stepID string) error {
	if !actionTargetValid(typ, workflowID, stepID) {
		return errUnion(path, "workflowId", "stepId")
	}
	return nil
}

func buildSuccessAction(n node, path string) (SuccessAction, error) {
	var a SuccessAction
	if err := requireMapping(n, path); err != nil {
		return a, err
	}

	name, err := requiredString(n, path, "name")
	if err != nil {
		return a, err
	}
	a.Name = name

	typ, err := requiredString(n, path, "type")
	if err != nil {
		return a, err
	}
	if typ != string(ActionEnd) && typ != string(ActionGoto) {
		return a, errType(path, "type", `"end" or "goto"`, fmt.Sprintf("%q", typ))
	}
	a.Type = ActionType(typ)

	if a.WorkflowID, err = optionalString(n, path, "workflowId"); err != nil {
		return a, err
	}
	if a.StepID, err = optionalString(n, path, "stepId"); err != nil {
		return a, err
	}
	if err := checkGotoTarget(path, a.Type, a.WorkflowID, a.StepID); err != nil {
		return a, err
	}

	if seq, ok, err := optionalSequence(n, path, "criteria"); err != nil {
		return a, err
	} else if ok {
		if a.Criteria, err = buildCriteria(seq, pathField(path, "criteria")); err != nil {
			return a, err
		}
	}

	a.Extensions = collectExtensions(n, "name", "type", "workflowId", "stepId", "criteria")
	return a, nil
}

func buildFailureAction(n node, path string) (FailureAction, error) {
	var a FailureAction
	if err := requireMapping(n, path); err != nil {
		return a, err
	}

	name, err := requiredString(n, path, "name")
	if err != nil {
		return a, err
	}
	a.Name = name

	typ, err := requiredString(n, path, "type")
	if err != nil {
		return a, err
	}
	if typ != string(ActionEnd) && typ != string(ActionGoto) && typ != string(ActionRetry) {
		return a, errType(path, "type", `"end", "goto" or "retry"`, fmt.Sprintf("%q", typ))
	}
	a.Type = ActionType(typ)

	if a.WorkflowID, err = optionalString(n, path, "workflowId"); err != nil {
		return a, err
	}
	if a.StepID, err = optionalString(n, path, "stepId"); err != nil {
		return a, err
	}
	if err := checkGotoTarget(path, a.Type, a.WorkflowID, a.StepID); err != nil {
		return a, err
	}

	if a.RetryAfter, err = optionalFloat(n, path, "retryAfter"); err != nil {
		return a, err
	}
	if a.RetryLimit, err = optionalInt(n, path, "retryLimit"); err != nil {
		return a, err
	}
	if a.Type == ActionRetry {
		if a.RetryAfter == nil {
			return a, errMissing(path, "retryAfter")
		}
		if a.RetryLimit == nil {
			return a, errMissing(path, "retryLimit")
		}
	}

	if seq, ok, err := optionalSequence(n, path, "criteria"); err != nil {
		return a, err
	} else if ok {
		if a.Criteria, err = buildCriteria(seq, pathField(path, "criteria")); err != nil {
			return a, err
		}
	}

	a.Extensions = collectExtensions(n, "name", "type", "workflowId", "stepId",
		"retryAfter", "retryLimit", "criteria")
	return a, nil
}

func (a SuccessAction) tree() map[string]any {
	m := map[string]any{
		"name": a.Name,
		"type": string(a.Type),
	}
	if a.WorkflowID != "" {
		m["workflowId"] = a.WorkflowID
	}
	if a.StepID != "" {
		m["stepId"] = a.StepID
	}
	if len(a.Criteria) > 0 {
		m["criteria"] = criteriaTree(a.Criteria)
	}
	mergeExtensions(m, a.Extensions)
	return m
}

func (a FailureAction) tree() map[string]any {
	m := map[string]any{
		"name": a.Name,
		"type": string(a.Type),
	}
	if a.WorkflowID != "" {
		m["workflowId"] = a.WorkflowID
	}
	if a.StepID != "" {
		m["stepId"] = a.StepID
	}
	if a.RetryAfter != nil {
		m["retryAfter"] = *a.RetryAfter
	}
	if a.RetryLimit != nil {
		m["retryLimit"] = *a.RetryLimit
	}
	if len(a.Criteria) > 0 {
		m["criteria"] = criteriaTree(a.Criteria)
	}
	mergeExtensions(m, a.Extensions)
	return m
}
