package arazzo

// Step is one call within a workflow. Its target is exactly one of an
// operationId from a source description, a JSON-pointer operationPath
// into a source document, or another workflow's workflowId.
type Step struct {
	StepID        string `validate:"required"`
	Description   string
	OperationID   string
	OperationPath string
	WorkflowID    string

	Parameters      []Reusable[Parameter]     `validate:"omitempty,dive"`
	RequestBody     *RequestBody
	SuccessCriteria []Criterion               `validate:"omitempty,dive"`
	OnSuccess       []Reusable[SuccessAction] `validate:"omitempty,dive"`
	OnFailure       []Reusable[FailureAction] `validate:"omitempty,dive"`
	Outputs         map[string]string         `validate:"omitempty,dive,expression"`
	Extensions      Extensions
}

// Target returns the populated operation-reference variant as a
// (field, value) pair, empty when a hand-built step populates none.
func (s Step) Target() (field, value string) {
	switch {
	case s.OperationID != "":
		return "operationId", s.OperationID
	case s.OperationPath != "":
		return "operationPath", s.OperationPath
	case s.WorkflowID != "":
		return "workflowId", s.WorkflowID
	}
	return "", ""
}

func buildStep(n node, path string) (Step, error) {
	var s Step
	if err := requireMapping(n, path); err != nil {
		return s, err
	}

	stepID, err := requiredString(n, path, "stepId")
	if err != nil {
		return s, err
	}
	s.StepID = stepID

	if s.Description, err = optionalString(n, path, "description"); err != nil {
		return s, err
	}

	if s.OperationID, err = optionalString(n, path, "operationId"); err != nil {
		return s, err
	}
	if s.OperationPath, err = optionalString(n, path, "operationPath"); err != nil {
		return s, err
	}
	if s.WorkflowID, err = optionalString(n, path, "workflowId"); err != nil {
		return s, err
	}
	if countNonEmpty(s.OperationID, s.OperationPath, s.WorkflowID) != 1 {
		return s, errUnion(path, "operationId", "operationPath", "workflowId")
	}

	if seq, ok, err := optionalSequence(n, path, "parameters"); err != nil {
		return s, err
	} else if ok {
		if s.Parameters, err = buildReusableList(seq, pathField(path, "parameters"), buildParameter); err != nil {
			return s, err
		}
	}

	if rn, ok := n.Get("requestBody"); ok {
		if s.RequestBody, err = buildRequestBody(rn, pathField(path, "requestBody")); err != nil {
			return s, err
		}
	}

	if seq, ok, err := optionalSequence(n, path, "successCriteria"); err != nil {
		return s, err
	} else if ok {
		if s.SuccessCriteria, err = buildCriteria(seq, pathField(path, "successCriteria")); err != nil {
			return s, err
		}
	}

	if seq, ok, err := optionalSequence(n, path, "onSuccess"); err != nil {
		return s, err
	} else if ok {
		if s.OnSuccess, err = buildReusableList(seq, pathField(path, "onSuccess"), buildSuccessAction); err != nil {
			return s, err
		}
	}

	if seq, ok, err := optionalSequence(n, path, "onFailure"); err != nil {
		return s, err
	} else if ok {
		if s.OnFailure, err = buildReusableList(seq, pathField(path, "onFailure"), buildFailureAction); err != nil {
			return s, err
		}
	}

	if on, ok := n.Get("outputs"); ok {
		if s.Outputs, err = stringMap(on, pathField(path, "outputs")); err != nil {
			return s, err
		}
	}

	s.Extensions = collectExtensions(n, "stepId", "description", "operationId",
		"operationPath", "workflowId", "parameters", "requestBody",
		"successCriteria", "onSuccess", "onFailure", "outputs")
	return s, nil
}

func (s Step) tree() map[string]any {
	m := map[string]any{"stepId": s.StepID}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.OperationID != "" {
		m["operationId"] = s.OperationID
	}
	if s.OperationPath != "" {
		m["operationPath"] = s.OperationPath
	}
	if s.WorkflowID != "" {
		m["workflowId"] = s.WorkflowID
	}
	if len(s.Parameters) > 0 {
		m["parameters"] = reusableListTree(s.Parameters, Parameter.tree)
	}
	if s.RequestBody != nil {
		m["requestBody"] = s.RequestBody.tree()
	}
	if len(s.SuccessCriteria) > 0 {
		m["successCriteria"] = criteriaTree(s.SuccessCriteria)
	}
	if len(s.OnSuccess) > 0 {
		m["onSuccess"] = reusableListTree(s.OnSuccess, SuccessAction.tree)
	}
	if len(s.OnFailure) > 0 {
		m["onFailure"] = reusableListTree(s.OnFailure, FailureAction.tree)
	}
	if len(s.Outputs) > 0 {
		m["outputs"] = stringMapTree(s.Outputs)
	}
	mergeExtensions(m, s.Extensions)
	return m
}
