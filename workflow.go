package arazzo

// Workflow is a named, ordered sequence of steps achieving one goal.
// Inputs holds the workflow's input JSON-Schema fragment opaquely; see
// ValidateInputs for checking runtime values against it.
type Workflow struct {
	WorkflowID  string `validate:"required"`
	Summary     string
	Description string
	Inputs      any
	DependsOn   []string

	Parameters     []Reusable[Parameter]     `validate:"omitempty,dive"`
	Steps          []Step                    `validate:"min=1,unique=StepID,dive"`
	SuccessActions []Reusable[SuccessAction] `validate:"omitempty,dive"`
	FailureActions []Reusable[FailureAction] `validate:"omitempty,dive"`
	Outputs        map[string]string         `validate:"omitempty,dive,expression"`
	Extensions     Extensions
}

func buildWorkflow(n node, path string) (Workflow, error) {
	var w Workflow
	if err := requireMapping(n, path); err != nil {
		return w, err
	}

	workflowID, err := requiredString(n, path, "workflowId")
	if err != nil {
		return w, err
	}
	w.WorkflowID = workflowID

	if w.Summary, err = optionalString(n, path, "summary"); err != nil {
		return w, err
	}
	if w.Description, err = optionalString(n, path, "description"); err != nil {
		return w, err
	}

	if in, ok := n.Get("inputs"); ok {
		w.Inputs = in.Interface()
	}

	if seq, ok, err := optionalSequence(n, path, "dependsOn"); err != nil {
		return w, err
	} else if ok {
		if w.DependsOn, err = stringSlice(seq, pathField(path, "dependsOn")); err != nil {
			return w, err
		}
	}

	if seq, ok, err := optionalSequence(n, path, "parameters"); err != nil {
		return w, err
	} else if ok {
		if w.Parameters, err = buildReusableList(seq, pathField(path, "parameters"), buildParameter); err != nil {
			return w, err
		}
	}

	steps, err := requiredSequence(n, path, "steps")
	if err != nil {
		return w, err
	}
	stepsPath := pathField(path, "steps")
	w.Steps = make([]Step, 0, steps.Len())
	seen := make(map[string]bool, steps.Len())
	for i := 0; i < steps.Len(); i++ {
		step, err := buildStep(steps.Index(i), pathIndex(stepsPath, i))
		if err != nil {
			return w, err
		}
		if seen[step.StepID] {
			return w, errDuplicate(pathIndex(stepsPath, i), step.StepID)
		}
		seen[step.StepID] = true
		w.Steps = append(w.Steps, step)
	}

	if seq, ok, err := optionalSequence(n, path, "successActions"); err != nil {
		return w, err
	} else if ok {
		if w.SuccessActions, err = buildReusableList(seq, pathField(path, "successActions"), buildSuccessAction); err != nil {
			return w, err
		}
	}

	if seq, ok, err := optionalSequence(n, path, "failureActions"); err != nil {
		return w, err
	} else if ok {
		if w.FailureActions, err = buildReusableList(seq, pathField(path, "failureActions"), buildFailureAction); err != nil {
			return w, err
		}
	}

	if on, ok := n.Get("outputs"); ok {
		if w.Outputs, err = stringMap(on, pathField(path, "outputs")); err != nil {
			return w, err
		}
	}

	w.Extensions = collectExtensions(n, "workflowId", "summary", "description",
		"inputs", "dependsOn", "parameters", "steps", "successActions",
		"failureActions", "outputs")
	return w, nil
}

func (w Workflow) tree() map[string]any {
	m := map[string]any{"workflowId": w.WorkflowID}
	if w.Summary != "" {
		m["summary"] = w.Summary
	}
	if w.Description != "" {
		m["description"] = w.Description
	}
	if w.Inputs != nil {
		m["inputs"] = w.Inputs
	}
	if len(w.DependsOn) > 0 {
		m["dependsOn"] = stringSliceTree(w.DependsOn)
	}
	if len(w.Parameters) > 0 {
		m["parameters"] = reusableListTree(w.Parameters, Parameter.tree)
	}
	steps := make([]any, 0, len(w.Steps))
	for _, s := range w.Steps {
		steps = append(steps, s.tree())
	}
	m["steps"] = steps
	if len(w.SuccessActions) > 0 {
		m["successActions"] = reusableListTree(w.SuccessActions, SuccessAction.tree)
	}
	if len(w.FailureActions) > 0 {
		m["failureActions"] = reusableListTree(w.FailureActions, FailureAction.tree)
	}
	if len(w.Outputs) > 0 {
		m["outputs"] = stringMapTree(w.Outputs)
	}
	mergeExtensions(m, w.Extensions)
	return m
}
