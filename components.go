package arazzo

// Components holds the document's named reusable entries. Everything
// here is declaration only: nothing in Components runs or resolves by
// itself, steps and workflows point into it with $components
// expressions.
type Components struct {
	Inputs         map[string]any
	Parameters     map[string]Parameter     `validate:"omitempty,dive"`
	SuccessActions map[string]SuccessAction `validate:"omitempty,dive"`
	FailureActions map[string]FailureAction `validate:"omitempty,dive"`
	Extensions     Extensions
}

func buildComponents(n node, path string) (*Components, error) {
	if err := requireMapping(n, path); err != nil {
		return nil, err
	}
	c := &Components{}

	if mn, ok, err := optionalMapping(n, path, "inputs"); err != nil {
		return nil, err
	} else if ok {
		c.Inputs = make(map[string]any, mn.Len())
		for _, k := range mn.Keys() {
			v, _ := mn.Get(k)
			c.Inputs[k] = v.Interface()
		}
	}

	if mn, ok, err := optionalMapping(n, path, "parameters"); err != nil {
		return nil, err
	} else if ok {
		pPath := pathField(path, "parameters")
		c.Parameters = make(map[string]Parameter, mn.Len())
		for _, k := range mn.Keys() {
			v, _ := mn.Get(k)
			p, err := buildParameter(v, pathField(pPath, k))
			if err != nil {
				return nil, err
			}
			c.Parameters[k] = p
		}
	}

	if mn, ok, err := optionalMapping(n, path, "successActions"); err != nil {
		return nil, err
	} else if ok {
		aPath := pathField(path, "successActions")
		c.SuccessActions = make(map[string]SuccessAction, mn.Len())
		for _, k := range mn.Keys() {
			v, _ := mn.Get(k)
			a, err := buildSuccessAction(v, pathField(aPath, k))
			if err != nil {
				return nil, err
			}
			c.SuccessActions[k] = a
		}
	}

	if mn, ok, err := optionalMapping(n, path, "failureActions"); err != nil {
		return nil, err
	} else if ok {
		aPath := pathField(path, "failureActions")
		c.FailureActions = make(map[string]FailureAction, mn.Len())
		for _, k := range mn.Keys() {
			v, _ := mn.Get(k)
			a, err := buildFailureAction(v, pathField(aPath, k))
			if err != nil {
				return nil, err
			}
			c.FailureActions[k] = a
		}
	}

	c.Extensions = collectExtensions(n, "inputs", "parameters", "successActions", "failureActions")
	return c, nil
}

func (c *Components) tree() map[string]any {
	m := map[string]any{}
	if len(c.Inputs) > 0 {
		inputs := make(map[string]any, len(c.Inputs))
		for k, v := range c.Inputs {
			inputs[k] = v
		}
		m["inputs"] = inputs
	}
	if len(c.Parameters) > 0 {
		params := make(map[string]any, len(c.Parameters))
		for k, p := range c.Parameters {
			params[k] = p.tree()
		}
		m["parameters"] = params
	}
	if len(c.SuccessActions) > 0 {
		actions := make(map[string]any, len(c.SuccessActions))
		for k, a := range c.SuccessActions {
			actions[k] = a.tree()
		}
		m["successActions"] = actions
	}
	if len(c.FailureActions) > 0 {
		actions := make(map[string]any, len(c.FailureActions))
		for k, a := range c.FailureActions {
			actions[k] = a.tree()
		}
		m["failureActions"] = actions
	}
	mergeExtensions(m, c.Extensions)
	return m
}
