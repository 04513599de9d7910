package arazzo

// Section names inside $components references.
const (
	sectionParameters     = "parameters"
	sectionSuccessActions = "successActions"
	sectionFailureActions = "failureActions"
)

// resolveReferences checks every reusable-object reference in the
// document against its components section: the reference must have the
// $components.<section>.<name> form, point at the section matching the
// list it sits in, and name a declared entry. This is a separate pass
// after construction, so components may appear anywhere in the
// document relative to their users. References are recorded, never
// dereferenced.
func resolveReferences(d *Description) error {
	r := resolver{components: d.Components}
	workflowsPath := pathField(rootPath, "workflows")
	for i := range d.Workflows {
		w := &d.Workflows[i]
		wPath := pathIndex(workflowsPath, i)

		if err := checkReferences(w.Parameters, pathField(wPath, "parameters"),
			sectionParameters, "parameter", r.hasParameter); err != nil {
			return err
		}
		if err := checkReferences(w.SuccessActions, pathField(wPath, "successActions"),
			sectionSuccessActions, "success action", r.hasSuccessAction); err != nil {
			return err
		}
		if err := checkReferences(w.FailureActions, pathField(wPath, "failureActions"),
			sectionFailureActions, "failure action", r.hasFailureAction); err != nil {
			return err
		}

		stepsPath := pathField(wPath, "steps")
		for j := range w.Steps {
			s := &w.Steps[j]
			sPath := pathIndex(stepsPath, j)

			if err := checkReferences(s.Parameters, pathField(sPath, "parameters"),
				sectionParameters, "parameter", r.hasParameter); err != nil {
				return err
			}
			if err := checkReferences(s.OnSuccess, pathField(sPath, "onSuccess"),
				sectionSuccessActions, "success action", r.hasSuccessAction); err != nil {
				return err
			}
			if err := checkReferences(s.OnFailure, pathField(sPath, "onFailure"),
				sectionFailureActions, "failure action", r.hasFailureAction); err != nil {
				return err
			}
		}
	}
	return nil
}

type resolver struct {
	components *Components
}

func (r resolver) hasParameter(name string) bool {
	if r.components == nil {
		return false
	}
	_, ok := r.components.Parameters[name]
	return ok
}

func (r resolver) hasSuccessAction(name string) bool {
	if r.components == nil {
		return false
	}
	_, ok := r.components.SuccessActions[name]
	return ok
}

func (r resolver) hasFailureAction(name string) bool {
	if r.components == nil {
		return false
	}
	_, ok := r.components.FailureActions[name]
	return ok
}

func checkReferences[T any](list []Reusable[T], path, section, kindName string, exists func(string) bool) error {
	for i, item := range list {
		if !item.IsReference() {
			continue
		}
		itemPath := pathIndex(path, i)
		s, name, ok := parseComponentsReference(item.Reference)
		if !ok || s != section || !exists(name) {
			return errDangling(itemPath, item.Reference, kindName)
		}
	}
	return nil
}
