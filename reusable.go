package arazzo

import "strings"

// Reusable is either an inline object or a reference to a named entry
// in the document's components section. The reference form is
// discriminated by the presence of the reference key and may carry an
// optional override value; the inline form populates Object.
type Reusable[T any] struct {
	Reference string `validate:"omitempty,expression"`
	Value     any
	Object    T      `validate:"-"`
}

// IsReference reports whether the reference form is populated.
func (r Reusable[T]) IsReference() bool {
	return r.Reference != ""
}

// buildReusable applies the reusable-or-inline union policy: a mapping
// carrying the reference discriminator key is a component reference,
// anything else is handed to the inline builder.
func buildReusable[T any](n node, path string, build func(node, string) (T, error)) (Reusable[T], error) {
	var r Reusable[T]
	if err := requireMapping(n, path); err != nil {
		return r, err
	}
	if _, ok := n.Get("reference"); ok {
		ref, err := requiredString(n, path, "reference")
		if err != nil {
			return r, err
		}
		r.Reference = ref
		if vn, ok := n.Get("value"); ok {
			r.Value = vn.Interface()
		}
		return r, nil
	}
	obj, err := build(n, path)
	if err != nil {
		return r, err
	}
	r.Object = obj
	return r, nil
}

func buildReusableList[T any](seq node, path string, build func(node, string) (T, error)) ([]Reusable[T], error) {
	out := make([]Reusable[T], 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		r, err := buildReusable(seq.Index(i), pathIndex(path, i), build)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// reusableTree emits only the populated variant.
func reusableTree[T any](r Reusable[T], emit func(T) map[string]any) map[string]any {
	if r.IsReference() {
		m := map[string]any{"reference": r.Reference}
		if r.Value != nil {
			m["value"] = r.Value
		}
		return m
	}
	return emit(r.Object)
}

func reusableListTree[T any](list []Reusable[T], emit func(T) map[string]any) []any {
	out := make([]any, 0, len(list))
	for _, r := range list {
		out = append(out, reusableTree(r, emit))
	}
	return out
}

// componentsPrefix begins every well-formed reusable-object reference.
const componentsPrefix = "$components."

// parseComponentsReference splits $components.<section>.<name>. The
// name part may itself contain dots.
func parseComponentsReference(ref string) (section, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, componentsPrefix)
	if !found {
		return "", "", false
	}
	section, name, found = strings.Cut(rest, ".")
	if !found || section == "" || name == "" {
		return "", "", false
	}
	return section, name, true
}
