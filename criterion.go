package arazzo

import "fmt"

// CriterionKind names the condition syntaxes a criterion can use.
type CriterionKind string

const (
	CriterionSimple   CriterionKind = "simple"
	CriterionRegex    CriterionKind = "regex"
	CriterionJSONPath CriterionKind = "jsonpath"
	CriterionXPath    CriterionKind = "xpath"
)

var criterionKinds = map[CriterionKind]bool{
	CriterionSimple:   true,
	CriterionRegex:    true,
	CriterionJSONPath: true,
	CriterionXPath:    true,
}

// CriterionType is a criterion's type field. The document form is
// either a plain kind name or an object carrying an explicit syntax
// version; Version and Extensions are populated only from the object
// form.
type CriterionType struct {
	Kind       CriterionKind `validate:"required,oneof=simple regex jsonpath xpath"`
	Version    string
	Extensions Extensions
}

// Criterion is a boolean test applied to a step's result. The
// condition stays an opaque string; context is the runtime expression
// the condition is applied against and is mandatory for the jsonpath
// and xpath syntaxes.
type Criterion struct {
	Context    string
	Condition  string `validate:"required"`
	Type       CriterionType
	Extensions Extensions
}

// resolveCriterionType applies the criterion-type union policy.
func resolveCriterionType(n node, path string) (CriterionType, error) {
	switch n.Kind() {
	case kindString:
		k := CriterionKind(n.Str())
		if !criterionKinds[k] {
			return CriterionType{}, errType(path, "type",
				`one of "simple", "regex", "jsonpath", "xpath"`, fmt.Sprintf("%q", n.Str()))
		}
		return CriterionType{Kind: k}, nil
	case kindMapping:
		t, err := requiredString(n, path, "type")
		if err != nil {
			return CriterionType{}, err
		}
		k := CriterionKind(t)
		if k != CriterionJSONPath && k != CriterionXPath {
			return CriterionType{}, errType(path, "type",
				`"jsonpath" or "xpath"`, fmt.Sprintf("%q", t))
		}
		version, err := requiredString(n, path, "version")
		if err != nil {
			return CriterionType{}, err
		}
		return CriterionType{
			Kind:       k,
			Version:    version,
			Extensions: collectExtensions(n, "type", "version"),
		}, nil
	default:
		return CriterionType{}, errUnion(path, "criterion type name", "criterion expression type object")
	}
}

func buildCriterion(n node, path string) (Criterion, error) {
	var c Criterion
	if err := requireMapping(n, path); err != nil {
		return c, err
	}

	condition, err := requiredString(n, path, "condition")
	if err != nil {
		return c, err
	}
	c.Condition = condition

	context, err := optionalString(n, path, "context")
	if err != nil {
		return c, err
	}
	c.Context = context

	if tn, ok := n.Get("type"); ok {
		c.Type, err = resolveCriterionType(tn, pathField(path, "type"))
		if err != nil {
			return c, err
		}
	} else {
		c.Type = CriterionType{Kind: CriterionSimple}
	}

	if (c.Type.Kind == CriterionJSONPath || c.Type.Kind == CriterionXPath) && c.Context == "" {
		return c, errMissing(path, "context")
	}

	c.Extensions = collectExtensions(n, "context", "condition", "type")
	return c, nil
}

func buildCriteria(seq node, path string) ([]Criterion, error) {
	out := make([]Criterion, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		c, err := buildCriterion(seq.Index(i), pathIndex(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (c Criterion) tree() map[string]any {
	m := map[string]any{"condition": c.Condition}
	if c.Context != "" {
		m["context"] = c.Context
	}
	switch {
	case c.Type.Version != "":
		t := map[string]any{
			"type":    string(c.Type.Kind),
			"version": c.Type.Version,
		}
		mergeExtensions(t, c.Type.Extensions)
		m["type"] = t
	case c.Type.Kind != "" && c.Type.Kind != CriterionSimple:
		m["type"] = string(c.Type.Kind)
	}
	mergeExtensions(m, c.Extensions)
	return m
}

func criteriaTree(list []Criterion) []any {
	out := make([]any, 0, len(list))
	for _, c := range list {
		out = append(out, c.tree())
	}
	return out
}
