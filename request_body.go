package arazzo

// PayloadKind discriminates the request body payload variants.
type PayloadKind string

const (
	PayloadScalar     PayloadKind = "scalar"
	PayloadStructured PayloadKind = "structured"
	PayloadExpression PayloadKind = "expression"
)

// Payload is the body value of a request: a literal scalar, a
// structured tree fragment, or a runtime expression. Exactly one
// variant is populated, discriminated by Kind.
type Payload struct {
	Kind       PayloadKind `validate:"required,oneof=scalar structured expression"`
	Scalar     any
	Structured any
	Expression string
}

// ScalarPayload wraps a literal scalar body value.
func ScalarPayload(v any) *Payload {
	return &Payload{Kind: PayloadScalar, Scalar: v}
}

// StructuredPayload wraps a mapping or sequence fragment.
func StructuredPayload(v any) *Payload {
	return &Payload{Kind: PayloadStructured, Structured: v}
}

// ExpressionPayload wraps a runtime expression evaluated when the
// workflow runs.
func ExpressionPayload(expr string) *Payload {
	return &Payload{Kind: PayloadExpression, Expression: expr}
}

// buildPayload applies the payload union policy: a string is the
// expression variant only when it carries the runtime-expression
// prefix; mappings and sequences are structured; every other scalar,
// null included, is a literal.
func buildPayload(n node, path string) (*Payload, error) {
	switch n.Kind() {
	case kindString:
		if IsExpression(n.Str()) {
			return ExpressionPayload(n.Str()), nil
		}
		return ScalarPayload(n.Str()), nil
	case kindMapping, kindSequence:
		return StructuredPayload(n.Interface()), nil
	case kindNull, kindBool, kindInt, kindFloat:
		return ScalarPayload(n.Interface()), nil
	default:
		return nil, errUnion(path, "scalar", "structured fragment", "runtime expression")
	}
}

func (p *Payload) tree() any {
	switch p.Kind {
	case PayloadExpression:
		return p.Expression
	case PayloadStructured:
		return p.Structured
	default:
		return p.Scalar
	}
}

// PayloadReplacement substitutes one location inside the payload,
// addressed by a JSON-pointer-like target, before the request is sent.
type PayloadReplacement struct {
	Target     string `validate:"required"`
	Value      Value
	Extensions Extensions
}

func buildPayloadReplacement(n node, path string) (PayloadReplacement, error) {
	var r PayloadReplacement
	if err := requireMapping(n, path); err != nil {
		return r, err
	}

	target, err := requiredString(n, path, "target")
	if err != nil {
		return r, err
	}
	r.Target = target

	vn, ok := n.Get("value")
	if !ok {
		return r, errMissing(path, "value")
	}
	r.Value = buildValue(vn)

	r.Extensions = collectExtensions(n, "target", "value")
	return r, nil
}

func (r PayloadReplacement) tree() map[string]any {
	m := map[string]any{
		"target": r.Target,
		"value":  r.Value.tree(),
	}
	mergeExtensions(m, r.Extensions)
	return m
}

// RequestBody describes the payload sent with a step's call. A body
// demands a content type: when payload is present, contentType must be
// a non-empty string.
type RequestBody struct {
	ContentType  string
	Payload      *Payload
	Replacements []PayloadReplacement `validate:"omitempty,dive"`
	Extensions   Extensions
}

func buildRequestBody(n node, path string) (*RequestBody, error) {
	if err := requireMapping(n, path); err != nil {
		return nil, err
	}
	rb := &RequestBody{}

	ct, err := optionalString(n, path, "contentType")
	if err != nil {
		return nil, err
	}
	rb.ContentType = ct

	if pn, ok := n.Get("payload"); ok {
		rb.Payload, err = buildPayload(pn, pathField(path, "payload"))
		if err != nil {
			return nil, err
		}
		if _, hasCT := n.Get("contentType"); !hasCT {
			return nil, errMissing(path, "contentType")
		}
		if ct == "" {
			return nil, errType(path, "contentType", "non-empty string", "empty string")
		}
	}

	if seq, ok, err := optionalSequence(n, path, "replacements"); err != nil {
		return nil, err
	} else if ok {
		repls := make([]PayloadReplacement, 0, seq.Len())
		rPath := pathField(path, "replacements")
		for i := 0; i < seq.Len(); i++ {
			repl, err := buildPayloadReplacement(seq.Index(i), pathIndex(rPath, i))
			if err != nil {
				return nil, err
			}
			repls = append(repls, repl)
		}
		rb.Replacements = repls
	}

	rb.Extensions = collectExtensions(n, "contentType", "payload", "replacements")
	return rb, nil
}

func (rb *RequestBody) tree() map[string]any {
	m := map[string]any{}
	if rb.ContentType != "" {
		m["contentType"] = rb.ContentType
	}
	if rb.Payload != nil {
		m["payload"] = rb.Payload.tree()
	}
	if len(rb.Replacements) > 0 {
		repls := make([]any, 0, len(rb.Replacements))
		for _, r := range rb.Replacements {
			repls = append(repls, r.tree())
		}
		m["replacements"] = repls
	}
	mergeExtensions(m, rb.Extensions)
	return m
}
