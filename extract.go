package arazzo

// Typed getters over mapping nodes. Required fields fail with
// MissingField when absent and TypeMismatch when wrong-shaped; optional
// fields report absence without error. Required strings must be
// non-empty.

func requireMapping(n node, path string) error {
	if n.Kind() != kindMapping {
		return errShape(path, kindMapping, n)
	}
	return nil
}

func requiredString(n node, path, key string) (string, error) {
	child, ok := n.Get(key)
	if !ok {
		return "", errMissing(path, key)
	}
	if child.Kind() != kindString {
		return "", errType(path, key, "string", describe(child))
	}
	s := child.Str()
	if s == "" {
		return "", errType(path, key, "non-empty string", "empty string")
	}
	return s, nil
}

func optionalString(n node, path, key string) (string, error) {
	child, ok := n.Get(key)
	if !ok {
		return "", nil
	}
	if child.Kind() != kindString {
		return "", errType(path, key, "string", describe(child))
	}
	return child.Str(), nil
}

func optionalFloat(n node, path, key string) (*float64, error) {
	child, ok := n.Get(key)
	if !ok {
		return nil, nil
	}
	switch child.Kind() {
	case kindInt:
		f := float64(child.Int())
		return &f, nil
	case kindFloat:
		f := child.Float()
		return &f, nil
	}
	return nil, errType(path, key, "number", describe(child))
}

func optionalInt(n node, path, key string) (*int64, error) {
	child, ok := n.Get(key)
	if !ok {
		return nil, nil
	}
	if child.Kind() != kindInt {
		return nil, errType(path, key, "integer", describe(child))
	}
	i := child.Int()
	return &i, nil
}

func requiredSequence(n node, path, key string) (node, error) {
	child, ok := n.Get(key)
	if !ok {
		return nil, errMissing(path, key)
	}
	if child.Kind() != kindSequence {
		return nil, errType(path, key, "sequence", describe(child))
	}
	if child.Len() == 0 {
		return nil, errType(path, key, "non-empty sequence", "empty sequence")
	}
	return child, nil
}

func optionalSequence(n node, path, key string) (node, bool, error) {
	child, ok := n.Get(key)
	if !ok {
		return nil, false, nil
	}
	if child.Kind() != kindSequence {
		return nil, false, errType(path, key, "sequence", describe(child))
	}
	return child, true, nil
}

func optionalMapping(n node, path, key string) (node, bool, error) {
	child, ok := n.Get(key)
	if !ok {
		return nil, false, nil
	}
	if child.Kind() != kindMapping {
		return nil, false, errType(path, key, "mapping", describe(child))
	}
	return child, true, nil
}

// countNonEmpty counts populated fields in an exclusive-choice group.
func countNonEmpty(values ...string) int {
	populated := 0
	for _, v := range values {
		if v != "" {
			populated++
		}
	}
	return populated
}

// stringSlice reads a sequence of plain strings (dependsOn lists).
func stringSlice(seq node, path string) ([]string, error) {
	out := make([]string, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		item := seq.Index(i)
		if item.Kind() != kindString {
			return nil, errShape(pathIndex(path, i), kindString, item)
		}
		out = append(out, item.Str())
	}
	return out, nil
}

// stringMap reads a mapping of name → string (outputs tables, where
// every value is a runtime expression).
func stringMap(n node, path string) (map[string]string, error) {
	if n.Kind() != kindMapping {
		return nil, errShape(path, kindMapping, n)
	}
	out := make(map[string]string, n.Len())
	for _, k := range n.Keys() {
		v, _ := n.Get(k)
		if v.Kind() != kindString {
			return nil, errType(path, k, "string", describe(v))
		}
		out[k] = v.Str()
	}
	return out, nil
}
