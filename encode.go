package arazzo

// Encode converts a typed description back into a plain value tree for
// any JSON or YAML writer: only populated fields appear (absent
// optionals produce no entry, never nulls), unions emit the populated
// variant's shape, extensions are re-emitted verbatim. Decoding the
// result reproduces a structurally equal Description.
func Encode(d *Description) map[string]any {
	m := map[string]any{
		"arazzo": d.Arazzo,
		"info":   d.Info.tree(),
	}

	sources := make([]any, 0, len(d.SourceDescriptions))
	for _, sd := range d.SourceDescriptions {
		sources = append(sources, sd.tree())
	}
	m["sourceDescriptions"] = sources

	workflows := make([]any, 0, len(d.Workflows))
	for _, w := range d.Workflows {
		workflows = append(workflows, w.tree())
	}
	m["workflows"] = workflows

	if d.Components != nil {
		m["components"] = d.Components.tree()
	}
	mergeExtensions(m, d.Extensions)
	return m
}

// Emitted trees hold only map[string]any, []any and plain scalars so
// the output feeds both writers and decodes back through anyNode.

func mergeExtensions(m map[string]any, ext Extensions) {
	for k, v := range ext {
		m[k] = v
	}
}

func stringMapTree(in map[string]string) map[string]any {
	m := make(map[string]any, len(in))
	for k, v := range in {
		m[k] = v
	}
	return m
}

func stringSliceTree(in []string) []any {
	s := make([]any, 0, len(in))
	for _, v := range in {
		s = append(s, v)
	}
	return s
}
