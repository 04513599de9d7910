package arazzo

import "fmt"

// SourceType names the kind of document a source description points at.
type SourceType string

const (
	SourceTypeOpenAPI SourceType = "openapi"
	SourceTypeArazzo  SourceType = "arazzo"
)

// Info carries the document's metadata.
type Info struct {
	Title       string `validate:"required"`
	Summary     string
	Description string
	Version     string `validate:"required"`
	Extensions  Extensions
}

// SourceDescription names an external API description the workflows
// operate against.
type SourceDescription struct {
	Name       string     `validate:"required"`
	URL        string     `validate:"required"`
	Type       SourceType `validate:"omitempty,oneof=openapi arazzo"`
	Extensions Extensions
}

// Description is the document root of an Arazzo workflow description.
type Description struct {
	Arazzo             string              `validate:"required"`
	Info               Info
	SourceDescriptions []SourceDescription `validate:"min=1,unique=Name,dive"`
	Workflows          []Workflow          `validate:"min=1,unique=WorkflowID,dive"`
	Components         *Components
	Extensions         Extensions
}

func buildInfo(n node, path string) (Info, error) {
	var info Info
	if err := requireMapping(n, path); err != nil {
		return info, err
	}

	title, err := requiredString(n, path, "title")
	if err != nil {
		return info, err
	}
	info.Title = title

	version, err := requiredString(n, path, "version")
	if err != nil {
		return info, err
	}
	info.Version = version

	if info.Summary, err = optionalString(n, path, "summary"); err != nil {
		return info, err
	}
	if info.Description, err = optionalString(n, path, "description"); err != nil {
		return info, err
	}

	info.Extensions = collectExtensions(n, "title", "summary", "description", "version")
	return info, nil
}

func buildSourceDescription(n node, path string) (SourceDescription, error) {
	var sd SourceDescription
	if err := requireMapping(n, path); err != nil {
		return sd, err
	}

	name, err := requiredString(n, path, "name")
	if err != nil {
		return sd, err
	}
	sd.Name = name

	url, err := requiredString(n, path, "url")
	if err != nil {
		return sd, err
	}
	sd.URL = url

	typ, err := optionalString(n, path, "type")
	if err != nil {
		return sd, err
	}
	if typ != "" && typ != string(SourceTypeOpenAPI) && typ != string(SourceTypeArazzo) {
		return sd, errType(path, "type", `"openapi" or "arazzo"`, fmt.Sprintf("%q", typ))
	}
	sd.Type = SourceType(typ)

	sd.Extensions = collectExtensions(n, "name", "url", "type")
	return sd, nil
}

// buildDescription is the document-root builder. The version gate runs
// first: nothing else in the tree is inspected for an unsupported
// version.
func buildDescription(n node) (*Description, error) {
	path := rootPath
	if err := requireMapping(n, path); err != nil {
		return nil, err
	}

	version, err := requiredString(n, path, "arazzo")
	if err != nil {
		return nil, err
	}
	if err := checkVersion(version); err != nil {
		return nil, err
	}
	d := &Description{Arazzo: version}

	in, ok := n.Get("info")
	if !ok {
		return nil, errMissing(path, "info")
	}
	if d.Info, err = buildInfo(in, pathField(path, "info")); err != nil {
		return nil, err
	}

	sources, err := requiredSequence(n, path, "sourceDescriptions")
	if err != nil {
		return nil, err
	}
	sourcesPath := pathField(path, "sourceDescriptions")
	d.SourceDescriptions = make([]SourceDescription, 0, sources.Len())
	seenSources := make(map[string]bool, sources.Len())
	for i := 0; i < sources.Len(); i++ {
		sd, err := buildSourceDescription(sources.Index(i), pathIndex(sourcesPath, i))
		if err != nil {
			return nil, err
		}
		if seenSources[sd.Name] {
			return nil, errDuplicate(pathIndex(sourcesPath, i), sd.Name)
		}
		seenSources[sd.Name] = true
		d.SourceDescriptions = append(d.SourceDescriptions, sd)
	}

	workflows, err := requiredSequence(n, path, "workflows")
	if err != nil {
		return nil, err
	}
	workflowsPath := pathField(path, "workflows")
	d.Workflows = make([]Workflow, 0, workflows.Len())
	seenWorkflows := make(map[string]bool, workflows.Len())
	for i := 0; i < workflows.Len(); i++ {
		w, err := buildWorkflow(workflows.Index(i), pathIndex(workflowsPath, i))
		if err != nil {
			return nil, err
		}
		if seenWorkflows[w.WorkflowID] {
			return nil, errDuplicate(pathIndex(workflowsPath, i), w.WorkflowID)
		}
		seenWorkflows[w.WorkflowID] = true
		d.Workflows = append(d.Workflows, w)
	}

	if cn, ok := n.Get("components"); ok {
		if d.Components, err = buildComponents(cn, pathField(path, "components")); err != nil {
			return nil, err
		}
	}

	d.Extensions = collectExtensions(n, "arazzo", "info", "sourceDescriptions",
		"workflows", "components")
	return d, nil
}

func (info Info) tree() map[string]any {
	m := map[string]any{
		"title":   info.Title,
		"version": info.Version,
	}
	if info.Summary != "" {
		m["summary"] = info.Summary
	}
	if info.Description != "" {
		m["description"] = info.Description
	}
	mergeExtensions(m, info.Extensions)
	return m
}

func (sd SourceDescription) tree() map[string]any {
	m := map[string]any{
		"name": sd.Name,
		"url":  sd.URL,
	}
	if sd.Type != "" {
		m["type"] = string(sd.Type)
	}
	mergeExtensions(m, sd.Extensions)
	return m
}
