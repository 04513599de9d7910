// Package arazzo models Arazzo workflow descriptions: documents
// describing ordered sequences of API calls against one or more source
// descriptions. It maps parsed YAML or JSON document trees into a
// strongly typed model and back, enforcing Arazzo's structural
// rules along the way. It describes workflows only; nothing
// here executes them.
package arazzo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jeffail/gabs/v2"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Decoder turns document trees into typed descriptions.
type Decoder struct {
	// Logger receives debug-level progress records when set.
	Logger *slog.Logger
	// SkipResolve leaves reusable-object references unchecked, for
	// working with partial documents.
	SkipResolve bool
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode builds a Description from a document tree: either the plain
// Go values a JSON parser produces (map[string]any, []any, scalars) or
// a *yaml.Node. The first structural violation aborts the build; see
// DecodeError for the failure taxonomy.
func (dec *Decoder) Decode(tree any) (*Description, error) {
	d, err := buildDescription(wrap(tree))
	if err != nil {
		return nil, err
	}
	if !dec.SkipResolve {
		if err := resolveReferences(d); err != nil {
			return nil, err
		}
	}
	if dec.Logger != nil {
		dec.Logger.Debug("decoded workflow description",
			"arazzo", d.Arazzo,
			"sourceDescriptions", len(d.SourceDescriptions),
			"workflows", len(d.Workflows))
	}
	return d, nil
}

// Decode builds a Description from a document tree with default
// options.
func Decode(tree any) (*Description, error) {
	return NewDecoder().Decode(tree)
}

// DecodeYAML parses data as YAML and decodes the resulting tree.
func DecodeYAML(data []byte) (*Description, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing yaml document: %w", err)
	}
	return Decode(&root)
}

// DecodeJSON parses data as JSON and decodes the resulting tree.
// Numbers are kept as json.Number so integer fields survive undamaged.
func DecodeJSON(data []byte) (*Description, error) {
	jsonDec := json.NewDecoder(bytes.NewReader(data))
	jsonDec.UseNumber()
	container, err := gabs.ParseJSONDecoder(jsonDec)
	if err != nil {
		return nil, fmt.Errorf("parsing json document: %w", err)
	}
	return Decode(container.Data())
}

// Encoder serializes descriptions. Indent controls EncodeJSON output;
// zero or negative emits compact JSON.
type Encoder struct {
	Indent int `default:"2"`
}

func NewEncoder() *Encoder {
	e := &Encoder{}
	defaults.MustSet(e)
	return e
}

// EncodeJSON renders the description as JSON.
func (e *Encoder) EncodeJSON(d *Description) ([]byte, error) {
	c := gabs.Wrap(Encode(d))
	if e.Indent <= 0 {
		return c.Bytes(), nil
	}
	return []byte(c.StringIndent("", strings.Repeat(" ", e.Indent))), nil
}

// EncodeJSON renders the description as JSON with default options.
func EncodeJSON(d *Description) ([]byte, error) {
	return NewEncoder().EncodeJSON(d)
}

// EncodeYAML renders the description as YAML.
func EncodeYAML(d *Description) ([]byte, error) {
	out, err := yaml.Marshal(Encode(d))
	if err != nil {
		return nil, fmt.Errorf("writing yaml document: %w", err)
	}
	return out, nil
}

// Description round-trips through the standard marshaling interfaces
// of both formats, so plain json.Unmarshal/yaml.Unmarshal against a
// *Description run the full build, resolution pass included.

func (d *Description) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func (d Description) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(&d))
}

func (d *Description) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Decode(value)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func (d Description) MarshalYAML() (any, error) {
	return Encode(&d), nil
}
