package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const defaultSchemaURL = "schema.json"

// SchemaValidator validates documents against a compiled JSON schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
	source string
}

type options struct {
	strict bool
	url    string
}

// Option configures schema generation.
type Option func(*options)

// WithStrict rejects properties the Go type does not declare.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithSchemaURL sets the URL the schema is compiled under, as it appears in
// error locations.
func WithSchemaURL(url string) Option {
	return func(o *options) {
		o.url = url
	}
}

// FromType reflects a schema from model, a struct or pointer to struct, and
// compiles it.
func FromType(model any, opts ...Option) (*SchemaValidator, error) {
	o := options{url: defaultSchemaURL}
	for _, opt := range opts {
		opt(&o)
	}

	r := &invopop.Reflector{
		ExpandedStruct:            true,
		Anonymous:                 true,
		AllowAdditionalProperties: !o.strict,
	}
	b, err := json.MarshalIndent(r.Reflect(model), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generated schema: %w", err)
	}
	return FromString(string(b), WithSchemaURL(o.url))
}

// FromString compiles a JSON schema document.
func FromString(schema string, opts ...Option) (*SchemaValidator, error) {
	o := options{url: defaultSchemaURL}
	for _, opt := range opts {
		opt(&o)
	}

	compiled, err := jsonschema.CompileString(o.url, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &SchemaValidator{schema: compiled, source: schema}, nil
}

// Schema returns the schema document.
func (v *SchemaValidator) Schema() string {
	return v.source
}

// Validate implements Validator. doc must hold JSON-compatible values; use
// Normalize on documents decoded from YAML or TOML.
func (v *SchemaValidator) Validate(doc any) (*Result, error) {
	err := v.schema.Validate(doc)
	if err == nil {
		return &Result{Valid: true}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	res := &Result{}
	collectLeaves(ve, &res.Problems)
	return res, nil
}

func collectLeaves(ve *jsonschema.ValidationError, out *[]Problem) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Problem{Location: ve.InstanceLocation, Message: ve.Message})
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}

// Normalize converts a decoded document into the value set a JSON decoder
// would produce, with numbers kept as json.Number.
func Normalize(doc any) (any, error) {
	b, err := json.Marshal(stringKeys(doc))
	if err != nil {
		return nil, fmt.Errorf("document is not JSON compatible: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// stringKeys rewrites map[any]any, which YAML produces for non-string keys,
// into map[string]any.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = stringKeys(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = stringKeys(val)
		}
		return s
	default:
		return v
	}
}
