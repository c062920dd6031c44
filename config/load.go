package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/reglet-dev/reglet-cms/parser"
	"github.com/reglet-dev/reglet-cms/validation"
)

// ValidationError lists the schema violations of a configuration document.
type ValidationError struct {
	Format   parser.Format
	Problems []validation.Problem
	// Snippet is the source excerpt around the first problem, when the
	// document is YAML and the location could be resolved.
	Snippet string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		loc := p.Location
		if loc == "" {
			loc = "/"
		}
		msgs = append(msgs, loc+": "+p.Message)
	}
	return fmt.Sprintf("invalid %s config: %s", e.Format, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

type loadOptions struct {
	strict bool
}

// Option configures loading.
type Option func(*loadOptions)

// WithStrictSchema rejects keys the configuration types do not declare.
func WithStrictSchema(strict bool) Option {
	return func(o *loadOptions) {
		o.strict = strict
	}
}

// LoadFile reads the configuration at path, picking the format from its
// extension.
func LoadFile(path string, opts ...Option) (*Config, error) {
	format, err := parser.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, format, opts...)
}

// Parse decodes, validates and defaults a configuration document.
func Parse(data []byte, format parser.Format, opts ...Option) (*Config, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := parser.ForFormat(format)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{}
	if err := p.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", format, err)
	}
	if err := validateSchema(doc, data, format, o.strict); err != nil {
		return nil, err
	}

	var cfg Config
	if err := p.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s config: %w", format, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Schema returns the JSON schema configuration documents are checked against.
func Schema(strict bool) (string, error) {
	v, err := schemaValidator(strict)
	if err != nil {
		return "", err
	}
	return v.Schema(), nil
}

func schemaValidator(strict bool) (*validation.SchemaValidator, error) {
	return validation.FromType(&Config{}, validation.WithStrict(strict), validation.WithSchemaURL("config.json"))
}

func validateSchema(doc map[string]any, source []byte, format parser.Format, strict bool) error {
	v, err := schemaValidator(strict)
	if err != nil {
		return err
	}
	normalized, err := validation.Normalize(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	res, err := v.Validate(normalized)
	if err != nil {
		return err
	}
	if res.Valid {
		return nil
	}

	verr := &ValidationError{Format: format, Problems: res.Problems}
	if format == parser.FormatYAML {
		verr.Snippet = annotate(source, res.Problems[0].Location)
	}
	return verr
}

var plainKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// annotate renders the YAML source around the value at a JSON pointer.
func annotate(source []byte, pointer string) string {
	yamlPath, ok := yamlPathFromPointer(pointer)
	if !ok {
		return ""
	}
	p, err := goyaml.PathString(yamlPath)
	if err != nil {
		return ""
	}
	out, err := p.AnnotateSource(source, false)
	if err != nil {
		return ""
	}
	return string(out)
}

// yamlPathFromPointer converts "/collections/0/name" to "$.collections[0].name".
func yamlPathFromPointer(pointer string) (string, bool) {
	if pointer == "" {
		return "", false
	}
	var b strings.Builder
	b.WriteString("$")
	for _, tok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		tok = strings.NewReplacer("~1", "/", "~0", "~").Replace(tok)
		if _, err := strconv.Atoi(tok); err == nil {
			b.WriteString("[" + tok + "]")
			continue
		}
		if !plainKey.MatchString(tok) {
			return "", false
		}
		b.WriteString("." + tok)
	}
	return b.String(), true
}
