package parser

import "gopkg.in/yaml.v3"

// YAMLParser implements Parser for YAML.
type YAMLParser struct{}

// NewYAMLParser creates a new YAMLParser.
func NewYAMLParser() Parser {
	return &YAMLParser{}
}

// Decode unmarshals YAML bytes into v.
func (p *YAMLParser) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
