package parser

import "github.com/BurntSushi/toml"

// TOMLParser implements Parser for TOML.
type TOMLParser struct{}

// NewTOMLParser creates a new TOMLParser.
func NewTOMLParser() Parser {
	return &TOMLParser{}
}

// Decode unmarshals TOML bytes into v.
func (p *TOMLParser) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}
