package parser

import "encoding/json"

// JSONParser implements Parser for JSON.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser.
func NewJSONParser() Parser {
	return &JSONParser{}
}

// Decode unmarshals JSON bytes into v.
func (p *JSONParser) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
