// Package parser decodes configuration documents in the formats the CMS
// accepts.
package parser

// Parser decodes raw configuration bytes into v.
type Parser interface {
	// Decode unmarshals data into v, which must be a pointer to a struct or a map.
	Decode(data []byte, v any) error
}
