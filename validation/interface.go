// Package validation checks configuration documents against JSON schemas
// reflected from the Go types that hold them.
package validation

// Validator validates a JSON-compatible document.
type Validator interface {
	// Validate reports the schema violations in doc. The error is reserved
	// for documents that cannot be validated at all.
	Validate(doc any) (*Result, error)
}

// Problem is one schema violation.
type Problem struct {
	// Location is a JSON pointer to the offending value; empty for the root.
	Location string
	Message  string
}

// Result is the outcome of a validation.
type Result struct {
	Valid    bool
	Problems []Problem
}
