// Package collection models the content collections a site declares and the
// entries that belong to them.
package collection

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultWidget is the widget assumed for a field that does not name one.
const DefaultWidget = "string"

// DefaultExtension is the file extension assumed for folder collections.
const DefaultExtension = "md"

// ErrCollectionNotFound is returned when a collection name matches nothing.
var ErrCollectionNotFound = errors.New("collection not found")

// NotFoundError reports which collection name could not be resolved.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection not found: %q", e.Name)
}

// Is implements error matching for errors.Is() checks.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrCollectionNotFound
}

// Field describes one field of a collection schema.
type Field struct {
	Name     string  `json:"name" yaml:"name" toml:"name" jsonschema:"minLength=1"`
	Label    string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Widget   string  `json:"widget,omitempty" yaml:"widget,omitempty" toml:"widget,omitempty"`
	Required *bool   `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Hint     string  `json:"hint,omitempty" yaml:"hint,omitempty" toml:"hint,omitempty"`
	Default  any     `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Fields   []Field `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// WidgetName returns the field's widget, defaulting to DefaultWidget.
func (f Field) WidgetName() string {
	if f.Widget == "" {
		return DefaultWidget
	}
	return f.Widget
}

// IsRequired reports whether a value must be provided; fields are required
// unless they opt out.
func (f Field) IsRequired() bool {
	return f.Required == nil || *f.Required
}

// File is a single file entry of a file collection.
type File struct {
	Name   string  `json:"name" yaml:"name" toml:"name" jsonschema:"minLength=1"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	File   string  `json:"file" yaml:"file" toml:"file" jsonschema:"minLength=1"`
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// Collection is a named group of entries sharing a schema.
// A collection is either folder based (Folder set) or file based (Files set).
type Collection struct {
	Name            string  `json:"name" yaml:"name" toml:"name" jsonschema:"minLength=1"`
	Label           string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	LabelSingular   string  `json:"label_singular,omitempty" yaml:"label_singular,omitempty" toml:"label_singular,omitempty"`
	Folder          string  `json:"folder,omitempty" yaml:"folder,omitempty" toml:"folder,omitempty"`
	Extension       string  `json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty"`
	Nested          bool    `json:"nested,omitempty" yaml:"nested,omitempty" toml:"nested,omitempty"`
	IdentifierField string  `json:"identifier_field,omitempty" yaml:"identifier_field,omitempty" toml:"identifier_field,omitempty"`
	Files           []File  `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
	Fields          []Field `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// IsFolder reports whether entries live as individual files under Folder.
func (c *Collection) IsFolder() bool {
	return c.Folder != ""
}

// DisplayLabel returns the label, falling back to the name.
func (c *Collection) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// Validate checks the structural rules of a single collection.
func (c *Collection) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if c.Folder != "" && len(c.Files) > 0 {
		return fmt.Errorf("collection %q: folder and files are mutually exclusive", c.Name)
	}
	if c.Folder == "" && len(c.Files) == 0 {
		return fmt.Errorf("collection %q: one of folder or files is required", c.Name)
	}
	if err := validateFieldNames(c.Fields); err != nil {
		return fmt.Errorf("collection %q: %w", c.Name, err)
	}
	seen := make(map[string]struct{}, len(c.Files))
	for _, f := range c.Files {
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("collection %q: duplicate file name %q", c.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if err := validateFieldNames(f.Fields); err != nil {
			return fmt.Errorf("collection %q file %q: %w", c.Name, f.Name, err)
		}
	}
	return nil
}

func validateFieldNames(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("field name cannot be empty")
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// ApplyDefaults fills unset optional values.
func (c *Collection) ApplyDefaults() {
	if c.IsFolder() && c.Extension == "" {
		c.Extension = DefaultExtension
	}
}

// Owns reports whether an entry stored at p belongs to the collection.
func (c *Collection) Owns(p string) bool {
	p = path.Clean(strings.TrimPrefix(p, "/"))
	if !c.IsFolder() {
		for _, f := range c.Files {
			if path.Clean(strings.TrimPrefix(f.File, "/")) == p {
				return true
			}
		}
		return false
	}
	ok, err := doublestar.Match(c.pathPattern(), p)
	return err == nil && ok
}

func (c *Collection) pathPattern() string {
	folder := strings.Trim(path.Clean(c.Folder), "/")
	ext := c.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	base := "*." + escapeMeta(strings.TrimPrefix(ext, "."))
	if c.Nested {
		return escapeMeta(folder) + "/**/" + base
	}
	return escapeMeta(folder) + "/" + base
}

// escapeMeta quotes glob metacharacters so folder names match literally.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Entry is a single piece of content belonging to a collection.
type Entry struct {
	Collection string         `json:"collection"`
	Slug       string         `json:"slug"`
	Path       string         `json:"path,omitempty"`
	Label      string         `json:"label,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// Value returns the data value stored under a field name.
func (e Entry) Value(field string) (any, bool) {
	v, ok := e.Data[field]
	return v, ok
}

// StringValue returns the data value under field when it is a string.
func (e Entry) StringValue(field string) string {
	s, _ := e.Data[field].(string)
	return s
}
