package collection

import (
	"slices"
	"strings"
)

// Kind names a semantically special field that can be inferred from a schema.
type Kind string

// Inferable field kinds.
const (
	KindTitle       Kind = "title"
	KindShortTitle  Kind = "shortTitle"
	KindAuthor      Kind = "author"
	KindDescription Kind = "description"
	KindImage       Kind = "image"
)

// identifierFields are tried, after any configured identifier_field, when
// selecting the field that identifies an entry.
var identifierFields = []string{"title", "path"}

type inferenceRule struct {
	widget          string
	secondary       []string
	synonyms        []string
	fallbackToFirst bool
}

var inferenceRules = map[Kind]inferenceRule{
	KindTitle: {
		widget:          "string",
		synonyms:        []string{"title", "name", "label", "headline", "header"},
		fallbackToFirst: true,
	},
	KindShortTitle: {
		widget:   "string",
		synonyms: []string{"short_title", "shortTitle", "short"},
	},
	KindAuthor: {
		widget:   "string",
		synonyms: []string{"author", "name", "by", "byline", "owner"},
	},
	KindDescription: {
		widget:    "string",
		secondary: []string{"text", "markdown"},
		synonyms: []string{
			"shortDescription", "short_description", "shortdescription",
			"description", "intro", "introduction", "brief", "content",
			"biography", "bio", "summary",
		},
	},
	KindImage: {
		widget:          "image",
		synonyms:        []string{"image", "thumbnail", "thumb", "picture", "avatar", "photo", "cover", "hero", "logo"},
		fallbackToFirst: true,
	},
}

// Fields returns the ordered field schema of a folder collection.
// File collections have no single schema and return nil.
func Fields(c *Collection) []Field {
	if c == nil || !c.IsFolder() {
		return nil
	}
	return c.Fields
}

// FileFields returns the schema of one file in a file collection.
func FileFields(c *Collection, file string) []Field {
	if c == nil {
		return nil
	}
	for _, f := range c.Files {
		if f.Name == file {
			return f.Fields
		}
	}
	return nil
}

// InferredField picks the field playing the given role, or nil when none can
// be inferred. Candidates are tried in order: a field of the main widget type
// named by a synonym, a field of a secondary type named by a synonym, then,
// for kinds that allow it, the first field of the main type.
func InferredField(c *Collection, kind Kind) *Field {
	if kind == KindTitle && c != nil && c.IdentifierField != "" {
		return Identifier(c)
	}
	rule, ok := inferenceRules[kind]
	fields := Fields(c)
	if !ok || len(fields) == 0 {
		return nil
	}

	var main, secondary []Field
	for _, f := range fields {
		switch w := f.WidgetName(); {
		case w == rule.widget:
			main = append(main, f)
		case slices.Contains(rule.secondary, w):
			secondary = append(secondary, f)
		}
	}

	if f := firstSynonym(main, rule.synonyms); f != nil {
		return f
	}
	if f := firstSynonym(secondary, rule.synonyms); f != nil {
		return f
	}
	if rule.fallbackToFirst && len(main) > 0 {
		f := main[0]
		return &f
	}
	return nil
}

func firstSynonym(fields []Field, synonyms []string) *Field {
	for _, f := range fields {
		if slices.Contains(synonyms, f.Name) {
			return &f
		}
	}
	return nil
}

// Identifier returns the field that identifies entries of the collection:
// the configured identifier_field, then "title", then "path", matched
// case-insensitively against field names.
func Identifier(c *Collection) *Field {
	if c == nil {
		return nil
	}
	candidates := identifierFields
	if c.IdentifierField != "" {
		candidates = append([]string{c.IdentifierField}, identifierFields...)
	}
	for _, id := range candidates {
		want := normalizeName(id)
		for _, f := range c.Fields {
			if normalizeName(f.Name) == want {
				return &f
			}
		}
	}
	return nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
