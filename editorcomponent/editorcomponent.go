// Package editorcomponent builds the custom components that can be inserted
// into rich-text editor content (shortcodes, embeds, and similar blocks).
package editorcomponent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reglet-dev/reglet-cms/collection"
)

// Component defaults.
const (
	DefaultLabel  = "unnamed component"
	DefaultIcon   = "exclamation-triangle"
	DefaultType   = "shortcode"
	DefaultWidget = "object"
)

// matchesNothing is the pattern used when a component declares none.
var matchesNothing = regexp.MustCompile(`.^`)

// FromBlockFunc extracts component data from the submatches of Pattern.
type FromBlockFunc func(match []string) map[string]any

// ToBlockFunc serializes component data back into editor content.
type ToBlockFunc func(data map[string]any) string

// Config declares an editor component.
type Config struct {
	ID      string
	Label   string
	Icon    string
	Type    string
	Widget  string
	Pattern string
	Fields  []collection.Field

	FromBlock FromBlockFunc
	ToBlock   ToBlockFunc
	ToPreview ToBlockFunc

	// Extra carries host-specific settings that are kept on the component
	// untouched.
	Extra map[string]any
}

// Component is a validated editor component.
type Component struct {
	id        string
	label     string
	icon      string
	kind      string
	widget    string
	pattern   *regexp.Regexp
	fields    []collection.Field
	fromBlock FromBlockFunc
	toBlock   ToBlockFunc
	toPreview ToBlockFunc
	extra     map[string]any
}

// New creates a component from cfg, applying defaults for unset values.
func New(cfg Config) (*Component, error) {
	id := strings.TrimSpace(cfg.ID)
	if id == "" {
		return nil, fmt.Errorf("editor component id cannot be empty")
	}

	pattern := matchesNothing
	if cfg.Pattern != "" {
		p, err := regexp.Compile(cfg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("editor component %q: invalid pattern: %w", id, err)
		}
		pattern = p
	}

	c := &Component{
		id:        id,
		label:     valueOr(cfg.Label, DefaultLabel),
		icon:      valueOr(cfg.Icon, DefaultIcon),
		kind:      valueOr(cfg.Type, DefaultType),
		widget:    valueOr(cfg.Widget, DefaultWidget),
		pattern:   pattern,
		fields:    cfg.Fields,
		fromBlock: cfg.FromBlock,
		toBlock:   cfg.ToBlock,
		toPreview: cfg.ToPreview,
		extra:     cfg.Extra,
	}
	if c.fromBlock == nil {
		c.fromBlock = func([]string) map[string]any { return map[string]any{} }
	}
	if c.toBlock == nil {
		c.toBlock = func(map[string]any) string { return "Plugin" }
	}
	if c.toPreview == nil {
		c.toPreview = c.toBlock
	}
	return c, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// ID returns the component's stable identifier.
func (c *Component) ID() string { return c.id }

// Label returns the human readable label.
func (c *Component) Label() string { return c.label }

// Icon returns the toolbar icon name.
func (c *Component) Icon() string { return c.icon }

// Type returns the component type, "shortcode" unless configured.
func (c *Component) Type() string { return c.kind }

// Widget returns the widget used to edit the component's data.
func (c *Component) Widget() string { return c.widget }

// Fields returns the component's field schema.
func (c *Component) Fields() []collection.Field { return c.fields }

// Extra returns a host-specific setting.
func (c *Component) Extra(key string) (any, bool) {
	v, ok := c.extra[key]
	return v, ok
}

// Pattern returns the expression used to recognize the component in content.
func (c *Component) Pattern() *regexp.Regexp { return c.pattern }

// Match finds the first occurrence of the component in text and decodes its data.
func (c *Component) Match(text string) (map[string]any, bool) {
	m := c.pattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return c.fromBlock(m), true
}

// Block serializes data into editor content.
func (c *Component) Block(data map[string]any) string {
	return c.toBlock(data)
}

// Preview renders data for the preview pane.
func (c *Component) Preview(data map[string]any) string {
	return c.toPreview(data)
}
