package registry

import "slices"

// PreviewStyleOptions configures a preview style.
type PreviewStyleOptions struct {
	// Raw marks Value as a CSS string rather than a stylesheet URL.
	Raw bool
}

// PreviewStyle is a stylesheet applied to the preview pane.
type PreviewStyle struct {
	Value string
	Raw   bool
}

// RegisterPreviewStyle appends a style. Styles are applied in registration
// order and are never deduplicated.
func (r *Registry) RegisterPreviewStyle(style string, opts PreviewStyleOptions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.previewStyles = append(r.previewStyles, PreviewStyle{Value: style, Raw: opts.Raw})
}

// PreviewStyles returns the registered styles in registration order.
func (r *Registry) PreviewStyles() []PreviewStyle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.previewStyles)
}

// RegisterPreviewTemplate sets the preview template for name, replacing any
// previous one.
func (r *Registry) RegisterPreviewTemplate(name string, template Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[name] = template
}

// PreviewTemplate returns the preview template registered for name.
func (r *Registry) PreviewTemplate(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}
