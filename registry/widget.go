package registry

import "strings"

// Widget names with special meaning to ResolveWidget.
const (
	DefaultWidgetName = "string"
	UnknownWidgetName = "unknown"
)

// Widget is a registered editor widget.
type Widget struct {
	Control      Component
	Preview      Component
	GlobalStyles Component
}

// WidgetSpec declares a widget in full.
type WidgetSpec struct {
	Name         string
	Control      Component
	Preview      Component
	GlobalStyles Component
}

// ControlSource is either a control component or a reference to the control
// of an already registered widget.
type ControlSource struct {
	component Component
	alias     string
}

// Control uses c as the widget control.
func Control(c Component) ControlSource {
	return ControlSource{component: c}
}

// ControlOf reuses the control registered for another widget, so several
// widgets can share a control while having different previews.
func ControlOf(widget string) ControlSource {
	return ControlSource{alias: widget}
}

// RegisterWidgetByName registers a widget from a control and a preview.
// An existing widget of the same name is replaced. A ControlOf reference to
// a widget that is not registered refuses the registration.
func (r *Registry) RegisterWidgetByName(name string, control ControlSource, preview Component) Result {
	res := r.registerWidgetByName(name, control, preview)
	r.report(res)
	return res
}

func (r *Registry) registerWidgetByName(name string, control ControlSource, preview Component) Result {
	var res Result
	if strings.TrimSpace(name) == "" {
		res.fail(CategoryWidget, name, "widget name cannot be empty")
		return res
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := control.component
	if control.alias != "" {
		ref, ok := r.widgets[control.alias]
		if !ok {
			res.fail(CategoryWidget, name, "cannot reuse control of unregistered widget %q", control.alias)
			return res
		}
		c = ref.Control
	}
	if c == nil {
		res.fail(CategoryWidget, name, "widget %q registered without control component", name)
		return res
	}

	r.widgets[name] = Widget{Control: c, Preview: preview}
	res.Registered = append(res.Registered, name)
	r.logger.Debug("registered widget", "name", name, "alias", control.alias)
	return res
}

// RegisterWidgetSpec registers a fully declared widget.
// Re-registering a name replaces the previous widget and adds a warning.
// A spec without a control is rejected with a MissingControlError.
func (r *Registry) RegisterWidgetSpec(spec WidgetSpec) (Result, error) {
	r.mu.Lock()
	res, err := r.registerWidgetSpecLocked(spec)
	r.mu.Unlock()

	r.report(res)
	return res, err
}

// RegisterWidgetBatch registers several widget specs in order. Nil entries
// are skipped with an error diagnostic. The first spec rejected with an error
// stops the batch; specs before it stay registered.
func (r *Registry) RegisterWidgetBatch(specs []*WidgetSpec) (Result, error) {
	var res Result
	var err error

	r.mu.Lock()
	for i, spec := range specs {
		if spec == nil {
			res.fail(CategoryWidget, "", "cannot register widget: nil spec at index %d", i)
			continue
		}
		var one Result
		one, err = r.registerWidgetSpecLocked(*spec)
		res.merge(one)
		if err != nil {
			break
		}
	}
	r.mu.Unlock()

	r.report(res)
	return res, err
}

func (r *Registry) registerWidgetSpecLocked(spec WidgetSpec) (Result, error) {
	var res Result
	if _, exists := r.widgets[spec.Name]; exists {
		res.warn(CategoryWidget, spec.Name,
			"multiple widgets registered with name %q; only the last widget registered with this name will be used", spec.Name)
	}
	if spec.Control == nil {
		return res, &MissingControlError{Widget: spec.Name}
	}

	r.widgets[spec.Name] = Widget{
		Control:      spec.Control,
		Preview:      spec.Preview,
		GlobalStyles: spec.GlobalStyles,
	}
	res.Registered = append(res.Registered, spec.Name)
	r.logger.Debug("registered widget", "name", spec.Name)
	return res, nil
}

// Widget returns the widget registered under name.
func (r *Registry) Widget(name string) (Widget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[name]
	return w, ok
}

// ResolveWidget returns the widget for name, using DefaultWidgetName when
// name is empty and falling back to UnknownWidgetName when nothing matches.
func (r *Registry) ResolveWidget(name string) (Widget, bool) {
	if name == "" {
		name = DefaultWidgetName
	}
	if w, ok := r.Widget(name); ok {
		return w, true
	}
	return r.Widget(UnknownWidgetName)
}
