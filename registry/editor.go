package registry

import (
	"fmt"
	"slices"

	"github.com/reglet-dev/reglet-cms/editorcomponent"
)

// RegisterEditorComponent builds an editor component from cfg and stores it
// under its id. Components keep the position of their first registration;
// re-registering an id replaces the component in place.
func (r *Registry) RegisterEditorComponent(cfg editorcomponent.Config) error {
	c, err := editorcomponent.New(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEditorComponent, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.editorIndex[c.ID()]; ok {
		r.editorComponents[i] = c
		return nil
	}
	r.editorIndex[c.ID()] = len(r.editorComponents)
	r.editorComponents = append(r.editorComponents, c)
	r.logger.Debug("registered editor component", "id", c.ID())
	return nil
}

// EditorComponents returns the registered components in registration order.
func (r *Registry) EditorComponents() []*editorcomponent.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.editorComponents)
}

// EditorComponent returns the component registered under id.
func (r *Registry) EditorComponent(id string) (*editorcomponent.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.editorIndex[id]
	if !ok {
		return nil, false
	}
	return r.editorComponents[i], true
}

// Serializer converts a widget value between its stored and editable forms.
type Serializer interface {
	Serialize(value any) any
	Deserialize(value any) any
}

// RegisterWidgetValueSerializer sets the serializer for a widget, replacing
// any previous one.
func (r *Registry) RegisterWidgetValueSerializer(widget string, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[widget] = s
}

// WidgetValueSerializer returns the serializer registered for widget.
func (r *Registry) WidgetValueSerializer(widget string) (Serializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.serializers[widget]
	return s, ok
}
