package registry

import (
	"github.com/reglet-dev/reglet-cms/editorcomponent"
	"github.com/reglet-dev/reglet-cms/entrycard"
)

// Reader is the lookup side of the registry, for consumers that only resolve
// extensions.
type Reader interface {
	// PreviewStyles returns the styles in registration order.
	PreviewStyles() []PreviewStyle
	PreviewTemplate(name string) (Component, bool)

	Widget(name string) (Widget, bool)
	// ResolveWidget falls back to the default and unknown widgets.
	ResolveWidget(name string) (Widget, bool)

	EditorComponents() []*editorcomponent.Component
	WidgetValueSerializer(widget string) (Serializer, bool)
	Backend(name string) (*BackendFactory, bool)
	MediaLibrary(name string) (MediaLibrary, bool)
	EntryCard(collection string) (entrycard.Renderer, bool)
}

var _ Reader = (*Registry)(nil)
