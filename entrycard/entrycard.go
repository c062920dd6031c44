// Package entrycard defines how a single entry is turned into a card in an
// entry listing, and provides the default card used when a collection has no
// renderer of its own.
package entrycard

import (
	"github.com/reglet-dev/reglet-cms/collection"
)

// View styles a listing can be displayed with.
const (
	ViewStyleList = "list"
	ViewStyleGrid = "grid"
)

// Card is the rendered output of a Renderer. Its concrete type belongs to the
// host UI.
type Card any

// InferredFields holds the semantically special fields of a collection and
// the remaining fields in declaration order.
type InferredFields struct {
	Title       *collection.Field
	Description *collection.Field
	Image       *collection.Field
	Remaining   []collection.Field
}

// Props is everything a renderer receives for one entry.
type Props struct {
	Collection   *collection.Collection
	Entry        collection.Entry
	Fields       InferredFields
	PublicFolder string
	ViewStyle    string

	// CollectionLabel is set when entries from several collections are
	// listed together.
	CollectionLabel string
}

// Renderer turns card props into a card.
type Renderer interface {
	RenderCard(props Props) (Card, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(props Props) (Card, error)

// RenderCard calls f(props).
func (f RendererFunc) RenderCard(props Props) (Card, error) {
	return f(props)
}
