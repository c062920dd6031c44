package registry

import (
	"strings"

	"github.com/reglet-dev/reglet-cms/entrycard"
)

// RegisterEntryCard sets the card renderer for a collection, replacing any
// previous one. Both a collection name and a renderer are required.
func (r *Registry) RegisterEntryCard(collection string, renderer entrycard.Renderer) Result {
	res := r.registerEntryCard(collection, renderer)
	r.report(res)
	return res
}

func (r *Registry) registerEntryCard(collection string, renderer entrycard.Renderer) Result {
	var res Result
	if strings.TrimSpace(collection) == "" || renderer == nil {
		res.fail(CategoryEntryCard, collection, "entry card parameters invalid: a collection name and a renderer are required")
		return res
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entryCards[collection] = renderer
	res.Registered = append(res.Registered, collection)
	return res
}

// EntryCard returns the renderer registered for a collection.
func (r *Registry) EntryCard(collection string) (entrycard.Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.entryCards[collection]
	return c, ok
}
