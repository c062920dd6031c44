// Package listing is the view model of an entry listing: it decides which
// card renderer each entry goes through and whether more entries can be
// paged in from the backend cursor.
package listing

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/reglet-dev/reglet-cms/collection"
	"github.com/reglet-dev/reglet-cms/cursor"
	"github.com/reglet-dev/reglet-cms/entrycard"
)

// EntryCardLookup resolves the card renderer registered for a collection.
type EntryCardLookup interface {
	EntryCard(collection string) (entrycard.Renderer, bool)
}

// CursorActionHandler receives the cursor actions a listing dispatches.
type CursorActionHandler func(action cursor.Action)

// Source is the set of collections a listing shows: either one collection or
// an aggregate of several.
type Source interface {
	collections() []*collection.Collection
	single() bool
}

type singleSource struct{ c *collection.Collection }

func (s singleSource) collections() []*collection.Collection { return []*collection.Collection{s.c} }
func (s singleSource) single() bool                          { return true }

type multipleSource struct{ cs []*collection.Collection }

func (s multipleSource) collections() []*collection.Collection { return s.cs }
func (s multipleSource) single() bool                          { return false }

// Single lists the entries of one collection.
func Single(c *collection.Collection) Source {
	return singleSource{c: c}
}

// Multiple lists entries drawn from several collections, each entry naming
// its own collection.
func Multiple(cs ...*collection.Collection) Source {
	return multipleSource{cs: slices.DeleteFunc(slices.Clone(cs), func(c *collection.Collection) bool { return c == nil })}
}

// View is the rendered listing.
type View struct {
	Cards []entrycard.Card
	// Waypoint reports whether the host should watch the end of the list and
	// call HandleLoadMore when it enters the viewport.
	Waypoint bool
}

// Listing renders entry cards and pages through a cursor.
type Listing struct {
	source       Source
	entries      []collection.Entry
	cursor       any
	onAction     CursorActionHandler
	cards        EntryCardLookup
	defaultCard  entrycard.Renderer
	publicFolder string
	viewStyle    string
	logger       *slog.Logger
}

// Option configures a Listing.
type Option func(*Listing)

// WithEntries sets the entries to render.
func WithEntries(entries []collection.Entry) Option {
	return func(l *Listing) { l.entries = entries }
}

// WithCursor sets the backend cursor. Any value accepted by cursor.Create works.
func WithCursor(c any) Option {
	return func(l *Listing) { l.cursor = c }
}

// WithCursorActionHandler sets the callback that performs cursor actions.
func WithCursorActionHandler(h CursorActionHandler) Option {
	return func(l *Listing) { l.onAction = h }
}

// WithEntryCards sets where collection-specific card renderers are looked up.
func WithEntryCards(cards EntryCardLookup) Option {
	return func(l *Listing) { l.cards = cards }
}

// WithDefaultCard sets the renderer used when a collection has none registered.
func WithDefaultCard(r entrycard.Renderer) Option {
	return func(l *Listing) { l.defaultCard = r }
}

// WithPublicFolder sets the folder media paths are resolved against.
func WithPublicFolder(folder string) Option {
	return func(l *Listing) { l.publicFolder = folder }
}

// WithViewStyle sets the view style passed to renderers.
func WithViewStyle(style string) Option {
	return func(l *Listing) { l.viewStyle = style }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Listing) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a listing over source.
func New(source Source, opts ...Option) *Listing {
	l := &Listing{
		source:      source,
		defaultCard: entrycard.Default,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// HasMore reports whether the cursor offers another page to append.
func (l *Listing) HasMore() bool {
	return cursor.Create(l.cursor).Actions().Has(cursor.ActionAppendNext)
}

// HandleLoadMore dispatches the append_next action when HasMore reports true.
func (l *Listing) HandleLoadMore() {
	if !l.HasMore() || l.onAction == nil {
		return
	}
	l.onAction(cursor.ActionAppendNext)
}

// InferFields finds the title, description and image fields of c and lists
// the other fields in declaration order. Fields are excluded by name, so a
// field declared twice under an inferred name is excluded every time.
func (l *Listing) InferFields(c *collection.Collection) entrycard.InferredFields {
	inferred := entrycard.InferredFields{
		Title:       collection.InferredField(c, collection.KindTitle),
		Description: collection.InferredField(c, collection.KindDescription),
		Image:       collection.InferredField(c, collection.KindImage),
	}
	if inferred.Title == nil && c != nil {
		l.logger.Warn("title field could not be inferred", "collection", c.Name)
	}

	fields := collection.Fields(c)
	if fields == nil {
		return inferred
	}

	var excluded []string
	for _, f := range []*collection.Field{inferred.Title, inferred.Description, inferred.Image} {
		if f != nil {
			excluded = append(excluded, f.Name)
		}
	}
	inferred.Remaining = make([]collection.Field, 0, len(fields))
	for _, f := range fields {
		if !slices.Contains(excluded, f.Name) {
			inferred.Remaining = append(inferred.Remaining, f)
		}
	}
	return inferred
}

// Render produces one card per entry. In a multi-collection listing an entry
// whose collection is not part of the source fails with an error matching
// collection.ErrCollectionNotFound.
func (l *Listing) Render() (View, error) {
	view := View{Waypoint: l.HasMore()}

	var cards []entrycard.Card
	var err error
	if l.source.single() {
		cards, err = l.renderSingle()
	} else {
		cards, err = l.renderMultiple()
	}
	if err != nil {
		return View{}, err
	}
	view.Cards = cards
	return view, nil
}

func (l *Listing) renderSingle() ([]entrycard.Card, error) {
	c := l.source.collections()[0]
	if c == nil {
		return nil, fmt.Errorf("listing: %w", &collection.NotFoundError{})
	}

	fields := l.InferFields(c)
	props := entrycard.Props{
		Collection:   c,
		Fields:       fields,
		PublicFolder: l.publicFolder,
		ViewStyle:    l.viewStyle,
	}
	renderer := l.rendererFor(c.Name)

	cards := make([]entrycard.Card, 0, len(l.entries))
	for i, entry := range l.entries {
		props.Entry = entry
		props.Fields = cloneFields(fields)
		card, err := renderer.RenderCard(props)
		if err != nil {
			return nil, fmt.Errorf("render entry %d (%s/%s): %w", i, c.Name, entry.Slug, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (l *Listing) renderMultiple() ([]entrycard.Card, error) {
	collections := l.source.collections()
	inferred := make(map[string]entrycard.InferredFields, len(collections))

	cards := make([]entrycard.Card, 0, len(l.entries))
	for i, entry := range l.entries {
		idx := slices.IndexFunc(collections, func(c *collection.Collection) bool { return c.Name == entry.Collection })
		if idx < 0 {
			return nil, fmt.Errorf("render entry %d (%s): %w", i, entry.Slug, &collection.NotFoundError{Name: entry.Collection})
		}
		c := collections[idx]

		fields, ok := inferred[c.Name]
		if !ok {
			fields = l.InferFields(c)
			inferred[c.Name] = fields
		}

		card, err := l.rendererFor(c.Name).RenderCard(entrycard.Props{
			Collection:      c,
			Entry:           entry,
			Fields:          cloneFields(fields),
			PublicFolder:    l.publicFolder,
			ViewStyle:       l.viewStyle,
			CollectionLabel: c.Label,
		})
		if err != nil {
			return nil, fmt.Errorf("render entry %d (%s/%s): %w", i, c.Name, entry.Slug, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// cloneFields gives each card its own copy of the inferred fields so a
// renderer cannot change what later cards see.
func cloneFields(f entrycard.InferredFields) entrycard.InferredFields {
	return entrycard.InferredFields{
		Title:       cloneField(f.Title),
		Description: cloneField(f.Description),
		Image:       cloneField(f.Image),
		Remaining:   slices.Clone(f.Remaining),
	}
}

func cloneField(f *collection.Field) *collection.Field {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func (l *Listing) rendererFor(name string) entrycard.Renderer {
	if l.cards != nil {
		if r, ok := l.cards.EntryCard(name); ok && r != nil {
			return r
		}
	}
	return l.defaultCard
}
