package listing_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/reglet-dev/reglet-cms/collection"
	"github.com/reglet-dev/reglet-cms/cursor"
	"github.com/reglet-dev/reglet-cms/entrycard"
	"github.com/reglet-dev/reglet-cms/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardMap map[string]entrycard.Renderer

func (m cardMap) EntryCard(name string) (entrycard.Renderer, bool) {
	r, ok := m[name]
	return r, ok
}

func posts() *collection.Collection {
	return &collection.Collection{
		Name:   "posts",
		Label:  "Posts",
		Folder: "content/posts",
		Fields: []collection.Field{
			{Name: "title"},
			{Name: "body", Widget: "markdown"},
			{Name: "image", Widget: "image"},
			{Name: "author"},
		},
	}
}

func authors() *collection.Collection {
	return &collection.Collection{
		Name:   "authors",
		Label:  "Authors",
		Folder: "content/authors",
		Fields: []collection.Field{
			{Name: "name"},
			{Name: "bio", Widget: "text"},
		},
	}
}

func TestHasMore(t *testing.T) {
	tests := []struct {
		name   string
		cursor any
		want   bool
	}{
		{"no cursor", nil, false},
		{"append_next", cursor.New(cursor.Raw{Actions: []cursor.Action{cursor.ActionAppendNext}}), true},
		{"only next", cursor.New(cursor.Raw{Actions: []cursor.Action{cursor.ActionNext}}), false},
		{"plain data", map[string]any{"actions": []any{"append_next"}}, true},
		{"garbage", "append_next", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listing.New(listing.Single(posts()), listing.WithCursor(tt.cursor))
			assert.Equal(t, tt.want, l.HasMore())
		})
	}
}

func TestHandleLoadMore(t *testing.T) {
	t.Run("dispatches append_next when more is available", func(t *testing.T) {
		var got []cursor.Action
		l := listing.New(listing.Single(posts()),
			listing.WithCursor([]cursor.Action{cursor.ActionAppendNext, cursor.ActionPrev}),
			listing.WithCursorActionHandler(func(a cursor.Action) { got = append(got, a) }))

		l.HandleLoadMore()

		assert.Equal(t, []cursor.Action{cursor.ActionAppendNext}, got)
	})

	t.Run("does nothing without append_next", func(t *testing.T) {
		called := false
		l := listing.New(listing.Single(posts()),
			listing.WithCursor([]cursor.Action{cursor.ActionNext}),
			listing.WithCursorActionHandler(func(cursor.Action) { called = true }))

		l.HandleLoadMore()

		assert.False(t, called)
	})

	t.Run("no handler", func(t *testing.T) {
		l := listing.New(listing.Single(posts()), listing.WithCursor([]string{"append_next"}))
		assert.NotPanics(t, l.HandleLoadMore)
	})
}

func TestInferFields(t *testing.T) {
	l := listing.New(listing.Single(posts()))

	got := l.InferFields(posts())

	require.NotNil(t, got.Title)
	assert.Equal(t, "title", got.Title.Name)
	assert.Nil(t, got.Description)
	require.NotNil(t, got.Image)
	assert.Equal(t, "image", got.Image.Name)

	var remaining []string
	for _, f := range got.Remaining {
		remaining = append(remaining, f.Name)
	}
	assert.Equal(t, []string{"body", "author"}, remaining)
}

func TestInferFields_ExcludesByName(t *testing.T) {
	c := &collection.Collection{
		Name:   "dupes",
		Folder: "dupes",
		Fields: []collection.Field{
			{Name: "title"},
			{Name: "summary"},
			{Name: "title", Widget: "text"},
		},
	}

	got := listing.New(listing.Single(c)).InferFields(c)

	require.NotNil(t, got.Description)
	assert.Equal(t, "summary", got.Description.Name)
	assert.Empty(t, got.Remaining)
}

func TestInferFields_FileCollection(t *testing.T) {
	c := &collection.Collection{
		Name:  "settings",
		Files: []collection.File{{Name: "general", File: "data/general.yml"}},
	}

	got := listing.New(listing.Single(c)).InferFields(c)

	assert.Nil(t, got.Title)
	assert.Nil(t, got.Remaining)
}

func TestInferFields_WarnsWithoutTitle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := &collection.Collection{
		Name:   "gallery",
		Folder: "gallery",
		Fields: []collection.Field{{Name: "photo", Widget: "image"}},
	}

	got := listing.New(listing.Single(c), listing.WithLogger(logger)).InferFields(c)

	assert.Nil(t, got.Title)
	assert.Contains(t, buf.String(), "title field could not be inferred")
	assert.Contains(t, buf.String(), "collection=gallery")
}

func TestRender_Single(t *testing.T) {
	entries := []collection.Entry{
		{Collection: "posts", Slug: "hello", Data: map[string]any{"title": "Hello", "image": "cover.png"}},
		{Collection: "posts", Slug: "second", Label: "Second post"},
	}

	t.Run("default card", func(t *testing.T) {
		l := listing.New(listing.Single(posts()),
			listing.WithEntries(entries),
			listing.WithPublicFolder("uploads"),
			listing.WithViewStyle(entrycard.ViewStyleGrid),
			listing.WithCursor([]string{"append_next"}))

		view, err := l.Render()
		require.NoError(t, err)

		assert.True(t, view.Waypoint)
		require.Len(t, view.Cards, 2)
		assert.Equal(t, entrycard.Summary{
			Path:      "/collections/posts/entries/hello",
			Title:     "Hello",
			Image:     "/uploads/cover.png",
			ViewStyle: entrycard.ViewStyleGrid,
		}, view.Cards[0])
		assert.Equal(t, "Second post", view.Cards[1].(entrycard.Summary).Title)
	})

	t.Run("registered card", func(t *testing.T) {
		var seen []entrycard.Props
		custom := entrycard.RendererFunc(func(p entrycard.Props) (entrycard.Card, error) {
			seen = append(seen, p)
			return "custom:" + p.Entry.Slug, nil
		})
		l := listing.New(listing.Single(posts()),
			listing.WithEntries(entries),
			listing.WithEntryCards(cardMap{"posts": custom}))

		view, err := l.Render()
		require.NoError(t, err)

		assert.False(t, view.Waypoint)
		assert.Equal(t, []entrycard.Card{"custom:hello", "custom:second"}, view.Cards)
		require.Len(t, seen, 2)
		assert.Equal(t, "title", seen[0].Fields.Title.Name)
		assert.Empty(t, seen[0].CollectionLabel)
	})

	t.Run("renderer error", func(t *testing.T) {
		boom := errors.New("boom")
		l := listing.New(listing.Single(posts()),
			listing.WithEntries(entries),
			listing.WithDefaultCard(entrycard.RendererFunc(func(entrycard.Props) (entrycard.Card, error) {
				return nil, boom
			})))

		_, err := l.Render()
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "posts/hello")
	})

	t.Run("no entries", func(t *testing.T) {
		view, err := listing.New(listing.Single(posts())).Render()
		require.NoError(t, err)
		assert.Empty(t, view.Cards)
	})
}

func TestRender_Multiple(t *testing.T) {
	authorCard := entrycard.RendererFunc(func(p entrycard.Props) (entrycard.Card, error) {
		return p.CollectionLabel + ":" + p.Entry.Slug, nil
	})
	entries := []collection.Entry{
		{Collection: "posts", Slug: "hello", Data: map[string]any{"title": "Hello"}},
		{Collection: "authors", Slug: "ada", Data: map[string]any{"name": "Ada"}},
	}

	t.Run("each entry uses its own collection", func(t *testing.T) {
		l := listing.New(listing.Multiple(posts(), nil, authors()),
			listing.WithEntries(entries),
			listing.WithEntryCards(cardMap{"authors": authorCard}))

		view, err := l.Render()
		require.NoError(t, err)

		require.Len(t, view.Cards, 2)
		summary, ok := view.Cards[0].(entrycard.Summary)
		require.True(t, ok)
		assert.Equal(t, "Posts", summary.CollectionLabel)
		assert.Equal(t, "Hello", summary.Title)
		assert.Equal(t, "Authors:ada", view.Cards[1])
	})

	t.Run("unknown collection", func(t *testing.T) {
		l := listing.New(listing.Multiple(posts()),
			listing.WithEntries(entries))

		_, err := l.Render()
		require.Error(t, err)
		assert.ErrorIs(t, err, collection.ErrCollectionNotFound)

		var nf *collection.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "authors", nf.Name)
	})
}

func TestRender_RenderersCannotShareFields(t *testing.T) {
	entries := []collection.Entry{
		{Collection: "posts", Slug: "one"},
		{Collection: "posts", Slug: "two"},
	}
	var seen [][]string
	mutating := entrycard.RendererFunc(func(p entrycard.Props) (entrycard.Card, error) {
		var names []string
		for _, f := range p.Fields.Remaining {
			names = append(names, f.Name)
		}
		seen = append(seen, names)
		if len(p.Fields.Remaining) > 0 {
			p.Fields.Remaining[0].Name = "mutated"
		}
		p.Fields.Title.Name = "mutated"
		return p.Entry.Slug, nil
	})

	sources := map[string]listing.Source{
		"single":   listing.Single(posts()),
		"multiple": listing.Multiple(posts()),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			seen = nil
			var titles []string
			titleCheck := entrycard.RendererFunc(func(p entrycard.Props) (entrycard.Card, error) {
				titles = append(titles, p.Fields.Title.Name)
				return mutating(p)
			})
			l := listing.New(src, listing.WithEntries(entries), listing.WithDefaultCard(titleCheck))

			_, err := l.Render()
			require.NoError(t, err)

			assert.Equal(t, [][]string{{"body", "author"}, {"body", "author"}}, seen)
			assert.Equal(t, []string{"title", "title"}, titles)
		})
	}
}

func TestWithLogger_NilIsIgnored(t *testing.T) {
	c := &collection.Collection{Name: "gallery", Folder: "gallery"}
	l := listing.New(listing.Single(c), listing.WithLogger(nil))

	assert.NotPanics(t, func() { l.InferFields(c) })
}
