package cms_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	cms "github.com/reglet-dev/reglet-cms"
	"github.com/reglet-dev/reglet-cms/collection"
	"github.com/reglet-dev/reglet-cms/config"
	"github.com/reglet-dev/reglet-cms/cursor"
	"github.com/reglet-dev/reglet-cms/entrycard"
	"github.com/reglet-dev/reglet-cms/listing"
	"github.com/reglet-dev/reglet-cms/parser"
	"github.com/reglet-dev/reglet-cms/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteConfig = `backend:
  name: test-repo
  options:
    delay: 10
media_folder: uploads
media_library:
  name: assets
  config:
    multiple: true
collections:
  - name: posts
    label: Posts
    folder: content/posts
    fields:
      - { name: title }
      - { name: cover, widget: image }
  - name: authors
    label: Authors
    folder: content/authors
    fields:
      - { name: name }
`

type testBackend struct {
	opts registry.BackendInitOptions
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(siteConfig), parser.FormatYAML)
	require.NoError(t, err)
	return cfg
}

func newCMS(t *testing.T) *cms.CMS {
	t.Helper()
	c := cms.New(cms.WithRegistryOptions(registry.WithDiagnosticHandler(&registry.NopDiagnosticHandler{})))
	c.Registry().RegisterBackend("test-repo", func(opts registry.BackendInitOptions) (registry.Backend, error) {
		return &testBackend{opts: opts}, nil
	})
	require.NoError(t, c.Registry().RegisterMediaLibrary(registry.MediaLibrary{
		Name: "assets",
		Init: func(options map[string]any) (registry.MediaLibraryHandle, error) {
			return options, nil
		},
	}, map[string]any{"multiple": false, "tabs": 2}))
	return c
}

func TestCMS_Init(t *testing.T) {
	var buf bytes.Buffer
	c := cms.New(cms.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	c.Registry().RegisterBackend("test-repo", func(opts registry.BackendInitOptions) (registry.Backend, error) {
		return &testBackend{opts: opts}, nil
	})
	require.NoError(t, c.Registry().RegisterMediaLibrary(registry.MediaLibrary{
		Name: "assets",
		Init: func(options map[string]any) (registry.MediaLibraryHandle, error) { return options, nil },
	}, map[string]any{"multiple": false, "tabs": 2}))

	cfg := loadConfig(t)
	require.NoError(t, c.Init(cfg))

	assert.Same(t, cfg, c.Config())

	b, ok := c.Backend()
	require.True(t, ok)
	backend, ok := b.(*testBackend)
	require.True(t, ok)
	assert.Same(t, cfg, backend.opts.Config)
	assert.Equal(t, 10, backend.opts.Options["delay"])

	m, ok := c.MediaLibrary()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"multiple": true, "tabs": 2}, m)

	assert.Equal(t, 2, c.Collections().Len())
	assert.Contains(t, buf.String(), "cms initialized")
	assert.Contains(t, buf.String(), "backend=test-repo")
}

func TestCMS_InitErrors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		assert.ErrorIs(t, newCMS(t).Init(nil), config.ErrInvalidConfig)
	})

	t.Run("backend not registered", func(t *testing.T) {
		cfg := loadConfig(t)
		cfg.Backend.Name = "github"

		c := newCMS(t)
		err := c.Init(cfg)
		require.ErrorIs(t, err, cms.ErrBackendNotRegistered)
		assert.Contains(t, err.Error(), "github")
		assert.Nil(t, c.Config())
	})

	t.Run("backend constructor fails", func(t *testing.T) {
		boom := errors.New("no credentials")
		c := cms.New(cms.WithRegistryOptions(registry.WithDiagnosticHandler(&registry.NopDiagnosticHandler{})))
		c.Registry().RegisterBackend("test-repo", func(registry.BackendInitOptions) (registry.Backend, error) {
			return nil, boom
		})

		err := c.Init(loadConfig(t))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("media library not registered", func(t *testing.T) {
		cfg := loadConfig(t)
		cfg.MediaLibrary.Name = "cloudinary"

		err := newCMS(t).Init(cfg)
		assert.ErrorIs(t, err, cms.ErrMediaLibraryNotRegistered)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := loadConfig(t)
		cfg.Collections = append(cfg.Collections, cfg.Collections[0])

		assert.ErrorIs(t, newCMS(t).Init(cfg), config.ErrInvalidConfig)
	})
}

func TestCMS_InitWithoutMediaLibrary(t *testing.T) {
	cfg := loadConfig(t)
	cfg.MediaLibrary = nil

	c := newCMS(t)
	require.NoError(t, c.Init(cfg))

	_, ok := c.MediaLibrary()
	assert.False(t, ok)
}

func TestCMS_CollectionListing(t *testing.T) {
	c := newCMS(t)

	_, err := c.CollectionListing("posts")
	require.ErrorIs(t, err, cms.ErrNotInitialized)

	require.NoError(t, c.Init(loadConfig(t)))

	_, err = c.CollectionListing("pages")
	require.ErrorIs(t, err, collection.ErrCollectionNotFound)

	var dispatched []cursor.Action
	l, err := c.CollectionListing("posts",
		listing.WithEntries([]collection.Entry{
			{Collection: "posts", Slug: "hello", Data: map[string]any{"title": "Hello", "cover": "a.png"}},
		}),
		listing.WithCursor([]string{"append_next"}),
		listing.WithCursorActionHandler(func(a cursor.Action) { dispatched = append(dispatched, a) }))
	require.NoError(t, err)

	view, err := l.Render()
	require.NoError(t, err)
	assert.True(t, view.Waypoint)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, entrycard.Summary{
		Path:      "/collections/posts/entries/hello",
		Title:     "Hello",
		Image:     "/uploads/a.png",
		ViewStyle: entrycard.ViewStyleList,
	}, view.Cards[0])

	l.HandleLoadMore()
	assert.Equal(t, []cursor.Action{cursor.ActionAppendNext}, dispatched)
}

func TestCMS_AggregateListing(t *testing.T) {
	c := newCMS(t)
	c.Registry().RegisterEntryCard("authors", entrycard.RendererFunc(func(p entrycard.Props) (entrycard.Card, error) {
		return "author:" + p.Entry.StringValue("name"), nil
	}))
	require.NoError(t, c.Init(loadConfig(t)))

	l, err := c.AggregateListing(listing.WithEntries([]collection.Entry{
		{Collection: "authors", Slug: "ada", Data: map[string]any{"name": "Ada"}},
		{Collection: "posts", Slug: "hello", Data: map[string]any{"title": "Hello"}},
	}))
	require.NoError(t, err)

	view, err := l.Render()
	require.NoError(t, err)
	assert.False(t, view.Waypoint)
	require.Len(t, view.Cards, 2)
	assert.Equal(t, "author:Ada", view.Cards[0])
	assert.Equal(t, "Posts", view.Cards[1].(entrycard.Summary).CollectionLabel)
}

func TestCMS_InitAppliesDefaults(t *testing.T) {
	cfg := &config.Config{
		Backend:     config.Backend{Name: "test-repo"},
		MediaFolder: "uploads",
		Collections: []collection.Collection{{
			Name:   "posts",
			Folder: "content/posts",
			Fields: []collection.Field{{Name: "title"}, {Name: "cover", Widget: "image"}},
		}},
	}

	c := newCMS(t)
	require.NoError(t, c.Init(cfg))

	assert.Equal(t, "/uploads", cfg.PublicFolder)
	assert.Equal(t, "md", cfg.Collections[0].Extension)

	l, err := c.CollectionListing("posts", listing.WithEntries([]collection.Entry{
		{Collection: "posts", Slug: "hello", Data: map[string]any{"title": "Hello", "cover": "a.png"}},
	}))
	require.NoError(t, err)

	view, err := l.Render()
	require.NoError(t, err)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, "/uploads/a.png", view.Cards[0].(entrycard.Summary).Image)
}

func TestCMS_WithNilLogger(t *testing.T) {
	c := cms.New(cms.WithLogger(nil))
	c.Registry().RegisterBackend("test-repo", func(registry.BackendInitOptions) (registry.Backend, error) { return "ok", nil })

	cfg := loadConfig(t)
	cfg.MediaLibrary = nil
	assert.NotPanics(t, func() { require.NoError(t, c.Init(cfg)) })
}
