// Package cms bootstraps a content management session: it owns the extension
// registry, initializes the configured backend and media library, and builds
// entry listings over the configured collections.
package cms

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reglet-dev/reglet-cms/collection"
	"github.com/reglet-dev/reglet-cms/config"
	"github.com/reglet-dev/reglet-cms/listing"
	"github.com/reglet-dev/reglet-cms/registry"
)

var (
	// ErrNotInitialized is returned by operations that need a configuration
	// before Init has succeeded.
	ErrNotInitialized = errors.New("cms not initialized")

	// ErrBackendNotRegistered is returned when the configured backend has no
	// registered constructor.
	ErrBackendNotRegistered = errors.New("backend not registered")

	// ErrMediaLibraryNotRegistered is returned when the configured media
	// library was never registered.
	ErrMediaLibraryNotRegistered = errors.New("media library not registered")
)

// CMS is one editing session.
type CMS struct {
	registry *registry.Registry
	logger   *slog.Logger

	mu          sync.RWMutex
	config      *config.Config
	collections *collection.Set
	backend     registry.Backend
	media       registry.MediaLibraryHandle
}

type options struct {
	logger       *slog.Logger
	registryOpts []registry.Option
}

// Option configures a CMS.
type Option func(*options)

// WithLogger sets the logger used by the CMS and its registry. A nil logger
// is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegistryOptions passes options to the registry the CMS creates.
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(o *options) {
		o.registryOpts = append(o.registryOpts, opts...)
	}
}

// New creates a CMS with an empty registry.
func New(opts ...Option) *CMS {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	regOpts := append([]registry.Option{registry.WithLogger(o.logger)}, o.registryOpts...)
	return &CMS{
		registry: registry.New(regOpts...),
		logger:   o.logger,
	}
}

// Registry returns the extension registry. Extensions should be registered
// before Init.
func (c *CMS) Registry() *registry.Registry {
	return c.registry
}

// Init starts the session: it applies config defaults, constructs the
// configured backend and starts the configured media library.
func (c *CMS) Init(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is required", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	set, err := cfg.CollectionSet()
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	factory, ok := c.registry.Backend(cfg.Backend.Name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrBackendNotRegistered, cfg.Backend.Name)
	}
	backend, err := factory.Init(registry.BackendInitOptions{
		Config:  cfg,
		Options: cfg.Backend.Options,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}

	var media registry.MediaLibraryHandle
	if cfg.MediaLibrary != nil {
		lib, ok := c.registry.MediaLibrary(cfg.MediaLibrary.Name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrMediaLibraryNotRegistered, cfg.MediaLibrary.Name)
		}
		media, err = lib.Start(cfg.MediaLibrary.Config)
		if err != nil {
			return fmt.Errorf("failed to start media library %q: %w", lib.Name, err)
		}
	}

	c.mu.Lock()
	c.config = cfg
	c.collections = set
	c.backend = backend
	c.media = media
	c.mu.Unlock()

	c.logger.Info("cms initialized",
		"backend", cfg.Backend.Name,
		"collections", set.Len(),
		"extensions", len(c.registry.Extensions()))
	return nil
}

// Config returns the configuration Init accepted, or nil.
func (c *CMS) Config() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Backend returns the initialized backend.
func (c *CMS) Backend() (registry.Backend, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend, c.config != nil
}

// MediaLibrary returns the handle of the started media library.
func (c *CMS) MediaLibrary() (registry.MediaLibraryHandle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.media, c.config != nil && c.config.MediaLibrary != nil
}

// Collections returns the configured collections.
func (c *CMS) Collections() *collection.Set {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collections
}

// CollectionListing builds a listing over one configured collection.
func (c *CMS) CollectionListing(name string, opts ...listing.Option) (*listing.Listing, error) {
	set, publicFolder, err := c.session()
	if err != nil {
		return nil, err
	}
	col, err := set.ByName(name)
	if err != nil {
		return nil, err
	}
	return listing.New(listing.Single(col), c.listingOptions(publicFolder, opts)...), nil
}

// AggregateListing builds a listing over every configured collection, for
// results that mix entries from several collections.
func (c *CMS) AggregateListing(opts ...listing.Option) (*listing.Listing, error) {
	set, publicFolder, err := c.session()
	if err != nil {
		return nil, err
	}
	return listing.New(listing.Multiple(set.All()...), c.listingOptions(publicFolder, opts)...), nil
}

func (c *CMS) session() (*collection.Set, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.config == nil {
		return nil, "", ErrNotInitialized
	}
	return c.collections, c.config.PublicFolder, nil
}

func (c *CMS) listingOptions(publicFolder string, opts []listing.Option) []listing.Option {
	base := []listing.Option{
		listing.WithEntryCards(c.registry),
		listing.WithPublicFolder(publicFolder),
		listing.WithLogger(c.logger),
	}
	return append(base, opts...)
}
