// Package registry implements the extension registry of the CMS: named
// backends, editor widgets, preview templates and styles, editor components,
// widget value serializers, media libraries and entry cards.
//
// Each category has its own table and its own conflict policy. Soft failures
// are returned as a Result carrying Diagnostics; configuration errors that
// must stop startup are returned as errors.
package registry

import (
	"log/slog"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/reglet-dev/reglet-cms/editorcomponent"
	"github.com/reglet-dev/reglet-cms/entrycard"
)

// CoreVersion is the version extensions are checked against unless the
// registry is built with WithCoreVersion.
const CoreVersion = "1.0.0"

// Component is an opaque UI implementation owned by the host (a widget
// control, a preview, a preview template, global styles).
type Component any

// Registry holds every registered extension of one application context.
// All registrations are expected to happen during startup, before lookups.
type Registry struct {
	mu sync.RWMutex

	coreVersion *semver.Version
	logger      *slog.Logger
	diagnostics DiagnosticHandler

	backends         map[string]*BackendFactory
	templates        map[string]Component
	previewStyles    []PreviewStyle
	widgets          map[string]Widget
	editorComponents []*editorcomponent.Component
	editorIndex      map[string]int
	serializers      map[string]Serializer
	mediaLibraries   []MediaLibrary
	entryCards       map[string]entrycard.Renderer
	extensions       []Extension
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events and, unless a
// handler is set with WithDiagnosticHandler, for diagnostics. A nil logger
// is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDiagnosticHandler sets the handler notified of every diagnostic.
func WithDiagnosticHandler(h DiagnosticHandler) Option {
	return func(r *Registry) {
		r.diagnostics = h
	}
}

// WithCoreVersion sets the version extensions must be compatible with.
// A nil version is ignored.
func WithCoreVersion(v *semver.Version) Option {
	return func(r *Registry) {
		if v != nil {
			r.coreVersion = v
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		coreVersion: semver.MustParse(CoreVersion),
		logger:      slog.Default(),
		backends:    make(map[string]*BackendFactory),
		templates:   make(map[string]Component),
		widgets:     make(map[string]Widget),
		editorIndex: make(map[string]int),
		serializers: make(map[string]Serializer),
		entryCards:  make(map[string]entrycard.Renderer),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.diagnostics == nil {
		r.diagnostics = &LogDiagnosticHandler{Logger: r.logger}
	}

	return r
}

// CoreVersionString returns the version extensions are checked against.
func (r *Registry) CoreVersionString() string {
	return r.coreVersion.String()
}

// report forwards diagnostics to the handler. Callers must not hold r.mu.
func (r *Registry) report(res Result) {
	for _, d := range res.Diagnostics {
		r.diagnostics.OnDiagnostic(d)
	}
}
