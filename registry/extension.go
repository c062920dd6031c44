package registry

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/reglet-dev/reglet-cms/editorcomponent"
	"github.com/reglet-dev/reglet-cms/entrycard"
)

// Extension bundles a set of registrations under one name, for plugins that
// contribute several widgets, previews or backends at once.
type Extension struct {
	Name string
	// Version is the extension's own version. Optional, must be semver.
	Version string
	// Requires is a semver constraint on the core version, e.g. ">= 1.0, < 2".
	// An empty constraint accepts every core version.
	Requires string
	// Register performs the extension's registrations.
	Register func(r *Registry) error
}

// Use checks ext against the core version and runs its registrations.
// A name that is already in use is refused with an error diagnostic;
// malformed or incompatible declarations return an error. When Register
// fails, every registration it made is rolled back.
func (r *Registry) Use(ext Extension) (Result, error) {
	var res Result
	if err := r.checkExtension(ext); err != nil {
		return res, err
	}

	r.mu.Lock()
	inUse := slices.ContainsFunc(r.extensions, func(e Extension) bool { return e.Name == ext.Name })
	r.mu.Unlock()

	if inUse {
		res.fail(CategoryExtension, ext.Name, "extension %q already in use", ext.Name)
		r.report(res)
		return res, nil
	}

	if ext.Register != nil {
		snap := r.snapshot()
		if err := ext.Register(r); err != nil {
			r.restore(snap)
			return res, fmt.Errorf("extension %q: %w", ext.Name, err)
		}
	}

	r.mu.Lock()
	r.extensions = append(r.extensions, ext)
	r.mu.Unlock()

	res.Registered = append(res.Registered, ext.Name)
	r.logger.Info("extension registered",
		"name", ext.Name,
		"version", ext.Version,
		"core", r.coreVersion.String())
	return res, nil
}

func (r *Registry) checkExtension(ext Extension) error {
	if strings.TrimSpace(ext.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidExtension)
	}
	if ext.Version != "" {
		if _, err := semver.NewVersion(ext.Version); err != nil {
			return fmt.Errorf("%w: extension %q version %q: %w", ErrInvalidExtension, ext.Name, ext.Version, err)
		}
	}
	if ext.Requires == "" {
		return nil
	}

	c, err := semver.NewConstraint(ext.Requires)
	if err != nil {
		return fmt.Errorf("%w: extension %q constraint %q: %w", ErrInvalidExtension, ext.Name, ext.Requires, err)
	}
	if !c.Check(r.coreVersion) {
		return &IncompatibleExtensionError{
			Extension: ext.Name,
			Requires:  ext.Requires,
			Core:      r.coreVersion.String(),
		}
	}
	return nil
}

// tables is a copy of every registration table.
type tables struct {
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

func (r *Registry) snapshot() tables {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return tables{
		backends:         maps.Clone(r.backends),
		templates:        maps.Clone(r.templates),
		previewStyles:    slices.Clone(r.previewStyles),
		widgets:          maps.Clone(r.widgets),
		editorComponents: slices.Clone(r.editorComponents),
		editorIndex:      maps.Clone(r.editorIndex),
		serializers:      maps.Clone(r.serializers),
		mediaLibraries:   slices.Clone(r.mediaLibraries),
		entryCards:       maps.Clone(r.entryCards),
		extensions:       slices.Clone(r.extensions),
	}
}

func (r *Registry) restore(t tables) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends = t.backends
	r.templates = t.templates
	r.previewStyles = t.previewStyles
	r.widgets = t.widgets
	r.editorComponents = t.editorComponents
	r.editorIndex = t.editorIndex
	r.serializers = t.serializers
	r.mediaLibraries = t.mediaLibraries
	r.entryCards = t.entryCards
	r.extensions = t.extensions
}

// Extensions returns the names of the extensions in use, in order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.extensions))
	for _, e := range r.extensions {
		names = append(names, e.Name)
	}
	return names
}
