package registry

import (
	"fmt"
	"maps"
	"strings"
)

// MediaLibraryHandle is the running instance returned by a media library.
type MediaLibraryHandle any

// MediaLibraryInit starts a media library with the merged options.
type MediaLibraryInit func(options map[string]any) (MediaLibraryHandle, error)

// MediaLibrary is an external media picker integration.
type MediaLibrary struct {
	Name    string
	Init    MediaLibraryInit
	Options map[string]any
}

// Start runs the library's Init with its registered options overlaid by
// overrides. Libraries without Init return a nil handle.
func (m MediaLibrary) Start(overrides map[string]any) (MediaLibraryHandle, error) {
	if m.Init == nil {
		return nil, nil
	}
	opts := maps.Clone(m.Options)
	if opts == nil {
		opts = make(map[string]any, len(overrides))
	}
	maps.Copy(opts, overrides)

	h, err := m.Init(opts)
	if err != nil {
		return nil, fmt.Errorf("media library %q: %w", m.Name, err)
	}
	return h, nil
}

// RegisterMediaLibrary registers lib with options, which replace lib.Options.
// Reusing a name returns a DuplicateMediaLibraryError.
func (r *Registry) RegisterMediaLibrary(lib MediaLibrary, options map[string]any) error {
	if strings.TrimSpace(lib.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidMediaLibrary)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ml := range r.mediaLibraries {
		if ml.Name == lib.Name {
			return &DuplicateMediaLibraryError{Name: lib.Name}
		}
	}

	lib.Options = maps.Clone(options)
	r.mediaLibraries = append(r.mediaLibraries, lib)
	r.logger.Debug("registered media library", "name", lib.Name)
	return nil
}

// MediaLibrary returns the first media library registered under name.
func (r *Registry) MediaLibrary(name string) (MediaLibrary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ml := range r.mediaLibraries {
		if ml.Name == name {
			return ml, true
		}
	}
	return MediaLibrary{}, false
}
