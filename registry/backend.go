package registry

import (
	"fmt"
	"strings"
)

// Backend is a storage backend instance created by a BackendFactory.
type Backend any

// BackendInitOptions is passed to a backend constructor.
type BackendInitOptions struct {
	// Config is the host's site configuration.
	Config any
	// Options carries backend-specific settings.
	Options map[string]any
}

// BackendConstructor creates a backend instance.
type BackendConstructor func(opts BackendInitOptions) (Backend, error)

// BackendFactory creates instances of one registered backend.
type BackendFactory struct {
	name      string
	construct BackendConstructor
}

// Name returns the name the backend was registered under.
func (f *BackendFactory) Name() string {
	return f.name
}

// Init creates a new backend instance.
func (f *BackendFactory) Init(opts BackendInitOptions) (Backend, error) {
	b, err := f.construct(opts)
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", f.name, err)
	}
	return b, nil
}

// RegisterBackend registers a backend constructor under name.
// The first registration of a name wins; later ones are refused.
func (r *Registry) RegisterBackend(name string, ctor BackendConstructor) Result {
	res := r.registerBackend(name, ctor)
	r.report(res)
	return res
}

func (r *Registry) registerBackend(name string, ctor BackendConstructor) Result {
	var res Result
	if strings.TrimSpace(name) == "" || ctor == nil {
		res.fail(CategoryBackend, name, "backend parameters invalid: a name and a constructor are required")
		return res
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		res.fail(CategoryBackend, name, "backend %q already registered; choose a different name", name)
		return res
	}

	r.backends[name] = &BackendFactory{name: name, construct: ctor}
	res.Registered = append(res.Registered, name)
	r.logger.Debug("registered backend", "name", name)
	return res
}

// Backend returns the factory registered under name.
func (r *Registry) Backend(name string) (*BackendFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.backends[name]
	return f, ok
}
