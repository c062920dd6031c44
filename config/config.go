// Package config loads the CMS configuration document: the backend, the
// media library and the collections the editor works on.
package config

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/reglet-dev/reglet-cms/collection"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Backend selects the storage backend and carries its settings.
type Backend struct {
	Name    string         `json:"name" yaml:"name" toml:"name" jsonschema:"minLength=1"`
	Repo    string         `json:"repo,omitempty" yaml:"repo,omitempty" toml:"repo,omitempty"`
	Branch  string         `json:"branch,omitempty" yaml:"branch,omitempty" toml:"branch,omitempty"`
	APIRoot string         `json:"api_root,omitempty" yaml:"api_root,omitempty" toml:"api_root,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// MediaLibrary selects an external media library.
type MediaLibrary struct {
	Name   string         `json:"name" yaml:"name" toml:"name" jsonschema:"minLength=1"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty" toml:"config,omitempty"`
}

// Config is the top-level configuration document.
type Config struct {
	Backend      Backend                 `json:"backend" yaml:"backend" toml:"backend"`
	SiteURL      string                  `json:"site_url,omitempty" yaml:"site_url,omitempty" toml:"site_url,omitempty"`
	MediaLibrary *MediaLibrary           `json:"media_library,omitempty" yaml:"media_library,omitempty" toml:"media_library,omitempty"`
	MediaFolder  string                  `json:"media_folder,omitempty" yaml:"media_folder,omitempty" toml:"media_folder,omitempty"`
	PublicFolder string                  `json:"public_folder,omitempty" yaml:"public_folder,omitempty" toml:"public_folder,omitempty"`
	Collections  []collection.Collection `json:"collections,omitempty" yaml:"collections,omitempty" toml:"collections,omitempty"`
}

// Validate checks the rules a schema cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.Name) == "" {
		return fmt.Errorf("%w: backend name is required", ErrInvalidConfig)
	}
	if c.MediaLibrary != nil && strings.TrimSpace(c.MediaLibrary.Name) == "" {
		return fmt.Errorf("%w: media library name is required", ErrInvalidConfig)
	}
	for i := range c.Collections {
		if err := c.Collections[i].Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := c.CollectionSet(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ApplyDefaults fills collection defaults and derives public_folder from
// media_folder when it is not set.
func (c *Config) ApplyDefaults() {
	for i := range c.Collections {
		c.Collections[i].ApplyDefaults()
	}
	if c.PublicFolder == "" && c.MediaFolder != "" {
		c.PublicFolder = path.Join("/", c.MediaFolder)
	}
}

// CollectionSet indexes the configured collections by name.
func (c *Config) CollectionSet() (*collection.Set, error) {
	cs := make([]*collection.Collection, len(c.Collections))
	for i := range c.Collections {
		cs[i] = &c.Collections[i]
	}
	return collection.NewSet(cs...)
}
