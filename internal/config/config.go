// Package config loads hoard's optional YAML configuration file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	herrors "github.com/hoardsec/hoard/internal/errors"
	"github.com/hoardsec/hoard/internal/index"
	"github.com/hoardsec/hoard/internal/logging"
)

// Config holds the runtime configuration shared across commands. Path
// and Logger are populated by the root command before any subcommand
// runs; Definition is filled by Load.
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the hoard.yaml structure. Everything is
// optional; an absent file behaves like an empty one.
type Definition struct {
	// DefaultNamespace is used when a command is run without
	// -n/--namespace.
	DefaultNamespace string `yaml:"default_namespace,omitempty"`

	// IndexPath overrides the per-user location of the listing index.
	IndexPath string `yaml:"index_path,omitempty"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	confDir, err := os.UserConfigDir()
	if err != nil {
		return "", herrors.BackendError{Op: "locating config directory", Err: err}
	}
	return filepath.Join(confDir, "hoard", "hoard.yaml"), nil
}

// Load reads and parses the config file at c.Path. A missing file is
// not an error; it yields an empty Definition.
func (c *Config) Load() error {
	c.Definition = &Definition{}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return herrors.BackendError{Op: "reading config file", Err: err}
	}

	if err := yaml.Unmarshal(data, c.Definition); err != nil {
		return herrors.SerializationError{Err: err}
	}
	return nil
}

// Namespace resolves the effective namespace: the explicit flag value
// if given, otherwise the configured default. ok is false when neither
// is available.
func (c *Config) Namespace(flag string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if c.Definition != nil && c.Definition.DefaultNamespace != "" {
		return c.Definition.DefaultNamespace, true
	}
	return "", false
}

// IndexPath resolves the listing index location, preferring the
// configured override over the per-user default.
func (c *Config) IndexPath() (string, error) {
	if c.Definition != nil && c.Definition.IndexPath != "" {
		return c.Definition.IndexPath, nil
	}
	return index.DefaultPath()
}
