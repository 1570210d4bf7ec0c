// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .topograph/config.json.
type Config struct {
	TopicsFile string `json:"topics_file,omitempty"` // Relative path to topics CSV
	LinksFile  string `json:"links_file,omitempty"`  // Relative path to links CSV
	URLsFile   string `json:"urls_file,omitempty"`   // Relative path to urls CSV
	Layout     string `json:"layout,omitempty"`      // Default viz layout: force, circle, grid
}

const (
	TopographDir = ".topograph"
	ConfigFile   = "config.json"
	GraphFile    = "graph.json"
	CacheDir     = "cache"
	DBFile       = "graph.db"

	DefaultTopicsFile = "topics.csv"
	DefaultLinksFile  = "links.csv"
	DefaultURLsFile   = "urls.csv"
)

// DefaultConfig returns the configuration written by tg init.
func DefaultConfig() *Config {
	return &Config{
		TopicsFile: DefaultTopicsFile,
		LinksFile:  DefaultLinksFile,
		URLsFile:   DefaultURLsFile,
		Layout:     "force",
	}
}

// TopographPath returns the path to the .topograph directory from a root path.
func TopographPath(root string) string {
	return filepath.Join(root, TopographDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, TopographDir, ConfigFile)
}

// GraphPath returns the path to the built graph artifact from a root path.
func GraphPath(root string) string {
	return filepath.Join(root, TopographDir, GraphFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, TopographDir, CacheDir)
}

// DBPath returns the path to the query cache database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, TopographDir, CacheDir, DBFile)
}

// TopicsPath returns the configured topics file path from a root path.
func (c *Config) TopicsPath(root string) string {
	return filepath.Join(root, c.fileOrDefault(c.TopicsFile, DefaultTopicsFile))
}

// LinksPath returns the configured links file path from a root path.
func (c *Config) LinksPath(root string) string {
	return filepath.Join(root, c.fileOrDefault(c.LinksFile, DefaultLinksFile))
}

// URLsPath returns the configured urls file path from a root path.
func (c *Config) URLsPath(root string) string {
	return filepath.Join(root, c.fileOrDefault(c.URLsFile, DefaultURLsFile))
}

func (c *Config) fileOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// IsRepository checks if the given path contains a topograph repository.
func IsRepository(root string) bool {
	info, err := os.Stat(TopographPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a topograph repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a topograph repository (no .topograph directory found)")
		}
		abs = parent
	}
}

// Init creates the repository skeleton at root and writes the default
// config. Fails if the repository already exists.
func Init(root string) (*Config, error) {
	dir := TopographPath(root)
	if IsRepository(root) {
		return nil, fmt.Errorf("repository already initialized at %s", dir)
	}
	if err := os.MkdirAll(filepath.Join(dir, CacheDir), 0755); err != nil {
		return nil, fmt.Errorf("creating repository: %w", err)
	}

	cfg := DefaultConfig()
	if err := cfg.Save(root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
