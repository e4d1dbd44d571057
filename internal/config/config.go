package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"iv-go/internal/iv"
)

// Config represents the main configuration for iv.
type Config struct {
	BaseDir string       `toml:"base_dir"`
	LogDir  string       `toml:"log_dir"`
	Images  ImagesConfig `toml:"images"`
	Trash   TrashConfig  `toml:"trash"`
}

// ImagesConfig holds settings governing image transformations.
type ImagesConfig struct {
	// Autosave allows staged rotations and flips to be written to the
	// underlying files automatically. With it disabled, transformations of
	// the displayed image are visual-only until an explicit write.
	Autosave bool `toml:"autosave"`
}

// TrashConfig represents configuration for the trash backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type TrashConfig struct {
	Type string `toml:"type"` // "filesystem" or "memory"

	// Filesystem-specific fields (only used when Type == "filesystem")
	Root string `toml:"root,omitempty"`
}

// NewConfig creates a new Config with default values rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Images: ImagesConfig{
			Autosave: true,
		},
		Trash: TrashConfig{
			Type: "filesystem",
			Root: filepath.Join(baseDir, "trash"),
		},
	}
}

// AutosaveImages reports whether staged changes may be written to disk
// automatically.
func (c *Config) AutosaveImages() bool {
	return c.Images.Autosave
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// Compile-time check that Config implements iv.Settings interface
var _ iv.Settings = (*Config)(nil)
