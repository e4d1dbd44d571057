package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - IV_CONFIG_PATH: config file location (default: ~/.config/iv.toml)
//   - IV_HOME: base directory for iv data (default: ~/.local/share/iv)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"trash_root":  filepath.Join(baseDir, "trash"),
	}, nil
}

// getConfigPath returns the config file path, checking IV_CONFIG_PATH env var first,
// then falling back to the default ~/.config/iv.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("IV_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "iv.toml"), nil
}

// getBaseDir returns the base directory for iv data, checking IV_HOME env var first,
// then falling back to the XDG default ~/.local/share/iv.
func getBaseDir() (string, error) {
	if path := os.Getenv("IV_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "iv"), nil
}
