package store

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir is ~/.huba unless HUBA_CONFIG_DIR is set.
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.huba).
	if v := strings.TrimSpace(os.Getenv("HUBA_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".huba"), nil
}

// ThemesDir holds user theme files.
func ThemesDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

func settingsDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.db"), nil
}
