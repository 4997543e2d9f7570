package settings

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// ResolvePath picks the settings file: flag, then AUTOTYPER_CONFIG, then
// the XDG default.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv("AUTOTYPER_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(XDGConfigHome(), "autotyper", "settings.toml")
}

// DefaultHistoryPath returns the SQLite session history location.
func DefaultHistoryPath() string {
	return filepath.Join(XDGDataHome(), "autotyper", "history.db")
}
