package config

import (
	"os"
	"path/filepath"
)

// Paths provides all toonify-related filesystem paths.
type Paths struct {
	ConfigDir  string // ~/.config/toonify
	ConfigFile string // ~/.config/toonify/config.yaml
}

// NewPaths creates Paths under ~/.config.
// We use this path explicitly for cross-platform consistency rather than
// platform-specific defaults (like ~/Library/Application Support on macOS).
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	return NewPathsWithOverrides(filepath.Join(home, ".config", "toonify"))
}

// NewPathsWithOverrides allows overriding the config directory for testing.
func NewPathsWithOverrides(configDir string) *Paths {
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
	}
}
