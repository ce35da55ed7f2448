package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigFile is the project-level config file name.
const ProjectConfigFile = ".ccclog.yml"

// LegacyProjectConfigFile is the deprecated JSON project config file name.
const LegacyProjectConfigFile = ".ccclog.json"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/ccclog/config.yml
// - macOS: ~/Library/Application Support/ccclog/config.yml
// - Windows: %APPDATA%\ccclog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ccclog"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ProjectConfigFile
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON config file.
func LegacyProjectConfigPath() string {
	return LegacyProjectConfigFile
}

// ProjectConfigPathIn returns the project config path inside a repository root.
func ProjectConfigPathIn(root string) string {
	return filepath.Join(root, ProjectConfigFile)
}
