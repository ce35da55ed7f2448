// ccclog - Conventional commit changelog generator
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/ccclog

// Package config provides hierarchical configuration management for ccclog using koanf.
// Configuration is loaded with priority: command-line flags > environment variables (CCCLOG_*)
// > project config (.ccclog.yml) > user config (~/.config/ccclog/config.yml) > defaults. A legacy
// .ccclog.json project file is still read when no YAML project config exists.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ariel-frischer/ccclog/internal/changelog"
	"github.com/ariel-frischer/ccclog/internal/conventional"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "CCCLOG_"

var debugLogger func(format string, args ...any)

// SetDebugLogger installs a logger for configuration loading diagnostics.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
	SourceFlag    ConfigSource = "flag"
)

// Configuration represents the ccclog CLI configuration
type Configuration struct {
	// Reverse lists commits oldest first inside each section.
	Reverse bool `koanf:"reverse" yaml:"reverse" json:"reverse"`
	// RootIndentLevel is the heading level of release headings (1 means "#").
	RootIndentLevel int `koanf:"root_indent_level" yaml:"root_indent_level" json:"root_indent_level" validate:"min=1,max=5"`
	// EnableEmailLink renders authors as mailto links.
	EnableEmailLink bool `koanf:"enable_email_link" yaml:"enable_email_link" json:"enable_email_link"`
	// IgnoreSummary drops commits whose description matches this regular expression.
	IgnoreSummary string `koanf:"ignore_summary" yaml:"ignore_summary" json:"ignore_summary"`
	// IgnoreTypes drops commits of the listed types. "others" names the fallback group.
	IgnoreTypes []string `koanf:"ignore_types" yaml:"ignore_types" json:"ignore_types"`
	// TagPrefix selects a version scheme explicitly. Nil means auto-detect; an
	// empty string selects bare versions.
	TagPrefix *string `koanf:"tag_prefix" yaml:"tag_prefix,omitempty" json:"tag_prefix,omitempty"`
	// ExcludeTags lists glob patterns of tag names that never count as versions.
	ExcludeTags []string `koanf:"exclude_tags" yaml:"exclude_tags" json:"exclude_tags"`
	// IncludeMerges keeps merge commits in the changelog.
	IncludeMerges bool `koanf:"include_merges" yaml:"include_merges" json:"include_merges"`
	// All walks the whole history instead of the latest release only.
	All bool `koanf:"all" yaml:"all" json:"all"`
	// Format is the output format: markdown, json, yaml or text.
	Format string `koanf:"format" yaml:"format" json:"format" validate:"required"`
	// Output is the destination file. Empty means standard output.
	Output string `koanf:"output" yaml:"output" json:"output"`
	// Remote is the git remote used to build compare and commit links.
	Remote string `koanf:"remote" yaml:"remote" json:"remote" validate:"required"`

	// Sources records which layer supplied each key.
	Sources map[string]ConfigSource `koanf:"-" yaml:"-" json:"-"`
}

// IgnoreSummaryPattern compiles IgnoreSummary. It returns nil when unset.
func (c *Configuration) IgnoreSummaryPattern() (*regexp.Regexp, error) {
	if c.IgnoreSummary == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.IgnoreSummary)
	if err != nil {
		return nil, fmt.Errorf("compiling ignore_summary %q: %w", c.IgnoreSummary, err)
	}
	return re, nil
}

// IgnoredTypes returns IgnoreTypes as commit types.
func (c *Configuration) IgnoredTypes() []conventional.CommitType {
	return conventional.ParseTypes(c.IgnoreTypes)
}

// OutputFormat returns Format as a changelog format.
func (c *Configuration) OutputFormat() (changelog.Format, error) {
	return changelog.ParseFormat(c.Format)
}

// SourceOf returns the layer that supplied key, defaulting to SourceDefault.
func (c *Configuration) SourceOf(key string) ConfigSource {
	if src, ok := c.Sources[key]; ok {
		return src
	}
	return SourceDefault
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .ccclog.yml in ProjectDir)
	ProjectConfigPath string
	// ProjectDir is the directory holding the project config files (default: current directory)
	ProjectDir string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
	// SkipUserConfig ignores the user config file entirely.
	SkipUserConfig bool
	// Overrides holds values from command-line flags. They win over every file and env value.
	Overrides map[string]any
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// Config paths:
//   - User config: ~/.config/ccclog/config.yml (XDG compliant)
//   - Project config: .ccclog.yml
//   - Legacy project config: .ccclog.json (deprecated, triggers migration warning)
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := make(map[string]ConfigSource)
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, sources, opts.UserConfigPath, warningWriter, opts.SkipWarnings); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, sources, opts.ProjectDir, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k, sources); err != nil {
		return nil, err
	}

	if err := loadOverrides(k, sources, opts.Overrides); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// mergeLayer merges layer into k and records src for every key it carries.
func mergeLayer(k, layer *koanf.Koanf, sources map[string]ConfigSource, src ConfigSource) error {
	if err := k.Merge(layer); err != nil {
		return fmt.Errorf("merging %s config: %w", src, err)
	}
	for _, key := range layer.Keys() {
		sources[key] = src
	}
	return nil
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf, sources map[string]ConfigSource, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	path := customPath
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}

	layer := koanf.New(".")
	if err := loadYAMLConfig(layer, path, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	warnUnknownKeys(warningWriter, layer, path, skipWarnings)
	logDebug("[config] loaded user config %s", path)
	return mergeLayer(k, layer, sources, SourceUser)
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Supports custom path override (for testing). Falls back to legacy JSON with warning.
func loadProjectConfig(k *koanf.Koanf, sources map[string]ConfigSource, dir, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := filepath.Join(dir, ProjectConfigPath())
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := filepath.Join(dir, LegacyProjectConfigPath())

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	layer := koanf.New(".")
	var path string
	switch {
	case projectYAMLExists:
		if err := loadYAMLConfig(layer, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings)
		path = projectYAMLPath
	case legacyProjectExists:
		if err := loadLegacyJSONConfig(layer, legacyProjectPath, warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
		path = legacyProjectPath
	default:
		return nil
	}

	warnUnknownKeys(warningWriter, layer, path, skipWarnings)
	logDebug("[config] loaded project config %s", path)
	return mergeLayer(k, layer, sources, SourceProject)
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy project config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'ccclog config migrate' to migrate to YAML format.\n\n")
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Run 'ccclog config migrate' to remove the legacy file.\n\n")
	}
}

// warnUnknownKeys reports keys that no configuration field reads
func warnUnknownKeys(warningWriter io.Writer, layer *koanf.Koanf, path string, skipWarnings bool) {
	if skipWarnings {
		return
	}
	var unknown []string
	for _, key := range layer.Keys() {
		if _, err := GetKeySchema(key); err != nil {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	fmt.Fprintf(warningWriter, "Warning: Unknown keys in %s: %s\n", path, strings.Join(unknown, ", "))
	fmt.Fprintf(warningWriter, "  Run 'ccclog config keys' for all options.\n\n")
}

// loadEnvironmentConfig loads environment variable overrides.
// List keys accept comma separated values: CCCLOG_IGNORE_TYPES=chore,ci
func loadEnvironmentConfig(k *koanf.Koanf, sources map[string]ConfigSource) error {
	layer := koanf.New(".")
	if err := layer.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return mergeLayer(k, layer, sources, SourceEnv)
}

// loadOverrides applies command-line flag values on top of every other layer
func loadOverrides(k *koanf.Koanf, sources map[string]ConfigSource, overrides map[string]any) error {
	for key, value := range overrides {
		if _, err := GetKeySchema(key); err != nil {
			return err
		}
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("applying flag %s: %w", key, err)
		}
		sources[key] = SourceFlag
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys and splits list values
// Example: CCCLOG_IGNORE_TYPES=chore,ci -> ignore_types: [chore ci]
func envTransform(key, value string) (string, any) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	schema, err := GetKeySchema(name)
	if err != nil {
		return "", nil
	}
	if schema.Type == TypeList {
		return name, splitList(value)
	}
	return name, value
}

// splitList splits a comma separated value, dropping empty items
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
