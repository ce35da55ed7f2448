package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/ccclog/internal/changelog"
	"github.com/ariel-frischer/ccclog/internal/conventional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolated returns options that never touch the real user config.
func isolated(t *testing.T) LoadOptions {
	t.Helper()
	dir := t.TempDir()
	return LoadOptions{
		ProjectConfigPath: filepath.Join(dir, ProjectConfigFile),
		UserConfigPath:    filepath.Join(dir, "user", "config.yml"),
		WarningWriter:     &bytes.Buffer{},
	}
}

func TestLoad_Defaults(t *testing.T) {
	opts := isolated(t)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)

	assert.False(t, cfg.Reverse)
	assert.Equal(t, changelog.DefaultRootIndentLevel, cfg.RootIndentLevel)
	assert.False(t, cfg.EnableEmailLink)
	assert.Empty(t, cfg.IgnoreSummary)
	assert.Empty(t, cfg.IgnoreTypes)
	assert.Nil(t, cfg.TagPrefix)
	assert.Empty(t, cfg.ExcludeTags)
	assert.False(t, cfg.IncludeMerges)
	assert.False(t, cfg.All)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Empty(t, cfg.Output)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, SourceDefault, cfg.SourceOf("remote"))
}

func TestLoad_LayerPriority(t *testing.T) {
	opts := isolated(t)
	writeFile(t, filepath.Dir(opts.UserConfigPath), "config.yml",
		"reverse: true\nroot_indent_level: 3\nremote: upstream\n")
	writeFile(t, filepath.Dir(opts.ProjectConfigPath), ProjectConfigFile,
		"root_indent_level: 4\nignore_types: [chore, ci]\ntag_prefix: \"web-\"\n")
	t.Setenv("CCCLOG_ROOT_INDENT_LEVEL", "5")
	t.Setenv("CCCLOG_EXCLUDE_TAGS", "*-rc*, nightly")
	opts.Overrides = map[string]any{"all": true}

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)

	assert.True(t, cfg.Reverse)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, 5, cfg.RootIndentLevel)
	assert.Equal(t, []string{"chore", "ci"}, cfg.IgnoreTypes)
	require.NotNil(t, cfg.TagPrefix)
	assert.Equal(t, "web-", *cfg.TagPrefix)
	assert.Equal(t, []string{"*-rc*", "nightly"}, cfg.ExcludeTags)
	assert.True(t, cfg.All)

	assert.Equal(t, SourceUser, cfg.SourceOf("reverse"))
	assert.Equal(t, SourceProject, cfg.SourceOf("ignore_types"))
	assert.Equal(t, SourceEnv, cfg.SourceOf("root_indent_level"))
	assert.Equal(t, SourceFlag, cfg.SourceOf("all"))
	assert.Equal(t, SourceDefault, cfg.SourceOf("format"))
}

func TestLoad_FlagsWinOverEnv(t *testing.T) {
	opts := isolated(t)
	t.Setenv("CCCLOG_FORMAT", "json")
	opts.Overrides = map[string]any{"format": "yaml"}

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoad_EmptyTagPrefixSelectsBareScheme(t *testing.T) {
	opts := isolated(t)
	writeFile(t, filepath.Dir(opts.ProjectConfigPath), ProjectConfigFile, "tag_prefix: \"\"\n")

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	require.NotNil(t, cfg.TagPrefix)
	assert.Equal(t, "", *cfg.TagPrefix)
}

func TestLoad_SkipUserConfig(t *testing.T) {
	opts := isolated(t)
	writeFile(t, filepath.Dir(opts.UserConfigPath), "config.yml", "reverse: true\n")
	opts.SkipUserConfig = true

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.False(t, cfg.Reverse)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		project   string
		overrides map[string]any
		wantField string
		wantLine  bool
	}{
		"yaml syntax error": {
			project:  "reverse: true\nignore_types: [chore\n",
			wantLine: true,
		},
		"indent level too high": {
			project:   "root_indent_level: 6\n",
			wantField: "root_indent_level",
		},
		"indent level too low": {
			overrides: map[string]any{"root_indent_level": 0},
			wantField: "root_indent_level",
		},
		"bad regular expression": {
			project:   "ignore_summary: \"(unclosed\"\n",
			wantField: "ignore_summary",
		},
		"unknown format": {
			project:   "format: html\n",
			wantField: "format",
		},
		"bad exclude glob": {
			project:   "exclude_tags: [\"[\"]\n",
			wantField: "exclude_tags",
		},
		"empty remote": {
			project:   "remote: \"\"\n",
			wantField: "remote",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			opts := isolated(t)
			if tt.project != "" {
				writeFile(t, filepath.Dir(opts.ProjectConfigPath), ProjectConfigFile, tt.project)
			}
			opts.Overrides = tt.overrides

			_, err := LoadWithOptions(opts)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			if tt.wantLine {
				assert.Positive(t, verr.Line)
			}
		})
	}
}

func TestLoad_UnknownOverride(t *testing.T) {
	opts := isolated(t)
	opts.Overrides = map[string]any{"colour": true}

	_, err := LoadWithOptions(opts)
	require.Error(t, err)
	assert.ErrorAs(t, err, &ErrUnknownKey{})
}

func TestLoad_WarnsAboutUnknownKeys(t *testing.T) {
	opts := isolated(t)
	writeFile(t, filepath.Dir(opts.ProjectConfigPath), ProjectConfigFile, "reverse: true\ncolour: red\n")
	var warnings bytes.Buffer
	opts.WarningWriter = &warnings

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.True(t, cfg.Reverse)
	assert.Contains(t, warnings.String(), "Unknown keys")
	assert.Contains(t, warnings.String(), "colour")

	warnings.Reset()
	opts.SkipWarnings = true
	_, err = LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Empty(t, warnings.String())
}

func TestLoad_LegacyJSONProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LegacyProjectConfigFile, `{"reverse": true, "ignore_types": ["chore"]}`)
	chdir(t, dir)

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{
		UserConfigPath: filepath.Join(dir, "none.yml"),
		WarningWriter:  &warnings,
	})
	require.NoError(t, err)
	assert.True(t, cfg.Reverse)
	assert.Equal(t, []string{"chore"}, cfg.IgnoreTypes)
	assert.Equal(t, SourceProject, cfg.SourceOf("reverse"))
	assert.Contains(t, warnings.String(), "deprecated JSON config")

	writeFile(t, dir, ProjectConfigFile, "reverse: false\n")
	warnings.Reset()
	cfg, err = LoadWithOptions(LoadOptions{
		UserConfigPath: filepath.Join(dir, "none.yml"),
		WarningWriter:  &warnings,
	})
	require.NoError(t, err)
	assert.False(t, cfg.Reverse)
	assert.Contains(t, warnings.String(), "Legacy JSON config found")
}

func TestConfiguration_Helpers(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{
		IgnoreSummary: "^wip",
		IgnoreTypes:   []string{"chore", "others", "deps"},
		Format:        "yml",
	}

	re, err := cfg.IgnoreSummaryPattern()
	require.NoError(t, err)
	assert.True(t, re.MatchString("wip: stuff"))

	assert.Equal(t, []conventional.CommitType{
		conventional.Chore,
		conventional.Others,
		conventional.Custom("deps"),
	}, cfg.IgnoredTypes())

	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, changelog.FormatYAML, format)

	empty := &Configuration{}
	re, err = empty.IgnoreSummaryPattern()
	require.NoError(t, err)
	assert.Nil(t, re)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key       string
		value     string
		wantKey   string
		wantValue any
	}{
		"scalar":          {key: "CCCLOG_REMOTE", value: "upstream", wantKey: "remote", wantValue: "upstream"},
		"list":            {key: "CCCLOG_IGNORE_TYPES", value: "chore,,ci ", wantKey: "ignore_types", wantValue: []string{"chore", "ci"}},
		"empty list":      {key: "CCCLOG_EXCLUDE_TAGS", value: "", wantKey: "exclude_tags", wantValue: []string{}},
		"unrelated value": {key: "CCCLOG_ASCII", value: "1", wantKey: ""},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			key, value := envTransform(tt.key, tt.value)
			assert.Equal(t, tt.wantKey, key)
			if tt.wantKey != "" {
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestDefaultTemplateMatchesDefaults(t *testing.T) {
	opts := isolated(t)
	writeFile(t, filepath.Dir(opts.ProjectConfigPath), ProjectConfigFile, GetDefaultConfigTemplate())
	var warnings bytes.Buffer
	opts.WarningWriter = &warnings

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Empty(t, warnings.String())

	for key, want := range GetDefaults() {
		schema, err := GetKeySchema(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, schema.Default, key)
	}
	assert.Equal(t, "origin", cfg.Remote)
	assert.Nil(t, cfg.TagPrefix)
}
