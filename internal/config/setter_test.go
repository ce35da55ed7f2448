package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseKeyPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path    string
		want    []string
		wantErr error
	}{
		"single key": {
			path: "root_indent_level",
			want: []string{"root_indent_level"},
		},
		"dotted key": {
			path: "links.email",
			want: []string{"links", "email"},
		},
		"empty string": {
			path:    "",
			wantErr: ErrEmptyKeyPath,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKeyPath(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetNestedValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		initialYAML  string
		keyPath      []string
		value        interface{}
		expectedYAML string
	}{
		"set string on empty document": {
			keyPath:      []string{"remote"},
			value:        "upstream",
			expectedYAML: "remote: upstream\n",
		},
		"set int": {
			keyPath:      []string{"root_indent_level"},
			value:        3,
			expectedYAML: "root_indent_level: 3\n",
		},
		"set list": {
			keyPath:      []string{"ignore_types"},
			value:        []string{"chore", "ci"},
			expectedYAML: "ignore_types:\n    - chore\n    - ci\n",
		},
		"update existing value": {
			initialYAML:  "remote: origin\n",
			keyPath:      []string{"remote"},
			value:        "upstream",
			expectedYAML: "remote: upstream\n",
		},
		"append after existing keys": {
			initialYAML:  "reverse: true\n",
			keyPath:      []string{"all"},
			value:        true,
			expectedYAML: "reverse: true\nall: true\n",
		},
		"create nested mapping": {
			keyPath:      []string{"links", "email"},
			value:        true,
			expectedYAML: "links:\n    email: true\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var root yaml.Node
			if tt.initialYAML != "" {
				require.NoError(t, yaml.Unmarshal([]byte(tt.initialYAML), &root))
			}

			require.NoError(t, SetNestedValue(&root, tt.keyPath, tt.value))

			out, err := yaml.Marshal(&root)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedYAML, string(out))
		})
	}
}

func TestSetNestedValue_NotAMapping(t *testing.T) {
	t.Parallel()

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("remote: origin\n"), &root))

	err := SetNestedValue(&root, []string{"remote", "name"}, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote is not a mapping")
}

func TestGetNestedValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml    string
		keyPath []string
		want    string
		wantNil bool
	}{
		"top-level":   {yaml: "remote: origin\n", keyPath: []string{"remote"}, want: "origin"},
		"nested":      {yaml: "links:\n  email: true\n", keyPath: []string{"links", "email"}, want: "true"},
		"missing key": {yaml: "remote: origin\n", keyPath: []string{"format"}, wantNil: true},
		"through scalar": {
			yaml:    "remote: origin\n",
			keyPath: []string{"remote", "name"},
			wantNil: true,
		},
		"empty path": {yaml: "remote: origin\n", keyPath: []string{}, wantNil: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var root yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.yaml), &root))

			got := GetNestedValue(&root, tt.keyPath)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestSetConfigValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		initialContent string
		key            string
		value          string
		wantContains   []string
		errContain     string
	}{
		"set new int": {
			key:          "root_indent_level",
			value:        "3",
			wantContains: []string{"root_indent_level: 3"},
		},
		"set list from comma separated value": {
			key:          "ignore_types",
			value:        "chore, ci",
			wantContains: []string{"ignore_types:", "- chore", "- ci"},
		},
		"update existing value": {
			initialContent: "remote: origin\n",
			key:            "remote",
			value:          "upstream",
			wantContains:   []string{"remote: upstream"},
		},
		"enum value": {
			key:          "format",
			value:        "json",
			wantContains: []string{"format: json"},
		},
		"unknown key": {
			key:        "unknown",
			value:      "value",
			errContain: "unknown configuration key",
		},
		"invalid integer": {
			key:        "root_indent_level",
			value:      "deep",
			errContain: "invalid integer",
		},
		"invalid boolean": {
			key:        "reverse",
			value:      "yes",
			errContain: "invalid boolean",
		},
		"invalid enum": {
			key:        "format",
			value:      "html",
			errContain: "valid options: markdown, json, yaml, text",
		},
		"broken existing file": {
			initialContent: "remote: [origin\n",
			key:            "remote",
			value:          "upstream",
			errContain:     "config.yml",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			configPath := filepath.Join(t.TempDir(), "config.yml")
			if tt.initialContent != "" {
				require.NoError(t, os.WriteFile(configPath, []byte(tt.initialContent), 0o644))
			}

			err := SetConfigValue(configPath, tt.key, tt.value)
			if tt.errContain != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)

			content, err := os.ReadFile(configPath)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(content), want)
			}
		})
	}
}

func TestSetConfigValueCreatesFile(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "subdir", "config.yml")
	require.NoError(t, SetConfigValue(configPath, "reverse", "true"))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "reverse: true\n", string(content))
}

func TestSetConfigValuePreservesComments(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "config.yml")
	initialContent := "# Release headings\nroot_indent_level: 2 # h2\nremote: origin\n"
	require.NoError(t, os.WriteFile(configPath, []byte(initialContent), 0o644))

	require.NoError(t, SetConfigValue(configPath, "root_indent_level", "1"))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Release headings")
	assert.Contains(t, string(content), "root_indent_level: 1")
	assert.Contains(t, string(content), "remote: origin")
}
