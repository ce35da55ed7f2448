package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content  *string
		wantErr  bool
		wantLine bool
	}{
		"valid":        {content: strPtr("reverse: true\nremote: origin\n")},
		"empty file":   {content: strPtr("   \n")},
		"missing file": {},
		"unclosed flow sequence": {
			content:  strPtr("ignore_types: [chore\n"),
			wantErr:  true,
			wantLine: true,
		},
		"bad indentation": {
			content:  strPtr("reverse: true\n  remote: origin\n"),
			wantErr:  true,
			wantLine: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.yml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, path, verr.FilePath)
			if tt.wantLine {
				assert.Positive(t, verr.Line)
				assert.Contains(t, err.Error(), path+":")
			}
		})
	}
}

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateYAMLSyntaxFromBytes([]byte("format: json\n"), "x.yml"))
	assert.NoError(t, ValidateYAMLSyntaxFromBytes(nil, "x.yml"))
	assert.Error(t, ValidateYAMLSyntaxFromBytes([]byte("format: [json\n"), "x.yml"))
}

func TestValidateConfigValues(t *testing.T) {
	t.Parallel()

	valid := func() Configuration {
		return Configuration{RootIndentLevel: 2, Format: "markdown", Remote: "origin"}
	}

	tests := map[string]struct {
		mutate    func(*Configuration)
		wantField string
		wantMsg   string
	}{
		"valid":             {mutate: func(*Configuration) {}},
		"min indent":        {mutate: func(c *Configuration) { c.RootIndentLevel = 0 }, wantField: "root_indent_level", wantMsg: "must be at least 1"},
		"max indent":        {mutate: func(c *Configuration) { c.RootIndentLevel = 9 }, wantField: "root_indent_level", wantMsg: "must be at most 5"},
		"missing remote":    {mutate: func(c *Configuration) { c.Remote = "" }, wantField: "remote", wantMsg: "is required"},
		"regex":             {mutate: func(c *Configuration) { c.IgnoreSummary = "a(b" }, wantField: "ignore_summary", wantMsg: "invalid regular expression"},
		"format alias":      {mutate: func(c *Configuration) { c.Format = "md" }},
		"unknown format":    {mutate: func(c *Configuration) { c.Format = "pdf" }, wantField: "format", wantMsg: "unknown output format"},
		"bad exclude glob":  {mutate: func(c *Configuration) { c.ExcludeTags = []string{"v[1"} }, wantField: "exclude_tags", wantMsg: "invalid exclude pattern"},
		"good exclude glob": {mutate: func(c *Configuration) { c.ExcludeTags = []string{"**/*-rc.*"} }},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)

			err := ValidateConfigValues(&cfg, ".ccclog.yml")
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Contains(t, verr.Message, tt.wantMsg)
			assert.Contains(t, err.Error(), "field '"+tt.wantField+"'")
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "root_indent_level", toSnakeCase("RootIndentLevel"))
	assert.Equal(t, "remote", toSnakeCase("Remote"))
}

func strPtr(s string) *string {
	return &s
}
