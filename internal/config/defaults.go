package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# ccclog Configuration
# See 'ccclog config -h' for commands, 'ccclog config keys' for all options

# Range selection
all: false                            # Walk the whole history instead of the latest release
include_merges: false                 # Keep merge commits
# tag_prefix: "v"                     # Version scheme to use when tags mix prefixes
exclude_tags: []                      # Glob patterns of tags that are not releases (e.g. "*-rc*")

# Filtering
ignore_summary: ""                    # Regular expression matched against commit descriptions
ignore_types: []                      # Commit types to drop (e.g. chore, ci, others)

# Rendering
reverse: false                        # Oldest commit first inside each section
root_indent_level: 2                  # Heading level of releases (1-5)
enable_email_link: false              # Render authors as mailto links
format: markdown                      # markdown | json | yaml | text
output: ""                            # Output file (empty = stdout)
remote: origin                        # Remote used for compare and commit links
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"reverse":           false,
		"root_indent_level": 2,
		"enable_email_link": false,
		"ignore_summary":    "",
		"ignore_types":      []string{},
		// tag_prefix has no default: absence means auto-detect the scheme.
		"exclude_tags":   []string{},
		"include_merges": false,
		"all":            false,
		"format":         "markdown",
		"output":         "",
		"remote":         "origin",
	}
}
