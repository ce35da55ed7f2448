package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ccclog/internal/changelog"
	"github.com/ariel-frischer/ccclog/internal/config"
	clierrors "github.com/ariel-frischer/ccclog/internal/errors"
	"github.com/ariel-frischer/ccclog/internal/history"
	"github.com/ariel-frischer/ccclog/internal/progress"
	"github.com/ariel-frischer/ccclog/internal/release"
)

// generateFlags maps generate flags to configuration keys. Only flags the
// user set are applied, so unset flags never hide file or env values.
var generateFlags = map[string]string{
	"reverse":           "reverse",
	"root-indent-level": "root_indent_level",
	"enable-email-link": "enable_email_link",
	"ignore-summary":    "ignore_summary",
	"ignore-types":      "ignore_types",
	"tag-prefix":        "tag_prefix",
	"exclude-tag":       "exclude_tags",
	"include-merges":    "include_merges",
	"all":               "all",
	"format":            "format",
	"output":            "output",
	"remote":            "remote",
}

func registerGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolP("reverse", "r", false, "List commits oldest first within each section")
	f.Int("root-indent-level", changelog.DefaultRootIndentLevel, "Heading level of release headings (1-5)")
	f.Bool("enable-email-link", false, "Link author names to their email address")
	f.String("ignore-summary", "", "Drop commits whose summary matches this regular expression")
	f.StringSlice("ignore-types", nil, "Drop commits of these types (e.g. chore,ci)")
	f.String("tag-prefix", "", `Version scheme to use, e.g. "v" or "api-" (empty string selects bare versions)`)
	f.StringSlice("exclude-tag", nil, "Ignore tags matching this glob (repeatable)")
	f.Bool("include-merges", false, "Keep merge commits")
	f.BoolP("all", "a", false, "Include every release down to the first commit")
	f.StringP("format", "f", string(changelog.FormatMarkdown), "Output format: markdown, json, yaml, text")
	f.StringP("output", "o", "", "Write the changelog to this file instead of stdout")
	f.String("remote", "origin", "Remote used for compare and commit links")
}

// generateArgs accepts an optional path followed by an optional range. A
// single argument is a range when it is not a directory and contains "..".
func generateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func splitArgs(args []string) (path, revspec string) {
	switch len(args) {
	case 0:
		return ".", ""
	case 1:
		if info, err := os.Stat(args[0]); err != nil || !info.IsDir() {
			if strings.Contains(args[0], "..") {
				return ".", args[0]
			}
		}
		return args[0], ""
	}
	return args[0], args[1]
}

// flagOverrides collects the generate flags the user set, keyed by
// configuration key.
func flagOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)
	flags := cmd.Flags()
	for name, key := range generateFlags {
		if !flags.Changed(name) {
			continue
		}
		schema, err := config.GetKeySchema(key)
		if err != nil {
			return nil, err
		}

		var value any
		switch schema.Type {
		case config.TypeBool:
			value, err = flags.GetBool(name)
		case config.TypeInt:
			value, err = flags.GetInt(name)
		case config.TypeList:
			value, err = flags.GetStringSlice(name)
		default:
			value, err = flags.GetString(name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", name, err)
		}
		overrides[key] = value
	}
	return overrides, nil
}

// openRepository opens the repository containing path.
func openRepository(path string) (*history.Repository, error) {
	repo, err := history.Open(path)
	if err != nil {
		return nil, &repositoryError{Path: path, Err: err}
	}
	return repo, nil
}

// projectRoot returns the working tree root of repo, falling back to path
// for bare or in-memory repositories.
func projectRoot(repo *history.Repository, path string) string {
	gitDir := repo.GitDir()
	if filepath.Base(gitDir) == ".git" {
		return filepath.Dir(gitDir)
	}
	return path
}

// loadConfig loads the configuration of the project at dir with the flags
// of cmd applied on top.
func loadConfig(cmd *cobra.Command, dir string, withFlags bool) (*config.Configuration, error) {
	opts := config.LoadOptions{
		ProjectConfigPath: cfgFile,
		ProjectDir:        dir,
		WarningWriter:     cmd.ErrOrStderr(),
	}
	if withFlags {
		overrides, err := flagOverrides(cmd)
		if err != nil {
			return nil, err
		}
		opts.Overrides = overrides
	}
	return config.LoadWithOptions(opts)
}

// generator renders changelogs of one repository with one configuration.
type generator struct {
	repo    *history.Repository
	cfg     *config.Configuration
	revspec string
	format  changelog.Format
	filter  release.Filter
	plain   bool
	ascii   bool
}

func newGenerator(repo *history.Repository, cfg *config.Configuration, revspec string) (*generator, error) {
	pattern, err := cfg.IgnoreSummaryPattern()
	if err != nil {
		return nil, &ExitError{
			Code: ExitInvalidArguments,
			Err:  clierrors.InvalidIgnorePattern(cfg.IgnoreSummary, errors.Unwrap(err)),
		}
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, invalidArguments(err)
	}

	caps := progress.DetectTerminalCapabilities(os.Stdout)
	return &generator{
		repo:    repo,
		cfg:     cfg,
		revspec: revspec,
		format:  format,
		filter: release.Filter{
			IgnoreSummary: pattern,
			IgnoreTypes:   cfg.IgnoredTypes(),
			ExcludeMerges: !cfg.IncludeMerges,
		},
		plain: color.NoColor || cfg.Output != "" || !caps.SupportsColor,
		ascii: !caps.SupportsUnicode,
	}, nil
}

// Render scans history and returns the formatted changelog.
func (g *generator) Render(ctx context.Context) ([]byte, error) {
	scan, err := g.repo.Scan(ctx, history.ScanOptions{
		RevisionSpec:  g.revspec,
		All:           g.cfg.All,
		IncludeMerges: g.cfg.IncludeMerges,
		TagPrefix:     g.cfg.TagPrefix,
		ExcludeTags:   g.cfg.ExcludeTags,
	})
	if err != nil {
		return nil, err
	}
	logDebug("[cli] scanned %d commits, boundary %s", len(scan.Commits), scan.Boundary)

	buckets := release.Partition(scan.Commits, scan.Boundary, release.Options{
		Reverse: g.cfg.Reverse,
		Filter:  g.filter,
	})

	remote, err := g.repo.RemoteURL(g.cfg.Remote)
	if err != nil {
		return nil, err
	}
	doc := changelog.Build(buckets, changelog.BuildOptions{Repo: changelog.ParseRepoURL(remote)})

	var buf bytes.Buffer
	err = changelog.Write(doc, &buf, g.format, changelog.WriteOptions{
		Render: changelog.RenderOptions{
			RootIndentLevel: g.cfg.RootIndentLevel,
			EmailLinks:      g.cfg.EnableEmailLink,
		},
		Terminal: changelog.FormatOptions{
			Plain: g.plain,
			ASCII: g.ascii,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("rendering changelog: %w", err)
	}
	return buf.Bytes(), nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path, revspec := splitArgs(args)

	repo, err := openRepository(path)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, projectRoot(repo, path), true)
	if err != nil {
		return err
	}
	gen, err := newGenerator(repo, cfg, revspec)
	if err != nil {
		return err
	}

	spin := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities(os.Stderr), !debugFlag)
	spin.Start("Reading history")
	out, err := gen.Render(cmd.Context())
	spin.Stop()
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	if err := writeOutput(cfg.Output, out); err != nil {
		return err
	}
	logDebug("[cli] wrote %s", cfg.Output)
	return nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return clierrors.FileNotWritable(path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	return nil
}
