package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ccclog/internal/config"
	"github.com/ariel-frischer/ccclog/internal/history"
	"github.com/ariel-frischer/ccclog/internal/semtag"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [path]",
	Short: "List version tags and the selected version scheme",
	Long: `List the tags of a repository that parse as semantic versions, grouped by
prefix, and show which scheme ccclog selects when generating a changelog.

Tags that are not versions and tags dropped by exclude_tags are listed
separately.`,
	Example: `  ccclog tags
  ccclog tags ../monorepo --tag-prefix api-`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
			return invalidArguments(err)
		}
		return nil
	},
	SilenceUsage: true,
	RunE:         runTags,
}

func init() {
	tagsCmd.GroupID = GroupGenerate
	tagsCmd.Flags().String("tag-prefix", "", "Version scheme to select")
	tagsCmd.Flags().StringSlice("exclude-tag", nil, "Ignore tags matching this glob (repeatable)")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	repo, err := openRepository(path)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, projectRoot(repo, path), false)
	if err != nil {
		return err
	}
	if err := applyTagFlags(cmd, cfg); err != nil {
		return err
	}

	tags, err := repo.Tags(cmd.Context())
	if err != nil {
		return err
	}
	set, err := history.ParseVersions(tags, cfg.ExcludeTags)
	if err != nil {
		return invalidArguments(err)
	}

	sel, err := set.Resolve(cfg.TagPrefix)
	if err != nil && !errors.Is(err, semtag.ErrAmbiguousVersionScheme) {
		return err
	}
	printTags(cmd.OutOrStdout(), set, sel, err)
	return nil
}

// applyTagFlags copies --tag-prefix and --exclude-tag onto cfg when set.
func applyTagFlags(cmd *cobra.Command, cfg *config.Configuration) error {
	flags := cmd.Flags()
	if flags.Changed("tag-prefix") {
		prefix, err := flags.GetString("tag-prefix")
		if err != nil {
			return err
		}
		cfg.TagPrefix = &prefix
	}
	if flags.Changed("exclude-tag") {
		patterns, err := flags.GetStringSlice("exclude-tag")
		if err != nil {
			return err
		}
		if err := history.ValidateExcludePatterns(patterns); err != nil {
			return invalidArguments(err)
		}
		cfg.ExcludeTags = patterns
	}
	return nil
}

// printTags writes versions grouped by prefix. sel is nil when resolveErr
// reports an ambiguous scheme.
func printTags(w io.Writer, set *history.VersionSet, sel *history.Selection, resolveErr error) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	byPrefix := make(map[string][]history.TaggedVersion)
	for _, tv := range set.Tagged {
		p := tv.Version.Prefix()
		byPrefix[p] = append(byPrefix[p], tv)
	}
	prefixes := set.Versions().Prefixes()

	if len(prefixes) == 0 {
		fmt.Fprintln(w, "No version tags found.")
	}
	for _, p := range prefixes {
		label := fmt.Sprintf("%q", p)
		if sel != nil && len(sel.Versions) > 0 && sel.Prefix == p {
			label += " " + green("(selected)")
		}
		fmt.Fprintf(w, "%s %s\n", bold("prefix"), label)

		versions := byPrefix[p]
		slices.SortFunc(versions, func(a, b history.TaggedVersion) int {
			return b.Version.Compare(a.Version)
		})
		for _, tv := range versions {
			fmt.Fprintf(w, "  %-24s %s\n", tv.Version.String(), dim(tv.Commit.String()[:7]))
		}
		fmt.Fprintln(w)
	}

	if resolveErr != nil {
		fmt.Fprintf(w, "No scheme selected: %v\n", resolveErr)
		fmt.Fprintln(w, "Choose one with --tag-prefix or tag_prefix in .ccclog.yml.")
		fmt.Fprintln(w)
	}

	printTagList(w, bold("Not a version:"), set.Invalid)
	printTagList(w, bold("Excluded:"), set.Excluded)
}

func printTagList(w io.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
	fmt.Fprintln(w)
}
