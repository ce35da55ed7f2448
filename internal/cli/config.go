package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/ccclog/internal/config"
	clierrors "github.com/ariel-frischer/ccclog/internal/errors"
	"github.com/ariel-frischer/ccclog/internal/history"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ccclog configuration",
	Long: `Manage ccclog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (CCCLOG_*)
  3. Project config (.ccclog.yml in the repository root)
  4. User config (~/.config/ccclog/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  ccclog config show --sources

  # Set a value in the project config
  ccclog config set root_indent_level 1

  # Create a commented user config
  ccclog config init --user`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every configuration key",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printConfigKeys(cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a value in the project config, or the user config with --user.
The value is validated against the key's type before the file is written.
List values are comma-separated.`,
	Example: `  ccclog config set ignore_types chore,ci
  ccclog config set --user enable_email_link true`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(2)(cmd, args); err != nil {
			return invalidArguments(err)
		}
		return nil
	},
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file with the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert a legacy .ccclog.json to .ccclog.yml",
	Args:  cobra.NoArgs,
	RunE:  runConfigMigrate,
}

func init() {
	configCmd.GroupID = GroupConfiguration

	configShowCmd.Flags().Bool("sources", false, "Annotate each value with the layer that set it")
	configSetCmd.Flags().Bool("user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().Bool("user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configMigrateCmd.Flags().Bool("dry-run", false, "Report the planned migration without writing")

	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd, configInitCmd, configMigrateCmd)
	rootCmd.AddCommand(configCmd)
}

// currentProjectRoot returns the working tree root of the repository
// containing the current directory, or "." outside a repository.
func currentProjectRoot() string {
	repo, err := history.Open(".")
	if err != nil {
		return "."
	}
	return projectRoot(repo, ".")
}

// targetConfigPath returns the file config set and config init write to.
func targetConfigPath(cmd *cobra.Command) (string, error) {
	user, _ := cmd.Flags().GetBool("user")
	if user {
		return config.UserConfigPath()
	}
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.ProjectConfigPathIn(currentProjectRoot()), nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, currentProjectRoot(), false)
	if err != nil {
		return err
	}
	sources, _ := cmd.Flags().GetBool("sources")
	return printConfig(cmd.OutOrStdout(), cfg, sources)
}

// printConfig writes cfg as YAML in key order. With sources set every
// value carries a comment naming its layer.
func printConfig(w io.Writer, cfg *config.Configuration, sources bool) error {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	if sources {
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key := doc.Content[i]
			doc.Content[i+1].LineComment = string(cfg.SourceOf(key.Value))
		}
		if cfg.TagPrefix == nil {
			fmt.Fprintln(w, "# tag_prefix: not set, version scheme is auto-detected")
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return enc.Close()
}

func printConfigKeys(w io.Writer) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, schema := range config.SortedKeys() {
		fmt.Fprintf(w, "%s (%s)\n", bold(schema.Path), schema.Type)
		fmt.Fprintf(w, "  %s\n", schema.Description)
		if len(schema.AllowedValues) > 0 {
			fmt.Fprintf(w, "  %s %v\n", dim("values:"), schema.AllowedValues)
		}
		if schema.Default != nil {
			fmt.Fprintf(w, "  %s %v\n", dim("default:"), schema.Default)
		}
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := targetConfigPath(cmd)
	if err != nil {
		return err
	}
	if err := config.SetConfigValue(path, args[0], args[1]); err != nil {
		var unknown config.ErrUnknownKey
		if errors.As(err, &unknown) {
			return invalidArguments(clierrors.NewArgumentError(err.Error(),
				"List the valid keys with: ccclog config keys"))
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := targetConfigPath(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (use --force to overwrite)\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	root := currentProjectRoot()

	result, err := config.MigrateProjectConfig(root, dryRun)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	if !result.Success || dryRun {
		return nil
	}
	if err := config.RemoveLegacyConfig(result.SourcePath, dryRun); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s to %s.bak\n", result.SourcePath, result.SourcePath)
	return nil
}
