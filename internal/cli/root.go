// Package cli wires the ccclog commands.
package cli

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ccclog/internal/config"
	clierrors "github.com/ariel-frischer/ccclog/internal/errors"
	"github.com/ariel-frischer/ccclog/internal/history"
	"github.com/ariel-frischer/ccclog/internal/progress"
	"github.com/ariel-frischer/ccclog/internal/watch"
)

// Command groups shown in help output.
const (
	GroupGenerate      = "generate"
	GroupConfiguration = "configuration"
	GroupInternal      = "internal"
)

var (
	cfgFile     string
	debugFlag   bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "ccclog [path] [<from>..<to>]",
	Short: "Generate a changelog from conventional commits",
	Long: `ccclog reads the history of a git repository, splits it into releases at
semantic version tags and prints a markdown changelog grouped by conventional
commit type.

Without a range, the changelog covers the latest release and everything after
it. Use --all for the whole history or pass an explicit two-dot range.`,
	Example: `  # Changelog of the current repository
  ccclog

  # Whole history, written to a file
  ccclog --all -o CHANGELOG.md

  # A specific range of another repository
  ccclog ../service v1.0.0..v1.2.0

  # Only the api- tags of a monorepo
  ccclog --tag-prefix api-`,
	Args:             generateArgs,
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRun: setupGlobals,
	RunE:             runGenerate,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGenerate, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupInternal)
	rootCmd.SetCompletionCommandGroupID(GroupInternal)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Project config file (default: .ccclog.yml in the repository root)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidArguments(err)
	})

	registerGenerateFlags(rootCmd)
}

// setupGlobals applies the persistent flags before any command runs.
func setupGlobals(cmd *cobra.Command, _ []string) {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	if !debugFlag {
		return
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	debug := func(format string, args ...any) {
		logger.Printf(format, args...)
	}
	history.SetDebugLogger(debug)
	config.SetDebugLogger(debug)
	watch.SetDebugLogger(debug)
	logDebug = debug
}

// logDebug is replaced by setupGlobals when --debug is set.
var logDebug = func(string, ...any) {}

// Execute runs the root command with a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and prints a formatted error on failure.
// The returned error carries the exit code, see ExitCode.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	caps := progress.DetectTerminalCapabilities(os.Stderr)
	clierrors.FprintError(w, toCLIError(err), clierrors.FormatOptions{
		Plain: color.NoColor || !caps.SupportsColor,
		ASCII: !caps.SupportsUnicode,
	})
}
