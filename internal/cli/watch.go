package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/ccclog/internal/errors"
	"github.com/ariel-frischer/ccclog/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path] [<from>..<to>]",
	Short: "Regenerate a changelog file whenever tags or branches change",
	Long: `Watch the references of a repository and rewrite the output file after every
commit, tag or branch update. The file is only written when its content
changes. Stop with Ctrl-C.`,
	Example: `  ccclog watch -o CHANGELOG.md
  ccclog watch ../service --all -o docs/CHANGELOG.md`,
	Args:         generateArgs,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	watchCmd.GroupID = GroupGenerate
	registerGenerateFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, revspec := splitArgs(args)

	repo, err := openRepository(path)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, projectRoot(repo, path), true)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		return invalidArguments(clierrors.NewArgumentError(
			"watch needs an output file",
			"Pass one with: ccclog watch -o CHANGELOG.md",
			"Or set output in .ccclog.yml",
		))
	}
	gen, err := newGenerator(repo, cfg, revspec)
	if err != nil {
		return err
	}

	gitDir := repo.GitDir()
	if gitDir == "" {
		return fmt.Errorf("repository at %s has no git directory to watch", path)
	}
	w, err := watch.NewRefWatcher(gitDir)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s, writing %s\n", gitDir, cfg.Output)
	err = w.Run(cmd.Context(), func(ctx context.Context) error {
		changed, err := regenerate(ctx, gen, cfg.Output)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(cmd.ErrOrStderr(), "Updated %s\n", cfg.Output)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// regenerate renders the changelog and writes it to path when it differs
// from the current content.
func regenerate(ctx context.Context, gen *generator, path string) (bool, error) {
	out, err := gen.Render(ctx)
	if err != nil {
		return false, err
	}
	current, err := os.ReadFile(path)
	if err == nil && bytes.Equal(current, out) {
		return false, nil
	}
	if err := writeOutput(path, out); err != nil {
		return false, err
	}
	return true, nil
}
