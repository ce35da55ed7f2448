package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/ccclog/internal/config"
	"github.com/ariel-frischer/ccclog/internal/history"
)

func TestRegenerate_WritesOnlyOnChange(t *testing.T) {
	isolateConfig(t)
	f := releasedHistory(t)
	out := filepath.Join(t.TempDir(), "CHANGELOG.md")

	repo, err := history.Open(f.dir)
	require.NoError(t, err)
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir:     f.dir,
		SkipUserConfig: true,
		Overrides:      map[string]any{"output": out},
	})
	require.NoError(t, err)
	gen, err := newGenerator(repo, cfg, "")
	require.NoError(t, err)

	ctx := context.Background()
	changed, err := regenerate(ctx, gen, out)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = regenerate(ctx, gen, out)
	require.NoError(t, err)
	assert.False(t, changed)

	f.tag("0.3.0", f.commit("feat: third feature"))
	changed, err = regenerate(ctx, gen, out)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## 0.3.0 - 2020-04-29")
	assert.Contains(t, string(data), "third feature")
}

func TestWatch_RequiresOutput(t *testing.T) {
	isolateConfig(t)
	f := releasedHistory(t)

	cmd := &cobra.Command{Use: "watch", Args: generateArgs, RunE: runWatch}
	registerGenerateFlags(cmd)

	_, _, err := execute(t, cmd, f.dir)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Contains(t, toCLIError(err).Message, "output file")
}
