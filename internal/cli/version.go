package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ccclog/internal/build"
	"github.com/ariel-frischer/ccclog/internal/progress"
)

const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"

	// defaultTerminalWidth is used when stdout is not a terminal.
	defaultTerminalWidth = 80
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for ccclog",
	Example: `  # Show version info
  ccclog version

  # Plain output (for scripts)
  ccclog version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		width := progress.DetectTerminalCapabilities(os.Stdout).Width
		if width <= 0 {
			width = defaultTerminalWidth
		}
		printPrettyVersion(cmd.OutOrStdout(), width)
	},
}

func init() {
	versionCmd.GroupID = GroupInternal
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "ccclog %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s\n", build.Platform())
}

// printPrettyVersion prints the version information in a centered box
func printPrettyVersion(w io.Writer, termWidth int) {
	dim := color.New(color.Faint).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", build.Platform()},
	}

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4

	pad := strings.Repeat(" ", max((termWidth-boxWidth)/2, 0))
	fmt.Fprintln(w)
	fmt.Fprintln(w, dim(centerText("Conventional commit changelog generator", termWidth)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, pad+boxTopLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxTopRight)
	fmt.Fprintln(w, pad+boxVertical+strings.Repeat(" ", boxWidth-2)+boxVertical)
	for _, item := range info {
		line := fmt.Sprintf("  %s    %s", yellow(fmt.Sprintf("%12s", item.label)), white(item.value))
		// label width + spacing + value + margin
		if n := 12 + 4 + len(item.value) + 2; n < contentWidth {
			line += strings.Repeat(" ", contentWidth-n)
		}
		fmt.Fprintln(w, pad+boxVertical+" "+line+" "+boxVertical)
	}
	fmt.Fprintln(w, pad+boxVertical+strings.Repeat(" ", boxWidth-2)+boxVertical)
	fmt.Fprintln(w, pad+boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxBottomRight)
	fmt.Fprintln(w)
}

func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
