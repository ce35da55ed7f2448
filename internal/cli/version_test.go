package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/ccclog/internal/build"
)

func TestPrintPlainVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	want := strings.Join([]string{
		"ccclog " + build.Version,
		"commit: " + build.Commit,
		"built: " + build.BuildDate,
		"go: " + runtime.Version(),
		"platform: " + build.Platform(),
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintPrettyVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		width int
	}{
		"wide terminal":   {width: 120},
		"narrow terminal": {width: 40},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printPrettyVersion(&buf, tt.width)
			out := buf.String()

			assert.Contains(t, out, boxTopLeft)
			assert.Contains(t, out, boxBottomRight)
			assert.Contains(t, out, build.Version)
			assert.Contains(t, out, build.Platform())
		})
	}
}

func TestCenterText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text  string
		width int
		want  string
	}{
		"centered":  {text: "ab", width: 6, want: "  ab"},
		"too wide":  {text: "abcdef", width: 4, want: "abcdef"},
		"exact fit": {text: "abcd", width: 4, want: "abcd"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, centerText(tt.text, tt.width))
		})
	}
}
