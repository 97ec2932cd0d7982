package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.DiffAdd.Render(text), "No-color DiffAdd should not add formatting")
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "a buffer is not a TTY")
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, os.Stdout))
}

func TestIsValidColorMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"", "auto", "always", "never"} {
		assert.True(t, pretty.IsValidColorMode(mode), mode)
	}
	assert.False(t, pretty.IsValidColorMode("sometimes"))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(&buf))
}
