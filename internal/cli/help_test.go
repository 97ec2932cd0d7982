package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_Root(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "mdrefs [command]")
	assert.Contains(t, stdout, "Commands:")
	for _, name := range []string{"organize", "extract", "links", "init", "version"} {
		assert.Contains(t, stdout, "\n  "+name, "command %s listed", name)
	}
	assert.Contains(t, stdout, "--no-config")
	assert.Contains(t, stdout, "Environment:")
	assert.Contains(t, stdout, "MDREFS_REMOVE_UNUSED")
	assert.NotContains(t, stdout, "\x1b[", "color never must not emit escapes")
}

func TestHelp_Subcommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "organize", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Flags:")
	assert.Contains(t, stdout, "Global Flags:")
	assert.Contains(t, stdout, "--remove-unused")
	assert.Contains(t, stdout, "-w, --write")
	assert.Contains(t, stdout, "--format string")
}
