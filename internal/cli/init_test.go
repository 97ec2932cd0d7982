package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/internal/cli"
	"github.com/yaklabco/mdrefs/pkg/config"
)

func TestInit_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdrefs.yml")

	_, stderr, err := execute(t, "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "created configuration file")

	cfg, err := config.FromYAML([]byte(readFile(t, path)))
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)

	_, _, err = execute(t, "init", "--output", path)
	require.ErrorIs(t, err, cli.ErrUsage, "existing file without --force")

	_, _, err = execute(t, "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestInit_JSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mdrefs.json")

	_, _, err := execute(t, "init", "--format", "json", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), `"flavor": "commonmark"`)
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "init", "--format", "toml", "--output", filepath.Join(t.TempDir(), "x"))
	require.ErrorIs(t, err, cli.ErrUsage)
}
