package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefs/internal/configloader"
	"github.com/yaklabco/mdrefs/internal/logging"
	"github.com/yaklabco/mdrefs/pkg/config"
	"github.com/yaklabco/mdrefs/pkg/links"
)

// globalOptions holds the persistent flags of the root command.
type globalOptions struct {
	configPath string
	noConfig   bool
	debug      bool
	color      string
}

// exactArgs is cobra.ExactArgs with usage errors marked as such.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}

// loadConfig resolves the effective configuration for a command. It
// returns the load result and the working directory used for discovery.
func loadConfig(ctx context.Context, global *globalOptions, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		NoConfig:     global.noConfig,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, result.LoadedFrom)
	}

	logger.Debug("configuration resolved",
		logging.FieldFlavor, result.Config.Flavor,
		logging.FieldJobs, result.Config.Jobs,
		logging.FieldWrite, result.Config.Write,
		logging.FieldRemoveUnused, result.Config.Organize.RemoveUnused,
	)

	return result, workDir, nil
}

// newProvider builds the cached link provider for the configured flavor.
func newProvider(cfg *config.Config) links.Provider {
	return links.NewCachedProvider(links.NewGoldmarkProvider(string(cfg.Flavor)), links.DefaultCacheSize)
}
