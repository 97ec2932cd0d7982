// Package cli provides the Cobra command structure for mdrefs.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefs/internal/configloader"
	"github.com/yaklabco/mdrefs/internal/logging"
	"github.com/yaklabco/mdrefs/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdrefs command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "mdrefs",
		Short: "Organize and extract Markdown link definitions",
		Long: `mdrefs manages the link reference definitions of Markdown documents.

It sorts the definition block at the end of a document by label, optionally
dropping definitions nothing refers to, and turns inline links into
reference-style links backed by a new definition. Results can be printed as
text, unified diffs, or LSP-compatible JSON.` + environmentHelp(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !pretty.IsValidColorMode(global.color) {
				return usageErrorf("invalid color mode %q: must be auto, always or never", global.color)
			}

			level := "info"
			if global.debug {
				level = "debug"
			}
			logger := logging.New(logging.Options{
				Level:  level,
				Output: cmd.ErrOrStderr(),
			})
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&global.noConfig, "no-config", false, "ignore all config files")
	rootCmd.PersistentFlags().StringVar(&global.color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newOrganizeCommand(global))
	rootCmd.AddCommand(newExtractCommand(global))
	rootCmd.AddCommand(newLinksCommand(global))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd)

	return rootCmd
}

// environmentHelp lists the MDREFS_* overrides for the root help text.
func environmentHelp() string {
	vars := configloader.ListEnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var sb strings.Builder
	sb.WriteString("\n\nEnvironment:")
	for _, v := range vars {
		fmt.Fprintf(&sb, "\n  %-*s  %s", width, v.Name, v.Description)
	}
	return sb.String()
}
