package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefs/internal/logging"
	"github.com/yaklabco/mdrefs/pkg/config"
	"github.com/yaklabco/mdrefs/pkg/reporter"
	"github.com/yaklabco/mdrefs/pkg/runner"
)

type organizeFlags struct {
	removeUnused   bool
	write          bool
	diff           bool
	check          bool
	format         string
	flavor         string
	jobs           int
	noBackups      bool
	followSymlinks bool
	verbose        bool
}

func newOrganizeCommand(global *globalOptions) *cobra.Command {
	flags := &organizeFlags{}

	cmd := &cobra.Command{
		Use:   "organize [paths...]",
		Short: "Sort link definitions by label",
		Long:  organizeLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, args, global, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.removeUnused, "remove-unused", false, "drop definitions no link refers to")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write organized files back to disk")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print unified diffs (same as --format diff)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with code 1 if any file needs organizing")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, diff (default text)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every edit in text output")

	return cmd
}

const organizeLongDescription = `Sort the link reference definitions of Markdown documents by label.

The definition block is the group of definitions ending at the last
definition of the document. Definitions scattered elsewhere are moved into
it. By default mdrefs reports which files would change; use --write to
apply the edits.

Examples:
  mdrefs organize                       # Report files under the current directory
  mdrefs organize docs/ README.md       # Report specific paths
  mdrefs organize --diff                # Show the changes as unified diffs
  mdrefs organize -w --remove-unused    # Organize in place, dropping unused definitions
  mdrefs organize --check               # Fail in CI when files need organizing
  mdrefs organize --format json         # LSP text edits as JSON`

func runOrganize(cmd *cobra.Command, args []string, global *globalOptions, flags *organizeFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if flags.write && flags.check {
		return usageErrorf("--write and --check cannot be used together")
	}

	cliCfg := &config.Config{
		Organize:  config.OrganizeConfig{RemoveUnused: flags.removeUnused},
		Write:     flags.write,
		Check:     flags.check,
		Jobs:      flags.jobs,
		NoBackups: flags.noBackups,
		Flavor:    config.Flavor(flags.flavor),
		Format:    config.OutputFormat(flags.format),
	}
	if flags.diff {
		if flags.format != "" && flags.format != string(config.FormatDiff) {
			return usageErrorf("--diff conflicts with --format %s", flags.format)
		}
		cliCfg.Format = config.FormatDiff
	}

	loaded, workDir, err := loadConfig(ctx, global, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       global.color,
		ShowSummary: true,
		ShowEdits:   flags.verbose,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting organize run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, runErr := runner.New(runner.NewPipeline(newProvider(cfg))).
		Run(ctx, runOpts, runner.PipelineOptionsFromConfig(cfg))
	if result == nil {
		return fmt.Errorf("organize: %w", runErr)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch {
	case runErr != nil:
		return fmt.Errorf("organize: %w", runErr)
	case result.HasErrors():
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	case cfg.Check && result.HasChanges():
		return ErrChangesNeeded
	default:
		return nil
	}
}
