package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefs/internal/logging"
	"github.com/yaklabco/mdrefs/pkg/config"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/reporter"
	"github.com/yaklabco/mdrefs/pkg/runner"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

type extractFlags struct {
	line         int
	character    int
	endLine      int
	endCharacter int
	only         []string
	write        bool
	noBackups    bool
	format       string
	flavor       string
}

func newExtractCommand(global *globalOptions) *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Turn an inline link into a reference link",
		Long:  extractLongDescription,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().IntVar(&flags.line, "line", 0, "zero-based line of the selection start")
	cmd.Flags().IntVar(&flags.character, "character", 0, "zero-based byte column of the selection start")
	cmd.Flags().IntVar(&flags.endLine, "end-line", -1, "zero-based line of the selection end (default: start)")
	cmd.Flags().IntVar(&flags.endCharacter, "end-character", -1, "zero-based byte column of the selection end (default: start)")
	cmd.Flags().StringSliceVar(&flags.only, "only", nil, "code action kinds to request, e.g. refactor.extract")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "apply the extraction to the file")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, diff (default text)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")

	return cmd
}

const extractLongDescription = `Offer the "Extract to link definition" code action for a selection.

The link under the selection, and every inline link with the same target,
is rewritten to a reference link with a fresh label. A matching definition
is added to the definition block. Positions are zero-based, as in the
Language Server Protocol. Without --write the change is only previewed.

Examples:
  mdrefs extract README.md --line 4 --character 12
  mdrefs extract README.md --line 4 --character 12 --write
  mdrefs extract README.md --line 4 --character 12 --format json
  mdrefs extract README.md --line 4 --character 0 --end-line 4 --end-character 40`

func runExtract(cmd *cobra.Command, path string, global *globalOptions, flags *extractFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	rng, err := flags.selection()
	if err != nil {
		return err
	}

	loaded, workDir, err := loadConfig(ctx, global, &config.Config{
		Write:     flags.write,
		NoBackups: flags.noBackups,
		Flavor:    config.Flavor(flags.flavor),
		Format:    config.OutputFormat(flags.format),
	})
	if err != nil {
		return err
	}
	cfg := loaded.Config

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	var actionCtx linkdefs.CodeActionContext
	if cmd.Flags().Changed("only") {
		actionCtx.Only = make([]linkdefs.CodeActionKind, 0, len(flags.only))
		for _, kind := range flags.only {
			actionCtx.Only = append(actionCtx.Only, linkdefs.CodeActionKind(kind))
		}
	}

	logger.Debug("extracting link definition", logging.FieldPath, path, "range", rng.String())

	pipeline := runner.NewPipeline(newProvider(cfg))
	result, err := pipeline.ExtractFile(ctx, path, rng, actionCtx, runner.PipelineOptions{
		Write:  cfg.Write,
		Backup: runner.BackupConfigFromConfig(cfg),
	})
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}

	logger.Debug("code actions computed", logging.FieldActions, len(result.Actions))

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      global.color,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.ReportExtract(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}

// selection builds the requested range. Missing end components default to
// the start position.
func (f *extractFlags) selection() (textdoc.Range, error) {
	if f.line < 0 || f.character < 0 {
		return textdoc.Range{}, usageErrorf("--line and --character must not be negative")
	}

	start := textdoc.NewPosition(f.line, f.character)
	end := start
	if f.endLine >= 0 {
		end.Line = f.endLine
	}
	if f.endCharacter >= 0 {
		end.Character = f.endCharacter
	}

	if end.Before(start) {
		return textdoc.Range{}, usageErrorf("selection end %s is before start %s", end, start)
	}

	return textdoc.Range{Start: start, End: end}, nil
}
