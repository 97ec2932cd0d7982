package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefs/internal/logging"
	"github.com/yaklabco/mdrefs/pkg/config"
	"github.com/yaklabco/mdrefs/pkg/fsutil"
	"github.com/yaklabco/mdrefs/pkg/reporter"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

type linksFlags struct {
	format string
	flavor string
}

func newLinksCommand(global *globalOptions) *cobra.Command {
	flags := &linksFlags{}

	cmd := &cobra.Command{
		Use:   "links FILE",
		Short: "List the links and link definitions of a file",
		Long: `List every link and link definition mdrefs finds in a Markdown file,
with its location, label and target. The JSON form also carries LSP
document links.

Examples:
  mdrefs links README.md
  mdrefs links README.md --format json`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json (default text)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")

	return cmd
}

func runLinks(cmd *cobra.Command, path string, global *globalOptions, flags *linksFlags) error {
	ctx := cmd.Context()

	if flags.format == string(config.FormatDiff) {
		return usageErrorf("links does not support --format diff")
	}

	loaded, workDir, err := loadConfig(ctx, global, &config.Config{
		Flavor: config.Flavor(flags.flavor),
		Format: config.OutputFormat(flags.format),
	})
	if err != nil {
		return err
	}
	cfg := loaded.Config

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if format == reporter.FormatDiff {
		// A configured diff format falls back to text for listings.
		format = reporter.FormatText
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	doc := textdoc.FromFile(path, content)
	docLinks, err := newProvider(cfg).GetLinks(ctx, doc)
	if err != nil {
		return fmt.Errorf("links %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug("links collected",
		logging.FieldPath, path,
		logging.FieldLinks, len(docLinks.Links),
		logging.FieldDefinitions, docLinks.Definitions.Len(),
	)

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      global.color,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.ReportLinks(ctx, &reporter.LinksReport{Path: path, Document: doc, Links: docLinks}); err != nil {
		return fmt.Errorf("report links: %w", err)
	}

	return nil
}
