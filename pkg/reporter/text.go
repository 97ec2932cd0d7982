package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdrefs/internal/ui/pretty"
	"github.com/yaklabco/mdrefs/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.TableFormatter
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &TextReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewTableFormatter(styles, pretty.TerminalWidth(opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No Markdown files found."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintln(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		if !file.Result.Changed() {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Result.Edits)))

		if r.opts.ShowEdits {
			for _, e := range file.Result.Edits {
				fmt.Fprintln(r.bw, r.styles.FormatEdit(e))
			}
		}

		r.writeWritten(file.Result.Written, file.Result.BackupPath)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FilesChanged, nil
}

// ReportExtract implements Reporter.
func (r *TextReporter) ReportExtract(_ context.Context, result *runner.ExtractResult) (err error) {
	defer r.flush(&err)

	if result == nil {
		return nil
	}

	fmt.Fprintln(r.bw, r.styles.FilePath.Render(r.opts.displayPath(result.Path)))
	if len(result.Actions) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  no code actions"))
		return nil
	}

	for _, action := range result.Actions {
		fmt.Fprintln(r.bw, "  "+r.styles.FormatAction(action))
	}

	if result.Written {
		r.writeWritten(true, result.BackupPath)
		return nil
	}

	if result.Diff.HasChanges() {
		fmt.Fprintln(r.bw)
		writeDiff(r.bw, r.styles, r.opts.displayPath(result.Path), result.Diff)
	}

	return nil
}

// ReportLinks implements Reporter.
func (r *TextReporter) ReportLinks(_ context.Context, report *LinksReport) (err error) {
	defer r.flush(&err)

	if report == nil {
		return nil
	}

	fmt.Fprintln(r.bw, r.styles.FilePath.Render(r.opts.displayPath(report.Path)))

	table := r.table.FormatLinks(report.Links)
	if table == "" {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  no links"))
		return nil
	}
	fmt.Fprint(r.bw, table)

	return nil
}

func (r *TextReporter) writeWritten(written bool, backupPath string) {
	if !written {
		return
	}
	line := "  written"
	if backupPath != "" {
		line += ", backup at " + r.opts.displayPath(backupPath)
	}
	fmt.Fprintln(r.bw, r.styles.Success.Render(line))
}

func (r *TextReporter) flush(err *error) {
	if flushErr := r.bw.Flush(); *err == nil {
		*err = flushErr
	}
}
