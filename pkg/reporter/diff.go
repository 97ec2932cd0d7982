package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/mdrefs/internal/ui/pretty"
	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalInsertions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintln(r.out, r.styles.FormatFileError(r.opts.displayPath(file.Path), file.Error))
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalInsertions += file.Result.Diff.Insertions
		totalDeletions += file.Result.Diff.Deletions
		writeDiff(r.out, r.styles, r.opts.displayPath(file.Path), file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalInsertions, totalDeletions)
	}

	return result.Stats.FilesChanged, nil
}

// ReportExtract implements Reporter by printing the diff of the first
// applicable action.
func (r *DiffReporter) ReportExtract(_ context.Context, result *runner.ExtractResult) error {
	if result == nil || !result.Diff.HasChanges() {
		return nil
	}
	writeDiff(r.out, r.styles, r.opts.displayPath(result.Path), result.Diff)
	return nil
}

// ReportLinks implements Reporter. Link listings have no diff form.
func (r *DiffReporter) ReportLinks(context.Context, *LinksReport) error {
	return fmt.Errorf("links: %s format: %w", FormatDiff, ErrUnsupported)
}

// writeDiff outputs a single file's diff with formatting.
func writeDiff(out io.Writer, styles *pretty.Styles, displayPath string, diff *edit.Diff) {
	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	fmt.Fprintln(out, styles.DiffHeader.Render(header))
	fmt.Fprintln(out, styles.DiffRemove.Render("--- a/"+displayPath))
	fmt.Fprintln(out, styles.DiffAdd.Render("+++ b/"+displayPath))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(out, styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			writeDiffLine(out, styles, line)
		}
	}

	fmt.Fprintln(out)
}

// writeDiffLine formats a single diff line with color.
func writeDiffLine(out io.Writer, styles *pretty.Styles, line edit.DiffLine) {
	text := line.Text

	switch line.Op {
	case edit.LineInsert:
		fmt.Fprintln(out, styles.DiffAdd.Render("+"+text))
	case edit.LineDelete:
		fmt.Fprintln(out, styles.DiffRemove.Render("-"+text))
	default:
		fmt.Fprintln(out, styles.DiffContext.Render(" "+text))
	}

	if line.NoNewline {
		fmt.Fprintln(out, styles.Dim.Render(edit.NoNewlineMarker))
	}
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, insertions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if insertions > 0 {
		insertionWord := "insertions"
		if insertions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", insertions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
