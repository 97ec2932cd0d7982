package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdrefs/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files need organizing (7 edits), 12 files checked".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	switch {
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(
			"Organized "+pluralize(stats.FilesWritten, "file", "files")+
				" ("+pluralize(stats.EditsTotal, "edit", "edits")+")"))
	case stats.FilesChanged > 0:
		verb := " need organizing"
		if stats.FilesChanged == 1 {
			verb = " needs organizing"
		}
		parts = append(parts, s.Warning.Render(
			pluralize(stats.FilesChanged, "file", "files")+verb+
				" ("+pluralize(stats.EditsTotal, "edit", "edits")+")"))
	default:
		parts = append(parts, s.Success.Render("Link definitions are organized"))
	}

	parts = append(parts, s.Dim.Render(pluralize(stats.FilesProcessed, "file", "files")+" checked"))

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(pluralize(stats.FilesErrored, "file", "files")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files to organize: " +
			s.Warning.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("  Total edits:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.EditsTotal)) + "\n")

	return builder.String()
}
