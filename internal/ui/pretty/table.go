package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdrefs/pkg/links"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // LOC, KIND, LABEL, TARGET
	minLocWidth      = 9
	minKindWidth     = 10
	minLabelWidth    = 5
	minTargetWidth   = 20
	heavySeparator   = "="
	ellipsis         = "..."
)

// TableRow is one link in the links table.
type TableRow struct {
	Location   string
	Kind       string
	Label      string
	Target     string
	Definition bool
}

// TableFormatter formats document links as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// LinkToTableRow converts a link into a table row.
func LinkToTableRow(link *links.Link) TableRow {
	kind := link.Kind.String()
	if link.Image {
		kind = "image"
	}
	return TableRow{
		Location:   FormatPosition(link.Source.Range.Start),
		Kind:       kind,
		Label:      link.Ref,
		Target:     link.Href.String(),
		Definition: link.IsDefinition(),
	}
}

// FormatLinks formats the links of a document as a table. It returns an
// empty string when there are no links.
func (t *TableFormatter) FormatLinks(docLinks *links.DocumentLinks) string {
	if docLinks == nil || len(docLinks.Links) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(docLinks.Links))
	definitions := 0
	for _, link := range docLinks.Links {
		rows = append(rows, LinkToTableRow(link))
		if link.IsDefinition() {
			definitions++
		}
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.styles.Dim.Render(fmt.Sprintf(" %s, %s",
		pluralize(len(rows)-definitions, "link", "links"),
		pluralize(definitions, "definition", "definitions"))))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	loc    int
	kind   int
	label  int
	target int
}

// calculateColumnWidths determines column widths based on content, then
// shrinks the target column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		loc:    minLocWidth,
		kind:   minKindWidth,
		label:  minLabelWidth,
		target: minTargetWidth,
	}

	for _, row := range rows {
		widths.loc = max(widths.loc, len(row.Location))
		widths.kind = max(widths.kind, len(row.Kind))
		widths.label = max(widths.label, len(row.Label))
		widths.target = max(widths.target, len(row.Target))
	}

	totalWidth := widths.total()
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.target = max(minTargetWidth, widths.target-excess)

		totalWidth = widths.total()
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.label = max(minLabelWidth, widths.label-excess)
		}
	}

	return widths
}

func (w columnWidths) total() int {
	return w.loc + w.kind + w.label + w.target + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.loc, "LOC",
		widths.kind, "KIND",
		widths.label, "LABEL",
		widths.target, "TARGET",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.loc, truncateString(row.Location, widths.loc),
		widths.kind, truncateString(row.Kind, widths.kind),
		widths.label, truncateString(row.Label, widths.label),
		widths.target, truncateString(row.Target, widths.target),
	)
	return t.rowStyle(row).Render(content)
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	if row.Definition {
		return t.styles.TableDefRow
	}
	return lipgloss.NewStyle()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}

// TruncatePath truncates a file path, preserving the end (filename) rather
// than the beginning.
func TruncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[len(path)-maxLen:]
	}
	return ellipsis + path[len(path)-maxLen+len(ellipsis):]
}
