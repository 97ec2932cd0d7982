package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// FormatFileHeader formats a file path with the number of pending edits.
func (s *Styles) FormatFileHeader(path string, edits int) string {
	return fmt.Sprintf("%s %s",
		s.FilePath.Render(path),
		s.Dim.Render("("+pluralize(edits, "edit", "edits")+")"),
	)
}

// FormatFileError formats a per-file failure.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// FormatEdit formats a single text edit as "line:col-line:col replace/insert/delete".
// Positions are shown one-based.
func (s *Styles) FormatEdit(e edit.TextEdit) string {
	var op string
	switch {
	case e.Range.IsEmpty():
		op = "insert " + quoteText(e.NewText)
	case e.NewText == "":
		op = "delete"
	default:
		op = "replace with " + quoteText(e.NewText)
	}
	return fmt.Sprintf("  %s %s", s.Location.Render(FormatRange(e.Range)), op)
}

// FormatAction formats a code action, including the reason when disabled.
func (s *Styles) FormatAction(action linkdefs.CodeAction) string {
	if action.Disabled != nil {
		return fmt.Sprintf("%s %s",
			s.Dim.Render(action.Title),
			s.Warning.Render("(disabled: "+action.Disabled.Reason+")"),
		)
	}
	edits := 0
	if action.Edit != nil {
		edits = action.Edit.Len()
	}
	return fmt.Sprintf("%s %s %s",
		s.Success.Render(action.Title),
		s.Kind.Render("["+string(action.Kind)+"]"),
		s.Dim.Render("("+pluralize(edits, "edit", "edits")+")"),
	)
}

// FormatRange renders a range one-based as "line:col-line:col".
func FormatRange(rng textdoc.Range) string {
	return fmt.Sprintf("%s-%s", FormatPosition(rng.Start), FormatPosition(rng.End))
}

// FormatPosition renders a position one-based as "line:col".
func FormatPosition(pos textdoc.Position) string {
	return fmt.Sprintf("%d:%d", pos.Line+1, pos.Character+1)
}

func quoteText(text string) string {
	return fmt.Sprintf("%q", strings.TrimSpace(text))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
