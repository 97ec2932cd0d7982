package edit

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// ErrConflictingEdits is returned when two edits overlap.
var ErrConflictingEdits = errors.New("conflicting edits")

// OffsetEdit is a TextEdit resolved to byte offsets in a document.
type OffsetEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    OffsetEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	First  OffsetEdit
	Second OffsetEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// Unwrap lets errors.Is match ErrConflictingEdits.
func (e *ConflictError) Unwrap() error {
	return ErrConflictingEdits
}

// ToOffsetEdits resolves position based edits against doc.
// Positions outside the document are clamped.
func ToOffsetEdits(doc *textdoc.Document, edits []TextEdit) []OffsetEdit {
	out := make([]OffsetEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, OffsetEdit{
			StartOffset: doc.OffsetAt(e.Range.Start),
			EndOffset:   doc.OffsetAt(e.Range.End),
			NewText:     e.NewText,
		})
	}
	return out
}

// ValidateEdits checks that all edits have valid ranges for the given content length.
func ValidateEdits(edits []OffsetEdit, contentLen int) error {
	for _, e := range edits {
		switch {
		case e.StartOffset < 0:
			return &ValidationError{Edit: e, Message: "start offset is negative"}
		case e.EndOffset < e.StartOffset:
			return &ValidationError{Edit: e, Message: "end offset is before start offset"}
		case e.EndOffset > contentLen:
			return &ValidationError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", e.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset. The sort is
// stable so insertions at the same offset keep the order they were added.
func SortEdits(edits []OffsetEdit) {
	slices.SortStableFunc(edits, func(a, b OffsetEdit) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return a.EndOffset - b.EndOffset
	})
}

// DetectConflicts checks a sorted slice for overlapping edits.
func DetectConflicts(edits []OffsetEdit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		if curr.StartOffset < prev.EndOffset {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// PrepareEdits validates, sorts, and checks for conflicts.
// The input slice is left untouched.
func PrepareEdits(edits []OffsetEdit, contentLen int) ([]OffsetEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	result := slices.Clone(edits)
	SortEdits(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}

// ApplyEdits applies a prepared slice of edits to content.
func ApplyEdits(content []byte, edits []OffsetEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// ApplyTextEdits applies position based edits to doc and returns the new content.
func ApplyTextEdits(doc *textdoc.Document, edits []TextEdit) ([]byte, error) {
	content := doc.Content()

	prepared, err := PrepareEdits(ToOffsetEdits(doc, edits), len(content))
	if err != nil {
		return nil, fmt.Errorf("apply edits to %s: %w", doc.URI(), err)
	}

	return ApplyEdits(content, prepared), nil
}

// ApplyWorkspaceEdit applies the edits addressed to doc. Edits for other
// documents are ignored.
func ApplyWorkspaceEdit(doc *textdoc.Document, w *WorkspaceEdit) ([]byte, error) {
	return ApplyTextEdits(doc, w.EditsFor(doc.URI()))
}
