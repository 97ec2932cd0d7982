// Package edit provides the text edit model used to describe document
// changes, a builder that accumulates them into a workspace edit, and the
// logic to apply edits to document content.
package edit

import (
	"slices"

	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// TextEdit replaces the text covered by Range with NewText.
// An empty range is an insertion.
type TextEdit struct {
	Range   textdoc.Range `json:"range"`
	NewText string        `json:"newText"`
}

// WorkspaceEdit groups text edits by document URI.
// Edits for a document are kept in the order they were added.
type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes"`
}

// URIs returns the documents touched by the edit, sorted.
func (w *WorkspaceEdit) URIs() []string {
	if w == nil {
		return nil
	}
	uris := make([]string, 0, len(w.Changes))
	for uri := range w.Changes {
		uris = append(uris, uri)
	}
	slices.Sort(uris)
	return uris
}

// EditsFor returns the edits for a single document.
func (w *WorkspaceEdit) EditsFor(uri string) []TextEdit {
	if w == nil {
		return nil
	}
	return w.Changes[uri]
}

// Len returns the total number of text edits.
func (w *WorkspaceEdit) Len() int {
	if w == nil {
		return 0
	}
	total := 0
	for _, edits := range w.Changes {
		total += len(edits)
	}
	return total
}

// Builder accumulates text edits for one or more documents.
// A builder belongs to a single operation; GetEdit hands the accumulated
// edits over and resets it.
type Builder struct {
	changes map[string][]TextEdit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{changes: make(map[string][]TextEdit)}
}

// Replace adds an edit that replaces rng in the document with newText.
func (b *Builder) Replace(uri string, rng textdoc.Range, newText string) {
	b.changes[uri] = append(b.changes[uri], TextEdit{Range: rng, NewText: newText})
}

// Insert adds an edit that inserts text at pos.
func (b *Builder) Insert(uri string, pos textdoc.Position, text string) {
	b.Replace(uri, textdoc.EmptyRange(pos), text)
}

// Delete adds an edit that removes rng.
func (b *Builder) Delete(uri string, rng textdoc.Range) {
	b.Replace(uri, rng, "")
}

// Len returns the number of edits added so far.
func (b *Builder) Len() int {
	total := 0
	for _, edits := range b.changes {
		total += len(edits)
	}
	return total
}

// GetEdit returns the accumulated workspace edit and resets the builder.
func (b *Builder) GetEdit() *WorkspaceEdit {
	edit := &WorkspaceEdit{Changes: b.changes}
	b.changes = make(map[string][]TextEdit)
	return edit
}
