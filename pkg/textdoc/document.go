// Package textdoc provides an immutable document snapshot with 0-based
// line/character addressing, and the Position and Range types used by the
// link-definition tooling.
package textdoc

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// Document is an immutable view of a text document at a specific time.
type Document struct {
	uri     string
	content []byte
	lines   []LineInfo
}

// New creates a Document from content. The uri identifies the document in
// produced edits; a plain file path is accepted and used as-is.
func New(uri string, content []byte) *Document {
	return &Document{
		uri:     uri,
		content: content,
		lines:   BuildLines(content),
	}
}

// FromFile creates a Document whose URI is the file:// URI of path.
func FromFile(path string, content []byte) *Document {
	return New(FileURI(path), content)
}

// FileURI converts a file system path into a file:// URI.
func FileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// URI returns the document identifier.
func (d *Document) URI() string {
	return d.uri
}

// Path returns the file system path of the document. For file:// URIs the
// scheme is stripped; any other identifier is returned unchanged.
func (d *Document) Path() string {
	u, err := url.Parse(d.uri)
	if err != nil || u.Scheme != "file" {
		return d.uri
	}
	return filepath.FromSlash(u.Path)
}

// Content returns the raw document bytes. Callers must not modify them.
func (d *Document) Content() []byte {
	return d.content
}

// Text returns the full document text.
func (d *Document) Text() string {
	return string(d.content)
}

// GetText returns the text covered by r. The range is clamped to the document.
func (d *Document) GetText(r Range) string {
	start := d.OffsetAt(r.Start)
	end := d.OffsetAt(r.End)
	if end < start {
		return ""
	}
	return string(d.content[start:end])
}

// EndPosition returns the position just after the last character.
func (d *Document) EndPosition() Position {
	last := len(d.lines) - 1
	return Position{Line: last, Character: d.lines[last].Len()}
}

// IsWhitespace reports whether text is empty or contains only whitespace.
func IsWhitespace(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
