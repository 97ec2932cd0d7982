package textdoc

import "sort"

// LineInfo holds metadata for a single line in a document.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// Len returns the length of the line text, excluding the terminator.
func (l LineInfo) Len() int {
	return l.NewlineStart - l.StartOffset
}

// BuildLines constructs line metadata from document content.
// It handles both LF (\n) and CRLF (\r\n) line endings. Empty content
// yields a single empty line, and a trailing newline yields a trailing
// empty line.
func BuildLines(content []byte) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > lineStart && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// EOL returns the terminator of the document's first line, "\r\n" or
// "\n". Documents without any line break use "\n".
func (d *Document) EOL() string {
	first := d.lines[0]
	switch {
	case first.EndOffset == first.NewlineStart:
		return "\n"
	case d.content[first.NewlineStart] == '\r':
		return "\r\n"
	default:
		return "\n"
	}
}

// LineCount returns the number of lines in the document. It is never zero.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineInfo returns the metadata for a 0-based line.
// The second result is false if the line is out of range.
func (d *Document) LineInfo(line int) (LineInfo, bool) {
	if line < 0 || line >= len(d.lines) {
		return LineInfo{}, false
	}
	return d.lines[line], true
}

// Line returns the text of a 0-based line without its terminator.
// Out of range lines are empty.
func (d *Document) Line(line int) string {
	info, ok := d.LineInfo(line)
	if !ok {
		return ""
	}
	return string(d.content[info.StartOffset:info.NewlineStart])
}

// LineLength returns the length of a 0-based line, excluding the terminator.
func (d *Document) LineLength(line int) int {
	info, ok := d.LineInfo(line)
	if !ok {
		return 0
	}
	return info.Len()
}

// OffsetAt converts a position to a byte offset. Positions past the end of
// a line clamp to the line end, and positions past the last line clamp to
// the end of the document.
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lines) {
		return len(d.content)
	}

	info := d.lines[pos.Line]
	character := min(max(pos.Character, 0), info.Len())

	return info.StartOffset + character
}

// PositionAt converts a byte offset to a position.
// Offsets are clamped to the document bounds.
func (d *Document) PositionAt(offset int) Position {
	offset = min(max(offset, 0), len(d.content))

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i].EndOffset > offset
	})
	if lineIdx >= len(d.lines) {
		lineIdx = len(d.lines) - 1
	}

	info := d.lines[lineIdx]
	character := min(offset-info.StartOffset, info.Len())

	return Position{Line: lineIdx, Character: character}
}
