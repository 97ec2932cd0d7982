package textdoc

import "fmt"

// Position is a 0-based line and character offset in a document.
// Character counts bytes of the line's text, not runes.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// NewPosition returns the position at line and character.
func NewPosition(line, character int) Position {
	return Position{Line: line, Character: character}
}

// ComparePosition returns -1 if a is before b, 1 if a is after b and 0 if they are equal.
func ComparePosition(a, b Position) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Character < b.Character:
		return -1
	case a.Character > b.Character:
		return 1
	default:
		return 0
	}
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return ComparePosition(p, other) < 0
}

// After reports whether p comes strictly after other.
func (p Position) After(other Position) bool {
	return ComparePosition(p, other) > 0
}

// Translate returns a position shifted by the given deltas.
// Negative results are clamped to zero.
func (p Position) Translate(lineDelta, characterDelta int) Position {
	return Position{
		Line:      max(0, p.Line+lineDelta),
		Character: max(0, p.Character+characterDelta),
	}
}

// String renders the position as "line:character" using 1-based numbers,
// matching what editors and terminals display.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// Range is a half-open span [Start, End) of positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange builds a range from its four coordinates.
func NewRange(startLine, startCharacter, endLine, endCharacter int) Range {
	return Range{
		Start: Position{Line: startLine, Character: startCharacter},
		End:   Position{Line: endLine, Character: endCharacter},
	}
}

// EmptyRange returns a zero-length range at pos.
func EmptyRange(pos Position) Range {
	return Range{Start: pos, End: pos}
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return ComparePosition(r.Start, r.End) == 0
}

// IsSingleLine returns true if start and end are on the same line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Contains reports whether pos lies inside the range. The end position is
// included so that a cursor placed right after a span still hits it.
func (r Range) Contains(pos Position) bool {
	return ComparePosition(r.Start, pos) <= 0 && ComparePosition(pos, r.End) <= 0
}

// ContainsRange reports whether other lies entirely inside r.
func (r Range) ContainsRange(other Range) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

// Intersects reports whether the two ranges share at least one position.
// Ranges that only touch at an endpoint intersect.
func (r Range) Intersects(other Range) bool {
	return ComparePosition(r.Start, other.End) <= 0 && ComparePosition(other.Start, r.End) <= 0
}

// String renders the range as "start-end".
func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}
