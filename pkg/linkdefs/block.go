// Package linkdefs extracts inline links into link definitions and
// organizes the definition block of Markdown documents.
package linkdefs

import (
	"slices"

	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// Block is a run of link definitions on consecutive lines.
// StartLine and EndLine are the start lines of its first and last definition.
type Block struct {
	StartLine int
	EndLine   int
}

// Contains reports whether line falls inside the block.
func (b Block) Contains(line int) bool {
	return line >= b.StartLine && line <= b.EndLine
}

// Locate finds the definition block at the end of the document. The block
// only exists when nothing but whitespace follows the last definition; it
// then extends backwards over definitions on consecutive lines.
func Locate(doc *textdoc.Document, defs []*links.Link) (Block, bool) {
	if len(defs) == 0 {
		return Block{}, false
	}

	lastDef := defs[len(defs)-1]

	after := textdoc.NewRange(lastDef.Source.Range.End.Line+1, 0, doc.LineCount(), 0)
	if !textdoc.IsWhitespace(doc.GetText(after)) {
		return Block{}, false
	}

	block := Block{
		StartLine: lastDef.Source.Range.Start.Line,
		EndLine:   lastDef.Source.Range.Start.Line,
	}
	for i := len(defs) - 2; i >= 0; i-- {
		line := defs[i].Source.Range.Start.Line
		if line < block.StartLine-1 {
			break
		}
		block.StartLine = line
	}

	return block, true
}

// Group partitions definitions into runs on consecutive lines.
func Group(defs []*links.Link) []Block {
	if len(defs) == 0 {
		return nil
	}

	var groups []Block

	current := Block{
		StartLine: defs[0].Source.Range.Start.Line,
		EndLine:   defs[0].Source.Range.Start.Line,
	}
	for _, def := range defs[1:] {
		line := def.Source.Range.Start.Line
		if line == current.EndLine+1 {
			current.EndLine = line
			continue
		}
		groups = append(groups, current)
		current = Block{StartLine: line, EndLine: line}
	}

	return append(groups, current)
}

// orderedDefinitions returns the definitions sorted by start position.
func orderedDefinitions(docLinks *links.DocumentLinks) []*links.Link {
	defs := slices.Clone(docLinks.Definitions.All())
	slices.SortStableFunc(defs, func(a, b *links.Link) int {
		return textdoc.ComparePosition(a.Source.Range.Start, b.Source.Range.Start)
	})
	return defs
}
