package linkdefs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// ErrGroupOverlapsBlock is returned when a scattered definition group
// shares lines with the trailing definition block.
var ErrGroupOverlapsBlock = errors.New("definition group overlaps the definition block")

// OrganizeOptions controls Organize.
type OrganizeOptions struct {
	// RemoveUnused drops definitions no reference link points to.
	RemoveUnused bool
}

// Organizer gathers a document's link definitions into one sorted block
// at the end of the document.
type Organizer struct {
	provider links.Provider
}

// NewOrganizer creates an Organizer reading links from provider.
func NewOrganizer(provider links.Provider) *Organizer {
	return &Organizer{provider: provider}
}

// Organize returns the edits that move every definition into the trailing
// block, sorted by label. A document that is already organized yields no
// edits, as does a cancelled context.
func (o *Organizer) Organize(ctx context.Context, doc *textdoc.Document, opts OrganizeOptions) ([]edit.TextEdit, error) {
	if ctx.Err() != nil {
		return nil, nil
	}

	docLinks, err := o.provider.GetLinks(ctx, doc)
	if ctx.Err() != nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("organize link definitions: %w", err)
	}

	defs := orderedDefinitions(docLinks)
	if len(defs) == 0 {
		return nil, nil
	}

	block, hasBlock := Locate(doc, defs)

	var deletions []edit.TextEdit
	for _, group := range Group(defs) {
		if hasBlock {
			if group.StartLine >= block.StartLine {
				continue
			}
			if group.EndLine >= block.StartLine {
				return nil, fmt.Errorf("%w: lines %d-%d, block %d-%d",
					ErrGroupOverlapsBlock, group.StartLine, group.EndLine, block.StartLine, block.EndLine)
			}
		}
		deletions = append(deletions, edit.TextEdit{Range: lineSpan(doc, group.StartLine, group.EndLine)})
	}

	sorted := slices.Clone(defs)
	slices.SortStableFunc(sorted, func(a, b *links.Link) int {
		return strings.Compare(a.Ref, b.Ref)
	})

	kept := sorted
	if opts.RemoveUnused {
		kept = usedDefinitions(docLinks, sorted)
	}

	eol := doc.EOL()
	rendered := renderBlock(kept, eol)

	if hasBlock {
		if len(deletions) == 0 && slices.Equal(kept, defs) {
			return nil, nil
		}

		prefix := eol
		if block.StartLine <= 0 || textdoc.IsWhitespace(doc.Line(block.StartLine-1)) {
			prefix = ""
		}

		return append(deletions, edit.TextEdit{
			Range:   lineSpan(doc, block.StartLine, block.EndLine),
			NewText: prefix + rendered,
		}), nil
	}

	line := lastContentLine(doc, defs[len(defs)-1])
	prefix := eol
	if line == doc.LineCount()-1 {
		prefix = eol + eol
	}

	return append(deletions, edit.TextEdit{
		Range:   textdoc.NewRange(line+1, 0, doc.LineCount(), 0),
		NewText: prefix + rendered,
	}), nil
}

// lineSpan covers the text of lines start through end, leaving the
// newline of the last line in place.
func lineSpan(doc *textdoc.Document, start, end int) textdoc.Range {
	return textdoc.NewRange(start, 0, end, doc.LineLength(end))
}

// usedDefinitions keeps the definitions some reference link points to.
func usedDefinitions(docLinks *links.DocumentLinks, defs []*links.Link) []*links.Link {
	referenced := make(map[string]bool)
	for _, link := range docLinks.Links {
		if link.Kind != links.KindLink {
			continue
		}
		if ref, ok := link.Href.(links.ReferenceHref); ok {
			referenced[ref.Ref] = true
		}
	}

	var used []*links.Link
	for _, def := range defs {
		if referenced[def.Ref] {
			used = append(used, def)
		}
	}
	return used
}

// renderBlock writes one "[label]: target" line per definition.
func renderBlock(defs []*links.Link, eol string) string {
	lines := make([]string, 0, len(defs))
	for _, def := range defs {
		lines = append(lines, "["+def.Ref+"]: "+def.Source.HrefText)
	}
	return strings.Join(lines, eol)
}

// lastContentLine returns the last line after lastDef holding anything but
// whitespace, or the line of lastDef when there is none.
func lastContentLine(doc *textdoc.Document, lastDef *links.Link) int {
	defLine := lastDef.Source.Range.Start.Line
	for line := doc.LineCount() - 1; line > defLine; line-- {
		if !textdoc.IsWhitespace(doc.Line(line)) {
			return line
		}
	}
	return defLine
}
