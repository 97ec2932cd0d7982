package links

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// labelPadding may sit between a bracket and the first or last text of a
// label: emphasis delimiters, code span backticks, escapes and spaces.
const labelPadding = "*_~`\\ \t"

// linkStyle is the syntax a link is written in.
type linkStyle int

const (
	styleInline linkStyle = iota
	styleFull
	styleCollapsed
	styleShortcut
)

// extent holds the source offsets of a link or image.
type extent struct {
	start int // first byte, the '!' of an image
	open  int // '[' opening the label
	close int // ']' closing the label
	end   int // one past the last byte
	style linkStyle
}

// inlineLink builds the Link for a goldmark link or image node. It returns
// nil when the node cannot be located in the source, e.g. a link with an
// empty label.
func (c *collector) inlineLink(node ast.Node, destination []byte, image bool) *Link {
	ext, ok := c.locate(node, image)
	if !ok {
		return nil
	}

	src := c.source
	link := &Link{Kind: KindLink, Image: image}

	switch ext.style {
	case styleInline:
		link.Href = ParseHref(string(destination), c.docPath)
		link.Source = Source{
			Range:       c.rangeOf(ext.start, ext.end),
			TargetRange: c.rangeOf(ext.close+1, ext.end),
			HrefText:    string(src[ext.close+2 : ext.end-1]),
			HrefRange:   c.rangeOf(ext.close+2, ext.end-1),
		}

	case styleFull, styleCollapsed:
		label := string(src[ext.close+2 : ext.end-1])
		if ext.style == styleCollapsed {
			label = string(src[ext.open+1 : ext.close])
		}
		link.Href = ReferenceHref{Ref: label}
		link.Source = Source{
			Range:       c.rangeOf(ext.start, ext.end),
			TargetRange: c.rangeOf(ext.close+1, ext.end),
			HrefText:    label,
			HrefRange:   c.rangeOf(ext.close+2, ext.end-1),
		}

	case styleShortcut:
		label := string(src[ext.open+1 : ext.close])
		link.Href = ReferenceHref{Ref: label}
		link.Source = Source{
			Range:       c.rangeOf(ext.start, ext.end),
			TargetRange: c.rangeOf(ext.open, ext.end),
			HrefText:    label,
			HrefRange:   c.rangeOf(ext.open+1, ext.close),
		}
	}

	return link
}

// locate finds the source extent of a link or image node. Goldmark keeps no
// position for links themselves, so the label brackets are found around the
// text segments of the children and the target is matched from there.
func (c *collector) locate(node ast.Node, image bool) (extent, bool) {
	textStart, textEnd, ok := c.textBounds(node)
	if !ok {
		return extent{}, false
	}

	src := c.source

	open := textStart - 1
	for open >= 0 && strings.IndexByte(labelPadding, src[open]) >= 0 {
		open--
	}
	if open < 0 || src[open] != '[' {
		return extent{}, false
	}

	start := open
	if image {
		if open == 0 || src[open-1] != '!' {
			return extent{}, false
		}
		start = open - 1
	}

	closeIdx := textEnd
	for closeIdx < len(src) && strings.IndexByte(labelPadding, src[closeIdx]) >= 0 {
		closeIdx++
	}
	if closeIdx >= len(src) || src[closeIdx] != ']' {
		return extent{}, false
	}

	ext := extent{start: start, open: open, close: closeIdx, end: closeIdx + 1, style: styleShortcut}

	after := closeIdx + 1
	if after < len(src) {
		switch src[after] {
		case '(':
			if end := matchParen(src, after); end >= 0 {
				ext.end = end + 1
				ext.style = styleInline
			}
		case '[':
			end := matchBracket(src, after)
			switch {
			case end == after+1:
				ext.end = end + 1
				ext.style = styleCollapsed
			case end > after && c.isDefined(src[after+1:end]):
				ext.end = end + 1
				ext.style = styleFull
			}
		}
	}

	return ext, true
}

// textBounds returns the smallest source span covering the text below node.
// Nested images count with their full syntax.
func (c *collector) textBounds(node ast.Node) (int, int, bool) {
	start, end := -1, -1

	extend := func(from, to int) {
		if start < 0 || from < start {
			start = from
		}
		if to > end {
			end = to
		}
	}

	//nolint:errcheck // walker never returns an error
	ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || child == node {
			return ast.WalkContinue, nil
		}

		switch n := child.(type) {
		case *ast.Text:
			extend(n.Segment.Start, n.Segment.Stop)
		case *ast.RawHTML:
			for i := range n.Segments.Len() {
				seg := n.Segments.At(i)
				extend(seg.Start, seg.Stop)
			}
		case *ast.Image:
			if ext, ok := c.locate(n, true); ok {
				extend(ext.start, ext.end)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			if ext, ok := c.locate(n, false); ok {
				extend(ext.start, ext.end)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return start, end, start >= 0
}

// isDefined reports whether the parser registered a definition for label.
// A shortcut link followed by an undefined [label] is not a full reference.
func (c *collector) isDefined(label []byte) bool {
	_, ok := c.pc.Reference(util.ToLinkReference(label))
	return ok
}

// rangeOf converts source offsets to a document range.
func (c *collector) rangeOf(start, end int) textdoc.Range {
	return textdoc.Range{
		Start: c.doc.PositionAt(c.base + start),
		End:   c.doc.PositionAt(c.base + end),
	}
}

// matchParen returns the index of the parenthesis closing the one at open,
// honoring backslash escapes, angle-bracket destinations and quoted titles.
func matchParen(src []byte, open int) int {
	depth := 0
	var quote byte
	inAngle := false

	for idx := open; idx < len(src); idx++ {
		char := src[idx]

		switch {
		case char == '\\':
			idx++
		case quote != 0:
			if char == quote {
				quote = 0
			}
		case inAngle:
			if char == '>' {
				inAngle = false
			}
		case char == '<' && isDestinationStart(src, open, idx):
			inAngle = true
		case (char == '"' || char == '\'') && isSpace(src[idx-1]):
			quote = char
		case char == '(':
			depth++
		case char == ')':
			depth--
			if depth == 0 {
				return idx
			}
		}
	}

	return -1
}

// isDestinationStart reports whether idx is the first non-space byte after open.
func isDestinationStart(src []byte, open, idx int) bool {
	for pos := open + 1; pos < idx; pos++ {
		if !isSpace(src[pos]) {
			return false
		}
	}
	return true
}

// matchBracket returns the index of the bracket closing the one at open.
// Labels cannot contain unescaped brackets.
func matchBracket(src []byte, open int) int {
	for idx := open + 1; idx < len(src); idx++ {
		switch src[idx] {
		case '\\':
			idx++
		case '[':
			return -1
		case ']':
			return idx
		}
	}
	return -1
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}
