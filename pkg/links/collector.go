package links

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"

	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// Reference definition pattern: [label]: destination "optional title"
// Matches at start of line (with up to 3 spaces indent).
var refDefPattern = regexp.MustCompile(
	`^ {0,3}\[([^\]]+)\]:[ \t]*(<[^>]*>|\S+)(?:[ \t]+"[^"]*"|[ \t]+'[^']*'|[ \t]+\([^)]*\))?[ \t]*$`,
)

// collector gathers links from a parsed document.
type collector struct {
	doc     *textdoc.Document
	docPath string

	// source is the parsed text; base is its offset in the document.
	source []byte
	base   int

	pc parser.Context

	// skipLines holds document lines that cannot contain definitions.
	skipLines map[int]bool

	links []*Link
}

// collectLinks walks the AST, recording links and the lines of blocks that
// hide their content from definition scanning.
func (c *collector) collectLinks(root ast.Node) {
	//nolint:errcheck // walker never returns an error
	ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			c.skipBlockLines(n)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			c.skipTextLines(n)
		case *ast.Link:
			if link := c.inlineLink(n, n.Destination, false); link != nil {
				c.links = append(c.links, link)
			}
		case *ast.Image:
			if link := c.inlineLink(n, n.Destination, true); link != nil {
				c.links = append(c.links, link)
			}
		}

		return ast.WalkContinue, nil
	})
}

// skipBlockLines marks every line of a code or HTML block, fences included.
func (c *collector) skipBlockLines(node ast.Node) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return
	}

	first := c.doc.PositionAt(c.base + lines.At(0).Start).Line
	last := c.doc.PositionAt(c.base + lines.At(lines.Len()-1).Start).Line

	if _, fenced := node.(*ast.FencedCodeBlock); fenced {
		first--
		last++
	}

	for line := first; line <= last; line++ {
		c.skipLines[line] = true
	}
}

// skipTextLines marks the lines that remain in a paragraph-like block after
// goldmark has stripped its leading definitions. Lazy continuation lines that
// look like definitions stay in the block and are therefore prose.
func (c *collector) skipTextLines(node ast.Node) {
	lines := node.Lines()
	for i := range lines.Len() {
		c.skipLines[c.doc.PositionAt(c.base+lines.At(i).Start).Line] = true
	}
}

// collectDefinitions scans source lines for link reference definitions.
// Candidates must sit outside every text block and match a definition
// goldmark registered.
func (c *collector) collectDefinitions() {
	start := c.doc.PositionAt(c.base)
	firstLine := start.Line
	if start.Character > 0 {
		firstLine++
	}

	for lineNum := firstLine; lineNum < c.doc.LineCount(); lineNum++ {
		if c.skipLines[lineNum] {
			continue
		}

		line := c.doc.Line(lineNum)
		match := refDefPattern.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}

		label := line[match[2]:match[3]]
		if !c.isDefined([]byte(label)) {
			continue
		}

		hrefStart := match[3] + len("]:")
		for hrefStart < len(line) && (line[hrefStart] == ' ' || line[hrefStart] == '\t') {
			hrefStart++
		}
		hrefEnd := len(strings.TrimRight(line, " \t"))

		c.links = append(c.links, &Link{
			Kind:     KindDefinition,
			Href:     ParseHref(line[match[4]:match[5]], c.docPath),
			Ref:      label,
			RefRange: textdoc.NewRange(lineNum, match[2], lineNum, match[3]),
			Source: Source{
				Range:       textdoc.NewRange(lineNum, 0, lineNum, len(line)),
				TargetRange: textdoc.NewRange(lineNum, hrefStart, lineNum, hrefEnd),
				HrefText:    line[hrefStart:hrefEnd],
				HrefRange:   textdoc.NewRange(lineNum, hrefStart, lineNum, hrefEnd),
			},
		})
	}
}

// sorted returns the collected links ordered by start position.
func (c *collector) sorted() []*Link {
	slices.SortStableFunc(c.links, func(a, b *Link) int {
		return textdoc.ComparePosition(a.Source.Range.Start, b.Source.Range.Start)
	})
	return c.links
}
