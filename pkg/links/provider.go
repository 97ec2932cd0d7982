package links

import (
	"bytes"
	"context"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// Markdown flavors understood by the provider.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Provider returns the links of a document. Implementations must be safe
// to call repeatedly on the same document without side effects.
type Provider interface {
	GetLinks(ctx context.Context, doc *textdoc.Document) (*DocumentLinks, error)
}

// GoldmarkProvider finds links using the goldmark parser.
type GoldmarkProvider struct {
	flavor string
	md     goldmark.Markdown
}

// NewGoldmarkProvider creates a provider for the given flavor.
// Unknown flavors fall back to CommonMark.
func NewGoldmarkProvider(flavor string) *GoldmarkProvider {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &GoldmarkProvider{
		flavor: flavor,
		md:     goldmark.New(opts...),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *GoldmarkProvider) Flavor() string {
	return p.flavor
}

// GetLinks parses doc and returns its inline links and definitions in
// document order.
func (p *GoldmarkProvider) GetLinks(ctx context.Context, doc *textdoc.Document) (*DocumentLinks, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get links cancelled: %w", err)
	}

	content := doc.Content()
	bodyStart := frontMatterEnd(content)
	body := content[bodyStart:]

	pc := parser.NewContext()
	root := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get links cancelled: %w", err)
	}

	coll := &collector{
		doc:       doc,
		docPath:   doc.Path(),
		source:    body,
		base:      bodyStart,
		pc:        pc,
		skipLines: make(map[int]bool),
	}
	coll.collectLinks(root)
	coll.collectDefinitions()

	return NewDocumentLinks(coll.sorted()), nil
}

// frontMatterEnd returns the offset of the first byte after a leading front
// matter block, or 0 when the document has none.
func frontMatterEnd(content []byte) int {
	var meta map[string]any

	rest, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil || len(rest) >= len(content) || !bytes.HasSuffix(content, rest) {
		return 0
	}

	return len(content) - len(rest)
}

// Ensure GoldmarkProvider implements Provider.
var _ Provider = (*GoldmarkProvider)(nil)
