package linkdefs

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// Titles and reasons of the extract action.
const (
	ExtractTitle       = "Extract to link definition"
	ReasonNotOnLink    = "Not on link"
	ReasonAlreadyARef  = "Link is already a reference"
	RenameCommandTitle = "Rename"
)

// RenameCommand is the command attached to an extract action. Its
// arguments are the document URI and the position of the new label.
const RenameCommand = "mdrefs.rename"

// placeholderBase is the label given to the first extracted definition.
const placeholderBase = "def"

// Extractor turns inline links into reference links backed by a new
// link definition.
type Extractor struct {
	provider links.Provider
}

// NewExtractor creates an Extractor reading links from provider.
func NewExtractor(provider links.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract returns the extract action for the link under rng. A nil result
// means the action was not requested or the context was cancelled. When
// no suitable link is under rng the single action is disabled with a
// reason. Errors come from the link provider only.
func (e *Extractor) Extract(
	ctx context.Context,
	doc *textdoc.Document,
	rng textdoc.Range,
	actionCtx CodeActionContext,
) ([]CodeAction, error) {
	if !actionCtx.Allows(KindExtractLinkDefinition) {
		return nil, nil
	}
	if ctx.Err() != nil {
		return nil, nil
	}

	docLinks, err := e.provider.GetLinks(ctx, doc)
	if ctx.Err() != nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("extract link definition: %w", err)
	}

	var candidates []*links.Link
	for _, link := range docLinks.Links {
		if !link.IsDefinition() && link.Source.Range.Intersects(rng) {
			candidates = append(candidates, link)
		}
	}
	if len(candidates) == 0 {
		return []CodeAction{disabledAction(ReasonNotOnLink)}, nil
	}

	// Innermost link first.
	slices.SortStableFunc(candidates, func(a, b *links.Link) int {
		return textdoc.ComparePosition(b.Source.Range.Start, a.Source.Range.Start)
	})

	target := firstExtractable(candidates)
	if target == nil {
		return []CodeAction{disabledAction(ReasonAlreadyARef)}, nil
	}

	return []CodeAction{e.buildAction(doc, docLinks, target)}, nil
}

func (e *Extractor) buildAction(doc *textdoc.Document, docLinks *links.DocumentLinks, target *links.Link) CodeAction {
	placeholder := FreshPlaceholder(docLinks.Definitions)
	builder := edit.NewBuilder()

	for _, link := range docLinks.Links {
		if link.Kind == links.KindLink && links.HrefEqual(link.Href, target.Href) {
			builder.Replace(doc.URI(), link.Source.TargetRange, "["+placeholder+"]")
		}
	}

	definitionText := definitionTarget(doc, target)
	entry := "[" + placeholder + "]: " + definitionText

	if block, ok := Locate(doc, orderedDefinitions(docLinks)); ok {
		endOfBlock := textdoc.NewPosition(block.EndLine, doc.LineLength(block.EndLine))
		builder.Insert(doc.URI(), endOfBlock, doc.EOL()+entry)
	} else {
		builder.Insert(doc.URI(), textdoc.NewPosition(doc.LineCount(), 0), doc.EOL()+doc.EOL()+entry)
	}

	renamePosition := target.Source.TargetRange.Start.Translate(0, 1)

	return CodeAction{
		Title: ExtractTitle,
		Kind:  KindExtractLinkDefinition,
		Edit:  builder.GetEdit(),
		Command: &Command{
			Title:     RenameCommandTitle,
			Command:   RenameCommand,
			Arguments: []any{doc.URI(), renamePosition},
		},
	}
}

// firstExtractable returns the first link pointing at a document or URI.
func firstExtractable(candidates []*links.Link) *links.Link {
	for _, link := range candidates {
		switch link.Href.(type) {
		case links.ExternalHref, links.InternalHref:
			return link
		case links.ReferenceHref:
		}
	}
	return nil
}

// definitionTarget returns the target text of link without its delimiters.
func definitionTarget(doc *textdoc.Document, link *links.Link) string {
	rng := link.Source.TargetRange
	inner := textdoc.Range{
		Start: rng.Start.Translate(0, 1),
		End:   rng.End.Translate(0, -1),
	}
	return strings.TrimSpace(doc.GetText(inner))
}

// FreshPlaceholder returns the first of "def", "def2", "def3", ... that is
// not yet defined.
func FreshPlaceholder(defs *links.LinkDefinitionSet) string {
	for suffix := 1; ; suffix++ {
		label := placeholderBase
		if suffix > 1 {
			label += strconv.Itoa(suffix)
		}
		if !defs.Has(label) {
			return label
		}
	}
}

func disabledAction(reason string) CodeAction {
	return CodeAction{
		Title:    ExtractTitle,
		Kind:     KindExtractLinkDefinition,
		Disabled: &Disabled{Reason: reason},
	}
}
