// Package lspwire converts mdrefs results into Language Server Protocol
// 3.16 values, so JSON output can be fed straight to an LSP client.
//
// Characters in positions are UTF-8 byte offsets within the line, not the
// UTF-16 code units LSP assumes by default. Clients must negotiate the
// "utf-8" position encoding (LSP 3.17) or convert; see PositionEncoding.
package lspwire

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// PositionEncoding names the unit of Position.Character in every value this
// package produces, using the LSP 3.17 positionEncoding vocabulary.
const PositionEncoding = "utf-8"

// Position converts a position. Negative components clamp to zero.
func Position(pos textdoc.Position) protocol.Position {
	return protocol.Position{
		Line:      toUInteger(pos.Line),
		Character: toUInteger(pos.Character),
	}
}

// Range converts a range.
func Range(rng textdoc.Range) protocol.Range {
	return protocol.Range{
		Start: Position(rng.Start),
		End:   Position(rng.End),
	}
}

// FromPosition converts an LSP position back into a textdoc position.
func FromPosition(pos protocol.Position) textdoc.Position {
	return textdoc.NewPosition(int(pos.Line), int(pos.Character))
}

// FromRange converts an LSP range back into a textdoc range.
func FromRange(rng protocol.Range) textdoc.Range {
	return textdoc.Range{Start: FromPosition(rng.Start), End: FromPosition(rng.End)}
}

// TextEdits converts edits, keeping their order.
func TextEdits(edits []edit.TextEdit) []protocol.TextEdit {
	out := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, protocol.TextEdit{Range: Range(e.Range), NewText: e.NewText})
	}
	return out
}

// WorkspaceEdit converts a workspace edit. A nil edit converts to nil.
func WorkspaceEdit(w *edit.WorkspaceEdit) *protocol.WorkspaceEdit {
	if w == nil {
		return nil
	}
	changes := make(map[protocol.DocumentUri][]protocol.TextEdit, len(w.Changes))
	for _, uri := range w.URIs() {
		changes[uri] = TextEdits(w.EditsFor(uri))
	}
	return &protocol.WorkspaceEdit{Changes: changes}
}

// CodeAction converts a code action. Command arguments holding a
// textdoc.Position are converted to LSP positions.
func CodeAction(action linkdefs.CodeAction) protocol.CodeAction {
	kind := protocol.CodeActionKind(action.Kind)
	out := protocol.CodeAction{
		Title: action.Title,
		Kind:  &kind,
		Edit:  WorkspaceEdit(action.Edit),
	}

	if action.Disabled != nil {
		out.Disabled = &struct {
			Reason string `json:"reason"`
		}{Reason: action.Disabled.Reason}
	}

	if action.Command != nil {
		args := make([]any, 0, len(action.Command.Arguments))
		for _, arg := range action.Command.Arguments {
			if pos, ok := arg.(textdoc.Position); ok {
				arg = Position(pos)
			}
			args = append(args, arg)
		}
		out.Command = &protocol.Command{
			Title:     action.Command.Title,
			Command:   action.Command.Command,
			Arguments: args,
		}
	}

	return out
}

// CodeActions converts a list of code actions.
func CodeActions(actions []linkdefs.CodeAction) []protocol.CodeAction {
	out := make([]protocol.CodeAction, 0, len(actions))
	for _, action := range actions {
		out = append(out, CodeAction(action))
	}
	return out
}

// CodeActionContext converts an LSP code action context into the
// filter the extractor understands.
func CodeActionContext(ctx protocol.CodeActionContext) linkdefs.CodeActionContext {
	if ctx.Only == nil {
		return linkdefs.CodeActionContext{}
	}
	only := make([]linkdefs.CodeActionKind, 0, len(ctx.Only))
	for _, kind := range ctx.Only {
		only = append(only, linkdefs.CodeActionKind(kind))
	}
	return linkdefs.CodeActionContext{Only: only}
}

// DocumentLinks converts the links of a document into LSP document links.
// Only links whose target is a URI or a file get an LSP target; reference
// links and definitions point back into the same document and are left
// without a target.
func DocumentLinks(doc *textdoc.Document, docLinks *links.DocumentLinks) []protocol.DocumentLink {
	if docLinks == nil {
		return nil
	}
	out := make([]protocol.DocumentLink, 0, len(docLinks.Links))
	for _, link := range docLinks.Links {
		documentLink := protocol.DocumentLink{Range: Range(link.Source.HrefRange)}
		if target, ok := linkTarget(doc, link.Href); ok {
			documentLink.Target = &target
		}
		out = append(out, documentLink)
	}
	return out
}

func linkTarget(doc *textdoc.Document, href links.Href) (protocol.DocumentUri, bool) {
	switch h := href.(type) {
	case links.ExternalHref:
		return h.URI, true
	case links.InternalHref:
		if h.Path == "" {
			return doc.URI() + fragmentSuffix(h.Fragment), true
		}
		return textdoc.FileURI(h.Path) + fragmentSuffix(h.Fragment), true
	default:
		return "", false
	}
}

func fragmentSuffix(fragment string) string {
	if fragment == "" {
		return ""
	}
	return "#" + fragment
}

func toUInteger(v int) protocol.UInteger {
	if v < 0 {
		return 0
	}
	return protocol.UInteger(v)
}
