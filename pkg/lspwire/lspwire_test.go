package lspwire_test

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/lspwire"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

const testURI = "file:///docs/readme.md"

func TestPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   textdoc.Position
		want protocol.Position
	}{
		{name: "origin", in: textdoc.NewPosition(0, 0), want: protocol.Position{}},
		{name: "positive", in: textdoc.NewPosition(3, 7), want: protocol.Position{Line: 3, Character: 7}},
		{name: "negative clamps", in: textdoc.NewPosition(-1, -5), want: protocol.Position{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lspwire.Position(tt.in))
		})
	}
}

func TestRange_RoundTrip(t *testing.T) {
	t.Parallel()

	rng := textdoc.NewRange(1, 2, 3, 4)
	assert.Equal(t, rng, lspwire.FromRange(lspwire.Range(rng)))
}

func TestWorkspaceEdit(t *testing.T) {
	t.Parallel()

	assert.Nil(t, lspwire.WorkspaceEdit(nil))

	builder := edit.NewBuilder()
	builder.Replace(testURI, textdoc.NewRange(0, 1, 0, 3), "x")
	builder.Insert(testURI, textdoc.NewPosition(2, 0), "y")

	got := lspwire.WorkspaceEdit(builder.GetEdit())
	require.NotNil(t, got)
	assert.Equal(t, []protocol.TextEdit{
		{Range: protocol.Range{Start: protocol.Position{Character: 1}, End: protocol.Position{Character: 3}}, NewText: "x"},
		{Range: protocol.Range{Start: protocol.Position{Line: 2}, End: protocol.Position{Line: 2}}, NewText: "y"},
	}, got.Changes[testURI])
}

func TestCodeAction_Disabled(t *testing.T) {
	t.Parallel()

	got := lspwire.CodeAction(linkdefs.CodeAction{
		Title:    linkdefs.ExtractTitle,
		Kind:     linkdefs.KindExtractLinkDefinition,
		Disabled: &linkdefs.Disabled{Reason: linkdefs.ReasonNotOnLink},
	})

	require.NotNil(t, got.Kind)
	assert.Equal(t, string(linkdefs.KindExtractLinkDefinition), *got.Kind)
	require.NotNil(t, got.Disabled)
	assert.Equal(t, linkdefs.ReasonNotOnLink, got.Disabled.Reason)
	assert.Nil(t, got.Edit)
	assert.Nil(t, got.Command)
}

func TestCodeActions_FromExtractor(t *testing.T) {
	t.Parallel()

	content := "See [my link](https://example.com).\n"
	doc := textdoc.New(testURI, []byte(content))
	extractor := linkdefs.NewExtractor(links.NewGoldmarkProvider(links.FlavorCommonMark))

	actions, err := extractor.Extract(context.Background(), doc,
		textdoc.EmptyRange(textdoc.NewPosition(0, 6)), linkdefs.CodeActionContext{})
	require.NoError(t, err)

	got := lspwire.CodeActions(actions)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Edit)
	assert.Len(t, got[0].Edit.Changes[testURI], 2)

	require.NotNil(t, got[0].Command)
	assert.Equal(t, linkdefs.RenameCommand, got[0].Command.Command)
	require.Len(t, got[0].Command.Arguments, 2)
	assert.Equal(t, testURI, got[0].Command.Arguments[0])
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, got[0].Command.Arguments[1])

	data, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"refactor.extract.linkDefinition"`)
	assert.NotContains(t, string(data), `"disabled"`)
}

func TestCodeActionContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, lspwire.CodeActionContext(protocol.CodeActionContext{}).Only)

	got := lspwire.CodeActionContext(protocol.CodeActionContext{Only: []protocol.CodeActionKind{"refactor"}})
	assert.Equal(t, []linkdefs.CodeActionKind{linkdefs.KindRefactor}, got.Only)
	assert.True(t, got.Allows(linkdefs.KindExtractLinkDefinition))

	empty := lspwire.CodeActionContext(protocol.CodeActionContext{Only: []protocol.CodeActionKind{}})
	assert.False(t, empty.Allows(linkdefs.KindExtractLinkDefinition))
}

func TestDocumentLinks(t *testing.T) {
	t.Parallel()

	content := "[ext](https://example.com) [local](other.md#top) [ref][r]\n\n[r]: https://r.example\n"
	doc := textdoc.FromFile("/docs/readme.md", []byte(content))

	docLinks, err := links.NewGoldmarkProvider(links.FlavorCommonMark).GetLinks(context.Background(), doc)
	require.NoError(t, err)

	got := lspwire.DocumentLinks(doc, docLinks)
	require.Len(t, got, len(docLinks.Links))

	var targets []string
	for _, link := range got {
		if link.Target != nil {
			targets = append(targets, *link.Target)
		}
	}
	assert.Contains(t, targets, "https://example.com")
	assert.Contains(t, targets, textdoc.FileURI("/docs/other.md")+"#top")

	assert.Nil(t, lspwire.DocumentLinks(doc, nil))
}

func TestDocumentLinks_ByteColumns(t *testing.T) {
	t.Parallel()

	doc := textdoc.FromFile("/docs/readme.md", []byte("é [x](https://a.example)\n"))

	docLinks, err := links.NewGoldmarkProvider(links.FlavorCommonMark).GetLinks(context.Background(), doc)
	require.NoError(t, err)

	got := lspwire.DocumentLinks(doc, docLinks)
	require.Len(t, got, 1)

	assert.Equal(t, "utf-8", lspwire.PositionEncoding)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 7},
		End:   protocol.Position{Line: 0, Character: 24},
	}, got[0].Range)
}
