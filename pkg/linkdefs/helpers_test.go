package linkdefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

const testURI = "test.md"

// staticProvider returns fixed links or a fixed error.
type staticProvider struct {
	links *links.DocumentLinks
	err   error
}

func (p staticProvider) GetLinks(_ context.Context, _ *textdoc.Document) (*links.DocumentLinks, error) {
	return p.links, p.err
}

func newDoc(content string) *textdoc.Document {
	return textdoc.New(testURI, []byte(content))
}

func newProvider() links.Provider {
	return links.NewGoldmarkProvider(links.FlavorCommonMark)
}

// definitionOn builds a single-line definition for tests that only care
// about line numbers.
func definitionOn(line int, label string) *links.Link {
	text := "[" + label + "]: /" + label
	return &links.Link{
		Kind: links.KindDefinition,
		Href: links.InternalHref{Path: "/" + label},
		Ref:  label,
		Source: links.Source{
			Range:    textdoc.NewRange(line, 0, line, len(text)),
			HrefText: "/" + label,
		},
	}
}

// applyEdits applies edits to doc and returns the resulting text.
func applyEdits(t *testing.T, doc *textdoc.Document, edits []edit.TextEdit) string {
	t.Helper()

	result, err := edit.ApplyTextEdits(doc, edits)
	require.NoError(t, err)

	return string(result)
}
