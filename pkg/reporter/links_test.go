package reporter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/pkg/reporter"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

func linksReport(t *testing.T) *reporter.LinksReport {
	t.Helper()

	path := "/work/readme.md"
	doc := textdoc.FromFile(path, []byte("See [site](https://example.com) and [ref][a].\n\n[a]: ./a.md\n"))
	docLinks, err := newProvider().GetLinks(context.Background(), doc)
	require.NoError(t, err)

	return &reporter.LinksReport{Path: path, Document: doc, Links: docLinks}
}

func TestTextReporter_ReportLinks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, reporter.FormatText, &buf).ReportLinks(context.Background(), linksReport(t)))

	out := buf.String()
	assert.Contains(t, out, "readme.md")
	assert.Contains(t, out, "TARGET")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "[a]")
}

func TestJSONReporter_ReportLinks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, reporter.FormatJSON, &buf).ReportLinks(context.Background(), linksReport(t)))

	var output reporter.JSONLinksOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, textdoc.FileURI("/work/readme.md"), output.URI)
	assert.Equal(t, "utf-8", output.PositionEncoding)
	require.Len(t, output.Links, 3)
	assert.Len(t, output.DocumentLinks, 3)

	kinds := map[string]int{}
	for _, link := range output.Links {
		kinds[link.HrefKind]++
	}
	assert.Equal(t, map[string]int{"external": 1, "reference": 1, "internal": 1}, kinds)

	first := output.Links[0]
	assert.Equal(t, "link", first.Kind)
	assert.Equal(t, "https://example.com", first.Href)
	assert.EqualValues(t, 0, first.Range.Start.Line)
	assert.EqualValues(t, 4, first.Range.Start.Character)
}
