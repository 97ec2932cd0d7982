package reporter_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/lspwire"
	"github.com/yaklabco/mdrefs/pkg/reporter"
	"github.com/yaklabco/mdrefs/pkg/runner"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

const (
	workDir     = "/work"
	unsortedDoc = "Text [a][] [b][]\n\n[b]: /b\n[a]: /a\n"
)

func newProvider() links.Provider {
	return links.NewGoldmarkProvider(links.FlavorCommonMark)
}

// organizeResult builds a run result with one changed file, one clean file
// and one failed file.
func organizeResult(t *testing.T) *runner.Result {
	t.Helper()

	pipeline := runner.NewPipeline(newProvider())

	changedPath := filepath.Join(workDir, "docs", "changed.md")
	changed, err := pipeline.ProcessContent(context.Background(), changedPath, []byte(unsortedDoc), linkdefs.OrganizeOptions{})
	require.NoError(t, err)
	require.True(t, changed.Changed())

	cleanPath := filepath.Join(workDir, "clean.md")
	clean, err := pipeline.ProcessContent(context.Background(), cleanPath, []byte("No links here.\n"), linkdefs.OrganizeOptions{})
	require.NoError(t, err)

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: changedPath, Result: changed},
			{Path: cleanPath, Result: clean},
			{Path: filepath.Join(workDir, "broken.md"), Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesProcessed:  2,
			FilesErrored:    1,
			FilesChanged:    1,
			EditsTotal:      len(changed.Edits),
		},
	}
}

func newReporter(t *testing.T, format reporter.Format, buf *bytes.Buffer) reporter.Reporter {
	t.Helper()

	rep, err := reporter.New(reporter.Options{
		Writer:      buf,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		ShowEdits:   true,
		WorkingDir:  workDir,
	})
	require.NoError(t, err)

	return rep
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), organizeResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "docs/changed.md (")
	assert.NotContains(t, out, "clean.md")
	assert.Contains(t, out, "broken.md: error: permission denied")
	assert.Contains(t, out, "1 file needs organizing")
	assert.Contains(t, out, "2 files checked")
	assert.Contains(t, out, "1 file failed")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No Markdown files found.")
}

func TestJSONReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatJSON, &buf).Report(context.Background(), organizeResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, lspwire.PositionEncoding, output.PositionEncoding)
	require.Len(t, output.Files, 3)
	assert.True(t, output.Files[0].Changed)
	assert.NotEmpty(t, output.Files[0].Edits)
	assert.Equal(t, textdoc.FileURI(output.Files[0].Path), output.Files[0].URI)
	assert.False(t, output.Files[1].Changed)
	assert.Empty(t, output.Files[1].Edits)
	assert.Equal(t, "permission denied", output.Files[2].Error)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked: 2,
		FilesChanged: 1,
		FilesErrored: 1,
		EditsTotal:   output.Summary.EditsTotal,
	}, output.Summary)
	assert.Positive(t, output.Summary.EditsTotal)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"files":[]`)
}

func TestDiffReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatDiff, &buf).Report(context.Background(), organizeResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/docs/changed.md b/docs/changed.md")
	assert.Contains(t, out, "--- a/docs/changed.md")
	assert.Contains(t, out, "+++ b/docs/changed.md")
	assert.Contains(t, out, "@@ ")
	assert.Contains(t, out, "\n+[")
	assert.Contains(t, out, "\n-[")
	assert.Contains(t, out, "1 file changed")
	assert.NotContains(t, out, "clean.md")
}

func TestDiffReporter_LinksUnsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := newReporter(t, reporter.FormatDiff, &buf).ReportLinks(context.Background(), &reporter.LinksReport{Path: "a.md"})
	require.ErrorIs(t, err, reporter.ErrUnsupported)
}
