package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdrefs/internal/ui/pretty"
	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/runner"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "Link definitions are organized, 4 files checked\n",
		},
		{
			name:  "pending single file",
			stats: runner.Stats{FilesProcessed: 4, FilesChanged: 1, EditsTotal: 1},
			want:  "1 file needs organizing (1 edit), 4 files checked\n",
		},
		{
			name:  "pending",
			stats: runner.Stats{FilesProcessed: 4, FilesChanged: 2, EditsTotal: 3},
			want:  "2 files need organizing (3 edits), 4 files checked\n",
		},
		{
			name:  "written with failures",
			stats: runner.Stats{FilesProcessed: 1, FilesChanged: 2, FilesWritten: 2, EditsTotal: 2, FilesErrored: 1},
			want:  "Organized 2 files (2 edits), 1 file checked, 1 file failed\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 10, FilesChanged: 3, EditsTotal: 5})
	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     10")
	assert.Contains(t, result, "Files to organize: 3")
	assert.Contains(t, result, "Total edits:       5")
	assert.NotContains(t, result, "Files written:")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatFileHelpers(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.md (1 edit)", styles.FormatFileHeader("a.md", 1))
	assert.Equal(t, "a.md: error: boom", styles.FormatFileError("a.md", errors.New("boom")))

	assert.Equal(t, `  1:5-1:5 insert "[x]: /x"`,
		styles.FormatEdit(edit.TextEdit{Range: textdoc.EmptyRange(textdoc.NewPosition(0, 4)), NewText: "\n[x]: /x"}))
	assert.Equal(t, "  2:1-3:1 delete",
		styles.FormatEdit(edit.TextEdit{Range: textdoc.NewRange(1, 0, 2, 0)}))
	assert.Equal(t, `  1:1-1:4 replace with "[a]"`,
		styles.FormatEdit(edit.TextEdit{Range: textdoc.NewRange(0, 0, 0, 3), NewText: "[a]"}))
}

func TestFormatAction(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	disabled := linkdefs.CodeAction{
		Title:    linkdefs.ExtractTitle,
		Kind:     linkdefs.KindExtractLinkDefinition,
		Disabled: &linkdefs.Disabled{Reason: linkdefs.ReasonNotOnLink},
	}
	assert.Equal(t, "Extract to link definition (disabled: Not on link)", styles.FormatAction(disabled))

	builder := edit.NewBuilder()
	builder.Replace("u", textdoc.NewRange(0, 0, 0, 1), "x")
	enabled := linkdefs.CodeAction{
		Title: linkdefs.ExtractTitle,
		Kind:  linkdefs.KindExtractLinkDefinition,
		Edit:  builder.GetEdit(),
	}
	assert.Equal(t, "Extract to link definition [refactor.extract.linkDefinition] (1 edit)", styles.FormatAction(enabled))
}
