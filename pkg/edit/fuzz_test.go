package edit_test

import (
	"testing"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

func FuzzComputeDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("hello"), []byte("hello\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("[b]: /b\n[a]: /a\n"), []byte("[a]: /a\n[b]: /b\n"))
	f.Add([]byte("1\n2\n3\n4\n5\n6\n7\n8\n9\n"), []byte("x\n2\n3\n4\n5\n6\n7\n8\ny\n"))

	f.Fuzz(func(t *testing.T, before, after []byte) {
		diff := edit.ComputeDiff("test.md", before, after)
		if diff == nil {
			if string(before) != string(after) {
				t.Fatal("nil diff for different contents")
			}
			return
		}
		if diff.Path != "test.md" {
			t.Errorf("Path = %q, want test.md", diff.Path)
		}
		_ = diff.String()

		var insertions, deletions int
		for hunkIdx, hunk := range diff.Hunks {
			if hunk.OldStart < 1 || hunk.NewStart < 1 {
				t.Errorf("hunk %d: starts %d,%d, want >= 1", hunkIdx, hunk.OldStart, hunk.NewStart)
			}

			var keep, ins, del int
			for _, line := range hunk.Lines {
				switch line.Op {
				case edit.LineKeep:
					keep++
				case edit.LineInsert:
					ins++
				case edit.LineDelete:
					del++
				}
			}
			if keep+del != hunk.OldCount {
				t.Errorf("hunk %d: keep(%d) + delete(%d) != OldCount(%d)", hunkIdx, keep, del, hunk.OldCount)
			}
			if keep+ins != hunk.NewCount {
				t.Errorf("hunk %d: keep(%d) + insert(%d) != NewCount(%d)", hunkIdx, keep, ins, hunk.NewCount)
			}
			insertions += ins
			deletions += del
		}
		if insertions != diff.Insertions || deletions != diff.Deletions {
			t.Errorf("totals %d/%d, hunks count %d/%d", diff.Insertions, diff.Deletions, insertions, deletions)
		}
	})
}

func FuzzApplyTextEdits(f *testing.F) {
	f.Add([]byte("hello world"), 0, 0, 0, 5, "bye")
	f.Add([]byte("a\nb\nc\n"), 1, 0, 2, 0, "")
	f.Add([]byte(""), 0, 0, 0, 0, "new")
	f.Add([]byte("x\n"), 5, 3, 9, 1, "tail")

	f.Fuzz(func(t *testing.T, content []byte, startLine, startChar, endLine, endChar int, newText string) {
		doc := textdoc.New("test.md", content)
		edits := []edit.TextEdit{{
			Range:   textdoc.NewRange(startLine, startChar, endLine, endChar),
			NewText: newText,
		}}

		// Out-of-range positions clamp; only reversed ranges may fail.
		result, err := edit.ApplyTextEdits(doc, edits)
		if err != nil {
			return
		}
		if len(result) > len(content)+len(newText) {
			t.Errorf("result grew by more than the inserted text: %d > %d+%d",
				len(result), len(content), len(newText))
		}
	})
}
