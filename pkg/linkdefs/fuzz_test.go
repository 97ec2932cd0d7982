package linkdefs_test

import (
	"context"
	"testing"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
)

func FuzzOrganize(f *testing.F) {
	f.Add("", false)
	f.Add("[a]: /a\n", false)
	f.Add("See [x][a].\n\n[b]: /b\n[a]: /a\n", true)
	f.Add("[b]: /b\ntext\n[a]: /a", false)
	f.Add("# Title\n\n[c]: /c\n\nBody [c] and [d].\n\n[d]: /d\n", true)
	f.Add("[a]: https://a.example\n\nSee [x][a] here\n[a]: https://b.example\n", false)
	f.Add("- item\n- item\n[a]: /a\n[b]: /b\n# H\n[a]: /a\n", false)
	f.Add("> quote [a]\n[a]: /x\n\n[b]: /b\n[a]: /a\n", false)
	f.Add("[b]: /b\r\n\r\nText [a][] [b][]\r\n\r\n[a]: /a\r\n", false)

	organizer := linkdefs.NewOrganizer(newProvider())

	f.Fuzz(func(t *testing.T, content string, removeUnused bool) {
		ctx := context.Background()

		doc := newDoc(content)
		edits, err := organizer.Organize(ctx, doc, linkdefs.OrganizeOptions{RemoveUnused: removeUnused})
		if err != nil {
			return
		}
		result, err := edit.ApplyTextEdits(doc, edits)
		if err != nil {
			t.Fatalf("organize produced unusable edits for %q: %v", content, err)
		}

		if removeUnused {
			return
		}

		again, err := organizer.Organize(ctx, newDoc(string(result)), linkdefs.OrganizeOptions{})
		if err != nil {
			t.Fatalf("second organize of %q failed: %v", result, err)
		}
		if len(again) != 0 {
			t.Fatalf("organize is not idempotent for %q: result %q needs %d more edits", content, result, len(again))
		}
	})
}
