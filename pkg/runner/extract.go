package runner

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/fsutil"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// ExtractResult is the outcome of an extract request on one file.
type ExtractResult struct {
	// Path is the file path that was processed.
	Path string

	// URI identifies the document in the actions' edits.
	URI string

	// Actions are the code actions offered for the requested range.
	Actions []linkdefs.CodeAction

	// Updated is the content after applying the first enabled action;
	// nil when no action is applicable.
	Updated []byte

	// Diff is the unified diff for Updated.
	Diff *edit.Diff

	// Written is true if Updated was written to disk.
	Written bool

	// BackupPath is set when a backup was created before writing.
	BackupPath string
}

// Applicable returns the first enabled action, if any.
func (r *ExtractResult) Applicable() (*linkdefs.CodeAction, bool) {
	for i := range r.Actions {
		if r.Actions[i].Disabled == nil && r.Actions[i].Edit != nil {
			return &r.Actions[i], true
		}
	}
	return nil, false
}

// ExtractFile computes the extract-to-definition action for rng in path.
// The result content is previewed in Updated; with opts.Write it is also
// written back the way ProcessFile writes.
func (p *Pipeline) ExtractFile(
	ctx context.Context,
	path string,
	rng textdoc.Range,
	actionCtx linkdefs.CodeActionContext,
	opts PipelineOptions,
) (*ExtractResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	doc := textdoc.FromFile(path, content)
	result := &ExtractResult{Path: path, URI: doc.URI()}

	actions, err := p.extractor.Extract(ctx, doc, rng, actionCtx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}
	result.Actions = actions

	action, ok := result.Applicable()
	if !ok {
		return result, nil
	}

	updated, err := edit.ApplyWorkspaceEdit(doc, action.Edit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrApplyFailure, err)
	}
	if bytes.Equal(updated, content) {
		return result, nil
	}
	result.Updated = updated
	result.Diff = edit.ComputeDiff(path, content, updated)

	if !opts.Write {
		return result, nil
	}

	written, err := fsutil.SafeWrite(ctx, snap, updated, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	result.Written = true
	result.BackupPath = written.BackupPath

	return result, nil
}
