package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdrefs/pkg/config"
	"github.com/yaklabco/mdrefs/pkg/edit"
	"github.com/yaklabco/mdrefs/pkg/fsutil"
	"github.com/yaklabco/mdrefs/pkg/linkdefs"
	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// Pipeline error types for categorization.
var (
	// ErrOrganizeFailure indicates the organizer could not compute edits.
	ErrOrganizeFailure = errors.New("organize failure")

	// ErrApplyFailure indicates computed edits could not be applied.
	ErrApplyFailure = errors.New("apply failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineOptions controls how a single file is processed.
type PipelineOptions struct {
	// Organize is passed through to the organizer.
	Organize linkdefs.OrganizeOptions

	// Write applies the result to disk. Otherwise the file is untouched.
	Write bool

	// Backup configures backups made before writing.
	Backup fsutil.BackupConfig
}

// PipelineOptionsFromConfig derives PipelineOptions from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return PipelineOptions{
		Organize: linkdefs.OrganizeOptions{RemoveUnused: cfg.Organize.RemoveUnused},
		Write:    cfg.Write,
		Backup:   BackupConfigFromConfig(cfg),
	}
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from cfg.
// --no-backups wins over the configured setting.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// FileResult is the outcome of organizing one file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Edits are the organizer's edits against the original content.
	Edits []edit.TextEdit

	// Original is the content that was read.
	Original []byte

	// Updated is the content after applying Edits; nil when unchanged.
	Updated []byte

	// Diff is the unified diff between Original and Updated; nil when unchanged.
	Diff *edit.Diff

	// Written is true if Updated was written to disk.
	Written bool

	// BackupPath is set when a backup was created before writing.
	BackupPath string
}

// Changed reports whether organizing would modify the file.
func (r *FileResult) Changed() bool {
	return r != nil && r.Updated != nil
}

// Pipeline organizes and extracts link definitions in single files.
type Pipeline struct {
	organizer *linkdefs.Organizer
	extractor *linkdefs.Extractor
}

// NewPipeline creates a Pipeline that reads links through provider.
func NewPipeline(provider links.Provider) *Pipeline {
	return &Pipeline{
		organizer: linkdefs.NewOrganizer(provider),
		extractor: linkdefs.NewExtractor(provider),
	}
}

// ProcessFile reads path, organizes its definitions and, with opts.Write,
// writes the result back atomically. A file changed on disk while it was
// being processed is not overwritten; the error matches fsutil.ErrFileModified.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.ProcessContent(ctx, path, content, opts.Organize)
	if err != nil {
		return nil, err
	}

	if !opts.Write || !result.Changed() {
		return result, nil
	}

	written, err := fsutil.SafeWrite(ctx, snap, result.Updated, opts.Backup)
	if err != nil {
		if errors.Is(err, fsutil.ErrFileModified) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	result.BackupPath = written.BackupPath

	return result, nil
}

// ProcessContent organizes content in memory without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts linkdefs.OrganizeOptions,
) (*FileResult, error) {
	result := &FileResult{Path: path, Original: content}

	doc := textdoc.FromFile(path, content)
	edits, err := p.organizer.Organize(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOrganizeFailure, err)
	}
	// The organizer reports cancellation as "no edits".
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}
	result.Edits = edits

	if len(edits) == 0 {
		return result, nil
	}

	updated, err := edit.ApplyTextEdits(doc, edits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrApplyFailure, err)
	}
	if bytes.Equal(updated, content) {
		return result, nil
	}

	result.Updated = updated
	result.Diff = edit.ComputeDiff(path, content, updated)
	return result, nil
}
