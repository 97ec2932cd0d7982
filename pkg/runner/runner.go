package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/mdrefs/internal/logging"
)

// Runner organizes many files concurrently using a Pipeline.
type Runner struct {
	// Pipeline handles per-file processing.
	Pipeline *Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and organizes them with a worker
// pool. Outcomes are reported in discovery order regardless of which
// worker finished first. On cancellation the partial result is returned
// together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options, pipelineOpts PipelineOptions) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	type indexed struct {
		index   int
		outcome FileOutcome
	}

	workCh := make(chan int)
	outCh := make(chan indexed)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range workCh {
				if ctx.Err() != nil {
					return
				}
				outcome := r.processOne(ctx, files[index], pipelineOpts)
				select {
				case <-ctx.Done():
					return
				case outCh <- indexed{index: index, outcome: outcome}:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for index := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- index:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]*FileOutcome, len(files))
	for item := range outCh {
		outcome := item.outcome
		outcomes[item.index] = &outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(started),
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) processOne(ctx context.Context, path string, opts PipelineOptions) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	fileResult, err := r.Pipeline.ProcessFile(ctx, path, opts)
	if err != nil {
		logger.Warn("processing failed", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}

	logger.Debug("processed",
		logging.FieldEdits, len(fileResult.Edits),
		logging.FieldWrite, fileResult.Written,
	)
	if fileResult.BackupPath != "" {
		logger.Debug("backup created", logging.FieldBackup, fileResult.BackupPath)
	}

	outcome.Result = fileResult
	return outcome
}
