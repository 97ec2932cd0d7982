// Package reporter renders organize, extract and links results as text,
// JSON or unified diffs.
package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/runner"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// ErrUnsupported is returned when a format cannot render a kind of result.
var ErrUnsupported = errors.New("not supported by this format")

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
	_ Reporter = (*DiffReporter)(nil)
)

// Reporter formats and writes results.
type Reporter interface {
	// Report writes output for an organize run. It returns the number of
	// files whose definitions are (or were) out of order.
	Report(ctx context.Context, result *runner.Result) (int, error)

	// ReportExtract writes the code actions offered for one file.
	ReportExtract(ctx context.Context, result *runner.ExtractResult) error

	// ReportLinks writes the links found in one document.
	ReportLinks(ctx context.Context, report *LinksReport) error
}

// LinksReport is the input of ReportLinks.
type LinksReport struct {
	Path     string
	Document *textdoc.Document
	Links    *links.DocumentLinks
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
