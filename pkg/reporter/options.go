package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdrefs/internal/ui/pretty"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// maxParentTraversals is the number of "../" segments a display path may
// carry before the basename is shown instead.
const maxParentTraversals = 2

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowEdits lists every pending edit under its file in text output.
	ShowEdits bool

	// Compact uses minified JSON.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, the process working directory is used.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       pretty.ColorAuto,
		ShowSummary: true,
	}
}

// displayPath converts an absolute path to one relative to the working
// directory. If the relative path climbs too far, the basename is used.
func (o Options) displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	base := o.WorkingDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.Base(path)
		}
		base = cwd
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > maxParentTraversals {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
