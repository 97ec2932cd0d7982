package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/lspwire"
	"github.com/yaklabco/mdrefs/pkg/runner"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// jsonSchemaVersion identifies the layout of the JSON documents.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure of an organize run.
type JSONOutput struct {
	Version          string           `json:"version"`
	PositionEncoding string           `json:"positionEncoding"`
	Files            []JSONFileResult `json:"files"`
	Summary          JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's organize result. Edits use
// LSP text edit encoding with zero-based positions.
type JSONFileResult struct {
	Path    string              `json:"path"`
	URI     string              `json:"uri,omitempty"`
	Changed bool                `json:"changed"`
	Written bool                `json:"written,omitempty"`
	Backup  string              `json:"backup,omitempty"`
	Edits   []protocol.TextEdit `json:"edits"`
	Error   string              `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int `json:"filesChecked"`
	FilesChanged int `json:"filesChanged"`
	FilesWritten int `json:"filesWritten"`
	FilesErrored int `json:"filesErrored"`
	EditsTotal   int `json:"editsTotal"`
}

// JSONExtractOutput is the JSON structure of an extract request.
type JSONExtractOutput struct {
	Version          string                `json:"version"`
	PositionEncoding string                `json:"positionEncoding"`
	Path             string                `json:"path"`
	URI              string                `json:"uri"`
	Actions          []protocol.CodeAction `json:"actions"`
	Written          bool                  `json:"written,omitempty"`
	Backup           string                `json:"backup,omitempty"`
}

// JSONLinksOutput is the JSON structure of a links listing.
type JSONLinksOutput struct {
	Version          string                  `json:"version"`
	PositionEncoding string                  `json:"positionEncoding"`
	Path             string                  `json:"path"`
	URI              string                  `json:"uri"`
	Links            []JSONLink              `json:"links"`
	DocumentLinks    []protocol.DocumentLink `json:"documentLinks"`
}

// JSONLink represents one link or link definition.
type JSONLink struct {
	Kind        string         `json:"kind"`
	Image       bool           `json:"image,omitempty"`
	Label       string         `json:"label,omitempty"`
	Href        string         `json:"href"`
	HrefKind    string         `json:"hrefKind"`
	Range       protocol.Range `json:"range"`
	TargetRange protocol.Range `json:"targetRange"`
	HrefRange   protocol.Range `json:"hrefRange"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := buildOutput(result)
	if err := r.encode(output); err != nil {
		return 0, err
	}
	return output.Summary.FilesChanged, nil
}

// ReportExtract implements Reporter.
func (r *JSONReporter) ReportExtract(_ context.Context, result *runner.ExtractResult) error {
	if result == nil {
		return nil
	}
	return r.encode(&JSONExtractOutput{
		Version:          jsonSchemaVersion,
		PositionEncoding: lspwire.PositionEncoding,
		Path:             result.Path,
		URI:              result.URI,
		Actions:          lspwire.CodeActions(result.Actions),
		Written:          result.Written,
		Backup:           result.BackupPath,
	})
}

// ReportLinks implements Reporter.
func (r *JSONReporter) ReportLinks(_ context.Context, report *LinksReport) error {
	if report == nil {
		return nil
	}

	output := &JSONLinksOutput{
		Version:          jsonSchemaVersion,
		PositionEncoding: lspwire.PositionEncoding,
		Path:             report.Path,
		Links:            make([]JSONLink, 0),
		DocumentLinks:    make([]protocol.DocumentLink, 0),
	}
	if report.Document != nil {
		output.URI = report.Document.URI()
	}
	if report.Links != nil {
		for _, link := range report.Links.Links {
			output.Links = append(output.Links, jsonLink(link))
		}
		if report.Document != nil {
			output.DocumentLinks = lspwire.DocumentLinks(report.Document, report.Links)
		}
	}

	return r.encode(output)
}

func (r *JSONReporter) encode(value any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:          jsonSchemaVersion,
		PositionEncoding: lspwire.PositionEncoding,
		Files:            make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Summary = JSONSummary{
		FilesChecked: result.Stats.FilesProcessed,
		FilesChanged: result.Stats.FilesChanged,
		FilesWritten: result.Stats.FilesWritten,
		FilesErrored: result.Stats.FilesErrored,
		EditsTotal:   result.Stats.EditsTotal,
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:  file.Path,
			Edits: make([]protocol.TextEdit, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.Result != nil {
			fileResult.URI = textdoc.FileURI(file.Path)
			fileResult.Changed = file.Result.Changed()
			fileResult.Written = file.Result.Written
			fileResult.Backup = file.Result.BackupPath
			fileResult.Edits = append(fileResult.Edits, lspwire.TextEdits(file.Result.Edits)...)
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

func jsonLink(link *links.Link) JSONLink {
	return JSONLink{
		Kind:        link.Kind.String(),
		Image:       link.Image,
		Label:       link.Ref,
		Href:        link.Href.String(),
		HrefKind:    links.HrefKind(link.Href),
		Range:       lspwire.Range(link.Source.Range),
		TargetRange: lspwire.Range(link.Source.TargetRange),
		HrefRange:   lspwire.Range(link.Source.HrefRange),
	}
}
