package edit

import (
	"fmt"
	"strings"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// NoNewlineMarker follows a diff line that has no terminating newline.
const NoNewlineMarker = `\ No newline at end of file`

// LineOp classifies a line of a diff hunk.
type LineOp int

const (
	// LineKeep is an unchanged context line.
	LineKeep LineOp = iota

	// LineInsert is a line present only in the new content.
	LineInsert

	// LineDelete is a line present only in the old content.
	LineDelete
)

// DiffLine is a single line of a hunk.
type DiffLine struct {
	Op   LineOp
	Text string

	// NoNewline marks the final line of a side that lacks a trailing newline.
	NoNewline bool
}

// Hunk is a contiguous region of change with surrounding context.
// Start lines are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []DiffLine
}

// Diff is a unified diff of one document.
type Diff struct {
	Path       string
	Hunks      []Hunk
	Insertions int
	Deletions  int
}

// ComputeDiff builds a unified diff between before and after.
// It returns nil when the contents are identical.
func ComputeDiff(path string, before, after []byte) *Diff {
	if string(before) == string(after) {
		return nil
	}

	script := diffLines(splitDiffLines(before), splitDiffLines(after))

	diff := &Diff{Path: path, Hunks: buildHunks(script)}
	for _, hunk := range diff.Hunks {
		for _, line := range hunk.Lines {
			switch line.Op {
			case LineInsert:
				diff.Insertions++
			case LineDelete:
				diff.Deletions++
			case LineKeep:
			}
		}
	}

	return diff
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		sb.WriteString(hunk.Header())
		sb.WriteByte('\n')

		for _, line := range hunk.Lines {
			sb.WriteByte(line.Op.prefix())
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
			if line.NoNewline {
				sb.WriteString(NoNewlineMarker)
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}

// Header renders the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", hunkSpan(h.OldStart, h.OldCount), hunkSpan(h.NewStart, h.NewCount))
}

func (op LineOp) prefix() byte {
	switch op {
	case LineInsert:
		return '+'
	case LineDelete:
		return '-'
	default:
		return ' '
	}
}

func hunkSpan(start, count int) string {
	if count == 0 {
		// An empty side points at the line before the change.
		return fmt.Sprintf("%d,0", start-1)
	}
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// splitDiffLines splits content into comparison keys, one per line. A
// final line without a newline keeps a trailing "\n" in its key so it never
// matches the same text with a terminator.
func splitDiffLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := string(content)
	terminated := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if !terminated {
		lines[len(lines)-1] += "\n"
	}
	return lines
}

func newDiffLine(op LineOp, key string) DiffLine {
	text, unterminated := strings.CutSuffix(key, "\n")
	return DiffLine{Op: op, Text: text, NoNewline: unterminated}
}

// diffLines produces an edit script from a longest-common-subsequence table.
// Markdown files are small enough for the quadratic table.
func diffLines(oldLines, newLines []string) []DiffLine {
	rows, cols := len(oldLines), len(newLines)

	// suffix[i][j] is the LCS length of oldLines[i:] and newLines[j:].
	suffix := make([][]int, rows+1)
	for i := range suffix {
		suffix[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	script := make([]DiffLine, 0, rows+cols)
	i, j := 0, 0
	for i < rows || j < cols {
		switch {
		case i < rows && j < cols && oldLines[i] == newLines[j]:
			script = append(script, newDiffLine(LineKeep, oldLines[i]))
			i++
			j++
		case i < rows && (j == cols || suffix[i+1][j] >= suffix[i][j+1]):
			script = append(script, newDiffLine(LineDelete, oldLines[i]))
			i++
		default:
			script = append(script, newDiffLine(LineInsert, newLines[j]))
			j++
		}
	}

	return script
}

// buildHunks groups the edit script into hunks, merging changes separated
// by no more than twice the context size.
func buildHunks(script []DiffLine) []Hunk {
	var hunks []Hunk

	oldLine, newLine := 1, 1
	idx := 0
	for idx < len(script) {
		if script[idx].Op == LineKeep {
			oldLine++
			newLine++
			idx++
			continue
		}

		// Back up over leading context.
		start := max(idx-diffContext, 0)
		for back := idx - 1; back >= start; back-- {
			oldLine--
			newLine--
		}
		hunk := Hunk{OldStart: oldLine, NewStart: newLine}

		// Extend while the next change is close enough.
		end := idx
		for end < len(script) {
			if script[end].Op != LineKeep {
				end++
				continue
			}
			run := end
			for run < len(script) && script[run].Op == LineKeep {
				run++
			}
			if run == len(script) || run-end > 2*diffContext {
				end = min(end+diffContext, len(script))
				break
			}
			end = run
		}

		hunk.Lines = script[start:end]
		for _, line := range hunk.Lines {
			switch line.Op {
			case LineKeep:
				hunk.OldCount++
				hunk.NewCount++
			case LineDelete:
				hunk.OldCount++
			case LineInsert:
				hunk.NewCount++
			}
		}
		hunks = append(hunks, hunk)

		oldLine += hunk.OldCount
		newLine += hunk.NewCount
		idx = end
	}

	return hunks
}
