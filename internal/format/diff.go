package format

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffOptions controls diff generation.
type DiffOptions struct {
	Context     int  // Number of context lines to show
	ShowNumbers bool // Show line numbers
}

// DefaultDiffOptions returns default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{Context: 3}
}

// DiffResult represents the result of a diff operation.
type DiffResult struct {
	Hunks      []Hunk
	Stats      DiffStat
	HasChanges bool

	original []string
	modified []string
}

// Hunk represents a contiguous block of changes.
type Hunk struct {
	Lines         []Line
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
}

// Header returns the unified hunk header. A count of one is omitted, as
// in diff -u.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", unifiedRange(h.OriginalStart, h.OriginalCount), unifiedRange(h.ModifiedStart, h.ModifiedCount))
}

func unifiedRange(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// Line represents a single line in a diff.
type Line struct {
	Content string
	Type    LineType
	Number  int // line number in the original, or in the modified text for added lines
}

// LineType represents the type of a diff line.
type LineType int

const (
	LineTypeContext LineType = iota // Unchanged context line
	LineTypeAdded                   // Added line (+)
	LineTypeRemoved                 // Removed line (-)
)

// DiffStat contains statistics about changes.
type DiffStat struct {
	LinesAdded   int
	LinesRemoved int
}

// DiffFormatter generates unified diffs between two texts.
type DiffFormatter struct {
	options DiffOptions
}

// NewDiffFormatter creates a new diff formatter.
func NewDiffFormatter(options DiffOptions) *DiffFormatter {
	if options.Context < 0 {
		options.Context = 0
	}
	return &DiffFormatter{options: options}
}

// GenerateDiff compares original and modified line by line.
func (df *DiffFormatter) GenerateDiff(original, modified string) *DiffResult {
	a, b := splitLines(original), splitLines(modified)
	m := difflib.NewMatcher(a, b)

	result := &DiffResult{original: a, modified: b}
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r':
			result.Stats.LinesRemoved += op.I2 - op.I1
			result.Stats.LinesAdded += op.J2 - op.J1
		case 'd':
			result.Stats.LinesRemoved += op.I2 - op.I1
		case 'i':
			result.Stats.LinesAdded += op.J2 - op.J1
		}
	}

	for _, group := range m.GetGroupedOpCodes(df.options.Context) {
		result.Hunks = append(result.Hunks, newHunk(a, b, group))
	}
	result.HasChanges = len(result.Hunks) > 0
	return result
}

// newHunk converts one group of opcodes into a hunk
func newHunk(a, b []string, group []difflib.OpCode) Hunk {
	first, last := group[0], group[len(group)-1]
	h := Hunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}
	// an empty side starts at the line before
	if h.OriginalCount == 0 {
		h.OriginalStart--
	}
	if h.ModifiedCount == 0 {
		h.ModifiedStart--
	}

	for _, op := range group {
		if op.Tag == 'e' {
			for i := op.I1; i < op.I2; i++ {
				h.Lines = append(h.Lines, Line{a[i], LineTypeContext, i + 1})
			}
			continue
		}
		if op.Tag == 'r' || op.Tag == 'd' {
			for i := op.I1; i < op.I2; i++ {
				h.Lines = append(h.Lines, Line{a[i], LineTypeRemoved, i + 1})
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for j := op.J1; j < op.J2; j++ {
				h.Lines = append(h.Lines, Line{b[j], LineTypeAdded, j + 1})
			}
		}
	}
	return h
}

// FormatDiff renders a diff result in unified format. With ShowNumbers each
// line is prefixed by its line number.
func (df *DiffFormatter) FormatDiff(filename string, result *DiffResult) string {
	if !result.HasChanges {
		return ""
	}

	if !df.options.ShowNumbers {
		out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        withNewlines(result.original),
			B:        withNewlines(result.modified),
			FromFile: filename,
			FromDate: "(original)",
			ToFile:   filename,
			ToDate:   "(formatted)",
			Context:  df.options.Context,
		})
		if err != nil {
			return ""
		}
		return out
	}

	var output strings.Builder
	fmt.Fprintf(&output, "--- %s\t(original)\n", filename)
	fmt.Fprintf(&output, "+++ %s\t(formatted)\n", filename)

	for _, hunk := range result.Hunks {
		output.WriteString(hunk.Header() + "\n")
		for _, line := range hunk.Lines {
			prefix := " "
			switch line.Type {
			case LineTypeAdded:
				prefix = "+"
			case LineTypeRemoved:
				prefix = "-"
			}
			fmt.Fprintf(&output, "%s%4d: %s\n", prefix, line.Number, line.Content)
		}
	}

	return output.String()
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
