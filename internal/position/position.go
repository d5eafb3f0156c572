// Package position provides source code position tracking for the rune
// front end. Positions are attached to tokens and parse errors and are used
// only for reporting; they never take part in syntax tree equality.
package position

import (
	"fmt"
	"strings"
)

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name, set when a diagnostic is rendered
	Line     int    // 1-based line number
	Column   int    // 1-based column number (in runes)
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// WithFilename returns a copy of p attributed to filename. The lexer works
// on bare text, so positions gain a file only when reported.
func (p Position) WithFilename(filename string) Position {
	p.Filename = filename
	return p
}

// SourceFile represents a source file split into lines
type SourceFile struct {
	Filename string
	Lines    []string
}

// NewSourceFile creates a new source file from content
func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Lines:    strings.Split(content, "\n"),
	}
}

// GetLine returns the specified line (1-based) or empty string if invalid
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.Lines) {
		return ""
	}
	return sf.Lines[lineNum-1]
}
