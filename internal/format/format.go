// Package format rewrites rune source into its canonical display form and
// reports the difference as a unified diff.
package format

import (
	"github.com/rune-lang/rune/internal/ast"
	"github.com/rune-lang/rune/internal/parser"
)

// Result is the outcome of formatting one source text
type Result struct {
	Original  string
	Formatted string
}

// Changed reports whether formatting altered the text
func (r Result) Changed() bool {
	return r.Original != r.Formatted
}

// Source parses src and renders it canonically: one statement per line,
// each terminated by a semicolon except the last, binary operations fully
// parenthesized. Source that does not parse is returned with the error.
func Source(src string) (Result, error) {
	stmts, err := parser.ParseString(src)
	if err != nil {
		return Result{Original: src, Formatted: src}, err
	}
	return Result{Original: src, Formatted: ast.Format(stmts)}, nil
}

// SourceWithDiff formats src and, when it changed, returns a unified diff
// labelled with filename.
func SourceWithDiff(filename, src string, options DiffOptions) (Result, string, error) {
	res, err := Source(src)
	if err != nil || !res.Changed() {
		return res, "", err
	}

	formatter := NewDiffFormatter(options)
	diff := formatter.GenerateDiff(res.Original, res.Formatted)
	return res, formatter.FormatDiff(filename, diff), nil
}
