package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rune-lang/rune/internal/build"
	rerrors "github.com/rune-lang/rune/internal/errors"
	"github.com/rune-lang/rune/internal/position"
)

// snippetContext is the number of source lines shown above the error line
const snippetContext = 1

// Diagnostic is a rendered error with an optional source excerpt
type Diagnostic struct {
	Header  string // file:line:col: error (CODE): message
	Snippet string
}

// Diagnose renders err for a file. Parse errors get their location and a
// caret excerpt of source; other errors only the header.
func Diagnose(path, source string, err error) Diagnostic {
	var pe *rerrors.ParserError
	if !errors.As(err, &pe) {
		code := rerrors.Code(err)
		msg := err.Error()
		if code != "" {
			msg = strings.TrimPrefix(msg, "("+code+"): ")
			return Diagnostic{Header: fmt.Sprintf("%s: error (%s): %s", path, code, msg)}
		}
		return Diagnostic{Header: fmt.Sprintf("%s: error: %s", path, msg)}
	}

	msg := strings.TrimPrefix(pe.Error(), "("+pe.Code()+"): ")
	file := position.NewSourceFile(path, source)
	pos := pe.Pos.WithFilename(file.Filename)

	loc := path
	if pos.IsValid() {
		loc = pos.String()
	}

	d := Diagnostic{Header: fmt.Sprintf("%s: error (%s): %s", loc, pe.Code(), msg)}
	if source != "" {
		d.Snippet = position.Highlight(file, pos, snippetContext)
	}
	return d
}

// PrintDiagnostics prints every failure carried by err. Build failures are
// split into one diagnostic per file.
func (p *Printer) PrintDiagnostics(path, source string, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok && errors.Is(err, build.ErrBuildFailed) {
		for _, e := range joined.Unwrap() {
			var fe *build.FileError
			if errors.As(e, &fe) {
				p.printDiagnostic(Diagnose(fe.Path, fe.Source, fe.Err))
			}
		}
		return
	}

	var fe *build.FileError
	if errors.As(err, &fe) {
		p.printDiagnostic(Diagnose(fe.Path, fe.Source, fe.Err))
		return
	}
	p.printDiagnostic(Diagnose(path, source, err))
}

func (p *Printer) printDiagnostic(d Diagnostic) {
	fmt.Fprintln(p.out, p.err.Render(d.Header))
	if d.Snippet != "" {
		p.Muted(d.Snippet)
	}
}
