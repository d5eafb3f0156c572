// Package backend defines the contract between the front end and code
// generators, and provides an Emitter that hands syntax trees to external
// tools as text, JSON, YAML or MessagePack.
package backend

import (
	"context"
	"fmt"

	"github.com/rune-lang/rune/internal/ast"
)

// Unit is one parsed source file handed to a generator. The generator owns
// all semantic checks; the front end guarantees only syntactic validity.
type Unit struct {
	Path       string
	Statements []ast.Expr
}

// Generator consumes parsed units. Generate is called once per unit and
// may be called concurrently for different units.
type Generator interface {
	Name() string
	Generate(ctx context.Context, unit Unit) error
}

// Remover is implemented by generators that keep output per source file
// and can discard it once the source is gone.
type Remover interface {
	Remove(path string) error
}

// Format selects an emitter encoding
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Formats lists every supported encoding
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMsgpack}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// Extension returns the file extension written for f
func (f Format) Extension() string {
	if f == FormatText {
		return ".tree"
	}
	return "." + string(f)
}
