package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ugorji/go/codec"
	"gopkg.in/yaml.v3"

	"github.com/rune-lang/rune/internal/ast"
)

// Encode converts a tree into plain maps and slices shared by the JSON,
// YAML and MessagePack encodings. Every node carries a "node" key naming
// its kind.
func Encode(expr ast.Expr) map[string]interface{} {
	if expr == nil {
		return nil
	}
	out, _ := expr.Accept(encoder{}).(map[string]interface{})
	return out
}

// EncodeProgram encodes a list of top-level statements
func EncodeProgram(stmts []ast.Expr) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, stmt := range stmts {
		out[i] = Encode(stmt)
	}
	return out
}

// encoder implements ast.Visitor
type encoder struct{}

func (e encoder) VisitLiteral(n *ast.Literal) interface{} {
	v := n.Value
	out := map[string]interface{}{"node": "Literal", "kind": v.Kind.String()}
	switch v.Kind {
	case ast.LiteralInteger:
		out["value"] = v.Int
	case ast.LiteralFloat:
		out["value"] = v.Float
	case ast.LiteralBoolean:
		out["value"] = v.Bool
	default:
		out["value"] = v.Str
	}
	return out
}

func (e encoder) VisitBinary(n *ast.Binary) interface{} {
	return map[string]interface{}{
		"node":  "Binary",
		"op":    n.Op.String(),
		"left":  Encode(n.Left),
		"right": Encode(n.Right),
	}
}

func (e encoder) VisitUnary(n *ast.Unary) interface{} {
	return map[string]interface{}{
		"node":    "Unary",
		"op":      n.Op.String(),
		"operand": Encode(n.Operand),
	}
}

func (e encoder) VisitAssignment(n *ast.Assignment) interface{} {
	return map[string]interface{}{
		"node":  "Assignment",
		"name":  n.Name,
		"value": Encode(n.Value),
	}
}

func (e encoder) VisitLetDeclaration(n *ast.LetDeclaration) interface{} {
	out := map[string]interface{}{
		"node":  "LetDeclaration",
		"name":  n.Name,
		"value": Encode(n.Value),
	}
	if n.Type != ast.TypeNone {
		out["type"] = n.Type.String()
	}
	return out
}

func (e encoder) VisitIfElse(n *ast.IfElse) interface{} {
	out := map[string]interface{}{
		"node":      "IfElse",
		"condition": Encode(n.Condition),
		"then":      Encode(n.Then),
	}
	if n.Else != nil {
		out["else"] = Encode(n.Else)
	}
	return out
}

func (e encoder) VisitBlock(n *ast.Block) interface{} {
	return map[string]interface{}{
		"node":       "Block",
		"statements": EncodeProgram(n.Statements),
	}
}

func (e encoder) VisitPrint(n *ast.Print) interface{} {
	return map[string]interface{}{
		"node":  "Print",
		"value": Encode(n.Value),
	}
}

// msgpackHandle is shared by all encoders; it is safe for concurrent use
// once configured.
var msgpackHandle = func() *codec.MsgpackHandle {
	h := new(codec.MsgpackHandle)
	h.Canonical = true
	h.WriteExt = true
	return h
}()

// Write encodes stmts to w in the given format
func Write(w io.Writer, stmts []ast.Expr, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, ast.Format(stmts))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(EncodeProgram(stmts))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(EncodeProgram(stmts)); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return codec.NewEncoder(w, msgpackHandle).Encode(EncodeProgram(stmts))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Marshal is Write into a byte slice
func Marshal(stmts []ast.Expr, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, stmts, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
