package ast

import (
	"math"
	"strconv"
	"strings"
)

// String returns the source spelling of the value
func (v Value) String() string {
	switch v.Kind {
	case LiteralInteger:
		return strconv.FormatInt(v.Int, 10)
	case LiteralFloat:
		return formatFloat(v.Float)
	case LiteralString:
		return quote(v.Str)
	case LiteralBoolean:
		return strconv.FormatBool(v.Bool)
	case LiteralIdentifier:
		return v.Str
	default:
		return "<invalid>"
	}
}

// formatFloat always keeps a decimal point so the text lexes as a float
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quote escapes exactly the characters the lexer unescapes
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// operand renders e where only a primary may appear. Statement-level forms
// are parenthesized.
func operand(e Expr) string {
	switch e.(type) {
	case *Assignment, *LetDeclaration, *IfElse, *Print:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// value renders the right-hand side of a binding, where a nested let,
// if or print cannot start without parentheses.
func value(e Expr) string {
	if _, ok := e.(*Assignment); ok {
		return e.String()
	}
	return operand(e)
}

func (n *Literal) String() string { return n.Value.String() }

func (n *Binary) String() string {
	return "(" + operand(n.Left) + " " + n.Op.Symbol() + " " + operand(n.Right) + ")"
}

func (n *Unary) String() string { return n.Op.Symbol() + operand(n.Operand) }

func (n *Assignment) String() string { return n.Name + " = " + value(n.Value) }

func (n *LetDeclaration) String() string {
	var b strings.Builder
	b.WriteString("let ")
	b.WriteString(n.Name)
	if n.Type != TypeNone {
		b.WriteString(": ")
		b.WriteString(n.Type.String())
	}
	b.WriteString(" = ")
	b.WriteString(value(n.Value))
	return b.String()
}

func (n *IfElse) String() string {
	s := "if " + n.Condition.String() + " " + n.Then.String()
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s
}

func (n *Block) String() string {
	if n == nil || len(n.Statements) == 0 {
		return "{ }"
	}
	parts := make([]string, len(n.Statements))
	for i, stmt := range n.Statements {
		parts[i] = stmt.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (n *Print) String() string { return "print(" + operand(n.Value) + ")" }

// Format renders a program, one statement per line
func Format(stmts []Expr) string {
	if len(stmts) == 0 {
		return ""
	}
	parts := make([]string, len(stmts))
	for i, stmt := range stmts {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, ";\n") + "\n"
}
