package ast

import "math"

// Equal reports whether two trees are structurally equal. Float literals
// compare by bit pattern so that NaN equals itself; nil and empty
// statement lists are the same.
func Equal(a, b Expr) bool {
	if a == nil || b == nil || isNilBlock(a) || isNilBlock(b) {
		return (a == nil || isNilBlock(a)) && (b == nil || isNilBlock(b))
	}

	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && equalValues(x.Value, y.Value)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *Assignment:
		y, ok := b.(*Assignment)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case *LetDeclaration:
		y, ok := b.(*LetDeclaration)
		return ok && x.Name == y.Name && x.Type == y.Type && Equal(x.Value, y.Value)
	case *IfElse:
		y, ok := b.(*IfElse)
		// a missing else differs from an empty one
		return ok && Equal(x.Condition, y.Condition) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *Block:
		y, ok := b.(*Block)
		return ok && EqualStatements(x.Statements, y.Statements)
	case *Print:
		y, ok := b.(*Print)
		return ok && Equal(x.Value, y.Value)
	default:
		return false
	}
}

// EqualStatements compares two statement lists pairwise with Equal
func EqualStatements(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalValues(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case LiteralInteger:
		return a.Int == b.Int
	case LiteralFloat:
		return math.Float64bits(a.Float) == math.Float64bits(b.Float)
	case LiteralString, LiteralIdentifier:
		return a.Str == b.Str
	case LiteralBoolean:
		return a.Bool == b.Bool
	default:
		return true
	}
}
