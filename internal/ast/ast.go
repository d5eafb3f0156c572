// Package ast defines the syntax tree of the rune language.
//
// The tree is strict: every node exclusively owns its children and nodes are
// not modified after the parser builds them. The vocabulary here (literal
// kinds, operators, declared types and node shapes) is the contract handed
// to code generation backends.
package ast

import (
	"fmt"
)

// LiteralKind selects which field of a Value is meaningful
type LiteralKind uint8

const (
	LiteralInteger LiteralKind = iota + 1
	LiteralFloat
	LiteralString
	LiteralBoolean
	LiteralIdentifier
)

var literalKindNames = map[LiteralKind]string{
	LiteralInteger:    "Integer",
	LiteralFloat:      "Float",
	LiteralString:     "String",
	LiteralBoolean:    "Boolean",
	LiteralIdentifier: "Identifier",
}

func (k LiteralKind) String() string {
	if name, ok := literalKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

// Value holds exactly one literal payload. Str carries both string
// contents and identifier names.
type Value struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Integer creates an integer value
func Integer(v int64) Value { return Value{Kind: LiteralInteger, Int: v} }

// Float creates a floating-point value
func Float(v float64) Value { return Value{Kind: LiteralFloat, Float: v} }

// String creates a string value
func String(v string) Value { return Value{Kind: LiteralString, Str: v} }

// Boolean creates a boolean value
func Boolean(v bool) Value { return Value{Kind: LiteralBoolean, Bool: v} }

// Identifier creates a name reference
func Identifier(name string) Value { return Value{Kind: LiteralIdentifier, Str: name} }

// IsIdentifier reports whether v is a name reference
func (v Value) IsIdentifier() bool { return v.Kind == LiteralIdentifier }

// DeclaredType is the optional primitive type annotation of a let binding.
// It is never checked against the bound value here.
type DeclaredType uint8

const (
	TypeNone DeclaredType = iota
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypeBool
	TypeString
)

var typeNames = map[DeclaredType]string{
	TypeI32:    "i32",
	TypeI64:    "i64",
	TypeF32:    "f32",
	TypeF64:    "f64",
	TypeBool:   "bool",
	TypeString: "String",
}

// typesByName is the inverse of typeNames. Never mutated.
var typesByName = map[string]DeclaredType{
	"i32":    TypeI32,
	"i64":    TypeI64,
	"f32":    TypeF32,
	"f64":    TypeF64,
	"bool":   TypeBool,
	"String": TypeString,
}

// LookupType maps a primitive type name to its DeclaredType
func LookupType(name string) (DeclaredType, bool) {
	t, ok := typesByName[name]
	return t, ok
}

func (t DeclaredType) String() string {
	if t == TypeNone {
		return "none"
	}
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DeclaredType(%d)", int(t))
}

// BinaryOp enumerates the binary operators
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEqual
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpAnd
	OpOr
)

var binaryOps = map[BinaryOp][2]string{
	OpAdd:          {"Add", "+"},
	OpSubtract:     {"Subtract", "-"},
	OpMultiply:     {"Multiply", "*"},
	OpDivide:       {"Divide", "/"},
	OpModulo:       {"Modulo", "%"},
	OpEqual:        {"Equal", "=="},
	OpNotEqual:     {"NotEqual", "!="},
	OpGreater:      {"Greater", ">"},
	OpLess:         {"Less", "<"},
	OpGreaterEqual: {"GreaterEqual", ">="},
	OpLessEqual:    {"LessEqual", "<="},
	OpAnd:          {"And", "&&"},
	OpOr:           {"Or", "||"},
}

// String returns the operator name, e.g. "Add"
func (op BinaryOp) String() string {
	if names, ok := binaryOps[op]; ok {
		return names[0]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// Symbol returns the source spelling, e.g. "+"
func (op BinaryOp) Symbol() string {
	if names, ok := binaryOps[op]; ok {
		return names[1]
	}
	return "?"
}

// UnaryOp enumerates the prefix operators
type UnaryOp uint8

const (
	OpMinus UnaryOp = iota + 1
	OpNot
)

// String returns the operator name
func (op UnaryOp) String() string {
	switch op {
	case OpMinus:
		return "Minus"
	case OpNot:
		return "Not"
	default:
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
}

// Symbol returns the source spelling
func (op UnaryOp) Symbol() string {
	switch op {
	case OpMinus:
		return "-"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}

// Expr is implemented by every syntax tree node
type Expr interface {
	// String returns the display form, which re-parses to an equal tree
	String() string
	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}
	exprNode()
}

// Literal is a leaf: a constant or a name reference
type Literal struct {
	Value Value
}

// Binary applies a binary operator to two owned subtrees
type Binary struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// Unary applies a prefix operator to one owned subtree
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

// Assignment stores a value into an existing name
type Assignment struct {
	Name  string
	Value Expr
}

// LetDeclaration introduces a name. Type is TypeNone when not annotated.
type LetDeclaration struct {
	Name  string
	Type  DeclaredType
	Value Expr
}

// IfElse is a conditional. Else is nil when there is no else branch, which
// is distinct from an empty else block.
type IfElse struct {
	Condition Expr
	Then      *Block
	Else      *Block
}

// Block is an ordered sequence of statements; its value is the last one's.
type Block struct {
	Statements []Expr
}

// Print writes the value of one subtree
type Print struct {
	Value Expr
}

func (*Literal) exprNode()        {}
func (*Binary) exprNode()         {}
func (*Unary) exprNode()          {}
func (*Assignment) exprNode()     {}
func (*LetDeclaration) exprNode() {}
func (*IfElse) exprNode()         {}
func (*Block) exprNode()          {}
func (*Print) exprNode()          {}

func (n *Literal) Accept(visitor Visitor) interface{}        { return visitor.VisitLiteral(n) }
func (n *Binary) Accept(visitor Visitor) interface{}         { return visitor.VisitBinary(n) }
func (n *Unary) Accept(visitor Visitor) interface{}          { return visitor.VisitUnary(n) }
func (n *Assignment) Accept(visitor Visitor) interface{}     { return visitor.VisitAssignment(n) }
func (n *LetDeclaration) Accept(visitor Visitor) interface{} { return visitor.VisitLetDeclaration(n) }
func (n *IfElse) Accept(visitor Visitor) interface{}         { return visitor.VisitIfElse(n) }
func (n *Block) Accept(visitor Visitor) interface{}          { return visitor.VisitBlock(n) }
func (n *Print) Accept(visitor Visitor) interface{}          { return visitor.VisitPrint(n) }

// NewLiteral creates a leaf node
func NewLiteral(v Value) *Literal { return &Literal{Value: v} }

// NewIdentifier creates a name reference leaf
func NewIdentifier(name string) *Literal { return NewLiteral(Identifier(name)) }

// NewBinary creates a binary operation node
func NewBinary(left Expr, op BinaryOp, right Expr) *Binary {
	return &Binary{Left: left, Op: op, Right: right}
}

// NewUnary creates a unary operation node
func NewUnary(op UnaryOp, operand Expr) *Unary {
	return &Unary{Op: op, Operand: operand}
}

// NewBlock creates a block node; a nil slice is stored as empty.
func NewBlock(statements ...Expr) *Block {
	if statements == nil {
		statements = []Expr{}
	}
	return &Block{Statements: statements}
}
