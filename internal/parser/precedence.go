package parser

import (
	"github.com/rune-lang/rune/internal/ast"
	"github.com/rune-lang/rune/internal/lexer"
)

// Precedence represents operator precedence levels
type Precedence int

// Binary precedence levels, lowest first. Every level is left associative;
// unary operators bind tighter than all of them.
const (
	_ Precedence = iota
	lowest
	logicalOr  // ||
	logicalAnd // &&
	equals     // == !=
	relational // < <= > >=
	sum        // + -
	product    // * / %
)

// binaryOperator is one entry of the precedence table
type binaryOperator struct {
	prec Precedence
	op   ast.BinaryOp
}

// binaryPrecedence maps operator tokens to their level and tree operator.
// Never mutated.
var binaryPrecedence = map[lexer.TokenType]binaryOperator{
	lexer.TokenOr:  {logicalOr, ast.OpOr},
	lexer.TokenAnd: {logicalAnd, ast.OpAnd},

	lexer.TokenEq: {equals, ast.OpEqual},
	lexer.TokenNe: {equals, ast.OpNotEqual},

	lexer.TokenGt: {relational, ast.OpGreater},
	lexer.TokenGe: {relational, ast.OpGreaterEqual},
	lexer.TokenLt: {relational, ast.OpLess},
	lexer.TokenLe: {relational, ast.OpLessEqual},

	lexer.TokenPlus:  {sum, ast.OpAdd},
	lexer.TokenMinus: {sum, ast.OpSubtract},

	lexer.TokenMul: {product, ast.OpMultiply},
	lexer.TokenDiv: {product, ast.OpDivide},
	lexer.TokenMod: {product, ast.OpModulo},
}

// peekOperator returns the table entry for the token under the cursor
func (p *Parser) peekOperator() (binaryOperator, bool) {
	tok, ok := p.peek()
	if !ok {
		return binaryOperator{}, false
	}
	entry, ok := binaryPrecedence[tok.Type]
	return entry, ok
}

// binary parses a chain of binary operators whose level is above minPrec by
// precedence climbing. The right operand of each operator is parsed one
// level tighter, which makes every level left associative.
func (p *Parser) binary(minPrec Precedence) (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		entry, ok := p.peekOperator()
		if !ok || entry.prec <= minPrec {
			return left, nil
		}
		p.advance()

		right, err := p.binary(entry.prec)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left, entry.op, right)
	}
}
