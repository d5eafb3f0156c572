// Package parser implements the rune recursive descent parser.
//
// The whole input is tokenized before parsing begins. The parser walks the
// token buffer with a cursor and stops at the first error; there is no
// recovery and no partial result.
package parser

import (
	"github.com/rune-lang/rune/internal/ast"
	rerrors "github.com/rune-lang/rune/internal/errors"
	"github.com/rune-lang/rune/internal/lexer"
	"github.com/rune-lang/rune/internal/position"
)

// Parser represents the recursive descent parser
type Parser struct {
	tokens  []lexer.Token
	current int
	eof     position.Position
}

// New tokenizes input and returns a parser over the resulting buffer.
// Lexical errors are returned here, before any parsing.
func New(input string) (*Parser, error) {
	l := lexer.New(input)
	tokens, err := l.Tokenize()
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens, eof: l.Pos()}, nil
}

// NewFromTokens creates a parser over an already materialized buffer.
// The buffer must not contain a TokenEOF.
func NewFromTokens(tokens []lexer.Token) *Parser {
	eof := position.Position{Line: 1, Column: 1}
	if n := len(tokens); n > 0 {
		eof = tokens[n-1].End
		if !eof.IsValid() {
			eof = tokens[n-1].Pos
		}
	}
	return &Parser{tokens: tokens, eof: eof}
}

// ParseString tokenizes and parses input in one step.
func ParseString(input string) ([]ast.Expr, error) {
	p, err := New(input)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse parses the remaining tokens and returns one node per top-level
// statement.
func (p *Parser) Parse() ([]ast.Expr, error) {
	statements := make([]ast.Expr, 0)
	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

// peek returns the token under the cursor without consuming it
func (p *Parser) peek() (lexer.Token, bool) {
	if p.isAtEnd() {
		return lexer.Token{}, false
	}
	return p.tokens[p.current], true
}

// advance consumes the token under the cursor and returns it
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return lexer.Token{}
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

// check reports whether the token under the cursor has type tt
func (p *Parser) check(tt lexer.TokenType) bool {
	tok, ok := p.peek()
	return ok && tok.Type == tt
}

// match consumes the token under the cursor if it has type tt
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// pos is where an error at the cursor is reported
func (p *Parser) pos() position.Position {
	if tok, ok := p.peek(); ok {
		return tok.Pos
	}
	return p.eof
}

// statement := expression ";"?
func (p *Parser) statement() (ast.Expr, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.match(lexer.TokenSemicolon)
	return expr, nil
}

// expression := ifElse | print | assignment
func (p *Parser) expression() (ast.Expr, error) {
	switch {
	case p.check(lexer.TokenIf):
		return p.ifElse()
	case p.check(lexer.TokenPrint):
		return p.print()
	default:
		return p.assignment(true)
	}
}

// assignment parses a let declaration (when allowLet is set) or an or-level
// expression optionally followed by "=" and a value. The value of a binding
// is parsed with allowLet unset, so a nested let is rejected.
func (p *Parser) assignment(allowLet bool) (ast.Expr, error) {
	if allowLet && p.match(lexer.TokenLet) {
		return p.letDeclaration()
	}

	expr, err := p.binary(lowest)
	if err != nil {
		return nil, err
	}

	if !p.check(lexer.TokenAssign) {
		return expr, nil
	}
	assign := p.advance()

	lit, ok := expr.(*ast.Literal)
	if !ok || !lit.Value.IsIdentifier() {
		return nil, rerrors.NewInvalidAssignment("target must be an identifier", assign.Pos)
	}

	value, err := p.assignment(false)
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: lit.Value.Str, Value: value}, nil
}

// letDeclaration parses the rest of `let NAME (":" type)? "=" value`
func (p *Parser) letDeclaration() (ast.Expr, error) {
	if !p.check(lexer.TokenIdentifier) {
		return nil, rerrors.NewExpectedAfter("identifier", "let", p.pos())
	}
	name := p.advance().Literal

	declared := ast.TypeNone
	if p.match(lexer.TokenColon) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		declared = t
	}

	if !p.match(lexer.TokenAssign) {
		return nil, rerrors.NewExpectedAfterCustom("=", name, "identifier", p.pos())
	}

	value, err := p.assignment(false)
	if err != nil {
		return nil, err
	}
	return &ast.LetDeclaration{Name: name, Type: declared, Value: value}, nil
}

// parseType accepts a type keyword or an identifier spelling a primitive type
func (p *Parser) parseType() (ast.DeclaredType, error) {
	tok, ok := p.peek()
	if !ok || !(tok.Type.IsTypeKeyword() || tok.Type == lexer.TokenIdentifier) {
		return ast.TypeNone, rerrors.NewExpectedToken("type", p.pos())
	}
	p.advance()

	t, known := ast.LookupType(tok.Literal)
	if !known {
		return ast.TypeNone, rerrors.NewUnexpectedToken("unknown type: "+tok.Literal, tok.Pos)
	}
	return t, nil
}

// ifElse := "if" expression block ("else" block)?
func (p *Parser) ifElse() (ast.Expr, error) {
	p.advance() // consume `if`

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.TokenLBrace) {
		return nil, rerrors.NewExpectedAfter("{", "if condition", p.pos())
	}
	then, err := p.blockBody("if-block")
	if err != nil {
		return nil, err
	}

	node := &ast.IfElse{Condition: condition, Then: then}
	if !p.match(lexer.TokenElse) {
		return node, nil
	}

	if !p.match(lexer.TokenLBrace) {
		return nil, rerrors.NewExpectedAfter("{", "else", p.pos())
	}
	node.Else, err = p.blockBody("else-block")
	if err != nil {
		return nil, err
	}
	return node, nil
}

// print := "print" "(" or ")"
func (p *Parser) print() (ast.Expr, error) {
	p.advance() // consume `print`

	if !p.match(lexer.TokenLParen) {
		return nil, rerrors.NewExpectedAfter("(", "print", p.pos())
	}

	value, err := p.binary(lowest)
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.TokenRParen) {
		return nil, rerrors.NewExpectedAfterCustom(")", "print", "expression", p.pos())
	}
	return &ast.Print{Value: value}, nil
}

// blockBody parses statements up to the closing brace. The opening brace
// has already been consumed; context names the construct in the error.
func (p *Parser) blockBody(context string) (*ast.Block, error) {
	statements := make([]ast.Expr, 0)
	for !p.check(lexer.TokenRBrace) {
		if p.isAtEnd() {
			return nil, rerrors.NewExpectedAfter("}", context, p.pos())
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	p.advance() // consume `}`
	return &ast.Block{Statements: statements}, nil
}

// unary := ("-" | "!") unary | primary
func (p *Parser) unary() (ast.Expr, error) {
	var op ast.UnaryOp
	switch {
	case p.match(lexer.TokenMinus):
		op = ast.OpMinus
	case p.match(lexer.TokenNot):
		op = ast.OpNot
	default:
		return p.primary()
	}

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(op, operand), nil
}

// primary := literal | identifier | "(" expression ")" | "{" statement* "}"
func (p *Parser) primary() (ast.Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, rerrors.NewUnexpectedEndOfInput(p.eof)
	}

	switch tok.Type {
	case lexer.TokenInteger:
		p.advance()
		return ast.NewLiteral(ast.Integer(tok.Int)), nil
	case lexer.TokenFloat:
		p.advance()
		return ast.NewLiteral(ast.Float(tok.Float)), nil
	case lexer.TokenString:
		p.advance()
		return ast.NewLiteral(ast.String(tok.Literal)), nil
	case lexer.TokenBool:
		p.advance()
		return ast.NewLiteral(ast.Boolean(tok.Bool())), nil
	case lexer.TokenIdentifier:
		p.advance()
		return ast.NewIdentifier(tok.Literal), nil
	case lexer.TokenLParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.match(lexer.TokenRParen) {
			return nil, rerrors.NewExpectedAfter(")", "expression", p.pos())
		}
		return expr, nil
	case lexer.TokenLBrace:
		p.advance()
		block, err := p.blockBody("block")
		if err != nil {
			return nil, err
		}
		return block, nil
	default:
		return nil, rerrors.NewUnexpectedToken(tok.Text(), tok.Pos)
	}
}
