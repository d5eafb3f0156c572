package lexer

import (
	"fmt"
	"strconv"

	"github.com/rune-lang/rune/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	TokenEOF TokenType = iota

	// Literals
	TokenIdentifier
	TokenInteger
	TokenFloat
	TokenString
	TokenBool

	// Keywords
	TokenLet
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenPrint

	// Declared type keywords
	TokenTypeI32
	TokenTypeI64
	TokenTypeF32
	TokenTypeF64
	TokenTypeBool
	TokenTypeString

	// Operators
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenMod
	TokenAssign
	TokenEq
	TokenNe
	TokenGt
	TokenLt
	TokenGe
	TokenLe
	TokenAnd
	TokenOr
	TokenNot
	TokenArrow
	TokenFatArrow

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenSemicolon
	TokenColon
)

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF: "EOF",

	TokenIdentifier: "IDENTIFIER",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenString:     "STRING",
	TokenBool:       "BOOL",

	TokenLet:   "LET",
	TokenIf:    "IF",
	TokenElse:  "ELSE",
	TokenWhile: "WHILE",
	TokenFor:   "FOR",
	TokenPrint: "PRINT",

	TokenTypeI32:    "TYPE_I32",
	TokenTypeI64:    "TYPE_I64",
	TokenTypeF32:    "TYPE_F32",
	TokenTypeF64:    "TYPE_F64",
	TokenTypeBool:   "TYPE_BOOL",
	TokenTypeString: "TYPE_STRING",

	TokenPlus:     "PLUS",
	TokenMinus:    "MINUS",
	TokenMul:      "MUL",
	TokenDiv:      "DIV",
	TokenMod:      "MOD",
	TokenAssign:   "ASSIGN",
	TokenEq:       "EQ",
	TokenNe:       "NE",
	TokenGt:       "GT",
	TokenLt:       "LT",
	TokenGe:       "GE",
	TokenLe:       "LE",
	TokenAnd:      "AND",
	TokenOr:       "OR",
	TokenNot:      "NOT",
	TokenArrow:    "ARROW",
	TokenFatArrow: "FAT_ARROW",

	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenLBrace:    "LBRACE",
	TokenRBrace:    "RBRACE",
	TokenSemicolon: "SEMICOLON",
	TokenColon:     "COLON",
}

// keywords maps reserved words to their token types. Never mutated.
var keywords = map[string]TokenType{
	"let":    TokenLet,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"for":    TokenFor,
	"print":  TokenPrint,
	"true":   TokenBool,
	"false":  TokenBool,
	"i32":    TokenTypeI32,
	"i64":    TokenTypeI64,
	"f32":    TokenTypeF32,
	"f64":    TokenTypeF64,
	"bool":   TokenTypeBool,
	"String": TokenTypeString,
}

// LookupIdent returns the keyword token type for word, or TokenIdentifier.
func LookupIdent(word string) TokenType {
	if tt, ok := keywords[word]; ok {
		return tt
	}
	return TokenIdentifier
}

// IsTypeKeyword reports whether tt names a declared primitive type
func (tt TokenType) IsTypeKeyword() bool {
	return tt >= TokenTypeI32 && tt <= TokenTypeString
}

// Token represents one lexical unit.
//
// Literal holds the source text for every token except strings, where it
// holds the unescaped contents. Int and Float carry the parsed payload of
// numeric literals. Pos is the first character of the token and End the
// position just past its last one.
type Token struct {
	Type    TokenType
	Literal string
	Int     int64
	Float   float64
	Pos     position.Position
	End     position.Position
}

// Bool returns the payload of a boolean literal
func (t Token) Bool() bool {
	return t.Type == TokenBool && t.Literal == "true"
}

// Text renders the token the way it would appear in source, used in
// diagnostics.
func (t Token) Text() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return strconv.Quote(t.Literal)
	default:
		return t.Literal
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}
