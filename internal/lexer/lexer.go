// Package lexer implements the rune tokenizer.
//
// The lexer applies one ordered rule set with maximal munch: two-character
// operators before their one-character prefixes, then punctuation, numbers,
// strings and identifiers. The first slice no rule matches ends the scan with
// an UnexpectedCharacter error; nothing is skipped or re-classified.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	rerrors "github.com/rune-lang/rune/internal/errors"
	"github.com/rune-lang/rune/internal/position"
)

// Lexer represents the lexical analyzer
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
}

// New creates a new lexer over input
func New(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

// Reset restarts the lexer over new input so one instance can be reused.
func (l *Lexer) Reset(input string) {
	l.input = input
	l.position = 0
	l.readPosition = 0
	l.ch = 0
	l.line = 1
	l.column = 0
	l.readChar()
}

// Tokenize scans input to completion.
func Tokenize(input string) ([]Token, error) {
	return New(input).Tokenize()
}

// Tokenize returns every remaining token, excluding the final EOF, or the
// first lexical error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	// columns count runes, so continuation bytes do not advance them
	if l.ch&0xC0 != 0x80 {
		l.column++
	}
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) currentPosition() position.Position {
	return position.Position{Line: l.line, Column: l.column, Offset: l.position}
}

// skipWhitespace skips space, tab, newline and form feed
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\f') {
		l.readChar()
	}
}

// Pos returns the position of the next unread character. After Tokenize
// it is where the end of input is reported.
func (l *Lexer) Pos() position.Position {
	return l.currentPosition()
}

// NextToken scans the next token. At end of input it returns a TokenEOF
// token; further calls keep returning it.
func (l *Lexer) NextToken() (Token, error) {
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	tok.End = l.currentPosition()
	return tok, nil
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()

	pos := l.currentPosition()
	if l.atEOF() {
		return Token{Type: TokenEOF, Pos: pos}, nil
	}

	switch l.ch {
	case '=':
		switch l.peekChar() {
		case '=':
			return l.twoCharToken(TokenEq, pos), nil
		case '>':
			return l.twoCharToken(TokenFatArrow, pos), nil
		}
		return l.oneCharToken(TokenAssign, pos), nil
	case '!':
		if l.peekChar() == '=' {
			return l.twoCharToken(TokenNe, pos), nil
		}
		return l.oneCharToken(TokenNot, pos), nil
	case '>':
		if l.peekChar() == '=' {
			return l.twoCharToken(TokenGe, pos), nil
		}
		return l.oneCharToken(TokenGt, pos), nil
	case '<':
		if l.peekChar() == '=' {
			return l.twoCharToken(TokenLe, pos), nil
		}
		return l.oneCharToken(TokenLt, pos), nil
	case '-':
		if l.peekChar() == '>' {
			return l.twoCharToken(TokenArrow, pos), nil
		}
		return l.oneCharToken(TokenMinus, pos), nil
	case '&':
		if l.peekChar() == '&' {
			return l.twoCharToken(TokenAnd, pos), nil
		}
	case '|':
		if l.peekChar() == '|' {
			return l.twoCharToken(TokenOr, pos), nil
		}
	case '+':
		return l.oneCharToken(TokenPlus, pos), nil
	case '*':
		return l.oneCharToken(TokenMul, pos), nil
	case '/':
		return l.oneCharToken(TokenDiv, pos), nil
	case '%':
		return l.oneCharToken(TokenMod, pos), nil
	case '(':
		return l.oneCharToken(TokenLParen, pos), nil
	case ')':
		return l.oneCharToken(TokenRParen, pos), nil
	case '{':
		return l.oneCharToken(TokenLBrace, pos), nil
	case '}':
		return l.oneCharToken(TokenRBrace, pos), nil
	case ';':
		return l.oneCharToken(TokenSemicolon, pos), nil
	case ':':
		return l.oneCharToken(TokenColon, pos), nil
	case '"':
		return l.readString(pos)
	default:
		if isDigit(l.ch) {
			return l.readNumber(pos)
		}
		if isLetter(l.ch) || l.ch == '_' {
			return l.readIdentifier(pos), nil
		}
	}

	return Token{}, l.illegal(pos)
}

// illegal reports the character at pos as unmatched
func (l *Lexer) illegal(pos position.Position) error {
	r, _ := utf8.DecodeRuneInString(l.input[pos.Offset:])
	return rerrors.NewUnexpectedCharacter(r, pos)
}

func (l *Lexer) oneCharToken(tt TokenType, pos position.Position) Token {
	tok := Token{Type: tt, Literal: string(l.ch), Pos: pos}
	l.readChar()
	return tok
}

func (l *Lexer) twoCharToken(tt TokenType, pos position.Position) Token {
	l.readChar()
	l.readChar()
	return Token{Type: tt, Literal: l.input[pos.Offset:l.position], Pos: pos}
}

// readIdentifier reads an identifier and classifies it through the keyword table
func (l *Lexer) readIdentifier(pos position.Position) Token {
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '_') {
		l.readChar()
	}

	literal := l.input[pos.Offset:l.position]
	return Token{Type: LookupIdent(literal), Literal: literal, Pos: pos}
}

// readNumber reads an integer, or a float when a point is followed by at
// least one digit. A point without a following digit is left for the next
// scan, where no rule matches it.
func (l *Lexer) readNumber(pos position.Position) (Token, error) {
	for !l.atEOF() && isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for !l.atEOF() && isDigit(l.ch) {
			l.readChar()
		}

		literal := l.input[pos.Offset:l.position]
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Token{}, l.illegal(pos)
		}
		return Token{Type: TokenFloat, Literal: literal, Float: value, Pos: pos}, nil
	}

	literal := l.input[pos.Offset:l.position]
	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		// out of int64 range
		return Token{}, l.illegal(pos)
	}
	return Token{Type: TokenInteger, Literal: literal, Int: value, Pos: pos}, nil
}

// readString reads a quoted string. Only \n \r \t \" and \\ are valid
// escapes; an unknown escape or a missing closing quote fails at the opening
// quote.
func (l *Lexer) readString(pos position.Position) (Token, error) {
	var buf strings.Builder

	l.readChar() // skip opening quote
	for {
		if l.atEOF() {
			return Token{}, l.illegal(pos)
		}

		switch l.ch {
		case '"':
			l.readChar()
			return Token{Type: TokenString, Literal: buf.String(), Pos: pos}, nil
		case '\\':
			l.readChar()
			if l.atEOF() {
				return Token{}, l.illegal(pos)
			}
			switch l.ch {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case '"':
				buf.WriteByte('"')
			case '\\':
				buf.WriteByte('\\')
			default:
				return Token{}, l.illegal(pos)
			}
		default:
			buf.WriteByte(l.ch)
		}
		l.readChar()
	}
}

// isLetter checks if character is ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
