package errors

import (
	"fmt"

	"github.com/rune-lang/rune/internal/position"
)

// Kind identifies one member of the closed parse failure taxonomy.
type Kind int

const (
	UnexpectedCharacter Kind = iota + 1
	UnexpectedToken
	UnexpectedEndOfInput
	ExpectedToken
	ExpectedAfter
	ExpectedAfterCustom
	InvalidAssignment
)

var kindCodes = map[Kind]string{
	UnexpectedCharacter:  "P001",
	UnexpectedToken:      "P002",
	UnexpectedEndOfInput: "P003",
	ExpectedToken:        "P004",
	ExpectedAfter:        "P005",
	ExpectedAfterCustom:  "P005",
	InvalidAssignment:    "P006",
}

// String returns the code of the kind
func (k Kind) String() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// ParserError is a terminal lexical or syntactic failure. Only the fields
// relevant to Kind are set.
type ParserError struct {
	Kind     Kind
	Char     rune   // UnexpectedCharacter
	Token    string // UnexpectedToken, ExpectedToken
	Expected string // ExpectedAfter, ExpectedAfterCustom
	Found    string // ExpectedAfter, ExpectedAfterCustom
	Message  string // ExpectedAfterCustom, InvalidAssignment

	// Pos is where the failure was detected. It is not part of the message.
	Pos position.Position
}

// Error renders the stable, coded message.
func (e *ParserError) Error() string {
	code := e.Code()
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("(%s): Unexpected character `%c`", code, e.Char)
	case UnexpectedToken:
		return fmt.Sprintf("(%s): Unexpected token `%s`", code, e.Token)
	case UnexpectedEndOfInput:
		return fmt.Sprintf("(%s): Unexpected end of input", code)
	case ExpectedToken:
		return fmt.Sprintf("(%s): Expected token `%s`", code, e.Token)
	case ExpectedAfter:
		return fmt.Sprintf("(%s): Expected `%s` after `%s`", code, e.Expected, e.Found)
	case ExpectedAfterCustom:
		return fmt.Sprintf("(%s): Expected `%s` after `%s` %s", code, e.Expected, e.Found, e.Message)
	case InvalidAssignment:
		return fmt.Sprintf("(%s): Invalid assignment %s", code, e.Message)
	default:
		return fmt.Sprintf("(%s): parse error", code)
	}
}

// Code returns the stable identifier, P001 through P006.
func (e *ParserError) Code() string { return e.Kind.String() }

// Category reports whether the failure came from the lexer or the parser.
func (e *ParserError) Category() ErrorCategory {
	if e.Kind == UnexpectedCharacter {
		return CategoryLexical
	}
	return CategorySyntax
}

// Is matches any *ParserError of the same Kind, so the sentinels below work
// with errors.Is.
func (e *ParserError) Is(target error) bool {
	t, ok := target.(*ParserError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrUnexpectedCharacter = &ParserError{Kind: UnexpectedCharacter}
	ErrUnexpectedToken     = &ParserError{Kind: UnexpectedToken}
	ErrUnexpectedEOF       = &ParserError{Kind: UnexpectedEndOfInput}
	ErrExpectedToken       = &ParserError{Kind: ExpectedToken}
	ErrExpectedAfter       = &ParserError{Kind: ExpectedAfter}
	ErrExpectedAfterCustom = &ParserError{Kind: ExpectedAfterCustom}
	ErrInvalidAssignment   = &ParserError{Kind: InvalidAssignment}
)

// NewUnexpectedCharacter reports a character no lexing rule matches.
func NewUnexpectedCharacter(ch rune, pos position.Position) *ParserError {
	return &ParserError{Kind: UnexpectedCharacter, Char: ch, Pos: pos}
}

// NewUnexpectedToken reports a token that cannot appear where it was found.
func NewUnexpectedToken(token string, pos position.Position) *ParserError {
	return &ParserError{Kind: UnexpectedToken, Token: token, Pos: pos}
}

// NewUnexpectedEndOfInput reports that the token buffer ran out.
func NewUnexpectedEndOfInput(pos position.Position) *ParserError {
	return &ParserError{Kind: UnexpectedEndOfInput, Pos: pos}
}

// NewExpectedToken reports a missing token.
func NewExpectedToken(token string, pos position.Position) *ParserError {
	return &ParserError{Kind: ExpectedToken, Token: token, Pos: pos}
}

// NewExpectedAfter reports that expected was missing after found.
func NewExpectedAfter(expected, found string, pos position.Position) *ParserError {
	return &ParserError{Kind: ExpectedAfter, Expected: expected, Found: found, Pos: pos}
}

// NewExpectedAfterCustom is NewExpectedAfter with a clarifying suffix.
func NewExpectedAfterCustom(expected, found, message string, pos position.Position) *ParserError {
	return &ParserError{Kind: ExpectedAfterCustom, Expected: expected, Found: found, Message: message, Pos: pos}
}

// NewInvalidAssignment reports an assignment to something other than a name.
func NewInvalidAssignment(message string, pos position.Position) *ParserError {
	return &ParserError{Kind: InvalidAssignment, Message: message, Pos: pos}
}
