package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rune-lang/rune/internal/position"
)

func TestParserErrorMessages(t *testing.T) {
	pos := position.Position{Line: 1, Column: 1}

	tests := []struct {
		name string
		err  *ParserError
		want string
	}{
		{"unexpected character", NewUnexpectedCharacter('@', pos), "(P001): Unexpected character `@`"},
		{"unexpected token", NewUnexpectedToken(")", pos), "(P002): Unexpected token `)`"},
		{"end of input", NewUnexpectedEndOfInput(pos), "(P003): Unexpected end of input"},
		{"expected token", NewExpectedToken("type", pos), "(P004): Expected token `type`"},
		{"expected after", NewExpectedAfter("}", "block", pos), "(P005): Expected `}` after `block`"},
		{"expected after custom", NewExpectedAfterCustom(")", "print", "expression", pos), "(P005): Expected `)` after `print` expression"},
		{"invalid assignment", NewInvalidAssignment("target must be an identifier", pos), "(P006): Invalid assignment target must be an identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestParserErrorCategory(t *testing.T) {
	assert.Equal(t, CategoryLexical, NewUnexpectedCharacter('#', position.Position{}).Category())
	assert.Equal(t, CategorySyntax, NewUnexpectedEndOfInput(position.Position{}).Category())
}

func TestParserErrorIs(t *testing.T) {
	err := fmt.Errorf("parsing main.rn: %w", NewUnexpectedEndOfInput(position.Position{}))

	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrUnexpectedToken))
	assert.Equal(t, "P003", Code(err))

	var pe *ParserError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, UnexpectedEndOfInput, pe.Kind)
}

func TestToolError(t *testing.T) {
	err := IO("failed to read config file (Rune.toml)", fs.ErrNotExist)
	assert.Equal(t, "(C002): IO error: failed to read config file (Rune.toml): file does not exist", err.Error())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "C002", Code(err))

	assert.Equal(t, "(C001): Invalid configuration: bad version", InvalidConfig("bad version", nil).Error())
	assert.Equal(t, "(C000): Internal error: boom", Internal("", errors.New("boom")).Error())
	assert.Equal(t, "", Code(errors.New("plain")))
}
