// Package errors provides the coded error types of the rune front end:
// parse failures (Pnnn) raised by the lexer and parser, and tool failures
// (Cnnn) raised by configuration, build and I/O code.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory groups error codes by the stage that raises them
type ErrorCategory string

const (
	CategoryLexical  ErrorCategory = "LEXICAL"
	CategorySyntax   ErrorCategory = "SYNTAX"
	CategoryInternal ErrorCategory = "INTERNAL"
	CategoryConfig   ErrorCategory = "CONFIG"
	CategoryIO       ErrorCategory = "IO"
)

// ToolError is a coded failure outside the parse core.
type ToolError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *ToolError) Error() string {
	label := "Internal error"
	switch e.Category {
	case CategoryConfig:
		label = "Invalid configuration"
	case CategoryIO:
		label = "IO error"
	}

	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}

	return fmt.Sprintf("(%s): %s: %s", e.Code, label, msg)
}

// Unwrap returns the underlying cause
func (e *ToolError) Unwrap() error { return e.Err }

// Internal creates a C000 error
func Internal(message string, err error) *ToolError {
	return &ToolError{Category: CategoryInternal, Code: "C000", Message: message, Err: err}
}

// InvalidConfig creates a C001 error
func InvalidConfig(message string, err error) *ToolError {
	return &ToolError{Category: CategoryConfig, Code: "C001", Message: message, Err: err}
}

// IO creates a C002 error
func IO(message string, err error) *ToolError {
	return &ToolError{Category: CategoryIO, Code: "C002", Message: message, Err: err}
}

// Code returns the stable code carried by err, or "" if err carries none.
func Code(err error) string {
	var pe *ParserError
	if errors.As(err, &pe) {
		return pe.Code()
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
