// SPDX-License-Identifier: MIT
package parser

import (
	"errors"
	"fmt"

	"gitlab.com/fisherprime/markup/lexer"
)

// Parsing errors.
var (
	ErrParse             = errors.New("parse error")
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrExpectedToken     = errors.New("expected token")
	ErrMissingEndOfInput = errors.New("token sequence lacks an end of input")
)

type (
	// UnexpectedTokenError reports a token that cannot start the production being parsed.
	UnexpectedTokenError struct {
		// Expected names the production, e.g. "node" or "literal".
		Expected string
		Got      lexer.Token
		// At is the byte offset of Got.
		At int
	}

	// ExpectedTokenError reports a missing delimiter.
	ExpectedTokenError struct {
		Got      lexer.Token
		Expected lexer.TokenID
		// At is the byte offset of Got.
		At int
	}
)

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%s %s at %d, expected %s", ErrUnexpectedToken, e.Got, e.At, e.Expected)
}

func (e *UnexpectedTokenError) Unwrap() error { return ErrUnexpectedToken }

func (e *ExpectedTokenError) Error() string {
	return fmt.Sprintf("expected %s and got %s at %d", e.Expected, e.Got, e.At)
}

func (e *ExpectedTokenError) Unwrap() error { return ErrExpectedToken }
