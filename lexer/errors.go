// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
)

// Lexing errors.
var (
	ErrUnrecognizedCharacter = errors.New("unrecognized character")
	ErrUnclosedStringLiteral = errors.New("unclosed string literal")
	ErrNumberOutOfRange      = errors.New("number out of range")
	ErrSourceTooLarge        = errors.New("source too large")
)

type (
	// UnrecognizedCharacterError reports a character outside the accepted grammar.
	UnrecognizedCharacterError struct {
		Character rune
		Position  int
	}

	// UnclosedStringLiteralError reports a string literal reaching the end of the source.
	UnclosedStringLiteralError struct {
		// Start is the position of the opening quote.
		Start int
		// End is the position at which scanning stopped.
		End int
	}

	// NumberOutOfRangeError reports a number that does not fit an uint32.
	NumberOutOfRangeError struct {
		Text  string
		Start int
		End   int
	}
)

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrUnrecognizedCharacter, e.Character, e.Position)
}

func (e *UnrecognizedCharacterError) Unwrap() error { return ErrUnrecognizedCharacter }

func (e *UnclosedStringLiteralError) Error() string {
	return fmt.Sprintf("%s at start: %d end: %d", ErrUnclosedStringLiteral, e.Start, e.End)
}

func (e *UnclosedStringLiteralError) Unwrap() error { return ErrUnclosedStringLiteral }

func (e *NumberOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s at start: %d end: %d", ErrNumberOutOfRange, e.Text, e.Start, e.End)
}

func (e *NumberOutOfRangeError) Unwrap() error { return ErrNumberOutOfRange }
