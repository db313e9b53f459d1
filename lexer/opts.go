// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Option defines the Lexer functional option type.
	Option func(*Lexer)
)

const (
	// defTokenRatio estimates the number of source bytes per token for the initial allocation.
	defTokenRatio = 4

	eof rune = -1
)

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSource configures the source option.
//
// The source is converted to a string once, every Token's Val shares its memory.
func WithSource(source []byte) Option { return func(l *Lexer) { l.source = string(source) } }

// WithSourceString configures the source option from a string, no copy is made.
func WithSourceString(source string) Option { return func(l *Lexer) { l.source = source } }

// WithMaxSourceLen caps the source length in bytes, a value < 1 disables the cap.
func WithMaxSourceLen(n int) Option { return func(l *Lexer) { l.maxSourceLen = n } }
