// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"context"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer defines a type to capture tokens from a markup source.
	//
	// A Lexer is single use, ScanTokens consumes the whole source.
	Lexer struct {
		logger       logrus.FieldLogger
		debug        bool
		maxSourceLen int

		// source is the input source.
		source string

		// start is the position of the Token being scanned.
		start int
		// pos is the current source position.
		pos int
		// width of the last rune read by Next, used by Backup.
		width int

		tokens []Token
		err    error
	}
)

// Improves on performance compared to ORs.
//
// Reduces function cost improving probalility of inlining.
var (
	whitespace = [utf8.RuneSelf]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
		'\v': true,
		'\f': true,
	}

	identSymbols = [utf8.RuneSelf]bool{
		'_': true,
		'-': true,
	}

	punctuation = [utf8.RuneSelf]TokenID{
		'(': LeftParen,
		')': RightParen,
		'[': LeftBracket,
		']': RightBracket,
		'{': LeftBrace,
		'}': RightBrace,
		',': Comma,
		':': Colon,
	}
)

// New creates a new scanner for the configured source.
func New(opts ...Option) *Lexer {
	l := &Lexer{logger: logrus.New()}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// ScanTokens lexes the whole source by executing state functions.
//
// The returned sequence is terminated by exactly one EndOfInput Token; the first lexical error
// aborts the scan.
func (l *Lexer) ScanTokens(ctx context.Context) (tokens []Token, err error) {
	if l.maxSourceLen > 0 && len(l.source) > l.maxSourceLen {
		err = fmt.Errorf("%w: %d > %d bytes", ErrSourceTooLarge, len(l.source), l.maxSourceLen)
		return
	}

	l.start, l.pos, l.err = 0, 0, nil
	l.tokens = make([]Token, 0, len(l.source)/defTokenRatio+1)

	for stateFunction := l.LexWhitespace; stateFunction != nil; {
		stateFunction = stateFunction(ctx)
	}

	if err = l.err; err != nil {
		if l.debug {
			l.logger.Debugf("lexer stopped at %d: %v", l.pos, err)
		}
		return
	}
	tokens = l.tokens

	return
}

// LexWhitespace skips whitespace & dispatches on the next rune.
func (l *Lexer) LexWhitespace(ctx context.Context) NextOperation {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
		return nil
	default:
	}

	// Ignore white spaces, discard instead of emit.
	l.AcceptWhile(isWhitespace)
	l.Discard()

	next := l.Next()
	switch {
	case next == eof:
		l.Emit(EndOfInput)
		return nil
	case next == '"':
		return l.LexString
	case next == '.':
		if l.Peek() == '.' {
			l.Next()
			l.Emit(DoubleDot)
		} else {
			l.Emit(Dot)
		}

		return l.LexWhitespace
	case isDigit(next):
		return l.LexNumber
	case isAlpha(next):
		return l.LexIdentifier
	case next < utf8.RuneSelf && punctuation[next] != 0:
		l.Emit(punctuation[next])
		return l.LexWhitespace
	default:
		l.EmitError(&UnrecognizedCharacterError{Character: next, Position: l.start})
		return nil
	}
}

// LexString scans a string literal, the opening quote has been consumed.
//
// Any byte sequence including newlines is accepted up to the closing quote.
func (l *Lexer) LexString(_ context.Context) NextOperation {
	for {
		switch l.Next() {
		case eof:
			l.EmitError(&UnclosedStringLiteralError{Start: l.start, End: l.pos})
			return nil
		case '"':
			l.emit(Token{ID: String, Val: l.source[l.start+1 : l.pos-1], Pos: l.start})
			return l.LexWhitespace
		}
	}
}

// LexIdentifier scans an identifier, the leading letter has been consumed.
func (l *Lexer) LexIdentifier(_ context.Context) NextOperation {
	l.AcceptWhile(isIdentifier)
	l.Emit(Identifier)

	return l.LexWhitespace
}

// LexNumber scans a decimal uint32, the leading digit has been consumed.
func (l *Lexer) LexNumber(_ context.Context) NextOperation {
	l.AcceptWhile(isDigit)

	text := l.source[l.start:l.pos]
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		l.EmitError(&NumberOutOfRangeError{Text: text, Start: l.start, End: l.pos})
		return nil
	}
	l.emit(Token{ID: Number, Num: uint32(n), Pos: l.start})

	return l.LexWhitespace
}

// Next return the Next rune in the input.
func (l *Lexer) Next() (r rune) {
	if l.pos >= len(l.source) {
		l.width = 0
		return eof
	}

	r, l.width = rune(l.source[l.pos]), 1
	if r >= utf8.RuneSelf {
		r, l.width = utf8.DecodeRuneInString(l.source[l.pos:])
	}
	l.pos += l.width

	return
}

// Peek return the next rune, without updating the position.
func (l *Lexer) Peek() (r rune) {
	r = l.Next()
	l.Backup()

	return
}

// Backup step back one rune.
//
// Can only be called once per call of Next.
func (l *Lexer) Backup() {
	l.pos -= l.width
	l.width = 0
}

// Discard the source content before the current position.
func (l *Lexer) Discard() { l.start = l.pos }

// AcceptWhile consumes runes while condition is true.
func (l *Lexer) AcceptWhile(fn ValidationFunction) {
	for {
		r := l.Next()
		if r == eof {
			// End of input.
			return
		}

		// End of current token type.
		if !fn(r) {
			l.Backup()
			return
		}
	}
}

// Emit appends a Token of the given type spanning the scanned runes.
func (l *Lexer) Emit(id TokenID) {
	l.emit(Token{ID: id, Val: l.source[l.start:l.pos], Pos: l.start})
}

func (l *Lexer) emit(t Token) {
	if l.debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.Debugf("lexer emit: %s at %d", t, t.Pos)
	}

	l.tokens = append(l.tokens, t)
	l.Discard()
}

// EmitError records the error that terminates the scan process.
func (l *Lexer) EmitError(err error) { l.err = err }

// isWhitespace return true for whitespace, newline & carrier return.
func isWhitespace(r rune) bool {
	if r < utf8.RuneSelf {
		return whitespace[r]
	}

	return unicode.IsSpace(r)
}

// isAlpha return true for a letter.
func isAlpha(r rune) bool { return unicode.IsLetter(r) }

// isDigit return true for a decimal digit.
func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// isIdentifier return true for runes allowed after an identifier's first letter.
func isIdentifier(r rune) bool {
	return (r < utf8.RuneSelf && identSymbols[r]) || isDigit(r) || isAlpha(r)
}
