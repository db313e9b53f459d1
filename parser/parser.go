// SPDX-License-Identifier: MIT

// Package parser builds the markup AST by recursive descent over a lexed token sequence.
//
// Grammar:
//
//	document     := node* EndOfInput
//	node         := String | tag
//	tag          := Identifier attributes? '{' node* '}'
//	attributes   := '(' (attribute (',' attribute)*)? ')'
//	attribute    := Identifier ':' literal
//	literal      := Number range-suffix? | String | list
//	list         := '[' (literal (',' literal)*)? ']'
//	range-suffix := '..' Number?
package parser

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/markup/ast"
	"gitlab.com/fisherprime/markup/lexer"
	"gitlab.com/fisherprime/markup/types"
)

type (
	// Parser defines a recursive descent parser with one token of lookahead.
	//
	// A Parser may be reused but not shared between goroutines.
	Parser struct {
		logger       logrus.FieldLogger
		debug        bool
		maxSourceLen int

		tokens  []lexer.Token
		current int
	}

	// Option defines the Parser functional option type.
	Option func(*Parser)
)

const (
	expectNode      = "an identifier or a string literal"
	expectAttribute = "an attribute name"
	expectLiteral   = "a number, string, list or range"
)

// New instantiates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logrus.New()}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(p *Parser) { p.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxSourceLen caps the source length in bytes, a value < 1 disables the cap.
func WithMaxSourceLen(n int) Option { return func(p *Parser) { p.maxSourceLen = n } }

// Parse lexes the whole source then builds its forest of nodes.
//
// Lexing & parsing failures share the returned error, both match ErrParse.
func (p *Parser) Parse(ctx context.Context, source []byte) (nodes []ast.Node, err error) {
	l := lexer.New(
		lexer.WithSource(source),
		lexer.WithLogger(p.logger),
		lexer.WithDebug(p.debug),
		lexer.WithMaxSourceLen(p.maxSourceLen),
	)

	tokens, err := l.ScanTokens(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParse, err)
		return
	}

	return p.ParseTokens(ctx, tokens)
}

// ParseTokens builds a forest of nodes from a token sequence terminated by EndOfInput.
func (p *Parser) ParseTokens(ctx context.Context, tokens []lexer.Token) (nodes []ast.Node, err error) {
	if len(tokens) < 1 || tokens[len(tokens)-1].ID != lexer.EndOfInput {
		err = fmt.Errorf("%w: %w", ErrParse, ErrMissingEndOfInput)
		return
	}
	p.tokens, p.current = tokens, 0

	defer func() {
		if err != nil {
			// Skip expensive operation if not debug.
			if p.debug {
				p.logger.Debugf("parsed: %s \ntoken remnants: %s", spew.Sprint(nodes), spew.Sprint(p.tokens[p.current:]))
			}

			nodes = nil
			err = fmt.Errorf("%w: %w", ErrParse, err)
		}
	}()

	nodes = make([]ast.Node, 0)
	for !p.isAtEnd() {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var node ast.Node
		if node, err = p.node(); err != nil {
			return
		}
		nodes = append(nodes, node)
	}

	if p.debug {
		p.logTree(ctx, nodes)
	}

	return
}

// logTree logs the parsed tree's tag names by level & its leaf count.
func (p *Parser) logTree(ctx context.Context, nodes []ast.Node) {
	levels, err := ast.ByLevel(ctx, nodes)
	if err != nil {
		p.logger.Debugf("parsed %d nodes: %v", len(nodes), err)
		return
	}

	var names types.Slice[string]
	for index := range levels {
		names.UniqueAppend(levels[index].Names()...)
	}

	leaves, err := ast.Leaves(ctx, nodes)
	if err != nil {
		p.logger.Debugf("parsed %d levels: %v", len(levels), err)
		return
	}

	p.logger.Debugf("parsed %d levels, %d leaves, tags: %s", len(levels), len(leaves), names.String())
}

// node := String | tag
func (p *Parser) node() (ast.Node, error) {
	switch tok := p.peek(); tok.ID {
	case lexer.String:
		p.advance()
		return ast.Text{Value: tok.Val}, nil
	case lexer.Identifier:
		return p.tag()
	default:
		return nil, p.unexpected(expectNode)
	}
}

// tag := Identifier attributes? '{' node* '}'
func (p *Parser) tag() (node ast.Node, err error) {
	tok := p.peek()
	if tok.ID != lexer.Identifier {
		return nil, p.unexpected(expectNode)
	}
	p.advance()

	tag := ast.Tag{Name: tok.Val, Attributes: []ast.Attribute{}, Children: []ast.Node{}}

	// The attribute clause is optional.
	if p.check(lexer.LeftParen) {
		if tag.Attributes, err = p.attributes(); err != nil {
			return
		}
	}

	if err = p.consume(lexer.LeftBrace); err != nil {
		return
	}

	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		var child ast.Node
		if child, err = p.node(); err != nil {
			return
		}
		tag.Children = append(tag.Children, child)
	}

	if err = p.consume(lexer.RightBrace); err != nil {
		return
	}

	return tag, nil
}

// attributes := '(' (attribute (',' attribute)*)? ')'
func (p *Parser) attributes() (attrs []ast.Attribute, err error) {
	if err = p.consume(lexer.LeftParen); err != nil {
		return
	}

	attrs = []ast.Attribute{}
	if p.check(lexer.Identifier) {
		var attr ast.Attribute
		if attr, err = p.attribute(); err != nil {
			return
		}
		attrs = append(attrs, attr)

		for p.check(lexer.Comma) {
			p.advance()

			if attr, err = p.attribute(); err != nil {
				return
			}
			attrs = append(attrs, attr)
		}
	}

	err = p.consume(lexer.RightParen)

	return
}

// attribute := Identifier ':' literal
func (p *Parser) attribute() (attr ast.Attribute, err error) {
	tok := p.peek()
	if tok.ID != lexer.Identifier {
		err = p.unexpected(expectAttribute)
		return
	}
	p.advance()

	if err = p.consume(lexer.Colon); err != nil {
		return
	}

	value, err := p.literal()
	if err != nil {
		return
	}

	return ast.Attribute{Name: tok.Val, Value: value}, nil
}

// literal := Number range-suffix? | String | list
func (p *Parser) literal() (ast.Literal, error) {
	switch tok := p.peek(); tok.ID {
	case lexer.Number:
		// One token of lookahead decides between a number & a range.
		if p.peekNext().ID == lexer.DoubleDot {
			return p.rangeLiteral()
		}
		p.advance()

		return ast.Number(tok.Num), nil
	case lexer.String:
		p.advance()
		return ast.String(tok.Val), nil
	case lexer.LeftBracket:
		return p.list()
	default:
		return nil, p.unexpected(expectLiteral)
	}
}

// list := '[' (literal (',' literal)*)? ']'
func (p *Parser) list() (ast.Literal, error) {
	if err := p.consume(lexer.LeftBracket); err != nil {
		return nil, err
	}

	items := ast.List{}
	if canStartLiteral(p.peek().ID) {
		item, err := p.literal()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		for p.check(lexer.Comma) {
			p.advance()

			if item, err = p.literal(); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	if err := p.consume(lexer.RightBracket); err != nil {
		return nil, err
	}

	return items, nil
}

// rangeLiteral := Number '..' Number?
func (p *Parser) rangeLiteral() (ast.Literal, error) {
	start := p.peek()
	if start.ID != lexer.Number {
		return nil, p.unexpected(expectLiteral)
	}
	p.advance()

	if err := p.consume(lexer.DoubleDot); err != nil {
		return nil, err
	}

	if end := p.peek(); end.ID == lexer.Number {
		p.advance()
		return ast.ClosedRange(start.Num, end.Num), nil
	}

	return ast.OpenRange(start.Num), nil
}

func (p *Parser) peek() lexer.Token { return p.tokens[p.current] }

// peekNext return the token after the current one.
//
// The current token is never EndOfInput when called.
func (p *Parser) peekNext() lexer.Token { return p.tokens[p.current+1] }

func (p *Parser) advance() {
	if !p.isAtEnd() {
		p.current++
	}
}

func (p *Parser) check(id lexer.TokenID) bool { return p.peek().ID == id }

func (p *Parser) isAtEnd() bool { return p.check(lexer.EndOfInput) }

// consume advances past the current token if it matches id.
func (p *Parser) consume(id lexer.TokenID) error {
	tok := p.peek()
	if tok.ID != id {
		return &ExpectedTokenError{At: tok.Pos, Expected: id, Got: tok}
	}
	p.advance()

	return nil
}

func (p *Parser) unexpected(expected string) error {
	tok := p.peek()
	return &UnexpectedTokenError{At: tok.Pos, Expected: expected, Got: tok}
}

func canStartLiteral(id lexer.TokenID) bool {
	return id == lexer.Number || id == lexer.String || id == lexer.LeftBracket
}
