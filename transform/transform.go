// SPDX-License-Identifier: MIT

// Package transform renders a markup AST into output artifacts.
package transform

import (
	"context"
	"errors"

	"gitlab.com/fisherprime/markup/ast"
)

type (
	// Transformer consumes an AST & produces a rendered artifact.
	//
	// Implementations only read the tree.
	Transformer[T any] interface {
		Transform(ctx context.Context, nodes []ast.Node) (T, error)
	}
)

// Transformation errors.
var (
	ErrUnknownNode      = errors.New("unknown node type")
	ErrUnknownLiteral   = errors.New("unknown literal type")
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrInvalidDocument  = errors.New("invalid document")
	ErrRender           = errors.New("failed to render")
)

var (
	_ Transformer[string] = (*HTML)(nil)
	_ Transformer[[]byte] = (*YAML)(nil)
)
