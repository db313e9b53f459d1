// SPDX-License-Identifier: MIT
package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"gitlab.com/fisherprime/markup/ast"
	"gitlab.com/fisherprime/markup/types"
)

// Attributes with a dedicated meaning on a code-block.
const (
	langAttr       = "lang"
	highlightsAttr = "highlights"
)

// CodeBlock renders a code-block tag as `<pre><code>…</code></pre>`.
//
// The children render as usual & the result is dedented. `lang` becomes a `language-*` class on
// the code element, `highlights` (numbers, ranges or lists of them) becomes a data-highlights
// attribute listing 1-based line numbers; other attributes are set on the pre element.
func CodeBlock(ctx context.Context, renderer *HTML, tag ast.Tag) (g.Node, error) {
	children, err := renderer.Nodes(ctx, tag.Children)
	if err != nil {
		return nil, err
	}

	var buffer strings.Builder
	if err = g.Group(children).Render(&buffer); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, tag.Name, err)
	}
	code := Dedent(buffer.String())

	var preAttrs, codeAttrs []g.Node
	if renderer.Attributes() {
		var others []ast.Attribute

		for _, attr := range tag.UniqueAttributes() {
			switch attr.Name {
			case langAttr:
				codeAttrs = append(codeAttrs, h.Class("language-"+attr.Value.String()))
			case highlightsAttr:
				lines, err := Highlights(attr.Value, LineCount(code))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", tag.Name, err)
				}
				if len(lines) > 0 {
					preAttrs = append(preAttrs, g.Attr("data-"+highlightsAttr, lines.Join(",")))
				}
			default:
				others = append(others, attr)
			}
		}

		preAttrs = append(preAttrs, renderer.Attrs(others)...)
	}

	return h.Pre(append(preAttrs, h.Code(append(codeAttrs, g.Raw(code))...))...), nil
}

// Dedent removes the whitespace common to the start of every line & trims surrounding blank
// lines.
func Dedent(text string) string { return strings.Trim(dedent.Dedent(text), "\n") }

// LineCount counts the lines of text, an empty text has none.
func LineCount(text string) uint32 {
	if text == "" {
		return 0
	}

	return uint32(strings.Count(text, "\n") + 1)
}

// Highlights expands a highlights literal into sorted, unique line numbers within [1, limit].
func Highlights(value ast.Literal, limit uint32) (lines types.Slice[uint32], err error) {
	if err = collectHighlights(value, limit, &lines); err != nil {
		return nil, err
	}
	lines.Compact()

	return
}

func collectHighlights(value ast.Literal, limit uint32, lines *types.Slice[uint32]) error {
	switch v := value.(type) {
	case ast.Number:
		if n := uint32(v); n >= 1 && n <= limit {
			*lines = append(*lines, n)
		}
	case ast.Range:
		for _, n := range v.Expand(limit) {
			if n >= 1 {
				*lines = append(*lines, n)
			}
		}
	case ast.List:
		for _, item := range v {
			if err := collectHighlights(item, limit, lines); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s: %s is not a line number or range", ErrInvalidAttribute, highlightsAttr, value)
	}

	return nil
}
