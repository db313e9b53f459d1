// SPDX-License-Identifier: MIT
package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	g "maragu.dev/gomponents"

	"gitlab.com/fisherprime/markup/ast"
)

type (
	// Rule renders a Tag in place of the generic element rule.
	Rule func(ctx context.Context, h *HTML, tag ast.Tag) (g.Node, error)

	// HTML renders an AST into an HTML string.
	//
	// Text is escaped; tags without a registered Rule render as `<name>…</name>` elements.
	// An HTML is safe for concurrent use once configured.
	HTML struct {
		logger     logrus.FieldLogger
		debug      bool
		attributes bool

		rules map[string]Rule
	}

	// HTMLOption defines the HTML functional option type.
	HTMLOption func(*HTML)
)

// CodeBlockTag names the tag rendered by the CodeBlock Rule.
const CodeBlockTag = "code-block"

// voidElements lack a closing tag, thus can't hold children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// NewHTML instantiates an HTML renderer with the CodeBlock Rule registered.
func NewHTML(opts ...HTMLOption) *HTML {
	h := &HTML{
		logger:     logrus.New(),
		attributes: true,
		rules:      map[string]Rule{CodeBlockTag: CodeBlock},
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.debug {
		h.logger.Debugf("html rules: %v", h.Rules())
	}

	return h
}

// WithDebug configures the debug option.
func WithDebug(debug bool) HTMLOption { return func(h *HTML) { h.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) HTMLOption {
	return func(h *HTML) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithAttributes toggles the emission of tag attributes as HTML attributes.
func WithAttributes(enabled bool) HTMLOption { return func(h *HTML) { h.attributes = enabled } }

// WithRule registers a Rule for a tag name, a nil Rule restores the generic element rule.
func WithRule(name string, rule Rule) HTMLOption {
	return func(h *HTML) {
		if rule == nil {
			delete(h.rules, name)
			return
		}
		h.rules[name] = rule
	}
}

// Rules lists the tag names with a registered Rule.
func (h *HTML) Rules() (names []string) {
	names = maps.Keys(h.rules)
	slices.Sort(names)

	return
}

// Attributes reports whether tag attributes are emitted.
func (h *HTML) Attributes() bool { return h.attributes }

// Transform renders the nodes into an HTML string.
func (h *HTML) Transform(ctx context.Context, nodes []ast.Node) (output string, err error) {
	children, err := h.Nodes(ctx, nodes)
	if err != nil {
		return
	}

	var buffer strings.Builder
	if err = g.Group(children).Render(&buffer); err != nil {
		err = fmt.Errorf("%w: %w", ErrRender, err)
		return
	}
	output = buffer.String()

	if h.debug {
		h.logger.Debugf("html output: %d bytes", len(output))
	}

	return
}

// Nodes converts a list of AST nodes in order.
func (h *HTML) Nodes(ctx context.Context, nodes []ast.Node) (children []g.Node, err error) {
	children = make([]g.Node, 0, len(nodes))

	for _, node := range nodes {
		var child g.Node
		if child, err = h.Node(ctx, node); err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return
}

// Node converts an AST node, dispatching tags on their name.
func (h *HTML) Node(ctx context.Context, node ast.Node) (g.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case ast.Text:
		return g.Text(n.Value), nil
	case ast.Tag:
		if rule, ok := h.rules[n.Name]; ok {
			return rule(ctx, h, n)
		}

		return h.Element(ctx, n)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownNode, node)
	}
}

// Element is the generic element rule: `<name attrs>children</name>`.
//
// Void elements render as `<name attrs>` & fail with ErrInvalidDocument when given children.
func (h *HTML) Element(ctx context.Context, tag ast.Tag) (g.Node, error) {
	children, err := h.Nodes(ctx, tag.Children)
	if err != nil {
		return nil, err
	}

	if len(children) > 0 && voidElements[tag.Name] {
		return nil, fmt.Errorf("%w: void element %s has %d children", ErrInvalidDocument, tag.Name, len(children))
	}

	return g.El(tag.Name, append(h.Attrs(tag.UniqueAttributes()), children...)...), nil
}

// Attrs converts attributes to `name="value"` HTML attributes, the value being the literal's
// display form.
//
// Nothing is emitted when attributes are disabled.
func (h *HTML) Attrs(attrs []ast.Attribute) (nodes []g.Node) {
	if !h.attributes {
		return
	}

	nodes = make([]g.Node, 0, len(attrs))
	for _, attr := range attrs {
		nodes = append(nodes, g.Attr(attr.Name, attr.Value.String()))
	}

	return
}
