// SPDX-License-Identifier: MIT
package transform

import (
	"context"
	"errors"
	"reflect"
	"testing"

	g "maragu.dev/gomponents"

	"gitlab.com/fisherprime/markup/ast"
	"gitlab.com/fisherprime/markup/parser"
)

func parse(t *testing.T, source string) []ast.Node {
	t.Helper()

	nodes, err := parser.New().Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("Parser.Parse() error = %v", err)
	}

	return nodes
}

func TestHTML_Transform(t *testing.T) {
	italic := func(ctx context.Context, h *HTML, tag ast.Tag) (g.Node, error) {
		children, err := h.Nodes(ctx, tag.Children)
		if err != nil {
			return nil, err
		}
		return g.El("i", children...), nil
	}

	tests := []struct {
		name   string
		source string
		opts   []HTMLOption
		want   string
	}{
		{name: "empty", source: "", want: ""},
		{name: "text", source: `"abc"`, want: "abc"},
		{name: "empty tag", source: "div {}", want: "<div></div>"},
		{
			name:   "nested",
			source: `div { div {"item1"} div {"item2"} }`,
			want:   "<div><div>item1</div><div>item2</div></div>",
		},
		{
			name:   "siblings",
			source: `p {"first"} div {"second"} "third"`,
			want:   "<p>first</p><div>second</div>third",
		},
		{
			name:   "attributes",
			source: `p(class: "a", id: 3) {"x"}`,
			want:   `<p class="a" id="3">x</p>`,
		},
		{
			name:   "duplicate attributes",
			source: `p(class: "a", id: 3, class: "b") {}`,
			want:   `<p class="b" id="3"></p>`,
		},
		{
			name:   "literal attributes",
			source: `div(rows: [1, 2..4], from: 7..) {}`,
			want:   `<div rows="[1, 2..4]" from="7.."></div>`,
		},
		{
			name:   "attributes disabled",
			source: `p(class: "a") {"x"}`,
			opts:   []HTMLOption{WithAttributes(false)},
			want:   "<p>x</p>",
		},
		{
			name:   "escaped text",
			source: `p {"<script>alert(1)</script> & 'x'"}`,
			want:   "<p>&lt;script&gt;alert(1)&lt;/script&gt; &amp; &#39;x&#39;</p>",
		},
		{
			name:   "escaped attribute",
			source: `a(title: "<'&'>") {}`,
			want:   `<a title="&lt;&#39;&amp;&#39;&gt;"></a>`,
		},
		{
			name:   "custom rule",
			source: `p { em {"x"} }`,
			opts:   []HTMLOption{WithRule("em", italic)},
			want:   "<p><i>x</i></p>",
		},
		{
			name:   "code-block rule removed",
			source: `code-block {"x"}`,
			opts:   []HTMLOption{WithRule(CodeBlockTag, nil)},
			want:   "<code-block>x</code-block>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewHTML(tt.opts...).Transform(context.Background(), parse(t, tt.source))
			if err != nil {
				t.Errorf("HTML.Transform() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("HTML.Transform() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTML_Transform_unknownNode(t *testing.T) {
	nodes := []ast.Node{ast.Tag{Name: "div", Children: []ast.Node{nil}}}

	if _, err := NewHTML().Transform(context.Background(), nodes); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("HTML.Transform() error = %v, wantErr %v", err, ErrUnknownNode)
	}
}

func TestHTML_Transform_voidElements(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{name: "empty br", source: `p { "a" br {} "b" }`, want: "<p>a<br>b</p>"},
		{name: "empty img", source: `img(src: "x") {}`, want: `<img src="x">`},
		{name: "br with text", source: `br { "lost text" }`, wantErr: true},
		{name: "img with child", source: `img(src: "x") { p { "child" } }`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewHTML().Transform(context.Background(), parse(t, tt.source))
			if (err != nil) != tt.wantErr {
				t.Errorf("HTML.Transform() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDocument) {
					t.Errorf("HTML.Transform() error = %v, want %v", err, ErrInvalidDocument)
				}
				if got != "" {
					t.Errorf("HTML.Transform() = %v, want no output", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("HTML.Transform() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTML_Transform_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHTML().Transform(ctx, []ast.Node{ast.Text{Value: "x"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("HTML.Transform() error = %v, wantErr %v", err, context.Canceled)
	}
}

func TestHTML_Rules(t *testing.T) {
	h := NewHTML(WithRule("b", CodeBlock), WithRule("a", CodeBlock))

	if got, want := h.Rules(), []string{"a", "b", CodeBlockTag}; !reflect.DeepEqual(got, want) {
		t.Errorf("HTML.Rules() = %v, want %v", got, want)
	}
}

func BenchmarkHTML_Transform(b *testing.B) {
	nodes, err := parser.New().Parse(context.Background(), []byte(`div(class: "row") {
	p { "first" }
	code-block(highlights: [1, 3..], lang: "go") {
		"
		package main
		"
	}
	"second"
}`))
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	h := NewHTML()

	b.ReportAllocs()
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if _, err := h.Transform(ctx, nodes); err != nil {
			b.Fatal(err)
		}
	}
}
