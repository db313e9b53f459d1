// SPDX-License-Identifier: MIT
package transform

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/markup/ast"
)

type (
	// YAML serializes an AST into a YAML document, DecodeYAML reverses the operation.
	YAML struct {
		indent int
	}

	// YAMLOption defines the YAML functional option type.
	YAMLOption func(*YAML)

	// yamlNode holds either a text or a tag.
	yamlNode struct {
		Text       *string         `yaml:"text,omitempty"`
		Tag        string          `yaml:"tag,omitempty"`
		Attributes []yamlAttribute `yaml:"attributes,omitempty"`
		Children   []yamlNode      `yaml:"children,omitempty"`
	}

	yamlAttribute struct {
		Name  string      `yaml:"name"`
		Value yamlLiteral `yaml:"value"`
	}

	// yamlLiteral holds exactly one of its fields.
	yamlLiteral struct {
		Number *uint32        `yaml:"number,omitempty"`
		String *string        `yaml:"string,omitempty"`
		List   *[]yamlLiteral `yaml:"list,omitempty"`
		Range  *yamlRange     `yaml:"range,omitempty"`
	}

	yamlRange struct {
		Start uint32  `yaml:"start"`
		End   *uint32 `yaml:"end,omitempty"`
	}
)

const defYAMLIndent = 2

// NewYAML instantiates a YAML serializer.
func NewYAML(opts ...YAMLOption) *YAML {
	y := &YAML{indent: defYAMLIndent}

	for _, opt := range opts {
		opt(y)
	}

	return y
}

// WithIndent configures the number of spaces per indentation level.
func WithIndent(indent int) YAMLOption { return func(y *YAML) { y.indent = indent } }

// Transform serializes the nodes into a YAML sequence.
func (y *YAML) Transform(ctx context.Context, nodes []ast.Node) (output []byte, err error) {
	doc, err := encodeNodes(ctx, nodes)
	if err != nil {
		return
	}

	var buffer bytes.Buffer
	enc := yaml.NewEncoder(&buffer)
	enc.SetIndent(y.indent)

	if err = enc.Encode(doc); err != nil {
		err = fmt.Errorf("%w: %w", ErrRender, err)
		return
	}
	if err = enc.Close(); err != nil {
		err = fmt.Errorf("%w: %w", ErrRender, err)
		return
	}
	output = buffer.Bytes()

	return
}

// DecodeYAML parses a document produced by YAML.Transform back into an AST.
func DecodeYAML(data []byte) (nodes []ast.Node, err error) {
	var doc []yamlNode
	if err = yaml.Unmarshal(data, &doc); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		return
	}

	if nodes, err = decodeNodes(doc); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return
}

func encodeNodes(ctx context.Context, nodes []ast.Node) (doc []yamlNode, err error) {
	doc = make([]yamlNode, 0, len(nodes))

	for _, node := range nodes {
		if err = ctx.Err(); err != nil {
			return
		}

		switch n := node.(type) {
		case ast.Text:
			value := n.Value
			doc = append(doc, yamlNode{Text: &value})
		case ast.Tag:
			entry := yamlNode{Tag: n.Name}
			for _, attr := range n.Attributes {
				var value yamlLiteral
				if value, err = encodeLiteral(attr.Value); err != nil {
					return
				}
				entry.Attributes = append(entry.Attributes, yamlAttribute{Name: attr.Name, Value: value})
			}
			if entry.Children, err = encodeNodes(ctx, n.Children); err != nil {
				return
			}
			doc = append(doc, entry)
		default:
			err = fmt.Errorf("%w: %T", ErrUnknownNode, node)
			return
		}
	}

	return
}

func encodeLiteral(literal ast.Literal) (value yamlLiteral, err error) {
	switch l := literal.(type) {
	case ast.Number:
		n := uint32(l)
		value.Number = &n
	case ast.String:
		s := string(l)
		value.String = &s
	case ast.List:
		items := make([]yamlLiteral, len(l))
		for index := range l {
			if items[index], err = encodeLiteral(l[index]); err != nil {
				return
			}
		}
		value.List = &items
	case ast.Range:
		value.Range = &yamlRange{Start: l.Start, End: l.End}
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownLiteral, literal)
	}

	return
}

func decodeNodes(doc []yamlNode) (nodes []ast.Node, err error) {
	nodes = make([]ast.Node, 0, len(doc))

	for _, entry := range doc {
		switch {
		case entry.Text != nil && entry.Tag == "":
			nodes = append(nodes, ast.Text{Value: *entry.Text})
		case entry.Text == nil && entry.Tag != "":
			tag := ast.Tag{
				Name:       entry.Tag,
				Attributes: make([]ast.Attribute, 0, len(entry.Attributes)),
			}
			for _, attr := range entry.Attributes {
				var value ast.Literal
				if value, err = decodeLiteral(attr.Value); err != nil {
					err = fmt.Errorf("%s(%s): %w", entry.Tag, attr.Name, err)
					return
				}
				tag.Attributes = append(tag.Attributes, ast.Attribute{Name: attr.Name, Value: value})
			}
			if tag.Children, err = decodeNodes(entry.Children); err != nil {
				return
			}
			nodes = append(nodes, tag)
		default:
			err = errors.New("node must hold exactly one of text or tag")
			return
		}
	}

	return
}

func decodeLiteral(value yamlLiteral) (literal ast.Literal, err error) {
	set := 0
	for _, ok := range []bool{value.Number != nil, value.String != nil, value.List != nil, value.Range != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		err = errors.New("literal must hold exactly one of number, string, list or range")
		return
	}

	switch {
	case value.Number != nil:
		literal = ast.Number(*value.Number)
	case value.String != nil:
		literal = ast.String(*value.String)
	case value.List != nil:
		items := make(ast.List, len(*value.List))
		for index, item := range *value.List {
			if items[index], err = decodeLiteral(item); err != nil {
				return
			}
		}
		literal = items
	default:
		literal = ast.Range{Start: value.Range.Start, End: value.Range.End}
	}

	return
}
