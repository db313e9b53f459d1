// SPDX-License-Identifier: MIT

// Package ast defines the tree produced by the markup parser.
//
// Node & Literal are closed sets of variants; consumers switch over the concrete types.
package ast

import (
	"golang.org/x/exp/slices"
)

type (
	// Node is a parsed tree element, either a Text or a Tag.
	Node interface {
		node()
	}

	// Text holds literal string content.
	Text struct {
		Value string
	}

	// Tag is a named element holding attributes & children in source order.
	Tag struct {
		Name       string
		Attributes []Attribute
		Children   []Node
	}

	// Attribute is a `name: literal` pair of a Tag.
	Attribute struct {
		Name  string
		Value Literal
	}
)

func (Text) node() {}
func (Tag) node()  {}

// Attribute retrieves the value of the last attribute named name.
func (t Tag) Attribute(name string) (value Literal, ok bool) {
	for index := len(t.Attributes) - 1; index >= 0; index-- {
		if t.Attributes[index].Name == name {
			return t.Attributes[index].Value, true
		}
	}

	return
}

// UniqueAttributes lists the Tag's attributes with duplicates collapsed.
//
// An attribute keeps the position of its first occurrence & the value of its last.
func (t Tag) UniqueAttributes() (attrs []Attribute) {
	attrs = make([]Attribute, 0, len(t.Attributes))
	seen := make(map[string]int, len(t.Attributes))

	for _, attr := range t.Attributes {
		if index, ok := seen[attr.Name]; ok {
			attrs[index].Value = attr.Value
			continue
		}
		seen[attr.Name] = len(attrs)
		attrs = append(attrs, attr)
	}

	return
}

// Equal reports whether two forests are structurally equal.
func Equal(a, b []Node) bool { return slices.EqualFunc(a, b, EqualNode) }

// EqualNode reports whether two nodes are structurally equal.
func EqualNode(a, b Node) bool {
	switch x := a.(type) {
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case Tag:
		y, ok := b.(Tag)
		return ok && x.Name == y.Name &&
			slices.EqualFunc(x.Attributes, y.Attributes, EqualAttribute) &&
			Equal(x.Children, y.Children)
	default:
		return a == nil && b == nil
	}
}

// EqualAttribute reports whether two attributes are structurally equal.
func EqualAttribute(a, b Attribute) bool {
	return a.Name == b.Name && EqualLiteral(a.Value, b.Value)
}
