// SPDX-License-Identifier: MIT
package ast

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal

import (
	"context"
	"errors"
)

type (
	// TraverseComm defines a channel to communicate info between Walk & it's callers.
	TraverseComm struct {
		Node Node

		// Depth of the Node, top-level nodes have a depth of 0.
		Depth int

		// NewPeers marks the first Node of a level.
		NewPeers bool
	}

	// Level is a list of nodes sharing a depth.
	Level []Node
)

const traverseBufferSize = 10

// Errors encountered when traversing a tree.
var (
	ErrNoTags = errors.New("lacks tags")
)

// Walk performs breadth-first traversal on a forest, pushing its nodes to its channel
// argument.
//
// A context.Context is used to terminate the walk operation; the channel is closed on return.
func Walk(ctx context.Context, nodes []Node, traverseChan chan<- TraverseComm) {
	defer close(traverseChan)

	// Level order traversal.
	queue := append([]Node(nil), nodes...)

	for depth := 0; len(queue) > 0; depth++ {
		select {
		case <-ctx.Done():
			// Received context cancellation.
			return
		default:
		}

		var next []Node

		// Iterate over the level's nodes.
		newPeers := true
		for _, front := range queue {
			traverseChan <- TraverseComm{Node: front, Depth: depth, NewPeers: newPeers}
			newPeers = false

			// Add children to the next level.
			if tag, ok := front.(Tag); ok {
				next = append(next, tag.Children...)
			}
		}

		queue = next
	}
}

// ByLevel lists the Tag nodes of a forest grouped by depth.
func ByLevel(ctx context.Context, nodes []Node) (levels []Level, err error) {
	levels = make([]Level, 0)
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	go Walk(ctx, nodes, traverseChan)

	var peers Level
	for resl := range traverseChan {
		if resl.NewPeers && len(peers) > 0 {
			levels = append(levels, peers)
			peers = nil
		}

		if _, ok := resl.Node.(Tag); ok {
			peers = append(peers, resl.Node)
		}
	}

	if len(peers) > 0 {
		levels = append(levels, peers)
	}

	if err = ctx.Err(); err != nil {
		return
	}

	if len(levels) < 1 {
		err = ErrNoTags
	}

	return
}

// Leaves lists the terminal nodes of a forest: Text nodes & Tags without children.
func Leaves(ctx context.Context, nodes []Node) (termNodes []Node, err error) {
	termNodes = make([]Node, 0)
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	go Walk(ctx, nodes, traverseChan)

	for resl := range traverseChan {
		if tag, ok := resl.Node.(Tag); ok && len(tag.Children) > 0 {
			continue
		}

		termNodes = append(termNodes, resl.Node)
	}

	err = ctx.Err()

	return
}

// Names lists the tag names of a Level.
func (l Level) Names() (names []string) {
	names = make([]string, 0, len(l))
	for _, n := range l {
		if tag, ok := n.(Tag); ok {
			names = append(names, tag.Name)
		}
	}

	return
}
