// Package tree builds the lossless concrete syntax tree (spec §4.7) from
// an engine.Result and the full (trivia-inclusive) token stream: every
// byte of the source ends up under exactly one leaf, and every composite
// node's range exactly tiles the ranges of its children.
package tree

import (
	"github.com/opal-lang/langkit/grammarir"
	"github.com/opal-lang/langkit/text"
)

// NodeID indexes a node in a Tree's arena.
type NodeID int32

const noParent NodeID = -1

// FragmentType marks a leaf that carries no grammar node type: the raw
// token fragments a ContextualToken splits its literal across, and tokens
// consumed by Any. They still
// occupy a real, addressable leaf in the tree (the lossless guarantee
// never drops bytes), just with no semantic type attached.
const FragmentType = -1

type record struct {
	typeIdx  int // grammarir 1-based type index, 0 = ERROR, FragmentType = untyped leaf
	isLeaf   bool
	span     text.Range
	parent   NodeID
	children []NodeID
}

// Tree is an arena-allocated, immutable concrete syntax tree. Nodes hold
// parent back-references rather than owning pointers, so a Node handle is
// just a (tree, id) pair safe to copy and compare (spec §9 design note).
type Tree struct {
	doc   *grammarir.GrammarDocument
	nodes []record
	root  NodeID
}

// Node is a lightweight handle into a Tree's arena.
type Node struct {
	t  *Tree
	id NodeID
}

// Root returns the tree's root node, spanning the entire source.
func (t *Tree) Root() Node { return Node{t, t.root} }

// IsLeaf reports whether n wraps a single token rather than a list of
// children.
func (n Node) IsLeaf() bool { return n.t.nodes[n.id].isLeaf }

// Range returns n's byte range in the source text.
func (n Node) Range() text.Range { return n.t.nodes[n.id].span }

// TypeName returns the grammar's display name for n's node type, "ERROR"
// for error nodes, or "" for untyped fragment leaves.
func (n Node) TypeName() string {
	ty := n.t.nodes[n.id].typeIdx
	if ty == FragmentType {
		return ""
	}
	return n.t.doc.TypeName(ty)
}

// TypeIdx returns n's raw 1-based grammar type index (0 = ERROR,
// FragmentType for untyped leaves).
func (n Node) TypeIdx() int { return n.t.nodes[n.id].typeIdx }

// IsError reports whether n is an error-recovery node.
func (n Node) IsError() bool { return n.t.nodes[n.id].typeIdx == 0 && !n.IsLeaf() }

// Children returns n's direct children, empty for a leaf.
func (n Node) Children() []Node {
	ids := n.t.nodes[n.id].children
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{n.t, id}
	}
	return out
}

// Parent returns n's parent and true, or the zero Node and false at the
// root.
func (n Node) Parent() (Node, bool) {
	p := n.t.nodes[n.id].parent
	if p == noParent {
		return Node{}, false
	}
	return Node{n.t, p}, true
}

// Text returns the slice of source covered by n's range.
func (n Node) Text(source []byte) []byte {
	r := n.Range()
	return source[r.Start:r.End]
}

// Equal reports whether n and other refer to the same node of the same
// tree.
func (n Node) Equal(other Node) bool { return n.t == other.t && n.id == other.id }
