package tree

import (
	"fmt"

	"github.com/opal-lang/langkit/engine"
	"github.com/opal-lang/langkit/grammarir"
	"github.com/opal-lang/langkit/lexer"
	"github.com/opal-lang/langkit/text"
)

// span is a resolved child awaiting attachment to its eventual parent: a
// node already built in the arena, plus the inclusive [first,last] token
// index range it covers, used purely to detect trivia gaps between
// siblings.
type span struct {
	id         NodeID
	first, last int
}

type builder struct {
	doc     *grammarir.GrammarDocument
	tokens  []lexer.Token
	offsets []text.Unit // offsets[i] = byte offset token i starts at
	tree    *Tree
}

// Build assembles the lossless concrete syntax tree for a single parse:
// root is the engine's untyped parse-tree output (spec §4.4) and tokens is
// the *full* token stream the lexer produced, whitespace-like tokens
// included. Whitespace tokens the engine skipped are re-threaded into the
// tree at the narrowest level whose sibling gap they fall into, mirroring
// the original's WsNode re-insertion pass.
func Build(doc *grammarir.GrammarDocument, tokens []lexer.Token, root engine.Node) (*Tree, error) {
	if root.Kind != engine.NodeComposite || !root.Typed {
		return nil, fmt.Errorf("tree: root must be a typed composite node")
	}
	offsets := make([]text.Unit, len(tokens))
	var cur text.Unit
	for i, tok := range tokens {
		offsets[i] = cur
		cur = cur.Add(tok.Length)
	}
	total := cur

	t := &Tree{doc: doc}
	b := &builder{doc: doc, tokens: tokens, offsets: offsets, tree: t}

	resolved := b.buildChildren([]engine.Node{root})
	if len(resolved) != 1 {
		return nil, fmt.Errorf("tree: typed root must resolve to exactly one node")
	}
	rootSpan := resolved[0]

	rootRec := &t.nodes[rootSpan.id]
	var lead, trail []NodeID
	for i := 0; i < rootSpan.first; i++ {
		lead = append(lead, b.trivia(i))
	}
	for i := rootSpan.last + 1; i < len(tokens); i++ {
		trail = append(trail, b.trivia(i))
	}
	if len(lead) > 0 || len(trail) > 0 {
		rootRec.children = append(append(lead, rootRec.children...), trail...)
	}
	rootRec.span = text.NewRange(0, total)

	t.root = rootSpan.id
	b.linkParents(rootSpan.id, noParent)
	return t, nil
}

// buildChildren recursively builds every node in nodes and returns the
// flattened list of resolved spans: a typed composite or leaf contributes
// exactly one span wrapping a newly allocated node, while an untyped
// (transparent) composite contributes its own already-resolved children
// directly, so callers see a single flat sibling list regardless of
// nesting introduced purely by combinators like And/Rep/Opt.
func (b *builder) buildChildren(nodes []engine.Node) []span {
	var flat []span
	for i := range nodes {
		flat = append(flat, b.buildOne(&nodes[i])...)
	}
	return b.interleaveTrivia(flat)
}

func (b *builder) buildOne(n *engine.Node) []span {
	if n.Kind == engine.NodeLeaf {
		ty := FragmentType
		if n.Typed {
			ty = n.Type
		}
		id := b.tree.alloc(record{
			typeIdx: ty,
			isLeaf:  true,
			span:    text.NewRange(b.offsets[n.TokenIdx], b.offsets[n.TokenIdx].Add(b.tokens[n.TokenIdx].Length)),
		})
		return []span{{id: id, first: n.TokenIdx, last: n.TokenIdx}}
	}

	kids := b.buildChildren(n.Children)
	if !n.Typed {
		return kids // transparent: splice straight into the caller's list
	}
	if len(kids) == 0 {
		// An empty typed composite (e.g. a Pub wrapping a body that
		// matched nothing, or the ERROR an And appends past its commit
		// point) claims no token: it is marked first=last=-1, which the
		// parent's range computation and trivia interleaving skip, and is
		// given the range [0, 0).
		id := b.tree.alloc(record{typeIdx: n.Type, isLeaf: false, span: text.NewRange(0, 0)})
		return []span{{id: id, first: -1, last: -1}}
	}
	ids := make([]NodeID, len(kids))
	first, last := -1, -1
	for i, k := range kids {
		ids[i] = k.id
		if k.last >= 0 {
			if first < 0 {
				first = k.first
			}
			last = k.last
		}
	}
	rng := text.NewRange(0, 0)
	if first >= 0 {
		rng = text.NewRange(b.offsets[first], b.offsets[last].Add(b.tokens[last].Length))
	}
	id := b.tree.alloc(record{typeIdx: n.Type, isLeaf: false, span: rng, children: ids})
	return []span{{id: id, first: first, last: last}}
}

// interleaveTrivia walks already-built siblings in token order and inserts
// any whitespace-like tokens that fall strictly between one sibling's last
// token and the next sibling's first token, as plain leaf nodes at this
// same level.
func (b *builder) interleaveTrivia(kids []span) []span {
	if len(kids) == 0 {
		return kids
	}
	out := make([]span, 0, len(kids))
	prevLast := -2
	for _, k := range kids {
		if prevLast >= -1 && k.first >= 0 {
			for i := prevLast + 1; i < k.first; i++ {
				id := b.trivia(i)
				out = append(out, span{id: id, first: i, last: i})
			}
		}
		out = append(out, k)
		if k.last >= 0 {
			prevLast = k.last
		}
	}
	return out
}

func (b *builder) trivia(tokenIdx int) NodeID {
	return b.tree.alloc(record{
		typeIdx: int(b.tokens[tokenIdx].Type),
		isLeaf:  true,
		span:    text.NewRange(b.offsets[tokenIdx], b.offsets[tokenIdx].Add(b.tokens[tokenIdx].Length)),
	})
}

func (t *Tree) alloc(r record) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, r)
	return id
}

func (b *builder) linkParents(id, parent NodeID) {
	rec := &b.tree.nodes[id]
	rec.parent = parent
	for _, c := range rec.children {
		b.linkParents(c, id)
	}
}
