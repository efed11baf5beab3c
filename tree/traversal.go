package tree

import "github.com/opal-lang/langkit/text"

// Descendants returns every node in n's subtree, n included, in document
// (pre-)order.
func (n Node) Descendants() []Node {
	var out []Node
	Walk(n, VisitorFunc{EnterFn: func(m Node) bool {
		out = append(out, m)
		return true
	}})
	return out
}

// FindFirst returns the first node in n's subtree (pre-order, n included)
// for which pred returns true.
func (n Node) FindFirst(pred func(Node) bool) (Node, bool) {
	var found Node
	ok := false
	Walk(n, VisitorFunc{EnterFn: func(m Node) bool {
		if ok {
			return false
		}
		if pred(m) {
			found, ok = m, true
			return false
		}
		return true
	}})
	return found, ok
}

// Leaves returns every leaf node in n's subtree, in order, the
// concatenation of whose ranges is exactly n's own range (the lossless
// tiling guarantee).
func (n Node) Leaves() []Node {
	var out []Node
	Walk(n, VisitorFunc{EnterFn: func(m Node) bool {
		if m.IsLeaf() {
			out = append(out, m)
		}
		return true
	}})
	return out
}

// NodeAt returns the innermost leaf whose range contains offset, or false
// if offset is out of range.
func (n Node) NodeAt(offset int) (Node, bool) {
	cur := n
	for {
		if !cur.Range().Contains(text.Unit(offset)) {
			return Node{}, false
		}
		if cur.IsLeaf() {
			return cur, true
		}
		advanced := false
		for _, c := range cur.Children() {
			if c.Range().Contains(text.Unit(offset)) {
				cur = c
				advanced = true
				break
			}
		}
		if !advanced {
			return cur, true
		}
	}
}
