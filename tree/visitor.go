package tree

// Visitor receives pre- and post-order callbacks as Walk descends a tree.
// Enter returning false skips n's children (and the matching Leave call
// for them, though Leave(n) itself still runs).
type Visitor interface {
	Enter(n Node) bool
	Leave(n Node)
}

// Walk performs a depth-first traversal of n and its descendants, calling
// v.Enter before descending into children and v.Leave after.
func Walk(n Node, v Visitor) {
	if !v.Enter(n) {
		v.Leave(n)
		return
	}
	for _, c := range n.Children() {
		Walk(c, v)
	}
	v.Leave(n)
}

// VisitorFunc adapts a pair of plain functions to the Visitor interface
// for simple, stateless traversals.
type VisitorFunc struct {
	EnterFn func(Node) bool
	LeaveFn func(Node)
}

func (f VisitorFunc) Enter(n Node) bool {
	if f.EnterFn == nil {
		return true
	}
	return f.EnterFn(n)
}

func (f VisitorFunc) Leave(n Node) {
	if f.LeaveFn != nil {
		f.LeaveFn(n)
	}
}
