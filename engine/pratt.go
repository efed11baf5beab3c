package engine

import "github.com/opal-lang/langkit/grammarir"

// parsePratt implements precedence-climbing expression parsing over a
// PrattTable (spec §4.5): a prefix/atom parse establishes the left-hand
// side, then infix operators bind right-recursively while their declared
// Priority exceeds minPriority.
//
// Associativity is the spec's resolved Open Question: infix operators are
// left-associative because the recursive call for an operator's
// right-hand side passes minPriority = op.Priority itself, and the filter
// below requires a strictly greater priority to recurse (in.Priority <=
// minPriority is skipped). A same-priority operator therefore never binds
// to its own right; it is instead picked up again by the outer loop,
// chaining left. There is no separate per-rule associativity flag.
func (c *ctx) parsePratt(table *grammarir.PrattTable, seq TokenSeq, minPriority int) (Node, TokenSeq, bool) {
	lhs, cur, ok := c.parsePrattPrefix(table, seq)
	if !ok {
		return Node{}, seq, false
	}

postfix:
	for {
		for i := range table.Infixes {
			in := &table.Infixes[i]
			if in.HasRHS {
				continue
			}
			opNode, rest, ok := c.parseExpr(&in.Op, cur)
			if !ok {
				continue
			}
			node := composite(true, in.TyIdx)
			node.push(lhs)
			node.push(opNode)
			lhs, cur = node, rest
			c.prev, c.hasPrev = in.TyIdx, true
			continue postfix
		}
		break
	}

binary:
	for {
		for i := range table.Infixes {
			in := &table.Infixes[i]
			if !in.HasRHS || in.Priority <= minPriority {
				continue
			}
			opNode, rest, ok := c.parseExpr(&in.Op, cur)
			if !ok {
				continue
			}
			rhs, rest2, ok := c.parsePratt(table, rest, in.Priority)
			if !ok {
				continue
			}
			node := composite(true, in.TyIdx)
			node.push(lhs)
			node.push(opNode)
			node.push(rhs)
			lhs, cur = node, rest2
			c.prev, c.hasPrev = in.TyIdx, true
			continue binary
		}
		break
	}
	return lhs, cur, true
}

// parsePrattPrefix tries each declared prefix operator, then falls back to
// the table's atoms (spec §4.5: an expression sub-parse either starts with
// a prefix operator applied to a nested max-priority sub-expression, or is
// a bare atom).
func (c *ctx) parsePrattPrefix(table *grammarir.PrattTable, seq TokenSeq) (Node, TokenSeq, bool) {
	for i := range table.Prefixes {
		pre := &table.Prefixes[i]
		opNode, rest, ok := c.parseExpr(&pre.Op, seq)
		if !ok {
			continue
		}
		node := composite(true, pre.TyIdx)
		node.push(opNode)
		operand, rest2, ok := c.parsePratt(table, rest, maxPrattPriority)
		if !ok {
			continue
		}
		node.push(operand)
		c.prev, c.hasPrev = pre.TyIdx, true
		return node, rest2, true
	}
	for i := range table.Atoms {
		if node, rest, ok := c.parseExpr(&table.Atoms[i], seq); ok {
			return node, rest, true
		}
	}
	return Node{}, seq, false
}

// maxPrattPriority bounds a prefix operator's operand to the tightest
// possible binding: no declared infix priority exceeds it, so no infix
// operator binds inside a prefix operand.
const maxPrattPriority = 1 << 30
