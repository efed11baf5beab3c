package engine

import (
	"fmt"

	"github.com/opal-lang/langkit/grammarir"
)

const maxContexts = 16 // spec §4.4: Enter/Exit/IsIn address a fixed 16-slot boolean context stack
const maxArgSlots = 16 // spec §4.4: Call/Var address a fixed 16-slot parameterised-rule argument stack

// Result is the outcome of a top-level Parse: the untyped tree plus a tick
// counter exposed for telemetry/debugging (spec §4.4's "engine must support
// introspecting work done", grounded on the original's ticks counter).
type Result struct {
	Root  Node
	Ticks uint64
}

// ctx carries per-parse mutable engine state: the document being parsed
// against, the 16-slot context/argument stacks, the predicate-mode flag
// and, for PrevIs, the type of the most recently completed Pub or Pratt
// operator node. One ctx is used for exactly one top-level Parse call.
type ctx struct {
	doc           *grammarir.GrammarDocument
	ticks         uint64
	predicateMode bool
	contexts      [maxContexts]bool
	args          [maxArgSlots]*grammarir.Expr
	prev          int
	hasPrev       bool
	replacement   int
	hasReplacement bool
}

// Parse runs doc's start rule over tokens, skipped trivia excluded via
// isTrivia, and collects any unconsumed trailing tokens into a synthetic
// ERROR node the same way the original engine's parse_file does.
func Parse(doc *grammarir.GrammarDocument, seq TokenSeq) (Result, error) {
	if doc.StartRule < 0 || doc.StartRule >= len(doc.SynRules) {
		return Result{}, fmt.Errorf("engine: start_rule %d out of range", doc.StartRule)
	}
	c := &ctx{doc: doc}
	start := doc.SynRules[doc.StartRule].Body

	node, rest, ok := c.parseExpr(&start, seq)
	if !ok {
		ty := 0
		if start.Kind == grammarir.KindPub {
			ty = start.TyIdx
		}
		node, rest = composite(true, ty), seq
	}

	if rest.Leftover() {
		errNode := errorNode()
		for rest.Leftover() {
			idx, next := rest.Bump()
			errNode.push(leaf(idx, true, 0))
			rest = next
		}
		node.push(errNode)
	}
	return Result{Root: node, Ticks: c.ticks}, nil
}

// parseExpr is the engine's single dispatch point, one arm per
// grammarir.Kind. It returns ok=false on failed match, leaving seq
// untouched (expressions never consume on failure).
func (c *ctx) parseExpr(e *grammarir.Expr, seq TokenSeq) (Node, TokenSeq, bool) {
	c.ticks++
	switch e.Kind {
	case grammarir.KindPub:
		if e.Replaceable {
			c.hasReplacement = false
		}
		node, rest, ok := c.parseExpr(e.Body, seq)
		if !ok {
			return Node{}, seq, false
		}
		ty := e.TyIdx
		if e.Replaceable && c.hasReplacement {
			ty = c.replacement
		}
		result := composite(true, ty)
		result.push(node)
		c.prev, c.hasPrev = ty, true
		return result, rest, true

	case grammarir.KindPubReplace:
		node, rest, ok := c.parseExpr(e.Body, seq)
		if !ok {
			return Node{}, seq, false
		}
		c.replacement, c.hasReplacement = e.TyIdx, true
		return node, rest, true

	case grammarir.KindOr:
		for i := range e.Alts {
			if node, rest, ok := c.parseExpr(&e.Alts[i], seq); ok {
				return node, rest, true
			}
		}
		return Node{}, seq, false

	case grammarir.KindAnd:
		return c.parseAnd(e, seq)

	case grammarir.KindRule:
		return c.parseExpr(&c.doc.SynRules[e.RuleIdx].Body, seq)

	case grammarir.KindToken:
		tok, _, ok := seq.Current()
		if !ok || int(tok.Type) != e.TyIdx {
			return Node{}, seq, false
		}
		idx, rest := seq.Bump()
		return leaf(idx, true, e.TyIdx), rest, true

	case grammarir.KindContextualToken:
		return c.parseContextualToken(e, seq)

	case grammarir.KindOpt:
		if node, rest, ok := c.parseExpr(e.Body, seq); ok {
			return node, rest, true
		}
		return success(), seq, true

	case grammarir.KindNot:
		if _, _, ok := c.parseExpr(e.Body, seq); ok {
			return Node{}, seq, false
		}
		return success(), seq, true

	case grammarir.KindEof:
		if seq.AtEOF() {
			return success(), seq, true
		}
		return Node{}, seq, false

	case grammarir.KindAny:
		if seq.AtEOF() {
			return Node{}, seq, false
		}
		idx, rest := seq.Bump()
		return leaf(idx, false, 0), rest, true

	case grammarir.KindLayer:
		return c.parseLayer(e, seq)

	case grammarir.KindInject:
		return c.parseInject(e, seq)

	case grammarir.KindRep:
		node := composite(false, 0)
		cur := seq
		for {
			child, rest, ok := c.parseExpr(e.Body, cur)
			if !ok {
				break
			}
			node.push(child)
			cur = rest
		}
		return node, cur, true

	case grammarir.KindWithSkip:
		return c.parseWithSkip(e, seq)

	case grammarir.KindPratt:
		return c.parsePratt(e.Table, seq, 0)

	case grammarir.KindEnter:
		old := c.contexts[e.CtxID]
		c.contexts[e.CtxID] = true
		node, rest, ok := c.parseExpr(e.Body, seq)
		c.contexts[e.CtxID] = old
		return node, rest, ok

	case grammarir.KindExit:
		old := c.contexts[e.CtxID]
		c.contexts[e.CtxID] = false
		node, rest, ok := c.parseExpr(e.Body, seq)
		c.contexts[e.CtxID] = old
		return node, rest, ok

	case grammarir.KindIsIn:
		if c.contexts[e.CtxID] {
			return success(), seq, true
		}
		return Node{}, seq, false

	case grammarir.KindCall:
		return c.parseCall(e, seq)

	case grammarir.KindVar:
		arg := c.args[e.ArgSlot]
		if arg == nil {
			panic(fmt.Sprintf("engine: Var(%d) read before bound by an enclosing Call", e.ArgSlot))
		}
		return c.parseExpr(arg, seq)

	case grammarir.KindPrevIs:
		if c.hasPrev {
			for _, t := range e.Types {
				if t == c.prev {
					return success(), seq, true
				}
			}
		}
		return Node{}, seq, false

	default:
		panic(fmt.Sprintf("engine: unhandled Expr kind %q", e.Kind))
	}
}

// parseAnd sequences e.Alts left to right, pushing each match as a child.
// Once commit (defaulting to len(Alts), i.e. no early commit) positions have
// matched, a later failure degrades to an ERROR child and the whole And
// still succeeds rather than backtracking past the commit point, per the
// PEG "commit point" semantics of spec §4.3.
func (c *ctx) parseAnd(e *grammarir.Expr, seq TokenSeq) (Node, TokenSeq, bool) {
	node := composite(false, 0)
	commit := len(e.Alts)
	if e.Commit != nil {
		commit = *e.Commit
	}
	cur := seq
	for i := range e.Alts {
		child, rest, ok := c.parseExpr(&e.Alts[i], cur)
		if ok {
			cur = rest
			node.push(child)
			continue
		}
		if i < commit {
			return Node{}, seq, false
		}
		node.push(errorNode())
		break
	}
	return node, cur, true
}

// parseContextualToken matches a fixed literal string against the raw
// remaining text regardless of how the lexer tokenised it, consuming
// whole tokens until exactly text has been covered (spec §4.4's
// contextual/soft keywords, e.g. recognising "from" only where the grammar
// calls for it even though the lexer classed it as a plain identifier).
func (c *ctx) parseContextualToken(e *grammarir.Expr, seq TokenSeq) (Node, TokenSeq, bool) {
	if _, _, ok := seq.Current(); !ok {
		return Node{}, seq, false
	}
	node := composite(true, e.TyIdx)
	remaining := len(e.Literal)
	cur := seq
	for remaining > 0 {
		tok, _, ok := cur.Current()
		if !ok {
			return Node{}, seq, false
		}
		idx, rest := cur.Bump()
		node.push(leaf(idx, false, 0))
		remaining -= int(tok.Length)
		cur = rest
	}
	if remaining != 0 {
		return Node{}, seq, false
	}
	return node, cur, true
}

// parseLayer parses e.Boundary as a predicate (it builds no nodes) that
// determines how many tokens belong to a nested sub-parse, then re-drives
// e.Inner over exactly that sub-sequence, reporting every layer token
// e.Inner did not consume (all of them if e.Inner fails) as a trailing
// ERROR child (spec §4.4 layered/embedded-language parsing).
func (c *ctx) parseLayer(e *grammarir.Expr, seq TokenSeq) (Node, TokenSeq, bool) {
	boundaryRest, ok := c.parsePredicate(e.Boundary, seq)
	if !ok {
		return Node{}, seq, false
	}
	layer := seq.Prefix(boundaryRest)
	result := composite(false, 0)
	leftover := layer
	if inner, rest, ok := c.parseExpr(e.Inner, layer); ok {
		result.push(inner)
		leftover = rest
	}
	if leftover.Leftover() {
		errNode := errorNode()
		for leftover.Leftover() {
			idx, rest := leftover.Bump()
			errNode.push(leaf(idx, true, 0))
			leftover = rest
		}
		result.push(errNode)
	}
	return result, boundaryRest, true
}

// parseInject is a spec Open Question resolution (see DESIGN.md): the
// original grammar IR carried an Inject(outer, inner) constructor through
// its codegen but the original engine's dispatch never matched it, so no
// ground-truth runtime semantics survive. This implementation treats Inject
// like Layer with the roles reversed: outer is the structural parse that
// determines the consumed span, and inner is re-driven over that same span
// afterwards, its result appended as a sibling rather than nested — useful
// for attaching a secondary analysis (e.g. an embedded-language sub-tree)
// to a span a normal rule already parsed.
func (c *ctx) parseInject(e *grammarir.Expr, seq TokenSeq) (Node, TokenSeq, bool) {
	outerNode, rest, ok := c.parseExpr(e.Outer, seq)
	if !ok {
		return Node{}, seq, false
	}
	span := seq.Prefix(rest)
	result := composite(false, 0)
	result.push(outerNode)
	if innerNode, innerRest, ok := c.parseExpr(e.Body, span); ok {
		result.push(innerNode)
		if innerRest.Leftover() {
			// inner didn't consume the whole span outer claimed; drop its
			// result rather than report a misleading error, since the span
			// boundary was outer's decision, not inner's.
			result.Children = result.Children[:len(result.Children)-1]
		}
	}
	return result, rest, true
}

// parseWithSkip repeatedly tries e.Recovery as a lookahead predicate; on
// success it parses e.Body and returns, prefixing any skipped tokens as an
// ERROR child. On reaching EOF without e.Body ever matching, the whole
// expression fails, discarding the accumulated skipped tokens — the
// original's error-recovery skip-to combinator (spec §4.4).
func (c *ctx) parseWithSkip(e *grammarir.Expr, seq TokenSeq) (Node, TokenSeq, bool) {
	errNode := errorNode()
	result := composite(false, 0)
	skipped := false
	cur := seq
	for {
		if cur.AtEOF() {
			return Node{}, seq, false
		}
		if _, ok := c.parsePredicate(e.Recovery, cur); ok {
			if node, rest, ok := c.parseExpr(e.Body, cur); ok {
				if skipped {
					result.push(errNode)
				}
				result.push(node)
				return result, rest, true
			}
		}
		skipped = true
		idx, rest := cur.Bump()
		errNode.push(leaf(idx, true, 0))
		cur = rest
	}
}

// parseCall binds e.Bindings into the argument-slot stack for the duration
// of e.Body's parse, resolving a Var-valued binding against the caller's
// own already-bound slot (lexical capture across nested Call/Var), then
// restores the previous bindings on return.
func (c *ctx) parseCall(e *grammarir.Expr, seq TokenSeq) (Node, TokenSeq, bool) {
	old := c.args
	for i := range e.Bindings {
		b := &e.Bindings[i]
		arg := &b.Expr
		if arg.Kind == grammarir.KindVar {
			arg = old[arg.ArgSlot]
		}
		c.args[b.ArgSlot] = arg
	}
	node, rest, ok := c.parseExpr(e.Callee, seq)
	c.args = old
	return node, rest, ok
}

// parsePredicate evaluates e in predicate mode: children built while
// inside are discarded (they exist only to determine how far e would have
// consumed) and only the resulting cursor position is kept.
func (c *ctx) parsePredicate(e *grammarir.Expr, seq TokenSeq) (TokenSeq, bool) {
	old := c.predicateMode
	c.predicateMode = true
	_, rest, ok := c.parseExpr(e, seq)
	c.predicateMode = old
	if !ok {
		return seq, false
	}
	return rest, true
}
