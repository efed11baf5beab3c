// Package analyzer compiles a human-authored grammar Source into the
// immutable wire grammarir.GrammarDocument (spec §7): it resolves named
// rule/type/context/argument-slot references into the indices the engine
// addresses directly, and reports anything it cannot resolve as a
// Diagnostic rather than failing outright.
package analyzer

import (
	"fmt"

	"github.com/opal-lang/langkit/grammarir"
	"github.com/opal-lang/langkit/lexer"
)

// Analyze compiles src into a GrammarDocument. The returned document is
// always usable (best-effort substitution of ERROR/zero values for
// anything unresolved); callers should still treat any SeverityError
// Diagnostic as blocking before handing the document to the engine.
func Analyze(src *Source) (*grammarir.GrammarDocument, []Diagnostic) {
	r := &resolver{
		typeIdx: make(map[string]int),
		ruleIdx: make(map[string]int),
		ctxID:   make(map[string]int),
		argSlot: make(map[string]int),
	}

	nodeTypes := make([]grammarir.NodeTypeInfo, len(src.NodeTypes))
	for i, nt := range src.NodeTypes {
		name := normalizeIdent(nt.Name)
		if _, dup := r.typeIdx[name]; dup {
			r.errf("unresolved-type", "duplicate node type %q", name)
		}
		r.typeIdx[name] = i + 1
		nodeTypes[i] = grammarir.NodeTypeInfo{Name: name, WhitespaceLike: nt.WhitespaceLike}
	}

	for i, sr := range src.SynRules {
		r.ruleIdx[normalizeIdent(sr.Name)] = i
	}

	synRules := make([]grammarir.SynRule, len(src.SynRules))
	for i, sr := range src.SynRules {
		synRules[i] = grammarir.SynRule{Body: r.resolveExpr(&sr.Body)}
	}

	lexRules := make([]lexer.Rule, len(src.LexRules))
	for i, lr := range src.LexRules {
		lexRules[i] = lexer.Rule{
			Type:     lexer.NodeType(r.typeName(lr.Type)),
			Pattern:  lr.Pattern,
			CustomFn: lr.CustomFn,
		}
		if err := lexRules[i].Compile(); err != nil {
			r.errf("bad-pattern", "lex rule %d: %v", i, err)
		}
	}

	startRule, ok := r.ruleIdx[normalizeIdent(src.StartRule)]
	if !ok {
		r.errf("unresolved-rule", "start_rule %q not found", src.StartRule)
	}

	doc := &grammarir.GrammarDocument{
		FormatVersion: src.FormatVersion,
		NodeTypes:     nodeTypes,
		LexRules:      lexRules,
		SynRules:      synRules,
		StartRule:     startRule,
	}

	return doc, r.diags
}

type resolver struct {
	typeIdx map[string]int
	ruleIdx map[string]int
	ctxID   map[string]int
	argSlot map[string]int
	diags   []Diagnostic
}

func (r *resolver) errf(tag, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{Severity: SeverityError, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

func (r *resolver) typeName(name string) int {
	name = normalizeIdent(name)
	if idx, ok := r.typeIdx[name]; ok {
		return idx
	}
	if name != "" {
		r.errf("unresolved-type", "unknown node type %q", name)
	}
	return 0
}

func (r *resolver) ruleName(name string) int {
	name = normalizeIdent(name)
	if idx, ok := r.ruleIdx[name]; ok {
		return idx
	}
	r.errf("unresolved-rule", "unknown rule %q", name)
	return 0
}

func (r *resolver) ctxSlot(name string) int {
	name = normalizeIdent(name)
	if id, ok := r.ctxID[name]; ok {
		return id
	}
	id := len(r.ctxID)
	if id >= 16 {
		r.errf("too-many-contexts", "context %q exceeds the 16-slot limit", name)
		return 0
	}
	r.ctxID[name] = id
	return id
}

func (r *resolver) argSlotOf(name string) int {
	name = normalizeIdent(name)
	if id, ok := r.argSlot[name]; ok {
		return id
	}
	id := len(r.argSlot)
	if id >= 16 {
		r.errf("too-many-arg-slots", "argument %q exceeds the 16-slot limit", name)
		return 0
	}
	r.argSlot[name] = id
	return id
}

func (r *resolver) resolveExpr(se *SourceExpr) grammarir.Expr {
	if se == nil {
		return grammarir.Expr{}
	}
	kind := grammarir.Kind(se.Kind)
	e := grammarir.Expr{Kind: kind}
	switch kind {
	case grammarir.KindPub, grammarir.KindPubReplace:
		e.TyIdx = r.typeName(se.Type)
		body := r.resolveExpr(se.Body)
		e.Body = &body
		e.Replaceable = se.Replaceable
	case grammarir.KindOr, grammarir.KindAnd:
		e.Alts = make([]grammarir.Expr, len(se.Alts))
		for i := range se.Alts {
			e.Alts[i] = r.resolveExpr(&se.Alts[i])
		}
		e.Commit = se.Commit
	case grammarir.KindRule:
		e.RuleIdx = r.ruleName(se.Rule)
	case grammarir.KindToken, grammarir.KindContextualToken:
		e.TyIdx = r.typeName(se.Type)
		e.Literal = se.Literal
	case grammarir.KindOpt, grammarir.KindNot, grammarir.KindRep:
		body := r.resolveExpr(se.Body)
		e.Body = &body
	case grammarir.KindWithSkip:
		recovery := r.resolveExpr(se.Recovery)
		body := r.resolveExpr(se.Body)
		e.Recovery, e.Body = &recovery, &body
	case grammarir.KindLayer:
		boundary := r.resolveExpr(se.Boundary)
		inner := r.resolveExpr(se.Inner)
		e.Boundary, e.Inner = &boundary, &inner
	case grammarir.KindInject:
		outer := r.resolveExpr(se.Outer)
		inner := r.resolveExpr(se.Body)
		e.Outer, e.Body = &outer, &inner
	case grammarir.KindEnter, grammarir.KindExit:
		e.CtxID = r.ctxSlot(se.Ctx)
		body := r.resolveExpr(se.Body)
		e.Body = &body
	case grammarir.KindIsIn:
		e.CtxID = r.ctxSlot(se.Ctx)
	case grammarir.KindCall:
		callee := r.resolveExpr(se.Callee)
		e.Callee = &callee
		e.Bindings = make([]grammarir.Binding, len(se.Bindings))
		for i, b := range se.Bindings {
			e.Bindings[i] = grammarir.Binding{ArgSlot: r.argSlotOf(b.Arg), Expr: r.resolveExpr(&b.Expr)}
		}
	case grammarir.KindVar:
		e.ArgSlot = r.argSlotOf(se.Arg)
	case grammarir.KindPrevIs:
		e.Types = make([]int, len(se.Types))
		for i, t := range se.Types {
			e.Types[i] = r.typeName(t)
		}
	case grammarir.KindPratt:
		e.Table = r.resolvePrattTable(se.Table)
	case grammarir.KindEof, grammarir.KindAny:
		// no references to resolve
	default:
		r.errf("unknown-kind", "unrecognised expr kind %q", se.Kind)
	}
	return e
}

func (r *resolver) resolvePrattTable(t *SourcePrattTable) *grammarir.PrattTable {
	if t == nil {
		return nil
	}
	out := &grammarir.PrattTable{
		Atoms:    make([]grammarir.Expr, len(t.Atoms)),
		Prefixes: make([]grammarir.PrattPrefix, len(t.Prefixes)),
		Infixes:  make([]grammarir.PrattInfix, len(t.Infixes)),
	}
	for i := range t.Atoms {
		out.Atoms[i] = r.resolveExpr(&t.Atoms[i])
	}
	for i, p := range t.Prefixes {
		out.Prefixes[i] = grammarir.PrattPrefix{TyIdx: r.typeName(p.Type), Op: r.resolveExpr(&p.Op), Priority: p.Priority}
	}
	for i, in := range t.Infixes {
		out.Infixes[i] = grammarir.PrattInfix{TyIdx: r.typeName(in.Type), Op: r.resolveExpr(&in.Op), Priority: in.Priority, HasRHS: in.HasRHS}
	}
	return out
}
