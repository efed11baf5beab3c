// Package grammarir defines the serialisable grammar intermediate
// representation consumed by the syntactic engine: the Expr algebra, Pratt
// tables and the lexical/syntactic rule tables, per spec §3 and §4.4.
package grammarir

import "github.com/opal-lang/langkit/lexer"

// Kind tags an Expr's constructor. The IR is a tagged variant rather than
// an interface hierarchy: the engine matches on Kind directly (spec §9,
// "Dynamic dispatch over Expr").
type Kind string

const (
	KindPub             Kind = "Pub"
	KindPubReplace      Kind = "PubReplace"
	KindOr              Kind = "Or"
	KindAnd             Kind = "And"
	KindRule            Kind = "Rule"
	KindToken           Kind = "Token"
	KindContextualToken Kind = "ContextualToken"
	KindRep             Kind = "Rep"
	KindOpt             Kind = "Opt"
	KindNot             Kind = "Not"
	KindWithSkip        Kind = "WithSkip"
	KindLayer           Kind = "Layer"
	KindEof             Kind = "Eof"
	KindAny             Kind = "Any"
	KindEnter           Kind = "Enter"
	KindExit            Kind = "Exit"
	KindIsIn            Kind = "IsIn"
	KindCall            Kind = "Call"
	KindVar             Kind = "Var"
	KindPrevIs          Kind = "PrevIs"
	KindPratt           Kind = "Pratt"
	KindInject          Kind = "Inject"
)

// Expr is the parse-expression algebra of spec §3. Only the fields
// relevant to Kind are populated; the engine is the sole reader and always
// dispatches on Kind first.
type Expr struct {
	Kind Kind `json:"type"`

	// Pub, PubReplace, Token/ContextualToken(TyIdx only), Opt, Not, Rep
	// (Body only), WithSkip (Body is the guarded expression; Recovery
	// below is the lookahead), Inject (Body is the injected inner expr)
	TyIdx       int  `json:"ty_idx,omitempty"`
	Body        *Expr `json:"body,omitempty"`
	Replaceable bool `json:"replaceable,omitempty"`

	// Or, And
	Alts   []Expr `json:"alts,omitempty"`
	Commit *int   `json:"commit,omitempty"`

	// Rule
	RuleIdx int `json:"rule_idx,omitempty"`

	// Token, ContextualToken
	Literal string `json:"literal,omitempty"`

	// WithSkip
	Recovery *Expr `json:"recovery,omitempty"`

	// Layer
	Boundary *Expr `json:"boundary,omitempty"`
	Inner    *Expr `json:"inner,omitempty"`

	// Enter, Exit, IsIn
	CtxID int `json:"ctx_id,omitempty"`

	// Call
	Callee   *Expr     `json:"callee,omitempty"`
	Bindings []Binding `json:"bindings,omitempty"`

	// Var
	ArgSlot int `json:"arg_slot,omitempty"`

	// PrevIs
	Types []int `json:"types,omitempty"`

	// Pratt
	Table *PrattTable `json:"table,omitempty"`

	// Inject
	Outer *Expr `json:"outer,omitempty"`
}

// Binding is a single Call(...) argument: install Expr under ArgSlot for
// the duration of the call.
type Binding struct {
	ArgSlot int  `json:"arg_slot"`
	Expr    Expr `json:"expr"`
}

// PrattPrefix is one prefix-operator declaration in a PrattTable.
type PrattPrefix struct {
	TyIdx    int  `json:"ty_idx"`
	Op       Expr `json:"op"`
	Priority int  `json:"priority"`
}

// PrattInfix is one infix/postfix-operator declaration in a PrattTable.
// HasRHS false encodes a postfix operator.
type PrattInfix struct {
	TyIdx    int  `json:"ty_idx"`
	Op       Expr `json:"op"`
	Priority int  `json:"priority"`
	HasRHS   bool `json:"has_rhs"`
}

// PrattTable groups the atom/prefix/infix declarations driving a
// precedence-climbing expression sub-parse (spec §4.5).
type PrattTable struct {
	Atoms    []Expr       `json:"atoms"`
	Prefixes []PrattPrefix `json:"prefixes"`
	Infixes  []PrattInfix  `json:"infixes"`
}

// SynRule is a single named syntactic rule, indexed by position in
// GrammarDocument.SynRules; Expr.RuleIdx refers into that slice.
type SynRule struct {
	Body Expr `json:"body"`
}

// NodeTypeInfo is the host-facing metadata record for a NodeType: its
// display name and whether it is whitespace-like (spec §3).
type NodeTypeInfo struct {
	Name           string `json:"name"`
	WhitespaceLike bool   `json:"whitespace_like"`
}

// GrammarDocument is the immutable, analyser-produced parser description:
// the wire artifact of spec §6, and the value the syntactic engine is
// constructed from.
type GrammarDocument struct {
	FormatVersion string             `json:"format_version"`
	NodeTypes     []NodeTypeInfo     `json:"node_types"`
	LexRules      []lexer.Rule       `json:"lex_rules"`
	SynRules      []SynRule          `json:"syn_rules"`
	StartRule     int                `json:"start_rule"`
}

// TypeName returns the display name for a 1-based type index, or "" if out
// of range. Index 0 is always ERROR.
func (d *GrammarDocument) TypeName(tyIdx int) string {
	if tyIdx == 0 {
		return "ERROR"
	}
	i := tyIdx - 1
	if i < 0 || i >= len(d.NodeTypes) {
		return ""
	}
	return d.NodeTypes[i].Name
}

// IsWhitespaceLike reports whether a 1-based type index is flagged
// whitespace-like in NodeTypes.
func (d *GrammarDocument) IsWhitespaceLike(tyIdx int) bool {
	i := tyIdx - 1
	if i < 0 || i >= len(d.NodeTypes) {
		return false
	}
	return d.NodeTypes[i].WhitespaceLike
}
