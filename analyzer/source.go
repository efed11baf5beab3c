package analyzer

// Source is the human-authored grammar document: a `.grammar.yaml` file
// decoded with gopkg.in/yaml.v3, using names instead of the wire
// GrammarDocument's resolved integer indices. Analyze turns this into the
// immutable grammarir.GrammarDocument the engine runs against, plus any
// Diagnostics about unresolved or malformed references.
type Source struct {
	FormatVersion string           `yaml:"format_version"`
	NodeTypes     []SourceNodeType `yaml:"node_types"`
	LexRules      []SourceLexRule  `yaml:"lex_rules"`
	SynRules      []SourceSynRule  `yaml:"syn_rules"`
	StartRule     string           `yaml:"start_rule"`
}

// SourceNodeType names one grammar node type.
type SourceNodeType struct {
	Name           string `yaml:"name"`
	WhitespaceLike bool   `yaml:"whitespace_like"`
}

// SourceLexRule is one lexical rule, referring to its node type by name.
type SourceLexRule struct {
	Type     string `yaml:"type"`
	Pattern  string `yaml:"pattern"`
	CustomFn string `yaml:"custom_fn,omitempty"`
}

// SourceSynRule is one named syntactic rule.
type SourceSynRule struct {
	Name string      `yaml:"name"`
	Body SourceExpr  `yaml:"body"`
}

// SourceExpr mirrors grammarir.Expr but refers to node types, rules,
// contexts and argument slots by author-chosen name instead of resolved
// index; Analyze performs that resolution.
type SourceExpr struct {
	Kind string `yaml:"kind"`

	Type        string `yaml:"type,omitempty"` // Pub, PubReplace, Token, ContextualToken
	Body        *SourceExpr `yaml:"body,omitempty"`
	Replaceable bool `yaml:"replaceable,omitempty"`

	Alts   []SourceExpr `yaml:"alts,omitempty"`
	Commit *int         `yaml:"commit,omitempty"`

	Rule string `yaml:"rule,omitempty"`

	Literal string `yaml:"literal,omitempty"`

	Recovery *SourceExpr `yaml:"recovery,omitempty"`

	Boundary *SourceExpr `yaml:"boundary,omitempty"`
	Inner    *SourceExpr `yaml:"inner,omitempty"`

	Ctx string `yaml:"ctx,omitempty"`

	Callee   *SourceExpr      `yaml:"callee,omitempty"`
	Bindings []SourceBinding  `yaml:"bindings,omitempty"`

	Arg string `yaml:"arg,omitempty"`

	Types []string `yaml:"types,omitempty"`

	Table *SourcePrattTable `yaml:"table,omitempty"`

	Outer *SourceExpr `yaml:"outer,omitempty"`
}

// SourceBinding is one Call(...) argument binding, naming the callee-side
// argument slot it fills.
type SourceBinding struct {
	Arg  string     `yaml:"arg"`
	Expr SourceExpr `yaml:"expr"`
}

// SourcePrattTable mirrors grammarir.PrattTable with named types.
type SourcePrattTable struct {
	Atoms    []SourceExpr        `yaml:"atoms"`
	Prefixes []SourcePrattPrefix `yaml:"prefixes"`
	Infixes  []SourcePrattInfix  `yaml:"infixes"`
}

type SourcePrattPrefix struct {
	Type     string     `yaml:"type"`
	Op       SourceExpr `yaml:"op"`
	Priority int        `yaml:"priority"`
}

type SourcePrattInfix struct {
	Type     string     `yaml:"type"`
	Op       SourceExpr `yaml:"op"`
	Priority int        `yaml:"priority"`
	HasRHS   bool       `yaml:"has_rhs"`
}
