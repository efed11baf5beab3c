// Package lang exposes the single external entry point an editor
// integration drives: Language, wrapping the lexer/engine/tree pipeline
// behind Parse/Reparse plus a bundle of editor services (spec §6).
package lang

import (
	"fmt"

	"github.com/opal-lang/langkit/engine"
	"github.com/opal-lang/langkit/grammarir"
	"github.com/opal-lang/langkit/internal/xlog"
	"github.com/opal-lang/langkit/lexer"
	"github.com/opal-lang/langkit/text"
	"github.com/opal-lang/langkit/tree"
)

// File is one parsed document: its source bytes, the full lex-level token
// stream (trivia included) and the resulting lossless concrete tree.
// Reparse needs the token stream to drive incremental relex, so it rides
// along with every File rather than being discarded after building.
type File struct {
	source []byte
	tokens []lexer.Token
	Tree   *tree.Tree
}

// Source returns f's underlying bytes.
func (f *File) Source() []byte { return f.source }

// Language binds a compiled GrammarDocument to a runnable lexer and
// exposes the editor-facing operations over documents written in it.
type Language struct {
	doc *grammarir.GrammarDocument
	lx  *lexer.Lexer
	log xlog.Logger
}

// Option configures a Language at construction.
type Option func(*Language)

// WithLogger overrides the default "lang" component logger.
func WithLogger(l xlog.Logger) Option {
	return func(lg *Language) { lg.log = l }
}

// New builds a Language from a compiled grammar document and the host's
// custom-lexer-callback registry (may be nil if the grammar declares
// none).
func New(doc *grammarir.GrammarDocument, registry *lexer.Registry, opts ...Option) (*Language, error) {
	rules := make([]*lexer.Rule, len(doc.LexRules))
	for i := range doc.LexRules {
		rules[i] = &doc.LexRules[i]
	}
	lx, err := lexer.New(rules, registry)
	if err != nil {
		return nil, fmt.Errorf("lang: build lexer: %w", err)
	}
	l := &Language{doc: doc, lx: lx, log: xlog.Component("lang")}
	for _, o := range opts {
		o(l)
	}
	return l, nil
}

// NodeTypeInfo returns the host-facing metadata for a 1-based type index.
func (l *Language) NodeTypeInfo(tyIdx int) grammarir.NodeTypeInfo {
	name := l.doc.TypeName(tyIdx)
	return grammarir.NodeTypeInfo{Name: name, WhitespaceLike: l.doc.IsWhitespaceLike(tyIdx)}
}

func (l *Language) isTrivia(ty lexer.NodeType) bool { return l.doc.IsWhitespaceLike(int(ty)) }

// Parse lexes and fully parses source into a File.
func (l *Language) Parse(source []byte) (*File, error) {
	tokens := l.lx.Lex(source)
	result, err := engine.Parse(l.doc, engine.NewTokenSeq(tokens, l.isTrivia))
	if err != nil {
		return nil, err
	}
	t, err := tree.Build(l.doc, tokens, result.Root)
	if err != nil {
		return nil, err
	}
	l.log.Debug("parsed", "bytes", len(source), "tokens", len(tokens), "ticks", result.Ticks)
	return &File{source: source, tokens: tokens, Tree: t}, nil
}

// Reparse incrementally relexes prev against edit/newText and fully
// reparses the resulting token stream. The syntactic engine itself is not
// incremental (spec §4.6's scope); only lexing is (spec §4.3).
func (l *Language) Reparse(prev *File, edit text.Edit, newText []byte) (*File, error) {
	relex := l.lx.Relex(prev.tokens, edit, newText)
	result, err := engine.Parse(l.doc, engine.NewTokenSeq(relex.Tokens, l.isTrivia))
	if err != nil {
		return nil, err
	}
	t, err := tree.Build(l.doc, relex.Tokens, result.Root)
	if err != nil {
		return nil, err
	}
	l.log.Debug("reparsed", "bytes", len(newText), "reused_bytes", relex.ReusedByteCount, "relexed_bytes", relex.RelexedByteCount)
	return &File{source: newText, tokens: relex.Tokens, Tree: t}, nil
}
