// Package engine implements the PEG-like syntactic engine (spec §4.4) and
// its embedded Pratt sub-engine (spec §4.5): it walks a grammarir.Expr tree
// over a non-trivia token sequence and produces an untyped parse tree that
// tree.Builder later re-interleaves with skipped trivia into a lossless
// concrete syntax tree.
package engine

import "github.com/opal-lang/langkit/lexer"

// TokenSeq is an immutable cursor over the non-whitespace-like tokens of a
// lex result. Whitespace-like tokens (per GrammarDocument.IsWhitespaceLike)
// are elided from Current/Bump but remain addressable by absolute token
// index so the tree builder can later re-thread them positionally, mirroring
// the original engine's split between a trivia-filtered parse pass and a
// separate whitespace re-insertion pass.
type TokenSeq struct {
	tokens     []lexer.Token
	nonTrivia  []int // indexes into tokens, in order, of non-whitespace-like tokens
	cursor     int   // index into nonTrivia
}

// NewTokenSeq builds a TokenSeq over tokens, treating any token whose Type
// is flagged whitespace-like by isTrivia as skipped.
func NewTokenSeq(tokens []lexer.Token, isTrivia func(lexer.NodeType) bool) TokenSeq {
	nonTrivia := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		if isTrivia == nil || !isTrivia(tok.Type) {
			nonTrivia = append(nonTrivia, i)
		}
	}
	return TokenSeq{tokens: tokens, nonTrivia: nonTrivia}
}

// Current returns the token at the cursor and its absolute index into the
// original token slice, or ok=false at end of input.
func (s TokenSeq) Current() (tok lexer.Token, idx int, ok bool) {
	if s.cursor >= len(s.nonTrivia) {
		return lexer.Token{}, 0, false
	}
	idx = s.nonTrivia[s.cursor]
	return s.tokens[idx], idx, true
}

// AtEOF reports whether there are no more non-trivia tokens.
func (s TokenSeq) AtEOF() bool { return s.cursor >= len(s.nonTrivia) }

// Bump consumes the current non-trivia token, returning its absolute index
// and the advanced sequence. Panics if called at EOF; callers must check
// Current/AtEOF first, matching the original engine's bump-on-checked-state
// discipline.
func (s TokenSeq) Bump() (idx int, rest TokenSeq) {
	if s.AtEOF() {
		panic("engine: Bump on empty TokenSeq")
	}
	idx = s.nonTrivia[s.cursor]
	rest = s
	rest.cursor++
	return idx, rest
}

// Prefix returns the sub-sequence of s ending exactly where until begins,
// used by Layer/Inject to bound a nested parse to the span a boundary
// expression consumed.
func (s TokenSeq) Prefix(until TokenSeq) TokenSeq {
	p := s
	p.nonTrivia = s.nonTrivia[:until.cursor]
	return p
}

// Leftover reports whether any non-trivia tokens remain at or after s's
// cursor, i.e. whether a bounded sub-parse left tokens unconsumed within
// its own span.
func (s TokenSeq) Leftover() bool { return !s.AtEOF() }

// AbsoluteStart returns the absolute token index the cursor currently sits
// at, or len(tokens) at EOF. Nothing in the engine calls it.
func (s TokenSeq) AbsoluteStart() int {
	if s.cursor < len(s.nonTrivia) {
		return s.nonTrivia[s.cursor]
	}
	return len(s.tokens)
}
