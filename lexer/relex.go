package lexer

import "github.com/opal-lang/langkit/text"

// RelexResult is the outcome of an incremental relex: the new token vector
// plus how many new-text bytes had to be freshly lexed rather than reused
// verbatim from the old token vector.
type RelexResult struct {
	Tokens            []Token
	RelexedByteCount  text.Unit
	ReusedByteCount   text.Unit
}

// Relex reuses unchanged tokens from oldTokens across edit, re-lexing only
// where the edit (or its boundary) makes reuse unprovable. oldTokens must
// be ERROR-free; if any is ERROR, Relex falls back to a full Lex.
//
// Correctness: the returned token stream always equals l.Lex(newText). The
// amount of reuse is an opportunistic metric, not a correctness lever — a
// harvested old token is only ever reused when the bytes it covers are
// proven byte-identical between old and new text, and when at least one
// more verified-identical byte follows it (or it is the very last token of
// the edit), so a rule whose match length depends on a following byte
// cannot silently reuse a stale, too-short match.
func (l *Lexer) Relex(oldTokens []Token, edit text.Edit, newText []byte) RelexResult {
	for _, t := range oldTokens {
		if t.Type == ErrorType {
			return l.fullRelex(newText)
		}
	}

	oldTokenAt := indexTokensByOffset(oldTokens)

	type opSpan struct {
		op       text.Op
		newStart text.Unit
		newEnd   text.Unit
	}
	spans := make([]opSpan, 0, len(edit.Ops))
	var newPosCursor text.Unit
	for _, op := range edit.Ops {
		var opLen text.Unit
		switch op.Kind {
		case text.OpCopy:
			opLen = op.Range.Len()
		case text.OpInsert:
			opLen = text.Unit(len(op.Bytes))
		}
		spans = append(spans, opSpan{op: op, newStart: newPosCursor, newEnd: newPosCursor + opLen})
		newPosCursor += opLen
	}

	var out []Token
	var reused text.Unit
	var relexed text.Unit
	newLen := text.Unit(len(newText))
	var newPos text.Unit
	spanIdx := 0

	for newPos < newLen {
		for spanIdx < len(spans) && newPos >= spans[spanIdx].newEnd {
			spanIdx++
		}
		if spanIdx >= len(spans) {
			break
		}
		span := spans[spanIdx]

		if span.op.Kind == text.OpCopy {
			oldOffset := span.op.Range.Start + (newPos - span.newStart)
			if idx, ok := oldTokenAt.indexAt(oldOffset); ok {
				tok := oldTokens[idx]
				tokOldEnd := oldOffset + tok.Length
				isLastSpan := spanIdx == len(spans)-1
				safeBoundary := tokOldEnd < span.op.Range.End || (isLastSpan && tokOldEnd == span.op.Range.End)
				if tokOldEnd <= span.op.Range.End && safeBoundary {
					out = append(out, tok)
					reused += tok.Length
					newPos += tok.Length
					continue
				}
			}
		}

		tok := l.NextToken(newText[newPos:])
		if tok.Length == 0 {
			tok = Token{Type: ErrorType, Length: 1}
		}
		out = append(out, tok)
		relexed += tok.Length
		newPos += tok.Length
	}

	return RelexResult{Tokens: out, RelexedByteCount: relexed, ReusedByteCount: reused}
}

func (l *Lexer) fullRelex(newText []byte) RelexResult {
	toks := l.Lex(newText)
	return RelexResult{Tokens: toks, RelexedByteCount: text.Unit(len(newText)), ReusedByteCount: 0}
}

// tokenOffsetIndex supports O(1) "is there a token starting exactly at this
// old-text offset" lookups.
type tokenOffsetIndex struct {
	byOffset map[text.Unit]int
}

func indexTokensByOffset(tokens []Token) tokenOffsetIndex {
	idx := tokenOffsetIndex{byOffset: make(map[text.Unit]int, len(tokens))}
	var off text.Unit
	for i, t := range tokens {
		idx.byOffset[off] = i
		off += t.Length
	}
	return idx
}

func (idx tokenOffsetIndex) indexAt(offset text.Unit) (int, bool) {
	i, ok := idx.byOffset[offset]
	return i, ok
}
