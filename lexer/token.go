// Package lexer implements the regex-based, scannerless-friendly lexer and
// its incremental relex, per spec §4.2 and §4.3.
package lexer

import "github.com/opal-lang/langkit/text"

// NodeType is a small unsigned tag identifying either a token class or a
// composite class. Index 0 is reserved for ERROR.
type NodeType uint32

// ErrorType is the reserved tag for lexer/parser recovery nodes.
const ErrorType NodeType = 0

// Token is a typed, length-only lexeme: its position is the prefix sum of
// the tokens before it in a token vector, never stored absolutely.
type Token struct {
	Type   NodeType
	Length text.Unit
}

// Sum returns the total byte length of a token vector. A correct lexer
// always returns a vector whose Sum equals len(input).
func Sum(tokens []Token) text.Unit {
	var total text.Unit
	for _, t := range tokens {
		total += t.Length
	}
	return total
}
