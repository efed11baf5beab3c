package analyzer

import "golang.org/x/text/unicode/norm"

// normalizeIdent NFC-normalises a grammar-authored identifier (a rule,
// node-type, context or argument-slot name) so that visually identical
// names composed differently in Unicode never resolve to two distinct
// symbols.
func normalizeIdent(s string) string {
	return norm.NFC.String(s)
}
