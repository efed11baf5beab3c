package analyzer

import "github.com/opal-lang/langkit/text"

// Severity classifies a Diagnostic.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a grammar-analysis finding: a problem in the *grammar
// source* itself (an unresolved rule reference, a duplicate node type
// name...), distinct from an in-tree ERROR node produced while parsing a
// document written *in* that grammar (spec §7).
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    text.Range // source-text range within the .grammar.yaml file, zero value if not applicable
	Tag      string      // stable machine-readable category, e.g. "unresolved-rule"
}
