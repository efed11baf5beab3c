package lang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/langkit/text"
	"github.com/opal-lang/langkit/tree"
)

// SyntaxTreeDump renders f's concrete tree as an indented s-expression-ish
// listing, the editor "show syntax tree" debug view.
func (l *Language) SyntaxTreeDump(f *File) string {
	var b strings.Builder
	var walk func(n tree.Node, depth int)
	walk = func(n tree.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		r := n.Range()
		if n.IsLeaf() {
			fmt.Fprintf(&b, "%s %v %q\n", labelFor(n), r, n.Text(f.source))
		} else {
			fmt.Fprintf(&b, "%s %v\n", labelFor(n), r)
			for _, c := range n.Children() {
				walk(c, depth+1)
			}
		}
	}
	walk(f.Tree.Root(), 0)
	return b.String()
}

func labelFor(n tree.Node) string {
	if name := n.TypeName(); name != "" {
		return name
	}
	if n.IsError() {
		return "ERROR"
	}
	return "<fragment>"
}

// Symbol is one entry in a document's outline, the Structure service's
// unit of output.
type Symbol struct {
	Name  string
	Range text.Range
}

// Structure returns a flat outline of every typed composite node in f,
// the minimal "structure view" an editor can build a tree widget from
// without any language-specific knowledge beyond node type names.
func (l *Language) Structure(f *File) []Symbol {
	var out []Symbol
	for _, n := range f.Tree.Root().Descendants() {
		if n.IsLeaf() || n.IsError() {
			continue
		}
		if name := n.TypeName(); name != "" {
			out = append(out, Symbol{Name: name, Range: n.Range()})
		}
	}
	return out
}

// HighlightRanges returns the ranges of every leaf node of the given
// 1-based type index, the primitive a syntax highlighter layers token
// classes from.
func (l *Language) HighlightRanges(f *File, tyIdx int) []text.Range {
	var out []text.Range
	for _, leaf := range f.Tree.Root().Leaves() {
		if leaf.TypeIdx() == tyIdx {
			out = append(out, leaf.Range())
		}
	}
	return out
}

// Metrics summarizes a parsed File for diagnostics/telemetry surfaces.
type Metrics struct {
	NodeCount  int
	LeafCount  int
	ErrorCount int
	ByteLength int
}

// Metrics computes basic structural counts over f's tree.
func (l *Language) Metrics(f *File) Metrics {
	m := Metrics{ByteLength: int(f.Tree.Root().Range().Len())}
	for _, n := range f.Tree.Root().Descendants() {
		m.NodeCount++
		if n.IsLeaf() {
			m.LeafCount++
		}
		if n.IsError() {
			m.ErrorCount++
		}
	}
	return m
}

// contextActions is the static registry of action names ContextActions
// fuzzy-ranks against a query and ApplyContextAction dispatches by exact
// name. Real actions are grammar-specific; langkit itself only ships the
// structural ones that apply to any grammar.
var contextActions = map[string]func(f *File, offset int) (text.Edit, error){
	"delete-node-at-cursor": deleteNodeAtCursor,
}

// ContextActions fuzzy-ranks the registry of available actions against
// query, for the editor's quick-fix/code-action menu. The offset does not
// filter the list: every registered action is offered at any position.
func (l *Language) ContextActions(f *File, offset int, query string) []string {
	names := make([]string, 0, len(contextActions))
	for name := range contextActions {
		names = append(names, name)
	}
	sort.Strings(names)
	if query == "" {
		return names
	}
	ranked := fuzzy.RankFindFold(query, names)
	sort.Sort(ranked)
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Target
	}
	return out
}

// ApplyContextAction runs the named action at offset, returning the edit
// an editor should apply to the document.
func (l *Language) ApplyContextAction(f *File, name string, offset int) (text.Edit, error) {
	fn, ok := contextActions[name]
	if !ok {
		return text.Edit{}, fmt.Errorf("lang: unknown context action %q", name)
	}
	return fn(f, offset)
}

func deleteNodeAtCursor(f *File, offset int) (text.Edit, error) {
	n, ok := f.Tree.Root().NodeAt(offset)
	if !ok {
		return text.Edit{}, fmt.Errorf("lang: no node at offset %d", offset)
	}
	r := n.Range()
	b := text.NewBuilder(text.Unit(len(f.source)))
	return b.Replace(r.Start, r.End, nil).Build(), nil
}
