package tree_test

import (
	"testing"

	"github.com/opal-lang/langkit/engine"
	"github.com/opal-lang/langkit/grammarir"
	"github.com/opal-lang/langkit/lexer"
	"github.com/opal-lang/langkit/tree"
)

// Types: WS=1 (whitespace-like), NUM=2, PLUS=3, EXPR=4.
func miniDoc() *grammarir.GrammarDocument {
	return &grammarir.GrammarDocument{
		NodeTypes: []grammarir.NodeTypeInfo{
			{Name: "WS", WhitespaceLike: true},
			{Name: "NUM"},
			{Name: "PLUS"},
			{Name: "EXPR"},
		},
	}
}

func TestBuildReinsertsInteriorAndEdgeTrivia(t *testing.T) {
	doc := miniDoc()
	// source: " 1 + 2 "  tokens: WS NUM WS PLUS WS NUM WS
	tokens := []lexer.Token{
		{Type: 1, Length: 1}, {Type: 2, Length: 1}, {Type: 1, Length: 1},
		{Type: 3, Length: 1}, {Type: 1, Length: 1}, {Type: 2, Length: 1},
		{Type: 1, Length: 1},
	}
	root := engine.Node{
		Kind: engine.NodeComposite, Typed: true, Type: 4,
	}
	num1 := engine.Node{Kind: engine.NodeLeaf, Typed: true, Type: 2, TokenIdx: 1}
	plus := engine.Node{Kind: engine.NodeLeaf, Typed: true, Type: 3, TokenIdx: 3}
	num2 := engine.Node{Kind: engine.NodeLeaf, Typed: true, Type: 2, TokenIdx: 5}
	root.Children = []engine.Node{num1, plus, num2}

	tr, err := tree.Build(doc, tokens, root)
	if err != nil {
		t.Fatal(err)
	}
	rootNode := tr.Root()
	if rootNode.Range().Len() != 7 {
		t.Fatalf("root range = %v, want full 7-byte span", rootNode.Range())
	}
	var total int
	for _, leaf := range rootNode.Leaves() {
		total += int(leaf.Range().Len())
	}
	if total != 7 {
		t.Fatalf("leaves cover %d bytes, want 7 (lossless tiling)", total)
	}
	kids := rootNode.Children()
	if len(kids) != 7 {
		t.Fatalf("want 7 children (ws num ws plus ws num ws), got %d: %+v", len(kids), kids)
	}
	if kids[0].TypeName() != "WS" || kids[6].TypeName() != "WS" {
		t.Fatalf("expected leading/trailing WS, got %q / %q", kids[0].TypeName(), kids[6].TypeName())
	}
	if kids[1].TypeName() != "NUM" || kids[3].TypeName() != "PLUS" || kids[5].TypeName() != "NUM" {
		t.Fatalf("unexpected structural children: %+v", kids)
	}
}

func TestBuildFlattensUntypedComposites(t *testing.T) {
	doc := miniDoc()
	tokens := []lexer.Token{{Type: 2, Length: 1}, {Type: 3, Length: 1}}
	leaf1 := engine.Node{Kind: engine.NodeLeaf, Typed: true, Type: 2, TokenIdx: 0}
	leaf2 := engine.Node{Kind: engine.NodeLeaf, Typed: true, Type: 3, TokenIdx: 1}
	and := engine.Node{Kind: engine.NodeComposite, Typed: false, Children: []engine.Node{leaf1, leaf2}}
	root := engine.Node{Kind: engine.NodeComposite, Typed: true, Type: 4, Children: []engine.Node{and}}

	tr, err := tree.Build(doc, tokens, root)
	if err != nil {
		t.Fatal(err)
	}
	kids := tr.Root().Children()
	if len(kids) != 2 {
		t.Fatalf("untyped And should splice its children directly into EXPR, got %+v", kids)
	}
}
