package engine_test

import (
	"testing"

	"github.com/opal-lang/langkit/engine"
	"github.com/opal-lang/langkit/grammarir"
	"github.com/opal-lang/langkit/lexer"
)

// Node type indices for a tiny arithmetic grammar: NUMBER=1, PLUS=2,
// STAR=3, EXPR=4, BIN=5.
const (
	tyNumber = 1
	tyPlus   = 2
	tyStar   = 3
	tyExpr   = 4
	tyBin    = 5
)

func numberPratt() *grammarir.GrammarDocument {
	atom := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyNumber}
	plus := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyPlus}
	star := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyStar}
	table := &grammarir.PrattTable{
		Atoms: []grammarir.Expr{atom},
		Infixes: []grammarir.PrattInfix{
			{TyIdx: tyBin, Op: plus, Priority: 1, HasRHS: true},
			{TyIdx: tyBin, Op: star, Priority: 2, HasRHS: true},
		},
	}
	body := grammarir.Expr{Kind: grammarir.KindPratt, Table: table}
	pub := grammarir.Expr{Kind: grammarir.KindPub, TyIdx: tyExpr, Body: &body}
	return &grammarir.GrammarDocument{
		FormatVersion: "v1.0.0",
		SynRules:      []grammarir.SynRule{{Body: pub}},
		StartRule:     0,
	}
}

func TestPrattLeftAssociativeMixedPriority(t *testing.T) {
	// "1+2*3+4" -> BIN(BIN(1,+,BIN(2,*,3)),+,4)
	doc := numberPratt()
	toks := []lexer.Token{
		{Type: tyNumber, Length: 1}, {Type: tyPlus, Length: 1},
		{Type: tyNumber, Length: 1}, {Type: tyStar, Length: 1},
		{Type: tyNumber, Length: 1}, {Type: tyPlus, Length: 1},
		{Type: tyNumber, Length: 1},
	}
	seq := engine.NewTokenSeq(toks, nil)
	res, err := engine.Parse(doc, seq)
	if err != nil {
		t.Fatal(err)
	}
	root := res.Root
	if root.Kind != engine.NodeComposite || root.Type != tyExpr {
		t.Fatalf("root = %+v", root)
	}
	top := root.Children[0]
	if top.Type != tyBin {
		t.Fatalf("top = %+v", top)
	}
	if len(top.Children) != 3 {
		t.Fatalf("top children = %d, want 3", len(top.Children))
	}
	left := top.Children[0]
	if left.Type != tyBin {
		t.Fatalf("left of outer + must be a BIN (the 1+2*3 sub-tree), got %+v", left)
	}
	nested := left.Children[2]
	if nested.Type != tyBin {
		t.Fatalf("right of inner + must be the 2*3 BIN, got %+v", nested)
	}
}

func TestAndCommitPointProducesErrorNotFailure(t *testing.T) {
	a := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyNumber}
	b := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyPlus}
	commit := 1
	and := grammarir.Expr{Kind: grammarir.KindAnd, Alts: []grammarir.Expr{a, b}, Commit: &commit}
	pub := grammarir.Expr{Kind: grammarir.KindPub, TyIdx: tyExpr, Body: &and}
	doc := &grammarir.GrammarDocument{SynRules: []grammarir.SynRule{{Body: pub}}, StartRule: 0}

	toks := []lexer.Token{{Type: tyNumber, Length: 1}, {Type: tyNumber, Length: 1}}
	res, err := engine.Parse(doc, engine.NewTokenSeq(toks, nil))
	if err != nil {
		t.Fatal(err)
	}
	body := res.Root.Children[0]
	if len(body.Children) != 2 {
		t.Fatalf("expected [number, ERROR] children, got %+v", body.Children)
	}
	if body.Children[1].Type != 0 {
		t.Fatalf("second child should be ERROR (type 0), got %+v", body.Children[1])
	}
}

func TestOptFallsBackToSuccessNotFailure(t *testing.T) {
	opt := grammarir.Expr{Kind: grammarir.KindOpt, Body: &grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyPlus}}
	pub := grammarir.Expr{Kind: grammarir.KindPub, TyIdx: tyExpr, Body: &opt}
	doc := &grammarir.GrammarDocument{SynRules: []grammarir.SynRule{{Body: pub}}, StartRule: 0}

	toks := []lexer.Token{{Type: tyNumber, Length: 1}}
	res, err := engine.Parse(doc, engine.NewTokenSeq(toks, nil))
	if err != nil {
		t.Fatal(err)
	}
	// Opt didn't match but the Pub still succeeds with an empty body (the
	// empty untyped success node is dropped by the microoptimization); the
	// unconsumed NUMBER token then surfaces as the trailing leftover ERROR.
	if len(res.Root.Children) != 1 || res.Root.Children[0].Type != 0 {
		t.Fatalf("want a single trailing ERROR child, got %+v", res.Root.Children)
	}
}

// TestLayerBoundaryRespectsNonzeroCursor drives Layer from a cursor that
// has already advanced past the first token (seq.cursor > 0 when Layer
// fires), which TokenSeq.Prefix must bound using absolute cursor
// positions. A relative-length bound under-sizes the derived span by the
// starting cursor, truncating the tokens available to Inner.
func TestLayerBoundaryRespectsNonzeroCursor(t *testing.T) {
	num := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyNumber}
	plus := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyPlus}
	boundary := grammarir.Expr{Kind: grammarir.KindAnd, Alts: []grammarir.Expr{plus, num}}
	inner := grammarir.Expr{Kind: grammarir.KindAnd, Alts: []grammarir.Expr{plus, num}}
	layer := grammarir.Expr{Kind: grammarir.KindLayer, Boundary: &boundary, Inner: &inner}
	body := grammarir.Expr{Kind: grammarir.KindAnd, Alts: []grammarir.Expr{num, layer}}
	pub := grammarir.Expr{Kind: grammarir.KindPub, TyIdx: tyExpr, Body: &body}
	doc := &grammarir.GrammarDocument{SynRules: []grammarir.SynRule{{Body: pub}}, StartRule: 0}

	// NUMBER consumes the first token, so Layer starts at cursor 1, not 0.
	toks := []lexer.Token{
		{Type: tyNumber, Length: 1}, {Type: tyPlus, Length: 1}, {Type: tyNumber, Length: 1},
	}
	res, err := engine.Parse(doc, engine.NewTokenSeq(toks, nil))
	if err != nil {
		t.Fatal(err)
	}
	and := res.Root.Children[0]
	if len(and.Children) != 2 {
		t.Fatalf("outer And children = %+v, want [NUMBER, layer]", and.Children)
	}
	layerResult := and.Children[1]
	if len(layerResult.Children) != 1 {
		t.Fatalf("layer should hold exactly the inner match with no leftover ERROR, got %+v", layerResult.Children)
	}
	innerResult := layerResult.Children[0]
	if len(innerResult.Children) != 2 {
		t.Fatalf("inner And should consume both PLUS and NUMBER inside the layer span, got %+v", innerResult.Children)
	}
}

// TestInjectRespectsNonzeroCursor is Inject's analogue of
// TestLayerBoundaryRespectsNonzeroCursor: Outer's consumed span must be
// computed from the absolute cursor Inject started at, or Body is re-driven
// over a too-short span and silently fails to attach.
func TestInjectRespectsNonzeroCursor(t *testing.T) {
	num := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyNumber}
	plus := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: tyPlus}
	outer := grammarir.Expr{Kind: grammarir.KindAnd, Alts: []grammarir.Expr{plus, num}}
	inner := grammarir.Expr{Kind: grammarir.KindAnd, Alts: []grammarir.Expr{plus, num}}
	inject := grammarir.Expr{Kind: grammarir.KindInject, Outer: &outer, Body: &inner}
	body := grammarir.Expr{Kind: grammarir.KindAnd, Alts: []grammarir.Expr{num, inject}}
	pub := grammarir.Expr{Kind: grammarir.KindPub, TyIdx: tyExpr, Body: &body}
	doc := &grammarir.GrammarDocument{SynRules: []grammarir.SynRule{{Body: pub}}, StartRule: 0}

	toks := []lexer.Token{
		{Type: tyNumber, Length: 1}, {Type: tyPlus, Length: 1}, {Type: tyNumber, Length: 1},
	}
	res, err := engine.Parse(doc, engine.NewTokenSeq(toks, nil))
	if err != nil {
		t.Fatal(err)
	}
	and := res.Root.Children[0]
	if len(and.Children) != 2 {
		t.Fatalf("outer And children = %+v, want [NUMBER, inject]", and.Children)
	}
	injectResult := and.Children[1]
	if len(injectResult.Children) != 2 {
		t.Fatalf("inject should hold both the outer and the re-driven inner match, got %+v", injectResult.Children)
	}
}
