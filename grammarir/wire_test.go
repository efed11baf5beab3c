package grammarir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/langkit/grammarir"
	"github.com/opal-lang/langkit/lexer"
)

// sampleDoc is a small Pratt grammar: NUMBER=1, PLUS=2, WS=3, BIN=4, EXPR=5.
func sampleDoc() *grammarir.GrammarDocument {
	plus := grammarir.Expr{Kind: grammarir.KindToken, TyIdx: 2}
	table := &grammarir.PrattTable{
		Atoms:   []grammarir.Expr{{Kind: grammarir.KindToken, TyIdx: 1}},
		Infixes: []grammarir.PrattInfix{{TyIdx: 4, Op: plus, Priority: 1, HasRHS: true}},
	}
	body := grammarir.Expr{Kind: grammarir.KindPratt, Table: table}
	return &grammarir.GrammarDocument{
		FormatVersion: "v1.0.0",
		NodeTypes: []grammarir.NodeTypeInfo{
			{Name: "NUMBER"}, {Name: "PLUS"}, {Name: "WS", WhitespaceLike: true}, {Name: "BIN"}, {Name: "EXPR"},
		},
		LexRules: []lexer.Rule{{Type: 1, Pattern: `[0-9]+`}, {Type: 2, Pattern: `\+`}, {Type: 3, Pattern: `\s+`}},
		SynRules: []grammarir.SynRule{{Body: grammarir.Expr{Kind: grammarir.KindPub, TyIdx: 5, Body: &body}}},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := grammarir.EncodeJSON(doc)
	require.NoError(t, err)

	got, err := grammarir.DecodeJSON(data)
	require.NoError(t, err)

	require.Equal(t, doc.FormatVersion, got.FormatVersion)
	require.Equal(t, doc.StartRule, got.StartRule)
	if diff := cmp.Diff(doc.NodeTypes, got.NodeTypes); diff != "" {
		t.Errorf("node types changed across the round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.SynRules, got.SynRules); diff != "" {
		t.Errorf("syn rules changed across the round trip (-want +got):\n%s", diff)
	}
	require.Len(t, got.LexRules, len(doc.LexRules))
	for i := range doc.LexRules {
		require.Equal(t, doc.LexRules[i].Type, got.LexRules[i].Type)
		require.Equal(t, doc.LexRules[i].Pattern, got.LexRules[i].Pattern)
	}
}

func TestCBORRoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := grammarir.EncodeCBOR(doc)
	require.NoError(t, err)

	got, err := grammarir.DecodeCBOR(data)
	require.NoError(t, err)
	require.Equal(t, doc.FormatVersion, got.FormatVersion)
	require.Equal(t, doc.StartRule, got.StartRule)
	require.Equal(t, len(doc.SynRules), len(got.SynRules))
	require.Equal(t, len(doc.LexRules), len(got.LexRules))
}

func TestDecodeJSONRejectsUnsupportedMajorVersion(t *testing.T) {
	doc := sampleDoc()
	doc.FormatVersion = "v2.0.0"
	data, err := grammarir.EncodeJSON(doc)
	require.NoError(t, err)

	_, err = grammarir.DecodeJSON(data)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported format_version")
}

func TestDecodeJSONRejectsMissingRequiredFields(t *testing.T) {
	_, err := grammarir.DecodeJSON([]byte(`{"format_version": "v1.0.0"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validation")
}
