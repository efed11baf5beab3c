package analyzer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/langkit/analyzer"
	"github.com/opal-lang/langkit/grammarir"
)

func TestAnalyzeResolvesRuleAndTypeNames(t *testing.T) {
	src := &analyzer.Source{
		FormatVersion: "v1.0.0",
		NodeTypes:     []analyzer.SourceNodeType{{Name: "NUMBER"}, {Name: "WS", WhitespaceLike: true}},
		LexRules: []analyzer.SourceLexRule{
			{Type: "NUMBER", Pattern: `[0-9]+`},
			{Type: "WS", Pattern: `\s+`},
		},
		SynRules: []analyzer.SourceSynRule{
			{Name: "file", Body: analyzer.SourceExpr{
				Kind: "Pub", Type: "NUMBER",
				Body: &analyzer.SourceExpr{Kind: "Token", Type: "NUMBER"},
			}},
		},
		StartRule: "file",
	}
	doc, diags := analyzer.Analyze(src)
	if diff := cmp.Diff([]analyzer.Diagnostic(nil), diags); diff != "" {
		t.Errorf("unexpected diagnostics (-want +got):\n%s", diff)
	}
	require.Equal(t, "NUMBER", doc.TypeName(1))
	require.True(t, doc.IsWhitespaceLike(2), "type 2 (WS) should be whitespace-like")
	require.Equal(t, 0, doc.StartRule)
	require.Equal(t, grammarir.KindPub, doc.SynRules[0].Body.Kind)
	require.Equal(t, 1, doc.SynRules[0].Body.TyIdx)
}

func TestAnalyzeReportsUnresolvedRule(t *testing.T) {
	src := &analyzer.Source{
		SynRules: []analyzer.SourceSynRule{
			{Name: "file", Body: analyzer.SourceExpr{Kind: "Rule", Rule: "missing"}},
		},
		StartRule: "file",
	}
	_, diags := analyzer.Analyze(src)
	require.NotEmpty(t, diags)

	tags := make([]string, len(diags))
	for i, d := range diags {
		tags[i] = d.Tag
	}
	require.Contains(t, tags, "unresolved-rule")
}
