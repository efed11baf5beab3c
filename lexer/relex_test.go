package lexer_test

import (
	"testing"

	"github.com/opal-lang/langkit/lexer"
	"github.com/opal-lang/langkit/text"
)

func TestRelexEqualsFullLex(t *testing.T) {
	lx, err := lexer.New(jsonRules(), nil)
	if err != nil {
		t.Fatal(err)
	}
	old := []byte(`{"a":1}`)
	oldToks := lx.Lex(old)

	edit := text.NewBuilder(text.Unit(len(old))).
		Replace(5, 6, []byte("2")).
		Build()
	newText := edit.Apply(old)
	if string(newText) != `{"a":2}` {
		t.Fatalf("edit application got %q", newText)
	}

	result := lx.Relex(oldToks, edit, newText)
	want := lx.Lex(newText)
	if lexer.Sum(result.Tokens) != lexer.Sum(want) || len(result.Tokens) != len(want) {
		t.Fatalf("relex mismatch: got %+v want %+v", result.Tokens, want)
	}
	for i := range want {
		if result.Tokens[i] != want[i] {
			t.Fatalf("token %d mismatch: got %+v want %+v", i, result.Tokens[i], want[i])
		}
	}
	if result.ReusedByteCount < 6 {
		t.Fatalf("expected at least 6 bytes reused, got %d", result.ReusedByteCount)
	}
}

func TestRelexFallsBackOnOldError(t *testing.T) {
	lx, err := lexer.New(jsonRules(), nil)
	if err != nil {
		t.Fatal(err)
	}
	old := []byte(`~`)
	oldToks := lx.Lex(old) // single ERROR token
	edit := text.NewBuilder(text.Unit(len(old))).Replace(0, 1, []byte("null")).Build()
	newText := edit.Apply(old)
	result := lx.Relex(oldToks, edit, newText)
	want := lx.Lex(newText)
	if len(result.Tokens) != len(want) || result.Tokens[0] != want[0] {
		t.Fatalf("got %+v want %+v", result.Tokens, want)
	}
}

func TestRelexAcrossSeveralEdits(t *testing.T) {
	lx, err := lexer.New(jsonRules(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		old        string
		start, end int
		insert     string
	}{
		{`[1, 2, 3]`, 4, 5, "22"},
		{`{"k":"v"}`, 7, 8, "vv"},
		{`null`, 0, 4, "true"},
	}
	for _, c := range cases {
		oldToks := lx.Lex([]byte(c.old))
		edit := text.NewBuilder(text.Unit(len(c.old))).
			Replace(text.Unit(c.start), text.Unit(c.end), []byte(c.insert)).
			Build()
		newText := edit.Apply([]byte(c.old))
		result := lx.Relex(oldToks, edit, newText)
		want := lx.Lex(newText)
		if lexer.Sum(result.Tokens) != lexer.Sum(want) || len(result.Tokens) != len(want) {
			t.Fatalf("case %+v: got %+v want %+v", c, result.Tokens, want)
		}
		for i := range want {
			if result.Tokens[i] != want[i] {
				t.Fatalf("case %+v token %d: got %+v want %+v", c, i, result.Tokens[i], want[i])
			}
		}
	}
}
