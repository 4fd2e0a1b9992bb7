package compiler

import (
	"strings"
	"testing"
)

func TestDOTHeaderAndTerminalShape(t *testing.T) {
	n := compileForTest(t, "a|b")
	out := DOT(n)
	if out == "" {
		t.Fatalf("DOT returned empty string")
	}
	if !strings.Contains(out, "digraph automaton") {
		t.Errorf("DOT output missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, "doublecircle") {
		t.Errorf("DOT output missing a doublecircle terminal node:\n%s", out)
	}
}

func TestEdgeLabelKinds(t *testing.T) {
	cases := []struct {
		cond TransitionCondition
		want string
	}{
		{TransitionCondition{Kind: CondEpsilon}, "ε"},
		{TransitionCondition{Kind: CondAnyCharacter}, "any"},
		{TransitionCondition{Kind: CondLiteral, Literal: 'x'}, "'x'"},
		{TransitionCondition{Kind: CondUnicodeClass, Categories: UnicodeCategorySet{"Lu"}}, `\p{Lu}`},
		{TransitionCondition{Kind: CondNegatedUnicodeClass, Categories: UnicodeCategorySet{"Lu"}}, `\P{Lu}`},
	}
	for _, tt := range cases {
		if got := edgeLabel(tt.cond); got != tt.want {
			t.Errorf("edgeLabel(%+v) = %q, want %q", tt.cond, got, tt.want)
		}
	}
}
