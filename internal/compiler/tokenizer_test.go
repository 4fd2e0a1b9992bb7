package compiler

import "testing"

func TestTokenizeLiterals(t *testing.T) {
	toks, err := Tokenize("ab")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Kind != TokLiteral || toks[0].Literal != 'a' {
		t.Errorf("toks[0] = %+v, want literal 'a'", toks[0])
	}
	if toks[1].Kind != TokLiteral || toks[1].Literal != 'b' {
		t.Errorf("toks[1] = %+v, want literal 'b'", toks[1])
	}
}

func TestTokenizeMetacharacters(t *testing.T) {
	toks, err := Tokenize("(a|.)*")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	want := []TokenKind{TokOpenGroup, TokLiteral, TokAlternation, TokAnyChar, TokCloseGroup, TokRepetition}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestTokenizeDigitClass(t *testing.T) {
	toks, err := Tokenize(`\d\D`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Kind != TokUnicodeClass {
		t.Errorf("toks[0].Kind = %v, want TokUnicodeClass", toks[0].Kind)
	}
	if toks[1].Kind != TokNegatedUnicodeClass {
		t.Errorf("toks[1].Kind = %v, want TokNegatedUnicodeClass", toks[1].Kind)
	}
}

func TestTokenizeUnicodeClassBraced(t *testing.T) {
	toks, err := Tokenize(`\p{Lu}\P{Uppercase_Letter}`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Kind != TokUnicodeClass {
		t.Errorf("toks[0].Kind = %v, want TokUnicodeClass", toks[0].Kind)
	}
	if toks[1].Kind != TokNegatedUnicodeClass {
		t.Errorf("toks[1].Kind = %v, want TokNegatedUnicodeClass", toks[1].Kind)
	}
}

func TestTokenizeUnicodeClassSingleLetter(t *testing.T) {
	toks, err := Tokenize(`\pL`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != TokUnicodeClass {
		t.Fatalf("got %+v, want single TokUnicodeClass", toks)
	}
	if len(toks[0].Categories) != 5 {
		t.Errorf("Categories = %v, want 5 letter categories", toks[0].Categories)
	}
}

func TestTokenizeCharacterClass(t *testing.T) {
	toks, err := Tokenize("[a-z]")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != TokNonUnicodeClass {
		t.Fatalf("got %+v, want single TokNonUnicodeClass", toks)
	}
	if _, ok := toks[0].Class.(CharRange); !ok {
		t.Errorf("Class = %#v, want CharRange", toks[0].Class)
	}
}

func TestTokenizeRepetitionBounds(t *testing.T) {
	tests := []struct {
		pattern string
		wantMin uint64
		wantMax *uint64
	}{
		{"a{3}", 3, uint64Ptr(3)},
		{"a{2,5}", 2, uint64Ptr(5)},
		{"a{2,}", 2, nil},
	}
	for _, tt := range tests {
		toks, err := Tokenize(tt.pattern)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.pattern, err)
		}
		var rep *Token
		for i := range toks {
			if toks[i].Kind == TokRepetition {
				rep = &toks[i]
			}
		}
		if rep == nil {
			t.Fatalf("Tokenize(%q): no repetition token found", tt.pattern)
		}
		if rep.Min != tt.wantMin {
			t.Errorf("Tokenize(%q).Min = %d, want %d", tt.pattern, rep.Min, tt.wantMin)
		}
		if (rep.Max == nil) != (tt.wantMax == nil) {
			t.Fatalf("Tokenize(%q).Max = %v, want %v", tt.pattern, rep.Max, tt.wantMax)
		}
		if rep.Max != nil && *rep.Max != *tt.wantMax {
			t.Errorf("Tokenize(%q).Max = %d, want %d", tt.pattern, *rep.Max, *tt.wantMax)
		}
	}
}

func TestTokenizeUnrecognizedEscape(t *testing.T) {
	if _, err := Tokenize(`\q`); err == nil {
		t.Fatalf("Tokenize(\\q): want error, got nil")
	}
}

func uint64Ptr(v uint64) *uint64 { return &v }
