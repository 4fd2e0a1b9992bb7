package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KromDaniel/rexforge/internal/codegen"
	"github.com/dave/jennifer/jen"
)

func TestParseCharacterClassLiteralSet(t *testing.T) {
	class, next, ok, err := parseCharacterClass([]rune("[abc]"), 0)
	if err != nil || !ok {
		t.Fatalf("parseCharacterClass: ok=%v err=%v", ok, err)
	}
	if next != 5 {
		t.Errorf("next = %d, want 5", next)
	}
	for _, r := range []rune{'a', 'b', 'c'} {
		if !matchesClass(class, r) {
			t.Errorf("class does not match %q", r)
		}
	}
	if matchesClass(class, 'd') {
		t.Errorf("class unexpectedly matches 'd'")
	}
}

func TestParseCharacterClassRange(t *testing.T) {
	class, _, ok, err := parseCharacterClass([]rune("[a-z]"), 0)
	if err != nil || !ok {
		t.Fatalf("parseCharacterClass: ok=%v err=%v", ok, err)
	}
	if !matchesClass(class, 'm') || matchesClass(class, 'A') {
		t.Errorf("range [a-z] misclassified 'm' or 'A'")
	}
}

func TestParseCharacterClassNegated(t *testing.T) {
	class, _, ok, err := parseCharacterClass([]rune("[^a-z]"), 0)
	if err != nil || !ok {
		t.Fatalf("parseCharacterClass: ok=%v err=%v", ok, err)
	}
	if matchesClass(class, 'm') || !matchesClass(class, 'A') {
		t.Errorf("negated range [^a-z] misclassified 'm' or 'A'")
	}
}

func TestParseCharacterClassMixedDisjunction(t *testing.T) {
	class, _, ok, err := parseCharacterClass([]rune("[a-z0-9_]"), 0)
	if err != nil || !ok {
		t.Fatalf("parseCharacterClass: ok=%v err=%v", ok, err)
	}
	for _, r := range []rune{'m', '5', '_'} {
		if !matchesClass(class, r) {
			t.Errorf("class does not match %q", r)
		}
	}
	if matchesClass(class, '-') {
		t.Errorf("class unexpectedly matches '-'")
	}
}

func TestParseCharacterClassNotBracket(t *testing.T) {
	_, _, ok, err := parseCharacterClass([]rune("abc"), 0)
	if ok || err != nil {
		t.Fatalf("parseCharacterClass on non-'[' input: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestParseCharacterClassUnterminated(t *testing.T) {
	_, _, _, err := parseCharacterClass([]rune("[abc"), 0)
	if err == nil {
		t.Fatalf("parseCharacterClass on unterminated class: want error, got nil")
	}
}

func TestParseCharacterClassEmpty(t *testing.T) {
	_, _, _, err := parseCharacterClass([]rune("[]"), 0)
	if err == nil {
		t.Fatalf("parseCharacterClass on empty class: want error, got nil")
	}
}

func TestDetectNamedClass(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"[0-9]", "digit"},
		{"[a-z]", "lowercase"},
		{"[A-Z]", "uppercase"},
		{"[A-Za-z]", "alpha"},
		{"[0-9A-Z_a-z]", "word"},
		{"[xyz]", ""},
	}
	for _, tt := range cases {
		class, _, ok, err := parseCharacterClass([]rune(tt.pattern), 0)
		if err != nil || !ok {
			t.Fatalf("parseCharacterClass(%q): ok=%v err=%v", tt.pattern, ok, err)
		}
		got := detectNamedClass(flattenRanges(class))
		if got != tt.want {
			t.Errorf("detectNamedClass(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestClassConditionTierSelection(t *testing.T) {
	named, _, _, _ := parseCharacterClass([]rune("[0-9]"), 0)
	if got := renderCondition(t, classCondition(named)); got == "" {
		t.Errorf("classCondition(named) rendered empty code")
	}

	small, _, _, _ := parseCharacterClass([]rune("[aeiou]"), 0)
	if got := renderCondition(t, classCondition(small)); got == "" {
		t.Errorf("classCondition(small) rendered empty code")
	}

	negated, _, _, _ := parseCharacterClass([]rune("[^a-z]"), 0)
	got := renderCondition(t, classCondition(negated))
	if got == "" {
		t.Errorf("classCondition(negated) rendered empty code")
	}
}

// renderCondition writes a minimal file wrapping stmt in an if-guard
// and returns its formatted source, exercising classCondition's output
// through the same Save path the real emitter uses.
func renderCondition(t *testing.T, stmt *jen.Statement) string {
	t.Helper()
	f := jen.NewFile("test")
	f.Func().Id("f").Params(jen.Id(codegen.CurrentCharName).Rune()).Block(
		jen.If(stmt).Block(jen.Return()),
	)
	out := filepath.Join(t.TempDir(), "cond.go")
	if err := f.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(src)
}
