package rexforge

import "testing"

func TestAnalyzeReportsFeatures(t *testing.T) {
	result, err := Analyze(`\d+|[a-z]*`)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := map[string]bool{"Alternation": true, "Repetition": true}
	got := map[string]bool{}
	for _, label := range result.FeatureLabels {
		got[label] = true
	}
	for label := range want {
		if !got[label] {
			t.Errorf("FeatureLabels = %v, missing %q", result.FeatureLabels, label)
		}
	}
	if result.StateCount == 0 {
		t.Errorf("StateCount = 0, want > 0")
	}
}

func TestAnalyzeLiteralPrefix(t *testing.T) {
	result, err := Analyze("https://")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.HasLiteralPrefix || result.LiteralPrefix != "https://" {
		t.Errorf("got HasLiteralPrefix=%v LiteralPrefix=%q, want true %q",
			result.HasLiteralPrefix, result.LiteralPrefix, "https://")
	}
}

func TestAnalyzeInvalidPattern(t *testing.T) {
	if _, err := Analyze("a|"); err == nil {
		t.Fatalf("Analyze(\"a|\"): want error, got nil")
	}
}
