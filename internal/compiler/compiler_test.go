package compiler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCompilerGenerate(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"simple", "test"},
		{"digit", `\d+`},
		{"unicode_letter", `\p{L}+`},
		{"alternation", "a|b"},
		{"bounded_repetition", "a{2,4}"},
		{"character_class", "[a-z0-9_]+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			outputFile := filepath.Join(tmpDir, "test.go")

			c, err := New(Config{
				Pattern:    tt.pattern,
				Name:       "Test",
				OutputFile: outputFile,
				Package:    "test",
			})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			if err := c.Generate(); err != nil {
				t.Fatalf("Generate: %v", err)
			}

			if _, err := os.Stat(outputFile); os.IsNotExist(err) {
				t.Error("output file was not created")
			}
		})
	}
}

func TestCompilerGenerateRejectsInvalidPattern(t *testing.T) {
	if _, err := New(Config{
		Pattern:    "a{2,1}",
		Name:       "Test",
		OutputFile: filepath.Join(t.TempDir(), "test.go"),
		Package:    "test",
	}); err == nil {
		t.Fatalf("New(\"a{2,1}\"): want error for inverted repetition bounds, got nil")
	}

	if _, err := New(Config{
		Pattern:    "*",
		Name:       "Test",
		OutputFile: filepath.Join(t.TempDir(), "test.go"),
		Package:    "test",
	}); err == nil {
		t.Fatalf("New(\"*\"): want error for dangling repetition, got nil")
	}
}

func TestCompilerNFAAccessor(t *testing.T) {
	c, err := New(Config{
		Pattern:    "gopher",
		Name:       "Test",
		OutputFile: filepath.Join(t.TempDir(), "test.go"),
		Package:    "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.NFA() == nil {
		t.Fatalf("NFA() returned nil")
	}
	if string(c.NFA().Prefix) != "gopher" {
		t.Errorf("NFA().Prefix = %q, want %q", string(c.NFA().Prefix), "gopher")
	}
}
