package rexforge

import (
	"github.com/KromDaniel/rexforge/internal/compiler"
)

// AnalysisResult summarizes the shape of a compiled pattern, for tools
// that want to report on a regex without generating a matcher for it.
type AnalysisResult struct {
	// StateCount is the number of states in the simplified NFA.
	StateCount int
	// HasLiteralPrefix reports whether a mandatory literal prefix was
	// extracted from the automaton's start.
	HasLiteralPrefix bool
	// LiteralPrefix is that prefix, if HasLiteralPrefix is true.
	LiteralPrefix string
	// FeatureLabels names the syntactic constructs the pattern uses,
	// e.g. "Alternation", "Repetition", "UnicodeClass".
	FeatureLabels []string
}

// Analyze parses and simplifies pattern and reports on its structure
// without emitting any Go source.
func Analyze(pattern string) (*AnalysisResult, error) {
	c, err := compiler.New(compiler.Config{
		Pattern: pattern,
		Name:    "Matcher",
		Package: "main",
	})
	if err != nil {
		return nil, err
	}

	nfa := c.NFA()
	features := collectFeatures(c.AST())

	return &AnalysisResult{
		StateCount:       len(nfa.States),
		HasLiteralPrefix: len(nfa.Prefix) > 0,
		LiteralPrefix:    string(nfa.Prefix),
		FeatureLabels:    features,
	}, nil
}

// collectFeatures walks ast and returns the distinct syntactic feature
// labels it uses, in first-encountered order.
func collectFeatures(ast *compiler.RegexAst) []string {
	seen := map[string]bool{}
	var order []string
	note := func(label string) {
		if !seen[label] {
			seen[label] = true
			order = append(order, label)
		}
	}
	var walk func(n *compiler.RegexAst)
	walk = func(n *compiler.RegexAst) {
		if n == nil {
			return
		}
		switch n.Kind {
		case compiler.AstLiteral:
			note("Literal")
		case compiler.AstAnyCharacter:
			note("AnyCharacter")
		case compiler.AstUnicodeClass:
			note("UnicodeClass")
		case compiler.AstNegatedUnicodeClass:
			note("NegatedUnicodeClass")
		case compiler.AstNonUnicodeClass:
			note("CharacterClass")
		case compiler.AstConcatenation:
			note("Concatenation")
		case compiler.AstAlternation:
			note("Alternation")
		case compiler.AstRepetition:
			note("Repetition")
			walk(n.Base)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(ast)
	return order
}
