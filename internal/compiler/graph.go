package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// DOT renders n as Graphviz "dot" source: one node per state, terminal
// states drawn with a double border, and one labeled edge per
// transition. Intended for -dot inspection of a pattern's automaton,
// before or after simplification.
func DOT(n *NFA) string {
	var b strings.Builder
	b.WriteString("digraph automaton {\n")
	b.WriteString("\trankdir=LR;\n")

	startSet := map[int]bool{}
	for _, s := range n.Start {
		startSet[s] = true
	}

	for id := range n.States {
		shape := "circle"
		if n.isTerminal(id) {
			shape = "doublecircle"
		}
		style := ""
		if startSet[id] {
			style = ` style=filled fillcolor="#ddeeff"`
		}
		fmt.Fprintf(&b, "\tn%d [shape=%s%s label=\"%d\"];\n", id, shape, style, id)
	}

	for id, st := range n.States {
		for _, tr := range st.Transitions {
			fmt.Fprintf(&b, "\tn%d -> n%d [label=%q];\n", id, tr.Next, edgeLabel(tr.Condition))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// edgeLabel renders a TransitionCondition as a short human-readable
// graph edge label.
func edgeLabel(cond TransitionCondition) string {
	switch cond.Kind {
	case CondEpsilon:
		return "ε"
	case CondAnyCharacter:
		return "any"
	case CondLiteral:
		return fmt.Sprintf("%q", cond.Literal)
	case CondCharacterClass:
		return "class[" + classKey(cond.Class) + "]"
	case CondUnicodeClass:
		return "\\p{" + strings.Join(sortedCategories(cond.Categories), ",") + "}"
	case CondNegatedUnicodeClass:
		return "\\P{" + strings.Join(sortedCategories(cond.Categories), ",") + "}"
	default:
		panic("internal error: unknown TransitionCondition kind reached edgeLabel")
	}
}

func sortedCategories(set UnicodeCategorySet) []string {
	out := append([]string(nil), set...)
	sort.Strings(out)
	return out
}
