package compiler

import "sort"

// IRTransition is one outgoing edge in the emittable advance table.
type IRTransition struct {
	Target    int
	Condition TransitionCondition
}

// EmittableIR is the declarative, renderer-agnostic representation of a
// simplified NFA described in §4.6: a state identifier set, an initial
// active-set vector, a per-state advance table, a terminal set, an
// optional literal prefix, and the state count used to size the
// per-step scratch buffer.
type EmittableIR struct {
	StateCount int

	// InitialActive has length StateCount; the first InitialCount
	// entries are the start-state ids, the remainder is filler.
	InitialActive []int
	InitialCount  int

	Advance [][]IRTransition

	Terminal map[int]bool

	Prefix []rune
}

// BuildIR lowers a simplified NFA into its emittable IR.
func BuildIR(n *NFA) *EmittableIR {
	count := len(n.States)

	initial := make([]int, count)
	copy(initial, n.Start)

	advance := make([][]IRTransition, count)
	for i, st := range n.States {
		for _, tr := range st.Transitions {
			advance[i] = append(advance[i], IRTransition{Target: tr.Next, Condition: tr.Condition})
		}
	}

	terminal := make(map[int]bool, len(n.Terminal))
	for id := range n.Terminal {
		terminal[id] = true
	}

	return &EmittableIR{
		StateCount:    count,
		InitialActive: initial,
		InitialCount:  len(n.Start),
		Advance:       advance,
		Terminal:      terminal,
		Prefix:        append([]rune(nil), n.Prefix...),
	}
}

// SortedTerminals returns the terminal state ids in ascending order,
// for deterministic code generation.
func (ir *EmittableIR) SortedTerminals() []int {
	out := make([]int, 0, len(ir.Terminal))
	for id := range ir.Terminal {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
