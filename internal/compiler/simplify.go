package compiler

import (
	"sort"
	"strconv"
)

// Simplify reduces an NFA fresh from BuildNFA into the canonical form
// the emitter expects, applying the four passes of §4.5 in order.
func Simplify(n *NFA) {
	dedupTransitions(n)
	eliminateEpsilons(n)
	removeDeadStates(n)
	extractLiteralPrefix(n)
}

func transitionKey(tr Transition) string {
	cond := tr.Condition
	switch cond.Kind {
	case CondEpsilon:
		return "E"
	case CondLiteral:
		return "L" + string(cond.Literal)
	case CondAnyCharacter:
		return "A"
	case CondCharacterClass:
		return "C" + classKey(cond.Class)
	case CondUnicodeClass:
		return "U" + categoryKey(cond.Categories)
	case CondNegatedUnicodeClass:
		return "N" + categoryKey(cond.Categories)
	default:
		panic("internal error: unknown TransitionCondition kind reached transitionKey")
	}
}

func classKey(c CharacterClass) string {
	switch cc := c.(type) {
	case CharLiteral:
		return "c" + string(rune(cc))
	case CharRange:
		return "r" + string(cc.Start) + string(cc.End)
	case CharDisjunction:
		s := "d["
		for _, child := range cc {
			s += classKey(child) + ","
		}
		return s + "]"
	case CharNegated:
		return "n(" + classKey(cc.Class) + ")"
	default:
		panic("internal error: unknown CharacterClass node reached classKey")
	}
}

func categoryKey(set UnicodeCategorySet) string {
	sorted := append([]string(nil), set...)
	sort.Strings(sorted)
	s := ""
	for _, c := range sorted {
		s += c + ","
	}
	return s
}

// dedupTransitions removes duplicate (next, condition) pairs within
// each state's transition list, preserving first-seen order.
func dedupTransitions(n *NFA) {
	for _, st := range n.States {
		seen := map[string]bool{}
		var deduped []Transition
		for _, tr := range st.Transitions {
			key := transitionKey(tr) + "->" + strconv.Itoa(tr.Next)
			if seen[key] {
				continue
			}
			seen[key] = true
			deduped = append(deduped, tr)
		}
		st.Transitions = deduped
	}
}

// epsilonClosure returns s plus every state reachable from s via
// epsilon-only paths, sorted ascending.
func epsilonClosure(n *NFA, s int) []int {
	seen := map[int]bool{s: true}
	stack := []int{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tr := range n.States[cur].Transitions {
			if tr.Condition.Kind == CondEpsilon && !seen[tr.Next] {
				seen[tr.Next] = true
				stack = append(stack, tr.Next)
			}
		}
	}
	return sortedKeysOf(seen)
}

func sortedKeysOf(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// eliminateEpsilons implements §4.5 item 2: every state's transitions
// are replaced by non-epsilon transitions pushed through the epsilon
// closures of both the reaching and the target side, and the
// start-state set is replaced by the closure of the original starts.
func eliminateEpsilons(n *NFA) {
	closures := make([][]int, len(n.States))
	for i := range n.States {
		closures[i] = epsilonClosure(n, i)
	}

	newTransitions := make([][]Transition, len(n.States))
	for s := range n.States {
		var result []Transition
		for _, u := range closures[s] {
			for _, tr := range n.States[u].Transitions {
				if tr.Condition.Kind == CondEpsilon {
					continue
				}
				for _, w := range closures[tr.Next] {
					result = append(result, Transition{Next: w, Condition: tr.Condition})
				}
			}
		}
		newTransitions[s] = result
	}
	for i := range n.States {
		n.States[i].Transitions = newTransitions[i]
	}
	dedupTransitions(n)

	newStart := map[int]bool{}
	for _, s := range n.Start {
		for _, w := range closures[s] {
			newStart[w] = true
		}
	}
	n.Start = sortedKeysOf(newStart)
}

// removeDeadStates implements §4.5 item 3: a state is dead unless it is
// terminal or some path of (now non-epsilon) transitions reaches a
// terminal. Liveness is computed by BFS over the reversed edge graph
// starting from every terminal, which is cycle-safe without memoized
// recursion. Dead states are dropped and the rest renumbered densely.
func removeDeadStates(n *NFA) {
	reverse := make([][]int, len(n.States))
	for s, st := range n.States {
		for _, tr := range st.Transitions {
			reverse[tr.Next] = append(reverse[tr.Next], s)
		}
	}

	live := make([]bool, len(n.States))
	var queue []int
	for id := range n.States {
		if n.isTerminal(id) {
			live[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range reverse[cur] {
			if !live[p] {
				live[p] = true
				queue = append(queue, p)
			}
		}
	}

	remap := make([]int, len(n.States))
	newStates := make([]*State, 0, len(n.States))
	for old := range n.States {
		if live[old] {
			remap[old] = len(newStates)
			newStates = append(newStates, &State{})
		} else {
			remap[old] = -1
		}
	}
	for old, st := range n.States {
		if !live[old] {
			continue
		}
		ns := newStates[remap[old]]
		for _, tr := range st.Transitions {
			if remap[tr.Next] == -1 {
				continue
			}
			ns.Transitions = append(ns.Transitions, Transition{Next: remap[tr.Next], Condition: tr.Condition})
		}
	}
	n.States = newStates

	var newStart []int
	for _, s := range n.Start {
		if remap[s] != -1 {
			newStart = append(newStart, remap[s])
		}
	}
	n.Start = newStart

	newTerminal := map[int]bool{}
	for s := range n.Terminal {
		if remap[s] != -1 {
			newTerminal[remap[s]] = true
		}
	}
	n.Terminal = newTerminal
}

// extractLiteralPrefix implements §4.5 item 4. It is conservative: any
// start-state set with more than one member, or a start state with more
// than one outgoing transition, stops extraction immediately (a common
// prefix would otherwise need to hold across every branch).
func extractLiteralPrefix(n *NFA) {
	for {
		if len(n.Start) != 1 {
			return
		}
		st := n.States[n.Start[0]]
		if len(st.Transitions) != 1 {
			return
		}
		tr := st.Transitions[0]
		if tr.Condition.Kind != CondLiteral {
			return
		}
		n.Prefix = append(n.Prefix, tr.Condition.Literal)
		n.Start = []int{tr.Next}
	}
}
