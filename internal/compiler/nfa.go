package compiler

// ConditionKind identifies the shape of a TransitionCondition.
type ConditionKind int

const (
	CondEpsilon ConditionKind = iota
	CondLiteral
	CondAnyCharacter
	CondCharacterClass
	CondUnicodeClass
	CondNegatedUnicodeClass
)

// TransitionCondition is the predicate guarding one NFA transition.
type TransitionCondition struct {
	Kind ConditionKind

	Literal    rune               // CondLiteral
	Class      CharacterClass     // CondCharacterClass
	Categories UnicodeCategorySet // CondUnicodeClass, CondNegatedUnicodeClass
}

// Transition is one outgoing edge of a state.
type Transition struct {
	Next      int
	Condition TransitionCondition
}

// State is one node of the NFA, identified by its dense index in
// NFA.States.
type State struct {
	Transitions []Transition
}

// NFA is the automaton built from a RegexAst and, later, simplified in
// place. States live in a dense arena addressed by index; transitions
// carry target indices, never pointers, which keeps the structure
// trivially copyable and makes dead-state renumbering a plain index
// rewrite.
type NFA struct {
	States   []*State
	Start    []int
	Terminal map[int]bool
	Prefix   []rune
}

func (n *NFA) isTerminal(id int) bool {
	return n.Terminal[id]
}

func (n *NFA) addState() int {
	id := len(n.States)
	n.States = append(n.States, &State{})
	return id
}

func (n *NFA) construct(transitions ...Transition) int {
	id := n.addState()
	n.States[id].Transitions = append(n.States[id].Transitions, transitions...)
	return id
}

func (n *NFA) addTransition(from int, tr Transition) {
	n.States[from].Transitions = append(n.States[from].Transitions, tr)
}

func epsilon(next int) Transition {
	return Transition{Next: next, Condition: TransitionCondition{Kind: CondEpsilon}}
}

// BuildNFA lowers ast into a fresh NFA per §4.4: state 0 is the sole
// terminal, and the overall start state is add(ast, 0).
func BuildNFA(ast *RegexAst) *NFA {
	n := &NFA{Terminal: map[int]bool{}}
	terminal := n.addState()
	n.Terminal[terminal] = true
	start := n.add(ast, terminal)
	n.Start = []int{start}
	return n
}

// add wires a fresh sub-automaton for node whose entry is the returned
// index and which, upon matching node, transitions into target.
func (n *NFA) add(node *RegexAst, target int) int {
	switch node.Kind {
	case AstLiteral:
		return n.construct(Transition{Next: target, Condition: TransitionCondition{Kind: CondLiteral, Literal: node.Literal}})
	case AstAnyCharacter:
		return n.construct(Transition{Next: target, Condition: TransitionCondition{Kind: CondAnyCharacter}})
	case AstUnicodeClass:
		return n.construct(Transition{Next: target, Condition: TransitionCondition{Kind: CondUnicodeClass, Categories: node.Categories}})
	case AstNegatedUnicodeClass:
		return n.construct(Transition{Next: target, Condition: TransitionCondition{Kind: CondNegatedUnicodeClass, Categories: node.Categories}})
	case AstNonUnicodeClass:
		return n.construct(Transition{Next: target, Condition: TransitionCondition{Kind: CondCharacterClass, Class: node.Class}})
	case AstConcatenation:
		t := target
		for i := len(node.Children) - 1; i >= 0; i-- {
			t = n.add(node.Children[i], t)
		}
		return t
	case AstAlternation:
		branches := make([]Transition, 0, len(node.Children))
		for _, child := range node.Children {
			entry := n.add(child, target)
			branches = append(branches, epsilon(entry))
		}
		return n.construct(branches...)
	case AstRepetition:
		return n.addRepetition(node, target)
	default:
		panic("internal error: unknown RegexAst node reached NFA construction")
	}
}

func (n *NFA) addRepetition(node *RegexAst, target int) int {
	if node.Max != nil {
		entry := n.constructOptionalChain(target, node.Base, *node.Max-node.Min)
		return n.constructMandatoryChain(entry, node.Base, node.Min)
	}
	// Unbounded: a trampoline T epsilons into target; one copy of base
	// loops from T back to its own entry. T itself (not the loop copy)
	// is the entry for zero repetitions, so min mandatory copies are
	// chained in front of T, not in front of the loop copy.
	trampoline := n.construct(epsilon(target))
	loopEntry := n.add(node.Base, trampoline)
	n.addTransition(trampoline, epsilon(loopEntry))
	return n.constructMandatoryChain(trampoline, node.Base, node.Min)
}

// constructOptionalChain chains count optional copies of base in front
// of target: each copy is a trampoline with one epsilon into a fresh
// copy of base and one epsilon directly to target (skip the rest).
func (n *NFA) constructOptionalChain(target int, base *RegexAst, count uint64) int {
	last := target
	for i := uint64(0); i < count; i++ {
		entry := n.add(base, last)
		last = n.construct(epsilon(entry), epsilon(target))
	}
	return last
}

// constructMandatoryChain chains count mandatory (consuming) copies of
// base in front of target.
func (n *NFA) constructMandatoryChain(target int, base *RegexAst, count uint64) int {
	t := target
	for i := uint64(0); i < count; i++ {
		t = n.add(base, t)
	}
	return t
}
