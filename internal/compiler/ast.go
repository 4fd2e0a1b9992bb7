package compiler

import "fmt"

// AstKind identifies the shape of a RegexAst node.
type AstKind int

const (
	AstLiteral AstKind = iota
	AstAnyCharacter
	AstUnicodeClass
	AstNegatedUnicodeClass
	AstNonUnicodeClass
	AstConcatenation
	AstAlternation
	AstRepetition
)

// RegexAst is the normalized regex syntax tree produced by the AST
// builder, consumed by NFA construction.
type RegexAst struct {
	Kind AstKind

	Literal    rune
	Categories UnicodeCategorySet
	Class      CharacterClass

	Children []*RegexAst // Concatenation, Alternation

	Base *RegexAst // Repetition
	Min  uint64
	Max  *uint64 // nil = unbounded
}

// Parse runs the full tokenizer + AST builder pipeline over pattern.
func Parse(pattern string) (*RegexAst, error) {
	tokens, err := Tokenize(pattern)
	if err != nil {
		return nil, err
	}
	grouped := group(tokens)
	withReps, err := attachRepetitions(grouped)
	if err != nil {
		return nil, err
	}
	withAlts, err := fuseAlternations(withReps)
	if err != nil {
		return nil, err
	}
	ast, err := lower(withAlts)
	if err != nil {
		return nil, err
	}
	return simplifyAst(ast), nil
}

// partial is the intermediate tree shape threaded through Stages G, R
// and A, before Stage L lowers it into a RegexAst.
type partialKind int

const (
	partialToken partialKind = iota
	partialGroup
	partialRepetition
	partialAlternation
)

type partial struct {
	kind partialKind

	token Token // partialToken

	children []partial // partialGroup, partialAlternation

	base *partial // partialRepetition
	min  uint64
	max  *uint64
}

// group implements Stage G: OpenGroup begins a nested child list
// collected until the matching CloseGroup. End-of-stream silently
// closes any still-open group.
func group(tokens []Token) []partial {
	items, _ := groupFrom(tokens, 0, false)
	return items
}

// groupFrom collects items until a matching CloseGroup. nested is false
// only for the outermost call; a stray CloseGroup with nothing open is
// dropped rather than terminating the whole scan.
func groupFrom(tokens []Token, pos int, nested bool) ([]partial, int) {
	var items []partial
	for pos < len(tokens) {
		tok := tokens[pos]
		if tok.Kind == TokCloseGroup {
			if nested {
				return items, pos + 1
			}
			pos++
			continue
		}
		if tok.Kind == TokOpenGroup {
			children, next := groupFrom(tokens, pos+1, true)
			items = append(items, partial{kind: partialGroup, children: children})
			pos = next
			continue
		}
		items = append(items, partial{kind: partialToken, token: tok})
		pos++
	}
	return items, pos
}

// attachRepetitions implements Stage R: whenever a token is immediately
// followed by a repetition marker, fuse them into a partialRepetition.
// Recurses into groups and into repetition bases.
func attachRepetitions(items []partial) ([]partial, error) {
	var result []partial
	for i := 0; i < len(items); i++ {
		item := items[i]
		if item.kind == partialToken && item.token.Kind == TokRepetition {
			return nil, fmt.Errorf("repetition has no preceding atom or group to repeat")
		}
		if item.kind == partialGroup {
			children, err := attachRepetitions(item.children)
			if err != nil {
				return nil, err
			}
			item = partial{kind: partialGroup, children: children}
		}
		if i+1 < len(items) && items[i+1].kind == partialToken && items[i+1].token.Kind == TokRepetition {
			rep := items[i+1].token
			base := item
			result = append(result, partial{kind: partialRepetition, base: &base, min: rep.Min, max: rep.Max})
			i++
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// fuseAlternations implements Stage A. Each Alternation token only ever
// splices the single item immediately to its left and the single item
// immediately to its right: if the left item is already an Alternation
// node, the right item is absorbed as one more branch; otherwise the
// three-element span (left, bar, right) collapses into a fresh two-branch
// Alternation. The scan repeats until no top-level Alternation token
// remains. A bar therefore binds tighter than an unparenthesized run of
// concatenated items on either side of it — a pattern like
// "ab|cd" fuses only the "b" and "c" atoms, not the whole "ab"/"cd" runs;
// writing "(ab)|(cd)" groups each side explicitly. Recurses into groups
// and bases first so nested alternations are fully resolved before this
// level is scanned.
func fuseAlternations(items []partial) ([]partial, error) {
	for i := range items {
		if items[i].kind == partialGroup {
			children, err := fuseAlternations(items[i].children)
			if err != nil {
				return nil, err
			}
			items[i].children = children
		}
		if items[i].kind == partialRepetition {
			base, err := fuseAlternations([]partial{*items[i].base})
			if err != nil {
				return nil, err
			}
			items[i].base = &base[0]
		}
	}

	for {
		idx := -1
		for i, item := range items {
			if item.kind == partialToken && item.token.Kind == TokAlternation {
				idx = i
				break
			}
		}
		if idx == -1 {
			return items, nil
		}
		if idx == 0 {
			return nil, fmt.Errorf("found alternation token without preceding item")
		}
		if idx == len(items)-1 {
			return nil, fmt.Errorf("found alternation token without succeeding item")
		}

		left := items[idx-1]
		right := items[idx+1]
		if left.kind == partialAlternation {
			fused := make([]partial, 0, len(left.children)+1)
			fused = append(fused, left.children...)
			fused = append(fused, right)
			left = partial{kind: partialAlternation, children: fused}

			next := make([]partial, 0, len(items)-2)
			next = append(next, items[:idx-1]...)
			next = append(next, left)
			next = append(next, items[idx+2:]...)
			items = next
			continue
		}

		alt := partial{kind: partialAlternation, children: []partial{left, right}}
		next := make([]partial, 0, len(items)-2)
		next = append(next, items[:idx-1]...)
		next = append(next, alt)
		next = append(next, items[idx+2:]...)
		items = next
	}
}

// lower implements Stage L: converts the partially-parsed tree into a
// RegexAst. Any remaining partialToken of kind OpenGroup/CloseGroup or
// any leftover raw Alternation/Repetition token indicates a bug in an
// earlier stage.
func lower(items []partial) (*RegexAst, error) {
	children := make([]*RegexAst, 0, len(items))
	for _, item := range items {
		node, err := lowerOne(item)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return &RegexAst{Kind: AstConcatenation, Children: children}, nil
}

func lowerOne(item partial) (*RegexAst, error) {
	switch item.kind {
	case partialToken:
		return lowerToken(item.token)
	case partialGroup:
		return lower(item.children)
	case partialRepetition:
		base, err := lowerOne(*item.base)
		if err != nil {
			return nil, err
		}
		if item.max != nil && *item.max < item.min {
			return nil, fmt.Errorf("repetition bounds {%d,%d} have a maximum lower than the minimum", item.min, *item.max)
		}
		return &RegexAst{Kind: AstRepetition, Base: base, Min: item.min, Max: item.max}, nil
	case partialAlternation:
		children := make([]*RegexAst, 0, len(item.children))
		for _, b := range item.children {
			node, err := lowerOne(b)
			if err != nil {
				return nil, err
			}
			children = append(children, node)
		}
		return &RegexAst{Kind: AstAlternation, Children: children}, nil
	default:
		panic("internal error: unknown partial kind reached Stage L")
	}
}

func lowerToken(tok Token) (*RegexAst, error) {
	switch tok.Kind {
	case TokLiteral:
		return &RegexAst{Kind: AstLiteral, Literal: tok.Literal}, nil
	case TokAnyChar:
		return &RegexAst{Kind: AstAnyCharacter}, nil
	case TokUnicodeClass:
		return &RegexAst{Kind: AstUnicodeClass, Categories: tok.Categories}, nil
	case TokNegatedUnicodeClass:
		return &RegexAst{Kind: AstNegatedUnicodeClass, Categories: tok.Categories}, nil
	case TokNonUnicodeClass:
		return &RegexAst{Kind: AstNonUnicodeClass, Class: tok.Class}, nil
	case TokOpenGroup, TokCloseGroup, TokAlternation, TokRepetition:
		panic(fmt.Sprintf("internal error: unlowered token form %d reached Stage L", tok.Kind))
	default:
		panic(fmt.Sprintf("internal error: unknown token kind %d reached Stage L", tok.Kind))
	}
}

// simplifyAst implements Stage S: a Concatenation or Alternation with
// exactly one child collapses to that child, recursively.
func simplifyAst(ast *RegexAst) *RegexAst {
	if ast == nil {
		return nil
	}
	switch ast.Kind {
	case AstConcatenation, AstAlternation:
		for i, child := range ast.Children {
			ast.Children[i] = simplifyAst(child)
		}
		if len(ast.Children) == 1 {
			return ast.Children[0]
		}
		return ast
	case AstRepetition:
		ast.Base = simplifyAst(ast.Base)
		return ast
	default:
		return ast
	}
}
