package compiler

import (
	"fmt"
	"sort"

	"github.com/KromDaniel/rexforge/internal/codegen"
	"github.com/dave/jennifer/jen"
)

// CharacterClass is a node of a parsed [...] bracket expression.
type CharacterClass interface {
	isCharacterClass()
}

// CharLiteral matches exactly one scalar.
type CharLiteral rune

// CharRange matches any scalar in [Start, End] by code-point order.
type CharRange struct {
	Start, End rune
}

// CharDisjunction matches if any child matches. Always has >= 2 children;
// a singleton is collapsed by the parser.
type CharDisjunction []CharacterClass

// CharNegated matches if its child does not match.
type CharNegated struct {
	Class CharacterClass
}

func (CharLiteral) isCharacterClass()     {}
func (CharRange) isCharacterClass()       {}
func (CharDisjunction) isCharacterClass() {}
func (CharNegated) isCharacterClass()     {}

// matchesClass reports whether r satisfies class. Used by tests; the
// generated matcher expresses the same semantics as inline Go conditions
// via classCondition below.
func matchesClass(class CharacterClass, r rune) bool {
	switch c := class.(type) {
	case CharLiteral:
		return rune(c) == r
	case CharRange:
		return r >= c.Start && r <= c.End
	case CharDisjunction:
		for _, child := range c {
			if matchesClass(child, r) {
				return true
			}
		}
		return false
	case CharNegated:
		return !matchesClass(c.Class, r)
	default:
		panic("internal error: unknown CharacterClass node reached matchesClass")
	}
}

// parseCharacterClass attempts to parse one [...] bracket expression
// starting at runes[pos]. ok is false, with no error, when runes[pos]
// is not '['.
func parseCharacterClass(runes []rune, pos int) (class CharacterClass, next int, ok bool, err error) {
	if pos >= len(runes) || runes[pos] != '[' {
		return nil, pos, false, nil
	}
	class, next, err = parseBracketBody(runes, pos+1)
	if err != nil {
		return nil, pos, false, err
	}
	if next >= len(runes) || runes[next] != ']' {
		return nil, pos, false, fmt.Errorf("character class starting at position %d is missing a closing ']'", pos)
	}
	return class, next + 1, true, nil
}

// parseBracketBody parses inner items until ']', which it does not
// consume. pos must point just past the opening '[' (or '^' in the
// recursive negation case).
func parseBracketBody(runes []rune, pos int) (CharacterClass, int, error) {
	var items []CharacterClass
	for {
		if pos >= len(runes) {
			return nil, pos, fmt.Errorf("unterminated character class: missing ']'")
		}
		if runes[pos] == ']' {
			break
		}
		item, next, err := parseClassItem(runes, pos)
		if err != nil {
			return nil, pos, err
		}
		items = append(items, item)
		pos = next
	}
	if len(items) == 0 {
		return nil, pos, fmt.Errorf("character class may not be empty")
	}
	if len(items) == 1 {
		return items[0], pos, nil
	}
	return CharDisjunction(items), pos, nil
}

// parseClassItem parses one inner-item: negation, range, or single char,
// tried in that order, per §4.1.
func parseClassItem(runes []rune, pos int) (CharacterClass, int, error) {
	if runes[pos] == '^' {
		inner, next, err := parseBracketBody(runes, pos+1)
		if err != nil {
			return nil, pos, err
		}
		return CharNegated{Class: inner}, next, nil
	}
	if pos+2 < len(runes) && runes[pos+1] == '-' {
		return CharRange{Start: runes[pos], End: runes[pos+2]}, pos + 3, nil
	}
	return CharLiteral(runes[pos]), pos + 1, nil
}

// classCondition renders class as a boolean jen expression testing the
// rune variable named by codegen.CurrentCharName, following the
// teacher's three-tier strategy in generateRuneCheck: a handful of
// named common classes get a tight inlined comparison, small range
// sets get an OR-chain, and large pure-ASCII sets fall back to a
// bitmap check. Nested negation defeats flattening (the teacher's own
// flat rune-pair list has no equivalent for it either), so any class
// containing a CharNegated anywhere is rendered with the direct
// recursive builder instead.
func classCondition(class CharacterClass) *jen.Statement {
	if !containsNegation(class) {
		ranges := flattenRanges(class)
		if name := detectNamedClass(ranges); name != "" {
			return namedClassCondition(name)
		}
		if len(ranges) <= 6 {
			return rangeOrChain(ranges)
		}
		if allASCII(ranges) {
			return bitmapCondition(ranges)
		}
	}
	return classConditionDirect(class)
}

// classConditionDirect is the straightforward recursive builder used
// whenever the three-tier strategy above doesn't apply.
func classConditionDirect(class CharacterClass) *jen.Statement {
	c := jen.Id(codegen.CurrentCharName)
	switch cc := class.(type) {
	case CharLiteral:
		return c.Clone().Op("==").LitRune(rune(cc))
	case CharRange:
		return jen.Parens(c.Clone().Op(">=").LitRune(cc.Start).Op("&&").Add(c.Clone()).Op("<=").LitRune(cc.End))
	case CharDisjunction:
		var stmt *jen.Statement
		for _, child := range cc {
			cond := classConditionDirect(child)
			if stmt == nil {
				stmt = cond
			} else {
				stmt = jen.Parens(stmt).Op("||").Add(jen.Parens(cond))
			}
		}
		return stmt
	case CharNegated:
		return jen.Op("!").Parens(classConditionDirect(cc.Class))
	default:
		panic("internal error: unknown CharacterClass node reached classConditionDirect")
	}
}

func containsNegation(class CharacterClass) bool {
	switch cc := class.(type) {
	case CharNegated:
		return true
	case CharDisjunction:
		for _, child := range cc {
			if containsNegation(child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// flattenRanges collects every CharLiteral/CharRange leaf of class
// (which must be negation-free) into a sorted, non-overlapping list of
// inclusive rune ranges.
func flattenRanges(class CharacterClass) []CharRange {
	var raw []CharRange
	var walk func(CharacterClass)
	walk = func(c CharacterClass) {
		switch v := c.(type) {
		case CharLiteral:
			raw = append(raw, CharRange{Start: rune(v), End: rune(v)})
		case CharRange:
			raw = append(raw, v)
		case CharDisjunction:
			for _, child := range v {
				walk(child)
			}
		default:
			panic("internal error: flattenRanges reached a node it cannot flatten")
		}
	}
	walk(class)

	sort.Slice(raw, func(i, j int) bool { return raw[i].Start < raw[j].Start })
	var merged []CharRange
	for _, r := range raw {
		if len(merged) > 0 && r.Start <= merged[len(merged)-1].End+1 {
			if r.End > merged[len(merged)-1].End {
				merged[len(merged)-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// detectNamedClass recognizes a handful of common classes by their
// flattened range shape, mirroring the teacher's detectCharacterClass.
func detectNamedClass(ranges []CharRange) string {
	single := func(start, end rune) bool {
		return len(ranges) == 1 && ranges[0].Start == start && ranges[0].End == end
	}
	switch {
	case single('0', '9'):
		return "digit"
	case single('a', 'z'):
		return "lowercase"
	case single('A', 'Z'):
		return "uppercase"
	case len(ranges) == 2 && ranges[0] == (CharRange{'A', 'Z'}) && ranges[1] == (CharRange{'a', 'z'}):
		return "alpha"
	case len(ranges) == 4 &&
		ranges[0] == (CharRange{'0', '9'}) &&
		ranges[1] == (CharRange{'A', 'Z'}) &&
		ranges[2] == (CharRange{'_', '_'}) &&
		ranges[3] == (CharRange{'a', 'z'}):
		return "word"
	default:
		return ""
	}
}

func namedClassCondition(name string) *jen.Statement {
	c := jen.Id(codegen.CurrentCharName)
	switch name {
	case "digit":
		return jen.Parens(c.Clone().Op(">=").LitRune('0').Op("&&").Add(c.Clone()).Op("<=").LitRune('9'))
	case "lowercase":
		return jen.Parens(c.Clone().Op(">=").LitRune('a').Op("&&").Add(c.Clone()).Op("<=").LitRune('z'))
	case "uppercase":
		return jen.Parens(c.Clone().Op(">=").LitRune('A').Op("&&").Add(c.Clone()).Op("<=").LitRune('Z'))
	case "alpha":
		upper := jen.Parens(c.Clone().Op(">=").LitRune('A').Op("&&").Add(c.Clone()).Op("<=").LitRune('Z'))
		lower := jen.Parens(c.Clone().Op(">=").LitRune('a').Op("&&").Add(c.Clone()).Op("<=").LitRune('z'))
		return jen.Parens(upper.Op("||").Add(lower))
	case "word":
		digit := jen.Parens(c.Clone().Op(">=").LitRune('0').Op("&&").Add(c.Clone()).Op("<=").LitRune('9'))
		upper := jen.Parens(c.Clone().Op(">=").LitRune('A').Op("&&").Add(c.Clone()).Op("<=").LitRune('Z'))
		lower := jen.Parens(c.Clone().Op(">=").LitRune('a').Op("&&").Add(c.Clone()).Op("<=").LitRune('z'))
		underscore := c.Clone().Op("==").LitRune('_')
		return jen.Parens(digit.Op("||").Add(upper).Op("||").Add(lower).Op("||").Add(underscore))
	default:
		panic("internal error: unknown named class reached namedClassCondition")
	}
}

func rangeOrChain(ranges []CharRange) *jen.Statement {
	c := jen.Id(codegen.CurrentCharName)
	var stmt *jen.Statement
	for _, r := range ranges {
		var cond *jen.Statement
		if r.Start == r.End {
			cond = c.Clone().Op("==").LitRune(r.Start)
		} else {
			cond = jen.Parens(c.Clone().Op(">=").LitRune(r.Start).Op("&&").Add(c.Clone()).Op("<=").LitRune(r.End))
		}
		if stmt == nil {
			stmt = cond
		} else {
			stmt = jen.Parens(stmt).Op("||").Add(jen.Parens(cond))
		}
	}
	return stmt
}

func allASCII(ranges []CharRange) bool {
	for _, r := range ranges {
		if r.End > 0x7F {
			return false
		}
	}
	return true
}

// bitmapCondition renders an inline 128-bit bitmap membership test,
// grounded on the teacher's createBitmap/generateBitmapCheck pair but
// sized to ASCII rune values and indexed by the rune variable directly
// rather than a byte slice offset.
func bitmapCondition(ranges []CharRange) *jen.Statement {
	var bitmap [16]byte
	for _, r := range ranges {
		for v := r.Start; v <= r.End; v++ {
			bitmap[v/8] |= 1 << (uint(v) % 8)
		}
	}
	values := make([]jen.Code, len(bitmap))
	for i, b := range bitmap {
		values[i] = jen.Lit(b)
	}
	c := jen.Id(codegen.CurrentCharName)
	return jen.Parens(c.Clone().Op("<").Lit(128)).Op("&&").Add(
		jen.Parens(
			jen.Index(jen.Lit(16)).Byte().Values(values...).Index(c.Clone().Op("/").Lit(8)).
				Op("&").Parens(jen.Lit(1).Op("<<").Parens(c.Clone().Op("%").Lit(8))).
				Op("!=").Lit(0),
		),
	)
}
