package compiler

import (
	"github.com/KromDaniel/rexforge/internal/codegen"
	"github.com/dave/jennifer/jen"
)

// stateTypeName returns the name of the generated per-matcher state
// enum type, e.g. "EmailState".
func stateTypeName(matcherName string) string {
	return matcherName + "State"
}

// stateIdent returns the identifier for one enum constant of a given
// matcher's state type, e.g. "EmailState3".
func stateIdent(matcherName string, id int) string {
	return matcherName + codegen.StateName(id)
}

// conditionPredicate renders cond as a boolean jen expression testing
// the rune variable named by codegen.CurrentCharName.
func conditionPredicate(cond TransitionCondition) *jen.Statement {
	switch cond.Kind {
	case CondAnyCharacter:
		return jen.True()
	case CondLiteral:
		return jen.Id(codegen.CurrentCharName).Op("==").LitRune(cond.Literal)
	case CondCharacterClass:
		return classCondition(cond.Class)
	case CondUnicodeClass:
		return unicodeCondition(cond.Categories, false)
	case CondNegatedUnicodeClass:
		return unicodeCondition(cond.Categories, true)
	default:
		panic("internal error: unexpected TransitionCondition kind reached conditionPredicate")
	}
}

// unicodeCondition emits unicode.Is(unicode.Categories["Lu"], c) || ...
// for every category in the set, negating the whole expression for
// negated classes. unicode.Categories is the standard library's own
// general-category table, keyed by exactly the two-letter codes this
// compiler already carries around, so no separate range-table data
// needs to be generated.
func unicodeCondition(categories UnicodeCategorySet, negated bool) *jen.Statement {
	var stmt *jen.Statement
	for _, cat := range categories {
		call := jen.Qual("unicode", "Is").Call(
			jen.Qual("unicode", "Categories").Index(jen.Lit(cat)),
			jen.Id(codegen.CurrentCharName),
		)
		if stmt == nil {
			stmt = call
		} else {
			stmt = jen.Parens(stmt).Op("||").Add(jen.Parens(call))
		}
	}
	if negated {
		return jen.Op("!").Parens(stmt)
	}
	return stmt
}

// generateMatchString builds the body of the MatchString method per the
// runtime contract of §4.6: an optional prefix fast-path, a two-buffer
// active-state sweep with a generation-scratch dedup array, a
// failure short-circuit, and a terminal check at end of input.
func (c *Compiler) generateMatchString() []jen.Code {
	ir := c.ir
	name := c.config.Name
	typeName := stateTypeName(name)

	var body []jen.Code

	if len(ir.Prefix) > 0 {
		prefix := string(ir.Prefix)
		body = append(body,
			jen.If(jen.Op("!").Qual("strings", "HasPrefix").Call(jen.Id(codegen.InputName), jen.Lit(prefix))).Block(
				jen.Return(jen.False()),
			),
			jen.Id(codegen.InputName).Op("=").Id(codegen.InputName).Index(jen.Lit(len(prefix)).Op(":")),
		)
	}

	body = append(body,
		jen.Id(codegen.RunesName).Op(":=").Index().Rune().Call(jen.Id(codegen.InputName)),
		jen.Id(codegen.InputLenName).Op(":=").Len(jen.Id(codegen.RunesName)),
	)

	body = append(body,
		jen.Var().Id(codegen.ActiveAName).Index(jen.Lit(ir.StateCount)).Id(typeName),
		jen.Var().Id(codegen.ActiveBName).Index(jen.Lit(ir.StateCount)).Id(typeName),
	)
	for i := 0; i < ir.InitialCount; i++ {
		body = append(body,
			jen.Id(codegen.ActiveAName).Index(jen.Lit(i)).Op("=").Id(stateIdent(name, ir.InitialActive[i])),
		)
	}
	body = append(body,
		jen.Id(codegen.ActiveLenName).Op(":=").Lit(ir.InitialCount),
		jen.Var().Id(codegen.ScratchGenName).Index(jen.Lit(ir.StateCount)).Int(),
		jen.Id(codegen.GenerationName).Op(":=").Lit(0),
		jen.Id(codegen.CurrentName).Op(":=").Id(codegen.ActiveAName).Index(jen.Op(":")),
		jen.Id(codegen.NextName).Op(":=").Id(codegen.ActiveBName).Index(jen.Op(":")),
	)

	loopBody := []jen.Code{
		jen.Id(codegen.GenerationName).Op("++"),
		jen.Id(codegen.CurrentCharName).Op(":=").Id(codegen.RunesName).Index(jen.Id(codegen.OffsetName)),
		jen.Id(codegen.NextLenName).Op(":=").Lit(0),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id(codegen.ActiveLenName), jen.Id("i").Op("++")).Block(
			jen.Switch(jen.Id(codegen.CurrentName).Index(jen.Id("i"))).Block(c.generateStateCases(name, ir)...),
		),
		jen.If(jen.Id(codegen.NextLenName).Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
		jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Op("=").List(jen.Id(codegen.NextName), jen.Id(codegen.CurrentName)),
		jen.Id(codegen.ActiveLenName).Op("=").Id(codegen.NextLenName),
	}
	body = append(body,
		jen.For(jen.Id(codegen.OffsetName).Op(":=").Lit(0), jen.Id(codegen.OffsetName).Op("<").Id(codegen.InputLenName), jen.Id(codegen.OffsetName).Op("++")).Block(loopBody...),
	)

	terminals := ir.SortedTerminals()
	caseLabels := make([]jen.Code, len(terminals))
	for i, id := range terminals {
		caseLabels[i] = jen.Id(stateIdent(name, id))
	}
	body = append(body,
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id(codegen.ActiveLenName), jen.Id("i").Op("++")).Block(
			jen.Switch(jen.Id(codegen.CurrentName).Index(jen.Id("i"))).Block(
				jen.Case(caseLabels...).Block(jen.Return(jen.True())),
			),
		),
		jen.Return(jen.False()),
	)

	return body
}

// generateStateCases builds one switch case per state, each enqueuing
// every transition target whose condition is satisfied and which has
// not already been added this generation.
func (c *Compiler) generateStateCases(name string, ir *EmittableIR) []jen.Code {
	cases := make([]jen.Code, ir.StateCount)
	for s := 0; s < ir.StateCount; s++ {
		var stmts []jen.Code
		for _, tr := range ir.Advance[s] {
			target := stateIdent(name, tr.Target)
			enqueue := jen.If(jen.Id(codegen.ScratchGenName).Index(jen.Id(target)).Op("!=").Id(codegen.GenerationName)).Block(
				jen.Id(codegen.ScratchGenName).Index(jen.Id(target)).Op("=").Id(codegen.GenerationName),
				jen.Id(codegen.NextName).Index(jen.Id(codegen.NextLenName)).Op("=").Id(target),
				jen.Id(codegen.NextLenName).Op("++"),
			)
			stmts = append(stmts, jen.If(conditionPredicate(tr.Condition)).Block(enqueue))
		}
		cases[s] = jen.Case(jen.Id(stateIdent(name, s))).Block(stmts...)
	}
	return cases
}

// generateStateEnum declares the per-matcher state tag type and one
// constant per dense state index, per §4.6's "state identifier set".
func (c *Compiler) generateStateEnum() {
	name := c.config.Name
	typeName := stateTypeName(name)
	c.file.Type().Id(typeName).Int()
	c.file.Line()

	defs := make([]jen.Code, c.ir.StateCount)
	for i := 0; i < c.ir.StateCount; i++ {
		if i == 0 {
			defs[i] = jen.Id(stateIdent(name, i)).Id(typeName).Op("=").Iota()
		} else {
			defs[i] = jen.Id(stateIdent(name, i))
		}
	}
	c.file.Const().Defs(defs...)
	c.file.Line()
}
