// Package compiler implements the core regex compilation pipeline:
// tokenize, parse to AST, lower to an NFA, simplify it, derive the
// emittable IR, and render a specialized Go matcher from it.
package compiler

import (
	"fmt"
	"go/format"
	"os"

	"github.com/dave/jennifer/jen"
)

// Config holds the configuration for one pattern-to-matcher compilation.
type Config struct {
	Pattern    string
	Name       string
	OutputFile string
	Package    string
	Verbose    bool
}

// Compiler drives the pipeline for a single Config and accumulates the
// generated Go source in a jen.File.
type Compiler struct {
	config Config
	file   *jen.File
	logger *Logger

	ast *RegexAst
	nfa *NFA
	ir  *EmittableIR
}

// New tokenizes, parses, builds and simplifies the NFA, and derives the
// IR for config.Pattern. It returns an error if the pattern is invalid;
// no partial Compiler is returned on failure.
func New(config Config) (*Compiler, error) {
	c := &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
	if err := c.compilePattern(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Compiler) compilePattern() error {
	c.logger.Section("Tokenize & Parse")
	ast, err := Parse(c.config.Pattern)
	if err != nil {
		return fmt.Errorf("failed to parse pattern %q: %w", c.config.Pattern, err)
	}
	c.ast = ast
	c.logger.Log("AST built for pattern: %s", c.config.Pattern)

	c.logger.Section("NFA Construction")
	nfa := BuildNFA(ast)
	c.logger.Log("constructed NFA with %d states", len(nfa.States))
	c.nfa = nfa

	c.logger.Section("NFA Simplification")
	Simplify(nfa)
	c.logger.Log("simplified NFA: %d states, %d start state(s), literal prefix %q",
		len(nfa.States), len(nfa.Start), string(nfa.Prefix))

	c.ir = BuildIR(nfa)
	c.logger.Log("emittable IR: %d states, initial active count %d, %d terminal state(s)",
		c.ir.StateCount, c.ir.InitialCount, len(c.ir.Terminal))
	return nil
}

// AST returns the normalized regex syntax tree built for this pattern.
func (c *Compiler) AST() *RegexAst {
	return c.ast
}

// NFA returns the simplified automaton's public read-only view, for
// graph export and introspection. Callers must not mutate it.
func (c *Compiler) NFA() *NFA {
	return c.nfa
}

// method returns a jen.Statement for declaring a method on the
// generated matcher struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Generate renders the compiled pattern into Go source and writes it,
// gofmt-formatted, to config.OutputFile.
func (c *Compiler) Generate() error {
	c.logger.Section("Code Generation")

	c.file.Comment(fmt.Sprintf("Code generated by rexforge for pattern: %s", c.config.Pattern))
	c.file.Comment("DO NOT EDIT.")
	c.file.Line()

	c.generateStateEnum()

	c.file.Type().Id(c.config.Name).Struct()
	c.file.Line()

	c.file.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	c.file.Line()

	c.method("MatchString").
		Params(jen.Id("input").String()).
		Params(jen.Bool()).
		Block(c.generateMatchString()...)

	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save generated file: %w", err)
	}
	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format generated file: %w", err)
	}

	c.logger.Log("wrote %s", c.config.OutputFile)
	return nil
}

// formatFile reads a file, formats it with go/format, and writes it
// back in place.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	formatted, err := format.Source(src)
	if err != nil {
		return err
	}
	return os.WriteFile(path, formatted, 0644)
}
