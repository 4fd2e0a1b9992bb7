// Package rexforge compiles a regular expression into a standalone,
// specialized Go source file implementing it as a boolean matcher —
// no pattern interpretation happens at match time.
package rexforge

import (
	"fmt"

	"github.com/KromDaniel/rexforge/internal/compiler"
)

// Options configures one call to Compile.
type Options struct {
	// Pattern is the regular expression to compile.
	Pattern string
	// Name is the Go identifier used for the generated matcher type
	// and its exported Compiled<Name> instance, e.g. "Email".
	Name string
	// OutputFile is the path the generated source is written to.
	OutputFile string
	// Package is the package clause of the generated file.
	Package string
	// Verbose turns on pipeline logging to stderr.
	Verbose bool
}

// Validate reports whether opts is complete enough to compile.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("rexforge: Pattern must not be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("rexforge: Name must not be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("rexforge: OutputFile must not be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("rexforge: Package must not be empty")
	}
	return nil
}

// Compile parses opts.Pattern, builds and simplifies its NFA, and
// writes a generated Go matcher to opts.OutputFile.
func Compile(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	c, err := compiler.New(compiler.Config{
		Pattern:    opts.Pattern,
		Name:       opts.Name,
		OutputFile: opts.OutputFile,
		Package:    opts.Package,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return err
	}
	return c.Generate()
}

// DOT compiles opts.Pattern and returns a Graphviz "dot" rendering of
// its simplified automaton, without writing any Go source.
func DOT(opts Options) (string, error) {
	if opts.Pattern == "" {
		return "", fmt.Errorf("rexforge: Pattern must not be empty")
	}
	if opts.Name == "" {
		opts.Name = "Matcher"
	}
	if opts.Package == "" {
		opts.Package = "main"
	}
	c, err := compiler.New(compiler.Config{
		Pattern: opts.Pattern,
		Name:    opts.Name,
		Package: opts.Package,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return "", err
	}
	return compiler.DOT(c.NFA()), nil
}
