// Command rexforge compiles a regular expression into a standalone Go
// matcher source file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/KromDaniel/rexforge/pkg/rexforge"
)

const appName = "rexforge"

var (
	pattern  = flag.String("pattern", "", "regular expression to compile (required)")
	name     = flag.String("name", "Matcher", "Go identifier for the generated matcher type")
	out      = flag.String("out", "", "output file path (required unless -dot is used)")
	pkg      = flag.String("pkg", "main", "package clause of the generated file")
	dot      = flag.Bool("dot", false, "print a Graphviz dot rendering of the automaton instead of generating Go source")
	verbose  = flag.Bool("v", false, "log pipeline progress to stderr")
	helpFlag = flag.Bool("help", false, "show help message")
)

func main() {
	flag.Parse()

	if *helpFlag {
		printHelp()
		return
	}

	if *pattern == "" {
		fmt.Fprintf(os.Stderr, "Error: -pattern flag is required\n\n")
		printHelp()
		os.Exit(1)
	}

	opts := rexforge.Options{
		Pattern:    *pattern,
		Name:       *name,
		OutputFile: *out,
		Package:    *pkg,
		Verbose:    *verbose,
	}

	if *dot {
		graph, err := rexforge.DOT(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error compiling pattern: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(graph)
		return
	}

	if *out == "" {
		fmt.Fprintf(os.Stderr, "Error: -out flag is required unless -dot is set\n\n")
		printHelp()
		os.Exit(1)
	}

	if err := rexforge.Compile(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling pattern: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf("Usage: %s -pattern <regex> -out <file.go> [OPTIONS]\n\n", appName)
	fmt.Println("Compiles a regular expression into a standalone Go matcher source file.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s -pattern='[a-z]+@[a-z]+' -name=Email -out=email.go\n", appName)
	fmt.Printf("  %s -pattern='a|b' -dot\n", appName)
}
