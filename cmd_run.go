package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/simondevenish/EmberScript/interpreter"
	"github.com/simondevenish/EmberScript/lexer"
	"github.com/simondevenish/EmberScript/parser"
)

// runCmd executes a source file with the tree-walking interpreter.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute EmberScript code from a source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute EmberScript code with the tree-walking interpreter.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	evaluator := interpreter.Make()
	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lexing error: %v\n", err)
		return subcommands.ExitFailure
	}
	p := parser.Make(tokens)
	statements, errs := p.Parse()
	if len(errs) > 0 {
		for _, parseErr := range errs {
			fmt.Fprintln(os.Stderr, parseErr)
		}
		return subcommands.ExitFailure
	}
	evaluator.Interpret(statements)
	return subcommands.ExitSuccess
}
