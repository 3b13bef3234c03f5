package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/simondevenish/EmberScript/compiler"
	"github.com/simondevenish/EmberScript/lexer"
	"github.com/simondevenish/EmberScript/parser"
	"github.com/simondevenish/EmberScript/vm"
)

// runCompiledCmd executes a source file through the bytecode compiler and VM.
type runCompiledCmd struct{}

func (*runCompiledCmd) Name() string     { return "runC" }
func (*runCompiledCmd) Synopsis() string { return "Execute EmberScript code through the bytecode compiler and VM" }
func (*runCompiledCmd) Usage() string {
	return `runC <file>:
  Execute EmberScript code by compiling it to bytecode and running it on the VM.
`
}
func (r *runCompiledCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	astCompiler := compiler.NewASTCompiler()
	machine := vm.New()
	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
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
	bytecode, err := astCompiler.CompileAST(statements)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	err = machine.Run(bytecode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
