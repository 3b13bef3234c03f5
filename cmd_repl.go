package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/simondevenish/EmberScript/interpreter"
	"github.com/simondevenish/EmberScript/lexer"
	"github.com/simondevenish/EmberScript/parser"
)

// replCmd implements the tree-walking interpreter's REPL.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive REPL for the tree-walking interpreter" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session backed by the tree-walking interpreter.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func repl(rl *readline.Instance) {
	evaluator := interpreter.Make()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}

		lex := lexer.New(line)
		tokens, lexErr := lex.Scan()
		if lexErr != nil {
			fmt.Println(lexErr)
			continue
		}

		p := parser.Make(tokens)
		statements, parseErrs := p.Parse()
		if len(parseErrs) > 0 {
			for _, pErr := range parseErrs {
				fmt.Fprintln(os.Stderr, pErr)
			}
			continue
		}

		evaluator.Interpret(statements)
	}
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\nWelcome to EmberScript!")

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	repl(rl)
	return subcommands.ExitSuccess
}
