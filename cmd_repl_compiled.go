package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/simondevenish/EmberScript/compiler"
	"github.com/simondevenish/EmberScript/lexer"
	"github.com/simondevenish/EmberScript/parser"
	"github.com/simondevenish/EmberScript/token"
	"github.com/simondevenish/EmberScript/vm"
)

type replCompiledCmd struct {
	disassemble  bool
	dumpBytecode bool
	dumpAST      bool
}

func (*replCompiledCmd) Name() string { return "cRepl" }
func (*replCompiledCmd) Synopsis() string {
	return "Start a REPL session backed by the bytecode compiler and VM"
}
func (*replCompiledCmd) Usage() string {
	return `ember cRepl`
}

func (cmd *replCompiledCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", false, "disassemble the bytecode and dump it to a .dembc file")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", false, "Writes the encoded bytecode to a .embc file")
	f.BoolVar(&cmd.dumpAST, "dumpAST", false, "Writes the AST as JSON to a file")
	f.BoolVar(&cmd.disassemble, "di", false, "Shorthand for disassemble.")
	f.BoolVar(&cmd.dumpBytecode, "du", false, "Shorthand for dumpBytecode")
	f.BoolVar(&cmd.dumpAST, "da", false, "Shorthand for dumpAST.")
}

func (cmd *replCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\nWelcome to the EmberScript programming language!")
	fmt.Println("")

	fmt.Print(`
	███████╗███╗   ███╗██████╗ ███████╗██████╗
	██╔════╝████╗ ████║██╔══██╗██╔════╝██╔══██╗
	█████╗  ██╔████╔██║██████╔╝█████╗  ██████╔╝
	██╔══╝  ██║╚██╔╝██║██╔══██╗██╔══╝  ██╔══██╗
	███████╗██║ ╚═╝ ██║██████╔╝███████╗██║  ██║
	╚══════╝╚═╝     ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝

`)

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	astCompiler := compiler.NewASTCompiler()
	machine := vm.New()
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %s", err.Error())
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		lex := lexer.New(source)
		tokens, err := lex.Scan()
		if err != nil {
			fmt.Println(err)
			buffer.Reset()
			continue
		}

		if !isInputReady(tokens) {
			continue
		}

		p := parser.Make(tokens)
		statements, parseErrs := p.Parse()
		if len(parseErrs) > 0 {
			// If all parse errors are syntax errors that occur at the position of the EOF token,
			// it means that the user has not finished typing their input yet.
			// We should wait for more input instead of showing an error.
			if allParseErrorsAtEOF(parseErrs, tokens[len(tokens)-1]) {
				continue
			}
			fmt.Fprintf(os.Stdout, "Parse error: ")
			for _, pErr := range parseErrs {
				fmt.Fprintf(os.Stdout, "%v\n", pErr)
			}
			buffer.Reset()
			continue
		}

		// NOTE: previously compiled statements are recompiled on every line in the
		// REPL, since the flat global-slot table carries no notion of incremental
		// linking. Fine for an interactive session.
		bytecode, err := astCompiler.CompileAST(statements)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			buffer.Reset()
			continue
		}

		if cmd.disassemble {
			_, err := astCompiler.DisassembleBytecode(true, "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "💥 Bytecode disassemble error:\n\t%s", err.Error())
				continue
			}
		}
		if cmd.dumpBytecode {
			err := astCompiler.DumpBytecode("")
			if err != nil {
				fmt.Fprintf(os.Stderr, "💥 Dump bytecode error:\n\t%s", err.Error())
			}
		}
		if cmd.dumpAST {
			err := parser.WriteASTJSONToFile(statements, "ast.json")
			if err != nil {
				fmt.Fprintf(os.Stderr, "💥 Dump AST error:\n\t%s", err.Error())
				continue
			}
		}

		runtimeErr := machine.Run(bytecode)
		if runtimeErr != nil {
			fmt.Fprintln(os.Stderr, runtimeErr.Error())
			buffer.Reset()
			continue
		}
		buffer.Reset()
	}
}

// isInputReady checks if the input is ready to be parsed and executed. It checks for balanced
// braces, and also checks if the last non-EOF token is an operator or a keyword that expects
// more input.
//
// For example, if the user types `if (x > 5) {`, the REPL should wait for more input until the
// user finishes the block with a `}`.
func isInputReady(tokens []token.Token) bool {
	braceBalance := 0
	for _, tok := range tokens {
		switch tok.TokenType {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
	}

	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	if last == nil {
		return true
	}

	switch last.TokenType {
	case token.ASSIGN,
		token.ADD,
		token.SUB,
		token.MULT,
		token.DIV,
		token.BANG,
		token.EQUAL_EQUAL,
		token.NOT_EQUAL,
		token.LESS,
		token.LESS_EQUAL,
		token.LARGER,
		token.LARGER_EQUAL,
		token.COMMA,
		token.LPA,
		token.LCUR,
		token.IF,
		token.ELSE,
		token.WHILE,
		token.FOR,
		token.FUNC,
		token.RETURN,
		token.VAR,
		token.CONST,
		token.AND_AND,
		token.OR_OR:
		return false
	}

	return true
}

// lastNonEOF returns the last non-EOF token from the list of tokens. If all tokens are EOF, it returns nil.
func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].TokenType != token.EOF {
			return &tokens[i]
		}
	}
	return nil
}

// allParseErrorsAtEOF checks if all parse errors are syntax errors that occur at the position of the EOF token.
func allParseErrorsAtEOF(parseErrs []error, eof token.Token) bool {
	for _, parseErr := range parseErrs {
		syntaxErr, ok := parseErr.(parser.SyntaxError)
		if !ok {
			return false
		}
		if syntaxErr.Line != eof.Line || syntaxErr.Column != eof.Column {
			return false
		}
	}
	return len(parseErrs) > 0
}
