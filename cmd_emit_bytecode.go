package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/simondevenish/EmberScript/compiler"
	"github.com/simondevenish/EmberScript/lexer"
	"github.com/simondevenish/EmberScript/parser"
)

// emitBytecodeCmd compiles a source file and writes its bytecode chunk (and,
// optionally, a disassembly) to disk without executing anything.
type emitBytecodeCmd struct {
	disassemble  bool
	dumpBytecode bool
	filePath     string
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the bytecode representation of a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `ember emit <file>`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", true, "disassemble the bytecode and dump it to a text file.")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", true, "Writes the encoded bytecode chunk to a .embc file")
	f.StringVar(&cmd.filePath, "file path", "/", "Not read: output files are always named after the source file (<name>.dembc and <name>.embc).")
}

func (r *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	sourceFile := args[0]
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file:\n\t%v", err.Error())
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lexing error: %v\n", err)
		return subcommands.ExitFailure
	}

	p := parser.Make(tokens)
	statements, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		fmt.Fprintf(os.Stderr, "💥 Parsing error:\n")
		for _, pErr := range parseErrs {
			fmt.Fprintf(os.Stderr, "\t%v\n", pErr)
		}
		return subcommands.ExitFailure
	}

	astCompiler := compiler.NewASTCompiler()
	_, cErr := astCompiler.CompileAST(statements)
	if cErr != nil {
		fmt.Fprintf(os.Stderr, "💥 Compilation error:\n\t%v\n", cErr)
		return subcommands.ExitFailure
	}

	parts := strings.Split(sourceFile, ".")
	fileName := parts[0]

	if r.disassemble {
		_, dErr := astCompiler.DisassembleBytecode(true, fileName)
		if dErr != nil {
			fmt.Fprintf(os.Stderr, "💥 Bytecode disassemble error:\n\t%s", dErr.Error())
			return subcommands.ExitFailure
		}
	}

	if r.dumpBytecode {
		err := astCompiler.DumpBytecode(fileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 Dump bytecode error:\n\t%s", err.Error())
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
