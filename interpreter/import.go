package interpreter

import (
	"fmt"
	"os"

	"github.com/simondevenish/EmberScript/ast"
	"github.com/simondevenish/EmberScript/lexer"
	"github.com/simondevenish/EmberScript/parser"
)

// loadImport reads the file at path, lexes and parses it, and returns its
// top-level statements for inlining into the importing scope.
func loadImport(path string) ([]ast.Stmt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		return nil, err
	}

	p := parser.Make(tokens)
	statements, errs := p.Parse()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %s", path, errs[0].Error())
	}
	return statements, nil
}
