package compiler

import (
	"testing"

	"github.com/simondevenish/EmberScript/ast"
	"github.com/simondevenish/EmberScript/token"
)

func TestCompilerVariableBehavior(t *testing.T) {
	tests := []struct {
		name       string
		statements []ast.Stmt
		hasError   bool
	}{
		{
			name: "var declared without initializer then accessed -> success, reads null",
			statements: []ast.Stmt{
				ast.VarStmt{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0)},
				ast.ExpressionStmt{Expression: ast.Variable{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0)}},
			},
			hasError: false,
		},
		{
			name: "var declared with initializer then accessed -> success",
			statements: []ast.Stmt{
				ast.VarStmt{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0), Initializer: ast.Literal{Value: 0.0}},
				ast.ExpressionStmt{Expression: ast.Variable{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0)}},
			},
			hasError: false,
		},
		{
			name: "access undeclared variable -> error",
			statements: []ast.Stmt{
				ast.ExpressionStmt{Expression: ast.Variable{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "c", 0, 0)}},
			},
			hasError: true,
		},
		{
			name: "redeclaration of variable reuses its slot -> success",
			statements: []ast.Stmt{
				ast.VarStmt{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0)},
				ast.VarStmt{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0), Initializer: ast.Literal{Value: 9.0}},
			},
			hasError: false,
		},
		{
			name: "assignment to existing variable -> success",
			statements: []ast.Stmt{
				ast.VarStmt{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0)},
				ast.ExpressionStmt{Expression: ast.Assign{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "a", 0, 0), Value: ast.Literal{Value: 1.0}}},
			},
			hasError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiler := NewASTCompiler()
			_, err := compiler.CompileAST(tt.statements)
			if tt.hasError && err == nil {
				t.Errorf("expected error but got nil")
			}
			if !tt.hasError && err != nil {
				t.Errorf("unexpected compilation error: %s", err.Error())
			}
		})
	}
}

func TestSymbolTableOverflow(t *testing.T) {
	st := NewSymbolTable()
	for i := 0; i < maxSlots; i++ {
		st.GetOrAdd(string(rune('a'+i%26))+string(rune(i)), false)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic adding a 257th distinct name")
		}
	}()
	st.GetOrAdd("one-too-many", false)
}
