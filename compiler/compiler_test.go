package compiler

import (
	"testing"

	"github.com/simondevenish/EmberScript/ast"
	"github.com/simondevenish/EmberScript/token"
)

func assertBytecodeEquals(t *testing.T, got Bytecode, want Bytecode) {
	t.Helper()

	if len(got.Instructions) != len(want.Instructions) {
		t.Fatalf("instruction length mismatch - got: %v, want: %v", got.Instructions, want.Instructions)
	}
	for i, instruction := range got.Instructions {
		if instruction != want.Instructions[i] {
			t.Errorf("instruction mismatch at index %d - got: %v, want: %v", i, got.Instructions, want.Instructions)
			break
		}
	}
	for i, constant := range got.ConstantsPool {
		if constant != want.ConstantsPool[i] {
			t.Errorf("constant mismatch at index %d - got: %v, want: %v", i, constant, want.ConstantsPool[i])
		}
	}
}

func TestASTCompileArithmetic(t *testing.T) {
	tests := []struct {
		name             string
		statements       []ast.Stmt
		expectedBytecode Bytecode
	}{
		{
			name: "Binary Addition",
			statements: []ast.Stmt{
				ast.ExpressionStmt{
					Expression: ast.Binary{
						Left:     ast.Literal{Value: 5.0},
						Operator: token.CreateToken(token.ADD, 0, 0),
						Right:    ast.Literal{Value: 1.0},
					},
				},
			},
			expectedBytecode: Bytecode{
				Instructions:  []byte{byte(LOAD_CONST), 0, byte(LOAD_CONST), 1, byte(ADD), byte(POP), byte(EOF)},
				ConstantsPool: []any{5.0, 1.0},
			},
		},
		{
			name: "Binary Multiplication",
			statements: []ast.Stmt{
				ast.ExpressionStmt{
					Expression: ast.Binary{
						Left:     ast.Literal{Value: 5.0},
						Operator: token.CreateToken(token.MULT, 0, 0),
						Right:    ast.Literal{Value: 3.0},
					},
				},
			},
			expectedBytecode: Bytecode{
				Instructions:  []byte{byte(LOAD_CONST), 0, byte(LOAD_CONST), 1, byte(MUL), byte(POP), byte(EOF)},
				ConstantsPool: []any{5.0, 3.0},
			},
		},
		{
			name: "Unary Negation",
			statements: []ast.Stmt{
				ast.ExpressionStmt{
					Expression: ast.Unary{
						Operator: token.CreateToken(token.SUB, 0, 0),
						Right:    ast.Literal{Value: 5.0},
					},
				},
			},
			expectedBytecode: Bytecode{
				Instructions:  []byte{byte(LOAD_CONST), 0, byte(NEG), byte(POP), byte(EOF)},
				ConstantsPool: []any{5.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiler := NewASTCompiler()
			bytecode, err := compiler.CompileAST(tt.statements)
			if err != nil {
				t.Fatalf("compilation error: %s", err.Error())
			}
			assertBytecodeEquals(t, bytecode, tt.expectedBytecode)
		})
	}
}

func TestCompilePrintCall(t *testing.T) {
	statements := []ast.Stmt{
		ast.ExpressionStmt{
			Expression: ast.FunctionCall{
				Callee: token.CreateLiteralToken(token.IDENTIFIER, nil, "print", 0, 0),
				Arguments: []ast.Expression{
					ast.Binary{
						Left:     ast.Literal{Value: 2.0},
						Operator: token.CreateToken(token.ADD, 0, 0),
						Right:    ast.Literal{Value: 10.0},
					},
				},
			},
		},
	}

	compiler := NewASTCompiler()
	bytecode, err := compiler.CompileAST(statements)
	if err != nil {
		t.Fatalf("compilation error: %s", err.Error())
	}

	want := Bytecode{
		Instructions:  []byte{byte(LOAD_CONST), 0, byte(LOAD_CONST), 1, byte(ADD), byte(PRINT), byte(POP), byte(EOF)},
		ConstantsPool: []any{2.0, 10.0},
	}
	assertBytecodeEquals(t, bytecode, want)
}

func TestCompileVarStmtAndVariableAccess(t *testing.T) {
	name := token.CreateLiteralToken(token.IDENTIFIER, nil, "x", 0, 0)
	statements := []ast.Stmt{
		ast.VarStmt{Name: name, Initializer: ast.Literal{Value: 5.0}},
		ast.ExpressionStmt{Expression: ast.Variable{Name: name}},
	}

	compiler := NewASTCompiler()
	bytecode, err := compiler.CompileAST(statements)
	if err != nil {
		t.Fatalf("compilation error: %s", err.Error())
	}

	want := Bytecode{
		Instructions:  []byte{byte(LOAD_CONST), 0, byte(STORE_VAR), 0, byte(LOAD_VAR), 0, byte(POP), byte(EOF)},
		ConstantsPool: []any{5.0},
	}
	assertBytecodeEquals(t, bytecode, want)
}

func TestCompileUndefinedVariableFails(t *testing.T) {
	statements := []ast.Stmt{
		ast.ExpressionStmt{Expression: ast.Variable{Name: token.CreateLiteralToken(token.IDENTIFIER, nil, "nope", 0, 0)}},
	}

	compiler := NewASTCompiler()
	_, err := compiler.CompileAST(statements)
	if err == nil {
		t.Fatalf("expected an error compiling access to an undefined variable")
	}
}

func TestDisassembleBytecode(t *testing.T) {
	statements := []ast.Stmt{
		ast.ExpressionStmt{
			Expression: ast.Binary{
				Left:     ast.Literal{Value: 5.0},
				Operator: token.CreateToken(token.ADD, 0, 0),
				Right:    ast.Literal{Value: 3.0},
			},
		},
	}

	compiler := NewASTCompiler()
	if _, err := compiler.CompileAST(statements); err != nil {
		t.Fatalf("compilation error: %s", err.Error())
	}

	result, err := compiler.DisassembleBytecode(false, "")
	if err != nil {
		t.Fatalf("disassembly error: %s", err.Error())
	}

	want := "0000 LOAD_CONST 0\n0002 LOAD_CONST 1\n0004 ADD\n0005 POP\n0006 EOF\n"
	if result != want {
		t.Errorf("\n\nwant:\n%s\n\ngot:\n%s", want, result)
	}
}
