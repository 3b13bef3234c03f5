package compiler

// This file implements the ASTCompiler, which compiles the abstract syntax tree (AST) directly to bytecode
// targeting a single flat global-variable array: there are no locals or scope depths, matching the
// one-pass, single-slot-table design the VM addresses with one-byte operands.

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/simondevenish/EmberScript/ast"
	"github.com/simondevenish/EmberScript/token"
)

// ASTCompiler is a visitor that compiles AST nodes directly to bytecode.
// It implements both ast.ExpressionVisitor and ast.StmtVisitor interfaces
// to traverse and compile the abstract syntax tree to bytecode.
type ASTCompiler struct {
	bytecode Bytecode
	symbols  *SymbolTable

	// importing tracks the import paths currently being inlined, so a cycle
	// (A imports B, B imports A) is rejected instead of recursing forever.
	importing map[string]bool
}

// NewASTCompiler creates a new AST-to-bytecode compiler.
func NewASTCompiler() *ASTCompiler {
	return &ASTCompiler{
		bytecode: Bytecode{
			Instructions:  Instructions{},
			ConstantsPool: []any{},
		},
		symbols:   NewSymbolTable(),
		importing: make(map[string]bool),
	}
}

// DumpBytecode writes the compiled bytecode to a file with a `.embc` extension.
func (ac *ASTCompiler) DumpBytecode(filePath string) error {
	if filePath == "" {
		filePath = "bytecode.embc"
	} else {
		filePath = filePath + ".embc"
	}
	fDescriptor, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating bytecode file: %s", err.Error())
	}
	defer fDescriptor.Close()

	return WriteChunk(fDescriptor, ac.bytecode)
}

// DisassembleBytecode disassembles the compiled bytecode to a human readable format
// and optionally saves it to disk.
func (ac *ASTCompiler) DisassembleBytecode(saveToDisk bool, filePath string) (string, error) {
	var builder strings.Builder
	ip := 0

	for ip < len(ac.bytecode.Instructions) {
		op := Opcode(ac.bytecode.Instructions[ip])
		def, err := Get(op)
		if err != nil {
			return "", err
		}

		width := OPCODE_TOTAL_BYTES
		for _, w := range def.OperandWidths {
			width += w
		}
		if ip+width > len(ac.bytecode.Instructions) {
			width = len(ac.bytecode.Instructions) - ip
		}

		line, err := DisassembleInstruction(ac.bytecode.Instructions[ip : ip+width])
		if err != nil {
			return "", err
		}
		builder.WriteString(fmt.Sprintf("%04d %s\n", ip, line))
		ip += width
	}

	disassembled := builder.String()
	if saveToDisk {
		if filePath == "" {
			filePath = "bytecode.dembc"
		} else {
			filePath = filePath + ".dembc"
		}
		fDescriptor, err := os.Create(filePath)
		if err != nil {
			return "", fmt.Errorf("error creating disassembled bytecode file: %s", err.Error())
		}
		defer fDescriptor.Close()
		fDescriptor.WriteString(disassembled)
	}
	return disassembled, nil
}

// CompileAST compiles a slice of statements into bytecode, appending to any
// chunk already produced by a previous call on the same compiler (the
// compiled REPL calls it once per input line).
func (ac *ASTCompiler) CompileAST(statements []ast.Stmt) (b Bytecode, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case SemanticError:
				err = v
			case DeveloperError:
				err = v
			default:
				panic(r)
			}
		}
	}()

	// If a previous compilation left an EOF sentinel at the end, drop it so
	// the new statements are appended ahead of a single trailing EOF.
	if n := len(ac.bytecode.Instructions); n > 0 && ac.bytecode.Instructions[n-1] == byte(EOF) {
		ac.bytecode.Instructions = ac.bytecode.Instructions[:n-1]
	}

	for _, stmt := range statements {
		stmt.Accept(ac)
	}

	ac.emit(EOF)
	return ac.bytecode, nil
}

// VisitBinary handles binary expressions.
func (ac *ASTCompiler) VisitBinary(binary ast.Binary) any {
	binary.Left.Accept(ac)
	binary.Right.Accept(ac)

	switch binary.Operator.TokenType {
	case token.ADD:
		ac.emit(ADD)
	case token.SUB:
		ac.emit(SUB)
	case token.MULT:
		ac.emit(MUL)
	case token.DIV:
		ac.emit(DIV)
	case token.MOD:
		ac.emit(MOD)
	case token.EQUAL_EQUAL:
		ac.emit(EQ)
	case token.NOT_EQUAL:
		ac.emit(NEQ)
	case token.LESS:
		ac.emit(LT)
	case token.LARGER:
		ac.emit(GT)
	case token.LESS_EQUAL:
		ac.emit(LTE)
	case token.LARGER_EQUAL:
		ac.emit(GTE)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unsupported binary operator '%s'", binary.Operator.Lexeme)})
	}
	return nil
}

// VisitUnary handles unary expressions (operators: -, !).
func (ac *ASTCompiler) VisitUnary(unary ast.Unary) any {
	unary.Right.Accept(ac)

	switch unary.Operator.TokenType {
	case token.SUB:
		ac.emit(NEG)
	case token.BANG:
		ac.emit(NOT)
	}
	return nil
}

// VisitLiteral adds the literal value to the constants pool and emits
// LOAD_CONST.
func (ac *ASTCompiler) VisitLiteral(literal ast.Literal) any {
	ac.addConstant(literal.Value)
	return nil
}

// VisitGrouping compiles the parenthesized inner expression.
func (ac *ASTCompiler) VisitGrouping(grouping ast.Grouping) any {
	grouping.Expression.Accept(ac)
	return nil
}

// VisitVariableExpression compiles variable access, emitting LOAD_VAR with
// the name's global slot as the operand.
func (ac *ASTCompiler) VisitVariableExpression(variable ast.Variable) any {
	identifier := variable.Name.Lexeme

	slot, ok := ac.symbols.Resolve(identifier)
	if !ok {
		panic(SemanticError{Message: fmt.Sprintf("name '%s' is not defined", identifier)})
	}
	ac.emit(LOAD_VAR, slot)
	return nil
}

// VisitAssignExpression compiles an assignment expression: the right-hand
// side is compiled first, then STORE_VAR writes it to the variable's slot.
// Assignment is a statement in this core: no value is left on the stack.
func (ac *ASTCompiler) VisitAssignExpression(assign ast.Assign) any {
	name := assign.Name.Lexeme

	assign.Value.Accept(ac)

	slot, ok := ac.symbols.Resolve(name)
	if !ok {
		slot = ac.symbols.GetOrAdd(name, false)
	}
	ac.emit(STORE_VAR, slot)
	return nil
}

// VisitVarStmt handles variable declarations, reserving a global slot for
// the name and storing the (possibly null) initializer into it.
func (ac *ASTCompiler) VisitVarStmt(varStmt ast.VarStmt) any {
	slot := ac.symbols.GetOrAdd(varStmt.Name.Lexeme, false)

	if varStmt.Initializer != nil {
		varStmt.Initializer.Accept(ac)
	} else {
		ac.addConstant(nil)
	}
	ac.emit(STORE_VAR, slot)
	return nil
}

// VisitLogicalExpression compiles `&&`/`||`. Per this language's semantics
// both sides are always evaluated (short-circuiting is not required): both
// operands are compiled unconditionally and combined with a single AND/OR
// opcode, which enforces the boolean-operand rule at runtime.
func (ac *ASTCompiler) VisitLogicalExpression(logical ast.Logical) any {
	logical.Left.Accept(ac)
	logical.Right.Accept(ac)

	switch logical.Operator.TokenType {
	case token.AND_AND:
		ac.emit(AND)
	case token.OR_OR:
		ac.emit(OR)
	}
	return nil
}

// VisitExpressionStmt compiles the expression then emits POP, since an
// expression statement's value is never consumed. An assignment leaves no
// value on the stack, so no POP follows it.
func (ac *ASTCompiler) VisitExpressionStmt(exprStmt ast.ExpressionStmt) any {
	exprStmt.Expression.Accept(ac)
	if _, isAssign := exprStmt.Expression.(ast.Assign); !isAssign {
		ac.emit(POP)
	}
	return nil
}

// VisitBlockStmt compiles each statement in the block in order. There is no
// scope tracking: this core has a single flat global namespace.
func (ac *ASTCompiler) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	for _, stmt := range blockStmt.Statements {
		stmt.Accept(ac)
	}
	return nil
}

// VisitIfStmt compiles an if/else-if/else chain using backpatched jumps.
func (ac *ASTCompiler) VisitIfStmt(ifStmt ast.IfStmt) any {
	ifStmt.Condition.Accept(ac)

	jumpIfFalsePos := ac.emitPlaceholderJump(JUMP_IF_FALSE)

	ifStmt.Then.Accept(ac)

	if ifStmt.Else != nil {
		jumpEndPos := ac.emitPlaceholderJump(JUMP)
		ac.patchJump(jumpIfFalsePos)
		ifStmt.Else.Accept(ac)
		ac.patchJump(jumpEndPos)
	} else {
		ac.patchJump(jumpIfFalsePos)
	}
	return nil
}

// VisitWhileStmt compiles a while loop: condition, conditional exit, body,
// then an unconditional LOOP back to the condition.
func (ac *ASTCompiler) VisitWhileStmt(whileStmt ast.WhileStmt) any {
	loopStart := len(ac.bytecode.Instructions)

	whileStmt.Condition.Accept(ac)
	exitJump := ac.emitPlaceholderJump(JUMP_IF_FALSE)

	whileStmt.Body.Accept(ac)

	ac.emitLoop(loopStart)
	ac.patchJump(exitJump)
	return nil
}

// VisitForStmt compiles `for ( init ; cond ; incr ) body`. Each clause is
// individually optional; an absent condition behaves as a literal `true`.
func (ac *ASTCompiler) VisitForStmt(forStmt ast.ForStmt) any {
	if forStmt.Init != nil {
		forStmt.Init.Accept(ac)
	}

	loopStart := len(ac.bytecode.Instructions)

	if forStmt.Cond != nil {
		forStmt.Cond.Accept(ac)
	} else {
		ac.addConstant(true)
	}
	exitJump := ac.emitPlaceholderJump(JUMP_IF_FALSE)

	forStmt.Body.Accept(ac)

	if forStmt.Incr != nil {
		forStmt.Incr.Accept(ac)
		if _, isAssign := forStmt.Incr.(ast.Assign); !isAssign {
			ac.emit(POP)
		}
	}

	ac.emitLoop(loopStart)
	ac.patchJump(exitJump)
	return nil
}

// VisitFunctionDef reserves the function's name in the symbol table. No
// executable code is emitted here: user-function calls only execute on the
// tree-walking evaluator backend.
func (ac *ASTCompiler) VisitFunctionDef(stmt ast.FunctionDef) any {
	ac.symbols.GetOrAdd(stmt.Name.Lexeme, true)
	return nil
}

// VisitReturnStmt is reserved: the bytecode backend does not model call
// frames, so a return inside compiled code has no executable effect beyond
// compiling its value expression for side effects.
func (ac *ASTCompiler) VisitReturnStmt(stmt ast.ReturnStmt) any {
	if stmt.Value != nil {
		stmt.Value.Accept(ac)
		ac.emit(POP)
	}
	return nil
}

// VisitBreakStmt and VisitContinueStmt: loop unwinding via break/continue is
// not modeled by the bytecode backend, only by the evaluator.
func (ac *ASTCompiler) VisitBreakStmt(stmt ast.BreakStmt) any {
	return nil
}

func (ac *ASTCompiler) VisitContinueStmt(stmt ast.ContinueStmt) any {
	return nil
}

// VisitImportStmt reads the target file, lexes and parses it into a fresh
// AST, then recursively compiles it into this same chunk and symbol table.
// Visited paths are tracked so an import cycle fails compilation instead of
// recursing forever.
func (ac *ASTCompiler) VisitImportStmt(stmt ast.ImportStmt) any {
	path := stmt.Path.Lexeme

	if ac.importing[path] {
		panic(SemanticError{Message: fmt.Sprintf("circular import detected: '%s'", path)})
	}

	statements, err := loadSource(path)
	if err != nil {
		panic(SemanticError{Message: fmt.Sprintf("failed to import '%s': %s", path, err.Error())})
	}

	ac.importing[path] = true
	for _, s := range statements {
		s.Accept(ac)
	}
	delete(ac.importing, path)
	return nil
}

// VisitSwitchStmt: switch/case is parsed but neither backend generates code
// or evaluates it; the node is kept reserved.
func (ac *ASTCompiler) VisitSwitchStmt(stmt ast.SwitchStmt) any {
	return nil
}

// VisitFunctionCall compiles a call expression. `print` is special-cased to
// its own opcode; other callees resolve to a symbol slot and emit CALL,
// which the VM currently accepts as a reserved no-op (see the language's
// design notes on call-frame-less bytecode).
func (ac *ASTCompiler) VisitFunctionCall(call ast.FunctionCall) any {
	name := call.Callee.Lexeme

	if name == "print" {
		for _, arg := range call.Arguments {
			arg.Accept(ac)
		}
		ac.emit(PRINT)
		return nil
	}

	for _, arg := range call.Arguments {
		arg.Accept(ac)
	}

	funcIndex, ok := ac.symbols.Resolve(name)
	if !ok {
		funcIndex = ac.symbols.GetOrAdd(name, true)
	}
	ac.emit(CALL, funcIndex, len(call.Arguments))
	return nil
}

// VisitArrayLiteral compiles `[e, e, ...]` by creating an empty array then
// pushing each element in turn.
func (ac *ASTCompiler) VisitArrayLiteral(array ast.ArrayLiteral) any {
	ac.emit(NEW_ARRAY)
	for _, elem := range array.Elements {
		ac.emit(DUP)
		elem.Accept(ac)
		ac.emit(ARRAY_PUSH)
	}
	return nil
}

// VisitIndexAccess compiles `array[index]`.
func (ac *ASTCompiler) VisitIndexAccess(index ast.IndexAccess) any {
	index.Array.Accept(ac)
	index.Index.Accept(ac)
	ac.emit(GET_INDEX)
	return nil
}

// emitLoop emits a LOOP instruction whose backward distance returns
// execution to loopStart, measured from the byte immediately following the
// LOOP instruction's own 2-byte operand.
func (ac *ASTCompiler) emitLoop(loopStart int) {
	position := len(ac.bytecode.Instructions)
	distance := position - loopStart + OPCODE_TOTAL_BYTES + 2
	ac.emit(LOOP, distance)
}

// patchJump overwrites a forward jump's placeholder operand with the actual
// distance from the byte following the operand to the current instruction
// pointer.
func (ac *ASTCompiler) patchJump(jumpPos int) {
	operandPos := jumpPos + OPCODE_TOTAL_BYTES
	target := len(ac.bytecode.Instructions)
	offset := target - (operandPos + 2)

	instruction := make([]byte, 2)
	binary.BigEndian.PutUint16(instruction, uint16(offset))
	ac.bytecode.Instructions[operandPos] = instruction[0]
	ac.bytecode.Instructions[operandPos+1] = instruction[1]
}

// addConstant appends a value to the constant pool and emits LOAD_CONST.
func (ac *ASTCompiler) addConstant(value any) {
	ac.emit(LOAD_CONST, ac.constantIndex(value))
}

// constantIndex appends value to the constant pool and returns its index.
func (ac *ASTCompiler) constantIndex(value any) int {
	ac.bytecode.ConstantsPool = append(ac.bytecode.ConstantsPool, value)
	return len(ac.bytecode.ConstantsPool) - 1
}

// emit constructs a bytecode instruction and appends it to the instruction stream.
func (ac *ASTCompiler) emit(opcode Opcode, operands ...int) {
	instruction := MakeInstruction(opcode, operands...)
	ac.bytecode.Instructions = append(ac.bytecode.Instructions, instruction...)
}

// emitPlaceholderJump emits a jump instruction with a placeholder operand
// (0) and returns the position where it was emitted, to be passed later to
// patchJump.
func (ac *ASTCompiler) emitPlaceholderJump(opcode Opcode) int {
	position := len(ac.bytecode.Instructions)
	ac.emit(opcode, 0)
	return position
}
