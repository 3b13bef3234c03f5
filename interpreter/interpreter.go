// Package interpreter implements the tree-walking evaluator: the backend
// that executes an AST directly against a chained Environment, as an
// alternative to compiling it to bytecode for the VM.
package interpreter

import (
	"fmt"

	"github.com/simondevenish/EmberScript/ast"
	"github.com/simondevenish/EmberScript/token"
)

// TreeWalkInterpreter executes parsed statements and evaluates expressions.
type TreeWalkInterpreter struct {
	environment *Environment
}

// breakSignal and continueSignal unwind a loop body via panic/recover;
// returnSignal unwinds a function call the same way, carrying its value.
type breakSignal struct{}
type continueSignal struct{}
type returnSignal struct {
	Value any
}

// Make creates a tree-walking interpreter with its builtins registered in
// the root scope.
func Make() *TreeWalkInterpreter {
	root := CreateRootEnvironment()
	registerBuiltins(root)
	return &TreeWalkInterpreter{
		environment: root,
	}
}

// Interpret executes a list of statements.
// It recovers from panics to print runtime errors without crashing.
func (i *TreeWalkInterpreter) Interpret(statements []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			switch r.(type) {
			case breakSignal, continueSignal, returnSignal:
				return
			default:
				fmt.Println(r)
			}
		}
	}()
	i.executeStatements(statements)
}

// executeStatements executes each statement by invoking its Accept method.
func (i *TreeWalkInterpreter) executeStatements(statements []ast.Stmt) {
	for _, s := range statements {
		s.Accept(i)
	}
}

// executeStmt executes the given AST node statement by invoking its Accept method,
// which calls the appropriate Visit method of the interpreter.
func (i *TreeWalkInterpreter) executeStmt(stmt ast.Stmt) {
	stmt.Accept(i)
}

// VisitBlockStmt executes all statements in the given ast.BlockStmt
// within a new nested environment scoped as a child of the current one.
// The previous environment is always restored on exit, including when a
// break/continue/return signal or a runtime error unwinds through it.
func (i *TreeWalkInterpreter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	previous := i.environment
	i.environment = CreateChildEnvironment(i.environment)
	defer func() { i.environment = previous }()

	i.executeStatements(blockStmt.Statements)
	return nil
}

// VisitExpressionStmt visits an ExpressionStmt node.
// Evaluates the expression but does not return a value.
func (i *TreeWalkInterpreter) VisitExpressionStmt(exprStatement ast.ExpressionStmt) any {
	i.evaluate(exprStatement.Expression)
	return nil
}

// VisitIfStmt evaluates the condition of the given ast.IfStmt, branching to
// Then or, if present, Else.
func (i *TreeWalkInterpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if i.isConditionTrue(stmt.Condition) {
		i.executeStmt(stmt.Then)
	} else if stmt.Else != nil {
		i.executeStmt(stmt.Else)
	}
	return nil
}

// VisitWhileStmt re-evaluates the condition before every iteration, running
// Body until it becomes false. A break unwinds the loop; a continue skips
// to the next condition check.
func (i *TreeWalkInterpreter) VisitWhileStmt(stmt ast.WhileStmt) any {
	for i.isConditionTrue(stmt.Condition) {
		if i.runLoopBody(stmt.Body) {
			break
		}
	}
	return nil
}

// VisitForStmt creates a child scope for the loop header, runs Init once,
// then loops while Cond holds (absent Cond is treated as true), running
// Body then Incr each iteration.
func (i *TreeWalkInterpreter) VisitForStmt(stmt ast.ForStmt) any {
	previous := i.environment
	i.environment = CreateChildEnvironment(i.environment)
	defer func() { i.environment = previous }()

	if stmt.Init != nil {
		i.executeStmt(stmt.Init)
	}

	for stmt.Cond == nil || i.isConditionTrue(stmt.Cond) {
		if i.runLoopBody(stmt.Body) {
			break
		}
		if stmt.Incr != nil {
			i.evaluate(stmt.Incr)
		}
	}
	return nil
}

// runLoopBody executes body, reporting true if a break signal was caught
// (the caller should stop looping) and absorbing continue signals so the
// loop's own control flow can move on to the next iteration.
func (i *TreeWalkInterpreter) runLoopBody(body ast.Stmt) (didBreak bool) {
	defer func() {
		if r := recover(); r != nil {
			switch r.(type) {
			case breakSignal:
				didBreak = true
			case continueSignal:
				didBreak = false
			default:
				panic(r)
			}
		}
	}()
	i.executeStmt(body)
	return false
}

// VisitFunctionDef builds a user-defined function value and binds it to its
// name in the current scope. The body is a borrowed AST pointer.
func (i *TreeWalkInterpreter) VisitFunctionDef(stmt ast.FunctionDef) any {
	params := make([]string, len(stmt.Params))
	for idx, p := range stmt.Params {
		params[idx] = p.Lexeme
	}
	fn := &UserFunction{
		Name:   stmt.Name.Lexeme,
		Params: params,
		Body:   stmt.Body,
	}
	i.environment.define(stmt.Name.Lexeme, fn)
	return nil
}

// VisitReturnStmt evaluates the optional return value and unwinds to the
// nearest enclosing function call via a returnSignal panic.
func (i *TreeWalkInterpreter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	var value any
	if stmt.Value != nil {
		value = i.evaluate(stmt.Value)
	}
	panic(returnSignal{Value: value})
}

// VisitBreakStmt unwinds to the nearest enclosing loop.
func (i *TreeWalkInterpreter) VisitBreakStmt(stmt ast.BreakStmt) any {
	panic(breakSignal{})
}

// VisitContinueStmt unwinds to the nearest enclosing loop's next iteration.
func (i *TreeWalkInterpreter) VisitContinueStmt(stmt ast.ContinueStmt) any {
	panic(continueSignal{})
}

// VisitImportStmt reads, lexes, and parses the target file, then executes
// its statements directly in the current scope, inlining its effects the
// same way the bytecode compiler inlines imported code into its chunk.
func (i *TreeWalkInterpreter) VisitImportStmt(stmt ast.ImportStmt) any {
	statements, err := loadImport(stmt.Path.Lexeme)
	if err != nil {
		msg := fmt.Sprintf("import failed: %s", err.Error())
		panic(CreateRuntimeError(stmt.Path.Line, stmt.Path.Column, msg))
	}
	i.executeStatements(statements)
	return nil
}

// VisitSwitchStmt is a deliberate no-op: AST_SWITCH_CASE is parsed but
// stays reserved, with neither backend generating code or evaluating it.
func (i *TreeWalkInterpreter) VisitSwitchStmt(stmt ast.SwitchStmt) any {
	return nil
}

// VisitVarStmt visits a VarStmt node.
// It evaluates the initialiser expression of the statement if it contains one
// and it sets the name of the variable to its evaluated value.
func (i *TreeWalkInterpreter) VisitVarStmt(varStmt ast.VarStmt) any {
	var value any = nil
	if varStmt.Initializer != nil {
		value = i.evaluate(varStmt.Initializer)
	}
	i.environment.define(varStmt.Name.Lexeme, value)
	return nil
}

// VisitAssignExpression evaluates an assignment expression node and updates
// the value of the corresponding variable in the environment.
func (i *TreeWalkInterpreter) VisitAssignExpression(assign ast.Assign) any {
	value := i.evaluate(assign.Value)
	err := i.environment.set(assign.Name, value)
	if err != nil {
		panic(err.Error())
	}
	return value
}

// VisitLogicalExpression evaluates both sides of a `&&`/`||` expression.
// Both operands must be boolean; short-circuiting is not performed.
func (i *TreeWalkInterpreter) VisitLogicalExpression(logical ast.Logical) any {
	leftResult := i.evaluate(logical.Left)
	rightResult := i.evaluate(logical.Right)

	leftBool, leftOk := leftResult.(bool)
	rightBool, rightOk := rightResult.(bool)
	if !leftOk || !rightOk {
		message := fmt.Sprintf("operands of '%s' must be boolean values", logical.Operator.TokenType)
		panic(CreateRuntimeError(logical.Operator.Line, logical.Operator.Column, message))
	}

	switch logical.Operator.TokenType {
	case token.AND_AND:
		return leftBool && rightBool
	case token.OR_OR:
		return leftBool || rightBool
	default:
		message := fmt.Sprintf("operator '%s' not supported for logical operations", logical.Operator.TokenType)
		panic(CreateRuntimeError(logical.Operator.Line, logical.Operator.Column, message))
	}
}

// VisitFunctionCall resolves the callee name to a builtin or user-defined
// function value and invokes it. Arguments evaluate strictly left-to-right.
func (i *TreeWalkInterpreter) VisitFunctionCall(call ast.FunctionCall) any {
	args := make([]any, len(call.Arguments))
	for idx, arg := range call.Arguments {
		args[idx] = i.evaluate(arg)
	}

	callee, err := i.environment.get(call.Callee)
	if err != nil {
		msg := fmt.Sprintf("call to undefined function: %s", call.Callee.Lexeme)
		panic(CreateRuntimeError(call.Callee.Line, call.Callee.Column, msg))
	}

	switch fn := callee.(type) {
	case *BuiltinFunction:
		result, callErr := fn.Call(i, args)
		if callErr != nil {
			panic(CreateRuntimeError(call.Callee.Line, call.Callee.Column, callErr.Error()))
		}
		return result

	case *UserFunction:
		return i.callUserFunction(fn, args)

	default:
		msg := fmt.Sprintf("'%s' is not a function", call.Callee.Lexeme)
		panic(CreateRuntimeError(call.Callee.Line, call.Callee.Column, msg))
	}
	return nil
}

// callUserFunction binds each parameter to its argument in a fresh scope
// nested off the caller's current scope, runs the body, and returns whatever Value the body's
// return statement (if any) carried; functions that fall off the end
// return null.
func (i *TreeWalkInterpreter) callUserFunction(fn *UserFunction, args []any) (result any) {
	previous := i.environment
	callScope := CreateChildEnvironment(i.environment)
	i.environment = callScope
	defer func() {
		i.environment = previous
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				result = ret.Value
				return
			}
			panic(r)
		}
	}()

	for idx, paramName := range fn.Params {
		var value any
		if idx < len(args) {
			value = args[idx]
		}
		callScope.define(paramName, value)
	}

	i.executeStatements(fn.Body.Statements)
	return nil
}

// VisitArrayLiteral evaluates each element left-to-right and builds a fresh
// Array value.
func (i *TreeWalkInterpreter) VisitArrayLiteral(array ast.ArrayLiteral) any {
	elements := make([]any, len(array.Elements))
	for idx, elem := range array.Elements {
		elements[idx] = i.evaluate(elem)
	}
	return &Array{Elements: elements}
}

// VisitIndexAccess evaluates the array expression and index, then returns a
// bounds-checked copy of the indexed element.
func (i *TreeWalkInterpreter) VisitIndexAccess(indexAccess ast.IndexAccess) any {
	arrayValue := i.evaluate(indexAccess.Array)
	indexValue := i.evaluate(indexAccess.Index)

	arr, ok := arrayValue.(*Array)
	if !ok {
		panic(CreateRuntimeError(0, 0, "index operator applied to a non-array value"))
	}
	idx, ok := indexValue.(float64)
	if !ok {
		panic(CreateRuntimeError(0, 0, "array index must be numeric"))
	}
	i64 := int(idx)
	if i64 < 0 || i64 >= len(arr.Elements) {
		panic(CreateRuntimeError(0, 0, fmt.Sprintf("index out of bounds: %d", i64)))
	}
	return deepCopy(arr.Elements[i64])
}

// VisitBinary evaluates a binary expression node.
func (i *TreeWalkInterpreter) VisitBinary(binary ast.Binary) any {
	leftResult := i.evaluate(binary.Left)
	rightResult := i.evaluate(binary.Right)
	operator := binary.Operator.TokenType

	switch operator {
	case token.MULT:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err.Error())
		}
		return leftValue * rightValue

	case token.DIV:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err.Error())
		}
		if rightValue == 0 {
			panic(CreateRuntimeError(binary.Operator.Line, binary.Operator.Column, "division by zero"))
		}
		return leftValue / rightValue

	case token.MOD:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err.Error())
		}
		if rightValue == 0 {
			panic(CreateRuntimeError(binary.Operator.Line, binary.Operator.Column, "modulo by zero"))
		}
		return float64(int64(leftValue) % int64(rightValue))

	case token.SUB:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err.Error())
		}
		return leftValue - rightValue

	case token.ADD:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			// Not both numeric: string-coerce both sides and concatenate.
			return stringifyForCoercion(leftResult) + stringifyForCoercion(rightResult)
		}
		return leftValue + rightValue

	case token.EQUAL_EQUAL:
		if !sameKind(leftResult, rightResult) {
			return false
		}
		return leftResult == rightResult

	case token.NOT_EQUAL:
		if !sameKind(leftResult, rightResult) {
			return true
		}
		return leftResult != rightResult

	case token.LARGER:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue > rightValue

	case token.LARGER_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue >= rightValue

	case token.LESS:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue < rightValue

	case token.LESS_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue <= rightValue

	default:
		message := fmt.Sprintf("operator '%s' not supported", operator)
		error := CreateRuntimeError(binary.Operator.Line, binary.Operator.Column, message)
		panic(error)
	}
}

// VisitUnary evaluates a unary expression node.
func (i *TreeWalkInterpreter) VisitUnary(unary ast.Unary) any {
	rightResult := i.evaluate(unary.Right)
	operator := unary.Operator.TokenType
	switch operator {
	case token.SUB:
		r, err := literalToFloat64(rightResult)
		if err != nil {
			message := fmt.Sprintf("operand must be a numeric value. '%s %v' is not allowed", operator, rightResult)
			error := CreateRuntimeError(unary.Operator.Line, unary.Operator.Column, message)
			panic(error)
		}
		return -r
	case token.BANG:
		return !isTruthy(rightResult)
	default:
		message := fmt.Sprintf("operator '%s' not supported for unary operations", operator)
		error := CreateRuntimeError(unary.Operator.Line, unary.Operator.Column, message)
		panic(error)
	}
}

// isConditionTrue evaluates condition and requires the result to be a
// boolean Value, per the evaluator's branch-condition contract.
func (i *TreeWalkInterpreter) isConditionTrue(condition ast.Expression) bool {
	value := i.evaluate(condition)
	b, ok := value.(bool)
	if !ok {
		panic(CreateRuntimeError(0, 0, "condition must evaluate to a boolean value"))
	}
	return b
}

// Retrieves the value for variable.
func (i *TreeWalkInterpreter) VisitVariableExpression(expression ast.Variable) any {
	value, err := i.environment.get(expression.Name)
	if err != nil {
		panic(err)
	}
	return deepCopy(value)
}

// VisitLiteral returns the value of a Literal node.
func (i *TreeWalkInterpreter) VisitLiteral(literal ast.Literal) any {
	return literal.Value
}

// VisitGrouping evaluates a Grouping expression by evaluating its inner expression.
func (i *TreeWalkInterpreter) VisitGrouping(grouping ast.Grouping) any {
	return i.evaluate(grouping.Expression)
}

// evaluate evaluates any expression node by invoking its Accept method
// with the Interpreter visitor.
func (i *TreeWalkInterpreter) evaluate(expression ast.Expression) any {
	return expression.Accept(i)
}

// literalToFloat64 requires value to already be the number kind (float64);
// no other Value kind, including a numeric-looking string, coerces.
func literalToFloat64(value any) (float64, error) {
	v, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("unsupported type: %T", value)
	}
	return v, nil
}

// isOperandsNumeric validates that both operands are the number kind and
// returns them as float64. Matches the VM's binaryArithmetic/comparison,
// which require left.(float64)/right.(float64) directly with no string
// coercion.
func isOperandsNumeric(operator token.TokenType, left any, right any, tok token.Token) (float64, float64, error) {
	l, lerr := literalToFloat64(left)
	r, rerr := literalToFloat64(right)

	if lerr == nil && rerr == nil {
		return l, r, nil
	}

	message := fmt.Sprintf("operands must be numeric values. '%v %s %v' is not allowed", left, operator, right)
	error := CreateRuntimeError(tok.Line, tok.Column, message)
	return 0, 0, error
}
