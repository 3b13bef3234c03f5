// expressions.go contains all the expression AST nodes. An expression node always evaluates to a value.

package ast

import (
	"github.com/simondevenish/EmberScript/token"
)

// Binary represents a binary operation expression (e.g., "a + b").
// It consists of a left-hand side expression, an operator token (e.g., +, -, *, /),
// and a right-hand side expression.
type Binary struct {
	Left     Expression  // The left-hand expression (e.g., "a" in "a + b")
	Operator token.Token // The operator (e.g., "+")
	Right    Expression  // The right-hand expression (e.g., "b" in "a + b")
}

func (binary Binary) Accept(v ExpressionVisitor) any {
	return v.VisitBinary(binary)
}

// Unary represents a unary operation expression (e.g., "!a" or "-b").
// It consists of an operator token and a single right-hand expression.
type Unary struct {
	Operator token.Token // The operator (e.g., "!" or "-")
	Right    Expression  // The expression the operator is applied to (e.g., "a" or "b")
}

func (unary Unary) Accept(v ExpressionVisitor) any {
	return v.VisitUnary(unary)
}

// Literal represents a literal value in the source code
// (e.g., numbers, strings, booleans, or null).
type Literal struct {
	Value any // The literal value (Go's `any` allows different possible types)
}

func (literal Literal) Accept(v ExpressionVisitor) any {
	return v.VisitLiteral(literal)
}

// Grouping represents a parenthesized expression (e.g., "(a + b)").
// Useful for controlling evaluation precedence.
type Grouping struct {
	Expression Expression // The inner expression inside the parentheses
}

func (grouping Grouping) Accept(v ExpressionVisitor) any {
	return v.VisitGrouping(grouping)
}

// Variable represents a variable expression in the abstract syntax tree (AST).
// It models the retrieval of a value previously bound to a variable name.
type Variable struct {
	Name token.Token // An IDENTIFIER token
}

func (variable Variable) Accept(v ExpressionVisitor) any {
	return v.VisitVariableExpression(variable)
}

// Assign represents an assignment expression in the abstract syntax tree (AST).
// It models the operation of assigning a new value to an existing variable.
type Assign struct {
	Name  token.Token
	Value Expression
}

func (assign Assign) Accept(v ExpressionVisitor) any {
	return v.VisitAssignExpression(assign)
}

// Logical represents a `&&`/`||` expression. It is kept distinct from Binary
// so that backends may special-case its evaluation rather than treating it as
// an ordinary binary operator; both backends evaluate both operands (no
// short-circuiting).
type Logical struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (logical Logical) Accept(v ExpressionVisitor) any {
	return v.VisitLogicalExpression(logical)
}

// FunctionCall represents invocation of a named function with a list of
// argument expressions, e.g. "add(1, 2)".
type FunctionCall struct {
	Callee    token.Token
	Arguments []Expression
}

func (call FunctionCall) Accept(v ExpressionVisitor) any {
	return v.VisitFunctionCall(call)
}

// ArrayLiteral represents a bracketed, comma-separated element list,
// e.g. "[1, 2, 3]".
type ArrayLiteral struct {
	Elements []Expression
}

func (array ArrayLiteral) Accept(v ExpressionVisitor) any {
	return v.VisitArrayLiteral(array)
}

// IndexAccess represents a single `[ ]` index suffix applied to an array
// expression, e.g. "a[i]". Nested indexing ("a[i][j]") composes by wrapping
// an IndexAccess around another IndexAccess as its Array field.
type IndexAccess struct {
	Array Expression
	Index Expression
}

func (index IndexAccess) Accept(v ExpressionVisitor) any {
	return v.VisitIndexAccess(index)
}
