// statements.go contains all the statement AST nodes. A statement node does not produce a value.

package ast

import "github.com/simondevenish/EmberScript/token"

// ExpressionStmt represents a statement that consists of a single expression.
// Example: `foo + bar;`
// This evaluates the expression and discards the result.
type ExpressionStmt struct {
	Expression Expression // The expression used as a statement
}

func (e ExpressionStmt) Accept(v StmtVisitor) any {
	return v.VisitExpressionStmt(e)
}

// VarStmt represents a variable declaration statement (introduced by `var`,
// `let`, or `const`), composed of the name of the variable and the optional
// expression it binds to.
type VarStmt struct {
	Name        token.Token
	Initializer Expression // nil when no initializer was provided
}

func (varStmt VarStmt) Accept(v StmtVisitor) any {
	return v.VisitVarStmt(varStmt)
}

// BlockStmt represents a block statement containing a list
// of statement AST nodes.
type BlockStmt struct {
	Statements []Stmt
}

func (blockStmt BlockStmt) Accept(v StmtVisitor) any {
	return v.VisitBlockStmt(blockStmt)
}

// IfStmt represents an `if ( cond ) then [else ...]` statement. Else may
// itself hold another IfStmt, giving `else if` chains.
type IfStmt struct {
	Condition Expression
	Then      Stmt
	Else      Stmt // nil when there is no else-branch
}

func (stmt IfStmt) Accept(v StmtVisitor) any {
	return v.VisitIfStmt(stmt)
}

// WhileStmt represents a `while ( cond ) body` statement.
type WhileStmt struct {
	Condition Expression
	Body      Stmt
}

func (stmt WhileStmt) Accept(v StmtVisitor) any {
	return v.VisitWhileStmt(stmt)
}

// ForStmt represents a `for ( init ; cond ; incr ) body` statement. Each of
// Init, Cond, and Incr may be nil when that clause was omitted.
type ForStmt struct {
	Init Stmt
	Cond Expression
	Incr Expression
	Body Stmt
}

func (stmt ForStmt) Accept(v StmtVisitor) any {
	return v.VisitForStmt(stmt)
}

// FunctionDef represents a `function name ( params ) body` declaration.
type FunctionDef struct {
	Name   token.Token
	Params []token.Token
	Body   BlockStmt
}

func (stmt FunctionDef) Accept(v StmtVisitor) any {
	return v.VisitFunctionDef(stmt)
}

// ReturnStmt represents a `return [expr] ;` statement, unwinding the nearest
// enclosing function call with an optional value.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expression // nil when no value was provided
}

func (stmt ReturnStmt) Accept(v StmtVisitor) any {
	return v.VisitReturnStmt(stmt)
}

// BreakStmt represents a `break ;` statement, unwinding the nearest
// enclosing loop.
type BreakStmt struct {
	Keyword token.Token
}

func (stmt BreakStmt) Accept(v StmtVisitor) any {
	return v.VisitBreakStmt(stmt)
}

// ContinueStmt represents a `continue ;` statement, skipping to the next
// iteration of the nearest enclosing loop.
type ContinueStmt struct {
	Keyword token.Token
}

func (stmt ContinueStmt) Accept(v StmtVisitor) any {
	return v.VisitContinueStmt(stmt)
}

// ImportStmt represents an `import "path" ;` statement. Both backends inline
// the imported file's contents into the importing unit.
type ImportStmt struct {
	Path token.Token // STRING token holding the target file path
}

func (stmt ImportStmt) Accept(v StmtVisitor) any {
	return v.VisitImportStmt(stmt)
}

// SwitchCase is one `case value: body` arm of a SwitchStmt.
type SwitchCase struct {
	Value Expression
	Body  []Stmt
}

// SwitchStmt represents a `switch ( cond ) { case ... default ... }`
// statement. Neither backend evaluates or compiles it: the parser accepts
// the construct and the node is kept reserved, per the language's own
// design notes.
type SwitchStmt struct {
	Condition Expression
	Cases     []SwitchCase
	Default   []Stmt // nil when there is no default case
}

func (stmt SwitchStmt) Accept(v StmtVisitor) any {
	return v.VisitSwitchStmt(stmt)
}
