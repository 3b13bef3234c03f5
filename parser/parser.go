// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser

//	A Recursive descent parser is a top-down parser because it starts from the top
//
// grammar rule and works its way down in to the nested sub-experessions before reaching
// the leaves of the syntax tree (terminal rules)
package parser

import (
	"fmt"

	"github.com/simondevenish/EmberScript/ast"
	"github.com/simondevenish/EmberScript/token"
)

var comparisonTokenTypes = []token.TokenType{
	token.LARGER,
	token.LARGER_EQUAL,
	token.LESS,
	token.LESS_EQUAL,
}

var equalityTokenTypes = []token.TokenType{
	token.NOT_EQUAL,
	token.EQUAL_EQUAL,
}

var termTokenTypes = []token.TokenType{
	token.SUB,
	token.ADD,
}

var factorExpressionTypes = []token.TokenType{
	token.MULT,
	token.DIV,
	token.MOD,
}

var unaryExpressionTypes = []token.TokenType{
	token.BANG,
	token.SUB,
}

var variableDeclKeywords = []token.TokenType{
	token.VAR,
	token.LET,
	token.CONST,
}

type Parser struct {
	tokens   []token.Token
	position int
}

// NOTE: The parsers position is always one unit ahead of the
// current token

// Initializes and returns a new Parser instance.
func Make(tokens []token.Token) *Parser {
	return &Parser{
		tokens:   tokens,
		position: 0,
	}
}

// Print prints the AST as prettified JSON to standard output.
func (parser *Parser) Print(statements []ast.Stmt) {
	_, err := PrintASTJSON(statements)
	if err != nil {
		fmt.Println("error producing AST JSON:", err)
	}
}

// PrintToFile writes the AST for the provided statements to a .json file at the given path.
func (parser *Parser) PrintToFile(statements []ast.Stmt, path string) error {
	return WriteASTJSONToFile(statements, path)
}

// Peeks the token at the parser's current position,
// without advancing the parser's position.
func (parser *Parser) peek() token.Token {
	return parser.tokens[parser.position]
}

// Retrieves the token at the parser's previous position
// (position -1)
func (parser *Parser) previous() token.Token {
	return parser.tokens[parser.position-1]
}

// Increments the parser's position by one unit and
// consumes the current token
func (parser *Parser) advance() token.Token {
	if !parser.isFinished() {
		parser.position++
	}
	return parser.previous()
}

// Determines of the parser has finished scanning all the tokens.
func (parser *Parser) isFinished() bool {
	tok := parser.peek()
	return tok.TokenType == token.EOF
}

// Determines if the provided tokenType matches the TokenType
// at the parser's current position
func (parser *Parser) checkType(tokeType token.TokenType) bool {
	if parser.isFinished() {
		return false
	}
	tok := parser.peek()
	return tok.TokenType == tokeType
}

// checkTypeAt looks ahead `offset` tokens from the current position without
// consuming anything. Used by primary() to tell a function call (identifier
// followed by '(') from a plain variable reference.
func (parser *Parser) checkTypeAt(offset int, tokenType token.TokenType) bool {
	index := parser.position + offset
	if index >= len(parser.tokens) {
		return false
	}
	return parser.tokens[index].TokenType == tokenType
}

// Determines if the TokenType at the current
// position matches any of the provided tokenTypes. If a match is
// found the parser increments its position and consumes the
// current token
func (parser *Parser) isMatch(tokenTypes []token.TokenType) bool {
	for i := range tokenTypes {
		tokenType := tokenTypes[i]

		if parser.checkType(tokenType) {
			parser.advance()
			return true
		}
	}
	return false
}

// synchronize discards tokens until it finds a likely statement boundary,
// so parsing can resume after an error without cascading further failures.
func (parser *Parser) synchronize() {
	for !parser.isFinished() {
		if parser.previous().TokenType == token.SEMICOLON {
			return
		}
		if parser.previous().TokenType == token.RCUR {
			return
		}
		switch parser.peek().TokenType {
		case token.IF, token.WHILE, token.FOR, token.FUNC, token.VAR, token.LET, token.CONST, token.RETURN:
			return
		}
		parser.advance()
	}
}

// Parse parses the entire token stream into a slice of Stmt (statement) nodes,
// continuing until the end of input. Errors during parsing are collected
// but parsing continues to find additional errors where possible.
func (parser *Parser) Parse() ([]ast.Stmt, []error) {
	statements := []ast.Stmt{}
	errors := []error{}

	for {
		if parser.isFinished() {
			break
		}
		statement, err := parser.declaration()
		if err != nil {
			errors = append(errors, err)
			parser.synchronize()
			continue
		}
		statements = append(statements, statement)
	}

	return statements, errors
}

// declaration parses a top-level declaration: a variable declaration or a
// function definition, falling back to an ordinary statement otherwise.
func (parser *Parser) declaration() (ast.Stmt, error) {
	if parser.isMatch(variableDeclKeywords) {
		stmt, err := parser.variableDeclaration(false)
		if err != nil {
			return nil, err
		}
		if _, err := parser.consume(token.SEMICOLON, "expected ';' after variable declaration"); err != nil {
			return nil, err
		}
		return stmt, nil
	}
	if parser.isMatch([]token.TokenType{token.FUNC}) {
		return parser.functionDeclaration()
	}
	return parser.statement()
}

// variableDeclaration parses a variable declaration. It never consumes the
// trailing ';': its callers (declaration and the for-loop header parser)
// consume that separator. The forHeader argument is not read.
func (parser *Parser) variableDeclaration(forHeader bool) (ast.Stmt, error) {
	tok, consumeError := parser.consume(token.IDENTIFIER, "expected variable name")
	if consumeError != nil {
		return nil, consumeError
	}

	var initialiser ast.Expression
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		var err error
		initialiser, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}

	return ast.VarStmt{
		Name:        tok,
		Initializer: initialiser,
	}, nil
}

// functionDeclaration parses `function name ( params ) block`.
func (parser *Parser) functionDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LPA, "expected '(' after function name"); err != nil {
		return nil, err
	}

	params := []token.Token{}
	if !parser.checkType(token.RPA) {
		for {
			param, err := parser.consume(token.IDENTIFIER, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	if _, err := parser.consume(token.RPA, "expected ')' after parameter list"); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}

	return ast.FunctionDef{Name: name, Params: params, Body: ast.BlockStmt{Statements: body}}, nil
}

// statement parses a single statement: a block, a control-flow construct,
// or an expression statement.
func (parser *Parser) statement() (ast.Stmt, error) {

	if parser.isMatch([]token.TokenType{token.LCUR}) {
		statements, err := parser.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: statements}, nil
	}

	if parser.isMatch([]token.TokenType{token.IF}) {
		return parser.ifStatement()
	}

	if parser.isMatch([]token.TokenType{token.WHILE}) {
		return parser.whileStatement()
	}

	if parser.isMatch([]token.TokenType{token.FOR}) {
		return parser.forStatement()
	}

	if parser.isMatch([]token.TokenType{token.RETURN}) {
		return parser.returnStatement()
	}

	if parser.isMatch([]token.TokenType{token.BREAK}) {
		keyword := parser.previous()
		if _, err := parser.consume(token.SEMICOLON, "expected ';' after 'break'"); err != nil {
			return nil, err
		}
		return ast.BreakStmt{Keyword: keyword}, nil
	}

	if parser.isMatch([]token.TokenType{token.CONTINUE}) {
		keyword := parser.previous()
		if _, err := parser.consume(token.SEMICOLON, "expected ';' after 'continue'"); err != nil {
			return nil, err
		}
		return ast.ContinueStmt{Keyword: keyword}, nil
	}

	if parser.isMatch([]token.TokenType{token.IMPORT}) {
		return parser.importStatement()
	}

	if parser.isMatch([]token.TokenType{token.SWITCH}) {
		return parser.switchStatement()
	}

	return parser.expressionStatement()
}

// whileStatement parses `while ( cond ) body`.
func (parser *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "expected ')' after while condition"); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	return ast.WhileStmt{
		Condition: cond,
		Body:      body,
	}, nil
}

// forStatement parses `for ( init ; cond ; incr ) body`, where each clause
// is individually optional.
func (parser *Parser) forStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init ast.Stmt
	if parser.isMatch([]token.TokenType{token.SEMICOLON}) {
		init = nil
	} else if parser.isMatch(variableDeclKeywords) {
		decl, err := parser.variableDeclaration(true)
		if err != nil {
			return nil, err
		}
		init = decl
		if _, err := parser.consume(token.SEMICOLON, "expected ';' after for-loop initializer"); err != nil {
			return nil, err
		}
	} else {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		init = ast.ExpressionStmt{Expression: expr}
		if _, err := parser.consume(token.SEMICOLON, "expected ';' after for-loop initializer"); err != nil {
			return nil, err
		}
	}

	var cond ast.Expression
	if !parser.checkType(token.SEMICOLON) {
		var err error
		cond, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after for-loop condition"); err != nil {
		return nil, err
	}

	var incr ast.Expression
	if !parser.checkType(token.RPA) {
		var err error
		incr, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.RPA, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	return ast.ForStmt{Init: init, Cond: cond, Incr: incr, Body: body}, nil
}

// returnStatement parses `return [expr] ;`.
func (parser *Parser) returnStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	var value ast.Expression
	if !parser.checkType(token.SEMICOLON) {
		var err error
		value, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

// importStatement parses `import "path" ;`.
func (parser *Parser) importStatement() (ast.Stmt, error) {
	path, err := parser.consume(token.STRING, "expected a string literal path after 'import'")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after import path"); err != nil {
		return nil, err
	}
	return ast.ImportStmt{Path: path}, nil
}

// switchStatement parses `switch ( cond ) { case expr: stmts... default: stmts... }`.
// The node is accepted by the parser but left unevaluated and uncompiled by
// both backends.
func (parser *Parser) switchStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "expected '(' after 'switch'"); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "expected ')' after switch condition"); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "expected '{' after switch condition"); err != nil {
		return nil, err
	}

	var cases []ast.SwitchCase
	var defaultBody []ast.Stmt

	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		if parser.isMatch([]token.TokenType{token.CASE}) {
			value, err := parser.expression()
			if err != nil {
				return nil, err
			}
			if _, err := parser.consume(token.COLON, "expected ':' after case value"); err != nil {
				return nil, err
			}
			body := []ast.Stmt{}
			for !parser.checkType(token.CASE) && !parser.checkType(token.DEFAULT) && !parser.checkType(token.RCUR) && !parser.isFinished() {
				stmt, err := parser.declaration()
				if err != nil {
					return nil, err
				}
				body = append(body, stmt)
			}
			cases = append(cases, ast.SwitchCase{Value: value, Body: body})
			continue
		}
		if parser.isMatch([]token.TokenType{token.DEFAULT}) {
			if _, err := parser.consume(token.COLON, "expected ':' after 'default'"); err != nil {
				return nil, err
			}
			body := []ast.Stmt{}
			for !parser.checkType(token.CASE) && !parser.checkType(token.DEFAULT) && !parser.checkType(token.RCUR) && !parser.isFinished() {
				stmt, err := parser.declaration()
				if err != nil {
					return nil, err
				}
				body = append(body, stmt)
			}
			defaultBody = body
			continue
		}
		currentToken := parser.peek()
		return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "expected 'case' or 'default' inside switch body")
	}

	if _, err := parser.consume(token.RCUR, "expected '}' after switch body"); err != nil {
		return nil, err
	}

	return ast.SwitchStmt{Condition: cond, Cases: cases, Default: defaultBody}, nil
}

// ifStatement parses an if-statement from the token stream.
func (parser *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	conditionExpr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "expected ')' after if condition"); err != nil {
		return nil, err
	}

	thenStmt, err := parser.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt = nil
	if parser.isMatch([]token.TokenType{token.ELSE}) {
		stmt, err := parser.statement()
		if err != nil {
			return nil, err
		}
		elseStmt = stmt
	}

	return ast.IfStmt{
		Condition: conditionExpr,
		Then:      thenStmt,
		Else:      elseStmt,
	}, nil
}

// expressionStatement parses a statement consisting of a single expression
// terminated by ';'.
func (parser *Parser) expressionStatement() (ast.Stmt, error) {
	expression, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return ast.ExpressionStmt{Expression: expression}, nil
}

// block parses a block statement consisting of a list of
// statement AST nodes.
func (parser *Parser) block() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}

	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := parser.consume(token.RCUR, "expected '}' after block"); err != nil {
		return nil, err
	}
	return statements, nil
}

// expression is the entry point for parsing expressions. It begins at
// the assignment rule, which encompasses all lower-precedence rules.
func (parser *Parser) expression() (ast.Expression, error) {
	return parser.assignment()
}

// assignment parses an assignment expression from the token stream.
// Assignment is right-associative and only valid when the left-hand side
// resolved to a Variable.
func (parser *Parser) assignment() (ast.Expression, error) {
	expression, err := parser.or()
	if err != nil {
		return nil, err
	}
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		equalsToken := parser.previous()
		value, err := parser.assignment()
		if err != nil {
			return nil, err
		}
		switch v := expression.(type) {
		case ast.Variable:
			name := v.Name
			return ast.Assign{Name: name, Value: value}, nil

		default:
			msg := "invalid assignment target"
			return nil, CreateSyntaxError(equalsToken.Line, equalsToken.Column, msg)
		}
	}

	return expression, nil
}

// or parses a logical OR expression ("||"), left-associative.
func (parser *Parser) or() (ast.Expression, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.OR_OR}) {
		op := parser.previous()
		rightExpr, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{
			Left:     expr,
			Operator: op,
			Right:    rightExpr,
		}
	}

	return expr, nil
}

// and parses a logical AND expression ("&&"), left-associative.
func (parser *Parser) and() (ast.Expression, error) {
	expr, err := parser.equality()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.AND_AND}) {
		op := parser.previous()
		rightExpr, err := parser.equality()
		if err != nil {
			return nil, err
		}

		expr = ast.Logical{
			Left:     expr,
			Operator: op,
			Right:    rightExpr,
		}
	}
	return expr, nil
}

// equality parses equality expressions using operators "==" and "!=".
func (parser *Parser) equality() (ast.Expression, error) {
	exp, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(equalityTokenTypes) {
		operator := parser.previous()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// comparison parses comparison expressions using operators "<", "<=", ">", ">=".
func (parser *Parser) comparison() (ast.Expression, error) {
	exp, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(comparisonTokenTypes) {
		operator := parser.previous()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// term parses addition and subtraction expressions using operators "+" and "-".
func (parser *Parser) term() (ast.Expression, error) {
	exp, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(termTokenTypes) {
		operator := parser.previous()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// factor parses multiplication, division, and modulo expressions using
// operators "*", "/", and "%".
func (parser *Parser) factor() (ast.Expression, error) {
	exp, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(factorExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// unary parses unary prefix expressions using operators "!" or "-".
// Examples: "!true", "-x".
func (parser *Parser) unary() (ast.Expression, error) {
	if parser.isMatch(unaryExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{
			Operator: operator,
			Right:    right,
		}, nil
	}
	return parser.call()
}

// call parses a primary expression followed by zero or more `[ index ]`
// suffixes, composing left-to-right into nested IndexAccess nodes.
func (parser *Parser) call() (ast.Expression, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}

	for {
		if parser.isMatch([]token.TokenType{token.LBRACKET}) {
			index, err := parser.expression()
			if err != nil {
				return nil, err
			}
			if _, err := parser.consume(token.RBRACKET, "expected ']' after index expression"); err != nil {
				return nil, err
			}
			expr = ast.IndexAccess{Array: expr, Index: index}
			continue
		}
		break
	}

	return expr, nil
}

// primary parses the most basic forms of expressions:
//   - Literals: true, false, null, strings, numbers
//   - Variables and function calls
//   - Array literals: [ e, e, ... ]
//   - Grouping: (expression)
func (parser *Parser) primary() (ast.Expression, error) {
	if parser.isMatch([]token.TokenType{token.FALSE}) {
		return ast.Literal{Value: false}, nil
	}
	if parser.isMatch([]token.TokenType{token.NULL}) {
		return ast.Literal{Value: nil}, nil
	}
	if parser.isMatch([]token.TokenType{token.TRUE}) {
		return ast.Literal{Value: true}, nil
	}

	if parser.isMatch([]token.TokenType{token.FLOAT, token.INT, token.STRING}) {
		literal := parser.previous().Literal
		if n, ok := literal.(int64); ok {
			return ast.Literal{Value: float64(n)}, nil
		}
		return ast.Literal{Value: literal}, nil
	}

	if parser.checkType(token.IDENTIFIER) && parser.checkTypeAt(1, token.LPA) {
		callee := parser.advance()
		parser.advance() // consume '('
		args := []ast.Expression{}
		if !parser.checkType(token.RPA) {
			for {
				arg, err := parser.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !parser.isMatch([]token.TokenType{token.COMMA}) {
					break
				}
			}
		}
		if _, err := parser.consume(token.RPA, "expected ')' after argument list"); err != nil {
			return nil, err
		}
		return ast.FunctionCall{Callee: callee, Arguments: args}, nil
	}

	if parser.isMatch([]token.TokenType{token.IDENTIFIER}) {
		return ast.Variable{Name: parser.previous()}, nil
	}

	if parser.isMatch([]token.TokenType{token.LBRACKET}) {
		elements := []ast.Expression{}
		if !parser.checkType(token.RBRACKET) {
			for {
				elem, err := parser.expression()
				if err != nil {
					return nil, err
				}
				elements = append(elements, elem)
				if !parser.isMatch([]token.TokenType{token.COMMA}) {
					break
				}
			}
		}
		if _, err := parser.consume(token.RBRACKET, "expected ']' after array literal"); err != nil {
			return nil, err
		}
		return ast.ArrayLiteral{Elements: elements}, nil
	}

	if parser.isMatch([]token.TokenType{token.LPA}) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		_, consumeErr := parser.consume(token.RPA, fmt.Sprintf("expression is missing '%s'", token.RPA))
		if consumeErr != nil {
			return nil, consumeErr
		}
		return ast.Grouping{Expression: expr}, nil
	}

	currentToken := parser.peek()
	return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "unrecognised expression")
}

// Consumes the current token by advancing the parsers current position by
// one unit if the `tokenType` matches the token type of the parsers current
// position.
func (parser *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if parser.checkType(tokenType) {
		return parser.advance(), nil
	}
	currentToken := parser.peek()
	return token.CreateToken(token.EOF, 0, 0), CreateSyntaxError(currentToken.Line, currentToken.Column, errorMessage)
}
