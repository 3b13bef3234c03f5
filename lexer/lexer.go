package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simondevenish/EmberScript/token"
)

func isLetter(char rune) bool {
	return rune('a') <= char && char <= rune('z') || rune('A') <= char && char <= rune('Z') || char == rune('_')
}

func isNumber(char rune) bool {
	return rune('0') <= char && char <= rune('9')
}

// Lexer represents a lexical scanner for processing input text into tokens.
// It maintains the current scanning state, including the position within the
// input, the current character, and metadata for line/column tracking.
type Lexer struct {
	// rune slice of the input string being scanned.
	characters []rune

	// Total number of runes in the input.
	totalChars int

	// Stores the sequence of tokens produced during lexing.
	tokens []token.Token

	// The index of the character that was previously read
	position int

	// The current character being examined.
	currentChar rune

	// The index of the next position where the next character
	// will be read
	readPosition int

	// Tracks the number of lines processed (incremented on newline).
	lineCount int32

	// Tracks the character's position within the current line.
	// Gets reset on every new line back to 0
	column int
}

// Initializes and returns a new Lexer instance.
func New(input string) *Lexer {
	lexer := &Lexer{
		characters: []rune(input),
		lineCount:  1,
	}
	lexer.totalChars = len(lexer.characters)
	lexer.readChar()
	return lexer
}

// advance moves the lexer's reading position forward by one character.
func (lexer *Lexer) advance() {
	lexer.position = lexer.readPosition
	lexer.readPosition++
	lexer.column = lexer.readPosition
}

// isFinished determines whether the lexer has consumed all source characters.
func (lexer *Lexer) isFinished() bool {
	return lexer.readPosition >= lexer.totalChars
}

// readChar reads the character at the Lexer's readPosition. If there
// are no more characters to parse, it sets the Lexer's current character
// to rune(0).
func (lexer *Lexer) readChar() {
	if lexer.isFinished() {
		lexer.currentChar = rune(0)
	} else {
		lexer.currentChar = lexer.characters[lexer.readPosition]
	}
	lexer.advance()
}

// peek returns the character at readPosition without consuming it.
func (lexer *Lexer) peek() rune {
	if lexer.isFinished() {
		return rune(0)
	}
	return lexer.characters[lexer.readPosition]
}

// peekNext returns the character one past readPosition without consuming it.
func (lexer *Lexer) peekNext() rune {
	nextReadPos := lexer.readPosition + 1
	if nextReadPos >= lexer.totalChars {
		return rune(0)
	}
	return lexer.characters[nextReadPos]
}

// handleLineComment consumes a `//` line comment up to end-of-line.
func (lexer *Lexer) handleLineComment() {
	for lexer.currentChar != rune('\n') && !lexer.isFinished() {
		lexer.readChar()
	}
}

// handleBlockComment consumes a non-nesting `/* ... */` block comment.
// Returns an error if the block comment is never closed.
func (lexer *Lexer) handleBlockComment() error {
	for {
		if lexer.currentChar == rune(0) && lexer.isFinished() {
			return fmt.Errorf("unterminated block comment, line: %v", lexer.lineCount)
		}
		if lexer.currentChar == rune('*') && lexer.peek() == rune('/') {
			lexer.readChar()
			lexer.readChar()
			return nil
		}
		if lexer.currentChar == rune('\n') {
			lexer.lineCount++
			lexer.column = 0
		}
		lexer.readChar()
	}
}

// handleNumber scans a sequence of digits (and at most one decimal point) from
// the input and creates an integer or floating-point literal token accordingly.
func (lexer *Lexer) handleNumber() error {
	initPos := lexer.position
	decimalCount := 0

	for {
		nextChar := lexer.peek()
		if nextChar == rune(0) || !isNumber(nextChar) && nextChar != rune('.') {
			break
		}
		if nextChar == '.' {
			if decimalCount == 1 {
				illegal := string(lexer.characters[initPos:lexer.readPosition])
				return fmt.Errorf("invalid number: '%s', line: %v", illegal, lexer.lineCount)
			}
			decimalCount++
		}
		lexer.advance()
	}
	number := string(lexer.characters[initPos:lexer.readPosition])
	var tok token.Token

	if decimalCount == 0 {
		result, _ := strconv.ParseInt(number, 10, 64)
		tok = token.CreateLiteralToken(token.INT, result, number, lexer.lineCount, lexer.column)
	} else {
		result, _ := strconv.ParseFloat(number, 64)
		tok = token.CreateLiteralToken(token.FLOAT, result, number, lexer.lineCount, lexer.column)
	}
	lexer.tokens = append(lexer.tokens, tok)

	return nil
}

// handleIdentifier processes a user identifier or a language keyword.
func (lexer *Lexer) handleIdentifier() {
	initPos := lexer.position
	for {
		result := lexer.peek()
		if result == rune(0) || !(isLetter(result) || isNumber(result)) {
			break
		}
		lexer.advance()
	}

	identifier := string(lexer.characters[initPos:lexer.readPosition])
	tok := token.Token{
		TokenType: token.IDENTIFIER,
		Lexeme:    identifier,
		Line:      lexer.lineCount,
		Column:    lexer.column,
	}

	if keywordType, exists := token.KeyWords[identifier]; exists {
		tok.TokenType = keywordType
		switch keywordType {
		case token.TRUE:
			tok.Literal = true
		case token.FALSE:
			tok.Literal = false
		}
	}

	lexer.tokens = append(lexer.tokens, tok)
}

// handleStringLiteral processes a double-quoted string literal, decoding the
// four recognized escape sequences (\n, \t, \\, \"). Any other \X escape, or
// an unterminated string, is an error.
func (lexer *Lexer) handleStringLiteral() error {
	var builder strings.Builder
	startLine := lexer.lineCount
	isClosed := false

	for {
		result := lexer.peek()
		if result == rune(0) && lexer.isFinished() {
			break
		}

		if result == '\\' {
			lexer.readChar() // consume backslash
			escaped := lexer.peek()
			switch escaped {
			case 'n':
				builder.WriteRune('\n')
			case 't':
				builder.WriteRune('\t')
			case '\\':
				builder.WriteRune('\\')
			case '"':
				builder.WriteRune('"')
			default:
				return fmt.Errorf("invalid escape sequence '\\%c', line: %v", escaped, lexer.lineCount)
			}
			lexer.readChar() // consume escaped character
			continue
		}

		lexer.readChar()
		if result == '"' {
			isClosed = true
			break
		}
		builder.WriteRune(result)
	}

	if !isClosed {
		return fmt.Errorf("unterminated string literal starting on line: %v", startLine)
	}

	literal := builder.String()
	lexer.tokens = append(lexer.tokens, token.CreateLiteralToken(token.STRING, literal, literal, startLine, lexer.column))
	return nil
}

// isMatch consumes and returns true if the next character equals expected.
func (lexer *Lexer) isMatch(expected rune) bool {
	if lexer.isFinished() {
		return false
	}
	if lexer.characters[lexer.readPosition] == expected {
		lexer.readPosition++
		return true
	}
	return false
}

// isWhiteSpace reports whether char is a whitespace character, advancing the
// line counter whenever a newline is the current character.
func (lexer *Lexer) isWhiteSpace(char rune) bool {
	if char == rune(' ') || char == rune('\r') || char == rune('\t') {
		return true
	}
	if lexer.currentChar == rune('\n') {
		lexer.lineCount++
		lexer.column = 0
		return true
	}
	return false
}

// skipWhiteSpace skips whitespace and comments between tokens.
func (lexer *Lexer) skipWhiteSpace() error {
	for {
		if lexer.isWhiteSpace(lexer.currentChar) {
			lexer.readChar()
			continue
		}
		if lexer.currentChar == rune('/') && lexer.peek() == rune('/') {
			lexer.handleLineComment()
			continue
		}
		if lexer.currentChar == rune('/') && lexer.peek() == rune('*') {
			lexer.readChar()
			lexer.readChar()
			if err := lexer.handleBlockComment(); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

// createToken processes the current character and appends a token (or an
// ERROR token) to the lexer's token stream.
func (lexer *Lexer) createToken() {

	if err := lexer.skipWhiteSpace(); err != nil {
		lexer.tokens = append(lexer.tokens, token.CreateErrorToken(err.Error(), lexer.lineCount, lexer.column))
		return
	}

	switch lexer.currentChar {
	case rune(0):
		return
	case rune('('):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.LPA, lexer.lineCount, lexer.column))
	case rune(')'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.RPA, lexer.lineCount, lexer.column))
	case rune('['):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.LBRACKET, lexer.lineCount, lexer.column))
	case rune(']'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.RBRACKET, lexer.lineCount, lexer.column))
	case rune('{'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.LCUR, lexer.lineCount, lexer.column))
	case rune('}'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.RCUR, lexer.lineCount, lexer.column))
	case rune(';'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.SEMICOLON, lexer.lineCount, lexer.column))
	case rune(','):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.COMMA, lexer.lineCount, lexer.column))
	case rune(':'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.COLON, lexer.lineCount, lexer.column))
	case rune('.'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.DOT, lexer.lineCount, lexer.column))
	case rune('*'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.MULT, lexer.lineCount, lexer.column))
	case rune('+'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.ADD, lexer.lineCount, lexer.column))
	case rune('-'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.SUB, lexer.lineCount, lexer.column))
	case rune('/'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.DIV, lexer.lineCount, lexer.column))
	case rune('%'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.MOD, lexer.lineCount, lexer.column))
	case rune('='):
		tok := token.CreateToken(token.ASSIGN, lexer.lineCount, lexer.column)
		if lexer.isMatch(rune('=')) {
			tok = token.CreateToken(token.EQUAL_EQUAL, lexer.lineCount, lexer.column)
		}
		lexer.tokens = append(lexer.tokens, tok)
	case rune('!'):
		tok := token.CreateToken(token.BANG, lexer.lineCount, lexer.column)
		if lexer.isMatch(rune('=')) {
			tok = token.CreateToken(token.NOT_EQUAL, lexer.lineCount, lexer.column)
		}
		lexer.tokens = append(lexer.tokens, tok)
	case rune('<'):
		tok := token.CreateToken(token.LESS, lexer.lineCount, lexer.column)
		if lexer.isMatch(rune('=')) {
			tok = token.CreateToken(token.LESS_EQUAL, lexer.lineCount, lexer.column)
		}
		lexer.tokens = append(lexer.tokens, tok)
	case rune('>'):
		tok := token.CreateToken(token.LARGER, lexer.lineCount, lexer.column)
		if lexer.isMatch(rune('=')) {
			tok = token.CreateToken(token.LARGER_EQUAL, lexer.lineCount, lexer.column)
		}
		lexer.tokens = append(lexer.tokens, tok)
	case rune('&'):
		if lexer.isMatch(rune('&')) {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.AND_AND, lexer.lineCount, lexer.column))
		} else {
			err := fmt.Sprintf("unexpected character: '&', line: %v, column: %v", lexer.lineCount, lexer.column)
			lexer.tokens = append(lexer.tokens, token.CreateErrorToken(err, lexer.lineCount, lexer.column))
		}
	case rune('|'):
		if lexer.isMatch(rune('|')) {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.OR_OR, lexer.lineCount, lexer.column))
		} else {
			err := fmt.Sprintf("unexpected character: '|', line: %v, column: %v", lexer.lineCount, lexer.column)
			lexer.tokens = append(lexer.tokens, token.CreateErrorToken(err, lexer.lineCount, lexer.column))
		}
	case rune('"'):
		if err := lexer.handleStringLiteral(); err != nil {
			lexer.tokens = append(lexer.tokens, token.CreateErrorToken(err.Error(), lexer.lineCount, lexer.column))
		}
	default:
		if isLetter(lexer.currentChar) {
			lexer.handleIdentifier()
		} else if isNumber(lexer.currentChar) {
			if err := lexer.handleNumber(); err != nil {
				lexer.tokens = append(lexer.tokens, token.CreateErrorToken(err.Error(), lexer.lineCount, lexer.column))
			}
		} else {
			line, column, char := lexer.lineCount, lexer.column, lexer.currentChar
			err := fmt.Sprintf("unexpected character: '%c', line: %v, column: %v", char, line, column)
			lexer.tokens = append(lexer.tokens, token.CreateErrorToken(err, line, column))
		}
	}

	lexer.readChar()
}

// Scan performs lexical analysis on the input and returns the complete token
// stream, always terminated by a single EOF token. Scan never panics and
// never halts early: unrecoverable input surfaces as ERROR tokens inline in
// the stream, leaving it to the parser to report them as syntax failures.
func (lexer *Lexer) Scan() ([]token.Token, error) {
	for lexer.currentChar != rune(0) {
		lexer.createToken()
	}
	lexer.tokens = append(lexer.tokens, token.CreateToken(token.EOF, lexer.lineCount, lexer.column))
	return lexer.tokens, nil
}
