package lexer

import (
	"testing"

	"github.com/simondevenish/EmberScript/token"
)

func tokenTypesOf(tokens []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.TokenType
	}
	return types
}

func TestScanPunctuationAndOperators(t *testing.T) {
	source := `var x = 1 + 2 * 3 / 4 % 5 - 6; x == 1 && x != 2 || x <= 3 >= 4;`
	lex := New(source)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	want := []token.TokenType{
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.INT, token.ADD, token.INT,
		token.MULT, token.INT, token.DIV, token.INT, token.MOD, token.INT, token.SUB, token.INT, token.SEMICOLON,
		token.IDENTIFIER, token.EQUAL_EQUAL, token.INT, token.AND_AND, token.IDENTIFIER, token.NOT_EQUAL, token.INT,
		token.OR_OR, token.IDENTIFIER, token.LESS_EQUAL, token.INT, token.LARGER_EQUAL, token.INT, token.SEMICOLON,
		token.EOF,
	}

	got := tokenTypesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch - got: %d, want: %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d mismatch - got: %v, want: %v", i, got[i], want[i])
		}
	}
}

func TestScanKeywords(t *testing.T) {
	source := "if else while for function return break continue var const let true false null"
	lex := New(source)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	want := []token.TokenType{
		token.IF, token.ELSE, token.WHILE, token.FOR, token.FUNC, token.RETURN, token.BREAK, token.CONTINUE,
		token.VAR, token.CONST, token.LET, token.TRUE, token.FALSE, token.NULL, token.EOF,
	}

	got := tokenTypesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch - got: %d, want: %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d mismatch - got: %v, want: %v", i, got[i], want[i])
		}
	}
}

func TestScanStringEscapes(t *testing.T) {
	source := `"hello\nworld\t\"quoted\"\\"`
	lex := New(source)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens (STRING, EOF) got %d", len(tokens))
	}
	want := "hello\nworld\t\"quoted\"\\"
	if tokens[0].Literal != want {
		t.Errorf("string literal = %q, want %q", tokens[0].Literal, want)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	lex := New(`"unterminated`)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}
	if tokens[0].TokenType != token.ERROR {
		t.Errorf("expected ERROR token, got %v", tokens[0].TokenType)
	}
}

func TestScanInvalidEscape(t *testing.T) {
	lex := New(`"bad \x escape"`)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}
	if tokens[0].TokenType != token.ERROR {
		t.Errorf("expected ERROR token, got %v", tokens[0].TokenType)
	}
}

func TestScanComments(t *testing.T) {
	source := "// a line comment\nvar x = 1; /* a block\ncomment */ var y = 2;"
	lex := New(source)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	want := []token.TokenType{
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.INT, token.SEMICOLON,
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.INT, token.SEMICOLON,
		token.EOF,
	}
	got := tokenTypesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch - got: %d, want: %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d mismatch - got: %v, want: %v", i, got[i], want[i])
		}
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		source string
		kind   token.TokenType
	}{
		{"42", token.INT},
		{"3.14", token.FLOAT},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			lex := New(tt.source)
			tokens, err := lex.Scan()
			if err != nil {
				t.Fatalf("Scan() returned error: %v", err)
			}
			if tokens[0].TokenType != tt.kind {
				t.Errorf("token type = %v, want %v", tokens[0].TokenType, tt.kind)
			}
			if tokens[0].Lexeme != tt.source {
				t.Errorf("lexeme = %q, want %q", tokens[0].Lexeme, tt.source)
			}
		})
	}
}

func TestScanArrayAndIndexPunctuation(t *testing.T) {
	lex := New("a[0]")
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}
	want := []token.TokenType{token.IDENTIFIER, token.LBRACKET, token.INT, token.RBRACKET, token.EOF}
	got := tokenTypesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch - got: %d, want: %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d mismatch - got: %v, want: %v", i, got[i], want[i])
		}
	}
}
