package token

import (
	"testing"
)

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		line      int32
		column    int
		want      Token
	}{
		{
			name:      "Create ASSIGN token",
			tokenType: ASSIGN,
			line:      1,
			column:    3,
			want:      Token{TokenType: ASSIGN, Lexeme: "=", Line: 1, Column: 3},
		},
		{
			name:      "Create LPA token",
			tokenType: LPA,
			line:      2,
			column:    0,
			want:      Token{TokenType: LPA, Lexeme: "(", Line: 2, Column: 0},
		},
		{
			name:      "Create AND_AND token",
			tokenType: AND_AND,
			line:      4,
			column:    5,
			want:      Token{TokenType: AND_AND, Lexeme: "&&", Line: 4, Column: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, tt.line, tt.column)
			if got != tt.want {
				t.Errorf("CreateToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	got := CreateLiteralToken(INT, int64(42), "42", 1, 0)
	want := Token{TokenType: INT, Lexeme: "42", Literal: int64(42), Line: 1, Column: 0}
	if got != want {
		t.Errorf("CreateLiteralToken() = %v, want %v", got, want)
	}
}

func TestKeyWordsLookup(t *testing.T) {
	tests := []struct {
		lexeme string
		want   TokenType
	}{
		{"function", FUNC},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"for", FOR},
		{"return", RETURN},
		{"break", BREAK},
		{"continue", CONTINUE},
		{"var", VAR},
		{"const", CONST},
		{"let", LET},
		{"true", TRUE},
		{"false", FALSE},
		{"null", NULL},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			got, ok := KeyWords[tt.lexeme]
			if !ok {
				t.Fatalf("expected %q to be a keyword", tt.lexeme)
			}
			if got != tt.want {
				t.Errorf("KeyWords[%q] = %v, want %v", tt.lexeme, got, tt.want)
			}
		})
	}
}

func TestNotAKeyword(t *testing.T) {
	if _, ok := KeyWords["myVar"]; ok {
		t.Error("expected 'myVar' to not be a keyword")
	}
}
