package interpreter

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/simondevenish/EmberScript/lexer"
	"github.com/simondevenish/EmberScript/parser"
)

// runAndCapture lexes, parses, and interprets source, returning whatever
// was written to standard output.
func runAndCapture(t *testing.T, source string) string {
	t.Helper()

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	p := parser.Make(tokens)
	statements, errs := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("Parse() errors: %v", errs)
	}

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	Make().Interpret(statements)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out := runAndCapture(t, `var x = 2; var y = 3; print(x + y * 4);`)
	if out != "14\n" {
		t.Errorf("got %q, want %q", out, "14\n")
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	out := runAndCapture(t, `var n = "world"; print("Hello, " + n + "!");`)
	if out != "Hello, world!\n" {
		t.Errorf("got %q, want %q", out, "Hello, world!\n")
	}
}

func TestInterpretWhileLoopSum(t *testing.T) {
	out := runAndCapture(t, `var s = 0; var i = 1; while (i <= 5) { s = s + i; i = i + 1; } print(s);`)
	if out != "15\n" {
		t.Errorf("got %q, want %q", out, "15\n")
	}
}

func TestInterpretForLoopArrayIndex(t *testing.T) {
	out := runAndCapture(t, `var a = [10, 20, 30]; for (var i = 0; i < 3; i = i + 1) { print(a[i]); }`)
	want := "10\n20\n30\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestInterpretIfElseIfChain(t *testing.T) {
	out := runAndCapture(t, `var n = 7;
if (n == 0) { print("zero"); } else if (n < 5) { print("small"); } else { print("big"); }`)
	if out != "big\n" {
		t.Errorf("got %q, want %q", out, "big\n")
	}
}

func TestInterpretUserFunction(t *testing.T) {
	out := runAndCapture(t, `function inc(x) { x = x + 1; print(x); } inc(41);`)
	if out != "42\n" {
		t.Errorf("got %q, want %q", out, "42\n")
	}
}

func TestInterpretFunctionReturnValue(t *testing.T) {
	out := runAndCapture(t, `function add(a, b) { return a + b; } print(add(2, 3));`)
	if out != "5\n" {
		t.Errorf("got %q, want %q", out, "5\n")
	}
}

func TestInterpretBreakAndContinue(t *testing.T) {
	out := runAndCapture(t, `
var i = 0;
while (i < 10) {
	i = i + 1;
	if (i == 3) { continue; }
	if (i == 5) { break; }
	print(i);
}`)
	want := "1\n2\n4\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestInterpretForLoopScopeIsolation(t *testing.T) {
	out := runAndCapture(t, `
for (var i = 0; i < 3; i = i + 1) {}
print(i);`)
	if out == "" {
		t.Fatalf("expected a runtime error to be printed for out-of-scope 'i'")
	}
}

func TestInterpretBuiltins(t *testing.T) {
	out := runAndCapture(t, `print(to_upper("hi")); print(floor(3.7)); print(pow(2, 10));`)
	want := "HI\n3\n1024\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
