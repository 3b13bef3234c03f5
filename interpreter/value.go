package interpreter

import (
	"fmt"

	"github.com/simondevenish/EmberScript/ast"
)

// Array is the runtime representation of an array literal: an exclusively
// owned, growable sequence of Values.
type Array struct {
	Elements []any
}

// BuiltinFunction wraps a natively implemented function. Call receives the
// already-evaluated argument list and returns the call's result Value.
type BuiltinFunction struct {
	Name string
	Call func(i *TreeWalkInterpreter, args []any) (any, error)
}

// UserFunction is a function value bound to a name, its declared parameters,
// and the body it closes over. Body is a borrowed pointer into the AST: it
// must outlive every call made through this value.
type UserFunction struct {
	Name   string
	Params []string
	Body   ast.BlockStmt
}

// deepCopy clones a Value so that reading a binding out of the Environment
// never aliases mutable state (notably arrays) with its source scope.
func deepCopy(value any) any {
	switch v := value.(type) {
	case *Array:
		cloned := make([]any, len(v.Elements))
		for i, e := range v.Elements {
			cloned[i] = deepCopy(e)
		}
		return &Array{Elements: cloned}
	default:
		return v
	}
}

// isTruthy reports the truthiness of a Value: boolean uses its own value,
// number is false only for zero, null is false, every other kind is true.
// Matches the VM's isTruthy exactly, per this language's equivalence
// requirement between the two backends.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case nil:
		return false
	default:
		return true
	}
}

// stringifyForPrint renders value using the `print` coercion rules (%g for
// numbers).
func stringifyForPrint(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case *Array:
		return "[array]"
	case *UserFunction:
		return fmt.Sprintf("[function %s]", v.Name)
	case *BuiltinFunction:
		return fmt.Sprintf("[function %s]", v.Name)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// stringifyForCoercion renders value using the explicit to_string coercion
// rule (%.2f for numbers), distinct from print's %g per the language's own
// documented inconsistency between the two code paths.
func stringifyForCoercion(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case *Array:
		return "[array]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// sameKind reports whether a and b hold the same Value kind, used by
// equality comparisons across mismatched kinds.
func sameKind(a, b any) bool {
	switch a.(type) {
	case float64:
		_, ok := b.(float64)
		return ok
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	case nil:
		return b == nil
	default:
		return false
	}
}
