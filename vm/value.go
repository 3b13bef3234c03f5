package vm

import "fmt"

// Array is the VM's runtime-value tag for an array literal: a flat, growable
// list of Values. The interpreter package carries an equivalent type of its
// own; the two backends do not share one, per each being a self-contained
// execution core.
type Array struct {
	Elements []any
}

// isTruthy implements the truthiness coercion used by JUMP_IF_FALSE and NOT:
// boolean uses its own value, number is false only for zero, null is false,
// every other kind is true.
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

// sameKind reports whether a and b carry the same runtime-value kind, the
// precondition for a kind-aware EQ/NEQ comparison.
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
	case *Array:
		_, ok := b.(*Array)
		return ok
	}
	return false
}

// stringifyForPrint renders a value for PRINT, using `%g` for numbers.
func stringifyForPrint(value any) string {
	switch v := value.(type) {
	case float64:
		return fmt.Sprintf("%g", v)
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	case *Array:
		return "[array]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// stringifyForCoercion renders a value for the ADD operator's string-
// coercion fallback, using `%.2f` for numbers, distinct from print's `%g` -
// matching the tree-walking evaluator's own print/coercion split.
func stringifyForCoercion(value any) string {
	switch v := value.(type) {
	case float64:
		return fmt.Sprintf("%.2f", v)
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	case *Array:
		return "[array]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
