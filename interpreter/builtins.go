package interpreter

import (
	"fmt"
	"math"
	"strings"
)

// registerBuiltins binds the standard library of native functions into the
// root environment. Every entry fails with a TypeMismatch-flavored
// RuntimeError when called with the wrong argument count or kinds.
func registerBuiltins(env *Environment) {
	register := func(name string, arity int, fn func(args []any) (any, error)) {
		env.define(name, &BuiltinFunction{
			Name: name,
			Call: func(i *TreeWalkInterpreter, args []any) (any, error) {
				if arity >= 0 && len(args) != arity {
					return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, arity, len(args))
				}
				return fn(args)
			},
		})
	}

	numeric1 := func(name string, f func(float64) float64) {
		register(name, 1, func(args []any) (any, error) {
			n, ok := args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("%s expects a numeric argument", name)
			}
			return f(n), nil
		})
	}

	register("print", -1, func(args []any) (any, error) {
		var builder strings.Builder
		for _, arg := range args {
			builder.WriteString(stringifyForPrint(arg))
		}
		builder.WriteString("\n")
		fmt.Print(builder.String())
		return nil, nil
	})

	numeric1("floor", math.Floor)
	numeric1("ceil", math.Ceil)
	numeric1("sqrt", math.Sqrt)
	numeric1("sin", math.Sin)
	numeric1("cos", math.Cos)
	numeric1("tan", math.Tan)
	numeric1("log", math.Log)
	numeric1("round", math.Round)

	register("pow", 2, func(args []any) (any, error) {
		base, ok1 := args[0].(float64)
		exp, ok2 := args[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("pow expects two numeric arguments")
		}
		return math.Pow(base, exp), nil
	})

	register("concat", -1, func(args []any) (any, error) {
		var builder strings.Builder
		for _, arg := range args {
			s, ok := arg.(string)
			if !ok {
				return nil, fmt.Errorf("concat expects string arguments")
			}
			builder.WriteString(s)
		}
		return builder.String(), nil
	})

	register("substring", 3, func(args []any) (any, error) {
		s, ok1 := args[0].(string)
		start, ok2 := args[1].(float64)
		end, ok3 := args[2].(float64)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("substring expects (string, number, number)")
		}
		runes := []rune(s)
		lo, hi := int(start), int(end)
		if lo < 0 || hi > len(runes) || lo > hi {
			return nil, fmt.Errorf("substring index out of bounds")
		}
		return string(runes[lo:hi]), nil
	})

	register("to_upper", 1, func(args []any) (any, error) {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("to_upper expects a string argument")
		}
		return strings.ToUpper(s), nil
	})

	register("to_lower", 1, func(args []any) (any, error) {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("to_lower expects a string argument")
		}
		return strings.ToLower(s), nil
	})

	register("index_of", 2, func(args []any) (any, error) {
		s, ok1 := args[0].(string)
		substr, ok2 := args[1].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("index_of expects two string arguments")
		}
		return float64(strings.Index(s, substr)), nil
	})

	register("replace", 3, func(args []any) (any, error) {
		s, ok1 := args[0].(string)
		old, ok2 := args[1].(string)
		new_, ok3 := args[2].(string)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("replace expects three string arguments")
		}
		return strings.ReplaceAll(s, old, new_), nil
	})

	register("to_string", 1, func(args []any) (any, error) {
		return stringifyForCoercion(args[0]), nil
	})
}
