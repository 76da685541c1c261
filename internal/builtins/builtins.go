// Package builtins seeds an internal/env.Env's global frame with the
// built-in functions of spec §4.6: print, size, array, random, floor.
// Grounded on the original predecessor's interpreter/builtins.py table of
// (name, arity, handler) entries, adapted to the teacher's style of
// exposing a single exported Install/Seed entrypoint rather than import-
// time side effects (the teacher's internal/tunascript/funcs.go does the
// same for Tunascript's built-in function table).
package builtins

import (
	"math"
	"math/rand"

	"github.com/dekarrin/slang/internal/env"
	"github.com/dekarrin/slang/internal/slangerr"
	"github.com/dekarrin/slang/internal/value"
)

// Printer receives the textual output of a print() call. internal/repl and
// cmd/slang wire this to stdout; tests can substitute a buffer.
type Printer func(s string)

// Install binds every built-in into e's global frame. out receives each
// print() call's rendered line (with a trailing newline already removed;
// callers deciding how lines are joined).
func Install(e *env.Env, out Printer) {
	g := e.Global()
	g.Bind("print", value.Bi(value.Builtin{Name: "print", Arity: 1, Handler: printHandler(out)}))
	g.Bind("size", value.Bi(value.Builtin{Name: "size", Arity: 1, Handler: sizeHandler}))
	g.Bind("array", value.Bi(value.Builtin{Name: "array", Arity: 1, Handler: arrayHandler}))
	g.Bind("random", value.Bi(value.Builtin{Name: "random", Arity: 0, Handler: randomHandler}))
	g.Bind("floor", value.Bi(value.Builtin{Name: "floor", Arity: 1, Handler: floorHandler}))
}

// printHandler implements spec §4.6's print(x): renders its one argument
// with Value.String (spec §9 fixes print's arity at 1).
func printHandler(out Printer) value.BuiltinHandler {
	return func(args []value.Value) (value.Value, error) {
		out(args[0].String())
		return value.Int(0), nil
	}
}

// sizeHandler implements size(x): the element count of an Array, or the
// rune length of a String (spec §4.6).
func sizeHandler(args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind() {
	case value.KindArray:
		return value.Int(int64(len(v.Elems()))), nil
	case value.KindString:
		return value.Int(int64(len([]rune(v.Str())))), nil
	default:
		return value.Value{}, slangerr.TypeError{Message: "size() requires an array or string"}
	}
}

// arrayHandler implements array(n): an Array of n elements, each
// initialized to the integer zero (spec §4.6).
func arrayHandler(args []value.Value) (value.Value, error) {
	n := args[0]
	if n.Kind() != value.KindNumber {
		return value.Value{}, slangerr.TypeError{Message: "array() size must be a number"}
	}
	size := n.Int64()
	if size < 0 {
		return value.Value{}, slangerr.IndexError{Message: "array() size must be non-negative"}
	}
	elems := make([]value.Value, size)
	for i := range elems {
		elems[i] = value.Int(0)
	}
	return value.Array(elems), nil
}

// randomHandler implements random(): a uniformly distributed random float
// in [0, 1) (spec §4.6).
func randomHandler(args []value.Value) (value.Value, error) {
	return value.Float(rand.Float64()), nil
}

// floorHandler implements floor(x): the largest integer not greater than
// x, returned as an integer Number (spec §4.6).
func floorHandler(args []value.Value) (value.Value, error) {
	x := args[0]
	if x.Kind() != value.KindNumber {
		return value.Value{}, slangerr.TypeError{Message: "floor() requires a number"}
	}
	return value.Int(int64(math.Floor(x.Float64()))), nil
}
