// Package value implements the runtime Value tagged union of spec §3:
// Number, String, Array, UserFn, Builtin. Grounded on the teacher's
// tunascript/syntax/tsvalue.go TSValue design (a single struct with a kind
// tag and per-kind fields), extended with Array/UserFn/Builtin kinds the
// teacher's value never needed and stripped of the Bool kind spec has no
// use for (truthiness is derived from Number/String/Array directly).
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates which field of a Value is meaningful.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindArray
	KindUserFn
	KindBuiltin
)

// UserFn is a function value defined in source: name (for error messages
// and recursive self-reference), parameter names in declaration order, and
// its body AST. The body's type is left as `any` here to avoid an import
// cycle with internal/ast (internal/eval, which already imports both
// packages, does the type assertion back to *ast.Node).
type UserFn struct {
	Name   string
	Params []string
	Body   any
}

// BuiltinHandler is the Go function backing a Builtin value. args are the
// evaluated argument Values as-is; each handler checks their Kind and reads
// the underlying number, string, or elements itself.
type BuiltinHandler func(args []Value) (Value, error)

// Builtin is a built-in function value (spec §4.6): print/size/array/
// random/floor, plus whatever internal/builtins seeds the global frame
// with. Arity < 0 means variadic.
type Builtin struct {
	Name    string
	Arity   int
	Handler BuiltinHandler
}

// Value is the evaluator's tagged-union runtime value.
type Value struct {
	kind Kind

	// number: isInt selects whether i or f is meaningful, per spec §3's
	// "Number(f64 or i64-with-fallback-to-f64)".
	isInt bool
	i     int64
	f     float64

	s string

	// arr is a pointer-backed slice: arrays are reference-semantic (spec
	// §3 "Arrays are mutable in place"), so copying a Value carries the
	// same backing array.
	arr *[]Value

	fn  *UserFn
	bin *Builtin
}

// Int returns an integer Number.
func Int(i int64) Value { return Value{kind: KindNumber, isInt: true, i: i} }

// Float returns a floating-point Number.
func Float(f float64) Value { return Value{kind: KindNumber, f: f} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an Array value wrapping elems (taken by reference, not
// copied).
func Array(elems []Value) Value {
	return Value{kind: KindArray, arr: &elems}
}

// Fn returns a UserFn value.
func Fn(fn UserFn) Value { return Value{kind: KindUserFn, fn: &fn} }

// Bi returns a Builtin value.
func Bi(b Builtin) Value { return Value{kind: KindBuiltin, bin: &b} }

func (v Value) Kind() Kind { return v.kind }

// IsInt reports whether a Number value is backed by an int64 rather than a
// float64.
func (v Value) IsInt() bool { return v.kind == KindNumber && v.isInt }

// Float64 returns v's numeric value as a float64, regardless of whether it
// is backed by int64 or float64. Panics if v is not a Number; callers must
// type-check first (internal/eval always does, raising TypeError).
func (v Value) Float64() float64 {
	if v.kind != KindNumber {
		panic(fmt.Sprintf("value: Float64 called on non-Number value of kind %d", v.kind))
	}
	if v.isInt {
		return float64(v.i)
	}
	return v.f
}

// Int64 returns v's numeric value truncated to an int64 (spec §4.5's
// "truncated to integer index" for array access/for-loop bounds).
func (v Value) Int64() int64 {
	if v.isInt {
		return v.i
	}
	return int64(v.f)
}

// Str returns v's string contents. Panics if v is not a String.
func (v Value) Str() string {
	if v.kind != KindString {
		panic(fmt.Sprintf("value: Str called on non-String value of kind %d", v.kind))
	}
	return v.s
}

// Elems returns the backing slice of an Array value by reference: mutating
// the returned slice through index assignment mutates v itself.
func (v Value) Elems() []Value {
	if v.arr == nil {
		return nil
	}
	return *v.arr
}

// SetElem assigns elems[idx] = val in place (spec §4.5 index-assignment).
func (v Value) SetElem(idx int, val Value) {
	(*v.arr)[idx] = val
}

// UserFn returns the function value's details. Panics if v is not a
// UserFn.
func (v Value) UserFn() *UserFn {
	if v.kind != KindUserFn {
		panic(fmt.Sprintf("value: UserFn called on non-UserFn value of kind %d", v.kind))
	}
	return v.fn
}

// Builtin returns the built-in function's details. Panics if v is not a
// Builtin.
func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		panic(fmt.Sprintf("value: Builtin called on non-Builtin value of kind %d", v.kind))
	}
	return v.bin
}

// Truthy implements spec §4.5's definition: non-zero Number, non-empty
// String, non-empty Array; functions are always truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return v.Float64() != 0
	case KindString:
		return v.s != ""
	case KindArray:
		return len(v.Elems()) != 0
	default:
		return true
	}
}

// Equal implements spec §4.5's "== uses structural equality across all
// types".
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.Float64() == o.Float64()
	case KindString:
		return v.s == o.s
	case KindArray:
		a, b := v.Elems(), o.Elems()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindUserFn:
		return v.fn == o.fn
	case KindBuiltin:
		return v.bin == o.bin
	default:
		return false
	}
}

// String renders v's textual form, used by print and by string-coercion in
// "+" (spec §4.5: "Number+String -> String (coerce number to textual
// form)").
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.i, 10)
		}
		if math.Trunc(v.f) == v.f && !math.IsInf(v.f, 0) {
			return strconv.FormatFloat(v.f, 'f', 1, 64)
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindArray:
		parts := make([]string, len(v.Elems()))
		for i, e := range v.Elems() {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindUserFn:
		return fmt.Sprintf("<function %s>", v.fn.Name)
	case KindBuiltin:
		return fmt.Sprintf("<built-in %s>", v.bin.Name)
	default:
		return "<unknown>"
	}
}

// ParseNumber parses a source numeral into a Number value, preferring an
// integer reading when the literal contains no '.' or exponent (spec
// §4.5's "num -> Number (integer if it parses as one, else float)").
func ParseNumber(lexeme string) (Value, error) {
	if !strings.ContainsAny(lexeme, ".eE") {
		if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid numeric literal %q: %w", lexeme, err)
	}
	return Float(f), nil
}
