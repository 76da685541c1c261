package eval

import (
	"github.com/dekarrin/slang/internal/ast"
	"github.com/dekarrin/slang/internal/slangerr"
	"github.com/dekarrin/slang/internal/value"
)

// evalBinary dispatches a two-operand Expr node by its operator terminal's
// Sym (spec §4.5's arithmetic/comparison/logic/range semantics). && and ||
// short-circuit: the right operand is only evaluated when the left
// doesn't already determine the result.
func (in *Interp) evalBinary(lhsNode *ast.Node, op string, rhsNode *ast.Node) (value.Value, error) {
	if op == "AND" || op == "OR" {
		return in.evalShortCircuit(lhsNode, op, rhsNode)
	}

	lhs, err := in.evalExpr(lhsNode)
	if err != nil {
		return value.Value{}, err
	}
	rhs, err := in.evalExpr(rhsNode)
	if err != nil {
		return value.Value{}, err
	}

	switch op {
	case "PLUS":
		return evalPlus(lhs, rhs)
	case "MINUS":
		return evalArith(lhs, rhs, op)
	case "STAR":
		return evalArith(lhs, rhs, op)
	case "SLASH":
		return evalArith(lhs, rhs, op)
	case "PERCENT":
		return evalArith(lhs, rhs, op)
	case "EQ":
		return boolValue(lhs.Equal(rhs)), nil
	case "LT", "GT", "LE", "GE":
		return evalCompare(lhs, rhs, op)
	case "RANGE":
		return evalRange(lhs, rhs, true)
	case "RANGEEXCL":
		return evalRange(lhs, rhs, false)
	default:
		return value.Value{}, slangerr.SyntaxError{Message: "unrecognized binary operator " + op}
	}
}

func (in *Interp) evalShortCircuit(lhsNode *ast.Node, op string, rhsNode *ast.Node) (value.Value, error) {
	lhs, err := in.evalExpr(lhsNode)
	if err != nil {
		return value.Value{}, err
	}
	if op == "OR" && lhs.Truthy() {
		return boolValue(true), nil
	}
	if op == "AND" && !lhs.Truthy() {
		return boolValue(false), nil
	}
	rhs, err := in.evalExpr(rhsNode)
	if err != nil {
		return value.Value{}, err
	}
	return boolValue(rhs.Truthy()), nil
}

func boolValue(b bool) value.Value {
	if b {
		return value.Int(1)
	}
	return value.Int(0)
}

// evalPlus implements spec §4.5's overloaded "+": Number+Number (numeric
// add, int-preserving when both sides are int), Number+String or
// String+Number (coerce the number to its textual form and concatenate),
// String+String (concatenate), Array+Array (concatenate into a new
// array).
func evalPlus(lhs, rhs value.Value) (value.Value, error) {
	switch {
	case lhs.Kind() == value.KindNumber && rhs.Kind() == value.KindNumber:
		if lhs.IsInt() && rhs.IsInt() {
			return value.Int(lhs.Int64() + rhs.Int64()), nil
		}
		return value.Float(lhs.Float64() + rhs.Float64()), nil
	case lhs.Kind() == value.KindString || rhs.Kind() == value.KindString:
		if lhs.Kind() == value.KindArray || rhs.Kind() == value.KindArray {
			return value.Value{}, slangerr.TypeError{Message: "cannot add an array to a string"}
		}
		return value.String(lhs.String() + rhs.String()), nil
	case lhs.Kind() == value.KindArray && rhs.Kind() == value.KindArray:
		out := make([]value.Value, 0, len(lhs.Elems())+len(rhs.Elems()))
		out = append(out, lhs.Elems()...)
		out = append(out, rhs.Elems()...)
		return value.Array(out), nil
	default:
		return value.Value{}, slangerr.TypeError{Message: "operands to + must both be numbers, both be arrays, or involve a string"}
	}
}

// evalArith implements the purely-numeric operators: -, *, /, %. Both
// operands must be Numbers; division and modulo by zero raise
// ArithmeticError (spec §7).
func evalArith(lhs, rhs value.Value, op string) (value.Value, error) {
	if lhs.Kind() != value.KindNumber || rhs.Kind() != value.KindNumber {
		return value.Value{}, slangerr.TypeError{Message: "operands to " + op + " must be numbers"}
	}
	bothInt := lhs.IsInt() && rhs.IsInt()

	switch op {
	case "MINUS":
		if bothInt {
			return value.Int(lhs.Int64() - rhs.Int64()), nil
		}
		return value.Float(lhs.Float64() - rhs.Float64()), nil
	case "STAR":
		if bothInt {
			return value.Int(lhs.Int64() * rhs.Int64()), nil
		}
		return value.Float(lhs.Float64() * rhs.Float64()), nil
	case "SLASH":
		if bothInt {
			if rhs.Int64() == 0 {
				return value.Value{}, slangerr.ArithmeticError{Message: "division by zero"}
			}
			if lhs.Int64()%rhs.Int64() == 0 {
				return value.Int(lhs.Int64() / rhs.Int64()), nil
			}
			return value.Float(float64(lhs.Int64()) / float64(rhs.Int64())), nil
		}
		if rhs.Float64() == 0 {
			return value.Value{}, slangerr.ArithmeticError{Message: "division by zero"}
		}
		return value.Float(lhs.Float64() / rhs.Float64()), nil
	case "PERCENT":
		if bothInt {
			if rhs.Int64() == 0 {
				return value.Value{}, slangerr.ArithmeticError{Message: "modulo by zero"}
			}
			return value.Int(lhs.Int64() % rhs.Int64()), nil
		}
		if rhs.Float64() == 0 {
			return value.Value{}, slangerr.ArithmeticError{Message: "modulo by zero"}
		}
		return value.Float(float64(int64(lhs.Float64()) % int64(rhs.Float64()))), nil
	default:
		return value.Value{}, slangerr.SyntaxError{Message: "unrecognized arithmetic operator " + op}
	}
}

// evalCompare implements <, >, <=, >=: defined for Number/Number
// (numeric) and String/String (lexicographic) pairs only.
func evalCompare(lhs, rhs value.Value, op string) (value.Value, error) {
	var less, equal bool
	switch {
	case lhs.Kind() == value.KindNumber && rhs.Kind() == value.KindNumber:
		less = lhs.Float64() < rhs.Float64()
		equal = lhs.Float64() == rhs.Float64()
	case lhs.Kind() == value.KindString && rhs.Kind() == value.KindString:
		less = lhs.Str() < rhs.Str()
		equal = lhs.Str() == rhs.Str()
	default:
		return value.Value{}, slangerr.TypeError{Message: "operands to " + op + " must both be numbers or both be strings"}
	}
	switch op {
	case "LT":
		return boolValue(less), nil
	case "GT":
		return boolValue(!less && !equal), nil
	case "LE":
		return boolValue(less || equal), nil
	case "GE":
		return boolValue(!less), nil
	default:
		return value.Value{}, slangerr.SyntaxError{Message: "unrecognized comparison operator " + op}
	}
}

// evalRange implements .. (inclusive) and ... (exclusive): both endpoints
// must be Numbers, truncated to integers, producing an Array of the
// integers from lo to hi (inclusive endpoint only for ..). A descending
// range (lo > hi) yields an empty array rather than erroring, matching the
// original predecessor's range() behavior.
func evalRange(lhs, rhs value.Value, inclusive bool) (value.Value, error) {
	if lhs.Kind() != value.KindNumber || rhs.Kind() != value.KindNumber {
		return value.Value{}, slangerr.IndexError{Message: "range endpoints must be numbers"}
	}
	lo, hi := lhs.Int64(), rhs.Int64()
	if !inclusive {
		hi--
	}
	if lo > hi {
		return value.Array(nil), nil
	}
	out := make([]value.Value, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, value.Int(i))
	}
	return value.Array(out), nil
}
