package eval

import (
	"github.com/dekarrin/slang/internal/ast"
	"github.com/dekarrin/slang/internal/slangerr"
	"github.com/dekarrin/slang/internal/value"
)

// evalExpr dispatches on an "Expr"-labeled node's shape: since every
// alternative of the grammar's flat Expr nonterminal reduces to a node
// with the same Sym, the actual alternative is recovered from the node's
// arity and the symbols of its leading/middle children (spec §9's grammar-
// ambiguity design note; the shapes below mirror the %prec-annotated
// productions in examples/slang.syn one for one).
func (in *Interp) evalExpr(n *ast.Node) (value.Value, error) {
	switch len(n.Children) {
	case 1:
		return in.evalPrimary(n.Child(0))

	case 2:
		switch {
		case n.Child(0).Sym == "NOT":
			return in.evalNot(n.Child(1))
		case n.Child(0).Sym == "LPAREN":
			return in.evalExpr(n.Child(1))
		case n.Child(0).Sym == "ID" && n.Child(1).Sym == "LPAREN":
			return in.evalCall(n.Child(0).Lexeme, nil)
		case n.Child(0).Sym == "LBRACE":
			return in.evalArrayLiteral(n.Children[1:])
		}

	default:
		switch {
		case n.Child(0).Sym == "LBRACE" && len(n.Children) >= 3 &&
			n.Child(1).Sym == "ID" && n.Child(2).Sym == "IN":
			return in.evalComprehension(n)
		case n.Child(0).Sym == "LBRACE":
			return in.evalArrayLiteral(n.Children[1:])
		case n.Child(0).Sym == "ID" && n.Child(1).Sym == "LPAREN":
			return in.evalCall(n.Child(0).Lexeme, n.Children[2:])
		case len(n.Children) == 3 && n.Child(1).Sym == "LBRACKET":
			return in.evalIndex(n.Child(0), n.Child(2))
		case len(n.Children) == 3 && n.Child(1).Sym == "ASSIGN":
			return in.evalAssign(n.Child(0), n.Child(2))
		case len(n.Children) == 3:
			return in.evalBinary(n.Child(0), n.Child(1).Sym, n.Child(2))
		}
	}
	return value.Value{}, slangerr.SyntaxError{Message: "unrecognized expression shape"}
}

// evalPrimary evaluates a bare terminal leaf: ID (variable lookup), NUM,
// or STR.
func (in *Interp) evalPrimary(leaf *ast.Node) (value.Value, error) {
	switch leaf.Sym {
	case "ID":
		v, ok := in.env.Lookup(leaf.Lexeme)
		if !ok {
			return value.Value{}, slangerr.NameError{Name: leaf.Lexeme}
		}
		return v, nil
	case "NUM":
		return value.ParseNumber(leaf.Lexeme)
	case "STR":
		return value.String(leaf.Lexeme), nil
	default:
		return value.Value{}, slangerr.SyntaxError{Message: "unrecognized primary " + leaf.Sym}
	}
}

func (in *Interp) evalNot(operand *ast.Node) (value.Value, error) {
	v, err := in.evalExpr(operand)
	if err != nil {
		return value.Value{}, err
	}
	if v.Truthy() {
		return value.Int(0), nil
	}
	return value.Int(1), nil
}

// evalAssign implements spec §4.5 assignment: the left side must be a bare
// ID (plain variable assignment) or an index expression (array element
// assignment); anything else is a syntax-level misuse of "=".
func (in *Interp) evalAssign(lhs, rhs *ast.Node) (value.Value, error) {
	v, err := in.evalExpr(rhs)
	if err != nil {
		return value.Value{}, err
	}

	if len(lhs.Children) == 1 && lhs.Child(0).Sym == "ID" {
		in.env.Assign(lhs.Child(0).Lexeme, v)
		return v, nil
	}

	if len(lhs.Children) == 3 && lhs.Child(1).Sym == "LBRACKET" {
		arr, err := in.evalExpr(lhs.Child(0))
		if err != nil {
			return value.Value{}, err
		}
		idxVal, err := in.evalExpr(lhs.Child(2))
		if err != nil {
			return value.Value{}, err
		}
		if arr.Kind() != value.KindArray {
			return value.Value{}, slangerr.TypeError{Message: "cannot index-assign into a non-array value"}
		}
		if idxVal.Kind() != value.KindNumber {
			return value.Value{}, slangerr.TypeError{Message: "array index must be a number"}
		}
		idx := int(idxVal.Int64())
		elems := arr.Elems()
		if idx < 0 || idx >= len(elems) {
			return value.Value{}, slangerr.IndexError{Message: "array index out of bounds"}
		}
		arr.SetElem(idx, v)
		return v, nil
	}

	return value.Value{}, slangerr.SyntaxError{Message: "left side of assignment must be a variable or array index"}
}

func (in *Interp) evalIndex(arrExpr, idxExpr *ast.Node) (value.Value, error) {
	arr, err := in.evalExpr(arrExpr)
	if err != nil {
		return value.Value{}, err
	}
	idxVal, err := in.evalExpr(idxExpr)
	if err != nil {
		return value.Value{}, err
	}
	if arr.Kind() != value.KindArray {
		return value.Value{}, slangerr.TypeError{Message: "cannot index a non-array value"}
	}
	if idxVal.Kind() != value.KindNumber {
		return value.Value{}, slangerr.TypeError{Message: "array index must be a number"}
	}
	idx := int(idxVal.Int64())
	elems := arr.Elems()
	if idx < 0 || idx >= len(elems) {
		return value.Value{}, slangerr.IndexError{Message: "array index out of bounds"}
	}
	return elems[idx], nil
}

func (in *Interp) evalCall(name string, argNodes []*ast.Node) (value.Value, error) {
	fn, ok := in.env.Lookup(name)
	if !ok {
		return value.Value{}, slangerr.NameError{Name: name}
	}
	args := make([]value.Value, len(argNodes))
	for i, a := range argNodes {
		v, err := in.evalExpr(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return in.Call(fn, args)
}

func (in *Interp) evalArrayLiteral(elemNodes []*ast.Node) (value.Value, error) {
	elems := make([]value.Value, len(elemNodes))
	for i, e := range elemNodes {
		v, err := in.evalExpr(e)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.Array(elems), nil
}

// evalComprehension implements spec §4.5's array comprehension: {x in arr
// : cond} or {x in arr : cond, map}. cond (CompMapOpt's preceding Expr)
// gates whether an element is included at all; map, if present, is the
// value appended for an included element, otherwise x itself is appended.
func (in *Interp) evalComprehension(n *ast.Node) (value.Value, error) {
	varName := n.Child(1).Lexeme
	source := n.Child(3)
	condExpr := n.Child(4)
	var mapExpr *ast.Node
	if len(n.Children) >= 6 {
		mapExpr = n.Child(5)
	}

	src, err := in.evalExpr(source)
	if err != nil {
		return value.Value{}, err
	}
	if src.Kind() != value.KindArray {
		return value.Value{}, slangerr.TypeError{Message: "array comprehension source must be an array"}
	}

	var out []value.Value
	in.env.Push()
	defer in.env.Pop()
	for _, elem := range src.Elems() {
		in.env.Top().Bind(varName, elem)
		keep, err := in.evalExpr(condExpr)
		if err != nil {
			return value.Value{}, err
		}
		if !keep.Truthy() {
			continue
		}
		if mapExpr != nil {
			v, err := in.evalExpr(mapExpr)
			if err != nil {
				return value.Value{}, err
			}
			out = append(out, v)
		} else {
			out = append(out, elem)
		}
	}
	return value.Array(out), nil
}
