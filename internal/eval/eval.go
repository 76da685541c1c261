// Package eval implements the tree-walking evaluator of spec §4.4/§4.5: it
// walks the normalized AST internal/parser produces and executes it against
// an internal/env.Env, internal/value.Value runtime.
//
// Grounded on the original predecessor's interpreter/evaluator.py dispatch
// (a big if/elif chain keyed on node type) and on the teacher's
// tunascript/interpreter Interpreter design for how Go code structures a
// recursive AST walk with an explicit per-call Env argument, but the
// control-flow signal (Result below) and the flat, shape-dispatched Expr
// node are specific to this toolchain: the grammar used here reduces every
// expression alternative to a single "Expr"-labeled node (spec §9's
// "grammar ambiguity/precedence" design note), so the evaluator recovers
// which alternative it is looking at from the node's arity and the symbols
// of its immediate children rather than from a distinct node Sym per
// alternative.
package eval

import (
	"fmt"

	"github.com/dekarrin/slang/internal/ast"
	"github.com/dekarrin/slang/internal/env"
	"github.com/dekarrin/slang/internal/slangerr"
	"github.com/dekarrin/slang/internal/value"
)

// maxCallDepth is the soft recursion cap spec §5 calls for ("bound
// recursion depth to avoid exhausting the Go call stack on runaway
// recursive slang programs").
const maxCallDepth = 1000

// signalKind distinguishes the three ways evaluating a statement sequence
// can end, per spec §4.4's non-local control flow design note.
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
)

// result is the control-flow signal threaded out of statement evaluation:
// an ordinary value, or an in-flight return/break that must propagate past
// intervening block scopes until it reaches the construct that handles it
// (a call boundary for return, a loop boundary for break), per spec §4.4.
type result struct {
	kind signalKind
	val  value.Value
}

func normalResult() result { return result{kind: signalNone} }

// Interp walks a program's AST against a shared Env. A fresh Interp should
// be used per top-level Eval call that starts a new call-depth count;
// internal/repl reuses the same Env across calls but constructs a new
// Interp each time, matching how the original predecessor's REPL kept a
// single environment but a fresh evaluator frame per executed chunk.
type Interp struct {
	env   *env.Env
	depth int
}

// New returns an Interp operating against e.
func New(e *env.Env) *Interp {
	return &Interp{env: e}
}

// Run evaluates program's top-level statements in order (spec §4.4's
// "evaluate a Program: run each top-level statement in sequence"). A
// top-level return or break is a SyntaxError (spec §7: "return/break
// outside their valid enclosing construct"), since neither a call nor a
// loop encloses the program root.
func (in *Interp) Run(program *ast.Node) error {
	res, err := in.evalStmtSeq(program.Children)
	if err != nil {
		return err
	}
	switch res.kind {
	case signalReturn:
		return slangerr.SyntaxError{Message: "return outside of function body"}
	case signalBreak:
		return slangerr.SyntaxError{Message: "break outside of loop body"}
	}
	return nil
}

// evalStmtSeq evaluates stmts in order, short-circuiting and propagating
// the first non-normal result (spec §4.4: "a return/break anywhere in a
// statement sequence aborts the remainder of that sequence").
func (in *Interp) evalStmtSeq(stmts []*ast.Node) (result, error) {
	for _, s := range stmts {
		res, err := in.evalStmt(s)
		if err != nil {
			return result{}, err
		}
		if res.kind != signalNone {
			return res, nil
		}
	}
	return normalResult(), nil
}

// evalStmt evaluates one top-level-statement-shaped node: a bare Expr
// (the "Expr SEMI" alternative, after Stmt's contraction splices it
// straight into the parent's children), or one of If/While/For/Def/
// Return/Break.
func (in *Interp) evalStmt(n *ast.Node) (result, error) {
	switch n.Sym {
	case "Expr":
		_, err := in.evalExpr(n)
		return normalResult(), err
	case "If":
		return in.evalIf(n)
	case "While":
		return in.evalWhile(n)
	case "For":
		return in.evalFor(n)
	case "Def":
		return normalResult(), in.evalDef(n)
	case "Return":
		return in.evalReturn(n)
	case "Break":
		return result{kind: signalBreak}, nil
	default:
		return result{}, fmt.Errorf("eval: unrecognized statement node %q", n.Sym)
	}
}

// evalBlock pushes a fresh lexical frame, runs block's statements, and pops
// it unconditionally on the way out (spec §4.4: "push/pop frame: must be
// paired", "Pop runs even when the frame's owning construct exits via
// Return/Break").
func (in *Interp) evalBlock(block *ast.Node) (result, error) {
	in.env.Push()
	defer in.env.Pop()
	return in.evalStmtSeq(block.Children)
}

// evalIf implements If: [cond Expr, thenBlock, elseBlock?] (spec §4.4
// block semantics; ElseOpt is contracted so an absent else simply omits
// the third child).
func (in *Interp) evalIf(n *ast.Node) (result, error) {
	cond, err := in.evalExpr(n.Child(0))
	if err != nil {
		return result{}, err
	}
	if cond.Truthy() {
		return in.evalBlock(n.Child(1))
	}
	if else_ := n.Child(2); else_ != nil {
		return in.evalBlock(else_)
	}
	return normalResult(), nil
}

// evalWhile implements While: [cond Expr, body Block]. A Break signal is
// absorbed here (this is the loop boundary spec §4.4 describes); a Return
// signal propagates past the loop to its enclosing call.
func (in *Interp) evalWhile(n *ast.Node) (result, error) {
	cond, body := n.Child(0), n.Child(1)
	for {
		c, err := in.evalExpr(cond)
		if err != nil {
			return result{}, err
		}
		if !c.Truthy() {
			return normalResult(), nil
		}
		res, err := in.evalBlock(body)
		if err != nil {
			return result{}, err
		}
		if res.kind == signalBreak {
			return normalResult(), nil
		}
		if res.kind == signalReturn {
			return res, nil
		}
	}
}

// evalFor implements For: [ID var, IN terminal (ignored), Expr iterable,
// Block body]. The iterable must be an Array (spec §4.5's "for (x in
// arr)"); each element is bound fresh into the loop body's own block frame
// every iteration, the same way a while body would see a fresh frame.
func (in *Interp) evalFor(n *ast.Node) (result, error) {
	varName := n.Child(0).Lexeme
	iterExpr := n.Child(2)
	body := n.Child(3)

	iter, err := in.evalExpr(iterExpr)
	if err != nil {
		return result{}, err
	}
	if iter.Kind() != value.KindArray {
		return result{}, slangerr.TypeError{Message: "for-in requires an array operand"}
	}

	for _, elem := range iter.Elems() {
		in.env.Push()
		in.env.Top().Bind(varName, elem)
		res, err := in.evalStmtSeq(body.Children)
		in.env.Pop()
		if err != nil {
			return result{}, err
		}
		if res.kind == signalBreak {
			return normalResult(), nil
		}
		if res.kind == signalReturn {
			return res, nil
		}
	}
	return normalResult(), nil
}

// evalDef implements Def: [ID name, ID param..., Block body] (ParamListOpt/
// ParamList are both contracted, so zero or more bare ID terminals appear
// between the name and the trailing Block). The function value closes over
// nothing: per spec §9's lexical-scoping redesign, a call only ever sees
// [global, callFrame], so there is no enclosing-scope environment to
// capture in the first place.
func (in *Interp) evalDef(n *ast.Node) error {
	name := n.Child(0).Lexeme
	body := n.Children[len(n.Children)-1]
	params := make([]string, 0, len(n.Children)-2)
	for _, c := range n.Children[1 : len(n.Children)-1] {
		params = append(params, c.Lexeme)
	}
	fn := value.Fn(value.UserFn{Name: name, Params: params, Body: body})
	in.env.Assign(name, fn)
	return nil
}

// evalReturn implements Return: [Expr?]. A bare `return;` yields Number 0,
// matching the original predecessor's implicit-nil-as-zero convention
// (spec has no null/nil value in its Value union).
func (in *Interp) evalReturn(n *ast.Node) (result, error) {
	if expr := n.Child(0); expr != nil {
		v, err := in.evalExpr(expr)
		if err != nil {
			return result{}, err
		}
		return result{kind: signalReturn, val: v}, nil
	}
	return result{kind: signalReturn, val: value.Int(0)}, nil
}

// Call invokes fn with already-evaluated args, enforcing arity, recursion
// depth, and the lexical-scoping call boundary (spec §9: PushCall exposes
// only [global, callFrame] to the callee).
func (in *Interp) Call(fn value.Value, args []value.Value) (value.Value, error) {
	switch fn.Kind() {
	case value.KindBuiltin:
		b := fn.Builtin()
		if b.Arity >= 0 && len(args) != b.Arity {
			return value.Value{}, slangerr.SyntaxError{Message: fmt.Sprintf("%s expects %d argument(s), got %d", b.Name, b.Arity, len(args))}
		}
		return b.Handler(args)

	case value.KindUserFn:
		u := fn.UserFn()
		if len(args) != len(u.Params) {
			return value.Value{}, slangerr.SyntaxError{Message: fmt.Sprintf("%s expects %d argument(s), got %d", u.Name, len(u.Params), len(args))}
		}
		in.depth++
		defer func() { in.depth-- }()
		if in.depth > maxCallDepth {
			return value.Value{}, slangerr.TypeError{Message: "maximum call depth exceeded"}
		}

		callFrame := env.NewFrame()
		for i, p := range u.Params {
			callFrame.Bind(p, args[i])
		}
		restore := in.env.PushCall(callFrame)
		defer restore()

		body, _ := u.Body.(*ast.Node)
		res, err := in.evalStmtSeq(body.Children)
		if err != nil {
			return value.Value{}, err
		}
		if res.kind == signalReturn {
			return res.val, nil
		}
		return value.Int(0), nil

	default:
		return value.Value{}, slangerr.TypeError{Message: "value is not callable"}
	}
}
