// Package parser implements the shift/reduce/accept driver described in
// spec §4.3: it consumes a token stream against a compiled LR(1) table and
// produces a concrete syntax tree, then normalizes it to an AST using the
// grammar's K/C sets.
//
// Grounded on the teacher's internal/ictiobus parser-driver shape (a state
// stack plus a value stack walked in lockstep) but built over this
// toolchain's own internal/lrtable.Table instead of ictiobus's, since the
// teacher's table type carries no precedence/associativity conflict
// resolution at all.
package parser

import (
	"fmt"

	"github.com/dekarrin/slang/internal/ast"
	"github.com/dekarrin/slang/internal/grammar"
	"github.com/dekarrin/slang/internal/lrtable"
	"github.com/dekarrin/slang/internal/slangerr"
	"github.com/dekarrin/slang/internal/token"
	"github.com/dekarrin/slang/internal/util"
)

// Parser drives a compiled LR(1) table over a token stream.
type Parser struct {
	table *lrtable.Table
	g     *grammar.Grammar // un-augmented grammar: source of K, C, terminals
	k     int              // stored context-line count; Parse does not read it
}

// New returns a Parser for grammar g (already built into table via
// lrtable.Build). k is stored on the Parser but Parse does not use it: the
// excerpt window of a SyntaxError is chosen by whoever calls its
// FullMessage.
func New(g *grammar.Grammar, table *lrtable.Table, k int) *Parser {
	return &Parser{table: table, g: g, k: k}
}

// Parse runs the shift/reduce/accept loop of spec §4.3 over tokens, then
// normalizes the resulting CST into an AST via the grammar's K/C sets. On
// success it returns the single root AST node (or, if the grammar's start
// symbol itself contracts, the flattened list of what would have been its
// children — spec §4.3's "root-level contraction is permitted").
func (p *Parser) Parse(tokens []token.Token, source string) ([]*ast.Node, error) {
	stream := token.NewSliceStream(tokens, lastLine(tokens))

	stateStack := []int{p.table.Initial}
	var valueStack []*ast.Node

	for {
		tok := stream.Peek()

		top := stateStack[len(stateStack)-1]
		act := p.table.Action(top, tok.Label)

		switch act.Type {
		case lrtable.ActionShift:
			leaf := &ast.Node{Sym: tok.Label, Lexeme: tok.Lexeme, Start: tok.StartLine, End: tok.EndLine}
			valueStack = append(valueStack, leaf)
			stateStack = append(stateStack, act.State)
			stream.Next()

		case lrtable.ActionReduce:
			n := len(act.Prod)
			var children []*ast.Node
			if n > 0 {
				children = append(children, valueStack[len(valueStack)-n:]...)
				valueStack = valueStack[:len(valueStack)-n]
				stateStack = stateStack[:len(stateStack)-n]
			}

			node := &ast.Node{Sym: act.NT, Children: children}
			if len(children) > 0 {
				node.Start = children[0].Start
				node.End = children[len(children)-1].End
			}
			valueStack = append(valueStack, node)

			gotoState, ok := p.table.Goto(stateStack[len(stateStack)-1], act.NT)
			if !ok {
				return nil, fmt.Errorf("parser: no GOTO entry for state %d on %q (malformed table)", stateStack[len(stateStack)-1], act.NT)
			}
			stateStack = append(stateStack, gotoState)

		case lrtable.ActionAccept:
			root := valueStack[len(valueStack)-1]
			out := ast.Normalize(root, p.g.Keep, p.g.Contract)
			if len(out) == 0 {
				return nil, nil
			}
			return out, nil

		default:
			return nil, p.syntaxError(tok, source)
		}
	}
}

func (p *Parser) syntaxError(tok token.Token, source string) error {
	expected := p.expectedTerminals(tok)
	msg := "unexpected token"
	if len(expected) > 0 {
		msg = fmt.Sprintf("unexpected token; expected one of %s", util.MakeTextList(expected))
	}
	return slangerr.SyntaxError{
		Line:     tok.StartLine,
		Lexeme:   tok.Lexeme,
		Message:  msg,
		Source:   source,
		FullLine: tok.FullLine,
	}
}

// expectedTerminals is best-effort: it cannot recover the failing state
// post-hoc from the table alone without re-deriving it, so it reports
// nothing rather than guessing; kept as an extension point for a future
// table format that retains per-state expected-terminal lists (as
// spec §4.3's "table emission" note allows).
func (p *Parser) expectedTerminals(tok token.Token) []string {
	return nil
}

func lastLine(tokens []token.Token) int {
	if len(tokens) == 0 {
		return 1
	}
	return tokens[len(tokens)-1].EndLine
}
