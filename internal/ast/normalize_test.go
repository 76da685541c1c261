package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Normalize_DropsUnkeptTerminalsAndContractsNonterminals(t *testing.T) {
	assert := assert.New(t)

	// CST for "( id )": paren nodes dropped (not kept), Wrapper nonterminal
	// contracted (spliced into its parent).
	idTok := &Node{Sym: "id", Lexeme: "x"}
	lparen := &Node{Sym: "lparen", Lexeme: "("}
	rparen := &Node{Sym: "rparen", Lexeme: ")"}
	wrapper := &Node{Sym: "Wrapper", Children: []*Node{lparen, idTok, rparen}}
	root := &Node{Sym: "Expr", Children: []*Node{wrapper}}

	keep := map[string]bool{"id": true}
	contract := map[string]bool{"Wrapper": true}

	out := Normalize(root, keep, contract)
	assert.Len(out, 1)
	assert.Equal("Expr", out[0].Sym)
	assert.Len(out[0].Children, 1)
	assert.Equal("id", out[0].Children[0].Sym)
}

func Test_Normalize_RootContraction_FlattensToMultipleNodes(t *testing.T) {
	assert := assert.New(t)

	a := &Node{Sym: "id", Lexeme: "a"}
	b := &Node{Sym: "id", Lexeme: "b"}
	root := &Node{Sym: "List", Children: []*Node{a, b}}

	keep := map[string]bool{"id": true}
	contract := map[string]bool{"List": true}

	out := Normalize(root, keep, contract)
	assert.Len(out, 2)
	assert.Equal("a", out[0].Lexeme)
	assert.Equal("b", out[1].Lexeme)
}
