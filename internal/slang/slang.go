// Package slang wires the toolchain's stages together into a single
// pipeline: lex a source string, parse it against a compiled LR(1) table,
// and evaluate the resulting AST. cmd/slang and internal/repl both build
// on this rather than re-deriving the lex/parse/eval sequence themselves.
//
// Grounded on the teacher's engine.go, which plays the same "wire the
// subsystems together behind one small entrypoint" role for tunaq's game
// engine.
package slang

import (
	"github.com/dekarrin/slang/internal/ast"
	"github.com/dekarrin/slang/internal/builtins"
	"github.com/dekarrin/slang/internal/env"
	"github.com/dekarrin/slang/internal/eval"
	"github.com/dekarrin/slang/internal/grammar"
	"github.com/dekarrin/slang/internal/lexgen"
	"github.com/dekarrin/slang/internal/lrtable"
	"github.com/dekarrin/slang/internal/parser"
	"github.com/dekarrin/slang/internal/persist"
)

// Toolchain holds the compiled lexer and parser for one language
// definition (a .tok/.syn pair), ready to run many source programs against
// the same environment or a fresh one each time.
type Toolchain struct {
	lexer  *lexgen.Lexer
	g      *grammar.Grammar
	table  *lrtable.Table
	parser *parser.Parser
}

// Build compiles a .tok lexer spec and a .syn grammar spec into a ready
// Toolchain (spec §6's "spec files" external interface).
func Build(tokSpec, synSpec string) (*Toolchain, error) {
	lexRules, err := lexgen.ParseSpec(tokSpec)
	if err != nil {
		return nil, err
	}
	g, err := grammar.ParseSpec(synSpec)
	if err != nil {
		return nil, err
	}
	table, err := lrtable.Build(g)
	if err != nil {
		return nil, err
	}
	return &Toolchain{
		lexer:  lexgen.New(lexRules),
		g:      g,
		table:  table,
		parser: parser.New(g, table, 3),
	}, nil
}

// BuildCached is Build, but with the compiled LR(1) table cached at
// cachePath (spec §6's "Persisted state"): if cachePath holds a table
// previously saved for this exact tokSpec/synSpec pair, that table is
// reused instead of recomputing closure/goto construction; otherwise the
// table is built fresh and written to cachePath for next time.
func BuildCached(tokSpec, synSpec, cachePath string) (*Toolchain, error) {
	lexRules, err := lexgen.ParseSpec(tokSpec)
	if err != nil {
		return nil, err
	}
	g, err := grammar.ParseSpec(synSpec)
	if err != nil {
		return nil, err
	}

	hash := persist.Hash(tokSpec, synSpec)
	table, ok, err := persist.Load(cachePath, hash, g.Augmented())
	if err != nil {
		return nil, err
	}
	if !ok {
		table, err = lrtable.Build(g)
		if err != nil {
			return nil, err
		}
		if err := persist.Save(cachePath, hash, table); err != nil {
			return nil, err
		}
	}

	return &Toolchain{
		lexer:  lexgen.New(lexRules),
		g:      g,
		table:  table,
		parser: parser.New(g, table, 3),
	}, nil
}

// NewEnv returns a fresh environment with every built-in installed (spec
// §4.6), ready to run programs against. out receives each print() call's
// rendered line.
func NewEnv(out builtins.Printer) *env.Env {
	e := env.New()
	builtins.Install(e, out)
	return e
}

// Run lexes, parses, and evaluates source against e, returning the first
// error encountered at whichever stage it occurred in.
func (tc *Toolchain) Run(source string, e *env.Env) error {
	program, err := tc.Parse(source)
	if err != nil {
		return err
	}
	if program == nil {
		return nil
	}
	return eval.New(e).Run(program)
}

// Parse lexes and parses source, returning its normalized AST root (or nil
// if the program normalized away to nothing, e.g. an empty source file).
func (tc *Toolchain) Parse(source string) (*ast.Node, error) {
	tokens, err := tc.lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	roots, err := tc.parser.Parse(tokens, source)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, nil
	}
	return roots[0], nil
}

// Table exposes the compiled LR(1) table, e.g. for cmd/slang's --table flag
// to dump via Table.String().
func (tc *Toolchain) Table() *lrtable.Table {
	return tc.table
}
