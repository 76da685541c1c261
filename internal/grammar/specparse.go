package grammar

import (
	"fmt"
	"strings"
)

// ParseSpec parses a .syn specification (spec §4.2/§6) into a Grammar.
//
// Format, grounded directly on the original predecessor's parsegen.py
// (A [:|<] rhs1 | rhs2 ..., continuation lines starting with "|", "EMPTY"
// for epsilon) with the precedence/associativity directive lines spec adds
// on top (absent from the original, which never finished its LR(1)
// table-builder sketch):
//
//	: k1 k2 ...                  (optional, first line) keep-terminal set K
//	%left t1 t2 ...               (optional, any number) precedence directives
//	%right t1 t2 ...
//	%nonassoc t1 t2 ...
//	A : rhs1 | rhs2 | ...         keep A's node in the AST
//	A < rhs1 | rhs2 | ...         contract A's node (splice into parent)
//	  | rhs3                     continuation of the previous rule
//
// Each %left/%right/%nonassoc line increments a shared precedence counter
// starting at 1 (smaller number = higher priority, per spec §4.2); every
// terminal named on that line shares that precedence and associativity. A
// terminal referenced in a production but never declared via AddTerm
// elsewhere is auto-registered as a terminal the first time it is seen
// (lowercase-vs-uppercase is not significant; any symbol that is not a rule
// LHS is a terminal, matching the original's auto-registration behavior in
// tunascript/grammar.go's parseRule).
func ParseSpec(spec string) (*Grammar, error) {
	g := New()

	lines := strings.Split(spec, "\n")
	precCounter := 0
	sawFirstContentLine := false

	var pendingNT string
	var pendingContract bool
	var pendingProds [][]string
	var pendingPrecTerms []string
	var pendingEmpty bool
	var cur []string

	flushProd := func() error {
		if len(cur) == 0 && !pendingEmpty {
			return fmt.Errorf("cannot have empty production without explicit EMPTY in rule %q", pendingNT)
		}
		body, precTerm := ParseProductionPrecedence(cur)
		if pendingEmpty {
			pendingProds = append(pendingProds, []string{})
		} else {
			pendingProds = append(pendingProds, body)
		}
		pendingPrecTerms = append(pendingPrecTerms, precTerm)
		cur = nil
		pendingEmpty = false
		return nil
	}

	flushRule := func() error {
		if pendingNT == "" {
			return nil
		}
		if err := flushProd(); err != nil {
			return err
		}
		if pendingContract {
			g.Contract[pendingNT] = true
		}
		for i, p := range pendingProds {
			if err := g.AddRule(pendingNT, Production(p)); err != nil {
				return err
			}
			if precTerm := pendingPrecTerms[i]; precTerm != "" {
				key := prodKey(pendingNT, i)
				g.ProdPrec[key] = g.Prec[precTerm]
				g.ProdAssoc[key] = g.AssocOf[precTerm]
			}
		}
		pendingNT = ""
		pendingContract = false
		pendingProds = nil
		pendingPrecTerms = nil
		return nil
	}

	// addTerms appends terms to the production in progress, closing it and
	// starting the next alternative at every "|".
	addTerms := func(terms []string) error {
		for _, t := range terms {
			if t == "|" {
				if err := flushProd(); err != nil {
					return err
				}
				continue
			}
			appendTerms(&cur, &pendingEmpty, []string{t})
		}
		return nil
	}

	for lineNum, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms := strings.Fields(line)

		if !sawFirstContentLine {
			sawFirstContentLine = true
			if terms[0] == ":" {
				for _, k := range terms[1:] {
					g.Keep[k] = true
				}
				continue
			}
		}

		if terms[0] == "%left" || terms[0] == "%right" || terms[0] == "%nonassoc" {
			precCounter++
			assoc := AssocNone
			switch terms[0] {
			case "%left":
				assoc = AssocLeft
			case "%right":
				assoc = AssocRight
			}
			for _, t := range terms[1:] {
				g.AddTerm(t)
				g.Prec[t] = precCounter
				g.AssocOf[t] = assoc
			}
			continue
		}

		if terms[0] == "|" {
			if pendingNT == "" {
				return nil, fmt.Errorf(".syn spec line %d: continuation %q with no preceding rule", lineNum+1, line)
			}
			if err := flushProd(); err != nil {
				return nil, fmt.Errorf(".syn spec line %d: %w", lineNum+1, err)
			}
			if err := addTerms(terms[1:]); err != nil {
				return nil, fmt.Errorf(".syn spec line %d: %w", lineNum+1, err)
			}
			continue
		}

		// start of a new rule: "NAME [:|<] rhs..."
		if len(terms) < 2 || (terms[1] != ":" && terms[1] != "<") {
			return nil, fmt.Errorf(".syn spec line %d: expected \"nonterminal [:|<] production\" but got %q", lineNum+1, line)
		}
		if err := flushRule(); err != nil {
			return nil, fmt.Errorf(".syn spec: %w", err)
		}
		pendingNT = terms[0]
		pendingContract = terms[1] == "<"
		if err := addTerms(terms[2:]); err != nil {
			return nil, fmt.Errorf(".syn spec line %d: %w", lineNum+1, err)
		}
	}

	if err := flushRule(); err != nil {
		return nil, fmt.Errorf(".syn spec: %w", err)
	}

	// auto-register every RHS symbol that never appears as a rule LHS as a
	// terminal, so callers need not pre-declare every terminal up front
	// (the grammar's own productions are authoritative).
	for _, nt := range g.NonTerminals() {
		for _, prod := range g.Rule(nt).Productions {
			for _, sym := range prod {
				if g.IsNonTerminal(sym) {
					continue
				}
				g.AddTerm(sym)
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf(".syn spec: %w", err)
	}
	return g, nil
}

func appendTerms(cur *[]string, empty *bool, terms []string) {
	for _, t := range terms {
		if t == "EMPTY" {
			*empty = true
			continue
		}
		*cur = append(*cur, t)
	}
}

// ParseProductionPrecedence parses an explicit "%prec NAME" trailing
// annotation from a raw continuation token list, returning the terminal
// whose precedence/associativity the production should borrow instead of
// its rightmost terminal (spec §4.2: "or the rule's explicit precedence if
// annotated"). Unused tokens are returned unchanged.
func ParseProductionPrecedence(terms []string) (rest []string, precTerm string) {
	for i := 0; i < len(terms)-1; i++ {
		if terms[i] == "%prec" {
			return append(append([]string{}, terms[:i]...), terms[i+2:]...), terms[i+1]
		}
	}
	return terms, ""
}
