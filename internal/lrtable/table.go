package lrtable

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/slang/internal/grammar"
	"github.com/dekarrin/slang/internal/slangerr"
)

// ActionType distinguishes what an ACTION table cell tells the parser
// driver to do.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one ACTION table cell.
type Action struct {
	Type    ActionType
	State   int               // for ActionShift: state to shift to
	NT      string            // for ActionReduce: nonterminal being reduced to
	Prod    grammar.Production // for ActionReduce: the production reduced
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("s%d", a.State)
	case ActionReduce:
		return fmt.Sprintf("r(%s -> %s)", a.NT, a.Prod.String())
	case ActionAccept:
		return "acc"
	default:
		return ""
	}
}

// Equal reports whether a and o describe the same action.
func (a Action) Equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case ActionShift:
		return a.State == o.State
	case ActionReduce:
		return a.NT == o.NT && a.Prod.Equal(o.Prod)
	default:
		return true
	}
}

// Table is the canonical LR(1) action/goto table (spec §4.2/§4.3).
type Table struct {
	g       *grammar.Grammar // the augmented grammar the table was built over
	action  []map[string]Action
	goTo    []map[string]int
	Initial int
}

// Action returns the ACTION table entry for (state, terminal). A zero-value
// Action (Type ActionError) means there is no legal move, the empty-cell
// condition spec §4.3/§7 maps to a SyntaxError.
func (t *Table) Action(state int, terminal string) Action {
	return t.action[state][terminal]
}

// Goto returns the GOTO table entry for (state, nonterminal), and whether
// an entry exists at all.
func (t *Table) Goto(state int, nonterminal string) (int, bool) {
	s, ok := t.goTo[state][nonterminal]
	return s, ok
}

// NumStates returns the number of automaton states the table covers.
func (t *Table) NumStates() int {
	return len(t.action)
}

// Snapshot exports the table's action/goto maps and initial state so
// internal/persist can serialize a compiled table to a side-file without
// reaching into Table's unexported fields (spec §6's "Persisted state":
// a compiled LR(1) table may be cached in a side file).
func (t *Table) Snapshot() (initial int, action []map[string]Action, goTo []map[string]int) {
	return t.Initial, t.action, t.goTo
}

// FromSnapshot rebuilds a Table from data previously produced by
// Snapshot, for use against grammar g (the same augmented grammar the
// table was originally compiled from; internal/persist is responsible for
// invalidating a cached table if the source .tok/.syn content changed).
func FromSnapshot(g *grammar.Grammar, initial int, action []map[string]Action, goTo []map[string]int) *Table {
	return &Table{g: g, Initial: initial, action: action, goTo: goTo}
}

// Build constructs the canonical LR(1) action/goto table for g (spec §4.2's
// full closure/goto/table-population pipeline), resolving shift/reduce
// conflicts via g's precedence/associativity declarations the way spec §4.2
// describes, and failing with a SpecError-compatible error listing every
// conflict it could not resolve outright (every reduce/reduce conflict is
// listed; precedence never resolves one).
//
// g must not already be augmented; Build augments it internally.
func Build(g *grammar.Grammar) (*Table, error) {
	augmented := g.Augmented()
	sets := grammar.ComputeSets(augmented)
	auto := buildAutomaton(augmented, sets)

	t := &Table{
		g:       augmented,
		action:  make([]map[string]Action, len(auto.States)),
		goTo:    make([]map[string]int, len(auto.States)),
		Initial: 0,
	}
	for i := range auto.States {
		t.action[i] = map[string]Action{}
		t.goTo[i] = map[string]int{}
	}

	var unresolved []string

	// production index lookup, so reduce actions and %prec overrides can be
	// keyed consistently: the index of prod within nt's declared Productions.
	prodIndex := func(nt string, prod grammar.Production) int {
		for i, p := range g.Rule(nt).Productions {
			if p.Equal(prod) {
				return i
			}
		}
		return -1
	}

	for i, items := range auto.States {
		for sym, j := range auto.Transitions[i] {
			if sym == grammar.EndSym {
				// the END_SYM edge leaves the state holding
				// START_SYM -> S . END_SYM: that is where input is accepted
				t.action[i][sym] = Action{Type: ActionAccept}
			} else if augmented.IsTerminal(sym) {
				t.setShift(&unresolved, i, sym, j, prodIndex)
			} else {
				t.goTo[i][sym] = j
			}
		}

		for _, it := range items {
			if !it.AtEnd() {
				continue
			}
			if it.NonTerminal == augmented.Start {
				if it.Lookahead == grammar.EndSym {
					t.action[i][grammar.EndSym] = Action{Type: ActionAccept}
				}
				continue
			}
			t.setReduce(&unresolved, i, it.Lookahead, it.NonTerminal, it.Production(), prodIndex)
		}
	}

	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return t, slangerr.SpecError{Conflicts: unresolved}
	}

	return t, nil
}

func (t *Table) setShift(unresolved *[]string, state int, term string, next int, prodIndex func(string, grammar.Production) int) {
	newAct := Action{Type: ActionShift, State: next}
	existing, ok := t.action[state][term]
	if !ok || existing.Type == ActionError {
		t.action[state][term] = newAct
		return
	}
	if existing.Equal(newAct) {
		return
	}
	if existing.Type == ActionShift {
		// two shifts into different states on the same symbol cannot
		// happen out of a deterministic automaton; keep the first.
		return
	}

	// shift/reduce conflict: resolve using the existing reduce's production
	// precedence versus the shift terminal's precedence (spec §4.2).
	winner, resolved := resolveConflict(t.g, term, existing.NT, existing.Prod, prodIndex)
	if !resolved {
		*unresolved = append(*unresolved, fmt.Sprintf("state %d, %q: shift/reduce conflict (shift to %d vs reduce %s -> %s)", state, term, next, existing.NT, existing.Prod.String()))
		return
	}
	if winner == ActionShift {
		t.action[state][term] = newAct
	}
}

func (t *Table) setReduce(unresolved *[]string, state int, term, nt string, prod grammar.Production, prodIndex func(string, grammar.Production) int) {
	newAct := Action{Type: ActionReduce, NT: nt, Prod: prod}
	existing, ok := t.action[state][term]
	if !ok || existing.Type == ActionError {
		t.action[state][term] = newAct
		return
	}
	if existing.Equal(newAct) {
		return
	}

	switch existing.Type {
	case ActionShift:
		winner, resolved := resolveConflict(t.g, term, nt, prod, prodIndex)
		if !resolved {
			*unresolved = append(*unresolved, fmt.Sprintf("state %d, %q: shift/reduce conflict (shift to %d vs reduce %s -> %s)", state, term, existing.State, nt, prod.String()))
			return
		}
		if winner == ActionReduce {
			t.action[state][term] = newAct
		}
	case ActionReduce:
		// reduce/reduce conflicts have no precedence-based resolution
		// mechanism (spec §4.2: "Reduce-reduce conflicts are always
		// reported") and so are never resolved, regardless of which
		// production was discovered first.
		*unresolved = append(*unresolved, fmt.Sprintf("state %d, %q: reduce/reduce conflict (%s -> %s vs %s -> %s)", state, term, existing.NT, existing.Prod.String(), nt, prod.String()))
	}
}

// resolveConflict decides a shift/reduce conflict on terminal term against a
// reduce of (nt -> prod), per spec §4.2: shift if term's precedence number
// is smaller (binds tighter); reduce if larger; if equal, break by the
// production's associativity (left reduces, right shifts, nonassoc is an
// error). A symbol or production lacking a declared precedence cannot be
// resolved automatically and is reported as an unresolved conflict.
func resolveConflict(g *grammar.Grammar, term, nt string, prod grammar.Production, prodIndex func(string, grammar.Production) int) (winner ActionType, resolved bool) {
	termPrec, termHas := g.Prec[term]
	if !termHas {
		return 0, false
	}

	idx := prodIndex(nt, prod)
	prodPrec, prodAssoc, hasOverride := g.ProdPrecedence(nt, idx)
	if !hasOverride {
		// spec §4.2: "the last terminal in β" — scan from the right,
		// skipping nonterminal symbols, since a production's rightmost
		// SYMBOL is very often a recursive nonterminal (e.g. "Expr PLUS
		// Expr") rather than the operator that should carry precedence.
		lastTerm := ""
		for i := len(prod) - 1; i >= 0; i-- {
			if g.IsTerminal(prod[i]) {
				lastTerm = prod[i]
				break
			}
		}
		if lastTerm == "" {
			return 0, false
		}
		p, ok := g.Prec[lastTerm]
		if !ok {
			return 0, false
		}
		prodPrec = p
		prodAssoc = g.AssocOf[lastTerm]
	}

	switch {
	case termPrec < prodPrec:
		return ActionShift, true
	case termPrec > prodPrec:
		return ActionReduce, true
	default:
		switch prodAssoc {
		case grammar.AssocLeft:
			return ActionReduce, true
		case grammar.AssocRight:
			return ActionShift, true
		default:
			return 0, false
		}
	}
}

// String renders the table as an ASCII grid via rosed, the same approach
// the teacher's internal/ictiobus/parse/clr1.go uses for its own table
// dump.
func (t *Table) String() string {
	terms := t.g.Terminals()
	nts := make([]string, 0, len(t.g.NonTerminals()))
	for _, nt := range t.g.NonTerminals() {
		if nt == t.g.Start {
			continue
		}
		nts = append(nts, nt)
	}

	headers := []string{"state"}
	for _, term := range terms {
		headers = append(headers, "A:"+term)
	}
	for _, nt := range nts {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}
	for i := 0; i < t.NumStates(); i++ {
		row := []string{fmt.Sprintf("%d", i)}
		for _, term := range terms {
			row = append(row, t.action[i][term].String())
		}
		for _, nt := range nts {
			if s, ok := t.goTo[i][nt]; ok {
				row = append(row, fmt.Sprintf("%d", s))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.Edit("").InsertTableOpts(0, data, 10, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}
