package lrtable

import (
	"sort"

	"github.com/dekarrin/slang/internal/grammar"
)

// Automaton is the canonical collection of LR(1) item sets (spec §4.2's
// "sets-of-items construction") together with the goto transitions between
// them. States are addressed by index, with state 0 always the initial
// state built from the augmented grammar's start item.
type Automaton struct {
	States      []itemSet
	Transitions []map[string]int // Transitions[state][symbol] = next state
}

// buildAutomaton runs the closure/goto fixed point described in spec §4.2:
// start from the augmented grammar's lone start item with lookahead $, repeatedly
// take CLOSURE, then GOTO on every grammar symbol, adding any newly
// discovered item set as a new state, until no new states or transitions
// appear.
func buildAutomaton(g *grammar.Grammar, sets *grammar.Sets) *Automaton {
	startItem := Item{
		NonTerminal: g.Start,
		Left:        nil,
		Right:       append([]string{}, g.Rule(g.Start).Productions[0]...),
		Lookahead:   grammar.EndSym,
	}
	// g here is already augmented by the caller, so Start's sole production
	// is [S, $]; the whole production starts after the dot.
	start := closure(g, sets, newItemSet(startItem))

	a := &Automaton{}
	stateIndex := map[string]int{}

	addState := func(s itemSet) int {
		key := s.setKey()
		if idx, ok := stateIndex[key]; ok {
			return idx
		}
		idx := len(a.States)
		stateIndex[key] = idx
		a.States = append(a.States, s)
		a.Transitions = append(a.Transitions, map[string]int{})
		return idx
	}

	addState(start)

	symbols := make([]string, 0, len(g.Terminals())+len(g.NonTerminals()))
	symbols = append(symbols, g.Terminals()...)
	symbols = append(symbols, g.NonTerminals()...)
	sort.Strings(symbols)

	for i := 0; i < len(a.States); i++ {
		for _, sym := range symbols {
			next := gotoSet(g, sets, a.States[i], sym)
			if len(next) == 0 {
				continue
			}
			j := addState(next)
			a.Transitions[i][sym] = j
		}
	}

	return a
}

// closure computes CLOSURE(I) per spec §4.2: repeatedly, for every item
// [A -> α.Bβ, a] in the set where B is a nonterminal, add [B -> .γ, b] for
// every production B -> γ and every b ∈ FIRST(βa) (FIRST of β followed by
// a, falling back to a itself when β is nullable).
func closure(g *grammar.Grammar, sets *grammar.Sets, items itemSet) itemSet {
	out := itemSet{}
	for k, it := range items {
		out[k] = it
	}

	for {
		grew := false
		for _, it := range out {
			B := it.NextSymbol()
			if B == "" || !g.IsNonTerminal(B) {
				continue
			}
			beta := it.Right[1:]
			lookaheads := sets.FirstOfSeq(beta, it.Lookahead)

			rule := g.Rule(B)
			for _, prod := range rule.Productions {
				for _, b := range lookaheads.Sorted() {
					newItem := Item{
						NonTerminal: B,
						Left:        nil,
						Right:       append([]string{}, prod...),
						Lookahead:   b,
					}
					if out.add(newItem) {
						grew = true
					}
				}
			}
		}
		if !grew {
			break
		}
	}

	return out
}

// gotoSet computes GOTO(I, X) per spec §4.2: the closure of the set of
// items [A -> αX.β, a] for every [A -> α.Xβ, a] in I.
func gotoSet(g *grammar.Grammar, sets *grammar.Sets, items itemSet, sym string) itemSet {
	moved := itemSet{}
	for _, it := range items {
		if it.NextSymbol() != sym {
			continue
		}
		moved.add(it.Advance())
	}
	if len(moved) == 0 {
		return nil
	}
	return closure(g, sets, moved)
}
