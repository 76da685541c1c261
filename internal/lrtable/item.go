// Package lrtable builds the canonical LR(1) action/goto table described in
// spec §4.2: closure/goto construction of the canonical collection of LR(1)
// item sets, followed by table population with precedence/associativity-based
// conflict resolution.
//
// Grounded on the teacher's internal/ictiobus/parse/clr1.go (Algorithm 4.56
// from the purple dragon book, which clr1.go already names directly) for the
// overall table-construction shape, and on nihei9-vartan's
// grammar/parsing_table.go resolveConflict for the precedence/associativity
// tie-breaking spec §4.2 requires and the teacher's grammar never supported
// (the teacher's Grammar has no precedence tables at all).
package lrtable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/slang/internal/grammar"
)

// Item is one LR(1) item: a production with a dot position and a lookahead
// terminal. Left holds the symbols before the dot, Right the symbols from
// the dot onward.
type Item struct {
	NonTerminal string
	Left        []string
	Right       []string
	Lookahead   string
}

// AtEnd reports whether the dot is at the end of the production (Right is
// empty), i.e. this item is reducible.
func (it Item) AtEnd() bool {
	return len(it.Right) == 0
}

// NextSymbol returns the symbol immediately after the dot, or "" if AtEnd.
func (it Item) NextSymbol() string {
	if it.AtEnd() {
		return ""
	}
	return it.Right[0]
}

// Advance returns the item with the dot moved one symbol to the right. The
// caller must ensure !AtEnd().
func (it Item) Advance() Item {
	next := Item{
		NonTerminal: it.NonTerminal,
		Left:        append(append([]string{}, it.Left...), it.Right[0]),
		Right:       append([]string{}, it.Right[1:]...),
		Lookahead:   it.Lookahead,
	}
	return next
}

// Production reconstructs the full right-hand side (Left followed by Right),
// used to identify which alternative of NonTerminal's rule this item comes
// from when recording a reduce action.
func (it Item) Production() grammar.Production {
	full := make([]string, 0, len(it.Left)+len(it.Right))
	full = append(full, it.Left...)
	full = append(full, it.Right...)
	return grammar.Production(full)
}

// key returns a string uniquely identifying this item, used as a set/map
// key for item-set deduplication during automaton construction.
func (it Item) key() string {
	var b strings.Builder
	b.WriteString(it.NonTerminal)
	b.WriteString(" -> ")
	b.WriteString(strings.Join(it.Left, " "))
	b.WriteString(" . ")
	b.WriteString(strings.Join(it.Right, " "))
	b.WriteString(" , ")
	b.WriteString(it.Lookahead)
	return b.String()
}

func (it Item) String() string {
	dot := strings.Join(it.Left, " ") + " ." + " " + strings.Join(it.Right, " ")
	return fmt.Sprintf("[%s -> %s, %s]", it.NonTerminal, strings.TrimSpace(dot), it.Lookahead)
}

// itemSet is an unordered, deduplicated collection of items, keyed by each
// item's key() so closure/goto can be compared for equality cheaply.
type itemSet map[string]Item

func newItemSet(items ...Item) itemSet {
	s := itemSet{}
	for _, it := range items {
		s[it.key()] = it
	}
	return s
}

// add inserts it into s, reporting whether it was not already present.
func (s itemSet) add(it Item) bool {
	k := it.key()
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = it
	return true
}

// setKey returns a canonical string identifying the whole set's contents,
// used to deduplicate LR(1) automaton states (two item sets with identical
// contents are the same state, per spec §4.2).
func (s itemSet) setKey() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}
