package grammar

import "github.com/dekarrin/slang/internal/util"

// Sets holds the computed nullable/FIRST/FOLLOW relations for a grammar, per
// spec §4.2's fixed-point algorithm.
type Sets struct {
	Nullable map[string]bool
	First    map[string]util.StringSet
	Follow   map[string]util.StringSet
}

// ComputeSets runs the fixed-point iteration described in spec §4.2:
//
//   - every terminal t: FIRST(t) = {t}, nullable(t) = false.
//   - nullable(A) becomes true iff some production A -> β1...βk has all βi
//     nullable (k may be 0, i.e. an epsilon production).
//   - FIRST(A) ⊇ FIRST(βi) for every production whose prefix β1...βi-1 is
//     all-nullable.
//   - FOLLOW(βi) ⊇ FIRST(βj) for the smallest j>i with all intermediates
//     nullable; FOLLOW(βi) ⊇ FOLLOW(A) when the suffix after βi is all
//     nullable.
//
// Iterates until no set grows.
func ComputeSets(g *Grammar) *Sets {
	s := &Sets{
		Nullable: map[string]bool{},
		First:    map[string]util.StringSet{},
		Follow:   map[string]util.StringSet{},
	}

	for _, t := range g.Terminals() {
		s.First[t] = util.NewStringSet(t)
		s.Nullable[t] = false
	}
	s.First[EndSym] = util.NewStringSet(EndSym)
	s.Nullable[EndSym] = false

	for _, nt := range g.NonTerminals() {
		s.First[nt] = util.NewStringSet()
		s.Follow[nt] = util.NewStringSet()
	}

	allNullable := func(syms []string) bool {
		for _, sym := range syms {
			if !s.Nullable[sym] {
				return false
			}
		}
		return true
	}

	for {
		grew := false

		for _, nt := range g.NonTerminals() {
			for _, prod := range g.Rule(nt).Productions {
				if !s.Nullable[nt] && allNullable(prod) {
					s.Nullable[nt] = true
					grew = true
				}

				for i := range prod {
					if allNullable(prod[:i]) {
						if s.First[nt].AddSet(s.First[prod[i]]) {
							grew = true
						}
					}
				}
			}
		}

		for _, nt := range g.NonTerminals() {
			for _, prod := range g.Rule(nt).Productions {
				for i, sym := range prod {
					if !g.IsNonTerminal(sym) {
						continue
					}

					// FOLLOW(sym) gets FIRST of the nearest non-nullable
					// successor, plus FIRST of every nullable successor
					// along the way.
					j := i + 1
					for j < len(prod) {
						if s.Follow[sym].AddSet(s.First[prod[j]]) {
							grew = true
						}
						if !s.Nullable[prod[j]] {
							break
						}
						j++
					}

					if allNullable(prod[i+1:]) {
						if s.Follow[sym].AddSet(s.Follow[nt]) {
							grew = true
						}
					}
				}
			}
		}

		if !grew {
			break
		}
	}

	return s
}

// FirstOfSeq returns FIRST(β1...βk a): the FIRST set of a symbol sequence
// followed by a fallback symbol a, used when computing LR(1) item
// lookaheads during closure (spec §4.2: "add B -> •δ, b for each b ∈
// FIRST(γ a) (b = a if γ is nullable)").
func (s *Sets) FirstOfSeq(seq []string, fallback string) util.StringSet {
	out := util.NewStringSet()
	for _, sym := range seq {
		out.AddSet(s.First[sym])
		if !s.Nullable[sym] {
			return out
		}
	}
	out.Add(fallback)
	return out
}
