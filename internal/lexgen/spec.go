// Package lexgen implements the table-driven lexer generator (spec §4.1):
// it parses a .tok specification into an ordered list of rules and builds a
// Lexer that tokenizes source text against them.
//
// Grounded on the original predecessor's tokgen.py/lexgen.py .tok format
// (label = literal / label [:|<] pattern, literals sorted longest-first,
// named "val" capture group) and on the teacher's
// internal/ictiobus/lex.Lexer interface shape, reworked into a single
// eager/"immediate" tokenizer (internal/ictiobus/lex/immediate.go) since
// spec's tokenize(source) contract is not lazy.
package lexgen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RuleKind distinguishes how a matched rule's text is handled.
type RuleKind int

const (
	// KindLiteral is a fixed-string rule (label = literal).
	KindLiteral RuleKind = iota
	// KindPattern is a regular-expression rule whose match is emitted
	// (label : pattern).
	KindPattern
	// KindSkip is a regular-expression rule whose match is consumed but
	// produces no token (label < pattern), used for whitespace/comments.
	KindSkip
)

// Rule is one line of a parsed .tok specification.
type Rule struct {
	Label   string
	Kind    RuleKind
	Literal string
	Source  string // pattern source, for Kind != KindLiteral
	re      *regexp.Regexp
}

// ParseSpec parses a .tok specification into an ordered rule list: literal
// rules first (sorted by literal text in descending string order, which puts
// every literal ahead of any shorter literal that is its prefix), followed
// by pattern/skip rules in file order. This exactly matches the original
// predecessor's tokgen.parse_spec/lexgen.parse_spec behavior
// (`sorted(literals, key=lambda x: x[0], reverse=True)` then patterns
// appended unsorted).
func ParseSpec(spec string) ([]Rule, error) {
	var literals, patterns []Rule

	for lineNum, raw := range strings.Split(spec, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		terms := strings.SplitN(line, " ", 3)
		// allow arbitrary whitespace between fields
		terms = strings.Fields(line)
		if len(terms) < 3 {
			return nil, fmt.Errorf("lexer spec line %d: expected \"label [=:<] value\" but got %q", lineNum+1, line)
		}
		label := terms[0]
		sep := terms[1]
		value := strings.Join(terms[2:], " ")

		switch sep {
		case "=":
			literals = append(literals, Rule{Label: label, Kind: KindLiteral, Literal: value})
		case ":", "<":
			re, err := regexp.Compile("^(?:" + value + ")")
			if err != nil {
				return nil, fmt.Errorf("lexer spec line %d: bad pattern for %q: %w", lineNum+1, label, err)
			}
			kind := KindPattern
			if sep == "<" {
				kind = KindSkip
			}
			patterns = append(patterns, Rule{Label: label, Kind: kind, Source: value, re: re})
		default:
			return nil, fmt.Errorf("lexer spec line %d: unknown separator %q (expected =, :, or <)", lineNum+1, sep)
		}
	}

	sort.SliceStable(literals, func(i, j int) bool {
		return literals[i].Literal > literals[j].Literal
	})

	rules := make([]Rule, 0, len(literals)+len(patterns))
	rules = append(rules, literals...)
	rules = append(rules, patterns...)
	return rules, nil
}
