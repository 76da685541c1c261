package lexgen

import (
	"strings"

	"github.com/dekarrin/slang/internal/slangerr"
	"github.com/dekarrin/slang/internal/token"
)

// Lexer tokenizes source text against an ordered rule list built by
// ParseSpec.
type Lexer struct {
	rules []Rule
}

// New returns a Lexer that applies rules in the given order: literal rules
// (already sorted longest-first by ParseSpec) are tried before pattern
// rules, matching spec §4.1's "literal rules...are tried before pattern
// rules".
func New(rules []Rule) *Lexer {
	return &Lexer{rules: rules}
}

// Tokenize runs the full left-to-right eager scan described in spec §4.1,
// returning every non-suppressed token or the first LexError encountered.
// Grounded on internal/ictiobus/lex/immediate.go's eager-drain approach
// rather than the teacher's lazy lexer (whose Next() is an unfinished
// stub — see lex.go in the example pack).
func (lx *Lexer) Tokenize(source string) ([]token.Token, error) {
	var tokens []token.Token

	lines := strings.Split(source, "\n")
	pos := 0    // byte offset into source
	line := 1   // 1-indexed current line
	col := 1    // 1-indexed current column on `line`

	for pos < len(source) {
		rest := source[pos:]

		rule, matchLen, lexeme, ok := lx.matchAt(rest)
		if !ok {
			fragment := rest
			if idx := strings.IndexByte(fragment, '\n'); idx >= 0 {
				fragment = fragment[:idx]
			}
			return tokens, slangerr.LexError{
				Line:     line,
				Fragment: fragment,
				Source:   source,
			}
		}

		if matchLen == 0 {
			// A zero-width match would never advance the cursor; treat it
			// the same as no match at all rather than looping forever.
			fragment := rest
			if idx := strings.IndexByte(fragment, '\n'); idx >= 0 {
				fragment = fragment[:idx]
			}
			return tokens, slangerr.LexError{Line: line, Fragment: fragment, Source: source}
		}

		consumed := rest[:matchLen]
		newlines := strings.Count(consumed, "\n")

		if rule.Kind != KindSkip {
			tokens = append(tokens, token.Token{
				Label:     rule.Label,
				Lexeme:    lexeme,
				StartLine: line,
				EndLine:   line + newlines,
				LinePos:   col,
				FullLine:  currentLine(lines, line),
			})
		}

		pos += matchLen
		if newlines > 0 {
			line += newlines
			lastNL := strings.LastIndexByte(consumed, '\n')
			col = matchLen - lastNL
		} else {
			col += matchLen
		}
	}

	return tokens, nil
}

func currentLine(lines []string, line int) string {
	idx := line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	return lines[idx]
}

// matchAt tries every rule against s (anchored at the start of s, i.e. the
// current cursor) and returns the first that matches, its raw match
// length, and the lexeme to emit for it (honoring a named "val" capture
// group per spec §4.1).
func (lx *Lexer) matchAt(s string) (rule Rule, matchLen int, lexeme string, ok bool) {
	for _, r := range lx.rules {
		if r.Kind == KindLiteral {
			if strings.HasPrefix(s, r.Literal) {
				return r, len(r.Literal), r.Literal, true
			}
			continue
		}

		loc := r.re.FindStringSubmatchIndex(s)
		if loc == nil {
			continue
		}
		whole := s[loc[0]:loc[1]]

		val := whole
		names := r.re.SubexpNames()
		for i, name := range names {
			if name != "val" {
				continue
			}
			start, end := loc[2*i], loc[2*i+1]
			if start >= 0 && end >= 0 {
				val = s[start:end]
			}
		}

		return r, len(whole), val, true
	}
	return Rule{}, 0, "", false
}
