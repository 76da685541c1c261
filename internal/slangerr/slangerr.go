// Package slangerr defines the error kinds raised across the toolchain
// (spec §7): LexError, SyntaxError, NameError, TypeError, IndexError,
// ArithmeticError, and SpecError. Each carries structured fields rather than
// a pre-formatted string, following the shape of the teacher's
// internal/tunascript.SyntaxError (error.go), and formats a source excerpt
// the way the original predecessor's lexer_template.vicinity() did: a
// window of up to k/2 lines on each side of the offending line, right-justified line
// numbers.
package slangerr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"golang.org/x/text/width"
)

// Excerpt returns a ±k/2-line window around 1-indexed line n of source,
// each line prefixed with a right-justified, width-aware line number. Wide
// runes (as reported by x/text/width) count double for the purpose of
// lining up the caret in SyntaxError.FullMessage, matching how a terminal would
// render them.
func Excerpt(source string, n int, k int) string {
	lines := strings.Split(source, "\n")
	if n < 1 {
		n = 1
	}
	idx := n - 1
	lo := idx - k/2
	if lo < 0 {
		lo = 0
	}
	hi := idx + k/2
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}

	numWidth := len(fmt.Sprintf("%d", hi+1))
	var out []string
	for i := lo; i <= hi && i < len(lines); i++ {
		num := fmt.Sprintf("%*d", numWidth, i+1)
		out = append(out, fmt.Sprintf("%s: %s", num, lines[i]))
	}
	return strings.Join(out, "\n")
}

// displayWidth returns the terminal column width of s, counting
// double-width runes (per x/text/width's East Asian width property) as 2.
func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}

// LexError is raised when no lexer rule matches at the current cursor.
type LexError struct {
	Line     int
	Fragment string
	Source   string
}

func (e LexError) Error() string {
	return fmt.Sprintf("lex error: line %d: unexpected sequence %q", e.Line, e.Fragment)
}

// FullMessage includes a source excerpt beneath the error message.
func (e LexError) FullMessage(contextLines int) string {
	if e.Source == "" {
		return e.Error()
	}
	return Excerpt(e.Source, e.Line, contextLines) + "\n" + e.Error()
}

// SyntaxError is raised for an empty parser-table cell, arity mismatches,
// or return/break outside their valid enclosing construct. A malformed
// .tok/.syn spec is not reported as a SyntaxError: lexgen.ParseSpec and
// grammar.ParseSpec return plain errors for it.
type SyntaxError struct {
	Line     int
	Lexeme   string
	Message  string
	Source   string
	FullLine string
}

func (e SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("syntax error: %s", e.Message)
	}
	return fmt.Sprintf("syntax error: around line %d, near %q: %s", e.Line, e.Lexeme, e.Message)
}

// FullMessage includes a source excerpt with a caret under the offending
// lexeme, mirroring the teacher's SourceLineWithCursor.
func (e SyntaxError) FullMessage(contextLines int) string {
	if e.Source == "" {
		return e.Error()
	}
	excerpt := Excerpt(e.Source, e.Line, contextLines)
	if e.FullLine == "" {
		return excerpt + "\n" + e.Error()
	}
	col := strings.Index(e.FullLine, e.Lexeme)
	if col < 0 {
		return excerpt + "\n" + e.Error()
	}
	numWidth := len(fmt.Sprintf("%d", e.Line)) + 2 // "N: " prefix
	caret := strings.Repeat(" ", numWidth+displayWidth(e.FullLine[:col])) + "^"
	return excerpt + "\n" + caret + "\n" + e.Error()
}

// NameError is raised when an identifier has no binding in any frame on the
// environment stack.
type NameError struct {
	Name string
}

func (e NameError) Error() string {
	return fmt.Sprintf("name error: %q is not defined", e.Name)
}

// TypeError is raised when a value's runtime shape does not fit an
// operation.
type TypeError struct {
	Message string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("type error: %s", e.Message)
}

// IndexError is raised for an out-of-bounds array access or a range/for
// over a non-Number endpoint.
type IndexError struct {
	Message string
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index error: %s", e.Message)
}

// ArithmeticError is raised for division by zero.
type ArithmeticError struct {
	Message string
}

func (e ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error: %s", e.Message)
}

// SpecError is raised by the LR(1) table builder when a shift-reduce or
// reduce-reduce conflict cannot be resolved by precedence/associativity.
type SpecError struct {
	Conflicts []string
}

func (e SpecError) Error() string {
	return fmt.Sprintf("grammar is not LR(1): %d unresolved conflict(s):\n%s",
		len(e.Conflicts), strings.Join(e.Conflicts, "\n"))
}

// FormatTable renders a 2-D table of strings using the same rosed-backed
// layout the teacher uses for parse-table dumps (e.g.
// internal/ictiobus/parse/clr1.go String()).
func FormatTable(headerRow bool, rows [][]string, colWidth int) string {
	return rosed.Edit("").
		InsertTableOpts(0, rows, colWidth, rosed.Options{
			TableHeaders:             headerRow,
			NoTrailingLineSeparators: true,
		}).
		String()
}
