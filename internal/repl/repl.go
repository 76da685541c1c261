// Package repl implements the interactive REPL described in spec §6
// ("External Interfaces" / REPL), numbering each evaluated chunk with an
// In [n]: prompt (no Out [n]: line or result value is printed; only
// print() output and errors appear) and supporting a small command set for
// inspecting and managing REPL state, including an exec-list of script
// paths (`add`/`del`/`clear`/`list`/`exec`).
//
// The line reader is adapted from the teacher's
// internal/input.InteractiveCommandReader (GNU-readline-backed input via
// chzyer/readline, with history and line editing) rather than reused
// verbatim: that type was built around TunaQuest's single fixed "> "
// prompt and a ReadCommand-per-line contract, whereas a slang REPL needs a
// renumbered prompt every chunk. Each line read is evaluated as one whole
// chunk; multi-line input is not accumulated.
//
// The exec-list can optionally be backed by internal/replstore (sqlite) so
// it survives across sessions when the REPL is started with a history
// file; without one, it is in-memory only for the session.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/slang/internal/env"
	"github.com/dekarrin/slang/internal/eval"
	"github.com/dekarrin/slang/internal/replstore"
	"github.com/dekarrin/slang/internal/slang"
	"github.com/dekarrin/slang/internal/slangerr"
)

// Colorizer optionally styles REPL output. A nil Colorizer (the default)
// leaves text unstyled; internal/repl itself only ships the no-op
// implementation, since terminal color support is environment-specific
// and out of this toolchain's concern.
type Colorizer interface {
	Prompt(s string) string
	Error(s string) string
	Result(s string) string
}

// plainColorizer is the default no-op Colorizer.
type plainColorizer struct{}

func (plainColorizer) Prompt(s string) string { return s }
func (plainColorizer) Error(s string) string  { return s }
func (plainColorizer) Result(s string) string { return s }

// REPL drives one interactive session against a single Toolchain and Env,
// keeping an exec-list of script paths so `add`/`del`/`clear`/`list`/`exec`
// can operate on it.
type REPL struct {
	tc    *slang.Toolchain
	env   *env.Env
	rl    *readline.Instance
	out   io.Writer
	color Colorizer

	n        int      // next chunk number for the In [] prompt
	execList []string // script paths added via `add`, run in order by `exec`

	lastRun string // path (or raw chunk) `run` last evaluated; re-run when `run` has no argument

	store *replstore.Store // nil unless started with a history file
}

// New returns a REPL ready to Run. out receives print() output, error
// messages, and command output.
func New(tc *slang.Toolchain, out io.Writer) (*REPL, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "In [1]: "})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	r := &REPL{
		tc:    tc,
		rl:    rl,
		out:   out,
		color: plainColorizer{},
		n:     1,
	}
	r.env = slang.NewEnv(r.printLine)
	return r, nil
}

// UseHistoryFile backs the REPL's exec-list with a sqlite database at
// path, loading any paths already recorded there (from a prior session)
// before returning. Every path added from then on via `add` is appended to
// the file as well as the in-memory exec-list.
func (r *REPL) UseHistoryFile(path string) error {
	store, err := replstore.Open(path)
	if err != nil {
		return err
	}
	past, err := store.All()
	if err != nil {
		store.Close()
		return err
	}
	r.store = store
	r.execList = append(r.execList, past...)
	return nil
}

// SetColorizer overrides the REPL's output styling.
func (r *REPL) SetColorizer(c Colorizer) {
	if c != nil {
		r.color = c
	}
}

func (r *REPL) printLine(s string) {
	fmt.Fprintln(r.out, s)
}

// Close tears down the underlying readline instance and history store.
func (r *REPL) Close() error {
	if r.store != nil {
		r.store.Close()
	}
	return r.rl.Close()
}

// Run reads chunks until EOF or an `exit` command, evaluating each one
// against the REPL's persistent Env after an In [n]: prompt. No Out [n]:
// line or result value is printed.
func (r *REPL) Run() error {
	for {
		r.rl.SetPrompt(fmt.Sprintf("In [%d]: ", r.n))
		line, err := r.rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if handled, err := r.dispatchCommand(line); handled {
			if err != nil {
				fmt.Fprintln(r.out, r.color.Error(err.Error()))
			}
			continue
		}

		r.lastRun = line
		r.evalChunk(line)
	}
}

func (r *REPL) evalChunk(source string) {
	program, err := r.tc.Parse(source)
	if err != nil {
		r.reportError(err)
		return
	}
	if program == nil {
		return
	}
	if err := eval.New(r.env).Run(program); err != nil {
		r.reportError(err)
		return
	}
	r.n++
}

func (r *REPL) reportError(err error) {
	msg := err.Error()
	if se, ok := err.(slangerr.SyntaxError); ok {
		msg = se.FullMessage(3)
	} else if le, ok := err.(slangerr.LexError); ok {
		msg = le.FullMessage(3)
	}
	fmt.Fprintln(r.out, r.color.Error(msg))
	r.n++
}

// dispatchCommand recognizes the REPL's command set (spec §6): exit, help,
// locals, reset, run <path> (re-runs last if omitted), and the exec-list
// commands add <path>/del [<path>]/clear/list/exec, which manage a list of
// script paths rather than raw chunk text. Returns handled=false for
// anything that isn't a recognized command, so it falls through to normal
// evaluation.
func (r *REPL) dispatchCommand(line string) (handled bool, err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit", "quit":
		return true, io.EOF
	case "help":
		fmt.Fprintln(r.out, helpText)
		return true, nil
	case "locals":
		for _, name := range r.env.Top().Names() {
			fmt.Fprintln(r.out, name)
		}
		return true, nil
	case "reset":
		r.env = slang.NewEnv(r.printLine)
		r.execList = nil
		r.lastRun = ""
		r.n = 1
		if r.store != nil {
			return true, r.store.Clear()
		}
		return true, nil
	case "run":
		if len(fields) < 2 {
			if r.lastRun == "" {
				return true, fmt.Errorf("no previous run to repeat")
			}
			return true, r.runFile(r.lastRun)
		}
		return true, r.runFile(fields[1])
	case "add":
		if len(fields) < 2 {
			return true, fmt.Errorf("usage: add PATH")
		}
		path := fields[1]
		r.execList = append(r.execList, path)
		if r.store != nil {
			return true, r.store.Append(path)
		}
		return true, nil
	case "list":
		for i, p := range r.execList {
			fmt.Fprintf(r.out, "[%d] %s\n", i, p)
		}
		return true, nil
	case "clear":
		r.execList = nil
		if r.store != nil {
			return true, r.store.Clear()
		}
		return true, nil
	case "del":
		if len(fields) < 2 {
			if len(r.execList) == 0 {
				return true, fmt.Errorf("exec-list is empty")
			}
			r.execList = r.execList[:len(r.execList)-1]
			if r.store != nil {
				return true, r.store.RemoveLast()
			}
			return true, nil
		}
		path := fields[1]
		idx := -1
		for i, p := range r.execList {
			if p == path {
				idx = i
				break
			}
		}
		if idx < 0 {
			return true, fmt.Errorf("no such exec-list entry %q", path)
		}
		r.execList = append(r.execList[:idx], r.execList[idx+1:]...)
		if r.store != nil {
			return true, r.store.Remove(path)
		}
		return true, nil
	case "exec":
		for _, path := range r.execList {
			if err := r.runFile(path); err != nil {
				return true, err
			}
		}
		return true, nil
	}
	return false, nil
}

// runFile evaluates the contents of path as one chunk and records it as
// the target of a bare `run` with no argument.
func (r *REPL) runFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	r.lastRun = path
	r.evalChunk(string(raw))
	return nil
}

const helpText = `commands:
  exit, quit       leave the REPL
  help             show this text
  locals           list names bound in the current top-level scope
  reset            discard all bindings and the exec-list, start fresh
  run [PATH]       evaluate the contents of PATH as one chunk (re-runs last run if omitted)
  add PATH         append PATH to the exec-list
  list             show the numbered exec-list
  del [PATH]       remove PATH from the exec-list, or the most recently added entry if omitted
  clear            empty the exec-list
  exec             run every script in the exec-list, in order`
