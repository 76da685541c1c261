/*
Slang runs programs written in the slang scripting language, or starts an
interactive REPL session when given no file arguments.

Usage:

	slang [flags] [file1 file2 ...]

The flags are:

	-v, --version
	    Print the toolchain version and exit.

	-t, --tok FILE
	    Use the given .tok lexer specification instead of the bundled
	    default (examples/slang.tok).

	-s, --syn FILE
	    Use the given .syn grammar specification instead of the bundled
	    default (examples/slang.syn).

	-c, --config FILE
	    Load project settings (tok/syn paths, REPL defaults) from the
	    given slang.toml file instead of looking for one in the current
	    directory.

	--table
	    Dump the compiled LR(1) action/goto table to stdout and exit,
	    without running anything.

	--cache FILE
	    Cache the compiled LR(1) table at FILE and reuse it on later
	    runs against the same .tok/.syn pair, instead of recompiling it
	    every time.

	--history FILE
	    Persist the REPL's exec-list of script paths to a sqlite
	    database at FILE, so list/del/exec see paths added in prior
	    sessions too. Only used when starting the REPL (no file
	    arguments).

With one or more file arguments, each file is evaluated in turn against a
single shared environment, in the order given. With no file arguments, an
interactive REPL is started (internal/repl).
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/dekarrin/slang/internal/config"
	"github.com/dekarrin/slang/internal/repl"
	"github.com/dekarrin/slang/internal/slang"
	"github.com/dekarrin/slang/internal/version"
)

const (
	ExitSuccess = iota
	ExitInitError
	ExitRunError
)

var (
	returnCode int

	flagVersion  = pflag.BoolP("version", "v", false, "print the toolchain version and exit")
	flagTok      = pflag.StringP("tok", "t", "", "lexer specification file (default: project config, or examples/slang.tok)")
	flagSyn      = pflag.StringP("syn", "s", "", "grammar specification file (default: project config, or examples/slang.syn)")
	flagConfig   = pflag.StringP("config", "c", "", "project config file (default: ./slang.toml if present)")
	flagDumpOnly = pflag.Bool("table", false, "dump the compiled parse table and exit")
	flagCache    = pflag.String("cache", "", "cache the compiled parse table at this path and reuse it across runs")
	flagHistory  = pflag.String("history", "", "persist the REPL exec-list to a sqlite database at this path")
)

func main() {
	defer func() {
		if p := recover(); p != nil {
			panic(fmt.Sprintf("unrecoverable panic: %v", p))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitInitError
		return
	}
	// paths in the config file are relative to the config file's directory
	cfgDir := filepath.Dir(*flagConfig)
	if cfg.TokFile != "" && !filepath.IsAbs(cfg.TokFile) {
		cfg.TokFile = filepath.Join(cfgDir, cfg.TokFile)
	}
	if cfg.SynFile != "" && !filepath.IsAbs(cfg.SynFile) {
		cfg.SynFile = filepath.Join(cfgDir, cfg.SynFile)
	}

	tokPath := firstNonEmpty(*flagTok, cfg.TokFile, "examples/slang.tok")
	synPath := firstNonEmpty(*flagSyn, cfg.SynFile, "examples/slang.syn")

	tokSpec, err := os.ReadFile(tokPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading %s: %s\n", tokPath, err)
		returnCode = ExitInitError
		return
	}
	synSpec, err := os.ReadFile(synPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading %s: %s\n", synPath, err)
		returnCode = ExitInitError
		return
	}

	var tc *slang.Toolchain
	if *flagCache != "" {
		tc, err = slang.BuildCached(string(tokSpec), string(synSpec), *flagCache)
	} else {
		tc, err = slang.Build(string(tokSpec), string(synSpec))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: building toolchain: %s\n", err)
		returnCode = ExitInitError
		return
	}

	if *flagDumpOnly {
		fmt.Println(tc.Table().String())
		return
	}

	args := pflag.Args()
	if len(args) == 0 {
		returnCode = runREPL(tc, *flagHistory)
		return
	}
	returnCode = runFiles(tc, args)
}

func runFiles(tc *slang.Toolchain, files []string) int {
	e := slang.NewEnv(func(s string) { fmt.Println(s) })
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: reading %s: %s\n", f, err)
			return ExitInitError
		}
		if err := tc.Run(string(src), e); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", f, err)
			return ExitRunError
		}
	}
	return ExitSuccess
}

func runREPL(tc *slang.Toolchain, historyFile string) int {
	r, err := repl.New(tc, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: starting REPL: %s\n", err)
		return ExitInitError
	}
	defer r.Close()

	if historyFile != "" {
		if err := r.UseHistoryFile(historyFile); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: loading history: %s\n", err)
			return ExitInitError
		}
	}

	if err := r.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRunError
	}
	return ExitSuccess
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
