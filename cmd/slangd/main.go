/*
Slangd starts an HTTP evaluation service and begins listening for
connections.

Usage:

	slangd [flags]

Once started, slangd listens for HTTP requests to POST /eval (body:
{"source": "..."}) and responds with a JSON envelope containing the
program's print() output or a structured error.

The flags are:

	-v, --version
		Print the toolchain version and exit.

	-l, --listen ADDRESS
		Listen on the given address (default :8080, or the
		SLANG_LISTEN_ADDRESS environment variable if set).

	-t, --tok FILE
	    Lexer specification file (default examples/slang.tok).

	-s, --syn FILE
	    Grammar specification file (default examples/slang.syn).
*/
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/slang/internal/api"
	"github.com/dekarrin/slang/internal/slang"
	"github.com/dekarrin/slang/internal/version"
)

const EnvListen = "SLANG_LISTEN_ADDRESS"

var (
	flagVersion = pflag.BoolP("version", "v", false, "print the toolchain version and exit")
	flagListen  = pflag.StringP("listen", "l", "", "address to listen on (default :8080)")
	flagTok     = pflag.StringP("tok", "t", "examples/slang.tok", "lexer specification file")
	flagSyn     = pflag.StringP("syn", "s", "examples/slang.syn", "grammar specification file")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed || listenAddr == "" {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	tokSpec, err := os.ReadFile(*flagTok)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading %s: %s\n", *flagTok, err)
		os.Exit(1)
	}
	synSpec, err := os.ReadFile(*flagSyn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading %s: %s\n", *flagSyn, err)
		os.Exit(1)
	}

	tc, err := slang.Build(string(tokSpec), string(synSpec))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: building toolchain: %s\n", err)
		os.Exit(1)
	}

	a := api.New(tc)
	fmt.Printf("slangd listening on %s\n", listenAddr)
	if err := http.ListenAndServe(listenAddr, a.Router()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
