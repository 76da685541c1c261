// Package api implements the small HTTP evaluation service of spec §6
// ("External Interfaces"): POST a program, get back whatever it printed
// or a structured error.
//
// Grounded on the teacher's server package endpoint-wrapper shape
// (server/endpoints.go's Endpoint(EndpointFunc) http.HandlerFunc and
// server/result.Result's uniform JSON envelope), stripped of everything
// that shape carried for TunaQuest's specific domain: there is no login,
// session, or persisted user state here (spec's slang has no such
// concept), so server/dao, server/tunas, and server/middle have no
// SPEC_FULL.md component to attach to and are not adapted into this
// package (see DESIGN.md). What is kept and adapted is the
// EndpointFunc/Result split itself, and go-chi for routing plus
// google/uuid for per-request correlation IDs (logged, and echoed back in
// the response envelope), both exercised here instead of only by the
// now-removed auth subsystem.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/slang/internal/slang"
)

type requestIDKey struct{}

// requestIDMiddleware assigns a fresh uuid to every incoming request,
// the correlation ID carried in every Result and logged by
// requestLogger.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(req.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func requestIDFrom(req *http.Request) string {
	if id, ok := req.Context().Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Result is the uniform JSON response envelope every endpoint returns,
// adapted from server/result.Result: a status code, a request ID for
// correlating with server logs, and either a success payload or an error
// message.
type Result struct {
	status    int
	RequestID string `json:"request_id"`
	Output    []string `json:"output,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func ok(requestID string, output []string) Result {
	return Result{status: http.StatusOK, RequestID: requestID, Output: output}
}

func errResult(status int, requestID, msg string) Result {
	return Result{status: status, RequestID: requestID, Error: msg}
}

func (r Result) writeResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	_ = json.NewEncoder(w).Encode(r)
}

// EndpointFunc is one HTTP handler's business logic, isolated from request
// parsing/response writing boilerplate the way server/endpoints.go's
// EndpointFunc is.
type EndpointFunc func(req *http.Request) Result

// endpoint wraps fn as an http.HandlerFunc: it writes fn's Result as JSON
// and recovers from panics into a 500, mirroring Endpoint's
// defer panicTo500(w, req) in the teacher's server package.
func endpoint(fn EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		requestID := requestIDFrom(req)
		defer func() {
			if p := recover(); p != nil {
				log.Printf("request %s: panic: %v", requestID, p)
				errResult(http.StatusInternalServerError, requestID, "internal error").writeResponse(w)
			}
		}()
		fn(req).writeResponse(w)
	}
}

// evalRequest is the POST /eval request body: one program's source text.
type evalRequest struct {
	Source string `json:"source"`
}

// API holds the compiled toolchain every request evaluates against. Each
// request gets its own fresh environment (spec's REPL persists state
// across chunks within one session; the stateless HTTP surface does not
// persist anything between requests).
type API struct {
	tc *slang.Toolchain
}

// New returns an API serving requests against tc.
func New(tc *slang.Toolchain) *API {
	return &API{tc: tc}
}

// Router builds the chi router for the service: uuid-backed request-ID
// assignment and structured request logging, then the routes themselves.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(requestLogger)
	r.Post("/eval", endpoint(a.epEval))
	r.Get("/healthz", endpoint(a.epHealth))
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		log.Printf("%s %s %s (%s)", requestIDFrom(req), req.Method, req.URL.Path, time.Since(start))
	})
}

func (a *API) epEval(req *http.Request) Result {
	requestID := requestIDFrom(req)

	var body evalRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errResult(http.StatusBadRequest, requestID, "malformed request body: "+err.Error())
	}

	var lines []string
	e := slang.NewEnv(func(s string) { lines = append(lines, s) })
	if err := a.tc.Run(body.Source, e); err != nil {
		return errResult(http.StatusUnprocessableEntity, requestID, err.Error())
	}
	return ok(requestID, lines)
}

func (a *API) epHealth(req *http.Request) Result {
	return ok(requestIDFrom(req), nil)
}
