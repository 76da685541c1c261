package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dekarrin/slang/internal/slang"
)

func loadToolchain(t *testing.T) *slang.Toolchain {
	t.Helper()
	tok, err := os.ReadFile(filepath.Join("..", "..", "examples", "slang.tok"))
	require.NoError(t, err)
	syn, err := os.ReadFile(filepath.Join("..", "..", "examples", "slang.syn"))
	require.NoError(t, err)
	tc, err := slang.Build(string(tok), string(syn))
	require.NoError(t, err)
	return tc
}

func doEval(t *testing.T, router http.Handler, source string) (int, Result) {
	t.Helper()
	body, err := json.Marshal(evalRequest{Source: source})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return rec.Code, result
}

func TestEpEval_ReturnsPrintedOutput(t *testing.T) {
	router := New(loadToolchain(t)).Router()

	code, result := doEval(t, router, `print(1+2);`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"3"}, result.Output)
	require.Empty(t, result.Error)
	require.NotEmpty(t, result.RequestID)
}

func TestEpEval_RuntimeErrorIsUnprocessableEntity(t *testing.T) {
	router := New(loadToolchain(t)).Router()

	code, result := doEval(t, router, `print(undefinedName);`)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotEmpty(t, result.Error)
}

func TestEpEval_MalformedBodyIsBadRequest(t *testing.T) {
	router := New(loadToolchain(t)).Router()

	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader([]byte(`not json`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEpEval_RequestsGetDistinctIDs(t *testing.T) {
	router := New(loadToolchain(t)).Router()

	_, first := doEval(t, router, `print(1);`)
	_, second := doEval(t, router, `print(2);`)
	require.NotEqual(t, first.RequestID, second.RequestID)
}

func TestHealthz_ReturnsOK(t *testing.T) {
	router := New(loadToolchain(t)).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
