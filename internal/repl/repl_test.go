package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dekarrin/slang/internal/slang"
)

func newTestREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()
	tok, err := os.ReadFile(filepath.Join("..", "..", "examples", "slang.tok"))
	require.NoError(t, err)
	syn, err := os.ReadFile(filepath.Join("..", "..", "examples", "slang.syn"))
	require.NoError(t, err)
	tc, err := slang.Build(string(tok), string(syn))
	require.NoError(t, err)

	var out bytes.Buffer
	r, err := New(tc, &out)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, &out
}

func TestREPL_EvalChunkPrintsOutput(t *testing.T) {
	r, out := newTestREPL(t)
	r.evalChunk(`print(1+2);`)
	require.Equal(t, "3\n", out.String())
}

func TestREPL_EvalChunkSyntaxErrorReportsMessage(t *testing.T) {
	r, out := newTestREPL(t)
	r.evalChunk(`if (`)
	require.Contains(t, out.String(), "syntax error")
}

func TestREPL_LocalsListsBoundNames(t *testing.T) {
	r, out := newTestREPL(t)
	r.evalChunk(`x = 5;`)
	out.Reset()

	handled, err := r.dispatchCommand("locals")
	require.True(t, handled)
	require.NoError(t, err)
	require.Contains(t, out.String(), "x")
}

func TestREPL_AddAppendsToExecList(t *testing.T) {
	r, _ := newTestREPL(t)

	handled, err := r.dispatchCommand("add one.slang")
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, []string{"one.slang"}, r.execList)
}

func TestREPL_DelWithPathRemovesMatchingEntry(t *testing.T) {
	r, _ := newTestREPL(t)
	r.execList = append(r.execList, "one.slang", "two.slang")

	handled, err := r.dispatchCommand("del one.slang")
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, []string{"two.slang"}, r.execList)
}

func TestREPL_DelWithoutPathRemovesMostRecentEntry(t *testing.T) {
	r, _ := newTestREPL(t)
	r.execList = append(r.execList, "one.slang", "two.slang")

	handled, err := r.dispatchCommand("del")
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, []string{"one.slang"}, r.execList)
}

func TestREPL_ExecRunsEveryScriptInList(t *testing.T) {
	r, out := newTestREPL(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.slang")
	require.NoError(t, os.WriteFile(path, []byte(`print(42);`), 0o644))
	r.execList = append(r.execList, path)

	handled, err := r.dispatchCommand("exec")
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, "42\n", out.String())
}

func TestREPL_RunWithNoArgumentRepeatsLastRun(t *testing.T) {
	r, out := newTestREPL(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.slang")
	require.NoError(t, os.WriteFile(path, []byte(`print(7);`), 0o644))

	handled, err := r.dispatchCommand("run " + path)
	require.True(t, handled)
	require.NoError(t, err)
	out.Reset()

	handled, err = r.dispatchCommand("run")
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, "7\n", out.String())
}

func TestREPL_RunWithNoArgumentAndNoPriorRunErrors(t *testing.T) {
	r, _ := newTestREPL(t)

	handled, err := r.dispatchCommand("run")
	require.True(t, handled)
	require.Error(t, err)
}

func TestREPL_ResetClearsBindingsAndExecList(t *testing.T) {
	r, _ := newTestREPL(t)
	r.evalChunk(`x = 5;`)
	r.execList = append(r.execList, "one.slang")

	handled, err := r.dispatchCommand("reset")
	require.True(t, handled)
	require.NoError(t, err)
	require.Empty(t, r.execList)
	require.Equal(t, 1, r.n)
	_, ok := r.env.Lookup("x")
	require.False(t, ok)
}

func TestREPL_ExitReturnsEOF(t *testing.T) {
	r, _ := newTestREPL(t)
	handled, err := r.dispatchCommand("exit")
	require.True(t, handled)
	require.Equal(t, io.EOF, err)
}

func TestREPL_UnrecognizedLineFallsThroughToEval(t *testing.T) {
	r, _ := newTestREPL(t)
	handled, _ := r.dispatchCommand(`print(1);`)
	require.False(t, handled)
}

func TestREPL_UseHistoryFileLoadsPastExecList(t *testing.T) {
	r, _ := newTestREPL(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	scriptDir := t.TempDir()
	scriptPath := filepath.Join(scriptDir, "a.slang")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`print(7);`), 0o644))

	require.NoError(t, r.UseHistoryFile(dbPath))
	require.NoError(t, r.store.Append(scriptPath))

	r2, out2 := newTestREPL(t)
	require.NoError(t, r2.UseHistoryFile(dbPath))
	require.Equal(t, []string{scriptPath}, r2.execList)

	handled, err := r2.dispatchCommand("exec")
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, "7\n", out2.String())
}
