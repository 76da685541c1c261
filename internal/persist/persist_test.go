package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dekarrin/slang/internal/grammar"
	"github.com/dekarrin/slang/internal/lrtable"
)

func smallGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	src := ": PLUS NUM\n%left PLUS\n\nExpr : Expr PLUS Expr\n     | NUM\n"
	g, err := grammar.ParseSpec(src)
	require.NoError(t, err)
	return g
}

func TestHash_ChangesWithEitherInput(t *testing.T) {
	a := Hash("tok1", "syn1")
	b := Hash("tok2", "syn1")
	c := Hash("tok1", "syn2")
	require.NotEqual(t, a, b)
	require.NotEqual(t, a, c)
	require.Equal(t, a, Hash("tok1", "syn1"))
}

func TestSaveLoad_RoundTripsATable(t *testing.T) {
	g := smallGrammar(t)
	table, err := lrtable.Build(g)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "table.cache")
	hash := Hash("tok", "syn")

	require.NoError(t, Save(path, hash, table))

	loaded, ok, err := Load(path, hash, g.Augmented())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, table.NumStates(), loaded.NumStates())
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.cache")

	_, ok, err := Load(path, Hash("a", "b"), smallGrammar(t).Augmented())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoad_StaleHashIsRejected(t *testing.T) {
	g := smallGrammar(t)
	table, err := lrtable.Build(g)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "table.cache")
	require.NoError(t, Save(path, Hash("tok", "syn"), table))

	_, ok, err := Load(path, Hash("tok", "syn-changed"), g.Augmented())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.cache")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xff, 0xff}, 0644))

	_, _, err := Load(path, Hash("tok", "syn"), smallGrammar(t).Augmented())
	require.Error(t, err)
}
