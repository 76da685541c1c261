package replstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_AppendAndAllPreserveOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execlist.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(`one.slang`))
	require.NoError(t, s.Append(`two.slang`))

	got, err := s.All()
	require.NoError(t, err)
	require.Equal(t, []string{`one.slang`, `two.slang`}, got)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execlist.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(`script.slang`))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.All()
	require.NoError(t, err)
	require.Equal(t, []string{`script.slang`}, got)
}

func TestStore_ClearEmptiesList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execlist.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(`one.slang`))
	require.NoError(t, s.Clear())

	got, err := s.All()
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStore_RemoveLastDeletesNewestEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execlist.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(`one.slang`))
	require.NoError(t, s.Append(`two.slang`))
	require.NoError(t, s.RemoveLast())

	got, err := s.All()
	require.NoError(t, err)
	require.Equal(t, []string{`one.slang`}, got)
}

func TestStore_RemoveDeletesMatchingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execlist.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(`one.slang`))
	require.NoError(t, s.Append(`two.slang`))
	require.NoError(t, s.Remove(`one.slang`))

	got, err := s.All()
	require.NoError(t, err)
	require.Equal(t, []string{`two.slang`}, got)
}
