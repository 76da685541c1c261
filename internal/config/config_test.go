package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)
}

func TestLoad_ExplicitPathDecodesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slang.toml")
	contents := `
tok_file = "my.tok"
syn_file = "my.syn"
repl_history_size = 50
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Config{TokFile: "my.tok", SynFile: "my.syn", ReplHistorySize: 50}, cfg)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slang.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = valid = toml"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
