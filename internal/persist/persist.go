// Package persist caches a compiled LR(1) parse table to a side-file at a
// caller-chosen path (spec §6's "Persisted state"), so
// repeated invocations of the toolchain against an unchanged grammar can
// skip re-running closure/goto construction.
//
// Grounded on the teacher's server/dao/sqlite encoding of game.State via
// dekarrin/rezi's EncBinary/DecBinary (server/dao/sqlite/sqlite.go,
// sessions.go): the same binary REZI encoding is used here, keyed by a
// content hash of the source .tok/.syn text rather than a database row, so
// a cache entry is automatically invalidated the moment either spec file
// changes.
package persist

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/slang/internal/grammar"
	"github.com/dekarrin/slang/internal/lrtable"
)

// cacheFormat is a snapshot of lrtable.Table shaped for REZI encoding: all
// fields are exported so rezi.EncBinary can walk them by reflection, which
// lrtable.Table's own unexported action/goTo fields don't allow directly.
type cacheFormat struct {
	Hash    string
	Initial int
	Action  []map[string]lrtable.Action
	Goto    []map[string]int
}

// Hash returns the cache key for a given .tok/.syn source pair: any change
// to either file's content invalidates every entry keyed by its old hash.
func Hash(tokSpec, synSpec string) string {
	h := sha256.New()
	h.Write([]byte(tokSpec))
	h.Write([]byte{0})
	h.Write([]byte(synSpec))
	return hex.EncodeToString(h.Sum(nil))
}

// Save writes table's compiled action/goto data to path, tagged with hash
// so a later Load can detect whether the cache is stale.
func Save(path, hash string, table *lrtable.Table) error {
	initial, action, goTo := table.Snapshot()
	cache := cacheFormat{
		Hash:    hash,
		Initial: initial,
		Action:  action,
		Goto:    goTo,
	}
	return os.WriteFile(path, rezi.EncBinary(cache), 0644)
}

// Load reads a previously-Saved table from path and rebuilds it against g,
// returning ok=false (with no error) if path does not exist or its stored
// hash no longer matches hash, either of which means the caller must
// recompile the table with lrtable.Build instead.
func Load(path, hash string, g *grammar.Grammar) (table *lrtable.Table, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cache cacheFormat
	n, err := rezi.DecBinary(data, &cache)
	if err != nil {
		return nil, false, err
	}
	if n != len(data) {
		return nil, false, nil
	}
	if cache.Hash != hash {
		return nil, false, nil
	}

	return lrtable.FromSnapshot(g, cache.Initial, cache.Action, cache.Goto), true, nil
}
