// Package replstore persists the REPL's exec-list (the script paths
// `add`/`del`/`list`/`exec` operate on, spec §6) to a sqlite database file
// across sessions, so the list survives a restart when the REPL is started
// with a history file.
//
// Grounded on the teacher's server/dao/sqlite package: database/sql driven
// by modernc.org/sqlite (a pure-Go driver, no cgo toolchain required by
// cmd/slang's users), a single schema-creation statement run on Open, and
// plain parameterized SQL for each operation rather than an ORM, the same
// shape server/dao/sqlite/sqlite.go's NewDatastore/schema setup used.
package replstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS exec_list (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	path     TEXT NOT NULL,
	added_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Store is a sqlite-backed exec-list, one row per added script path.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open replstore: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create replstore schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records path as the newest exec-list entry.
func (s *Store) Append(path string) error {
	_, err := s.db.Exec(`INSERT INTO exec_list (path) VALUES (?)`, path)
	if err != nil {
		return fmt.Errorf("append replstore entry: %w", err)
	}
	return nil
}

// All returns every recorded path, oldest first, the same order the
// REPL's in-memory exec-list uses.
func (s *Store) All() ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM exec_list ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("read replstore exec-list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan replstore row: %w", err)
		}
		out = append(out, path)
	}
	return out, rows.Err()
}

// RemoveLast deletes the most recently added entry, mirroring `del` with no
// path argument.
func (s *Store) RemoveLast() error {
	_, err := s.db.Exec(`DELETE FROM exec_list WHERE id = (SELECT id FROM exec_list ORDER BY id DESC LIMIT 1)`)
	if err != nil {
		return fmt.Errorf("remove last replstore entry: %w", err)
	}
	return nil
}

// Remove deletes the first entry matching path, mirroring `del <path>`.
func (s *Store) Remove(path string) error {
	_, err := s.db.Exec(`DELETE FROM exec_list WHERE id = (SELECT id FROM exec_list WHERE path = ? ORDER BY id ASC LIMIT 1)`, path)
	if err != nil {
		return fmt.Errorf("remove replstore entry: %w", err)
	}
	return nil
}

// Clear deletes every recorded path, mirroring the REPL's `clear` command.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM exec_list`)
	if err != nil {
		return fmt.Errorf("clear replstore exec-list: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
