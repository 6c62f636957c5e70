package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"errors"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a gob-encoded key-value table in a local sqlite file. It
// backs the terminal client's offline records, so a server is never
// required to keep personal best times.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

var ErrNotFound = errors.New("value not found")

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS records (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the value stored under key into value, which must be a
// pointer. Returns [ErrNotFound] for a missing key.
func (s *Store) Get(key string, value any) error {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT value FROM records WHERE key = ?;`, key,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return gob.NewDecoder(bytes.NewReader(blob)).Decode(value)
}

// Set inserts a new key-value pair or overwrites an existing one.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO records (key, value)
VALUES (?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

// Delete removes key without checking whether it existed.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM records WHERE key = ?;`, key)
	return err
}

func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM records;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
