package session

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

// kvStore is the minimal local-storage surface the session needs.
type kvStore interface {
	Get(key string) ([]byte, error)
	SetAll(pairs map[string][]byte) error
	Clear() error
	Close() error
}

type sqliteKV struct {
	db *sql.DB
}

func openKV(path string) (*sqliteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single connection: the store serializes access anyway, and this avoids
	// SQLITE_BUSY between the UI loop and command goroutines.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// SetAll upserts every pair in one transaction so readers never observe a
// half-written session.
func (s *sqliteKV) SetAll(pairs map[string][]byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for k, v := range pairs {
		if _, err := tx.Exec(`
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, v); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteKV) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	return err
}

func (s *sqliteKV) Close() error { return s.db.Close() }
