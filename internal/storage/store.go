// Package storage is the client's local key/value storage, scoped per
// server origin like a browser's local storage.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// LoggedInKey holds the login flag.
const LoggedInKey = "loggedIn"

// Store reads and writes keys for a single origin.
type Store struct {
	db     *sql.DB
	origin string
}

// NewStore creates a store for origin on db.
func NewStore(db *sql.DB, origin string) *Store {
	return &Store{db: db, origin: origin}
}

// Get returns the value for key and whether it is set.
func (s *Store) Get(key string) (string, bool, error) {
	var val string
	err := s.db.QueryRow(
		"SELECT value FROM local_storage WHERE origin = ? AND key = ?",
		s.origin, key,
	).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO local_storage (origin, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (origin, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.origin, key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec(
		"DELETE FROM local_storage WHERE origin = ? AND key = ?",
		s.origin, key,
	); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Keys returns every key set for the origin, sorted.
func (s *Store) Keys() (keys []string, err error) {
	rows, err := s.db.Query(
		"SELECT key FROM local_storage WHERE origin = ? ORDER BY key",
		s.origin,
	)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keys: %w", err)
	}
	return keys, nil
}

// LoggedIn reports the login flag. Only the exact value "true" counts.
func (s *Store) LoggedIn() (bool, error) {
	v, _, err := s.Get(LoggedInKey)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// SetLoggedIn stores the login flag.
func (s *Store) SetLoggedIn(loggedIn bool) error {
	if loggedIn {
		return s.Set(LoggedInKey, "true")
	}
	return s.Set(LoggedInKey, "false")
}
