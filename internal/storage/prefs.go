package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoResume is returned by LoadResume when no board was saved.
var ErrNoResume = errors.New("storage: no saved board")

// GetPref returns the stored value for key and whether it exists.
func (s *Store) GetPref(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read preference %q: %w", key, err)
	}
	return value, true, nil
}

// SetPref stores value under key, replacing any previous value.
func (s *Store) SetPref(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write preference %q: %w", key, err)
	}
	return nil
}

// DeletePref removes key. Deleting a missing key is not an error.
func (s *Store) DeletePref(key string) error {
	if _, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete preference %q: %w", key, err)
	}
	return nil
}

// SaveResume stores a serialized board for gameID, replacing any previous one.
func (s *Store) SaveResume(gameID string, state []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO resume (game_id, state) VALUES (?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP`,
		gameID, string(state),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save board: %w", err)
	}
	return nil
}

// LoadResume returns the serialized board saved for gameID, or ErrNoResume.
func (s *Store) LoadResume(gameID string) ([]byte, error) {
	var state string
	err := s.db.QueryRow("SELECT state FROM resume WHERE game_id = ?", gameID).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoResume
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load board: %w", err)
	}
	return []byte(state), nil
}

// ClearResume drops the saved board for gameID.
func (s *Store) ClearResume(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM resume WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear board: %w", err)
	}
	return nil
}

// ClearPrefs removes every stored preference.
func (s *Store) ClearPrefs() error {
	if _, err := s.db.Exec("DELETE FROM preferences"); err != nil {
		return fmt.Errorf("storage: cannot clear preferences: %w", err)
	}
	return nil
}
