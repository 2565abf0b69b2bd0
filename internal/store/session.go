package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"

	"structcheck/internal/logging"
	"structcheck/internal/session"
)

// LoadSession reads the persisted session. It returns (nil, nil) when no
// session exists or when the stored payload fails to parse: malformed state
// is discarded and logged, never surfaced to the visitor.
func (s *Store) LoadSession() (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRow("SELECT payload FROM session_state WHERE id = 'current'").Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		logging.Named("store").Warn("discarding malformed session payload", logging.Err(err))
		return nil, nil
	}
	return &sess, nil
}

// SaveSession overwrites the persisted session as a single value: the whole
// session is serialized first, then replaced in one statement, so a partial
// write can never leave a structurally invalid record.
func (s *Store) SaveSession(sess *session.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO session_state (id, payload, updated_at) VALUES ('current', ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetOrCreateUserID returns the stable visitor identifier, generating and
// persisting one on first use. ULIDs carry a millisecond timestamp plus
// random entropy, which keeps collision probability negligible without
// being a security boundary.
func (s *Store) GetOrCreateUserID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	err := s.db.QueryRow("SELECT user_id FROM identity WHERE id = 1").Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to load user id: %w", err)
	}

	id = ulid.Make().String()
	if _, err := s.db.Exec("INSERT INTO identity (id, user_id) VALUES (1, ?)", id); err != nil {
		return "", fmt.Errorf("failed to persist user id: %w", err)
	}
	logging.Named("store").Info("generated visitor id", logging.String("userId", id))
	return id, nil
}

// Reset clears the session and the stable identifier in one transaction.
// The visitor summary log is untouched.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin reset: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM session_state"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM identity"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	logging.Named("store").Info("session and identity cleared")
	return nil
}
