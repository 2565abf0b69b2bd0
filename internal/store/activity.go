package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"structcheck/internal/logging"
)

// ActivityEvent is one informational entry in the append-only activity log.
// The log never feeds back into state decisions; it exists so an operator
// can see how a visitor moved through the flow.
type ActivityEvent struct {
	ID        string
	UserID    string
	Event     string
	Detail    string
	CreatedAt time.Time
}

// RecordActivity appends one event. Failures are logged and swallowed by the
// caller's choice; the orchestrator treats activity logging as best-effort.
func (s *Store) RecordActivity(userID, event, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO activity_log (id, user_id, event, detail) VALUES (?, ?, ?, ?)",
		uuid.NewString(), userID, event, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// RecentActivity returns the newest events, most recent first.
func (s *Store) RecentActivity(limit int) ([]ActivityEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, user_id, event, detail, created_at
		 FROM activity_log ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var out []ActivityEvent
	for rows.Next() {
		var ev ActivityEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Event, &ev.Detail, &ev.CreatedAt); err != nil {
			logging.Named("store").Warn("failed to scan activity row", logging.Err(err))
			continue
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
