package store

import (
	"encoding/json"
	"fmt"
	"time"

	"structcheck/internal/logging"
	"structcheck/internal/session"
)

// UpsertSummary writes one visitor's summary record, matching by user id:
// updated in place when present, appended otherwise. Upserts keep the
// record's original position in the log.
func (s *Store) UpsertSummary(sum session.Summary) error {
	answers, err := json.Marshal(sum.Answers)
	if err != nil {
		return fmt.Errorf("failed to serialize answers: %w", err)
	}
	trackerAnswers, err := json.Marshal(sum.TrackerAnswers)
	if err != nil {
		return fmt.Errorf("failed to serialize tracker answers: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO visitors
			(user_id, user_type, answers, tracker_day, tracker_answers,
			 completion_rate, answer_density, last_activity, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			user_type       = excluded.user_type,
			answers         = excluded.answers,
			tracker_day     = excluded.tracker_day,
			tracker_answers = excluded.tracker_answers,
			completion_rate = excluded.completion_rate,
			answer_density  = excluded.answer_density,
			last_activity   = excluded.last_activity,
			status          = excluded.status`,
		sum.UserID, sum.UserType, string(answers), sum.TrackerDay, string(trackerAnswers),
		sum.CompletionRate, sum.AnswerDensity, sum.LastActivity.UTC(), sum.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert summary: %w", err)
	}
	logging.Named("store").Debug("summary upserted",
		logging.String("userId", sum.UserID),
		logging.String("status", sum.Status))
	return nil
}

// LoadSummaries returns every visitor summary in insertion order.
func (s *Store) LoadSummaries() ([]session.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT user_id, user_type, answers, tracker_day, tracker_answers,
		        completion_rate, answer_density, last_activity, status
		 FROM visitors ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var out []session.Summary
	for rows.Next() {
		var sum session.Summary
		var answers, trackerAnswers string
		var lastActivity time.Time
		if err := rows.Scan(
			&sum.UserID, &sum.UserType, &answers, &sum.TrackerDay, &trackerAnswers,
			&sum.CompletionRate, &sum.AnswerDensity, &lastActivity, &sum.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		sum.LastActivity = lastActivity
		if err := json.Unmarshal([]byte(answers), &sum.Answers); err != nil {
			logging.Named("store").Warn("malformed answers in summary",
				logging.String("userId", sum.UserID), logging.Err(err))
			sum.Answers = nil
		}
		if err := json.Unmarshal([]byte(trackerAnswers), &sum.TrackerAnswers); err != nil {
			logging.Named("store").Warn("malformed tracker answers in summary",
				logging.String("userId", sum.UserID), logging.Err(err))
			sum.TrackerAnswers = nil
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// VisitorStats are the operator panel aggregates.
type VisitorStats struct {
	Total     int // all recorded visitors
	InTracker int // visitors past day 1
	Completed int // visitors past day 7
}

// Stats computes the operator aggregates over the visitor log.
func (s *Store) Stats() (VisitorStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st VisitorStats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN tracker_day > 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN tracker_day > 7 THEN 1 ELSE 0 END), 0)
		 FROM visitors`).Scan(&st.Total, &st.InTracker, &st.Completed)
	if err != nil {
		return VisitorStats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return st, nil
}
