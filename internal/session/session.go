// Package session defines the visitor session domain model: the single
// mutable state object tracking a visitor's position across the diagnosis
// questionnaire and the 7-day tracker, plus the durable summary record
// kept for operator review.
package session

import (
	"fmt"
	"strings"
	"time"
)

// TrackerDays is the length of the follow-up tracker.
const TrackerDays = 7

// Unanswered marks a diagnosis slot with no recorded option.
const Unanswered = -1

// Session is one visitor's in-progress or completed state. The orchestrator
// is the sole owner; controllers mutate it by reference and the orchestrator
// writes it back to the store after every mutating action.
type Session struct {
	UserID          string   `json:"userId"`
	CurrentQuestion int      `json:"currentQuestionIndex"`
	Answers         []int    `json:"answers"`
	UserType        string   `json:"userType"`
	TrackerDay      int      `json:"trackerDay"`
	TrackerAnswers  []string `json:"trackerAnswers"`
}

// New returns a fresh session for the given visitor with all fields at their
// defaults: no answers, no type, tracker at day 1.
func New(userID string, questionCount int) *Session {
	answers := make([]int, questionCount)
	for i := range answers {
		answers[i] = Unanswered
	}
	return &Session{
		UserID:         userID,
		Answers:        answers,
		TrackerDay:     1,
		TrackerAnswers: make([]string, TrackerDays),
	}
}

// Normalize repairs structural drift in a session loaded from storage so the
// controllers can rely on slice lengths and ranges. Older or hand-edited
// payloads may carry short slices or out-of-range cursors; content updates
// may change the question count between runs.
func (s *Session) Normalize(questionCount int) {
	for len(s.Answers) < questionCount {
		s.Answers = append(s.Answers, Unanswered)
	}
	if len(s.Answers) > questionCount {
		s.Answers = s.Answers[:questionCount]
	}
	for len(s.TrackerAnswers) < TrackerDays {
		s.TrackerAnswers = append(s.TrackerAnswers, "")
	}
	if len(s.TrackerAnswers) > TrackerDays {
		s.TrackerAnswers = s.TrackerAnswers[:TrackerDays]
	}
	if s.CurrentQuestion < 0 {
		s.CurrentQuestion = 0
	}
	if questionCount > 0 && s.CurrentQuestion >= questionCount {
		s.CurrentQuestion = questionCount - 1
	}
	if s.TrackerDay < 1 {
		s.TrackerDay = 1
	}
	if s.TrackerDay > TrackerDays+1 {
		s.TrackerDay = TrackerDays + 1
	}
}

// AnswerCount reports how many diagnosis slots hold a recorded option.
func (s *Session) AnswerCount() int {
	n := 0
	for _, a := range s.Answers {
		if a != Unanswered {
			n++
		}
	}
	return n
}

// Dense reports whether every diagnosis slot holds a recorded option.
func (s *Session) Dense() bool {
	if len(s.Answers) == 0 {
		return false
	}
	return s.AnswerCount() == len(s.Answers)
}

// TrackerComplete reports whether all seven tracker days have been submitted.
func (s *Session) TrackerComplete() bool {
	return s.TrackerDay > TrackerDays
}

// DayCompleted reports whether day d shows as done for rendering purposes.
// Both conditions matter: the day cursor may have moved past d, or d's slot
// may have been filled out of order while an earlier day is still empty.
func (s *Session) DayCompleted(d int) bool {
	if d < 1 || d > TrackerDays {
		return false
	}
	return d < s.TrackerDay || strings.TrimSpace(s.TrackerAnswers[d-1]) != ""
}

// SetTrackerAnswer records text for day d. It guards the invariant that a
// non-empty answer is never overwritten with an empty one.
func (s *Session) SetTrackerAnswer(d int, text string) error {
	if d < 1 || d > TrackerDays {
		return fmt.Errorf("tracker day %d out of range [1,%d]", d, TrackerDays)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" && s.TrackerAnswers[d-1] != "" {
		return fmt.Errorf("refusing to clear non-empty answer for day %d", d)
	}
	s.TrackerAnswers[d-1] = trimmed
	return nil
}

// Clone returns a deep copy, used for snapshots handed to the presentation
// layer so renderers never alias the live state.
func (s *Session) Clone() *Session {
	c := *s
	c.Answers = append([]int(nil), s.Answers...)
	c.TrackerAnswers = append([]string(nil), s.TrackerAnswers...)
	return &c
}

// Summary is the durable, upsertable snapshot of one visitor used for
// operator review. One record per visitor, matched by UserID.
type Summary struct {
	UserID         string    `json:"id"`
	UserType       string    `json:"type"`
	Answers        []int     `json:"answers"`
	TrackerDay     int       `json:"trackerDay"`
	TrackerAnswers []string  `json:"trackerAnswers"`
	CompletionRate float64   `json:"completionRate"`
	AnswerDensity  string    `json:"answerDensity"`
	LastActivity   time.Time `json:"lastActivity"`
	Status         string    `json:"status"`
}
