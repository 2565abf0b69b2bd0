package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDefaults(t *testing.T) {
	s := New("visitor-1", 10)
	if s.UserID != "visitor-1" {
		t.Fatalf("unexpected user id: %s", s.UserID)
	}
	if s.TrackerDay != 1 {
		t.Fatalf("tracker should start at day 1, got %d", s.TrackerDay)
	}
	if s.AnswerCount() != 0 || s.Dense() {
		t.Fatalf("fresh session should have no answers")
	}
	if len(s.TrackerAnswers) != TrackerDays {
		t.Fatalf("expected %d tracker slots, got %d", TrackerDays, len(s.TrackerAnswers))
	}
}

func TestNormalizeRepairsDrift(t *testing.T) {
	s := &Session{
		CurrentQuestion: 99,
		Answers:         []int{1, 2},
		TrackerDay:      42,
		TrackerAnswers:  []string{"a"},
	}
	s.Normalize(5)

	if len(s.Answers) != 5 {
		t.Fatalf("answers not resized: %d", len(s.Answers))
	}
	for _, a := range s.Answers[2:] {
		if a != Unanswered {
			t.Fatalf("padded slots must be unanswered")
		}
	}
	if len(s.TrackerAnswers) != TrackerDays {
		t.Fatalf("tracker answers not resized: %d", len(s.TrackerAnswers))
	}
	if s.CurrentQuestion != 4 {
		t.Fatalf("cursor not clamped: %d", s.CurrentQuestion)
	}
	if s.TrackerDay != TrackerDays+1 {
		t.Fatalf("tracker day not clamped: %d", s.TrackerDay)
	}
}

func TestDayCompletedOutOfOrder(t *testing.T) {
	s := New("u", 3)
	s.TrackerDay = 2
	// Day 3's slot filled while day 2 is still empty; indexing stays by day.
	s.TrackerAnswers[2] = "done early"

	if !s.DayCompleted(1) {
		t.Fatalf("day before cursor should be completed")
	}
	if s.DayCompleted(2) {
		t.Fatalf("current empty day should not be completed")
	}
	if !s.DayCompleted(3) {
		t.Fatalf("out-of-order filled day should be completed")
	}
	if s.DayCompleted(0) || s.DayCompleted(8) {
		t.Fatalf("out-of-range days are never completed")
	}
}

func TestSetTrackerAnswerNeverClearsNonEmpty(t *testing.T) {
	s := New("u", 3)
	if err := s.SetTrackerAnswer(2, "  real answer  "); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if s.TrackerAnswers[1] != "real answer" {
		t.Fatalf("answer should be stored trimmed, got %q", s.TrackerAnswers[1])
	}
	if err := s.SetTrackerAnswer(2, "   "); err == nil {
		t.Fatalf("expected refusal to overwrite non-empty answer with empty")
	}
	if err := s.SetTrackerAnswer(0, "x"); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New("u", 2)
	s.Answers[0] = 1
	s.TrackerAnswers[0] = "day one"

	c := s.Clone()
	if diff := cmp.Diff(s, c); diff != "" {
		t.Fatalf("clone differs (-want +got):\n%s", diff)
	}

	c.Answers[0] = 0
	c.TrackerAnswers[0] = "mutated"
	if s.Answers[0] != 1 || s.TrackerAnswers[0] != "day one" {
		t.Fatalf("mutating the clone leaked into the original")
	}
}
