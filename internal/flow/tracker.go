package flow

import (
	"fmt"
	"strings"

	"structcheck/internal/classify"
	"structcheck/internal/session"
)

// TrackerController drives the 7-day sequential task/answer cycle. Days are
// always addressed by day number, never by count of filled slots, so a
// session with out-of-order filled slots still indexes correctly.
type TrackerController struct {
	sess *session.Session
}

// NewTrackerController binds a controller to the session it steps.
func NewTrackerController(sess *session.Session) *TrackerController {
	return &TrackerController{sess: sess}
}

// AllComplete reports whether every tracker day has been submitted.
func (c *TrackerController) AllComplete() bool {
	return c.sess.TrackerComplete()
}

// CurrentDay returns the 1-based day the visitor is on; TrackerDays+1 when
// the cycle is complete.
func (c *TrackerController) CurrentDay() int {
	return c.sess.TrackerDay
}

// DayCompleted reports whether day d should render as done: either the
// cursor has moved past it or its slot holds text (out-of-order completion
// is tolerated, so both checks are required).
func (c *TrackerController) DayCompleted(d int) bool {
	return c.sess.DayCompleted(d)
}

// ViewDay validates navigating to day d. Past and current days are
// viewable; future days are locked. Never mutates state.
func (c *TrackerController) ViewDay(d int) error {
	if d < 1 || d > session.TrackerDays {
		return fmt.Errorf("tracker day %d outside [1,%d]: %w", d, session.TrackerDays, ErrOutOfRange)
	}
	if d > c.sess.TrackerDay {
		return ErrDayLocked
	}
	return nil
}

// SubmitDayAnswer records the current day's reflection. An answer that is
// empty after trimming is a validation failure and changes nothing — the
// caller must surface it, not drop the day. A valid submission stores the
// trimmed text by day number, advances the day cursor by exactly one, and
// reports the answer's density tier for the visitor summary.
func (c *TrackerController) SubmitDayAnswer(text string) ([]Event, error) {
	if c.AllComplete() {
		return nil, fmt.Errorf("tracker already complete")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyAnswer
	}

	day := c.sess.TrackerDay
	if err := c.sess.SetTrackerAnswer(day, trimmed); err != nil {
		return nil, err
	}
	c.sess.TrackerDay = day + 1

	events := []Event{{
		Kind: EventDayRecorded,
		Day:  day,
		Tier: classify.DensityTier(trimmed),
	}}
	if c.AllComplete() {
		events = append(events, Event{Kind: EventTrackerCompleted})
	}
	return events, nil
}
