package flow

import (
	"errors"
	"time"

	"structcheck/internal/classify"
)

// Validation errors, rejected at the controller boundary with no state
// mutation. The presentation layer tests for them with errors.Is and
// surfaces them as validation failures, never as crashes.
var (
	// ErrEmptyAnswer rejects a tracker submission that is empty after
	// trimming.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrDayLocked rejects viewing a tracker day beyond the current one.
	ErrDayLocked = errors.New("day not yet reachable")

	// ErrDiagnosisDone rejects restarting the questionnaire once the owner
	// type is set; completion is assigned exactly once.
	ErrDiagnosisDone = errors.New("diagnosis already completed")

	// ErrNotStarted rejects entering the tracker before the diagnosis has
	// assigned an owner type.
	ErrNotStarted = errors.New("diagnosis not completed")

	// ErrOutOfRange rejects navigation outside the valid day range.
	ErrOutOfRange = errors.New("out of range")
)

// EventKind discriminates flow events.
type EventKind int

const (
	// EventAnswerRecorded fires when a diagnosis option is recorded.
	EventAnswerRecorded EventKind = iota

	// EventAdvanceScheduled asks the presentation layer to advance to the
	// given question after the delay. The delay is presentation sugar: the
	// state transition is already complete when the event is emitted, so a
	// headless run that ignores the delay sees identical state.
	EventAdvanceScheduled

	// EventDiagnosisCompleted fires once, when the last question is
	// answered and the owner type has been assigned.
	EventDiagnosisCompleted

	// EventDayRecorded fires when a tracker day is submitted.
	EventDayRecorded

	// EventTrackerCompleted fires when day 7 is submitted.
	EventTrackerCompleted
)

// Event is one notification from a flow transition. Controllers return
// events; the presentation adapter subscribes and renders, never the
// reverse.
type Event struct {
	Kind     EventKind
	Question int           // EventAnswerRecorded, EventAdvanceScheduled
	Day      int           // EventDayRecorded
	Tier     classify.Tier // EventDayRecorded
	After    time.Duration // EventAdvanceScheduled
}
