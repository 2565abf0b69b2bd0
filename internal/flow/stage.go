// Package flow contains the session state machine: the diagnosis and
// tracker flow controllers, the stage/event vocabulary shared with the
// presentation layer, and the orchestrator that owns the session, decides
// the resume stage, and triggers persistence and classification at the
// right transitions.
package flow

import "structcheck/internal/session"

// Stage identifies which screen of the flow a visitor is in. The
// presentation layer renders stages; it never decides them.
type Stage int

const (
	// StageIntro is the start screen before any answer is recorded.
	StageIntro Stage = iota

	// StageDiagnosis is the question-by-question assessment.
	StageDiagnosis

	// StageResult shows the computed owner type.
	StageResult

	// StageTracker is the 7-day task/answer cycle.
	StageTracker

	// StageTrackerComplete is the post-day-7 completion screen.
	StageTrackerComplete
)

// String returns the stage name used in logs and activity records.
func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageDiagnosis:
		return "diagnosis"
	case StageResult:
		return "result"
	case StageTracker:
		return "tracker"
	case StageTrackerComplete:
		return "tracker_complete"
	default:
		return "unknown"
	}
}

// ResumeStage decides where a returning visitor lands. The priority order is
// the single place stage precedence is decided and must not change:
// a started tracker wins over everything, a computed owner type wins over an
// unfinished questionnaire, any recorded answer resumes the questionnaire,
// and only a blank session sees the intro.
func ResumeStage(sess *session.Session) Stage {
	switch {
	case sess.TrackerDay > 1:
		if sess.TrackerComplete() {
			return StageTrackerComplete
		}
		return StageTracker
	case sess.UserType != "":
		return StageResult
	case sess.AnswerCount() > 0:
		return StageDiagnosis
	default:
		return StageIntro
	}
}
