package flow

import (
	"fmt"

	"structcheck/internal/session"
)

// DiagnosisController drives question-by-question progression through the
// assessment. It mutates the session it was given and reports transitions as
// events; persistence and classification belong to the orchestrator.
type DiagnosisController struct {
	sess    *session.Session
	content Content
}

// NewDiagnosisController binds a controller to the session it steps.
func NewDiagnosisController(sess *session.Session, content Content) *DiagnosisController {
	return &DiagnosisController{sess: sess, content: content}
}

// Completed reports whether the questionnaire has been finished. The owner
// type is assigned at the same transition, so its presence is the durable
// completion marker.
func (c *DiagnosisController) Completed() bool {
	return c.sess.UserType != ""
}

// Start resets the questionnaire: all answers cleared, cursor at question 0.
// Restarting after completion is not a flow path; it would have to discard
// an assigned owner type.
func (c *DiagnosisController) Start() error {
	if c.Completed() {
		return ErrDiagnosisDone
	}
	for i := range c.sess.Answers {
		c.sess.Answers[i] = session.Unanswered
	}
	c.sess.CurrentQuestion = 0
	return nil
}

// SelectAnswer records option for question i. i must be the cursor or an
// already-answered question; re-answering overwrites the slot and moves the
// cursor to i+1 without touching later slots. Answering the last question
// completes the questionnaire. Anything out of range is a contract
// violation, not a user error.
func (c *DiagnosisController) SelectAnswer(i, option int) ([]Event, error) {
	n := c.content.QuestionCount()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("question index %d out of range [0,%d)", i, n)
	}
	if c.Completed() {
		return nil, ErrDiagnosisDone
	}
	if i != c.sess.CurrentQuestion && c.sess.Answers[i] == session.Unanswered {
		return nil, fmt.Errorf("question %d is neither current nor previously visited", i)
	}
	if optN := c.content.OptionCount(i); option < 0 || option >= optN {
		return nil, fmt.Errorf("option %d out of range [0,%d) for question %d", option, optN, i)
	}

	c.sess.Answers[i] = option
	c.sess.CurrentQuestion = i

	events := []Event{{Kind: EventAnswerRecorded, Question: i}}
	if i == n-1 {
		events = append(events, Event{Kind: EventDiagnosisCompleted})
		return events, nil
	}
	c.sess.CurrentQuestion = i + 1
	events = append(events, Event{Kind: EventAdvanceScheduled, Question: i + 1})
	return events, nil
}

// GoBack moves the cursor to the previous question. At question 0 it is a
// no-op, not an error.
func (c *DiagnosisController) GoBack() {
	if c.sess.CurrentQuestion > 0 {
		c.sess.CurrentQuestion--
	}
}
