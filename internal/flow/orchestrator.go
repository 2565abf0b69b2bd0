package flow

import (
	"fmt"
	"time"

	"structcheck/internal/classify"
	"structcheck/internal/logging"
	"structcheck/internal/session"
)

// Store is the persistence surface the orchestrator needs. *store.Store
// satisfies it.
type Store interface {
	LoadSession() (*session.Session, error)
	SaveSession(*session.Session) error
	GetOrCreateUserID() (string, error)
	UpsertSummary(session.Summary) error
	Reset() error
	RecordActivity(userID, event, detail string) error
}

// Content is the static content surface the controllers need.
type Content interface {
	QuestionCount() int
	OptionCount(question int) int
	Scorer() *classify.Scorer
}

// Options tune the orchestrator.
type Options struct {
	// AdvanceDelay is attached to EventAdvanceScheduled for the
	// presentation layer. Zero is valid and changes no state semantics.
	AdvanceDelay time.Duration

	// Now overrides the clock for tests.
	Now func() time.Time
}

// Orchestrator owns the session. It is the only component that writes the
// session back to the store, and it invokes classification at exactly two
// points: when diagnosis completes and after every tracker-day submission.
type Orchestrator struct {
	store   Store
	content Content
	opts    Options

	sess      *session.Session
	stage     Stage
	diagnosis *DiagnosisController
	tracker   *TrackerController
}

// New builds an orchestrator. Call Startup before anything else.
func New(st Store, content Content, opts Options) *Orchestrator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{store: st, content: content, opts: opts}
}

// Startup loads or creates the visitor identity, restores the persisted
// session (defaulting on absence or corruption), and lands on the resume
// stage. Loading twice without mutation resumes at the same stage.
func (o *Orchestrator) Startup() (Stage, error) {
	log := logging.Named("flow")

	userID, err := o.store.GetOrCreateUserID()
	if err != nil {
		return StageIntro, fmt.Errorf("failed to resolve visitor id: %w", err)
	}

	sess, err := o.store.LoadSession()
	if err != nil {
		return StageIntro, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		sess = session.New(userID, o.content.QuestionCount())
	} else {
		sess.UserID = userID
		sess.Normalize(o.content.QuestionCount())
	}

	o.sess = sess
	o.diagnosis = NewDiagnosisController(sess, o.content)
	o.tracker = NewTrackerController(sess)
	o.stage = ResumeStage(sess)

	log.Info("session resumed",
		logging.String("userId", userID),
		logging.String("stage", o.stage.String()),
		logging.Int("answered", sess.AnswerCount()),
		logging.Int("trackerDay", sess.TrackerDay))
	o.recordActivity("resumed", o.stage.String())
	return o.stage, nil
}

// Stage returns the current stage.
func (o *Orchestrator) Stage() Stage {
	return o.stage
}

// Session returns a snapshot for rendering. The copy keeps the presentation
// layer from aliasing the live state.
func (o *Orchestrator) Session() *session.Session {
	return o.sess.Clone()
}

// ContentReloaded re-shapes the session after a live catalog change and
// persists the repair, so a question-count change mid-session never indexes
// past the answers slice or strands the cursor.
func (o *Orchestrator) ContentReloaded() error {
	o.sess.Normalize(o.content.QuestionCount())
	logging.Named("flow").Info("content reloaded",
		logging.Int("questions", o.content.QuestionCount()))
	return o.persist()
}

// syncContentShape repairs the answers slice when the catalog changed
// between a reload and its notification reaching the flow.
func (o *Orchestrator) syncContentShape() {
	if len(o.sess.Answers) != o.content.QuestionCount() {
		o.sess.Normalize(o.content.QuestionCount())
	}
}

// StartDiagnosis begins the questionnaire from the intro screen.
func (o *Orchestrator) StartDiagnosis() error {
	o.syncContentShape()
	if err := o.diagnosis.Start(); err != nil {
		return err
	}
	o.stage = StageDiagnosis
	if err := o.persist(); err != nil {
		return err
	}
	o.recordActivity("diagnosis_started", "")
	return nil
}

// SelectAnswer records an option for a question. On the completing
// transition the owner type is computed and assigned, the stage moves to the
// result, and the visitor summary is upserted — all before control returns.
func (o *Orchestrator) SelectAnswer(question, option int) ([]Event, error) {
	o.syncContentShape()
	events, err := o.diagnosis.SelectAnswer(question, option)
	if err != nil {
		return nil, err
	}

	completed := false
	for i := range events {
		switch events[i].Kind {
		case EventAdvanceScheduled:
			events[i].After = o.opts.AdvanceDelay
		case EventDiagnosisCompleted:
			completed = true
		}
	}

	// The recorded answer is durable before scoring runs, so a scoring
	// failure never leaves memory and store disagreeing on the last slot.
	if err := o.persist(); err != nil {
		return nil, err
	}
	if !completed {
		return events, nil
	}

	ownerType, err := o.content.Scorer().OwnerType(o.sess.Answers)
	if err != nil {
		return nil, fmt.Errorf("owner type scoring failed: %w", err)
	}
	o.sess.UserType = string(ownerType)
	o.stage = StageResult
	if err := o.persist(); err != nil {
		return nil, err
	}
	if err := o.upsertSummary(); err != nil {
		return nil, err
	}
	logging.Named("flow").Info("diagnosis completed",
		logging.String("userId", o.sess.UserID),
		logging.String("ownerType", o.sess.UserType))
	o.recordActivity("diagnosis_completed", o.sess.UserType)
	return events, nil
}

// GoBack steps to the previous question; a no-op at question 0.
func (o *Orchestrator) GoBack() error {
	o.diagnosis.GoBack()
	return o.persist()
}

// StartTracker moves from the result screen into the tracker.
func (o *Orchestrator) StartTracker() error {
	if o.sess.UserType == "" {
		return ErrNotStarted
	}
	if o.tracker.AllComplete() {
		o.stage = StageTrackerComplete
	} else {
		o.stage = StageTracker
	}
	if err := o.persist(); err != nil {
		return err
	}
	o.recordActivity("tracker_entered", fmt.Sprintf("day %d", o.sess.TrackerDay))
	return nil
}

// SubmitDayAnswer records the current day's reflection, advances the day,
// and refreshes the visitor summary.
func (o *Orchestrator) SubmitDayAnswer(text string) ([]Event, error) {
	events, err := o.tracker.SubmitDayAnswer(text)
	if err != nil {
		return nil, err
	}
	if o.tracker.AllComplete() {
		o.stage = StageTrackerComplete
	}
	if err := o.persist(); err != nil {
		return nil, err
	}
	if err := o.upsertSummary(); err != nil {
		return nil, err
	}
	for _, ev := range events {
		if ev.Kind == EventDayRecorded {
			o.recordActivity("day_submitted", fmt.Sprintf("day %d (%s)", ev.Day, ev.Tier))
		}
	}
	return events, nil
}

// ViewDay validates tracker navigation; it never mutates state.
func (o *Orchestrator) ViewDay(d int) error {
	return o.tracker.ViewDay(d)
}

// DayCompleted reports day d's completion indicator for rendering.
func (o *Orchestrator) DayCompleted(d int) bool {
	return o.tracker.DayCompleted(d)
}

// ResetApp clears the session and the stable identifier, then starts over
// with a fresh identity. The visitor summary log is preserved.
func (o *Orchestrator) ResetApp() (Stage, error) {
	prevID := o.sess.UserID
	if err := o.store.Reset(); err != nil {
		return o.stage, err
	}
	logging.Named("flow").Info("application reset", logging.String("previousUserId", prevID))
	stage, err := o.Startup()
	if err != nil {
		return stage, err
	}
	o.recordActivity("reset", "previous "+prevID)
	return stage, nil
}

// persist writes the whole session back to the store. Every mutating intent
// goes through here before control returns to the caller.
func (o *Orchestrator) persist() error {
	if err := o.store.SaveSession(o.sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// upsertSummary recomputes the visitor summary record and writes it to the
// all-visitors log.
func (o *Orchestrator) upsertSummary() error {
	rate := classify.CompletionRate(o.sess.TrackerDay)
	density := classify.OverallDensity(o.sess.TrackerAnswers)
	sum := session.Summary{
		UserID:         o.sess.UserID,
		UserType:       o.sess.UserType,
		Answers:        append([]int(nil), o.sess.Answers...),
		TrackerDay:     o.sess.TrackerDay,
		TrackerAnswers: append([]string(nil), o.sess.TrackerAnswers...),
		CompletionRate: rate,
		AnswerDensity:  string(density),
		LastActivity:   o.opts.Now(),
		Status:         string(classify.LeadStatus(rate, density)),
	}
	if err := o.store.UpsertSummary(sum); err != nil {
		return fmt.Errorf("failed to upsert visitor summary: %w", err)
	}
	return nil
}

// recordActivity appends to the informational activity log. Best-effort:
// failures are logged, never propagated, and never affect state decisions.
func (o *Orchestrator) recordActivity(event, detail string) {
	if err := o.store.RecordActivity(o.sess.UserID, event, detail); err != nil {
		logging.Named("flow").Warn("failed to record activity",
			logging.String("event", event), logging.Err(err))
	}
}
