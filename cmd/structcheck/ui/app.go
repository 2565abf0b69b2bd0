// Package ui is the terminal presentation adapter. It renders the current
// stage and translates key presses into flow intents; every state decision
// stays in the flow package. Timed screen advances are executed here via
// tea.Tick, so the core remains correct with all delays at zero.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"structcheck/internal/config"
	"structcheck/internal/content"
	"structcheck/internal/flow"
	"structcheck/internal/store"
)

// page identifies the screen being rendered. Pages mirror flow stages plus
// the purely presentational analyzing interlude and the operator panel.
type page int

const (
	pageIntro page = iota
	pageDiagnosis
	pageAnalyzing
	pageResult
	pageTracker
	pageComplete
	pageAdmin
)

// stagePage maps a flow stage to its screen.
func stagePage(s flow.Stage) page {
	switch s {
	case flow.StageDiagnosis:
		return pageDiagnosis
	case flow.StageResult:
		return pageResult
	case flow.StageTracker:
		return pageTracker
	case flow.StageTrackerComplete:
		return pageComplete
	default:
		return pageIntro
	}
}

// advanceMsg moves the diagnosis view to the next question after the
// scheduled delay.
type advanceMsg struct{ question int }

// analyzeMsg steps the analyzing interlude.
type analyzeMsg struct{ step int }

// catalogReloadedMsg tells the app the content catalog changed on disk.
type catalogReloadedMsg struct{}

// App is the root bubbletea model.
type App struct {
	orch     *flow.Orchestrator
	provider *content.Provider
	store    *store.Store
	ui       config.UIConfig
	styles   Styles

	page   page
	width  int
	height int

	diagnosis DiagnosisModel
	analyzing AnalyzingModel
	result    ResultModel
	tracker   TrackerModel
	admin     AdminModel

	errText string
}

// NewApp builds the root model positioned at the orchestrator's resume
// stage.
func NewApp(orch *flow.Orchestrator, provider *content.Provider, st *store.Store, ui config.UIConfig) App {
	styles := DefaultStyles()
	app := App{
		orch:      orch,
		provider:  provider,
		store:     st,
		ui:        ui,
		styles:    styles,
		diagnosis: NewDiagnosisModel(orch, provider, styles),
		analyzing: NewAnalyzingModel(styles),
		result:    NewResultModel(orch, provider, styles),
		tracker:   NewTrackerModel(orch, provider, styles),
		admin:     NewAdminModel(st, styles),
	}
	app.page = stagePage(orch.Stage())
	app.syncPage()
	return app
}

// syncPage refreshes the entering page's view state from the session.
func (a *App) syncPage() {
	switch a.page {
	case pageDiagnosis:
		a.diagnosis.Sync()
	case pageResult:
		a.result.Sync()
	case pageTracker:
		a.tracker.Sync()
	case pageAdmin:
		a.admin.Sync()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.page == pageTracker {
		return a.tracker.Focus()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.result.SetSize(msg.Width, msg.Height)
		a.admin.SetSize(msg.Width, msg.Height)
		a.tracker.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if a.page != pageTracker || msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
		case "ctrl+a":
			if a.page == pageAdmin {
				a.page = stagePage(a.orch.Stage())
			} else {
				a.page = pageAdmin
			}
			a.syncPage()
			return a, nil
		case "ctrl+r":
			stage, err := a.orch.ResetApp()
			if err != nil {
				a.errText = err.Error()
				return a, nil
			}
			a.errText = ""
			a.page = stagePage(stage)
			a.syncPage()
			return a, nil
		}

	case advanceMsg:
		a.diagnosis.SetCursor(msg.question)
		return a, nil

	case analyzeMsg:
		next, cmd := a.analyzing.Step(msg.step, a.ui.AnalyzingStep())
		a.analyzing = next
		if a.analyzing.Done() {
			a.page = pageResult
			a.syncPage()
			return a, nil
		}
		return a, cmd

	case catalogReloadedMsg:
		if err := a.orch.ContentReloaded(); err != nil {
			a.errText = err.Error()
			return a, nil
		}
		a.syncPage()
		return a, nil
	}

	return a.updatePage(msg)
}

// updatePage routes remaining messages to the active page.
func (a App) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.page {
	case pageIntro:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
			if err := a.orch.StartDiagnosis(); err != nil {
				a.errText = err.Error()
				return a, nil
			}
			a.errText = ""
			a.page = pageDiagnosis
			a.syncPage()
		}
		return a, nil

	case pageDiagnosis:
		next, cmd, completed := a.diagnosis.Update(msg, a.ui.AdvanceDelay())
		a.diagnosis = next
		if completed {
			a.page = pageAnalyzing
			var stepCmd tea.Cmd
			a.analyzing, stepCmd = a.analyzing.Start(a.ui.AnalyzingStep())
			return a, stepCmd
		}
		return a, cmd

	case pageResult:
		next, cmd, startTracker := a.result.Update(msg)
		a.result = next
		if startTracker {
			if err := a.orch.StartTracker(); err != nil {
				a.errText = err.Error()
				return a, nil
			}
			a.errText = ""
			a.page = stagePage(a.orch.Stage())
			a.syncPage()
			return a, a.tracker.Focus()
		}
		return a, cmd

	case pageAnalyzing:
		next, cmd := a.analyzing.UpdateSpinner(msg)
		a.analyzing = next
		return a, cmd

	case pageTracker:
		next, cmd, done := a.tracker.Update(msg)
		a.tracker = next
		if done {
			a.page = pageComplete
		}
		return a, cmd

	case pageAdmin:
		next, cmd := a.admin.Update(msg)
		a.admin = next
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	var body string
	switch a.page {
	case pageIntro:
		body = a.introView()
	case pageDiagnosis:
		body = a.diagnosis.View()
	case pageAnalyzing:
		body = a.analyzing.View()
	case pageResult:
		body = a.result.View()
	case pageTracker:
		body = a.tracker.View()
	case pageComplete:
		body = a.completeView()
	case pageAdmin:
		body = a.admin.View()
	}
	if a.errText != "" {
		body += "\n" + a.styles.Error.Render(a.errText)
	}
	return body + "\n"
}

func (a App) introView() string {
	s := a.styles
	return s.Title.Render("Structure Checker") + "\n\n" +
		s.Subtitle.Render("Find out what kind of owner you are — and what your shop is missing.") + "\n\n" +
		"A short questionnaire, your owner-type profile, then a 7-day\n" +
		"structure tracker with one reflection per day.\n\n" +
		s.Help.Render("enter start · ctrl+a operator panel · ctrl+r reset · q quit")
}

func (a App) completeView() string {
	s := a.styles
	return s.Title.Render("Seven days done.") + "\n\n" +
		"Every reflection is saved. Run the operator panel (ctrl+a) to see\n" +
		"your completion rate and engagement profile, or start fresh with ctrl+r.\n\n" +
		s.Help.Render("ctrl+a operator panel · q quit")
}

// CatalogReloaded is sent into the program when the content catalog was
// hot-reloaded from disk.
func CatalogReloaded() tea.Msg {
	return catalogReloadedMsg{}
}

// ScheduleAdvance turns an advance event into a tea command honoring the
// configured delay. Zero delay advances on the next tick of the event loop.
func ScheduleAdvance(question int, after time.Duration) tea.Cmd {
	if after <= 0 {
		return func() tea.Msg { return advanceMsg{question: question} }
	}
	return tea.Tick(after, func(time.Time) tea.Msg { return advanceMsg{question: question} })
}
