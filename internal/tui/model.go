// Package tui is the interactive front end. It renders whatever the
// store and the rest-timer manager hold; neither outlives nor is owned
// by any view, so navigating between screens never disturbs a running
// countdown or an in-flight execution.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pedrohrf/ironlog/internal/catalog"
	"github.com/pedrohrf/ironlog/internal/config"
	"github.com/pedrohrf/ironlog/internal/execution"
	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/resttimer"
	"github.com/pedrohrf/ironlog/internal/store"
)

type SessionState int

const (
	StateDays SessionState = iota
	StateDayDetail
	StateExecution
	StateConfirmCancel
	StateSummary
)

const (
	fieldReps = iota
	fieldWeight
	fieldRPE
	fieldNotes
	fieldCount
)

type tickMsg time.Time

// Deps is everything the TUI borrows from the application. The TUI
// owns none of it.
type Deps struct {
	Store   *store.Store
	Catalog *catalog.Catalog
	Timers  *resttimer.Manager
	Config  *config.Config
}

type Model struct {
	deps Deps
	keys KeyMap
	help help.Model

	state         SessionState
	dayCursor     int
	exCursor      int
	selectedDayID string

	machine *execution.Machine
	inputs  []textinput.Model
	focus   int

	confirmForm   *huh.Form
	confirmCancel bool

	lastLogged *models.LoggedExercise
	errMsg     string

	width    int
	height   int
	quitting bool
}

func New(deps Deps) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 32
		ti.Width = 12
		inputs[i] = ti
	}
	inputs[fieldReps].Placeholder = "reps"
	inputs[fieldWeight].Placeholder = "kg"
	inputs[fieldRPE].Placeholder = "RPE"
	inputs[fieldNotes].Placeholder = "notes"
	inputs[fieldNotes].Width = 28
	inputs[fieldReps].Focus()

	return Model{
		deps:   deps,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		state:  StateDays,
		inputs: inputs,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// selectedDay re-reads the day from the store so edits made elsewhere
// are always reflected.
func (m Model) selectedDay() (models.WorkoutDay, bool) {
	state := m.deps.Store.State()
	for _, d := range state.Days {
		if d.ID == m.selectedDayID {
			return d, true
		}
	}
	return models.WorkoutDay{}, false
}

// beginExecution starts (or resumes after a crash) the machine for the
// planned exercise under the cursor.
func (m *Model) beginExecution(planned models.PlannedExercise, dayID string) {
	state := m.deps.Store.State()
	if progress, ok := state.ExerciseProgress[planned.ID]; ok {
		m.machine = execution.Resume(progress, planned, m.deps.Store, m.deps.Timers)
		m.setInputsFrom(progress.CurrentSet)
	} else {
		m.machine = execution.New(planned, dayID, m.deps.Store, m.deps.Timers)
		m.setInputsFrom(m.machine.CurrentInput())
	}
	m.machine.OnReturnToExercise = func() {}
	m.focus = fieldReps
	m.focusField(fieldReps)
	m.errMsg = ""
	m.state = StateExecution
}

func (m *Model) setInputsFrom(input models.SetInput) {
	m.inputs[fieldReps].SetValue(itoaOrEmpty(input.Reps))
	m.inputs[fieldWeight].SetValue(ftoaOrEmpty(input.Weight))
	m.inputs[fieldRPE].SetValue(ftoaOrEmpty(input.RPE))
	m.inputs[fieldNotes].SetValue(input.Notes)
}

func (m *Model) focusField(i int) {
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) newConfirmForm() *huh.Form {
	m.confirmCancel = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Cancel this exercise?").
				Description("Completed sets will be discarded and nothing will be logged.").
				Affirmative("Yes, cancel").
				Negative("Keep going").
				Value(&m.confirmCancel),
		),
	)
}

// timerSnapshot is a render-time view of the rest-timer singleton.
func (m Model) timerSnapshot() (resttimer.Snapshot, bool) {
	return m.deps.Timers.Active()
}
