package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pedrohrf/ironlog/internal/execution"
	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/store"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		// The tick only forces a re-render; the countdown itself runs
		// in the rest-timer manager.
		return m, tickCmd()

	case tea.KeyMsg:
		switch m.state {
		case StateDays:
			return m.updateDays(msg)
		case StateDayDetail:
			return m.updateDayDetail(msg)
		case StateExecution:
			return m.updateExecution(msg)
		case StateConfirmCancel:
			return m.updateConfirmCancel(msg)
		case StateSummary:
			return m.updateSummary(msg)
		}
	}

	if m.state == StateConfirmCancel && m.confirmForm != nil {
		return m.updateConfirmCancel(msg)
	}
	return m, nil
}

func (m Model) updateDays(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	days := m.deps.Store.State().Days
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.dayCursor > 0 {
			m.dayCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.dayCursor < len(days)-1 {
			m.dayCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.dayCursor < len(days) {
			m.selectedDayID = days[m.dayCursor].ID
			m.exCursor = 0
			m.state = StateDayDetail
		}
	}
	return m, nil
}

func (m Model) updateDayDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	day, ok := m.selectedDay()
	if !ok {
		m.state = StateDays
		return m, nil
	}
	state := m.deps.Store.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.state = StateDays
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.exCursor > 0 {
			m.exCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.exCursor < len(day.Exercises)-1 {
			m.exCursor++
		}
	case key.Matches(msg, m.keys.Dismiss):
		m.deps.Store.Dispatch(store.DismissShareToast{DayID: day.ID})
	case key.Matches(msg, m.keys.Redo):
		if m.exCursor < len(day.Exercises) {
			planned := day.Exercises[m.exCursor]
			if _, done := state.CompletedExercises[planned.ID]; done {
				m.deps.Store.Dispatch(store.ClearCompletedExercise{ExerciseID: planned.ID})
				m.beginExecution(planned, day.ID)
			}
		}
	case key.Matches(msg, m.keys.Enter):
		if m.exCursor >= len(day.Exercises) {
			break
		}
		planned := day.Exercises[m.exCursor]
		if _, done := state.CompletedExercises[planned.ID]; done {
			// Done for today; redo is an explicit separate action.
			break
		}
		if state.ActiveExercise != "" && state.ActiveExercise != planned.ID {
			m.errMsg = "Another exercise is in progress"
			break
		}
		m.beginExecution(planned, day.ID)
	case key.Matches(msg, m.keys.Return):
		// Jump back to the exercise the rest timer belongs to.
		if snap, ok := m.timerSnapshot(); ok && m.machine != nil && m.machine.Execution().ExerciseID == snap.ExerciseID {
			m.state = StateExecution
		}
	case key.Matches(msg, m.keys.SkipRest):
		m.deps.Timers.Skip()
	}
	return m, nil
}

func (m Model) updateExecution(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.machine == nil {
		m.state = StateDayDetail
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		// Leaving the screen does not stop anything: execution state
		// and the rest timer live outside the view.
		m.state = StateDayDetail
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % fieldCount
		m.focusField(m.focus)
		return m, nil
	case key.Matches(msg, m.keys.SkipRest):
		m.deps.Timers.Skip()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.confirmForm = m.newConfirmForm()
		m.state = StateConfirmCancel
		return m, m.confirmForm.Init()
	case key.Matches(msg, m.keys.Skip):
		if m.machine.Phase() == execution.PhaseSetInProgress {
			if err := m.machine.SkipCurrentSet(); err != nil {
				m.errMsg = err.Error()
			} else {
				m.afterSetAdvance()
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		return m.completeOrFinalize()
	}

	// Everything else edits the working-set fields.
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.machine.UpdateCurrentSet(m.parseInputs())
	return m, cmd
}

func (m Model) completeOrFinalize() (tea.Model, tea.Cmd) {
	switch m.machine.Phase() {
	case execution.PhaseSetInProgress:
		input := m.parseInputs()
		if input.Reps <= 0 {
			// Completion stays disabled for zero reps; skip is the
			// explicit path for an unperformed set.
			m.errMsg = "Enter at least one rep (or skip the set with 's')"
			return m, nil
		}
		if err := m.machine.CompleteCurrentSet(input); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.afterSetAdvance()
	case execution.PhaseFinalizing:
		logged, err := m.machine.Finalize()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.lastLogged = &logged
		m.machine = nil
		m.state = StateSummary
	}
	return m, nil
}

func (m *Model) afterSetAdvance() {
	m.errMsg = ""
	m.setInputsFrom(m.machine.CurrentInput())
	m.focus = fieldReps
	m.focusField(fieldReps)
}

func (m Model) updateConfirmCancel(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirmForm = f
	}

	if m.confirmForm.State == huh.StateCompleted {
		if m.confirmCancel && m.machine != nil {
			m.machine.Cancel()
			m.machine = nil
			m.state = StateDayDetail
		} else {
			m.state = StateExecution
		}
		m.confirmForm = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Back):
		m.lastLogged = nil
		m.state = StateDayDetail
	}
	return m, nil
}

func (m Model) parseInputs() models.SetInput {
	reps, _ := strconv.Atoi(m.inputs[fieldReps].Value())
	weight, _ := strconv.ParseFloat(m.inputs[fieldWeight].Value(), 64)
	rpe, _ := strconv.ParseFloat(m.inputs[fieldRPE].Value(), 64)
	return models.SetInput{
		Reps:   reps,
		Weight: weight,
		RPE:    rpe,
		Notes:  m.inputs[fieldNotes].Value(),
	}
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func ftoaOrEmpty(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
