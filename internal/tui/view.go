package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pedrohrf/ironlog/internal/execution"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDays:
		content = m.viewDays()
	case StateDayDetail:
		content = m.viewDayDetail()
	case StateExecution:
		content = m.viewExecution()
	case StateConfirmCancel:
		content = m.confirmForm.View()
	case StateSummary:
		content = m.viewSummary()
	}

	sections := []string{
		titleStyle.Render("ironlog"),
		content,
	}
	// The timer bar renders on every screen; the countdown belongs to
	// the manager, not to the execution view.
	if bar := m.viewTimerBar(); bar != "" {
		sections = append(sections, bar)
	}
	if m.errMsg != "" {
		sections = append(sections, dangerStyle.Render(m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewDays() string {
	state := m.deps.Store.State()
	if len(state.Days) == 0 {
		return docStyle.Render("No workout days yet.\nAdd one with 'ironlog day add \"Push A\"'.")
	}

	var b strings.Builder
	b.WriteString("Workout days\n\n")
	for i, day := range state.Days {
		done := 0
		for _, ex := range day.Exercises {
			if _, ok := state.CompletedExercises[ex.ID]; ok {
				done++
			}
		}
		line := fmt.Sprintf("%s  (%d/%d done today)", day.Name, done, len(day.Exercises))
		if i == m.dayCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return docStyle.Render(b.String())
}

func (m Model) viewDayDetail() string {
	day, ok := m.selectedDay()
	if !ok {
		return docStyle.Render("Day no longer exists.")
	}
	state := m.deps.Store.State()

	var b strings.Builder
	b.WriteString(day.Name + "\n\n")

	allDone := len(day.Exercises) > 0
	for i, ex := range day.Exercises {
		marker := "  "
		suffix := ""
		if info, done := state.CompletedExercises[ex.ID]; done {
			marker = doneStyle.Render("✓ ")
			if info.Logged.IsPersonalRecord {
				suffix = "  " + recordStyle.Render("★ PR")
			}
		} else {
			allDone = false
			if _, inFlight := state.ExerciseProgress[ex.ID]; inFlight {
				suffix = "  " + dimStyle.Render("(in progress)")
			}
		}

		line := fmt.Sprintf("%s%s  %dx%d @ %.1fkg%s",
			marker, ex.Name, ex.TargetSets, ex.TargetReps, ex.TargetWeight, suffix)
		if i == m.exCursor {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if allDone && !state.DismissedToasts[day.ID] {
		b.WriteString("\n" + toastStyle.Render("Treino completo! Compartilhe com os amigos 💪  [x] dismiss"))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewExecution() string {
	if m.machine == nil {
		return ""
	}
	exec := m.machine.Execution()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s — set %d of %d\n\n", exec.Name, min(exec.CurrentSet, exec.TotalSets), exec.TotalSets))

	for i, set := range exec.CompletedSets {
		pr := ""
		if set.IsPersonalRecord {
			pr = "  " + recordStyle.Render("★")
		}
		if set.Notes == "" || set.Reps > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  set %d: %d x %.1fkg%s\n", i+1, set.Reps, set.Weight, pr)))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  set %d: %s\n", i+1, set.Notes)))
		}
	}
	if len(exec.CompletedSets) > 0 {
		b.WriteString("\n")
	}

	if m.machine.Phase() == execution.PhaseFinalizing {
		b.WriteString(doneStyle.Render("All sets done — press enter to finish the exercise.\n"))
		return docStyle.Render(b.String())
	}

	b.WriteString(fmt.Sprintf("  reps:   %s\n", m.inputs[fieldReps].View()))
	b.WriteString(fmt.Sprintf("  weight: %s\n", m.inputs[fieldWeight].View()))
	b.WriteString(fmt.Sprintf("  RPE:    %s\n", m.inputs[fieldRPE].View()))
	b.WriteString(fmt.Sprintf("  notes:  %s\n", m.inputs[fieldNotes].View()))
	b.WriteString(dimStyle.Render("\nenter complete · s skip · c cancel · esc back\n"))
	return docStyle.Render(b.String())
}

func (m Model) viewSummary() string {
	if m.lastLogged == nil {
		return ""
	}
	le := m.lastLogged

	var b strings.Builder
	b.WriteString(doneStyle.Render("Exercise logged!") + "\n\n")
	b.WriteString(fmt.Sprintf("  %s\n", le.Name))
	b.WriteString(fmt.Sprintf("  %d sets · avg %d reps · avg %.1fkg\n", le.Sets, le.Reps, le.Weight))
	b.WriteString(fmt.Sprintf("  total volume %.1f\n", le.Volume))
	if le.IsPersonalRecord {
		b.WriteString("\n  " + recordStyle.Render("★ New personal record!") + "\n")
	}
	b.WriteString(dimStyle.Render("\npress enter to continue"))
	return docStyle.Render(b.String())
}

func (m Model) viewTimerBar() string {
	snap, ok := m.timerSnapshot()
	if !ok {
		return ""
	}
	text := fmt.Sprintf("⏱ %s — rest %ds (set %d/%d)  [r return · t skip]",
		snap.ExerciseName, snap.Remaining, snap.CurrentSet, snap.TotalSets)
	if snap.Warning() {
		return timerWarnStyle.Render(text)
	}
	return timerBarStyle.Render(text)
}
