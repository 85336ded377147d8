package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-8)
		m.insightsModel.SetWidth(msg.Width - 4)
		return m, nil
	}

	switch m.state {
	case StateAddHabit:
		return m, m.updateAddHabit(msg)
	case StateAddLog:
		return m, m.updateAddLog(msg)
	case StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Kind: models.KindExercise, Target: strconv.FormatFloat(constants.DefaultTarget, 'f', -1, 64)}
		m.form = NewHabitForm(m.habitForm)
		m.formError = ""
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.LogHabitMsg:
		habit, found, err := m.store.GetHabit(msg.ID)
		if err != nil || !found {
			m.status = fmt.Sprintf("Habit %d is no longer available", msg.ID)
			m.refresh()
			return m, nil
		}
		amount := habit.TargetPerDay
		if amount <= 0 {
			amount = constants.DefaultAmount
		}
		m.logForm = &LogFormModel{
			HabitID:   habit.ID,
			HabitName: habit.Name,
			Unit:      habit.Kind.Unit(),
			Date:      m.now().Format(constants.DateFormat),
			Amount:    strconv.FormatFloat(amount, 'f', -1, 64),
		}
		m.form = NewLogForm(m.logForm)
		m.formError = ""
		m.state = StateAddLog
		return m, m.form.Init()

	case habits.DeleteHabitMsg:
		if item, ok := m.habitsModel.Selected(); ok && item.Habit.ID == msg.ID {
			m.habitToDeleteName = item.Habit.Name
		}
		m.habitToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case habits.ShowInsightsMsg:
		m.insightsModel.Focus(msg.ID)
		m.state = StateInsights
		return m, nil

	case tea.KeyMsg:
		if m.state == StateHabits && m.habitsModel.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			m.status = "Refreshed"
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateInsights:
		m.insightsModel, cmd = m.insightsModel.Update(msg)
	}
	return m, cmd
}

// updateForm forwards msg to the active form. Esc aborts it.
func (m *Model) updateForm(msg tea.Msg) (tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		m.formError = ""
		return nil, true
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd, false
}

func (m *Model) updateAddHabit(msg tea.Msg) tea.Cmd {
	cmd, aborted := m.updateForm(msg)
	if aborted {
		return nil
	}

	switch m.form.State {
	case huh.StateCompleted:
		target, err := strconv.ParseFloat(strings.TrimSpace(m.habitForm.Target), 64)
		if err != nil {
			m.formError = "Target must be a number"
			m.form.State = huh.StateNormal
			return cmd
		}
		id, err := m.store.AddHabit(m.habitForm.Name, m.habitForm.Kind, target)
		if err != nil {
			// Stay in the form so the user can correct the input or press esc
			m.formError = fmt.Sprintf("Failed to add habit: %v", err)
			m.form.State = huh.StateNormal
			return cmd
		}
		logger.Info("Added habit", "id", id, "kind", m.habitForm.Kind)
		m.status = fmt.Sprintf("Added habit %q", strings.TrimSpace(m.habitForm.Name))
		m.formError = ""
		m.refresh()
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return cmd
}

func (m *Model) updateAddLog(msg tea.Msg) tea.Cmd {
	cmd, aborted := m.updateForm(msg)
	if aborted {
		return nil
	}

	switch m.form.State {
	case huh.StateCompleted:
		amount, err := strconv.ParseFloat(strings.TrimSpace(m.logForm.Amount), 64)
		if err != nil {
			m.formError = "Amount must be a number"
			m.form.State = huh.StateNormal
			return cmd
		}
		day := strings.TrimSpace(m.logForm.Date)
		if err := m.store.AddLog(m.logForm.HabitID, day, amount); err != nil {
			m.formError = fmt.Sprintf("Failed to log: %v", err)
			m.form.State = huh.StateNormal
			return cmd
		}
		logger.Info("Logged habit", "habit", m.logForm.HabitID, "day", day, "amount", amount)
		m.status = fmt.Sprintf("Logged %g %s for %s on %s", amount, m.logForm.Unit, m.logForm.HabitName, day)
		m.formError = ""
		m.refresh()
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return cmd
}

func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.deleteHabit(m.habitToDeleteID)
		m.habitToDeleteID = 0
		m.habitToDeleteName = ""
		m.state = StateHabits
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToDeleteID = 0
		m.habitToDeleteName = ""
		m.state = StateHabits
	}
	return nil
}

func (m *Model) deleteHabit(id int64) {
	if m.beforeDelete != nil {
		if err := m.beforeDelete(); err != nil {
			logger.Error("Backup before delete failed", "habit", id, "error", err)
			m.status = fmt.Sprintf("Delete aborted, backup failed: %v", err)
			return
		}
	}
	if err := m.store.DeleteHabit(id); err != nil {
		logger.Error("Failed to delete habit", "habit", id, "error", err)
		m.status = fmt.Sprintf("Failed to delete habit: %v", err)
		return
	}
	logger.Info("Deleted habit", "id", id)
	m.status = "Habit deleted"
	m.refresh()
}
