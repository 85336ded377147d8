package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/memory"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
)

var fixedNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, opts ...Option) (Model, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	id, err := store.AddHabit("Run", models.KindExercise, 30)
	require.NoError(t, err)
	require.NoError(t, store.AddLog(id, "2024-05-10", 35))

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewModel(store, opts...), store, id
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestNewModelLoadsHabits(t *testing.T) {
	m, _, id := newTestModel(t)
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	item, ok := m.habitsModel.Selected()
	require.True(t, ok)
	assert.Equal(t, id, item.Habit.ID)
	assert.Equal(t, 35.0, item.TodayTotal)
	assert.True(t, item.LoggedToday)
	assert.Equal(t, 1, item.Streak)

	view := m.View()
	assert.Contains(t, view, "Habits")
	assert.Contains(t, view, "Run")
	assert.Empty(t, m.validationWarning)
}

func TestTabCyclesBetweenViews(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, StateInsights, m.state)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, StateHabits, m.state)
	m = step(t, m, runes("h"))
	assert.Equal(t, StateInsights, m.state)
}

func TestShowInsightsFocusesHabit(t *testing.T) {
	m, store, _ := newTestModel(t)
	other, err := store.AddHabit("Read", models.KindStudy, 20)
	require.NoError(t, err)
	m = step(t, m, runes("r"))

	m = step(t, m, habits.ShowInsightsMsg{ID: other})
	assert.Equal(t, StateInsights, m.state)
	current, ok := m.insightsModel.Current()
	require.True(t, ok)
	assert.Equal(t, "Read", current.Habit.Name)
}

func TestConfirmDelete(t *testing.T) {
	backups := 0
	m, store, id := newTestModel(t, WithBeforeDelete(func() error {
		backups++
		return nil
	}))

	m = step(t, m, habits.DeleteHabitMsg{ID: id})
	assert.Equal(t, StateConfirmDelete, m.state)
	assert.Contains(t, m.View(), "Delete habit Run")

	m = step(t, m, runes("y"))
	assert.Equal(t, StateHabits, m.state)
	assert.Equal(t, 1, backups)

	_, found, err := store.GetHabit(id)
	require.NoError(t, err)
	assert.False(t, found)
	_, ok := m.habitsModel.Selected()
	assert.False(t, ok)
}

func TestCancelDelete(t *testing.T) {
	m, store, id := newTestModel(t)

	m = step(t, m, habits.DeleteHabitMsg{ID: id})
	m = step(t, m, runes("n"))
	assert.Equal(t, StateHabits, m.state)

	_, found, err := store.GetHabit(id)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestBeforeDeleteFailureAbortsDelete(t *testing.T) {
	m, store, id := newTestModel(t, WithBeforeDelete(func() error {
		return errors.New("disk full")
	}))

	m = step(t, m, habits.DeleteHabitMsg{ID: id})
	m = step(t, m, runes("y"))
	assert.Contains(t, m.status, "disk full")

	_, found, err := store.GetHabit(id)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestAddHabitFormEscReturnsToList(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = step(t, m, habits.AddHabitMsg{})
	require.Equal(t, StateAddHabit, m.state)
	require.NotNil(t, m.habitForm)
	assert.Equal(t, models.KindExercise, m.habitForm.Kind)
	assert.Equal(t, "30", m.habitForm.Target)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateHabits, m.state)
}

func TestLogFormDefaults(t *testing.T) {
	m, _, id := newTestModel(t)

	m = step(t, m, habits.LogHabitMsg{ID: id})
	require.Equal(t, StateAddLog, m.state)
	assert.Equal(t, "2024-05-10", m.logForm.Date)
	assert.Equal(t, "30", m.logForm.Amount)
	assert.Equal(t, "minutes", m.logForm.Unit)
}

func TestLogUnknownHabitStaysOnList(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = step(t, m, habits.LogHabitMsg{ID: 999})
	assert.Equal(t, StateHabits, m.state)
	assert.Contains(t, m.status, "999")
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
