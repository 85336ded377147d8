package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/analyzer"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/insights"
	"github.com/julianstephens/habitual/internal/validation"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateInsights
	StateAddHabit
	StateAddLog
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithBeforeDelete runs hook before a habit is deleted. A hook error aborts
// the delete.
func WithBeforeDelete(hook func() error) Option {
	return func(m *Model) { m.beforeDelete = hook }
}

type Model struct {
	store             storage.Provider
	now               func() time.Time
	beforeDelete      func() error
	state             SessionState
	keys              KeyMap
	help              help.Model
	habitsModel       habits.Model
	insightsModel     insights.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	logForm           *LogFormModel
	habitToDeleteID   int64
	habitToDeleteName string
	status            string
	formError         string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, opts ...Option) Model {
	m := Model{
		store:         store,
		now:           time.Now,
		state:         StateHabits,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		habitsModel:   habits.New(nil, 0, 0),
		insightsModel: insights.New(nil, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	if m.state == StateInsights {
		keys = append(keys, m.insightsModel.Keys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Left, m.keys.Right, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	if m.state == StateInsights {
		return [][]key.Binding{global, m.insightsModel.Keys()}
	}
	return [][]key.Binding{global}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads every habit and its insight from the store.
func (m *Model) refresh() {
	habitList, err := m.store.ListHabits()
	if err != nil {
		logger.Error("Failed to load habits", "error", err)
		m.status = fmt.Sprintf("Failed to load habits: %v", err)
		return
	}

	today := m.now()
	todayKey := today.Format(constants.DateFormat)
	items := make([]habits.Item, 0, len(habitList))
	ins := make([]analyzer.Insight, 0, len(habitList))
	for _, h := range habitList {
		logs, err := m.store.GetLogs(h.ID)
		if err != nil {
			logger.Error("Failed to load logs", "habit", h.ID, "error", err)
			continue
		}
		insight, err := analyzer.Analyze(h, logs, today)
		if err != nil {
			// Unknown kinds surface through validation instead.
			logger.Warn("Skipping habit", "habit", h.ID, "error", err)
			continue
		}
		insight.Series = analyzer.Recent(h.TargetPerDay, logs, today, constants.DefaultChartDays)
		ins = append(ins, insight)
		total, logged := analyzer.DailyTotals(logs)[todayKey]
		items = append(items, habits.Item{
			Habit:       h,
			TodayTotal:  total,
			LoggedToday: logged,
			Streak:      insight.Streak,
		})
	}
	m.habitsModel.SetItems(items)
	m.insightsModel.SetInsights(ins)
	m.updateValidationStatus(habitList)
}

// updateValidationStatus runs integrity validation and updates the warning
func (m *Model) updateValidationStatus(habitList []models.Habit) {
	logs, err := m.store.GetAllLogs()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	result := validation.NewWithClock(m.now).Validate(habitList, logs)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'habitual validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
