// Package insights shows streak, recommendation and trend for one habit at
// a time.
package insights

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/analyzer"
	"github.com/julianstephens/habitual/internal/tui/components/chart"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	streakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	tipStyle    = lipgloss.NewStyle().Italic(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type KeyMap struct {
	Prev key.Binding
	Next key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev habit"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next habit"),
		),
	}
}

type Model struct {
	insights []analyzer.Insight
	selected int
	keys     KeyMap
	width    int
}

func New(insights []analyzer.Insight, width int) Model {
	return Model{insights: insights, keys: DefaultKeyMap(), width: width}
}

// SetInsights replaces the data, keeping the selection on the same habit
// when it still exists.
func (m *Model) SetInsights(insights []analyzer.Insight) {
	var current int64
	if c, ok := m.Current(); ok {
		current = c.Habit.ID
	}
	m.insights = insights
	m.selected = 0
	m.Focus(current)
}

// Focus selects the habit with the given id, if present.
func (m *Model) Focus(id int64) {
	for i, in := range m.insights {
		if in.Habit.ID == id {
			m.selected = i
			return
		}
	}
}

// Current returns the selected insight.
func (m Model) Current() (analyzer.Insight, bool) {
	if m.selected < 0 || m.selected >= len(m.insights) {
		return analyzer.Insight{}, false
	}
	return m.insights[m.selected], true
}

func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Prev, m.keys.Next}
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && len(m.insights) > 0 {
		switch {
		case key.Matches(msg, m.keys.Prev):
			m.selected = (m.selected - 1 + len(m.insights)) % len(m.insights)
		case key.Matches(msg, m.keys.Next):
			m.selected = (m.selected + 1) % len(m.insights)
		}
	}
	return m, nil
}

func (m Model) View() string {
	in, ok := m.Current()
	if !ok {
		return "\n  No habits yet.\n  Add one on the Habits tab."
	}

	barWidth := chart.DefaultWidth
	if m.width > 30 {
		barWidth = min(m.width-20, 60)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(in.Habit.Name),
		mutedStyle.Render(fmt.Sprintf("(%d/%d · %s)", m.selected+1, len(m.insights), in.Habit.Kind.Label())))
	fmt.Fprintf(&b, "Target: %g %s/day\n", in.Habit.TargetPerDay, in.Habit.Kind.Unit())
	fmt.Fprintf(&b, "Streak: %s\n\n", streakStyle.Render(fmt.Sprintf("%d day(s)", in.Streak)))
	b.WriteString(tipStyle.Render(in.Message))
	b.WriteString("\n\n")
	b.WriteString(chart.Render(in.Series, in.Habit.TargetPerDay, in.Habit.Kind.Unit(), barWidth))
	return b.String()
}
