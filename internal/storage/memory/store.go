// Package memory is a transient Provider kept entirely in process memory.
// Nothing survives Close.
package memory

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

type Store struct {
	mu sync.Mutex

	// habits and logs are kept in insertion order.
	habits    []models.Habit
	logs      []models.LogEntry
	nextHabit int64
	nextLog   int64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Init() error  { return nil }
func (s *Store) Load() error  { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string {
	return "memory"
}

func (s *Store) AddHabit(name string, kind models.Kind, target float64) (int64, error) {
	if err := validation.HabitInput(name, kind, target); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHabit++
	s.habits = append(s.habits, models.Habit{
		ID:           s.nextHabit,
		Name:         strings.TrimSpace(name),
		Kind:         kind,
		TargetPerDay: target,
	})
	return s.nextHabit, nil
}

func (s *Store) ListHabits() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := make([]models.Habit, 0, len(s.habits))
	for i := len(s.habits) - 1; i >= 0; i-- {
		habits = append(habits, s.habits[i])
	}
	return habits, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Habit{}, false, nil
	}
	return s.habits[i], true, nil
}

func (s *Store) DeleteHabit(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)

	kept := s.logs[:0]
	for _, l := range s.logs {
		if l.HabitID != id {
			kept = append(kept, l)
		}
	}
	s.logs = kept
	return nil
}

func (s *Store) AddLog(habitID int64, day string, amount float64) error {
	if err := validation.LogInput(day, amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(habitID) < 0 {
		return apperrors.Reference(habitID)
	}
	s.nextLog++
	s.logs = append(s.logs, models.LogEntry{
		ID:      s.nextLog,
		HabitID: habitID,
		Day:     day,
		Amount:  amount,
	})
	return nil
}

func (s *Store) GetLogs(habitID int64) ([]models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := []models.LogEntry{}
	for _, l := range s.logs {
		if l.HabitID == habitID {
			logs = append(logs, l)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Day < logs[j].Day })
	return logs, nil
}

func (s *Store) GetAllLogs() ([]models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]models.LogEntry, len(s.logs))
	copy(logs, s.logs)
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].HabitID != logs[j].HabitID {
			return logs[i].HabitID < logs[j].HabitID
		}
		return logs[i].Day < logs[j].Day
	})
	return logs, nil
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int64) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
