package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

var habitColumns = []string{"id", "name", "kind", "target"}

func (s *Store) AddHabit(name string, kind models.Kind, target float64) (int64, error) {
	if err := validation.HabitInput(name, kind, target); err != nil {
		return 0, err
	}

	var id int64
	err := s.sb.Insert("habits").
		Columns("name", "kind", "target").
		Values(strings.TrimSpace(name), string(kind), target).
		Suffix("RETURNING id").
		RunWith(s.db).
		QueryRow().
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert habit: %w", err)
	}
	return id, nil
}

func (s *Store) ListHabits() ([]models.Habit, error) {
	rows, err := s.sb.Select(habitColumns...).
		From("habits").
		OrderBy("id DESC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var kind string
		if err := rows.Scan(&h.ID, &h.Name, &kind, &h.TargetPerDay); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		h.Kind = models.Kind(kind)
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) GetHabit(id int64) (models.Habit, bool, error) {
	var h models.Habit
	var kind string
	err := s.sb.Select(habitColumns...).
		From("habits").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		QueryRow().
		Scan(&h.ID, &h.Name, &kind, &h.TargetPerDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, false, nil
		}
		return models.Habit{}, false, fmt.Errorf("failed to get habit %d: %w", id, err)
	}
	h.Kind = models.Kind(kind)
	return h, true, nil
}

func (s *Store) DeleteHabit(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.sb.Delete("logs").Where(sq.Eq{"habit_id": id}).RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to delete logs for habit %d: %w", id, err)
	}
	if _, err := s.sb.Delete("habits").Where(sq.Eq{"id": id}).RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to delete habit %d: %w", id, err)
	}
	return tx.Commit()
}
