package sqlite

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

	res, err := s.sb.Insert("habits").
		Columns("name", "kind", "target").
		Values(strings.TrimSpace(name), string(kind), target).
		RunWith(s.db).
		Exec()
	if err != nil {
		return 0, fmt.Errorf("failed to insert habit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read habit id: %w", err)
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
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) GetHabit(id int64) (models.Habit, bool, error) {
	row := s.sb.Select(habitColumns...).
		From("habits").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		QueryRow()

	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, false, nil
		}
		return models.Habit{}, false, err
	}
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

func scanHabit(row sq.RowScanner) (models.Habit, error) {
	var h models.Habit
	var kind string
	if err := row.Scan(&h.ID, &h.Name, &kind, &h.TargetPerDay); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, err
		}
		return models.Habit{}, fmt.Errorf("failed to scan habit: %w", err)
	}
	h.Kind = models.Kind(kind)
	return h, nil
}
