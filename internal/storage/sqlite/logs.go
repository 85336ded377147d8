package sqlite

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

var logColumns = []string{"id", "habit_id", "date", "amount"}

func (s *Store) AddLog(habitID int64, day string, amount float64) error {
	if err := validation.LogInput(day, amount); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	err = s.sb.Select("COUNT(*)").
		From("habits").
		Where(sq.Eq{"id": habitID}).
		RunWith(tx).
		QueryRow().
		Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check habit %d: %w", habitID, err)
	}
	if count == 0 {
		return apperrors.Reference(habitID)
	}

	_, err = s.sb.Insert("logs").
		Columns("habit_id", "date", "amount").
		Values(habitID, day, amount).
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return tx.Commit()
}

func (s *Store) GetLogs(habitID int64) ([]models.LogEntry, error) {
	return s.queryLogs(s.sb.Select(logColumns...).
		From("logs").
		Where(sq.Eq{"habit_id": habitID}).
		OrderBy("date ASC", "id ASC"))
}

func (s *Store) GetAllLogs() ([]models.LogEntry, error) {
	return s.queryLogs(s.sb.Select(logColumns...).
		From("logs").
		OrderBy("habit_id ASC", "date ASC", "id ASC"))
}

func (s *Store) queryLogs(query sq.SelectBuilder) ([]models.LogEntry, error) {
	rows, err := query.RunWith(s.db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	logs := []models.LogEntry{}
	for rows.Next() {
		var l models.LogEntry
		if err := rows.Scan(&l.ID, &l.HabitID, &l.Day, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
