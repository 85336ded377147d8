package analyzer

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// Insight is everything the dashboards render for one habit
type Insight struct {
	Habit          models.Habit   `json:"habit"`
	Streak         int            `json:"streak"`
	Recommendation Recommendation `json:"recommendation"`
	Message        string         `json:"message"`
	Series         []DailyTotal   `json:"series"`
}

// Analyze builds the insight for habit from a snapshot of its logs.
func Analyze(habit models.Habit, logs []models.LogEntry, today time.Time) (Insight, error) {
	a, err := For(habit.Kind)
	if err != nil {
		return Insight{}, err
	}
	rec := a.Recommend(habit.TargetPerDay, logs, today)
	return Insight{
		Habit:          habit,
		Streak:         a.Streak(habit.TargetPerDay, logs, today),
		Recommendation: rec,
		Message:        rec.String(),
		Series:         Series(habit.TargetPerDay, logs),
	}, nil
}
