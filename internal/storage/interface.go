package storage

import "github.com/julianstephens/habitual/internal/models"

// Provider is the storage contract shared by every backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(name string, kind models.Kind, target float64) (int64, error)
	// ListHabits returns habits most recently created first.
	ListHabits() ([]models.Habit, error)
	// GetHabit reports found=false without an error for unknown ids.
	GetHabit(id int64) (models.Habit, bool, error)
	// DeleteHabit removes the habit and its logs. Unknown ids are a no-op.
	DeleteHabit(id int64) error

	// Logs
	AddLog(habitID int64, day string, amount float64) error
	// GetLogs returns the habit's logs ascending by day, ties in insertion order.
	GetLogs(habitID int64) ([]models.LogEntry, error)
	GetAllLogs() ([]models.LogEntry, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by backends with a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}
