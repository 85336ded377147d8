package models

import (
	"fmt"
	"strings"
)

// Kind is the closed set of habit categories
type Kind string

const (
	KindExercise Kind = "exercise"
	KindStudy    Kind = "study"
	KindSleep    Kind = "sleep"
)

// Kinds returns every supported kind in display order
func Kinds() []Kind {
	return []Kind{KindExercise, KindStudy, KindSleep}
}

// ParseKind accepts a kind name or its display label, case-insensitively.
func ParseKind(s string) (Kind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if v == string(k) || v == strings.ToLower(k.Label()) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown habit kind %q", s)
}

// Valid reports whether k is one of the supported kinds
func (k Kind) Valid() bool {
	switch k {
	case KindExercise, KindStudy, KindSleep:
		return true
	}
	return false
}

// Unit is the unit the daily target and log amounts are measured in
func (k Kind) Unit() string {
	if k == KindSleep {
		return "hours"
	}
	return "minutes"
}

// Label is the human-readable form shown in forms and tables
func (k Kind) Label() string {
	switch k {
	case KindExercise:
		return "Exercise (minutes)"
	case KindStudy:
		return "Study (minutes)"
	case KindSleep:
		return "Sleep (hours)"
	}
	return string(k)
}

// Habit represents a tracked practice with a daily target
type Habit struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Kind         Kind    `json:"kind"`
	TargetPerDay float64 `json:"target_per_day"`
}

// LogEntry represents one observed amount for a habit on a day.
// Several entries may share a day; their amounts add up.
type LogEntry struct {
	ID      int64   `json:"id"`
	HabitID int64   `json:"habit_id"`
	Day     string  `json:"day"` // YYYY-MM-DD format
	Amount  float64 `json:"amount"`
}
