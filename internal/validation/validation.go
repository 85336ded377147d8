package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
)

// HabitInput checks the fields of a new habit. The returned error wraps
// errors.ErrValidation.
func HabitInput(name string, kind models.Kind, target float64) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("name", "must not be empty")
	}
	if !kind.Valid() {
		return apperrors.Validation("kind", fmt.Sprintf("%q is not one of exercise, study, sleep", kind))
	}
	if math.IsNaN(target) || math.IsInf(target, 0) || target < 0 {
		return apperrors.Validation("target", fmt.Sprintf("must be a non-negative number, got %v", target))
	}
	return nil
}

// LogInput checks the fields of a new log entry.
func LogInput(day string, amount float64) error {
	if _, err := time.Parse(constants.DateFormat, day); err != nil {
		return apperrors.Validation("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", day))
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return apperrors.Validation("amount", fmt.Sprintf("must be a non-negative number, got %v", amount))
	}
	return nil
}

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictOrphanLog          ConflictType = "orphan_log"
	ConflictNegativeAmount     ConflictType = "negative_amount"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictFutureDate         ConflictType = "future_date"
	ConflictUnknownKind        ConflictType = "unknown_kind"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
)

// Conflict represents a detected problem in habits or logs
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []int64
	LogIDs      []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", conflict.Type, conflict.Description)
	}
	return b.String()
}

// Validator checks stored habits and logs for integrity problems
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// NewWithClock creates a Validator that judges future dates against now.
func NewWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate inspects every habit and log. Logs dated after today are reported
// because they never enter a streak or a recommendation window.
func (v *Validator) Validate(habits []models.Habit, logs []models.LogEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	today := v.now().Format(constants.DateFormat)

	known := make(map[int64]bool, len(habits))
	byName := make(map[string][]int64)
	for _, h := range habits {
		known[h.ID] = true
		key := strings.ToLower(strings.TrimSpace(h.Name))
		byName[key] = append(byName[key], h.ID)
		if !h.Kind.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownKind,
				Description: fmt.Sprintf("Habit %d (%q) has unknown kind %q", h.ID, h.Name, h.Kind),
				HabitIDs:    []int64{h.ID},
			})
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := byName[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}

	for _, l := range logs {
		if !known[l.HabitID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanLog,
				Description: fmt.Sprintf("Log %d references missing habit %d", l.ID, l.HabitID),
				HabitIDs:    []int64{l.HabitID},
				LogIDs:      []int64{l.ID},
			})
		}
		if l.Amount < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeAmount,
				Description: fmt.Sprintf("Log %d has negative amount %.2f", l.ID, l.Amount),
				HabitIDs:    []int64{l.HabitID},
				LogIDs:      []int64{l.ID},
			})
		}
		if _, err := time.Parse(constants.DateFormat, l.Day); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Log %d has invalid date %q", l.ID, l.Day),
				HabitIDs:    []int64{l.HabitID},
				LogIDs:      []int64{l.ID},
			})
		} else if l.Day > today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDate,
				Description: fmt.Sprintf("Log %d is dated %s, after today (%s)", l.ID, l.Day, today),
				HabitIDs:    []int64{l.HabitID},
				LogIDs:      []int64{l.ID},
			})
		}
	}

	return result
}
