package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
)

// ParseDay parses a YYYY-MM-DD string into midnight of that day in the local timezone.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// NormalizeDay validates a YYYY-MM-DD string. Empty input means the day
// reported by now.
func NormalizeDay(day string, now func() time.Time) (string, error) {
	if day == "" {
		return now().Format(constants.DateFormat), nil
	}
	t, err := ParseDay(day)
	if err != nil {
		return "", apperrors.Validation("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", day))
	}
	return t.Format(constants.DateFormat), nil
}

// AddDays returns the calendar day n days from day, formatted as YYYY-MM-DD.
func AddDays(day time.Time, n int) string {
	return day.AddDate(0, 0, n).Format(constants.DateFormat)
}
