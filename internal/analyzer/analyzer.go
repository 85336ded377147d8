// Package analyzer computes streaks, trend series and kind-specific
// recommendations from a habit's log entries. Everything here is a pure
// function of the target, the logs and the reference day.
package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Analyzer is implemented once per habit kind.
type Analyzer interface {
	Kind() models.Kind
	// Streak counts consecutive met days ending today, or ending yesterday
	// when today has not been met yet.
	Streak(target float64, logs []models.LogEntry, today time.Time) int
	// Recommend evaluates the trailing window ending today.
	Recommend(target float64, logs []models.LogEntry, today time.Time) Recommendation
}

// For returns the analyzer for kind.
func For(kind models.Kind) (Analyzer, error) {
	switch kind {
	case models.KindExercise:
		return exerciseAnalyzer{}, nil
	case models.KindStudy:
		return studyAnalyzer{}, nil
	case models.KindSleep:
		return sleepAnalyzer{}, nil
	}
	return nil, apperrors.Validation("kind", fmt.Sprintf("no analyzer for %q", kind))
}

// DailyTotal is the summed amount logged on one day
type DailyTotal struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
	Met   bool    `json:"met"`
}

// DailyTotals sums amounts per day. Entries sharing a day add up.
func DailyTotals(logs []models.LogEntry) map[string]float64 {
	totals := make(map[string]float64, len(logs))
	for _, l := range logs {
		totals[l.Day] += l.Amount
	}
	return totals
}

// Series returns per-day totals in ascending day order, marking days that met target.
func Series(target float64, logs []models.LogEntry) []DailyTotal {
	totals := DailyTotals(logs)
	series := make([]DailyTotal, 0, len(totals))
	for day, total := range totals {
		series = append(series, DailyTotal{Day: day, Total: total, Met: total >= target})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Day < series[j].Day
	})
	return series
}

// streak is shared by every kind
type streak struct{}

func (streak) Streak(target float64, logs []models.LogEntry, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	totals := DailyTotals(logs)
	day := dayOf(today)
	if n := countMet(totals, target, day); n > 0 {
		return n
	}
	return countMet(totals, target, day.AddDate(0, 0, -1))
}

func countMet(totals map[string]float64, target float64, from time.Time) int {
	n := 0
	for d := from; ; d = d.AddDate(0, 0, -1) {
		total, ok := totals[d.Format(constants.DateFormat)]
		if !ok || total < target {
			return n
		}
		n++
	}
}

// dayOf pins t to noon so AddDate never lands on the wrong side of a DST shift.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// windowDay is one calendar day of the trailing recommendation window
type windowDay struct {
	day     string
	total   float64
	present bool
}

// trailingWindow returns the RecommendationWindowDays days ending today,
// oldest first. Days without entries are present=false.
func trailingWindow(logs []models.LogEntry, today time.Time) []windowDay {
	totals := DailyTotals(logs)
	end := dayOf(today)
	days := make([]windowDay, 0, constants.RecommendationWindowDays)
	for i := constants.RecommendationWindowDays - 1; i >= 0; i-- {
		key := utils.AddDays(end, -i)
		total, ok := totals[key]
		days = append(days, windowDay{day: key, total: total, present: ok})
	}
	return days
}

// Recent returns one DailyTotal per calendar day for the days ending today,
// oldest first. Days without entries have a zero total and are never met.
func Recent(target float64, logs []models.LogEntry, today time.Time, days int) []DailyTotal {
	if days < 1 {
		return []DailyTotal{}
	}
	totals := DailyTotals(logs)
	end := dayOf(today)
	series := make([]DailyTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := utils.AddDays(end, -i)
		total, ok := totals[key]
		series = append(series, DailyTotal{Day: key, Total: total, Met: ok && total >= target})
	}
	return series
}
