package analyzer

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/models"
)

// Advice identifies which recommendation branch was taken
type Advice string

const (
	AdviceRestDay          Advice = "rest_day"
	AdviceIncrease         Advice = "incremental_increase"
	AdviceFocusBlock       Advice = "fixed_time_focus_block"
	AdviceSpacedRepetition Advice = "spaced_repetition"
	AdviceBedtimeWindow    Advice = "consistent_bedtime_window"
	AdviceMaintainRoutine  Advice = "maintain_routine"
	AdviceScreenOff        Advice = "fixed_screen_off"
)

var tips = map[Advice]string{
	AdviceRestDay:          "Great pace, consider adding a rest day.",
	AdviceIncrease:         "Try a 10-15% incremental increase next week.",
	AdviceFocusBlock:       "Lock in a fixed-time focus block (25/5 Pomodoro) at the same hour each day.",
	AdviceSpacedRepetition: "Level up: add spaced-repetition review.",
	AdviceBedtimeWindow:    "Aim for a consistent bedtime window (±30 min).",
	AdviceMaintainRoutine:  "Bedtime consistency looks good, maintain routine.",
	AdviceScreenOff:        "Large variance, set a fixed screen-off time 1 hour before bed.",
}

// Recommendation is the outcome of a kind-specific rule over the trailing window
type Recommendation struct {
	Kind models.Kind `json:"kind"`
	// Metric is the mean (exercise), met fraction (study) or sample
	// standard deviation (sleep). Zero when HasData is false.
	Metric  float64 `json:"metric"`
	HasData bool    `json:"has_data"`
	Target  float64 `json:"target"`
	Advice  Advice  `json:"advice"`
}

// Tip returns the advice text
func (r Recommendation) Tip() string {
	return tips[r.Advice]
}

// String renders the metric alongside the tip
func (r Recommendation) String() string {
	switch r.Kind {
	case models.KindExercise:
		return fmt.Sprintf("Exercise: avg %.1f min/day vs target %.0f. %s", r.Metric, r.Target, r.Tip())
	case models.KindStudy:
		return fmt.Sprintf("Study: %.0f%% of last 7 days met target. %s", r.Metric*100, r.Tip())
	case models.KindSleep:
		if !r.HasData {
			return fmt.Sprintf("Sleep: no data, std dev %.2f hrs. %s", 0.0, r.Tip())
		}
		return fmt.Sprintf("Sleep: std dev %.2f hrs. %s", r.Metric, r.Tip())
	}
	return r.Tip()
}
