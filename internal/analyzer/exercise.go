package analyzer

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

type exerciseAnalyzer struct{ streak }

func (exerciseAnalyzer) Kind() models.Kind { return models.KindExercise }

// Recommend compares the mean daily total over days with entries to target.
func (exerciseAnalyzer) Recommend(target float64, logs []models.LogEntry, today time.Time) Recommendation {
	var sum float64
	var n int
	for _, d := range trailingWindow(logs, today) {
		if d.present {
			sum += d.total
			n++
		}
	}

	rec := Recommendation{Kind: models.KindExercise, Target: target, HasData: n > 0}
	if n > 0 {
		rec.Metric = sum / float64(n)
	}
	if rec.Metric >= target {
		rec.Advice = AdviceRestDay
	} else {
		rec.Advice = AdviceIncrease
	}
	return rec
}
