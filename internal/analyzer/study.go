package analyzer

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

type studyAnalyzer struct{ streak }

func (studyAnalyzer) Kind() models.Kind { return models.KindStudy }

// Recommend measures the fraction of the seven calendar days that met target.
// Missing days count as not met and an empty window scores 0 rather than no data.
func (studyAnalyzer) Recommend(target float64, logs []models.LogEntry, today time.Time) Recommendation {
	window := trailingWindow(logs, today)
	met, present := 0, 0
	for _, d := range window {
		if !d.present {
			continue
		}
		present++
		if d.total >= target {
			met++
		}
	}

	rec := Recommendation{Kind: models.KindStudy, Target: target, HasData: present > 0}
	if present > 0 {
		rec.Metric = float64(met) / float64(len(window))
	}
	if rec.Metric < constants.StudyConsistencyThreshold {
		rec.Advice = AdviceFocusBlock
	} else {
		rec.Advice = AdviceSpacedRepetition
	}
	return rec
}
