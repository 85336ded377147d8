package analyzer

import (
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

type sleepAnalyzer struct{ streak }

func (sleepAnalyzer) Kind() models.Kind { return models.KindSleep }

// Recommend looks at the sample standard deviation of nightly totals.
// Fewer than two days with entries is reported as no data.
func (sleepAnalyzer) Recommend(target float64, logs []models.LogEntry, today time.Time) Recommendation {
	var values []float64
	for _, d := range trailingWindow(logs, today) {
		if d.present {
			values = append(values, d.total)
		}
	}

	rec := Recommendation{Kind: models.KindSleep, Target: target}
	sd, ok := sampleStdDev(values)
	switch {
	case !ok:
		rec.Advice = AdviceBedtimeWindow
	case sd <= constants.SleepStdDevThreshold:
		rec.HasData, rec.Metric = true, sd
		rec.Advice = AdviceMaintainRoutine
	default:
		rec.HasData, rec.Metric = true, sd
		rec.Advice = AdviceScreenOff
	}
	return rec
}

func sampleStdDev(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(values)-1)), true
}
