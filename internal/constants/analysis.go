package constants

const (
	// RecommendationWindowDays is the length of the trailing window, today included.
	RecommendationWindowDays = 7

	// StudyConsistencyThreshold is the fraction of met days below which a
	// study habit gets the focus block tip.
	StudyConsistencyThreshold = 0.6

	// SleepStdDevThreshold is the largest sample standard deviation, in hours,
	// still considered a consistent sleep schedule.
	SleepStdDevThreshold = 0.75
)
