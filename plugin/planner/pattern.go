package planner

import (
	"math"
	"time"
)

// StudyPattern summarizes when and how much the user studies, derived from
// item update timestamps.
type StudyPattern struct {
	// AverageProgressPerDay is completed cells per distinct study day.
	AverageProgressPerDay float64 `json:"average_progress_per_day"`
	// StudyFrequency is distinct study days over total tracked days, in [0,1].
	StudyFrequency float64 `json:"study_frequency"`
	// AverageSessionDuration is an estimated session length in minutes. It is
	// a proxy derived from throughput, not a measured duration.
	AverageSessionDuration float64 `json:"average_session_duration"`
	// ConsistencyScore grades study regularity, in [0,1].
	ConsistencyScore float64 `json:"consistency_score"`
}

// AnalyzeStudyPatterns derives a StudyPattern from all items' update
// timestamps. An empty item set yields the all-zero pattern.
func AnalyzeStudyPatterns(topics []Topic, bulletins []Bulletin, now time.Time) StudyPattern {
	itemCount := len(topics) + len(bulletins)
	if itemCount == 0 {
		return StudyPattern{}
	}

	// Distinct calendar dates with at least one update, and the earliest
	// update across all items. Items without a timestamp count as "now" for
	// the tracking window but contribute no study day.
	uniqueDays := make(map[string]struct{})
	earliest := now
	observe := func(updatedAt *time.Time) {
		if updatedAt == nil || updatedAt.IsZero() {
			return
		}
		uniqueDays[updatedAt.Format("2006-01-02")] = struct{}{}
		if updatedAt.Before(earliest) {
			earliest = *updatedAt
		}
	}
	for _, t := range topics {
		observe(t.UpdatedAt)
	}
	for _, b := range bulletins {
		observe(b.UpdatedAt)
	}

	totalDays := int(math.Ceil(now.Sub(earliest).Hours() / 24))
	if totalDays < 1 {
		totalDays = 1
	}
	studyFrequency := float64(len(uniqueDays)) / float64(totalDays)

	totalProgress := 0
	for _, t := range topics {
		for _, checked := range t.Checks {
			if checked {
				totalProgress++
			}
		}
	}
	for _, b := range bulletins {
		for _, completed := range b.CompletedExercises {
			if completed {
				totalProgress++
			}
		}
	}

	daysStudied := len(uniqueDays)
	if daysStudied < 1 {
		daysStudied = 1
	}
	averageProgressPerDay := float64(totalProgress) / float64(daysStudied)

	// ~15 minutes per completed cell, capped at two hours.
	averageSessionDuration := math.Min(120, averageProgressPerDay*15)

	consistencyScore := math.Min(1, studyFrequency*2)

	return StudyPattern{
		AverageProgressPerDay:  averageProgressPerDay,
		StudyFrequency:         studyFrequency,
		AverageSessionDuration: averageSessionDuration,
		ConsistencyScore:       consistencyScore,
	}
}
