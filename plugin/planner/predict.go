package planner

import (
	"fmt"
	"math"
	"time"
)

// PerformancePrediction estimates whether the user finishes before the exam.
type PerformancePrediction struct {
	WillFinishOnTime        bool      `json:"will_finish_on_time"`
	EstimatedCompletionDate time.Time `json:"estimated_completion_date"`
	// CompletionPercentage is the ratio of time available to time needed,
	// capped at 100. It is not a percent-of-work-done figure; the advisory
	// copy depends on this exact definition.
	CompletionPercentage float64 `json:"completion_percentage"`
	DaysNeeded           int     `json:"days_needed"`
	Recommendation       string  `json:"recommendation"`
	Confidence           float64 `json:"confidence"`
}

// defaultProgressRate is the assumed throughput (cells per day) when no
// study pattern is available.
const defaultProgressRate = 2.0

// PredictPerformance combines remaining work, the analyzed throughput and the
// exam date into a completion forecast. Without an exam date it returns a
// fixed fallback instead of computing with undefined arithmetic.
func PredictPerformance(topics []Topic, bulletins []Bulletin, categories []Category, examDate *time.Time, pattern *StudyPattern, now time.Time) PerformancePrediction {
	if examDate == nil {
		return PerformancePrediction{
			WillFinishOnTime:        false,
			EstimatedCompletionDate: now.Add(90 * dayDuration),
			CompletionPercentage:    0,
			DaysNeeded:              90,
			Recommendation:          "Set an exam date to get accurate predictions.",
			Confidence:              0,
		}
	}

	daysUntilExam := int(math.Ceil(examDate.Sub(now).Hours() / 24))
	if daysUntilExam < 0 {
		daysUntilExam = 0
	}

	// Remaining work in cells: unchecked categories plus unfinished exercises.
	totalWorkRemaining := 0.0
	for _, topic := range topics {
		progress := TopicProgress(topic, len(categories))
		totalWorkRemaining += (1 - progress) * float64(len(categories))
	}
	for _, bulletin := range bulletins {
		progress := BulletinProgress(bulletin)
		totalWorkRemaining += (1 - progress) * float64(bulletin.ExerciseCount)
	}

	effectiveProgressRate := defaultProgressRate
	if pattern != nil {
		effectiveProgressRate = pattern.AverageProgressPerDay * pattern.ConsistencyScore
	}

	daysNeeded := int(math.Ceil(totalWorkRemaining / math.Max(0.5, effectiveProgressRate)))
	willFinishOnTime := daysNeeded <= daysUntilExam

	completionPercentage := math.Min(100, float64(daysUntilExam)/math.Max(1, float64(daysNeeded))*100)

	confidence := 0.3
	if pattern != nil {
		confidence = math.Min(1, pattern.StudyFrequency*pattern.ConsistencyScore*1.5)
	}

	var recommendation string
	if willFinishOnTime {
		if completionPercentage > 150 {
			recommendation = "You are doing great! 🎉 Excellent pace; you can slow down a little or go deeper into the hardest topics."
		} else {
			recommendation = "Perfect! 👍 You keep a good study rhythm. Stay on it and you will arrive prepared."
		}
	} else {
		examDays := daysUntilExam
		if examDays < 1 {
			examDays = 1
		}
		itemsPerDayNeeded := int(math.Ceil(totalWorkRemaining / float64(examDays)))
		recommendation = fmt.Sprintf("💪 You need to pick up the pace a bit. Try to complete about %d items per day to arrive on time.", itemsPerDayNeeded)
	}

	return PerformancePrediction{
		WillFinishOnTime:        willFinishOnTime,
		EstimatedCompletionDate: now.Add(time.Duration(daysNeeded) * dayDuration),
		CompletionPercentage:    completionPercentage,
		DaysNeeded:              daysNeeded,
		Recommendation:          recommendation,
		Confidence:              confidence,
	}
}
