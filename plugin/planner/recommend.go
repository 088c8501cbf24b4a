package planner

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RecommendationType classifies an advisory card for the UI.
type RecommendationType string

const (
	RecommendationWarning RecommendationType = "warning"
	RecommendationSuccess RecommendationType = "success"
	RecommendationInfo    RecommendationType = "info"
	RecommendationTip     RecommendationType = "tip"
)

// Recommendation is one deterministic rule-based advisory.
type Recommendation struct {
	Type       RecommendationType `json:"type"`
	Title      string             `json:"title"`
	Message    string             `json:"message"`
	Priority   int                `json:"priority"`
	Actionable bool               `json:"actionable"`
	Action     string             `json:"action,omitempty"`
}

// maxRecommendations caps the advisory list shown to the user.
const maxRecommendations = 5

// GenerateRecommendations derives up to five advisories from the analyzed
// pattern, the performance prediction and the raw item lists, ordered by
// descending priority.
func GenerateRecommendations(topics []Topic, bulletins []Bulletin, pattern StudyPattern, prediction PerformancePrediction, examDate *time.Time, now time.Time) []Recommendation {
	var recommendations []Recommendation

	daysStudied := int(math.Round(pattern.StudyFrequency * 7))
	if pattern.ConsistencyScore < 0.3 {
		dayWord := "days"
		if daysStudied == 1 {
			dayWord = "day"
		}
		recommendations = append(recommendations, Recommendation{
			Type:       RecommendationWarning,
			Title:      "💡 Build a study routine",
			Message:    fmt.Sprintf("You study roughly %d %s a week. Consistency is your best ally; try to study more days, even if only 30 minutes.", daysStudied, dayWord),
			Priority:   90,
			Actionable: true,
			Action:     "Create a daily routine",
		})
	} else if pattern.ConsistencyScore > 0.7 {
		recommendations = append(recommendations, Recommendation{
			Type:     RecommendationSuccess,
			Title:    "🌟 You are very consistent!",
			Message:  fmt.Sprintf("You study about %d days a week. Your routine is excellent; regularity is one of the secrets of success.", daysStudied),
			Priority: 20,
		})
	}

	if !prediction.WillFinishOnTime && examDate != nil {
		recommendations = append(recommendations, Recommendation{
			Type:       RecommendationWarning,
			Title:      "⚡ Adjust your study pace",
			Message:    prediction.Recommendation,
			Priority:   100,
			Actionable: true,
			Action:     "See adjusted plan",
		})
	}

	notStarted := 0
	for _, topic := range topics {
		if !anyTrue(topic.Checks) {
			notStarted++
		}
	}
	for _, bulletin := range bulletins {
		if !anyTrueInt(bulletin.CompletedExercises) {
			notStarted++
		}
	}
	if notStarted > 10 {
		recommendations = append(recommendations, Recommendation{
			Type:       RecommendationInfo,
			Title:      "📚 Start with what matters",
			Message:    fmt.Sprintf("You have %d items not started. Do not get overwhelmed; go step by step, starting with the highest priorities.", notStarted),
			Priority:   70,
			Actionable: true,
			Action:     "See priority topics",
		})
	}

	needsReview := 0
	for _, topic := range topics {
		if topic.ReviewCount > 0 && topic.UpdatedAt != nil && now.Sub(*topic.UpdatedAt) > 14*dayDuration {
			needsReview++
		}
	}
	if needsReview > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:       RecommendationTip,
			Title:      "🔄 Time to review",
			Message:    fmt.Sprintf("You have %d topics you have not reviewed in a while. Reviewing matters as much as new material.", needsReview),
			Priority:   60,
			Actionable: true,
			Action:     "See topics to review",
		})
	}

	if pattern.AverageSessionDuration < 30 {
		recommendations = append(recommendations, Recommendation{
			Type:     RecommendationTip,
			Title:    "⏱️ Lengthen your sessions",
			Message:  fmt.Sprintf("Your sessions last about %d minutes. Try to reach 45-60 minutes to make the most of your focus.", int(math.Round(pattern.AverageSessionDuration))),
			Priority: 40,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority > recommendations[j].Priority
	})
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func anyTrue(m map[string]bool) bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}

func anyTrueInt(m map[int]bool) bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}
