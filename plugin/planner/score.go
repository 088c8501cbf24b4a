package planner

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DaysWithoutUpdate returns whole days elapsed since the last update.
// Items that were never updated report staleFallbackDays.
func DaysWithoutUpdate(updatedAt *time.Time, now time.Time) int {
	if updatedAt == nil || updatedAt.IsZero() {
		return staleFallbackDays
	}
	return int(math.Floor(now.Sub(*updatedAt).Hours() / 24))
}

// TopicScore maps a topic to a non-negative urgency score. The factors, in
// order: base by progress band, staleness, exam proximity, review-due bonus
// and a diminishing-returns penalty for nearly finished topics.
func TopicScore(topic Topic, totalCategories int, daysUntilExam *int, now time.Time) int {
	progress := TopicProgress(topic, totalCategories)
	stale := DaysWithoutUpdate(topic.UpdatedAt, now)

	score := 0
	switch {
	case progress == 0:
		score += 80
	case progress < 0.3:
		score += 60
	case progress < 0.7:
		score += 40
	case progress < 1:
		score += 20
	}

	switch {
	case stale > 30:
		score += 40
	case stale > 14:
		score += 25
	case stale > 7:
		score += 15
	case stale > 3:
		score += 5
	}

	if daysUntilExam != nil {
		switch {
		case *daysUntilExam < 14 && progress < 0.8:
			score += 60
		case *daysUntilExam < 30 && progress < 0.5:
			score += 45
		case *daysUntilExam < 60 && progress < 0.3:
			score += 25
		case *daysUntilExam < 90:
			score += 10
		}
	}

	if topic.ReviewCount > 0 && stale > 21 {
		score += 30
	} else if topic.ReviewCount > 0 && stale > 14 {
		score += 15
	}

	if progress > 0.8 && (daysUntilExam == nil || *daysUntilExam > 60) {
		score -= 20
	}

	if score < 0 {
		return 0
	}
	return score
}

// BulletinScore mirrors TopicScore with slightly lower magnitudes and no
// review-due bonus, since bulletins carry no review counter.
func BulletinScore(bulletin Bulletin, daysUntilExam *int, now time.Time) int {
	progress := BulletinProgress(bulletin)
	stale := DaysWithoutUpdate(bulletin.UpdatedAt, now)

	score := 0
	switch {
	case progress == 0:
		score += 70
	case progress < 0.3:
		score += 55
	case progress < 0.7:
		score += 35
	case progress < 1:
		score += 15
	}

	switch {
	case stale > 30:
		score += 35
	case stale > 14:
		score += 20
	case stale > 7:
		score += 10
	case stale > 3:
		score += 5
	}

	if daysUntilExam != nil {
		switch {
		case *daysUntilExam < 14 && progress < 0.8:
			score += 50
		case *daysUntilExam < 30 && progress < 0.5:
			score += 35
		case *daysUntilExam < 60 && progress < 0.3:
			score += 20
		case *daysUntilExam < 90:
			score += 8
		}
	}

	if progress > 0.8 && (daysUntilExam == nil || *daysUntilExam > 60) {
		score -= 15
	}

	if score < 0 {
		return 0
	}
	return score
}

// PriorityForScore buckets an urgency score into a tier. Thresholds cover the
// full non-negative integer domain with no gaps or overlaps.
func PriorityForScore(score int) Priority {
	switch {
	case score >= 180:
		return PriorityUrgent
	case score >= 120:
		return PriorityHigh
	case score >= 70:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// reasonForPriority builds the human-readable explanation attached to a
// study item. Order of the fragments is part of the contract.
func reasonForPriority(progress float64, daysWithoutUpdate int, daysUntilExam *int, reviewCount int) string {
	var reasons []string

	switch {
	case progress == 0:
		reasons = append(reasons, "Not started")
	case progress < 0.3:
		reasons = append(reasons, "Very low progress")
	case progress < 0.7:
		reasons = append(reasons, "Medium progress")
	}

	if daysWithoutUpdate > 14 {
		reasons = append(reasons, fmt.Sprintf("%d days without review", daysWithoutUpdate))
	} else if daysWithoutUpdate > 7 {
		reasons = append(reasons, fmt.Sprintf("%d days without update", daysWithoutUpdate))
	}

	if daysUntilExam != nil && *daysUntilExam < 30 && progress < 0.8 {
		reasons = append(reasons, "Exam approaching")
	}

	if reviewCount > 0 && daysWithoutUpdate > 14 {
		reasons = append(reasons, "Needs review")
	}

	if len(reasons) == 0 {
		return "Continue progress"
	}
	return strings.Join(reasons, " • ")
}
