package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// StudyItem is one scored entry of a study plan.
type StudyItem struct {
	UID               string   `json:"uid"`
	Type              ItemType `json:"type"`
	Title             string   `json:"title"`
	Priority          Priority `json:"priority"`
	Progress          float64  `json:"progress"`
	Score             int      `json:"score"`
	Reason            string   `json:"reason"`
	DaysWithoutUpdate int      `json:"days_without_update"`
}

// PlanStats aggregates a study plan.
type PlanStats struct {
	TotalItems      int     `json:"total_items"`
	AvgProgress     float64 `json:"avg_progress"`
	ItemsNotStarted int     `json:"items_not_started"`
	ItemsInProgress int     `json:"items_in_progress"`
	ItemsCompleted  int     `json:"items_completed"`
	DaysUntilExam   *int    `json:"days_until_exam,omitempty"`
}

// StudyPlan holds all items bucketed by priority tier, each bucket sorted by
// descending score.
type StudyPlan struct {
	Urgent []StudyItem `json:"urgent"`
	High   []StudyItem `json:"high"`
	Medium []StudyItem `json:"medium"`
	Low    []StudyItem `json:"low"`
	Stats  PlanStats   `json:"stats"`
}

// GenerateStudyPlan scores every topic and bulletin, buckets them into
// priority tiers and computes aggregate statistics. Ties between equal scores
// keep insertion order (topics first, then bulletins).
func GenerateStudyPlan(topics []Topic, bulletins []Bulletin, categories []Category, examDate *time.Time, now time.Time) *StudyPlan {
	var daysUntilExam *int
	if examDate != nil {
		days := int(math.Floor(examDate.Sub(now).Hours() / 24))
		daysUntilExam = &days
	}

	items := make([]StudyItem, 0, len(topics)+len(bulletins))

	for _, topic := range topics {
		progress := TopicProgress(topic, len(categories))
		stale := DaysWithoutUpdate(topic.UpdatedAt, now)
		score := TopicScore(topic, len(categories), daysUntilExam, now)
		items = append(items, StudyItem{
			UID:               topic.UID,
			Type:              ItemTypeTopic,
			Title:             topic.Title,
			Priority:          PriorityForScore(score),
			Progress:          progress,
			Score:             score,
			Reason:            reasonForPriority(progress, stale, daysUntilExam, topic.ReviewCount),
			DaysWithoutUpdate: stale,
		})
	}

	for _, bulletin := range bulletins {
		progress := BulletinProgress(bulletin)
		stale := DaysWithoutUpdate(bulletin.UpdatedAt, now)
		score := BulletinScore(bulletin, daysUntilExam, now)
		items = append(items, StudyItem{
			UID:               bulletin.UID,
			Type:              ItemTypeBulletin,
			Title:             bulletin.Title,
			Priority:          PriorityForScore(score),
			Progress:          progress,
			Score:             score,
			Reason:            reasonForPriority(progress, stale, daysUntilExam, 0),
			DaysWithoutUpdate: stale,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	plan := &StudyPlan{
		Urgent: []StudyItem{},
		High:   []StudyItem{},
		Medium: []StudyItem{},
		Low:    []StudyItem{},
	}
	avgProgress := 0.0
	for _, item := range items {
		switch item.Priority {
		case PriorityUrgent:
			plan.Urgent = append(plan.Urgent, item)
		case PriorityHigh:
			plan.High = append(plan.High, item)
		case PriorityMedium:
			plan.Medium = append(plan.Medium, item)
		default:
			plan.Low = append(plan.Low, item)
		}

		avgProgress += item.Progress
		switch {
		case item.Progress == 0:
			plan.Stats.ItemsNotStarted++
		case item.Progress < 1:
			plan.Stats.ItemsInProgress++
		default:
			plan.Stats.ItemsCompleted++
		}
	}

	plan.Stats.TotalItems = len(items)
	if len(items) > 0 {
		plan.Stats.AvgProgress = avgProgress / float64(len(items))
	}
	plan.Stats.DaysUntilExam = daysUntilExam

	return plan
}

// StudyRecommendation renders a multi-paragraph advisory for a study plan.
// The paragraph order and trigger conditions are the contract; wording is not.
func StudyRecommendation(plan *StudyPlan) string {
	stats := plan.Stats
	var paragraphs []string

	if stats.DaysUntilExam != nil {
		days := *stats.DaysUntilExam
		switch {
		case days < 30:
			paragraphs = append(paragraphs, fmt.Sprintf("⚠️ %d days until the exam. Focus on the urgent items.", days))
		case days < 60:
			paragraphs = append(paragraphs, fmt.Sprintf("📅 %d days left. Good moment to step up the pace.", days))
		default:
			paragraphs = append(paragraphs, fmt.Sprintf("📅 You have %d days. Keep a steady rhythm.", days))
		}
	}

	if len(plan.Urgent) > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf("🔴 You have %d urgent item(s) that need immediate attention.", len(plan.Urgent)))
	}

	if stats.ItemsNotStarted > 5 {
		paragraphs = append(paragraphs, fmt.Sprintf("📚 You have %d topics not started yet. Consider picking some up.", stats.ItemsNotStarted))
	}

	avgPercent := int(math.Round(stats.AvgProgress * 100))
	switch {
	case avgPercent < 30:
		paragraphs = append(paragraphs, fmt.Sprintf("💪 Your average progress is %d%%. Keep pushing!", avgPercent))
	case avgPercent < 70:
		paragraphs = append(paragraphs, fmt.Sprintf("👍 Average progress: %d%%. You are on a good track.", avgPercent))
	default:
		paragraphs = append(paragraphs, fmt.Sprintf("🎉 Excellent! Average progress: %d%%.", avgPercent))
	}

	return strings.Join(paragraphs, "\n\n")
}
