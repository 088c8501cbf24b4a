package planner

import (
	"math"
	"sort"
	"strings"
	"time"
)

// WeeklyItem is one backlog entry assigned to a study week.
type WeeklyItem struct {
	UID      string   `json:"uid"`
	Type     ItemType `json:"type"`
	Title    string   `json:"title"`
	Priority int      `json:"priority"`
	Reason   string   `json:"reason"`
	Progress float64  `json:"progress"`
	IsReview bool     `json:"is_review,omitempty"`
}

// WeeklyPlan is a calendar-bounded slice of the backlog.
type WeeklyPlan struct {
	WeekNumber int          `json:"week_number"`
	StartDate  time.Time    `json:"start_date"`
	EndDate    time.Time    `json:"end_date"`
	Items      []WeeklyItem `json:"items"`
	ItemCount  int          `json:"item_count"`
}

// RelatednessFunc decides whether a bulletin thematically belongs to a topic,
// used to pull related exercises right after their topics in the backlog.
type RelatednessFunc func(topicTitle, bulletinTitle string) bool

// TitlesRelated is the default relatedness predicate: the titles share a word
// longer than four characters, matched case-insensitively as a substring in
// either direction.
func TitlesRelated(topicTitle, bulletinTitle string) bool {
	topicWords := strings.Fields(strings.ToLower(topicTitle))
	bulletinWords := strings.Fields(strings.ToLower(bulletinTitle))
	for _, word := range topicWords {
		if len(word) <= 4 {
			continue
		}
		for _, bw := range bulletinWords {
			if strings.Contains(bw, word) || strings.Contains(word, bw) {
				return true
			}
		}
	}
	return false
}

// DefaultWeeksToGenerate is used when no exam date and no explicit week count
// are given.
const DefaultWeeksToGenerate = 8

// weeklyWorkItem is a backlog entry before week assignment.
type weeklyWorkItem struct {
	uid      string
	typ      ItemType
	title    string
	progress float64
	score    int
	isReview bool
}

// GenerateWeeklyPlan partitions all pending work into a week-by-week calendar,
// reserving trailing weeks purely for review when the exam is far enough out.
func GenerateWeeklyPlan(topics []Topic, bulletins []Bulletin, categories []Category, examDate *time.Time, weeksToGenerate int, now time.Time) []WeeklyPlan {
	return GenerateWeeklyPlanWithRelatedness(topics, bulletins, categories, examDate, weeksToGenerate, now, TitlesRelated)
}

// GenerateWeeklyPlanWithRelatedness is GenerateWeeklyPlan with a custom
// topic/bulletin relatedness predicate.
func GenerateWeeklyPlanWithRelatedness(topics []Topic, bulletins []Bulletin, categories []Category, examDate *time.Time, weeksToGenerate int, now time.Time, related RelatednessFunc) []WeeklyPlan {
	if related == nil {
		related = TitlesRelated
	}
	if weeksToGenerate <= 0 {
		weeksToGenerate = DefaultWeeksToGenerate
	}

	// Week budget: reserve trailing review weeks proportional to the runway.
	weeksAvailable := weeksToGenerate
	weeksForReview := 0
	var daysUntilExam *int
	if examDate != nil {
		days := int(math.Ceil(examDate.Sub(now).Hours() / 24))
		daysUntilExam = &days
		totalWeeks := int(math.Ceil(float64(days) / 7))
		if totalWeeks < 1 {
			totalWeeks = 1
		}
		switch {
		case totalWeeks >= 12:
			weeksForReview = 3
		case totalWeeks >= 8:
			weeksForReview = 2
		case totalWeeks >= 4:
			weeksForReview = 1
		}
		weeksAvailable = totalWeeks - weeksForReview
		if weeksAvailable < 1 {
			weeksAvailable = 1
		}
	}

	// Backlog: every unfinished item, scored and sorted per list.
	var topicItems, bulletinItems []weeklyWorkItem
	for _, topic := range topics {
		progress := TopicProgress(topic, len(categories))
		if progress >= 1 {
			continue
		}
		topicItems = append(topicItems, weeklyWorkItem{
			uid:      topic.UID,
			typ:      ItemTypeTopic,
			title:    topic.Title,
			progress: progress,
			score:    TopicScore(topic, len(categories), daysUntilExam, now),
		})
	}
	for _, bulletin := range bulletins {
		progress := BulletinProgress(bulletin)
		if progress >= 1 {
			continue
		}
		bulletinItems = append(bulletinItems, weeklyWorkItem{
			uid:      bulletin.UID,
			typ:      ItemTypeBulletin,
			title:    bulletin.Title,
			progress: progress,
			score:    BulletinScore(bulletin, daysUntilExam, now),
		})
	}
	sort.SliceStable(topicItems, func(i, j int) bool { return topicItems[i].score > topicItems[j].score })
	sort.SliceStable(bulletinItems, func(i, j int) bool { return bulletinItems[i].score > bulletinItems[j].score })

	// Half-studied topics feed per-week continuous review slots, most stale
	// first. Distinct from the trailing dedicated review weeks.
	var reviewPool []Topic
	for _, topic := range topics {
		progress := TopicProgress(topic, len(categories))
		if progress >= 0.5 && progress < 1 {
			reviewPool = append(reviewPool, topic)
		}
	}
	sort.SliceStable(reviewPool, func(i, j int) bool {
		return DaysWithoutUpdate(reviewPool[i].UpdatedAt, now) > DaysWithoutUpdate(reviewPool[j].UpdatedAt, now)
	})

	totalItems := len(topicItems) + len(bulletinItems)
	itemsPerWeek := int(math.Ceil(float64(totalItems) / float64(weeksAvailable)))
	if itemsPerWeek < 3 {
		itemsPerWeek = 3
	}
	hasTimeForReviews := weeksAvailable >= 6
	if hasTimeForReviews {
		itemsPerWeek++
	}

	// Interleave: a couple of topics, then a thematically related bulletin,
	// then one continuous-review slot while the runway allows it.
	var backlog []weeklyWorkItem
	topicIdx, reviewIdx := 0, 0
	remainingBulletins := bulletinItems
	for topicIdx < len(topicItems) || len(remainingBulletins) > 0 {
		var recentTopics []weeklyWorkItem
		for i := 0; i < 2 && topicIdx < len(topicItems); i++ {
			backlog = append(backlog, topicItems[topicIdx])
			recentTopics = append(recentTopics, topicItems[topicIdx])
			topicIdx++
		}

		if len(remainingBulletins) > 0 {
			picked := 0
			lookahead := len(remainingBulletins)
			if lookahead > 3 {
				lookahead = 3
			}
		scan:
			for i := 0; i < lookahead; i++ {
				for _, topic := range recentTopics {
					if related(topic.title, remainingBulletins[i].title) {
						picked = i
						break scan
					}
				}
			}
			backlog = append(backlog, remainingBulletins[picked])
			remainingBulletins = append(remainingBulletins[:picked], remainingBulletins[picked+1:]...)
		}

		if hasTimeForReviews && reviewIdx < len(reviewPool) {
			reviewTopic := reviewPool[reviewIdx]
			reviewIdx++
			backlog = append(backlog, weeklyWorkItem{
				uid:      reviewTopic.UID,
				typ:      ItemTypeTopic,
				title:    reviewTopic.Title,
				progress: TopicProgress(reviewTopic, len(categories)),
				score:    0,
				isReview: true,
			})
		}
	}

	// Assign the backlog to calendar weeks.
	var plans []WeeklyPlan
	for i := 0; i < weeksAvailable && len(backlog) > 0; i++ {
		weekStart := now.Add(time.Duration(i) * 7 * dayDuration)
		weekEnd := weekStart.Add(6 * dayDuration)
		isLastWeek := i == weeksAvailable-1 || len(backlog) <= itemsPerWeek
		if isLastWeek && examDate != nil {
			weekEnd = *examDate
		}

		count := itemsPerWeek
		if count > len(backlog) {
			count = len(backlog)
		}
		weekItems := make([]WeeklyItem, 0, count)
		for j := 0; j < count; j++ {
			item := backlog[0]
			backlog = backlog[1:]
			weekItems = append(weekItems, WeeklyItem{
				UID:      item.uid,
				Type:     item.typ,
				Title:    item.title,
				Priority: item.score,
				Reason:   weeklyItemReason(item.progress),
				Progress: item.progress,
				IsReview: item.isReview && item.progress >= 0.5,
			})
		}

		if len(weekItems) == 0 {
			continue
		}
		sortWeekItems(weekItems)
		plans = append(plans, WeeklyPlan{
			WeekNumber: len(plans) + 1,
			StartDate:  weekStart,
			EndDate:    weekEnd,
			Items:      weekItems,
			ItemCount:  len(weekItems),
		})
	}

	// Trailing weeks reserved purely for reviewing well-advanced material.
	if weeksForReview > 0 && examDate != nil {
		plans = append(plans, buildFinalReviewWeeks(topics, bulletins, categories, *examDate, now, weeksAvailable, weeksForReview, len(plans))...)
	}

	return plans
}

func buildFinalReviewWeeks(topics []Topic, bulletins []Bulletin, categories []Category, examDate time.Time, now time.Time, weeksAvailable, weeksForReview, emittedWeeks int) []WeeklyPlan {
	const topicsPerReviewWeek = 4
	const bulletinsPerReviewWeek = 2

	var reviewTopics []Topic
	for _, topic := range topics {
		if TopicProgress(topic, len(categories)) >= 0.7 {
			reviewTopics = append(reviewTopics, topic)
		}
	}
	sort.SliceStable(reviewTopics, func(i, j int) bool {
		return DaysWithoutUpdate(reviewTopics[i].UpdatedAt, now) > DaysWithoutUpdate(reviewTopics[j].UpdatedAt, now)
	})
	if max := weeksForReview * topicsPerReviewWeek; len(reviewTopics) > max {
		reviewTopics = reviewTopics[:max]
	}

	var reviewBulletins []Bulletin
	for _, bulletin := range bulletins {
		if BulletinProgress(bulletin) >= 0.7 {
			reviewBulletins = append(reviewBulletins, bulletin)
		}
	}
	sort.SliceStable(reviewBulletins, func(i, j int) bool {
		return DaysWithoutUpdate(reviewBulletins[i].UpdatedAt, now) > DaysWithoutUpdate(reviewBulletins[j].UpdatedAt, now)
	})
	if max := weeksForReview * bulletinsPerReviewWeek; len(reviewBulletins) > max {
		reviewBulletins = reviewBulletins[:max]
	}

	var plans []WeeklyPlan
	for i := 0; i < weeksForReview; i++ {
		weekStart := now.Add(time.Duration(weeksAvailable+i) * 7 * dayDuration)
		weekEnd := weekStart.Add(6 * dayDuration)
		if i == weeksForReview-1 {
			weekEnd = examDate
		}

		var items []WeeklyItem
		for _, topic := range sliceWindow(reviewTopics, i*topicsPerReviewWeek, topicsPerReviewWeek) {
			items = append(items, WeeklyItem{
				UID:      topic.UID,
				Type:     ItemTypeTopic,
				Title:    topic.Title,
				Priority: 0,
				Reason:   "Final review",
				Progress: TopicProgress(topic, len(categories)),
			})
		}
		for _, bulletin := range sliceWindow(reviewBulletins, i*bulletinsPerReviewWeek, bulletinsPerReviewWeek) {
			items = append(items, WeeklyItem{
				UID:      bulletin.UID,
				Type:     ItemTypeBulletin,
				Title:    bulletin.Title,
				Priority: 0,
				Reason:   "Final review",
				Progress: BulletinProgress(bulletin),
			})
		}

		if len(items) == 0 {
			continue
		}
		plans = append(plans, WeeklyPlan{
			WeekNumber: emittedWeeks + len(plans) + 1,
			StartDate:  weekStart,
			EndDate:    weekEnd,
			Items:      items,
			ItemCount:  len(items),
		})
	}
	return plans
}

// sortWeekItems orders a week: new work before review slots, topics before
// bulletins, then alphabetically by title.
func sortWeekItems(items []WeeklyItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsReview != items[j].IsReview {
			return !items[i].IsReview
		}
		if items[i].Type != items[j].Type {
			return items[i].Type == ItemTypeTopic
		}
		return items[i].Title < items[j].Title
	})
}

func weeklyItemReason(progress float64) string {
	switch {
	case progress == 0:
		return "Not started - high priority"
	case progress < 0.3:
		return "Low progress - needs attention"
	case progress < 0.7:
		return "In progress - keep going"
	default:
		return "Almost done - finish it"
	}
}

func sliceWindow[T any](list []T, offset, length int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + length
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
