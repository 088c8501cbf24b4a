package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitlesRelated(t *testing.T) {
	assert.True(t, TitlesRelated("Thermodynamics basics", "Thermodynamics problems"))
	assert.True(t, TitlesRelated("Advanced THERMODYNAMICS", "thermodynamics drills"), "matching is case-insensitive")
	assert.True(t, TitlesRelated("Electromagnetism", "Electro drills"), "substring match works in either direction")
	assert.False(t, TitlesRelated("Wave", "Waves drills"), "short words do not count")
	assert.False(t, TitlesRelated("Optics", "Algebra problems"))
}

func TestGenerateWeeklyPlanInterleavesRelatedBulletins(t *testing.T) {
	categories := []Category{{UID: "a"}}
	topics := []Topic{
		{UID: "t1", Title: "Thermodynamics", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
		{UID: "t2", Title: "Kinematics", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
		{UID: "t3", Title: "Optics", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
	}
	bulletins := []Bulletin{
		{UID: "b1", Title: "Algebra drills", ExerciseCount: 5, UpdatedAt: daysAgo(0)},
		{UID: "b2", Title: "Thermodynamics drills", ExerciseCount: 5, UpdatedAt: daysAgo(0)},
	}

	plans := GenerateWeeklyPlan(topics, bulletins, categories, nil, 4, testNow)
	require.NotEmpty(t, plans)

	// Week 1 holds the first two topics plus the bulletin related to them,
	// pulled ahead of the unrelated one at the front of the backlog.
	week1 := plans[0]
	uids := make([]string, 0, len(week1.Items))
	for _, item := range week1.Items {
		uids = append(uids, item.UID)
	}
	assert.ElementsMatch(t, []string{"t1", "t2", "b2"}, uids)
}

func TestGenerateWeeklyPlanCoverage(t *testing.T) {
	// Every unfinished item lands in exactly one new-work week.
	categories := []Category{{UID: "a"}, {UID: "b"}}
	topics := []Topic{
		{UID: "t1", Title: "Alpha", Checks: map[string]bool{}, UpdatedAt: daysAgo(1)},
		{UID: "t2", Title: "Beta", Checks: map[string]bool{"a": true}, UpdatedAt: daysAgo(3)},
		{UID: "t3", Title: "Gamma", Checks: map[string]bool{"a": true, "b": true}, UpdatedAt: daysAgo(2)},
		{UID: "t4", Title: "Delta", Checks: map[string]bool{}},
	}
	bulletins := []Bulletin{
		{UID: "b1", Title: "Alpha drills", ExerciseCount: 4, UpdatedAt: daysAgo(1)},
		{UID: "b2", Title: "Done drills", ExerciseCount: 2, CompletedExercises: map[int]bool{1: true, 2: true}, UpdatedAt: daysAgo(1)},
	}
	examDate := testNow.Add(21 * 24 * time.Hour)

	plans := GenerateWeeklyPlan(topics, bulletins, categories, &examDate, 0, testNow)

	seen := map[string]int{}
	for _, week := range plans {
		for _, item := range week.Items {
			if item.IsReview || item.Reason == "Final review" {
				continue
			}
			seen[item.UID]++
		}
	}
	// t3 is complete and b2 is complete: both excluded from new work.
	assert.NotContains(t, seen, "t3")
	assert.NotContains(t, seen, "b2")
	for _, uid := range []string{"t1", "t2", "t4", "b1"} {
		assert.Equal(t, 1, seen[uid], "item %s must appear exactly once", uid)
	}
}

func TestGenerateWeeklyPlanCompletedBulletinExcluded(t *testing.T) {
	// Concrete scenario: a fully completed bulletin never enters the backlog.
	bulletins := []Bulletin{
		{UID: "b1", Title: "Done", ExerciseCount: 10, CompletedExercises: map[int]bool{
			1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true,
		}},
	}

	plans := GenerateWeeklyPlan(nil, bulletins, nil, nil, 4, testNow)
	assert.Empty(t, plans)
}

func TestGenerateWeeklyPlanWeekBoundaries(t *testing.T) {
	categories := []Category{{UID: "a"}}
	var topics []Topic
	for _, title := range []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"} {
		topics = append(topics, Topic{UID: title, Title: title, Checks: map[string]bool{}, UpdatedAt: daysAgo(0)})
	}
	examDate := testNow.Add(21 * 24 * time.Hour)

	plans := GenerateWeeklyPlan(topics, nil, categories, &examDate, 0, testNow)

	// 21 days: 3 total weeks, no review reservation below 4 weeks.
	require.Len(t, plans, 3)
	assert.Equal(t, 1, plans[0].WeekNumber)
	assert.Equal(t, 2, plans[1].WeekNumber)
	assert.Equal(t, 3, plans[2].WeekNumber)

	assert.Equal(t, testNow, plans[0].StartDate)
	assert.Equal(t, testNow.Add(6*24*time.Hour), plans[0].EndDate)
	assert.Equal(t, testNow.Add(7*24*time.Hour), plans[1].StartDate)
	// The last generated week is clamped to the exam date.
	assert.Equal(t, examDate, plans[2].EndDate)

	// 7 items over 3 weeks: ceil gives 3 per week.
	assert.Equal(t, 3, plans[0].ItemCount)
	assert.Equal(t, 3, plans[1].ItemCount)
	assert.Equal(t, 1, plans[2].ItemCount)
}

func TestGenerateWeeklyPlanReviewWeeks(t *testing.T) {
	categories := []Category{{UID: "a"}, {UID: "b"}}
	done := map[string]bool{"a": true, "b": true}
	topics := []Topic{
		{UID: "t-new", Title: "New topic", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
		{UID: "t-adv1", Title: "Advanced one", Checks: done, UpdatedAt: daysAgo(50)},
		{UID: "t-adv2", Title: "Advanced two", Checks: done, UpdatedAt: daysAgo(40)},
		{UID: "t-adv3", Title: "Advanced three", Checks: done, UpdatedAt: daysAgo(30)},
		{UID: "t-adv4", Title: "Advanced four", Checks: done, UpdatedAt: daysAgo(20)},
		{UID: "t-adv5", Title: "Advanced five", Checks: done, UpdatedAt: daysAgo(10)},
	}
	bulletins := []Bulletin{
		{UID: "b-adv", Title: "Advanced drills", ExerciseCount: 10, UpdatedAt: daysAgo(10), CompletedExercises: map[int]bool{
			1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true,
		}},
	}
	// 70 days: 10 total weeks, 2 reserved for review, 8 available.
	examDate := testNow.Add(70 * 24 * time.Hour)

	plans := GenerateWeeklyPlan(topics, bulletins, categories, &examDate, 0, testNow)

	// One new-work week (t-new plus the 70% bulletin) then two review weeks.
	require.Len(t, plans, 3)
	firstReview, lastReview := plans[1], plans[2]

	for _, item := range append(append([]WeeklyItem{}, firstReview.Items...), lastReview.Items...) {
		assert.Equal(t, "Final review", item.Reason)
		assert.Zero(t, item.Priority)
		assert.GreaterOrEqual(t, item.Progress, 0.7, "final review takes well-advanced items only")
	}

	// Review weeks start after the new-work runway; the final one ends on the
	// exam date. Four topics and two bulletins fit per review week.
	assert.Equal(t, testNow.Add(8*7*24*time.Hour), firstReview.StartDate)
	assert.Equal(t, 5, firstReview.ItemCount)
	assert.Equal(t, "t-adv1", firstReview.Items[0].UID, "most stale advanced topic reviewed first")
	assert.Equal(t, examDate, lastReview.EndDate)
	require.Len(t, lastReview.Items, 1)
	assert.Equal(t, "t-adv5", lastReview.Items[0].UID)
}

func TestGenerateWeeklyPlanContinuousReviewSlots(t *testing.T) {
	categories := []Category{{UID: "a"}, {UID: "b"}}
	topics := []Topic{
		{UID: "t-new", Title: "Fresh", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
		{UID: "t-half", Title: "Half done", Checks: map[string]bool{"a": true}, UpdatedAt: daysAgo(20)},
	}

	// 8 default weeks without an exam date leaves time for review slots.
	plans := GenerateWeeklyPlan(topics, nil, categories, nil, 0, testNow)
	require.NotEmpty(t, plans)

	var reviewItems []WeeklyItem
	for _, week := range plans {
		for _, item := range week.Items {
			if item.IsReview {
				reviewItems = append(reviewItems, item)
			}
		}
	}
	require.Len(t, reviewItems, 1, "the half-done topic fills one review slot")
	assert.Equal(t, "t-half", reviewItems[0].UID)
	assert.Zero(t, reviewItems[0].Priority, "review fillers carry no priority")
}

func TestGenerateWeeklyPlanInWeekOrdering(t *testing.T) {
	categories := []Category{{UID: "a"}}
	topics := []Topic{
		{UID: "t-z", Title: "Zeta", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
		{UID: "t-a", Title: "Alpha", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
	}
	bulletins := []Bulletin{
		{UID: "b-m", Title: "Midway drills", ExerciseCount: 5, UpdatedAt: daysAgo(0)},
	}

	plans := GenerateWeeklyPlan(topics, bulletins, categories, nil, 4, testNow)
	require.NotEmpty(t, plans)

	week1 := plans[0]
	require.Len(t, week1.Items, 3)
	// Topics before bulletins, alphabetical among topics.
	assert.Equal(t, "t-a", week1.Items[0].UID)
	assert.Equal(t, "t-z", week1.Items[1].UID)
	assert.Equal(t, "b-m", week1.Items[2].UID)
}

func TestGenerateWeeklyPlanCustomRelatedness(t *testing.T) {
	categories := []Category{{UID: "a"}}
	topics := []Topic{
		{UID: "t1", Title: "Alpha", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
		{UID: "t2", Title: "Beta", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
	}
	bulletins := []Bulletin{
		{UID: "b1", Title: "First", ExerciseCount: 5, UpdatedAt: daysAgo(0)},
		{UID: "b2", Title: "Second", ExerciseCount: 5, UpdatedAt: daysAgo(0)},
	}
	alwaysSecond := func(topicTitle, bulletinTitle string) bool {
		return bulletinTitle == "Second"
	}

	plans := GenerateWeeklyPlanWithRelatedness(topics, bulletins, categories, nil, 4, testNow, alwaysSecond)
	require.NotEmpty(t, plans)

	uids := make([]string, 0, len(plans[0].Items))
	for _, item := range plans[0].Items {
		uids = append(uids, item.UID)
	}
	assert.Contains(t, uids, "b2", "the pluggable predicate controls which bulletin is pulled forward")
	assert.NotContains(t, uids, "b1")
}
