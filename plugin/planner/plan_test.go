package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStudyPlanBucketCompleteness(t *testing.T) {
	categories := []Category{{UID: "a"}, {UID: "b"}, {UID: "c"}}
	topics := []Topic{
		{UID: "t1", Title: "Mechanics", Checks: map[string]bool{}},
		{UID: "t2", Title: "Waves", Checks: map[string]bool{"a": true}, UpdatedAt: daysAgo(2)},
		{UID: "t3", Title: "Optics", Checks: map[string]bool{"a": true, "b": true, "c": true}, UpdatedAt: daysAgo(1)},
	}
	bulletins := []Bulletin{
		{UID: "b1", Title: "Mechanics problems", ExerciseCount: 10},
		{UID: "b2", Title: "Waves problems", ExerciseCount: 10, CompletedExercises: map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}, UpdatedAt: daysAgo(2)},
	}

	plan := GenerateStudyPlan(topics, bulletins, categories, nil, testNow)

	// The union of the four buckets is the full item set, exactly once each.
	seen := map[string]int{}
	for _, bucket := range [][]StudyItem{plan.Urgent, plan.High, plan.Medium, plan.Low} {
		for _, item := range bucket {
			seen[item.UID]++
		}
	}
	require.Len(t, seen, 5)
	for uid, count := range seen {
		assert.Equal(t, 1, count, "item %s must appear exactly once", uid)
	}
	assert.Equal(t, plan.Stats.TotalItems, len(plan.Urgent)+len(plan.High)+len(plan.Medium)+len(plan.Low))

	assert.Equal(t, 2, plan.Stats.ItemsNotStarted)
	assert.Equal(t, 2, plan.Stats.ItemsInProgress)
	assert.Equal(t, 1, plan.Stats.ItemsCompleted)
	assert.Nil(t, plan.Stats.DaysUntilExam)
}

func TestGenerateStudyPlanSortsBucketsByScore(t *testing.T) {
	categories := []Category{{UID: "a"}}
	topics := []Topic{
		{UID: "fresh", Title: "Fresh", Checks: map[string]bool{}, UpdatedAt: daysAgo(0)},
		{UID: "stale", Title: "Stale", Checks: map[string]bool{}},
	}

	plan := GenerateStudyPlan(topics, nil, categories, nil, testNow)

	require.Len(t, plan.High, 1)
	require.Len(t, plan.Medium, 1)
	assert.Equal(t, "stale", plan.High[0].UID, "never-updated topic outranks the fresh one")
	assert.Equal(t, "fresh", plan.Medium[0].UID)
	assert.Greater(t, plan.High[0].Score, plan.Medium[0].Score)
}

func TestGenerateStudyPlanTierMatchesScore(t *testing.T) {
	categories := []Category{{UID: "a"}, {UID: "b"}}
	ten := testNow.Add(10 * 24 * time.Hour)
	topics := []Topic{
		{UID: "t1", Title: "Everything at once", Checks: map[string]bool{}, ReviewCount: 1},
	}

	plan := GenerateStudyPlan(topics, nil, categories, &ten, testNow)

	// 80 base + 40 staleness + 60 exam + 30 review-due = 210.
	require.Len(t, plan.Urgent, 1)
	assert.Equal(t, 210, plan.Urgent[0].Score)
	assert.Equal(t, PriorityUrgent, plan.Urgent[0].Priority)
	assert.Equal(t, 999, plan.Urgent[0].DaysWithoutUpdate)
}

func TestGenerateStudyPlanDaysUntilExamFloorsWithoutClamp(t *testing.T) {
	plan := GenerateStudyPlan(nil, nil, nil, timePtr(testNow.Add(36*time.Hour)), testNow)
	require.NotNil(t, plan.Stats.DaysUntilExam)
	assert.Equal(t, 1, *plan.Stats.DaysUntilExam)

	past := GenerateStudyPlan(nil, nil, nil, timePtr(testNow.Add(-36*time.Hour)), testNow)
	require.NotNil(t, past.Stats.DaysUntilExam)
	assert.Equal(t, -2, *past.Stats.DaysUntilExam, "past exams stay negative in plan stats")
}

func TestGenerateStudyPlanEmpty(t *testing.T) {
	plan := GenerateStudyPlan(nil, nil, nil, nil, testNow)

	assert.Zero(t, plan.Stats.TotalItems)
	assert.Zero(t, plan.Stats.AvgProgress, "average progress defaults to 0 on empty input")
	assert.Empty(t, plan.Urgent)
	assert.Empty(t, plan.Low)
}

func TestStudyRecommendationOrderAndConditions(t *testing.T) {
	days := 20
	plan := &StudyPlan{
		Urgent: []StudyItem{{UID: "u1"}, {UID: "u2"}},
		Stats: PlanStats{
			TotalItems:      10,
			AvgProgress:     0.2,
			ItemsNotStarted: 7,
			DaysUntilExam:   &days,
		},
	}

	text := StudyRecommendation(plan)
	paragraphs := strings.Split(text, "\n\n")
	require.Len(t, paragraphs, 4)

	assert.Contains(t, paragraphs[0], "20 days")
	assert.Contains(t, paragraphs[1], "2 urgent")
	assert.Contains(t, paragraphs[2], "7 topics not started")
	assert.Contains(t, paragraphs[3], "20%")
}

func TestStudyRecommendationHighProgress(t *testing.T) {
	plan := &StudyPlan{Stats: PlanStats{TotalItems: 2, AvgProgress: 0.85}}

	text := StudyRecommendation(plan)
	paragraphs := strings.Split(text, "\n\n")
	require.Len(t, paragraphs, 1, "only the progress banding message applies")
	assert.Contains(t, paragraphs[0], "85%")
}
