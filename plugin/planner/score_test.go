package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysWithoutUpdate(t *testing.T) {
	assert.Equal(t, 999, DaysWithoutUpdate(nil, testNow), "missing timestamp is maximally stale")
	assert.Equal(t, 0, DaysWithoutUpdate(daysAgo(0), testNow))
	assert.Equal(t, 10, DaysWithoutUpdate(daysAgo(10), testNow))
}

func TestTopicScoreNeverStarted(t *testing.T) {
	// Concrete scenario: zero checks, never updated, no exam date gives
	// 80 (base) + 40 (staleness) = 120, which is the high tier.
	topic := Topic{UID: "t1", Checks: map[string]bool{}}

	score := TopicScore(topic, 3, nil, testNow)
	assert.Equal(t, 120, score)
	assert.Equal(t, PriorityHigh, PriorityForScore(score))
}

func TestTopicScoreExamProximity(t *testing.T) {
	topic := Topic{UID: "t1", Checks: map[string]bool{}, UpdatedAt: daysAgo(1)}

	ten := 10
	ninety := 90
	nearScore := TopicScore(topic, 3, &ten, testNow)
	farScore := TopicScore(topic, 3, &ninety, testNow)

	// 80 base + 60 near-exam bonus vs 80 base only.
	assert.Equal(t, 140, nearScore)
	assert.Equal(t, 80, farScore)
}

func TestTopicScoreReviewDueBonus(t *testing.T) {
	stale22 := Topic{UID: "t1", Checks: map[string]bool{"a": true}, ReviewCount: 2, UpdatedAt: daysAgo(22)}
	stale16 := Topic{UID: "t2", Checks: map[string]bool{"a": true}, ReviewCount: 2, UpdatedAt: daysAgo(16)}
	noReview := Topic{UID: "t3", Checks: map[string]bool{"a": true}, UpdatedAt: daysAgo(22)}

	// progress 1/3: base 40; stale>14: +25.
	assert.Equal(t, 40+25+30, TopicScore(stale22, 3, nil, testNow))
	assert.Equal(t, 40+25+15, TopicScore(stale16, 3, nil, testNow))
	assert.Equal(t, 40+25, TopicScore(noReview, 3, nil, testNow))
}

func TestTopicScoreDiminishingReturnsClampedAtZero(t *testing.T) {
	// Progress above 0.8 with no exam in sight takes the -20 penalty but the
	// final score never goes negative.
	topic := Topic{
		UID:       "t1",
		Checks:    map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true},
		UpdatedAt: daysAgo(0),
	}

	assert.Equal(t, 0, TopicScore(topic, 5, nil, testNow), "completed fresh topic scores zero")

	almostDone := Topic{
		UID:       "t2",
		Checks:    map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true},
		UpdatedAt: daysAgo(0),
	}
	// 5/6 progress: base 20, penalty -20 without an exam in sight.
	assert.Equal(t, 0, TopicScore(almostDone, 6, nil, testNow))
	// With the exam 30 days out the penalty does not apply: 20 + 10.
	thirty := 30
	assert.Equal(t, 30, TopicScore(almostDone, 6, &thirty, testNow))
}

func TestBulletinScoreMagnitudes(t *testing.T) {
	fresh := Bulletin{UID: "b1", ExerciseCount: 10, UpdatedAt: daysAgo(0)}
	assert.Equal(t, 70, BulletinScore(fresh, nil, testNow))

	neverUpdated := Bulletin{UID: "b2", ExerciseCount: 10}
	assert.Equal(t, 70+35, BulletinScore(neverUpdated, nil, testNow))

	ten := 10
	assert.Equal(t, 70+35+50, BulletinScore(neverUpdated, &ten, testNow))
}

func TestScoreMonotonicity(t *testing.T) {
	// For fixed staleness and exam distance, lower progress never scores
	// lower than higher progress.
	examDays := 25
	progressLevels := []map[string]bool{
		{},
		{"a": true},
		{"a": true, "b": true},
		{"a": true, "b": true, "c": true},
		{"a": true, "b": true, "c": true, "d": true},
	}

	prev := int(^uint(0) >> 1)
	for i, checks := range progressLevels {
		topic := Topic{UID: "t", Checks: checks, UpdatedAt: daysAgo(5)}
		score := TopicScore(topic, 4, &examDays, testNow)
		assert.LessOrEqual(t, score, prev, "score must be non-increasing with progress (level %d)", i)
		prev = score
	}
}

func TestPriorityForScoreTierBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Priority
	}{
		{0, PriorityLow},
		{69, PriorityLow},
		{70, PriorityMedium},
		{119, PriorityMedium},
		{120, PriorityHigh},
		{179, PriorityHigh},
		{180, PriorityUrgent},
		{400, PriorityUrgent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityForScore(tt.score), "score %d", tt.score)
	}
}

func TestReasonForPriority(t *testing.T) {
	near := 20

	t.Run("not started near exam", func(t *testing.T) {
		reason := reasonForPriority(0, 999, &near, 0)
		assert.Equal(t, "Not started • 999 days without review • Exam approaching", reason)
	})

	t.Run("stale review", func(t *testing.T) {
		reason := reasonForPriority(0.5, 16, nil, 1)
		assert.Equal(t, "Medium progress • 16 days without review • Needs review", reason)
	})

	t.Run("mildly stale", func(t *testing.T) {
		reason := reasonForPriority(0.5, 9, nil, 0)
		assert.Equal(t, "Medium progress • 9 days without update", reason)
	})

	t.Run("fallback", func(t *testing.T) {
		assert.Equal(t, "Continue progress", reasonForPriority(0.9, 1, nil, 0))
	})
}
