package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeStudyPatternsEmpty(t *testing.T) {
	pattern := AnalyzeStudyPatterns(nil, nil, testNow)
	assert.Zero(t, pattern.AverageProgressPerDay)
	assert.Zero(t, pattern.StudyFrequency)
	assert.Zero(t, pattern.AverageSessionDuration)
	assert.Zero(t, pattern.ConsistencyScore)
}

func TestAnalyzeStudyPatternsSingleDay(t *testing.T) {
	topics := []Topic{
		{UID: "t1", Checks: map[string]bool{"a": true, "b": true}, UpdatedAt: daysAgo(10)},
		{UID: "t2", Checks: map[string]bool{"a": true, "b": true}, UpdatedAt: daysAgo(10)},
	}

	pattern := AnalyzeStudyPatterns(topics, nil, testNow)

	// One distinct study day in a ten-day window.
	assert.InDelta(t, 0.1, pattern.StudyFrequency, 1e-9)
	assert.InDelta(t, 4, pattern.AverageProgressPerDay, 1e-9)
	assert.InDelta(t, 60, pattern.AverageSessionDuration, 1e-9)
	assert.InDelta(t, 0.2, pattern.ConsistencyScore, 1e-9)
}

func TestAnalyzeStudyPatternsMixedItems(t *testing.T) {
	topics := []Topic{
		{UID: "t1", Checks: map[string]bool{"a": true}, UpdatedAt: daysAgo(4)},
	}
	bulletins := []Bulletin{
		{UID: "b1", ExerciseCount: 10, CompletedExercises: map[int]bool{1: true, 2: true, 3: true}, UpdatedAt: daysAgo(2)},
	}

	pattern := AnalyzeStudyPatterns(topics, bulletins, testNow)

	// Two distinct days over a four-day window; 4 completed cells over 2 days.
	assert.InDelta(t, 0.5, pattern.StudyFrequency, 1e-9)
	assert.InDelta(t, 2, pattern.AverageProgressPerDay, 1e-9)
	assert.InDelta(t, 30, pattern.AverageSessionDuration, 1e-9)
	assert.InDelta(t, 1, pattern.ConsistencyScore, 1e-9, "frequency over 0.5 saturates consistency")
}

func TestAnalyzeStudyPatternsNoTimestamps(t *testing.T) {
	topics := []Topic{
		{UID: "t1", Checks: map[string]bool{"a": true}},
	}

	pattern := AnalyzeStudyPatterns(topics, nil, testNow)

	// No timestamps: zero study days over a one-day minimum window, but the
	// completed cell still counts toward per-day throughput.
	assert.Zero(t, pattern.StudyFrequency)
	assert.InDelta(t, 1, pattern.AverageProgressPerDay, 1e-9)
	assert.Zero(t, pattern.ConsistencyScore)
}

func TestAnalyzeStudyPatternsSessionDurationCap(t *testing.T) {
	checks := map[string]bool{}
	for _, uid := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		checks[uid] = true
	}
	topics := []Topic{
		{UID: "t1", Checks: checks, UpdatedAt: daysAgo(1)},
	}

	pattern := AnalyzeStudyPatterns(topics, nil, testNow)
	assert.InDelta(t, 120, pattern.AverageSessionDuration, 1e-9, "session estimate caps at two hours")
}
