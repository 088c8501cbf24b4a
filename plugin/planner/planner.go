// Package planner implements the adaptive study-planning engine: urgency
// scoring, priority bucketing, study-pattern analysis, completion prediction
// and week-by-week backlog partitioning.
//
// Every function is pure and stateless: callers pass immutable snapshots of
// topics, bulletins and categories plus an explicit "now" so results are
// deterministic and testable with frozen time.
package planner

import "time"

// Priority is a discrete urgency tier derived from a numeric score.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ItemType distinguishes study topics from exercise bulletins.
type ItemType string

const (
	ItemTypeTopic    ItemType = "topic"
	ItemTypeBulletin ItemType = "bulletin"
)

// Category is one axis of completion tracking (e.g. "Summarized").
type Category struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Topic is a unit of study material tracked via a per-category checklist.
// A missing key in Checks means the category is not completed.
type Topic struct {
	UID         string          `json:"uid"`
	Title       string          `json:"title"`
	Checks      map[string]bool `json:"checks"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	ReviewCount int             `json:"review_count"`
	FolderUID   string          `json:"folder_uid,omitempty"`
}

// Bulletin is a practice-exercise set. Exercise numbers run 1..ExerciseCount;
// a missing key in CompletedExercises means the exercise is incomplete.
type Bulletin struct {
	UID                string       `json:"uid"`
	Title              string       `json:"title"`
	ExerciseCount      int          `json:"exercise_count"`
	CompletedExercises map[int]bool `json:"completed_exercises"`
	UpdatedAt          *time.Time   `json:"updated_at,omitempty"`
	FolderUID          string       `json:"folder_uid,omitempty"`
}

const dayDuration = 24 * time.Hour

// staleFallbackDays is used when an item has never been updated, so such
// items sort to maximum staleness priority.
const staleFallbackDays = 999
