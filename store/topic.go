package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// Topic is the object representing a study topic tracked against the
// category checklist.
type Topic struct {
	ID        int32
	UID       string
	CreatedTs int64
	// UpdatedTs is 0 for topics that have never been touched; staleness
	// scoring treats that as maximally stale.
	UpdatedTs   int64
	Title       string
	Note        string
	Checks      map[string]bool
	ReviewCount int
	FolderUID   *string
}

// FindTopic is the find condition for topic.
type FindTopic struct {
	ID        *int32
	UID       *string
	FolderUID *string

	// Pagination
	Limit  *int
	Offset *int
}

// UpdateTopic is the update request for topic. Nil fields are left unchanged.
// A non-nil empty FolderUID unfiles the topic.
type UpdateTopic struct {
	ID          int32
	UpdatedTs   *int64
	Title       *string
	Note        *string
	Checks      map[string]bool
	ReviewCount *int
	FolderUID   *string
}

// DeleteTopic is the delete request for topic.
type DeleteTopic struct {
	ID int32
}

// CreateTopic creates a new topic.
func (s *Store) CreateTopic(ctx context.Context, create *Topic) (*Topic, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	if create.Checks == nil {
		create.Checks = map[string]bool{}
	}
	return s.driver.CreateTopic(ctx, create)
}

// ListTopics lists topics with filter.
func (s *Store) ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error) {
	return s.driver.ListTopics(ctx, find)
}

// GetTopic gets a topic by find condition.
func (s *Store) GetTopic(ctx context.Context, find *FindTopic) (*Topic, error) {
	list, err := s.driver.ListTopics(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateTopic updates a topic. Every mutation stamps UpdatedTs unless the
// caller supplies one explicitly.
func (s *Store) UpdateTopic(ctx context.Context, update *UpdateTopic) error {
	if update.UpdatedTs == nil {
		now := time.Now().Unix()
		update.UpdatedTs = &now
	}
	return s.driver.UpdateTopic(ctx, update)
}

// DeleteTopic deletes a topic.
func (s *Store) DeleteTopic(ctx context.Context, delete *DeleteTopic) error {
	return s.driver.DeleteTopic(ctx, delete)
}

// ToggleTopicCheck flips one category check on a topic. Toggling the
// distinguished "reviewed" category also resets the review counter to 1 when
// checked and 0 when unchecked.
func (s *Store) ToggleTopicCheck(ctx context.Context, topicUID, categoryUID string) (*Topic, error) {
	topic, err := s.GetTopic(ctx, &FindTopic{UID: &topicUID})
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, errors.Errorf("topic not found: %s", topicUID)
	}

	checks := make(map[string]bool, len(topic.Checks)+1)
	for k, v := range topic.Checks {
		checks[k] = v
	}
	checked := !checks[categoryUID]
	checks[categoryUID] = checked

	update := &UpdateTopic{ID: topic.ID, Checks: checks}

	category, err := s.GetCategory(ctx, &FindCategory{UID: &categoryUID})
	if err != nil {
		return nil, err
	}
	if category != nil && category.IsReviewCategory() {
		reviewCount := 0
		if checked {
			reviewCount = 1
		}
		update.ReviewCount = &reviewCount
	}

	if err := s.UpdateTopic(ctx, update); err != nil {
		return nil, err
	}
	return s.GetTopic(ctx, &FindTopic{ID: &topic.ID})
}

// AdjustTopicReviewCount changes a topic's review counter by delta, clamped
// at zero.
func (s *Store) AdjustTopicReviewCount(ctx context.Context, topicUID string, delta int) (*Topic, error) {
	topic, err := s.GetTopic(ctx, &FindTopic{UID: &topicUID})
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, errors.Errorf("topic not found: %s", topicUID)
	}

	reviewCount := topic.ReviewCount + delta
	if reviewCount < 0 {
		reviewCount = 0
	}
	if err := s.UpdateTopic(ctx, &UpdateTopic{ID: topic.ID, ReviewCount: &reviewCount}); err != nil {
		return nil, err
	}
	return s.GetTopic(ctx, &FindTopic{ID: &topic.ID})
}

// UpdatedAt converts the update timestamp for the planner, nil when the topic
// was never touched.
func (t *Topic) UpdatedAt() *time.Time {
	if t.UpdatedTs == 0 {
		return nil
	}
	ts := time.Unix(t.UpdatedTs, 0)
	return &ts
}
