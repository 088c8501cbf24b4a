package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opotrack/opotrack/store"
)

func TestTopicStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	created, err := ts.CreateTopic(ctx, &store.Topic{Title: "Thermodynamics"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID, "uid is generated when absent")
	assert.NotZero(t, created.CreatedTs)
	assert.Zero(t, created.UpdatedTs, "a fresh topic has never been studied")
	assert.Nil(t, created.UpdatedAt())

	fetched, err := ts.GetTopic(ctx, &store.FindTopic{UID: &created.UID})
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Thermodynamics", fetched.Title)
	assert.NotNil(t, fetched.Checks)

	title := "Thermodynamics II"
	require.NoError(t, ts.UpdateTopic(ctx, &store.UpdateTopic{ID: fetched.ID, Title: &title}))

	updated, err := ts.GetTopic(ctx, &store.FindTopic{UID: &created.UID})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.NotZero(t, updated.UpdatedTs, "every mutation stamps the update time")
	assert.NotNil(t, updated.UpdatedAt())

	require.NoError(t, ts.DeleteTopic(ctx, &store.DeleteTopic{ID: fetched.ID}))
	gone, err := ts.GetTopic(ctx, &store.FindTopic{UID: &created.UID})
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestToggleTopicCheck(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	topic, err := ts.CreateTopic(ctx, &store.Topic{Title: "Optics"})
	require.NoError(t, err)

	studied := findCategoryByName(ctx, t, ts, "studied")
	toggled, err := ts.ToggleTopicCheck(ctx, topic.UID, studied.UID)
	require.NoError(t, err)
	assert.True(t, toggled.Checks[studied.UID])
	assert.Zero(t, toggled.ReviewCount, "ordinary categories leave the review counter alone")
	assert.NotZero(t, toggled.UpdatedTs)

	reviewed := findCategoryByName(ctx, t, ts, "reviewed")
	toggled, err = ts.ToggleTopicCheck(ctx, topic.UID, reviewed.UID)
	require.NoError(t, err)
	assert.True(t, toggled.Checks[reviewed.UID])
	assert.Equal(t, 1, toggled.ReviewCount, "checking the review category resets the counter to one")

	// Bump it manually, then unchecking resets to zero.
	bumped, err := ts.AdjustTopicReviewCount(ctx, topic.UID, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, bumped.ReviewCount)

	toggled, err = ts.ToggleTopicCheck(ctx, topic.UID, reviewed.UID)
	require.NoError(t, err)
	assert.False(t, toggled.Checks[reviewed.UID])
	assert.Zero(t, toggled.ReviewCount)
}

func TestAdjustTopicReviewCountClampsAtZero(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	topic, err := ts.CreateTopic(ctx, &store.Topic{Title: "Waves"})
	require.NoError(t, err)

	adjusted, err := ts.AdjustTopicReviewCount(ctx, topic.UID, -5)
	require.NoError(t, err)
	assert.Zero(t, adjusted.ReviewCount)

	_, err = ts.AdjustTopicReviewCount(ctx, "no-such-topic", 1)
	assert.Error(t, err)
}
