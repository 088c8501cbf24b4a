package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opotrack/opotrack/store"
)

func TestBulletinStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	created, err := ts.CreateBulletin(ctx, &store.Bulletin{Title: "Mechanics problems", ExerciseCount: 12})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.Equal(t, 12, created.ExerciseCount)
	assert.NotNil(t, created.CompletedExercises)
	assert.Nil(t, created.UpdatedAt())

	count := 15
	require.NoError(t, ts.UpdateBulletin(ctx, &store.UpdateBulletin{ID: created.ID, ExerciseCount: &count}))

	fetched, err := ts.GetBulletin(ctx, &store.FindBulletin{UID: &created.UID})
	require.NoError(t, err)
	assert.Equal(t, 15, fetched.ExerciseCount)
	assert.NotZero(t, fetched.UpdatedTs)

	require.NoError(t, ts.DeleteBulletin(ctx, &store.DeleteBulletin{ID: created.ID}))
	gone, err := ts.GetBulletin(ctx, &store.FindBulletin{UID: &created.UID})
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCreateBulletinRequiresExercises(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, err := ts.CreateBulletin(ctx, &store.Bulletin{Title: "Empty sheet", ExerciseCount: 0})
	assert.Error(t, err, "a bulletin needs at least one exercise")
	_, err = ts.CreateBulletin(ctx, &store.Bulletin{Title: "Negative sheet", ExerciseCount: -3})
	assert.Error(t, err)
}

func TestToggleBulletinExercise(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bulletin, err := ts.CreateBulletin(ctx, &store.Bulletin{Title: "Drills", ExerciseCount: 5})
	require.NoError(t, err)

	toggled, err := ts.ToggleBulletinExercise(ctx, bulletin.UID, 3)
	require.NoError(t, err)
	assert.True(t, toggled.CompletedExercises[3])
	assert.NotZero(t, toggled.UpdatedTs)

	toggled, err = ts.ToggleBulletinExercise(ctx, bulletin.UID, 3)
	require.NoError(t, err)
	assert.False(t, toggled.CompletedExercises[3])

	_, err = ts.ToggleBulletinExercise(ctx, bulletin.UID, 0)
	assert.Error(t, err, "exercises are numbered from one")
	_, err = ts.ToggleBulletinExercise(ctx, bulletin.UID, 6)
	assert.Error(t, err, "exercise number above the sheet size")
}
