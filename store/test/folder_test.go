package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opotrack/opotrack/store"
)

func TestFolderCascade(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	folder, err := ts.CreateFolder(ctx, &store.Folder{Name: "Physics"})
	require.NoError(t, err)
	assert.NotEmpty(t, folder.UID)

	scoped, err := ts.CreateCategory(ctx, &store.Category{Name: "memorized", FolderUID: &folder.UID})
	require.NoError(t, err)
	global := findCategoryByName(ctx, t, ts, "studied")

	topic, err := ts.CreateTopic(ctx, &store.Topic{
		Title:     "Kinematics",
		FolderUID: &folder.UID,
		Checks:    map[string]bool{scoped.UID: true, global.UID: true},
	})
	require.NoError(t, err)

	bulletin, err := ts.CreateBulletin(ctx, &store.Bulletin{
		Title:         "Kinematics drills",
		ExerciseCount: 4,
		FolderUID:     &folder.UID,
	})
	require.NoError(t, err)

	require.NoError(t, ts.RemoveFolder(ctx, folder.UID))

	// The topic is unfiled and its folder-scoped check is pruned, global
	// checks survive.
	unfiled, err := ts.GetTopic(ctx, &store.FindTopic{UID: &topic.UID})
	require.NoError(t, err)
	require.NotNil(t, unfiled)
	assert.Nil(t, unfiled.FolderUID)
	assert.NotContains(t, unfiled.Checks, scoped.UID)
	assert.True(t, unfiled.Checks[global.UID])

	unfiledBulletin, err := ts.GetBulletin(ctx, &store.FindBulletin{UID: &bulletin.UID})
	require.NoError(t, err)
	require.NotNil(t, unfiledBulletin)
	assert.Nil(t, unfiledBulletin.FolderUID)

	// The scoped category and the folder itself are gone.
	goneCategory, err := ts.GetCategory(ctx, &store.FindCategory{UID: &scoped.UID})
	require.NoError(t, err)
	assert.Nil(t, goneCategory)
	goneFolder, err := ts.GetFolder(ctx, &store.FindFolder{UID: &folder.UID})
	require.NoError(t, err)
	assert.Nil(t, goneFolder)
}

func TestEffectiveCategories(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	folder, err := ts.CreateFolder(ctx, &store.Folder{Name: "Chemistry"})
	require.NoError(t, err)
	_, err = ts.CreateCategory(ctx, &store.Category{Name: "practiced", FolderUID: &folder.UID})
	require.NoError(t, err)

	globals, err := ts.EffectiveCategories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, globals, 3, "default seeded categories")

	effective, err := ts.EffectiveCategories(ctx, &folder.UID)
	require.NoError(t, err)
	require.Len(t, effective, 4)
	assert.Equal(t, "practiced", effective[3].Name, "folder-scoped category comes after the globals")

	// Mutations invalidate the cached view.
	_, err = ts.CreateCategory(ctx, &store.Category{Name: "tested"})
	require.NoError(t, err)
	globals, err = ts.EffectiveCategories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, globals, 4)
}
