package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opotrack/opotrack/store"
)

func TestExamDateSetting(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	examDate, err := ts.GetExamDate(ctx)
	require.NoError(t, err)
	assert.Nil(t, examDate, "no exam date configured on a fresh workspace")

	target := time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ts.SetExamDate(ctx, target))

	examDate, err = ts.GetExamDate(ctx)
	require.NoError(t, err)
	require.NotNil(t, examDate)
	assert.Equal(t, target, *examDate, "date round-trips at day precision")

	require.NoError(t, ts.ClearExamDate(ctx))
	examDate, err = ts.GetExamDate(ctx)
	require.NoError(t, err)
	assert.Nil(t, examDate)
}

func TestSchemaVersionStamped(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	setting, err := ts.GetWorkspaceSetting(ctx, store.WorkspaceSettingSchemaVersion)
	require.NoError(t, err)
	require.NotNil(t, setting)
	assert.NotEmpty(t, setting.Value)

	// Running migrations again on an up-to-date database is a no-op.
	require.NoError(t, ts.Migrate(ctx))
}
