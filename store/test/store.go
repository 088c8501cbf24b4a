// Package test provides store integration tests backed by a throwaway
// SQLite database.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opotrack/opotrack/internal/profile"
	"github.com/opotrack/opotrack/internal/version"
	"github.com/opotrack/opotrack/store"
	"github.com/opotrack/opotrack/store/db"
)

// NewTestingStore opens a migrated store on a fresh SQLite database.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	dir := t.TempDir()
	testProfile := &profile.Profile{
		Mode:    "prod",
		Driver:  "sqlite",
		Data:    dir,
		DSN:     filepath.Join(dir, "opotrack_test.db"),
		Version: version.GetCurrentVersion("prod"),
	}

	driver, err := db.NewDBDriver(testProfile)
	require.NoError(t, err)

	ts := store.New(driver, testProfile)
	require.NoError(t, ts.Migrate(ctx))
	t.Cleanup(func() { _ = ts.Close() })
	return ts
}

// findCategoryByName resolves one of the seeded default categories.
func findCategoryByName(ctx context.Context, t *testing.T, ts *store.Store, name string) *store.Category {
	categories, err := ts.ListCategories(ctx, &store.FindCategory{GlobalOnly: true})
	require.NoError(t, err)
	for _, category := range categories {
		if category.Name == name {
			return category
		}
	}
	t.Fatalf("category %q not found", name)
	return nil
}
