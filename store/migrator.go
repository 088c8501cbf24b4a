package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/opotrack/opotrack/internal/version"
)

// Schema versioning:
//
// The applied schema version lives in the workspace_setting table under
// "schema-version". Fresh databases are created from
// migration/{driver}/LATEST.sql and stamped with the current version;
// existing databases apply every migration/{driver}/{minor}/NN__*.sql whose
// minor version lies between the stored version and the current one, in
// lexicographic file order.

//go:embed migration
var migrationFS embed.FS

const (
	// MigrateFileNameSplit separates the patch number from the description in
	// a migration file name, e.g. "01__add_position.sql".
	MigrateFileNameSplit = "__"
	// LatestSchemaFileName holds the full schema for fresh installations.
	LatestSchemaFileName = "LATEST.sql"

	defaultSchemaVersion = "0.0.0"
)

// Migrate brings the database schema up to the current version and seeds the
// default categories on first run.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}

	targetVersion := version.GetSchemaVersion(s.profile.Mode)
	if !initialized {
		if err := s.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if err := s.seedDefaultCategories(ctx); err != nil {
			return errors.Wrap(err, "failed to seed default categories")
		}
		if err := s.setSchemaVersion(ctx, targetVersion); err != nil {
			return err
		}
		slog.Info("database initialized", "schemaVersion", targetVersion)
		return nil
	}

	currentVersion, err := s.currentSchemaVersion(ctx)
	if err != nil {
		return err
	}
	if !version.IsVersionGreaterThan(targetVersion, currentVersion) {
		return nil
	}

	filePaths, err := s.pendingMigrationFiles(currentVersion, targetVersion)
	if err != nil {
		return err
	}
	for _, filePath := range filePaths {
		buf, err := migrationFS.ReadFile(filePath)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file %s", filePath)
		}
		if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
			return errors.Wrapf(err, "failed to apply migration %s", filePath)
		}
		slog.Info("applied migration", "file", filePath)
	}
	return s.setSchemaVersion(ctx, targetVersion)
}

func (s *Store) applyLatestSchema(ctx context.Context) error {
	filePath := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
	buf, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema %s", filePath)
	}
	if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to execute latest schema")
	}
	return nil
}

// seedDefaultCategories creates the three default global completion axes.
func (s *Store) seedDefaultCategories(ctx context.Context) error {
	for i, name := range []string{"summarized", "studied", ReviewedCategoryName} {
		if _, err := s.CreateCategory(ctx, &Category{Name: name, Position: i}); err != nil {
			return errors.Wrapf(err, "failed to create category %s", name)
		}
	}
	return nil
}

// pendingMigrationFiles lists migration files with a minor version above
// currentVersion and at most targetVersion, in apply order.
func (s *Store) pendingMigrationFiles(currentVersion, targetVersion string) ([]string, error) {
	root := fmt.Sprintf("migration/%s", s.profile.Driver)
	var filePaths []string
	err := fs.WalkDir(migrationFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Base(path) == LatestSchemaFileName {
			return nil
		}
		if !strings.Contains(filepath.Base(path), MigrateFileNameSplit) {
			return errors.Errorf("invalid migration file name: %s", path)
		}
		fileVersion := filepath.Base(filepath.Dir(path)) + ".0"
		if version.IsVersionGreaterThan(fileVersion, currentVersion) &&
			version.IsVersionGreaterOrEqualThan(targetVersion, fileVersion) {
			filePaths = append(filePaths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk migration files")
	}
	sort.Strings(filePaths)
	return filePaths, nil
}

func (s *Store) currentSchemaVersion(ctx context.Context) (string, error) {
	setting, err := s.GetWorkspaceSetting(ctx, WorkspaceSettingSchemaVersion)
	if err != nil {
		return "", errors.Wrap(err, "failed to read schema version")
	}
	if setting == nil || setting.Value == "" {
		return defaultSchemaVersion, nil
	}
	return setting.Value, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, schemaVersion string) error {
	_, err := s.UpsertWorkspaceSetting(ctx, &WorkspaceSetting{
		Name:  WorkspaceSettingSchemaVersion,
		Value: schemaVersion,
	})
	return errors.Wrap(err, "failed to store schema version")
}
