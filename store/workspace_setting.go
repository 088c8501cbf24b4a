package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	// WorkspaceSettingExamDate stores the target exam date as "2006-01-02".
	WorkspaceSettingExamDate = "exam-date"
	// WorkspaceSettingSchemaVersion stores the applied schema version.
	WorkspaceSettingSchemaVersion = "schema-version"

	examDateLayout = "2006-01-02"
)

// WorkspaceSetting is one key/value row of workspace configuration.
type WorkspaceSetting struct {
	Name  string
	Value string
}

// FindWorkspaceSetting is the find condition for workspace setting.
type FindWorkspaceSetting struct {
	Name *string
}

// DeleteWorkspaceSetting is the delete request for workspace setting.
type DeleteWorkspaceSetting struct {
	Name string
}

// UpsertWorkspaceSetting creates or replaces a workspace setting.
func (s *Store) UpsertWorkspaceSetting(ctx context.Context, upsert *WorkspaceSetting) (*WorkspaceSetting, error) {
	setting, err := s.driver.UpsertWorkspaceSetting(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.settingCache.Set(setting.Name, setting)
	return setting, nil
}

// GetWorkspaceSetting gets a workspace setting by name, nil when unset.
func (s *Store) GetWorkspaceSetting(ctx context.Context, name string) (*WorkspaceSetting, error) {
	if cached, ok := s.settingCache.Get(name); ok {
		if setting, ok := cached.(*WorkspaceSetting); ok {
			return setting, nil
		}
	}

	list, err := s.driver.ListWorkspaceSettings(ctx, &FindWorkspaceSetting{Name: &name})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	s.settingCache.Set(name, list[0])
	return list[0], nil
}

// DeleteWorkspaceSetting deletes a workspace setting.
func (s *Store) DeleteWorkspaceSetting(ctx context.Context, delete *DeleteWorkspaceSetting) error {
	if err := s.driver.DeleteWorkspaceSetting(ctx, delete); err != nil {
		return err
	}
	s.settingCache.Delete(delete.Name)
	return nil
}

// GetExamDate returns the configured target exam date, nil when unset.
func (s *Store) GetExamDate(ctx context.Context) (*time.Time, error) {
	setting, err := s.GetWorkspaceSetting(ctx, WorkspaceSettingExamDate)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.Value == "" {
		return nil, nil
	}
	examDate, err := time.Parse(examDateLayout, setting.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stored exam date %q", setting.Value)
	}
	return &examDate, nil
}

// SetExamDate stores the target exam date.
func (s *Store) SetExamDate(ctx context.Context, examDate time.Time) error {
	_, err := s.UpsertWorkspaceSetting(ctx, &WorkspaceSetting{
		Name:  WorkspaceSettingExamDate,
		Value: examDate.Format(examDateLayout),
	})
	return err
}

// ClearExamDate removes the target exam date.
func (s *Store) ClearExamDate(ctx context.Context) error {
	return s.DeleteWorkspaceSetting(ctx, &DeleteWorkspaceSetting{Name: WorkspaceSettingExamDate})
}
