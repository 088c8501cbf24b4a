package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Folder groups topics, bulletins and folder-scoped categories.
type Folder struct {
	ID        int32
	UID       string
	CreatedTs int64
	Name      string
	Position  int
}

// FindFolder is the find condition for folder.
type FindFolder struct {
	ID  *int32
	UID *string
}

// UpdateFolder is the update request for folder.
type UpdateFolder struct {
	ID       int32
	Name     *string
	Position *int
}

// DeleteFolder is the delete request for folder.
type DeleteFolder struct {
	ID int32
}

// CreateFolder creates a new folder.
func (s *Store) CreateFolder(ctx context.Context, create *Folder) (*Folder, error) {
	if create.UID == "" {
		create.UID = uuid.NewString()
	}
	return s.driver.CreateFolder(ctx, create)
}

// ListFolders lists folders with filter.
func (s *Store) ListFolders(ctx context.Context, find *FindFolder) ([]*Folder, error) {
	return s.driver.ListFolders(ctx, find)
}

// GetFolder gets a folder by find condition.
func (s *Store) GetFolder(ctx context.Context, find *FindFolder) (*Folder, error) {
	list, err := s.driver.ListFolders(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateFolder updates a folder.
func (s *Store) UpdateFolder(ctx context.Context, update *UpdateFolder) error {
	return s.driver.UpdateFolder(ctx, update)
}

// RemoveFolder deletes a folder by uid and cascades: filed topics and
// bulletins are unfiled, checks against the folder's scoped categories are
// pruned, and the scoped categories themselves are removed.
func (s *Store) RemoveFolder(ctx context.Context, folderUID string) error {
	folder, err := s.GetFolder(ctx, &FindFolder{UID: &folderUID})
	if err != nil {
		return err
	}
	if folder == nil {
		return errors.Errorf("folder not found: %s", folderUID)
	}

	scopedCategories, err := s.ListCategories(ctx, &FindCategory{FolderUID: &folder.UID})
	if err != nil {
		return errors.Wrap(err, "failed to list folder categories")
	}
	scopedUIDs := make(map[string]bool, len(scopedCategories))
	for _, category := range scopedCategories {
		scopedUIDs[category.UID] = true
	}

	topics, err := s.ListTopics(ctx, &FindTopic{FolderUID: &folder.UID})
	if err != nil {
		return errors.Wrap(err, "failed to list folder topics")
	}
	unfiled := ""
	for _, topic := range topics {
		checks := make(map[string]bool, len(topic.Checks))
		for uid, v := range topic.Checks {
			if !scopedUIDs[uid] {
				checks[uid] = v
			}
		}
		update := &UpdateTopic{ID: topic.ID, FolderUID: &unfiled, Checks: checks, UpdatedTs: &topic.UpdatedTs}
		if err := s.UpdateTopic(ctx, update); err != nil {
			return errors.Wrapf(err, "failed to unfile topic %s", topic.UID)
		}
	}

	bulletins, err := s.ListBulletins(ctx, &FindBulletin{FolderUID: &folder.UID})
	if err != nil {
		return errors.Wrap(err, "failed to list folder bulletins")
	}
	for _, bulletin := range bulletins {
		update := &UpdateBulletin{ID: bulletin.ID, FolderUID: &unfiled, UpdatedTs: &bulletin.UpdatedTs}
		if err := s.UpdateBulletin(ctx, update); err != nil {
			return errors.Wrapf(err, "failed to unfile bulletin %s", bulletin.UID)
		}
	}

	for _, category := range scopedCategories {
		if err := s.DeleteCategory(ctx, &DeleteCategory{ID: category.ID}); err != nil {
			return errors.Wrapf(err, "failed to delete folder category %s", category.UID)
		}
	}

	if err := s.driver.DeleteFolder(ctx, &DeleteFolder{ID: folder.ID}); err != nil {
		return err
	}
	s.categoryCache.Clear()
	return nil
}
