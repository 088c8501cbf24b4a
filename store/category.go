package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ReviewedCategoryName is the distinguished category whose toggle drives the
// topic review counter.
const ReviewedCategoryName = "reviewed"

// Category is one axis of completion tracking (e.g. "summarized", "studied",
// "reviewed"). Global categories apply corpus-wide; a category with a folder
// UID exists only within that folder's view.
type Category struct {
	ID        int32
	UID       string
	CreatedTs int64
	Name      string
	Position  int
	FolderUID *string
}

// FindCategory is the find condition for category.
type FindCategory struct {
	ID  *int32
	UID *string

	// GlobalOnly restricts the result to corpus-wide categories.
	GlobalOnly bool
	FolderUID  *string
}

// UpdateCategory is the update request for category.
type UpdateCategory struct {
	ID       int32
	Name     *string
	Position *int
}

// DeleteCategory is the delete request for category.
type DeleteCategory struct {
	ID int32
}

// IsReviewCategory reports whether this is the distinguished review category.
func (c *Category) IsReviewCategory() bool {
	return strings.EqualFold(c.Name, ReviewedCategoryName)
}

// CreateCategory creates a new category.
func (s *Store) CreateCategory(ctx context.Context, create *Category) (*Category, error) {
	if create.UID == "" {
		create.UID = uuid.NewString()
	}
	category, err := s.driver.CreateCategory(ctx, create)
	if err != nil {
		return nil, err
	}
	s.categoryCache.Clear()
	return category, nil
}

// ListCategories lists categories with filter.
func (s *Store) ListCategories(ctx context.Context, find *FindCategory) ([]*Category, error) {
	return s.driver.ListCategories(ctx, find)
}

// GetCategory gets a category by find condition.
func (s *Store) GetCategory(ctx context.Context, find *FindCategory) (*Category, error) {
	list, err := s.driver.ListCategories(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateCategory updates a category.
func (s *Store) UpdateCategory(ctx context.Context, update *UpdateCategory) error {
	if err := s.driver.UpdateCategory(ctx, update); err != nil {
		return err
	}
	s.categoryCache.Clear()
	return nil
}

// DeleteCategory deletes a category.
func (s *Store) DeleteCategory(ctx context.Context, delete *DeleteCategory) error {
	if err := s.driver.DeleteCategory(ctx, delete); err != nil {
		return err
	}
	s.categoryCache.Clear()
	return nil
}

// EffectiveCategories returns the categories visible in a folder's view:
// global categories followed by the folder's own. A nil folderUID yields only
// the global set. Results are cached until the next category mutation.
func (s *Store) EffectiveCategories(ctx context.Context, folderUID *string) ([]*Category, error) {
	key := "effective:global"
	if folderUID != nil {
		key = fmt.Sprintf("effective:%s", *folderUID)
	}
	if cached, ok := s.categoryCache.Get(key); ok {
		if categories, ok := cached.([]*Category); ok {
			return categories, nil
		}
	}

	categories, err := s.ListCategories(ctx, &FindCategory{GlobalOnly: true})
	if err != nil {
		return nil, err
	}
	if folderUID != nil {
		scoped, err := s.ListCategories(ctx, &FindCategory{FolderUID: folderUID})
		if err != nil {
			return nil, err
		}
		categories = append(categories, scoped...)
	}

	s.categoryCache.Set(key, categories)
	return categories, nil
}
