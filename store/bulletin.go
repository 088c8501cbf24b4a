package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// Bulletin is the object representing a practice-exercise sheet.
type Bulletin struct {
	ID                 int32
	UID                string
	CreatedTs          int64
	UpdatedTs          int64
	Title              string
	Note               string
	ExerciseCount      int
	CompletedExercises map[int]bool
	FolderUID          *string
}

// FindBulletin is the find condition for bulletin.
type FindBulletin struct {
	ID        *int32
	UID       *string
	FolderUID *string

	// Pagination
	Limit  *int
	Offset *int
}

// UpdateBulletin is the update request for bulletin. Nil fields are left
// unchanged. A non-nil empty FolderUID unfiles the bulletin.
type UpdateBulletin struct {
	ID                 int32
	UpdatedTs          *int64
	Title              *string
	Note               *string
	ExerciseCount      *int
	CompletedExercises map[int]bool
	FolderUID          *string
}

// DeleteBulletin is the delete request for bulletin.
type DeleteBulletin struct {
	ID int32
}

// CreateBulletin creates a new bulletin.
func (s *Store) CreateBulletin(ctx context.Context, create *Bulletin) (*Bulletin, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	if create.ExerciseCount < 1 {
		return nil, errors.Errorf("invalid exercise count: %d", create.ExerciseCount)
	}
	if create.CompletedExercises == nil {
		create.CompletedExercises = map[int]bool{}
	}
	return s.driver.CreateBulletin(ctx, create)
}

// ListBulletins lists bulletins with filter.
func (s *Store) ListBulletins(ctx context.Context, find *FindBulletin) ([]*Bulletin, error) {
	return s.driver.ListBulletins(ctx, find)
}

// GetBulletin gets a bulletin by find condition.
func (s *Store) GetBulletin(ctx context.Context, find *FindBulletin) (*Bulletin, error) {
	list, err := s.driver.ListBulletins(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateBulletin updates a bulletin, stamping UpdatedTs unless supplied.
func (s *Store) UpdateBulletin(ctx context.Context, update *UpdateBulletin) error {
	if update.UpdatedTs == nil {
		now := time.Now().Unix()
		update.UpdatedTs = &now
	}
	return s.driver.UpdateBulletin(ctx, update)
}

// DeleteBulletin deletes a bulletin.
func (s *Store) DeleteBulletin(ctx context.Context, delete *DeleteBulletin) error {
	return s.driver.DeleteBulletin(ctx, delete)
}

// ToggleBulletinExercise flips completion of one exercise, numbered from 1 up
// to the bulletin's exercise count.
func (s *Store) ToggleBulletinExercise(ctx context.Context, bulletinUID string, number int) (*Bulletin, error) {
	bulletin, err := s.GetBulletin(ctx, &FindBulletin{UID: &bulletinUID})
	if err != nil {
		return nil, err
	}
	if bulletin == nil {
		return nil, errors.Errorf("bulletin not found: %s", bulletinUID)
	}
	if number < 1 || number > bulletin.ExerciseCount {
		return nil, errors.Errorf("exercise number %d out of range 1..%d", number, bulletin.ExerciseCount)
	}

	completed := make(map[int]bool, len(bulletin.CompletedExercises)+1)
	for k, v := range bulletin.CompletedExercises {
		completed[k] = v
	}
	completed[number] = !completed[number]

	if err := s.UpdateBulletin(ctx, &UpdateBulletin{ID: bulletin.ID, CompletedExercises: completed}); err != nil {
		return nil, err
	}
	return s.GetBulletin(ctx, &FindBulletin{ID: &bulletin.ID})
}

// UpdatedAt converts the update timestamp for the planner, nil when the
// bulletin was never touched.
func (b *Bulletin) UpdatedAt() *time.Time {
	if b.UpdatedTs == 0 {
		return nil
	}
	ts := time.Unix(b.UpdatedTs, 0)
	return &ts
}
