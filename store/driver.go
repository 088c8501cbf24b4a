package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Category model related methods.
	CreateCategory(ctx context.Context, create *Category) (*Category, error)
	ListCategories(ctx context.Context, find *FindCategory) ([]*Category, error)
	UpdateCategory(ctx context.Context, update *UpdateCategory) error
	DeleteCategory(ctx context.Context, delete *DeleteCategory) error

	// Topic model related methods.
	CreateTopic(ctx context.Context, create *Topic) (*Topic, error)
	ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error)
	UpdateTopic(ctx context.Context, update *UpdateTopic) error
	DeleteTopic(ctx context.Context, delete *DeleteTopic) error

	// Bulletin model related methods.
	CreateBulletin(ctx context.Context, create *Bulletin) (*Bulletin, error)
	ListBulletins(ctx context.Context, find *FindBulletin) ([]*Bulletin, error)
	UpdateBulletin(ctx context.Context, update *UpdateBulletin) error
	DeleteBulletin(ctx context.Context, delete *DeleteBulletin) error

	// Folder model related methods.
	CreateFolder(ctx context.Context, create *Folder) (*Folder, error)
	ListFolders(ctx context.Context, find *FindFolder) ([]*Folder, error)
	UpdateFolder(ctx context.Context, update *UpdateFolder) error
	DeleteFolder(ctx context.Context, delete *DeleteFolder) error

	// WorkspaceSetting model related methods.
	UpsertWorkspaceSetting(ctx context.Context, upsert *WorkspaceSetting) (*WorkspaceSetting, error)
	ListWorkspaceSettings(ctx context.Context, find *FindWorkspaceSetting) ([]*WorkspaceSetting, error)
	DeleteWorkspaceSetting(ctx context.Context, delete *DeleteWorkspaceSetting) error
}
