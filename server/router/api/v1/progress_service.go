package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/plugin/planner"
	"github.com/opotrack/opotrack/store"
)

// FolderProgressEntry is the per-folder slice of a progress report.
type FolderProgressEntry struct {
	FolderUID             string  `json:"folder_uid"`
	FolderName            string  `json:"folder_name"`
	Progress              float64 `json:"progress"`
	ProgressWithBulletins float64 `json:"progress_with_bulletins"`
	ChecksDone            int     `json:"checks_done"`
	ChecksTotal           int     `json:"checks_total"`
}

// ProgressResponse is the global progress report.
type ProgressResponse struct {
	Global              float64               `json:"global"`
	GlobalWithBulletins float64               `json:"global_with_bulletins"`
	BulletinsOnly       float64               `json:"bulletins_only"`
	Folders             []FolderProgressEntry `json:"folders"`
}

// GetProgress reports overall completion: topic checklist progress, the
// combined topics-plus-exercises figure, exercises alone and per-folder
// breakdowns.
// GET /api/v1/progress
func (s *APIV1Service) GetProgress(c echo.Context) error {
	ctx := c.Request().Context()

	snapshot, err := s.loadPlannerSnapshot(ctx)
	if err != nil {
		slog.Error("failed to load progress data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load progress data"})
	}
	folders, err := s.Store.ListFolders(ctx, &store.FindFolder{})
	if err != nil {
		slog.Error("failed to list folders", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list folders"})
	}

	resp := ProgressResponse{
		Global:              planner.GlobalProgress(snapshot.Topics, snapshot.Categories),
		GlobalWithBulletins: planner.GlobalProgressWithBulletins(snapshot.Topics, snapshot.Categories, snapshot.Bulletins),
		BulletinsOnly:       planner.BulletinsOnlyProgress(snapshot.Bulletins),
		Folders:             make([]FolderProgressEntry, 0, len(folders)),
	}
	for _, folder := range folders {
		entry, err := s.folderProgressEntry(c, folder, snapshot)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to compute folder progress"})
		}
		resp.Folders = append(resp.Folders, entry)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetFolderProgress reports one folder's completion using its effective
// category set.
// GET /api/v1/folders/:uid/progress
func (s *APIV1Service) GetFolderProgress(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	folder, err := s.Store.GetFolder(ctx, &store.FindFolder{UID: &uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get folder"})
	}
	if folder == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "folder not found"})
	}

	snapshot, err := s.loadPlannerSnapshot(ctx)
	if err != nil {
		slog.Error("failed to load progress data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load progress data"})
	}
	entry, err := s.folderProgressEntry(c, folder, snapshot)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to compute folder progress"})
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *APIV1Service) folderProgressEntry(c echo.Context, folder *store.Folder, snapshot *plannerSnapshot) (FolderProgressEntry, error) {
	ctx := c.Request().Context()

	// Folder-scoped categories extend the global checklist inside the folder.
	effective, err := s.Store.EffectiveCategories(ctx, &folder.UID)
	if err != nil {
		slog.Error("failed to load effective categories", "folder", folder.UID, "error", err)
		return FolderProgressEntry{}, err
	}
	categories := make([]planner.Category, 0, len(effective))
	for _, category := range effective {
		categories = append(categories, plannerCategory(category))
	}

	done, total := planner.FolderTotals(snapshot.Topics, categories, folder.UID)
	return FolderProgressEntry{
		FolderUID:             folder.UID,
		FolderName:            folder.Name,
		Progress:              planner.FolderProgress(snapshot.Topics, categories, folder.UID),
		ProgressWithBulletins: planner.FolderProgressWithBulletins(snapshot.Topics, categories, snapshot.Bulletins, folder.UID),
		ChecksDone:            done,
		ChecksTotal:           total,
	}, nil
}
