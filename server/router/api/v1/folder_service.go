package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/store"
)

// FolderResponse is the JSON shape of a folder.
type FolderResponse struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// CreateFolderRequest is the create payload for a folder.
type CreateFolderRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// UpdateFolderRequest is the patch payload for a folder.
type UpdateFolderRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

func folderResponse(folder *store.Folder) FolderResponse {
	return FolderResponse{
		UID:      folder.UID,
		Name:     folder.Name,
		Position: folder.Position,
	}
}

// ListFolders returns all folders.
// GET /api/v1/folders
func (s *APIV1Service) ListFolders(c echo.Context) error {
	ctx := c.Request().Context()

	folders, err := s.Store.ListFolders(ctx, &store.FindFolder{})
	if err != nil {
		slog.Error("failed to list folders", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list folders"})
	}

	responses := make([]FolderResponse, 0, len(folders))
	for _, folder := range folders {
		responses = append(responses, folderResponse(folder))
	}
	return c.JSON(http.StatusOK, responses)
}

// CreateFolder creates a folder.
// POST /api/v1/folders
func (s *APIV1Service) CreateFolder(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateFolderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	folder, err := s.Store.CreateFolder(ctx, &store.Folder{Name: req.Name, Position: req.Position})
	if err != nil {
		slog.Error("failed to create folder", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create folder"})
	}
	return c.JSON(http.StatusCreated, folderResponse(folder))
}

// UpdateFolder patches a folder.
// PATCH /api/v1/folders/:uid
func (s *APIV1Service) UpdateFolder(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	folder, err := s.Store.GetFolder(ctx, &store.FindFolder{UID: &uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get folder"})
	}
	if folder == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "folder not found"})
	}

	var req UpdateFolderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	update := &store.UpdateFolder{ID: folder.ID, Name: req.Name, Position: req.Position}
	if err := s.Store.UpdateFolder(ctx, update); err != nil {
		slog.Error("failed to update folder", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update folder"})
	}

	updated, err := s.Store.GetFolder(ctx, &store.FindFolder{ID: &folder.ID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reload folder"})
	}
	return c.JSON(http.StatusOK, folderResponse(updated))
}

// DeleteFolder removes a folder; its items are unfiled and folder-scoped
// category checks pruned.
// DELETE /api/v1/folders/:uid
func (s *APIV1Service) DeleteFolder(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	if err := s.Store.RemoveFolder(ctx, uid); err != nil {
		slog.Warn("failed to remove folder", "uid", uid, "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
