package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/store"
)

// CategoryResponse is the JSON shape of a completion category.
type CategoryResponse struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	FolderUID string `json:"folder_uid,omitempty"`
}

// CreateCategoryRequest is the create payload for a category.
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	Position  int    `json:"position"`
	FolderUID string `json:"folder_uid"`
}

// UpdateCategoryRequest is the patch payload for a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

func categoryResponse(category *store.Category) CategoryResponse {
	resp := CategoryResponse{
		UID:      category.UID,
		Name:     category.Name,
		Position: category.Position,
	}
	if category.FolderUID != nil {
		resp.FolderUID = *category.FolderUID
	}
	return resp
}

// ListCategories returns the effective category set: global categories, plus
// a folder's scoped ones when ?folder= is given.
// GET /api/v1/categories
func (s *APIV1Service) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var folderUID *string
	if folder := c.QueryParam("folder"); folder != "" {
		folderUID = &folder
	}
	categories, err := s.Store.EffectiveCategories(ctx, folderUID)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list categories"})
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, categoryResponse(category))
	}
	return c.JSON(http.StatusOK, responses)
}

// CreateCategory creates a global or folder-scoped category.
// POST /api/v1/categories
func (s *APIV1Service) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	create := &store.Category{Name: req.Name, Position: req.Position}
	if req.FolderUID != "" {
		folder, err := s.Store.GetFolder(ctx, &store.FindFolder{UID: &req.FolderUID})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get folder"})
		}
		if folder == nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "folder not found"})
		}
		create.FolderUID = &req.FolderUID
	}
	category, err := s.Store.CreateCategory(ctx, create)
	if err != nil {
		slog.Error("failed to create category", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create category"})
	}
	return c.JSON(http.StatusCreated, categoryResponse(category))
}

// UpdateCategory patches a category.
// PATCH /api/v1/categories/:uid
func (s *APIV1Service) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	category, err := s.Store.GetCategory(ctx, &store.FindCategory{UID: &uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get category"})
	}
	if category == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "category not found"})
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	update := &store.UpdateCategory{ID: category.ID, Name: req.Name, Position: req.Position}
	if err := s.Store.UpdateCategory(ctx, update); err != nil {
		slog.Error("failed to update category", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update category"})
	}

	updated, err := s.Store.GetCategory(ctx, &store.FindCategory{ID: &category.ID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reload category"})
	}
	return c.JSON(http.StatusOK, categoryResponse(updated))
}

// DeleteCategory removes a category.
// DELETE /api/v1/categories/:uid
func (s *APIV1Service) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	category, err := s.Store.GetCategory(ctx, &store.FindCategory{UID: &uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get category"})
	}
	if category == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "category not found"})
	}
	if err := s.Store.DeleteCategory(ctx, &store.DeleteCategory{ID: category.ID}); err != nil {
		slog.Error("failed to delete category", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete category"})
	}
	return c.NoContent(http.StatusNoContent)
}
