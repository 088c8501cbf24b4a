package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/plugin/markdown"
	"github.com/opotrack/opotrack/store"
)

// BulletinResponse is the JSON shape of an exercise bulletin.
type BulletinResponse struct {
	UID                string       `json:"uid"`
	Title              string       `json:"title"`
	Note               string       `json:"note"`
	RenderedNote       string       `json:"rendered_note,omitempty"`
	ExerciseCount      int          `json:"exercise_count"`
	CompletedExercises map[int]bool `json:"completed_exercises"`
	FolderUID          string       `json:"folder_uid,omitempty"`
	CreatedTs          int64        `json:"created_ts"`
	UpdatedTs          int64        `json:"updated_ts"`
}

// CreateBulletinRequest is the create payload for a bulletin.
type CreateBulletinRequest struct {
	Title         string `json:"title"`
	Note          string `json:"note"`
	ExerciseCount int    `json:"exercise_count"`
	FolderUID     string `json:"folder_uid"`
}

// UpdateBulletinRequest is the patch payload for a bulletin.
type UpdateBulletinRequest struct {
	Title         *string `json:"title"`
	Note          *string `json:"note"`
	ExerciseCount *int    `json:"exercise_count"`
	FolderUID     *string `json:"folder_uid"`
}

func bulletinResponse(bulletin *store.Bulletin) BulletinResponse {
	resp := BulletinResponse{
		UID:                bulletin.UID,
		Title:              bulletin.Title,
		Note:               bulletin.Note,
		ExerciseCount:      bulletin.ExerciseCount,
		CompletedExercises: bulletin.CompletedExercises,
		CreatedTs:          bulletin.CreatedTs,
		UpdatedTs:          bulletin.UpdatedTs,
	}
	if bulletin.FolderUID != nil {
		resp.FolderUID = *bulletin.FolderUID
	}
	if bulletin.Note != "" {
		rendered, err := markdown.ToHTML(bulletin.Note)
		if err != nil {
			slog.Warn("failed to render bulletin note", "bulletin", bulletin.UID, "error", err)
		} else {
			resp.RenderedNote = rendered
		}
	}
	return resp
}

// ListBulletins returns all bulletins, optionally restricted to one folder.
// GET /api/v1/bulletins
func (s *APIV1Service) ListBulletins(c echo.Context) error {
	ctx := c.Request().Context()

	find := &store.FindBulletin{}
	if folder := c.QueryParam("folder"); folder != "" {
		find.FolderUID = &folder
	}
	bulletins, err := s.Store.ListBulletins(ctx, find)
	if err != nil {
		slog.Error("failed to list bulletins", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list bulletins"})
	}

	responses := make([]BulletinResponse, 0, len(bulletins))
	for _, bulletin := range bulletins {
		responses = append(responses, bulletinResponse(bulletin))
	}
	return c.JSON(http.StatusOK, responses)
}

// CreateBulletin creates a bulletin.
// POST /api/v1/bulletins
func (s *APIV1Service) CreateBulletin(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateBulletinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}
	if req.ExerciseCount < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "exercise_count must be positive"})
	}

	create := &store.Bulletin{
		Title:         req.Title,
		Note:          req.Note,
		ExerciseCount: req.ExerciseCount,
	}
	if req.FolderUID != "" {
		create.FolderUID = &req.FolderUID
	}
	bulletin, err := s.Store.CreateBulletin(ctx, create)
	if err != nil {
		slog.Error("failed to create bulletin", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create bulletin"})
	}
	return c.JSON(http.StatusCreated, bulletinResponse(bulletin))
}

// GetBulletin returns one bulletin by uid.
// GET /api/v1/bulletins/:uid
func (s *APIV1Service) GetBulletin(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	bulletin, err := s.Store.GetBulletin(ctx, &store.FindBulletin{UID: &uid})
	if err != nil {
		slog.Error("failed to get bulletin", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get bulletin"})
	}
	if bulletin == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "bulletin not found"})
	}
	return c.JSON(http.StatusOK, bulletinResponse(bulletin))
}

// UpdateBulletin patches a bulletin.
// PATCH /api/v1/bulletins/:uid
func (s *APIV1Service) UpdateBulletin(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	bulletin, err := s.Store.GetBulletin(ctx, &store.FindBulletin{UID: &uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get bulletin"})
	}
	if bulletin == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "bulletin not found"})
	}

	var req UpdateBulletinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.ExerciseCount != nil && *req.ExerciseCount < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "exercise_count must be positive"})
	}
	update := &store.UpdateBulletin{
		ID:            bulletin.ID,
		Title:         req.Title,
		Note:          req.Note,
		ExerciseCount: req.ExerciseCount,
		FolderUID:     req.FolderUID,
	}
	if err := s.Store.UpdateBulletin(ctx, update); err != nil {
		slog.Error("failed to update bulletin", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update bulletin"})
	}

	updated, err := s.Store.GetBulletin(ctx, &store.FindBulletin{ID: &bulletin.ID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reload bulletin"})
	}
	return c.JSON(http.StatusOK, bulletinResponse(updated))
}

// DeleteBulletin removes a bulletin.
// DELETE /api/v1/bulletins/:uid
func (s *APIV1Service) DeleteBulletin(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	bulletin, err := s.Store.GetBulletin(ctx, &store.FindBulletin{UID: &uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get bulletin"})
	}
	if bulletin == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "bulletin not found"})
	}
	if err := s.Store.DeleteBulletin(ctx, &store.DeleteBulletin{ID: bulletin.ID}); err != nil {
		slog.Error("failed to delete bulletin", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete bulletin"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleBulletinExercise flips completion of one numbered exercise.
// POST /api/v1/bulletins/:uid/exercises/:num/toggle
func (s *APIV1Service) ToggleBulletinExercise(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	number, err := strconv.Atoi(c.Param("num"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid exercise number"})
	}
	bulletin, err := s.Store.ToggleBulletinExercise(ctx, uid, number)
	if err != nil {
		slog.Warn("failed to toggle exercise", "uid", uid, "number", number, "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, bulletinResponse(bulletin))
}
