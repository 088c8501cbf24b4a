package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/internal/filter"
	"github.com/opotrack/opotrack/plugin/markdown"
	"github.com/opotrack/opotrack/store"
)

// TopicResponse is the JSON shape of a topic. Notes are stored as markdown
// and returned with a rendered HTML copy.
type TopicResponse struct {
	UID          string          `json:"uid"`
	Title        string          `json:"title"`
	Note         string          `json:"note"`
	RenderedNote string          `json:"rendered_note,omitempty"`
	Checks       map[string]bool `json:"checks"`
	ReviewCount  int             `json:"review_count"`
	FolderUID    string          `json:"folder_uid,omitempty"`
	CreatedTs    int64           `json:"created_ts"`
	UpdatedTs    int64           `json:"updated_ts"`
}

// CreateTopicRequest is the create payload for a topic.
type CreateTopicRequest struct {
	Title     string          `json:"title"`
	Note      string          `json:"note"`
	Checks    map[string]bool `json:"checks"`
	FolderUID string          `json:"folder_uid"`
}

// UpdateTopicRequest is the patch payload for a topic; nil fields are left
// unchanged.
type UpdateTopicRequest struct {
	Title     *string         `json:"title"`
	Note      *string         `json:"note"`
	Checks    map[string]bool `json:"checks"`
	FolderUID *string         `json:"folder_uid"`
}

func topicResponse(topic *store.Topic) TopicResponse {
	resp := TopicResponse{
		UID:         topic.UID,
		Title:       topic.Title,
		Note:        topic.Note,
		Checks:      topic.Checks,
		ReviewCount: topic.ReviewCount,
		CreatedTs:   topic.CreatedTs,
		UpdatedTs:   topic.UpdatedTs,
	}
	if topic.FolderUID != nil {
		resp.FolderUID = *topic.FolderUID
	}
	if topic.Note != "" {
		rendered, err := markdown.ToHTML(topic.Note)
		if err != nil {
			slog.Warn("failed to render topic note", "topic", topic.UID, "error", err)
		} else {
			resp.RenderedNote = rendered
		}
	}
	return resp
}

// ListTopics returns all topics, optionally restricted to one folder and
// filtered by a CEL expression over title/folder/review_count/started.
// GET /api/v1/topics
func (s *APIV1Service) ListTopics(c echo.Context) error {
	ctx := c.Request().Context()

	find := &store.FindTopic{}
	if folder := c.QueryParam("folder"); folder != "" {
		find.FolderUID = &folder
	}
	topics, err := s.Store.ListTopics(ctx, find)
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list topics"})
	}

	if expression := c.QueryParam("filter"); expression != "" {
		predicate, err := filter.CompileTopicFilter(expression)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		filtered := make([]*store.Topic, 0, len(topics))
		for _, topic := range topics {
			folderUID := ""
			if topic.FolderUID != nil {
				folderUID = *topic.FolderUID
			}
			matched, err := predicate(filter.TopicEnv{
				Title:       topic.Title,
				Folder:      folderUID,
				ReviewCount: topic.ReviewCount,
				Started:     topicStarted(topic),
			})
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			if matched {
				filtered = append(filtered, topic)
			}
		}
		topics = filtered
	}

	responses := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		responses = append(responses, topicResponse(topic))
	}
	return c.JSON(http.StatusOK, responses)
}

// CreateTopic creates a topic.
// POST /api/v1/topics
func (s *APIV1Service) CreateTopic(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateTopicRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}

	create := &store.Topic{
		Title:  req.Title,
		Note:   req.Note,
		Checks: req.Checks,
	}
	if req.FolderUID != "" {
		create.FolderUID = &req.FolderUID
	}
	topic, err := s.Store.CreateTopic(ctx, create)
	if err != nil {
		slog.Error("failed to create topic", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create topic"})
	}
	return c.JSON(http.StatusCreated, topicResponse(topic))
}

// GetTopic returns one topic by uid.
// GET /api/v1/topics/:uid
func (s *APIV1Service) GetTopic(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &uid})
	if err != nil {
		slog.Error("failed to get topic", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get topic"})
	}
	if topic == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "topic not found"})
	}
	return c.JSON(http.StatusOK, topicResponse(topic))
}

// UpdateTopic patches a topic.
// PATCH /api/v1/topics/:uid
func (s *APIV1Service) UpdateTopic(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &uid})
	if err != nil {
		slog.Error("failed to get topic", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get topic"})
	}
	if topic == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "topic not found"})
	}

	var req UpdateTopicRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	update := &store.UpdateTopic{
		ID:        topic.ID,
		Title:     req.Title,
		Note:      req.Note,
		Checks:    req.Checks,
		FolderUID: req.FolderUID,
	}
	if err := s.Store.UpdateTopic(ctx, update); err != nil {
		slog.Error("failed to update topic", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update topic"})
	}

	updated, err := s.Store.GetTopic(ctx, &store.FindTopic{ID: &topic.ID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reload topic"})
	}
	return c.JSON(http.StatusOK, topicResponse(updated))
}

// DeleteTopic removes a topic.
// DELETE /api/v1/topics/:uid
func (s *APIV1Service) DeleteTopic(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	topic, err := s.Store.GetTopic(ctx, &store.FindTopic{UID: &uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get topic"})
	}
	if topic == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "topic not found"})
	}
	if err := s.Store.DeleteTopic(ctx, &store.DeleteTopic{ID: topic.ID}); err != nil {
		slog.Error("failed to delete topic", "uid", uid, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete topic"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleTopicCheck flips one category check on a topic.
// POST /api/v1/topics/:uid/checks/:category/toggle
func (s *APIV1Service) ToggleTopicCheck(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	categoryUID := c.Param("category")

	topic, err := s.Store.ToggleTopicCheck(ctx, uid, categoryUID)
	if err != nil {
		slog.Warn("failed to toggle topic check", "uid", uid, "category", categoryUID, "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, topicResponse(topic))
}

// IncrementTopicReview bumps the topic review counter.
// POST /api/v1/topics/:uid/review/increment
func (s *APIV1Service) IncrementTopicReview(c echo.Context) error {
	return s.adjustReview(c, 1)
}

// DecrementTopicReview lowers the topic review counter, never below zero.
// POST /api/v1/topics/:uid/review/decrement
func (s *APIV1Service) DecrementTopicReview(c echo.Context) error {
	return s.adjustReview(c, -1)
}

func (s *APIV1Service) adjustReview(c echo.Context, delta int) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	topic, err := s.Store.AdjustTopicReviewCount(ctx, uid, delta)
	if err != nil {
		slog.Warn("failed to adjust review count", "uid", uid, "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, topicResponse(topic))
}

func topicStarted(topic *store.Topic) bool {
	for _, v := range topic.Checks {
		if v {
			return true
		}
	}
	return false
}
