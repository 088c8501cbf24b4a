package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/opotrack/opotrack/internal/profile"
	"github.com/opotrack/opotrack/store/test"
)

func newTestServer(t *testing.T) *echo.Echo {
	ctx := context.Background()
	testStore := test.NewTestingStore(ctx, t)
	e := echo.New()
	NewAPIV1Service(&profile.Profile{Mode: "prod"}, testStore).Register(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTopicEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/topics", `{"title": "Linear Algebra", "note": "# Matrices"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created TopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.UID)
	require.Equal(t, "Linear Algebra", created.Title)
	require.Contains(t, created.RenderedNote, "<h1")

	rec = doRequest(e, http.MethodPost, "/api/v1/topics", `{"note": "missing title"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/topics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var topics []TopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topics))
	require.Len(t, topics, 1)

	rec = doRequest(e, http.MethodGet, "/api/v1/topics/"+created.UID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/topics/no-such-topic", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleTopicCheckEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/topics", `{"title": "Thermodynamics"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var topic TopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topic))

	rec = doRequest(e, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 3)

	var reviewedUID string
	for _, category := range categories {
		if category.Name == "reviewed" {
			reviewedUID = category.UID
		}
	}
	require.NotEmpty(t, reviewedUID)

	rec = doRequest(e, http.MethodPost, "/api/v1/topics/"+topic.UID+"/checks/"+reviewedUID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled TopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	require.True(t, toggled.Checks[reviewedUID])
	require.Equal(t, 1, toggled.ReviewCount)

	rec = doRequest(e, http.MethodPost, "/api/v1/topics/"+topic.UID+"/review/increment", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	require.Equal(t, 2, toggled.ReviewCount)
}

func TestTopicFilterEndpoint(t *testing.T) {
	e := newTestServer(t)

	for _, title := range []string{"Calculus I", "Calculus II", "Statistics"} {
		rec := doRequest(e, http.MethodPost, "/api/v1/topics", `{"title": "`+title+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(e, http.MethodGet, "/api/v1/topics?filter="+url.QueryEscape(`title.contains("Calculus")`), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var topics []TopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topics))
	require.Len(t, topics, 2)

	rec = doRequest(e, http.MethodGet, "/api/v1/topics?filter=bogus(", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExamDateEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/settings/exam-date", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ExamDateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.ExamDate)

	rec = doRequest(e, http.MethodPut, "/api/v1/settings/exam-date", `{"exam_date": "2026-11-15"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPut, "/api/v1/settings/exam-date", `{"exam_date": "not-a-date"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/settings/exam-date", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "2026-11-15", resp.ExamDate)

	rec = doRequest(e, http.MethodDelete, "/api/v1/settings/exam-date", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/settings/exam-date", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.ExamDate)
}

func TestPlannerOverviewEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/topics", `{"title": "Mechanics"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/planner/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview PlannerOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	require.NotNil(t, overview.Plan)
	require.Equal(t, 1, overview.Plan.Stats.TotalItems)
	require.NotEmpty(t, overview.WeeklyPlans)
	require.NotEmpty(t, overview.Recommendation)

	rec = doRequest(e, http.MethodGet, "/api/v1/planner/feed.rss", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/rss+xml")
	require.Contains(t, rec.Body.String(), "<rss")
}
