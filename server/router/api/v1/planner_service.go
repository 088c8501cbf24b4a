package v1

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/opotrack/opotrack/plugin/planner"
	"github.com/opotrack/opotrack/store"
)

// plannerSnapshot is the immutable input set the planning engine works on.
type plannerSnapshot struct {
	Topics     []planner.Topic
	Bulletins  []planner.Bulletin
	Categories []planner.Category
	ExamDate   *time.Time
}

// PlannerOverview bundles every planner output in one response so the
// dashboard needs a single request.
type PlannerOverview struct {
	Plan            *planner.StudyPlan            `json:"plan"`
	Pattern         planner.StudyPattern          `json:"pattern"`
	Prediction      planner.PerformancePrediction `json:"prediction"`
	WeeklyPlans     []planner.WeeklyPlan          `json:"weekly_plans"`
	Recommendations []planner.Recommendation      `json:"recommendations"`
	Recommendation  string                        `json:"recommendation"`
}

func plannerTopic(topic *store.Topic) planner.Topic {
	folderUID := ""
	if topic.FolderUID != nil {
		folderUID = *topic.FolderUID
	}
	return planner.Topic{
		UID:         topic.UID,
		Title:       topic.Title,
		Checks:      topic.Checks,
		UpdatedAt:   topic.UpdatedAt(),
		ReviewCount: topic.ReviewCount,
		FolderUID:   folderUID,
	}
}

func plannerBulletin(bulletin *store.Bulletin) planner.Bulletin {
	folderUID := ""
	if bulletin.FolderUID != nil {
		folderUID = *bulletin.FolderUID
	}
	return planner.Bulletin{
		UID:                bulletin.UID,
		Title:              bulletin.Title,
		ExerciseCount:      bulletin.ExerciseCount,
		CompletedExercises: bulletin.CompletedExercises,
		UpdatedAt:          bulletin.UpdatedAt(),
		FolderUID:          folderUID,
	}
}

func plannerCategory(category *store.Category) planner.Category {
	return planner.Category{UID: category.UID, Name: category.Name}
}

// loadPlannerSnapshot gathers topics, bulletins, the global category set and
// the exam date concurrently.
func (s *APIV1Service) loadPlannerSnapshot(ctx context.Context) (*plannerSnapshot, error) {
	snapshot := &plannerSnapshot{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		topics, err := s.Store.ListTopics(groupCtx, &store.FindTopic{})
		if err != nil {
			return err
		}
		snapshot.Topics = make([]planner.Topic, 0, len(topics))
		for _, topic := range topics {
			snapshot.Topics = append(snapshot.Topics, plannerTopic(topic))
		}
		return nil
	})
	group.Go(func() error {
		bulletins, err := s.Store.ListBulletins(groupCtx, &store.FindBulletin{})
		if err != nil {
			return err
		}
		snapshot.Bulletins = make([]planner.Bulletin, 0, len(bulletins))
		for _, bulletin := range bulletins {
			snapshot.Bulletins = append(snapshot.Bulletins, plannerBulletin(bulletin))
		}
		return nil
	})
	group.Go(func() error {
		categories, err := s.Store.ListCategories(groupCtx, &store.FindCategory{GlobalOnly: true})
		if err != nil {
			return err
		}
		snapshot.Categories = make([]planner.Category, 0, len(categories))
		for _, category := range categories {
			snapshot.Categories = append(snapshot.Categories, plannerCategory(category))
		}
		return nil
	})
	group.Go(func() error {
		examDate, err := s.Store.GetExamDate(groupCtx)
		if err != nil {
			return err
		}
		snapshot.ExamDate = examDate
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetStudyPlan returns the prioritized study plan.
// GET /api/v1/planner/plan
func (s *APIV1Service) GetStudyPlan(c echo.Context) error {
	snapshot, err := s.loadPlannerSnapshot(c.Request().Context())
	if err != nil {
		slog.Error("failed to load planner data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load planner data"})
	}
	plan := planner.GenerateStudyPlan(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, time.Now())
	return c.JSON(http.StatusOK, plan)
}

// GetStudyPattern returns the analyzed study rhythm.
// GET /api/v1/planner/pattern
func (s *APIV1Service) GetStudyPattern(c echo.Context) error {
	snapshot, err := s.loadPlannerSnapshot(c.Request().Context())
	if err != nil {
		slog.Error("failed to load planner data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load planner data"})
	}
	pattern := planner.AnalyzeStudyPatterns(snapshot.Topics, snapshot.Bulletins, time.Now())
	return c.JSON(http.StatusOK, pattern)
}

// GetPrediction returns the exam-readiness forecast.
// GET /api/v1/planner/prediction
func (s *APIV1Service) GetPrediction(c echo.Context) error {
	snapshot, err := s.loadPlannerSnapshot(c.Request().Context())
	if err != nil {
		slog.Error("failed to load planner data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load planner data"})
	}
	now := time.Now()
	pattern := planner.AnalyzeStudyPatterns(snapshot.Topics, snapshot.Bulletins, now)
	prediction := planner.PredictPerformance(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, &pattern, now)
	return c.JSON(http.StatusOK, prediction)
}

// GetWeeklyPlan returns the week-by-week calendar; ?weeks=N overrides the
// generated horizon when no exam date is set.
// GET /api/v1/planner/weekly
func (s *APIV1Service) GetWeeklyPlan(c echo.Context) error {
	weeks := 0
	if raw := c.QueryParam("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "weeks must be a positive integer"})
		}
		weeks = parsed
	}
	snapshot, err := s.loadPlannerSnapshot(c.Request().Context())
	if err != nil {
		slog.Error("failed to load planner data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load planner data"})
	}
	plans := planner.GenerateWeeklyPlan(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, weeks, time.Now())
	return c.JSON(http.StatusOK, plans)
}

// GetRecommendations returns up to five rule-based advisories.
// GET /api/v1/planner/recommendations
func (s *APIV1Service) GetRecommendations(c echo.Context) error {
	snapshot, err := s.loadPlannerSnapshot(c.Request().Context())
	if err != nil {
		slog.Error("failed to load planner data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load planner data"})
	}
	now := time.Now()
	pattern := planner.AnalyzeStudyPatterns(snapshot.Topics, snapshot.Bulletins, now)
	prediction := planner.PredictPerformance(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, &pattern, now)
	recommendations := planner.GenerateRecommendations(snapshot.Topics, snapshot.Bulletins, pattern, prediction, snapshot.ExamDate, now)
	return c.JSON(http.StatusOK, recommendations)
}

// GetPlannerOverview runs every planner computation over one snapshot.
// GET /api/v1/planner/overview
func (s *APIV1Service) GetPlannerOverview(c echo.Context) error {
	snapshot, err := s.loadPlannerSnapshot(c.Request().Context())
	if err != nil {
		slog.Error("failed to load planner data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load planner data"})
	}

	now := time.Now()
	overview := PlannerOverview{}
	overview.Plan = planner.GenerateStudyPlan(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, now)
	overview.Pattern = planner.AnalyzeStudyPatterns(snapshot.Topics, snapshot.Bulletins, now)
	overview.Prediction = planner.PredictPerformance(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, &overview.Pattern, now)
	overview.WeeklyPlans = planner.GenerateWeeklyPlan(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, 0, now)
	overview.Recommendations = planner.GenerateRecommendations(snapshot.Topics, snapshot.Bulletins, overview.Pattern, overview.Prediction, snapshot.ExamDate, now)
	overview.Recommendation = planner.StudyRecommendation(overview.Plan)
	return c.JSON(http.StatusOK, overview)
}
