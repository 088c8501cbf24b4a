package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/internal/profile"
	"github.com/opotrack/opotrack/store"
)

// APIV1Service serves the JSON API consumed by the UI.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile: profile,
		Store:   store,
	}
}

// Register mounts all /api/v1 routes on the echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	g := echoServer.Group("/api/v1")

	// Topics
	g.GET("/topics", s.ListTopics)
	g.POST("/topics", s.CreateTopic)
	g.GET("/topics/:uid", s.GetTopic)
	g.PATCH("/topics/:uid", s.UpdateTopic)
	g.DELETE("/topics/:uid", s.DeleteTopic)
	g.POST("/topics/:uid/checks/:category/toggle", s.ToggleTopicCheck)
	g.POST("/topics/:uid/review/increment", s.IncrementTopicReview)
	g.POST("/topics/:uid/review/decrement", s.DecrementTopicReview)

	// Bulletins
	g.GET("/bulletins", s.ListBulletins)
	g.POST("/bulletins", s.CreateBulletin)
	g.GET("/bulletins/:uid", s.GetBulletin)
	g.PATCH("/bulletins/:uid", s.UpdateBulletin)
	g.DELETE("/bulletins/:uid", s.DeleteBulletin)
	g.POST("/bulletins/:uid/exercises/:num/toggle", s.ToggleBulletinExercise)

	// Categories
	g.GET("/categories", s.ListCategories)
	g.POST("/categories", s.CreateCategory)
	g.PATCH("/categories/:uid", s.UpdateCategory)
	g.DELETE("/categories/:uid", s.DeleteCategory)

	// Folders
	g.GET("/folders", s.ListFolders)
	g.POST("/folders", s.CreateFolder)
	g.PATCH("/folders/:uid", s.UpdateFolder)
	g.DELETE("/folders/:uid", s.DeleteFolder)
	g.GET("/folders/:uid/progress", s.GetFolderProgress)

	// Progress
	g.GET("/progress", s.GetProgress)

	// Planner
	g.GET("/planner/plan", s.GetStudyPlan)
	g.GET("/planner/pattern", s.GetStudyPattern)
	g.GET("/planner/prediction", s.GetPrediction)
	g.GET("/planner/weekly", s.GetWeeklyPlan)
	g.GET("/planner/recommendations", s.GetRecommendations)
	g.GET("/planner/overview", s.GetPlannerOverview)
	g.GET("/planner/feed.rss", s.GetWeeklyPlanFeed)

	// Observability
	g.GET("/metrics", s.GetMetrics)

	// Settings
	g.GET("/settings/exam-date", s.GetExamDate)
	g.PUT("/settings/exam-date", s.SetExamDate)
	g.DELETE("/settings/exam-date", s.DeleteExamDate)
}
