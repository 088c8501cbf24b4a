package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/opotrack/opotrack/plugin/planner"
)

// GetWeeklyPlanFeed renders the weekly plan as an RSS feed, one item per
// study week, so the plan can be followed from a feed reader.
// GET /api/v1/planner/feed.rss
func (s *APIV1Service) GetWeeklyPlanFeed(c echo.Context) error {
	snapshot, err := s.loadPlannerSnapshot(c.Request().Context())
	if err != nil {
		slog.Error("failed to load planner data", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load planner data"})
	}

	now := time.Now()
	plans := planner.GenerateWeeklyPlan(snapshot.Topics, snapshot.Bulletins, snapshot.Categories, snapshot.ExamDate, 0, now)

	baseURL := c.Scheme() + "://" + c.Request().Host
	feed := &feeds.Feed{
		Title:       "Study plan",
		Link:        &feeds.Link{Href: baseURL + "/api/v1/planner/weekly"},
		Description: "Week-by-week study schedule",
		Created:     now,
	}
	for _, plan := range plans {
		feed.Items = append(feed.Items, &feeds.Item{
			Title: fmt.Sprintf("Week %d: %s to %s",
				plan.WeekNumber,
				plan.StartDate.Format("Jan 2"),
				plan.EndDate.Format("Jan 2")),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/api/v1/planner/weekly#week-%d", baseURL, plan.WeekNumber)},
			Description: weekFeedDescription(plan),
			Created:     plan.StartDate,
			Id:          fmt.Sprintf("%s/planner/week/%d/%s", baseURL, plan.WeekNumber, plan.StartDate.Format("2006-01-02")),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		slog.Error("failed to render feed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to render feed"})
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func weekFeedDescription(plan planner.WeeklyPlan) string {
	if len(plan.Items) == 0 {
		return "No items scheduled."
	}
	var b strings.Builder
	for _, item := range plan.Items {
		label := string(item.Type)
		if item.IsReview {
			label = "review"
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", item.Title, label, item.Reason)
	}
	return b.String()
}
