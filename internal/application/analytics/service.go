package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/analytics"
	"github.com/listings/backend/internal/domain/listing"
)

// TrackRequest records one public page view
type TrackRequest struct {
	Path       string     `json:"path" binding:"required,max=500"`
	EntityType string     `json:"entity_type" binding:"max=50"`
	EntityID   *uuid.UUID `json:"entity_id"`
}

// DailyCountResponse is a per-day view total
type DailyCountResponse struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// TopProjectResponse is a most-viewed project with its view count
type TopProjectResponse struct {
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Views     int64     `json:"views"`
}

// DashboardResponse is the admin analytics summary
type DashboardResponse struct {
	TotalViews     int64                `json:"total_views"`
	UniqueVisitors int64                `json:"unique_visitors"`
	ViewsByDay     []DailyCountResponse `json:"views_by_day"`
	TopProjects    []TopProjectResponse `json:"top_projects"`
	PeriodDays     int                  `json:"period_days"`
}

// Service ingests page views and aggregates them for the admin dashboard
type Service struct {
	views    analytics.Repository
	projects listing.ProjectRepository
	logger   *zap.Logger
}

// NewService creates an analytics Service
func NewService(views analytics.Repository, projects listing.ProjectRepository, logger *zap.Logger) *Service {
	return &Service{views: views, projects: projects, logger: logger}
}

// Track records a page view. Failures are logged, never surfaced: a
// broken tracker must not affect page delivery.
func (s *Service) Track(ctx context.Context, req TrackRequest, visitorID, ip string) {
	view, err := analytics.NewPageView(req.Path, req.EntityType, req.EntityID, visitorID, ip)
	if err != nil {
		return
	}
	if err := s.views.Save(ctx, view); err != nil {
		s.logger.Warn("Failed to record page view", zap.String("path", req.Path), zap.Error(err))
	}
}

// Dashboard aggregates view stats over the trailing period
func (s *Service) Dashboard(ctx context.Context, days int) (*DashboardResponse, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	total, err := s.views.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	unique, err := s.views.CountUniqueVisitorsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	byDay, err := s.views.CountByDay(ctx, since)
	if err != nil {
		return nil, err
	}
	top, err := s.views.TopEntities(ctx, "project", since, 10)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		TotalViews:     total,
		UniqueVisitors: unique,
		PeriodDays:     days,
		ViewsByDay:     make([]DailyCountResponse, 0, len(byDay)),
		TopProjects:    make([]TopProjectResponse, 0, len(top)),
	}
	for _, d := range byDay {
		resp.ViewsByDay = append(resp.ViewsByDay, DailyCountResponse{
			Day:   d.Day.Format("2006-01-02"),
			Count: d.Count,
		})
	}

	if len(top) > 0 {
		ids := make([]uuid.UUID, 0, len(top))
		for _, e := range top {
			ids = append(ids, e.EntityID)
		}
		projects, err := s.projects.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		names := make(map[uuid.UUID]string, len(projects))
		for i := range projects {
			names[projects[i].ID] = projects[i].Name
		}
		for _, e := range top {
			resp.TopProjects = append(resp.TopProjects, TopProjectResponse{
				ProjectID: e.EntityID,
				Name:      names[e.EntityID],
				Views:     e.Count,
			})
		}
	}

	return resp, nil
}
