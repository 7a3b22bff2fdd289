package listing

import (
	"context"

	"github.com/google/uuid"

	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
)

// FavoriteService handles anonymous visitor favorites
type FavoriteService struct {
	favorites listing.FavoriteRepository
	projects  listing.ProjectRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favorites listing.FavoriteRepository, projects listing.ProjectRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, projects: projects}
}

// Add saves a project to a visitor's favorites. Adding an existing
// favorite is a no-op.
func (s *FavoriteService) Add(ctx context.Context, visitorID string, projectID uuid.UUID) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.IsVisible() {
		return shared.ErrNotFound
	}

	favorite, err := listing.NewFavorite(visitorID, projectID)
	if err != nil {
		return err
	}
	return s.favorites.Save(ctx, favorite)
}

// Remove deletes a project from a visitor's favorites
func (s *FavoriteService) Remove(ctx context.Context, visitorID string, projectID uuid.UUID) error {
	return s.favorites.Delete(ctx, visitorID, projectID)
}

// List returns the visitor's favorited projects, skipping any that have
// since been hidden or deleted.
func (s *FavoriteService) List(ctx context.Context, visitorID string) ([]ProjectResponse, error) {
	favorites, err := s.favorites.FindByVisitor(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []ProjectResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ProjectID)
	}
	projects, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		if !projects[i].IsVisible() {
			continue
		}
		out = append(out, ToProjectResponse(&projects[i]))
	}
	return out, nil
}

// Count returns how many visitors favorited a project
func (s *FavoriteService) Count(ctx context.Context, projectID uuid.UUID) (int64, error) {
	return s.favorites.CountByProject(ctx, projectID)
}
