package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
)

// ProjectService handles project listing operations for both the admin
// panel and the public site.
type ProjectService struct {
	projects   listing.ProjectRepository
	developers listing.DeveloperRepository
	cities     listing.CityRepository
	districts  listing.DistrictRepository
	banks      listing.BankRepository
	auditLogs  audit.Repository
	logger     *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects listing.ProjectRepository,
	developers listing.DeveloperRepository,
	cities listing.CityRepository,
	districts listing.DistrictRepository,
	banks listing.BankRepository,
	auditLogs audit.Repository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		developers: developers,
		cities:     cities,
		districts:  districts,
		banks:      banks,
		auditLogs:  auditLogs,
		logger:     logger,
	}
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest, adminID *uuid.UUID, ip string) (*ProjectResponse, error) {
	if _, err := s.developers.FindByID(ctx, req.DeveloperID); err != nil {
		return nil, shared.NewDomainError("INVALID_DEVELOPER", "Developer does not exist")
	}
	if _, err := s.cities.FindByID(ctx, req.CityID); err != nil {
		return nil, shared.NewDomainError("INVALID_CITY", "City does not exist")
	}
	district, err := s.districts.FindByID(ctx, req.DistrictID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DISTRICT", "District does not exist")
	}
	if !district.BelongsTo(req.CityID) {
		return nil, shared.NewDomainError("DISTRICT_CITY_MISMATCH", "District does not belong to the given city")
	}

	project, err := listing.NewProject(req.Name, req.DeveloperID, req.CityID, req.DistrictID)
	if err != nil {
		return nil, err
	}
	if err := project.Update(req.Name, req.Address, req.ShortDescription, req.Description); err != nil {
		return nil, err
	}
	if err := project.SetPrice(req.PriceFrom, req.Currency); err != nil {
		return nil, err
	}
	if req.Latitude != nil && req.Longitude != nil {
		if err := project.SetCoordinates(*req.Latitude, *req.Longitude); err != nil {
			return nil, err
		}
	}
	project.SetCompletionDate(req.CompletionDate)
	project.CoverImageURL = req.CoverImageURL

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	for _, bankID := range req.BankIDs {
		if err := s.projects.LinkBank(ctx, project.ID, bankID); err != nil {
			s.logger.Warn("Failed to link bank to project",
				zap.String("project_id", project.ID.String()),
				zap.String("bank_id", bankID.String()),
				zap.Error(err),
			)
		}
	}

	s.writeAudit(ctx, adminID, audit.ActionCreate, project.ID, "Created project "+project.Name, ip)

	resp := ToProjectResponse(project)
	return &resp, nil
}

// Update updates a project's editable fields
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req UpdateProjectRequest, adminID *uuid.UUID, ip string) (*ProjectResponse, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := project.Name
	if req.Name != nil {
		name = *req.Name
	}
	address := project.Address
	if req.Address != nil {
		address = *req.Address
	}
	short := project.ShortDescription
	if req.ShortDescription != nil {
		short = *req.ShortDescription
	}
	description := project.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := project.Update(name, address, short, description); err != nil {
		return nil, err
	}

	if req.Latitude != nil && req.Longitude != nil {
		if err := project.SetCoordinates(*req.Latitude, *req.Longitude); err != nil {
			return nil, err
		}
	}
	if req.PriceFrom != nil || req.Currency != nil {
		price := project.PriceFrom
		if req.PriceFrom != nil {
			price = req.PriceFrom
		}
		currency := project.Currency
		if req.Currency != nil {
			currency = *req.Currency
		}
		if err := project.SetPrice(price, currency); err != nil {
			return nil, err
		}
	}
	if req.CompletionDate != nil {
		project.SetCompletionDate(req.CompletionDate)
	}
	if req.CoverImageURL != nil {
		project.CoverImageURL = *req.CoverImageURL
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionUpdate, project.ID, "Updated project "+project.Name, ip)

	resp := ToProjectResponse(project)
	return &resp, nil
}

// Delete soft-deletes a project
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID, adminID *uuid.UUID, ip string) error {
	if err := s.projects.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionDelete, id, "Soft-deleted project", ip)
	return nil
}

// Restore clears a project's soft-delete mark
func (s *ProjectService) Restore(ctx context.Context, id uuid.UUID, adminID *uuid.UUID, ip string) error {
	if err := s.projects.Restore(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionRestore, id, "Restored project", ip)
	return nil
}

// SetVisibility toggles a project between active and hidden
func (s *ProjectService) SetVisibility(ctx context.Context, id uuid.UUID, visible bool, adminID *uuid.UUID, ip string) (*ProjectResponse, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if visible {
		err = project.Publish()
	} else {
		err = project.Hide()
	}
	if err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionStatusToggle, id,
		fmt.Sprintf("Set project %s visibility to %v", project.Name, visible), ip)

	resp := ToProjectResponse(project)
	return &resp, nil
}

// Get returns one project by id, including hidden and soft-deleted ones
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(project)
	banks, err := s.projects.FindBanks(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	for i := range banks {
		resp.Banks = append(resp.Banks, ToBankResponse(&banks[i]))
	}
	return &resp, nil
}

// GetPublic returns one visible project by id
func (s *ProjectService) GetPublic(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.IsVisible() {
		return nil, shared.ErrNotFound
	}
	resp := ToProjectResponse(project)
	banks, err := s.projects.FindBanks(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	for i := range banks {
		resp.Banks = append(resp.Banks, ToBankResponse(&banks[i]))
	}
	return &resp, nil
}

// List returns projects matching the query
func (s *ProjectService) List(ctx context.Context, q ProjectListQuery) (*shared.Paginated[ProjectResponse], error) {
	filter := listing.ProjectFilter{
		CityID:         q.CityID,
		DistrictID:     q.DistrictID,
		DeveloperID:    q.DeveloperID,
		BankID:         q.BankID,
		PriceMin:       q.PriceMin,
		PriceMax:       q.PriceMax,
		Search:         q.Search,
		IncludeHidden:  q.IncludeHidden,
		IncludeDeleted: q.IncludeDeleted,
	}
	page, err := s.projects.FindAll(ctx, filter, q.Page, q.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]ProjectResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToProjectResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Map returns visible projects with coordinates inside the bounding box
func (s *ProjectService) Map(ctx context.Context, q MapQuery) ([]ProjectResponse, error) {
	bounds := listing.MapBounds{MinLat: q.MinLat, MaxLat: q.MaxLat, MinLng: q.MinLng, MaxLng: q.MaxLng}
	projects, err := s.projects.FindInBounds(ctx, bounds, q.Limit)
	if err != nil {
		return nil, err
	}
	items := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, ToProjectResponse(&projects[i]))
	}
	return items, nil
}

// LinkBank associates a bank with a project
func (s *ProjectService) LinkBank(ctx context.Context, projectID, bankID uuid.UUID, adminID *uuid.UUID, ip string) error {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.banks.FindByID(ctx, bankID); err != nil {
		return err
	}
	if err := s.projects.LinkBank(ctx, projectID, bankID); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionUpdate, projectID, "Linked bank "+bankID.String(), ip)
	return nil
}

// UnlinkBank removes a bank association
func (s *ProjectService) UnlinkBank(ctx context.Context, projectID, bankID uuid.UUID, adminID *uuid.UUID, ip string) error {
	if err := s.projects.UnlinkBank(ctx, projectID, bankID); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionUpdate, projectID, "Unlinked bank "+bankID.String(), ip)
	return nil
}

func (s *ProjectService) writeAudit(ctx context.Context, adminID *uuid.UUID, action audit.Action, entityID uuid.UUID, details, ip string) {
	entry, err := audit.NewAuditLog(adminID, action, "project", &entityID, details, ip)
	if err != nil {
		return
	}
	if err := s.auditLogs.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit log",
			zap.String("action", string(action)),
			zap.String("entity_id", entityID.String()),
			zap.Error(err),
		)
	}
}
