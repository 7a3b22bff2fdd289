package listing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
)

// DeveloperService handles developer directory operations
type DeveloperService struct {
	developers listing.DeveloperRepository
	auditLogs  audit.Repository
	logger     *zap.Logger
}

// NewDeveloperService creates a new DeveloperService
func NewDeveloperService(developers listing.DeveloperRepository, auditLogs audit.Repository, logger *zap.Logger) *DeveloperService {
	return &DeveloperService{developers: developers, auditLogs: auditLogs, logger: logger}
}

// Create creates a developer; names are unique among non-deleted rows
func (s *DeveloperService) Create(ctx context.Context, req DeveloperRequest, adminID *uuid.UUID, ip string) (*DeveloperResponse, error) {
	if _, err := s.developers.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Developer with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	developer, err := listing.NewDeveloper(req.Name)
	if err != nil {
		return nil, err
	}
	if err := developer.Update(req.Name, req.Description, req.Website, req.Phone, req.LogoURL); err != nil {
		return nil, err
	}
	if err := s.developers.Save(ctx, developer); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionCreate, developer.ID, "Created developer "+developer.Name, ip)

	resp := ToDeveloperResponse(developer)
	return &resp, nil
}

// Update updates a developer
func (s *DeveloperService) Update(ctx context.Context, id uuid.UUID, req DeveloperRequest, adminID *uuid.UUID, ip string) (*DeveloperResponse, error) {
	developer, err := s.developers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := developer.Update(req.Name, req.Description, req.Website, req.Phone, req.LogoURL); err != nil {
		return nil, err
	}
	if err := s.developers.Save(ctx, developer); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionUpdate, id, "Updated developer "+developer.Name, ip)

	resp := ToDeveloperResponse(developer)
	return &resp, nil
}

// Delete soft-deletes a developer
func (s *DeveloperService) Delete(ctx context.Context, id uuid.UUID, adminID *uuid.UUID, ip string) error {
	if err := s.developers.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionDelete, id, "Soft-deleted developer", ip)
	return nil
}

// Restore clears a developer's soft-delete mark
func (s *DeveloperService) Restore(ctx context.Context, id uuid.UUID, adminID *uuid.UUID, ip string) error {
	if err := s.developers.Restore(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionRestore, id, "Restored developer", ip)
	return nil
}

// Get returns one developer by id
func (s *DeveloperService) Get(ctx context.Context, id uuid.UUID) (*DeveloperResponse, error) {
	developer, err := s.developers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDeveloperResponse(developer)
	return &resp, nil
}

// List returns developers, optionally including soft-deleted rows
func (s *DeveloperService) List(ctx context.Context, filter shared.Filter, includeDeleted bool) (*shared.Paginated[DeveloperResponse], error) {
	page, err := s.developers.FindAll(ctx, filter, includeDeleted)
	if err != nil {
		return nil, err
	}
	items := make([]DeveloperResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToDeveloperResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

func (s *DeveloperService) writeAudit(ctx context.Context, adminID *uuid.UUID, action audit.Action, entityID uuid.UUID, details, ip string) {
	entry, err := audit.NewAuditLog(adminID, action, "developer", &entityID, details, ip)
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
