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

// BankService handles mortgage lender directory operations
type BankService struct {
	banks     listing.BankRepository
	auditLogs audit.Repository
	logger    *zap.Logger
}

// NewBankService creates a new BankService
func NewBankService(banks listing.BankRepository, auditLogs audit.Repository, logger *zap.Logger) *BankService {
	return &BankService{banks: banks, auditLogs: auditLogs, logger: logger}
}

// Create creates a bank; names are unique among non-deleted rows
func (s *BankService) Create(ctx context.Context, req BankRequest, adminID *uuid.UUID, ip string) (*BankResponse, error) {
	if _, err := s.banks.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bank with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	bank, err := listing.NewBank(req.Name)
	if err != nil {
		return nil, err
	}
	if err := bank.Update(req.Name, req.LogoURL, req.Website); err != nil {
		return nil, err
	}
	if req.BaseRate != nil {
		if err := bank.SetBaseRate(*req.BaseRate); err != nil {
			return nil, err
		}
	}
	if err := s.banks.Save(ctx, bank); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionCreate, bank.ID, "Created bank "+bank.Name, ip)

	resp := ToBankResponse(bank)
	return &resp, nil
}

// Update updates a bank
func (s *BankService) Update(ctx context.Context, id uuid.UUID, req BankRequest, adminID *uuid.UUID, ip string) (*BankResponse, error) {
	bank, err := s.banks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bank.Update(req.Name, req.LogoURL, req.Website); err != nil {
		return nil, err
	}
	if req.BaseRate != nil {
		if err := bank.SetBaseRate(*req.BaseRate); err != nil {
			return nil, err
		}
	}
	if err := s.banks.Save(ctx, bank); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionUpdate, id, "Updated bank "+bank.Name, ip)

	resp := ToBankResponse(bank)
	return &resp, nil
}

// Delete soft-deletes a bank
func (s *BankService) Delete(ctx context.Context, id uuid.UUID, adminID *uuid.UUID, ip string) error {
	if err := s.banks.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionDelete, id, "Soft-deleted bank", ip)
	return nil
}

// Restore clears a bank's soft-delete mark
func (s *BankService) Restore(ctx context.Context, id uuid.UUID, adminID *uuid.UUID, ip string) error {
	if err := s.banks.Restore(ctx, id); err != nil {
		return err
	}
	s.writeAudit(ctx, adminID, audit.ActionRestore, id, "Restored bank", ip)
	return nil
}

// Get returns one bank by id
func (s *BankService) Get(ctx context.Context, id uuid.UUID) (*BankResponse, error) {
	bank, err := s.banks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBankResponse(bank)
	return &resp, nil
}

// List returns banks, optionally including soft-deleted rows
func (s *BankService) List(ctx context.Context, filter shared.Filter, includeDeleted bool) (*shared.Paginated[BankResponse], error) {
	page, err := s.banks.FindAll(ctx, filter, includeDeleted)
	if err != nil {
		return nil, err
	}
	items := make([]BankResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToBankResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// ListActive returns every non-deleted bank, for public dropdowns
func (s *BankService) ListActive(ctx context.Context) ([]BankResponse, error) {
	banks, err := s.banks.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]BankResponse, 0, len(banks))
	for i := range banks {
		items = append(items, ToBankResponse(&banks[i]))
	}
	return items, nil
}

func (s *BankService) writeAudit(ctx context.Context, adminID *uuid.UUID, action audit.Action, entityID uuid.UUID, details, ip string) {
	entry, err := audit.NewAuditLog(adminID, action, "bank", &entityID, details, ip)
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
