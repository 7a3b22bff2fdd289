package listing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
)

// LocationService handles the city and district reference tables
type LocationService struct {
	cities    listing.CityRepository
	districts listing.DistrictRepository
	auditLogs audit.Repository
	logger    *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(cities listing.CityRepository, districts listing.DistrictRepository, auditLogs audit.Repository, logger *zap.Logger) *LocationService {
	return &LocationService{cities: cities, districts: districts, auditLogs: auditLogs, logger: logger}
}

// CreateCity creates a city
func (s *LocationService) CreateCity(ctx context.Context, req CityRequest, adminID *uuid.UUID, ip string) (*CityResponse, error) {
	if _, err := s.cities.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "City with this name already exists")
	}

	city, err := listing.NewCity(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.cities.Save(ctx, city); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, "city", city.ID, "Created city "+city.Name, ip)

	resp := ToCityResponse(city)
	return &resp, nil
}

// CreateDistrict creates a district inside an existing city
func (s *LocationService) CreateDistrict(ctx context.Context, req DistrictRequest, adminID *uuid.UUID, ip string) (*DistrictResponse, error) {
	if _, err := s.cities.FindByID(ctx, req.CityID); err != nil {
		return nil, shared.NewDomainError("INVALID_CITY", "City does not exist")
	}

	district, err := listing.NewDistrict(req.Name, req.CityID)
	if err != nil {
		return nil, err
	}
	if err := s.districts.Save(ctx, district); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, "district", district.ID, "Created district "+district.Name, ip)

	resp := ToDistrictResponse(district)
	return &resp, nil
}

// ListCities returns every city with its districts
func (s *LocationService) ListCities(ctx context.Context) ([]CityResponse, error) {
	cities, err := s.cities.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CityResponse, 0, len(cities))
	for _, city := range cities {
		resp := ToCityResponse(city)
		districts, err := s.districts.FindByCity(ctx, city.ID)
		if err != nil {
			return nil, err
		}
		for _, d := range districts {
			resp.Districts = append(resp.Districts, ToDistrictResponse(d))
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListDistricts returns the districts of one city
func (s *LocationService) ListDistricts(ctx context.Context, cityID uuid.UUID) ([]DistrictResponse, error) {
	districts, err := s.districts.FindByCity(ctx, cityID)
	if err != nil {
		return nil, err
	}
	out := make([]DistrictResponse, 0, len(districts))
	for _, d := range districts {
		out = append(out, ToDistrictResponse(d))
	}
	return out, nil
}

func (s *LocationService) writeAudit(ctx context.Context, adminID *uuid.UUID, entityType string, entityID uuid.UUID, details, ip string) {
	entry, err := audit.NewAuditLog(adminID, audit.ActionCreate, entityType, &entityID, details, ip)
	if err != nil {
		return
	}
	if err := s.auditLogs.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit log",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err),
		)
	}
}
