package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/listings/backend/internal/domain/listing"
)

// CreateProjectRequest creates a new project listing
type CreateProjectRequest struct {
	Name             string     `json:"name" binding:"required,min=1,max=200"`
	DeveloperID      uuid.UUID  `json:"developer_id" binding:"required"`
	CityID           uuid.UUID  `json:"city_id" binding:"required"`
	DistrictID       uuid.UUID  `json:"district_id" binding:"required"`
	Address          string     `json:"address" binding:"max=500"`
	ShortDescription string     `json:"short_description" binding:"max=500"`
	Description      string     `json:"description"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	PriceFrom        *int64     `json:"price_from"`
	Currency         string     `json:"currency" binding:"max=10"`
	CompletionDate   *time.Time `json:"completion_date"`
	CoverImageURL    string     `json:"cover_image_url" binding:"max=500"`
	BankIDs          []uuid.UUID `json:"bank_ids"`
}

// UpdateProjectRequest updates an existing project
type UpdateProjectRequest struct {
	Name             *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Address          *string    `json:"address" binding:"omitempty,max=500"`
	ShortDescription *string    `json:"short_description" binding:"omitempty,max=500"`
	Description      *string    `json:"description"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	PriceFrom        *int64     `json:"price_from"`
	Currency         *string    `json:"currency" binding:"omitempty,max=10"`
	CompletionDate   *time.Time `json:"completion_date"`
	CoverImageURL    *string    `json:"cover_image_url" binding:"omitempty,max=500"`
}

// ProjectListQuery narrows public and admin project listings
type ProjectListQuery struct {
	CityID         *uuid.UUID `form:"city_id"`
	DistrictID     *uuid.UUID `form:"district_id"`
	DeveloperID    *uuid.UUID `form:"developer_id"`
	BankID         *uuid.UUID `form:"bank_id"`
	PriceMin       *int64     `form:"price_min"`
	PriceMax       *int64     `form:"price_max"`
	Search         string     `form:"search"`
	Page           int        `form:"page,default=1"`
	PageSize       int        `form:"page_size,default=20"`
	IncludeHidden  bool       `form:"-"`
	IncludeDeleted bool       `form:"-"`
}

// MapQuery is a bounding-box search for the map view
type MapQuery struct {
	MinLat float64 `form:"min_lat" binding:"min=-90,max=90"`
	MaxLat float64 `form:"max_lat" binding:"min=-90,max=90"`
	MinLng float64 `form:"min_lng" binding:"min=-180,max=180"`
	MaxLng float64 `form:"max_lng" binding:"min=-180,max=180"`
	Limit  int     `form:"limit,default=200"`
}

// ProjectResponse is a project in API responses
type ProjectResponse struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	DeveloperID      uuid.UUID      `json:"developer_id"`
	CityID           uuid.UUID      `json:"city_id"`
	DistrictID       uuid.UUID      `json:"district_id"`
	Address          string         `json:"address"`
	ShortDescription string         `json:"short_description"`
	Description      string         `json:"description"`
	Latitude         *float64       `json:"latitude"`
	Longitude        *float64       `json:"longitude"`
	PriceFrom        *int64         `json:"price_from"`
	Currency         string         `json:"currency"`
	CompletionDate   *time.Time     `json:"completion_date"`
	CoverImageURL    string         `json:"cover_image_url"`
	Status           string         `json:"status"`
	Banks            []BankResponse `json:"banks,omitempty"`
	DeletedAt        *time.Time     `json:"deleted_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ToProjectResponse converts a domain project
func ToProjectResponse(p *listing.Project) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID,
		Name:             p.Name,
		DeveloperID:      p.DeveloperID,
		CityID:           p.CityID,
		DistrictID:       p.DistrictID,
		Address:          p.Address,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		PriceFrom:        p.PriceFrom,
		Currency:         p.Currency,
		CompletionDate:   p.CompletionDate,
		CoverImageURL:    p.CoverImageURL,
		Status:           string(p.Status),
		DeletedAt:        p.DeletedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// DeveloperRequest creates or updates a developer
type DeveloperRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"max=500"`
	Phone       string `json:"phone" binding:"max=50"`
	LogoURL     string `json:"logo_url" binding:"max=500"`
}

// DeveloperResponse is a developer in API responses
type DeveloperResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Website     string     `json:"website"`
	Phone       string     `json:"phone"`
	LogoURL     string     `json:"logo_url"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToDeveloperResponse converts a domain developer
func ToDeveloperResponse(d *listing.Developer) DeveloperResponse {
	return DeveloperResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Website:     d.Website,
		Phone:       d.Phone,
		LogoURL:     d.LogoURL,
		DeletedAt:   d.DeletedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// BankRequest creates or updates a bank
type BankRequest struct {
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	LogoURL  string           `json:"logo_url" binding:"max=500"`
	Website  string           `json:"website" binding:"max=500"`
	BaseRate *decimal.Decimal `json:"base_rate"`
}

// BankResponse is a bank in API responses
type BankResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	LogoURL   string          `json:"logo_url"`
	Website   string          `json:"website"`
	BaseRate  decimal.Decimal `json:"base_rate"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToBankResponse converts a domain bank
func ToBankResponse(b *listing.Bank) BankResponse {
	return BankResponse{
		ID:        b.ID,
		Name:      b.Name,
		LogoURL:   b.LogoURL,
		Website:   b.Website,
		BaseRate:  b.BaseRate,
		DeletedAt: b.DeletedAt,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// CityRequest creates a city
type CityRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// DistrictRequest creates a district inside a city
type DistrictRequest struct {
	Name   string    `json:"name" binding:"required,min=1,max=100"`
	CityID uuid.UUID `json:"city_id" binding:"required"`
}

// CityResponse is a city with its districts
type CityResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Districts []DistrictResponse `json:"districts,omitempty"`
}

// DistrictResponse is a district in API responses
type DistrictResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	CityID uuid.UUID `json:"city_id"`
}

// ToCityResponse converts a domain city
func ToCityResponse(c *listing.City) CityResponse {
	return CityResponse{ID: c.ID, Name: c.Name}
}

// ToDistrictResponse converts a domain district
func ToDistrictResponse(d *listing.District) DistrictResponse {
	return DistrictResponse{ID: d.ID, Name: d.Name, CityID: d.CityID}
}
