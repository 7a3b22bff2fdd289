package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for the Project aggregate
type ProjectModel struct {
	AuditedAggregateModel
	SoftDeleteModel
	Name             string     `gorm:"type:varchar(200);not null;index"`
	DeveloperID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CityID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	DistrictID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Address          string     `gorm:"type:text"`
	ShortDescription string     `gorm:"type:varchar(500)"`
	Description      string     `gorm:"type:text"`
	Latitude         *float64   `gorm:"type:double precision"`
	Longitude        *float64   `gorm:"type:double precision"`
	PriceFrom        *int64     `gorm:""`
	Currency         string     `gorm:"type:varchar(10);not null;default:'USD'"`
	CompletionDate   *time.Time `gorm:"type:date"`
	CoverImageURL    string     `gorm:"type:varchar(500)"`
	Status           string     `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project
func (m *ProjectModel) ToDomain() *listing.Project {
	return &listing.Project{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		SoftDeletable:        m.ToDomainSoftDeletable(),
		Name:                 m.Name,
		DeveloperID:          m.DeveloperID,
		CityID:               m.CityID,
		DistrictID:           m.DistrictID,
		Address:              m.Address,
		ShortDescription:     m.ShortDescription,
		Description:          m.Description,
		Latitude:             m.Latitude,
		Longitude:            m.Longitude,
		PriceFrom:            m.PriceFrom,
		Currency:             m.Currency,
		CompletionDate:       m.CompletionDate,
		CoverImageURL:        m.CoverImageURL,
		Status:               listing.ProjectStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Project
func (m *ProjectModel) FromDomain(p *listing.Project) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.FromDomainSoftDeletable(p.SoftDeletable)
	m.Name = p.Name
	m.DeveloperID = p.DeveloperID
	m.CityID = p.CityID
	m.DistrictID = p.DistrictID
	m.Address = p.Address
	m.ShortDescription = p.ShortDescription
	m.Description = p.Description
	m.Latitude = p.Latitude
	m.Longitude = p.Longitude
	m.PriceFrom = p.PriceFrom
	m.Currency = p.Currency
	m.CompletionDate = p.CompletionDate
	m.CoverImageURL = p.CoverImageURL
	m.Status = string(p.Status)
}

// ProjectBankModel links a project to an associated mortgage bank
type ProjectBankModel struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BankID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProjectBankModel) TableName() string {
	return "project_banks"
}

// DeveloperModel is the persistence model for the Developer aggregate
type DeveloperModel struct {
	AuditedAggregateModel
	SoftDeleteModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Website     string `gorm:"type:varchar(500)"`
	Phone       string `gorm:"type:varchar(50)"`
	LogoURL     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DeveloperModel) TableName() string {
	return "developers"
}

// ToDomain converts the persistence model to a domain Developer
func (m *DeveloperModel) ToDomain() *listing.Developer {
	return &listing.Developer{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		SoftDeletable:        m.ToDomainSoftDeletable(),
		Name:                 m.Name,
		Description:          m.Description,
		Website:              m.Website,
		Phone:                m.Phone,
		LogoURL:              m.LogoURL,
	}
}

// FromDomain populates the persistence model from a domain Developer
func (m *DeveloperModel) FromDomain(d *listing.Developer) {
	m.FromDomainAuditedAggregateRoot(d.AuditedAggregateRoot)
	m.FromDomainSoftDeletable(d.SoftDeletable)
	m.Name = d.Name
	m.Description = d.Description
	m.Website = d.Website
	m.Phone = d.Phone
	m.LogoURL = d.LogoURL
}

// BankModel is the persistence model for the Bank aggregate
type BankModel struct {
	AuditedAggregateModel
	SoftDeleteModel
	Name     string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	LogoURL  string          `gorm:"type:varchar(500)"`
	Website  string          `gorm:"type:varchar(500)"`
	BaseRate decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
}

// TableName returns the table name for GORM
func (BankModel) TableName() string {
	return "banks"
}

// ToDomain converts the persistence model to a domain Bank
func (m *BankModel) ToDomain() *listing.Bank {
	return &listing.Bank{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		SoftDeletable:        m.ToDomainSoftDeletable(),
		Name:                 m.Name,
		LogoURL:              m.LogoURL,
		Website:              m.Website,
		BaseRate:             m.BaseRate,
	}
}

// FromDomain populates the persistence model from a domain Bank
func (m *BankModel) FromDomain(b *listing.Bank) {
	m.FromDomainAuditedAggregateRoot(b.AuditedAggregateRoot)
	m.FromDomainSoftDeletable(b.SoftDeletable)
	m.Name = b.Name
	m.LogoURL = b.LogoURL
	m.Website = b.Website
	m.BaseRate = b.BaseRate
}

// CityModel is the persistence model for City
type CityModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CityModel) TableName() string {
	return "cities"
}

// ToDomain converts the persistence model to a domain City
func (m *CityModel) ToDomain() *listing.City {
	return &listing.City{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
	}
}

// FromDomain populates the persistence model from a domain City
func (m *CityModel) FromDomain(c *listing.City) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
}

// DistrictModel is the persistence model for District
type DistrictModel struct {
	AggregateModel
	Name   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_district_city_name,priority:2"`
	CityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_district_city_name,priority:1;index"`
}

// TableName returns the table name for GORM
func (DistrictModel) TableName() string {
	return "districts"
}

// ToDomain converts the persistence model to a domain District
func (m *DistrictModel) ToDomain() *listing.District {
	return &listing.District{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		CityID:            m.CityID,
	}
}

// FromDomain populates the persistence model from a domain District
func (m *DistrictModel) FromDomain(d *listing.District) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Name = d.Name
	m.CityID = d.CityID
}

// FavoriteModel is the persistence model for visitor favorites
type FavoriteModel struct {
	BaseModel
	VisitorID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_favorite_visitor_project,priority:1"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_visitor_project,priority:2;index"`
}

// TableName returns the table name for GORM
func (FavoriteModel) TableName() string {
	return "favorites"
}

// ToDomain converts the persistence model to a domain Favorite
func (m *FavoriteModel) ToDomain() *listing.Favorite {
	return &listing.Favorite{
		BaseEntity: m.BaseModel.ToDomain(),
		VisitorID:  m.VisitorID,
		ProjectID:  m.ProjectID,
	}
}

// FromDomain populates the persistence model from a domain Favorite
func (m *FavoriteModel) FromDomain(f *listing.Favorite) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.VisitorID = f.VisitorID
	m.ProjectID = f.ProjectID
}
