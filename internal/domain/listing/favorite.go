package listing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// Favorite records that an anonymous visitor saved a project.
// Visitors are identified by a client-generated opaque ID, not an account.
type Favorite struct {
	shared.BaseEntity
	VisitorID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_favorite_visitor_project,priority:1"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_visitor_project,priority:2;index"`
}

// TableName returns the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite creates a favorite for a visitor and project
func NewFavorite(visitorID string, projectID uuid.UUID) (*Favorite, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, shared.NewDomainError("INVALID_VISITOR", "Visitor ID cannot be empty")
	}
	if len(visitorID) > 64 {
		return nil, shared.NewDomainError("INVALID_VISITOR", "Visitor ID cannot exceed 64 characters")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project is required")
	}
	return &Favorite{
		BaseEntity: shared.NewBaseEntity(),
		VisitorID:  visitorID,
		ProjectID:  projectID,
	}, nil
}
