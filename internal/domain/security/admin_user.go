package security

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// AdminUser is a back-office operator account
type AdminUser struct {
	shared.BaseAggregateRoot
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	DisplayName  string `gorm:"type:varchar(200)"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AdminUser) TableName() string {
	return "admin_users"
}

// NewAdminUser creates an admin account with a bcrypt-hashed password
func NewAdminUser(username, password, displayName string) (*AdminUser, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AdminUser{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		DisplayName:       displayName,
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *AdminUser) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password hash
func (u *AdminUser) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Deactivate disables the account without deleting it
func (u *AdminUser) Deactivate() {
	u.Active = false
	u.Touch()
	u.IncrementVersion()
}

// Activate re-enables the account
func (u *AdminUser) Activate() {
	u.Active = true
	u.Touch()
	u.IncrementVersion()
}

// AdminUserRepository defines the persistence interface for admin accounts
type AdminUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*AdminUser, error)
	Save(ctx context.Context, user *AdminUser) error
}
