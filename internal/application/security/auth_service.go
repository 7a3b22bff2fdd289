package security

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/security"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for unknown users, wrong passwords,
// and deactivated accounts alike; callers cannot distinguish which.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// LoginRequest is an admin login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// LoginResponse carries the session token
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

// AdminResponse is an admin account in API responses
type AdminResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Active      bool      `json:"active"`
}

func toAdminResponse(u *security.AdminUser) AdminResponse {
	return AdminResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Active:      u.Active,
	}
}

// AuthService handles admin authentication
type AuthService struct {
	admins    security.AdminUserRepository
	jwt       *auth.JWTService
	auditLogs audit.Repository
	logger    *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(admins security.AdminUserRepository, jwt *auth.JWTService, auditLogs audit.Repository, logger *zap.Logger) *AuthService {
	return &AuthService{admins: admins, jwt: jwt, auditLogs: auditLogs, logger: logger}
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*LoginResponse, error) {
	admin, err := s.admins.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !admin.Active || !admin.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, err
	}

	s.writeAudit(ctx, &admin.ID, audit.ActionLogin, "Admin logged in", ip)

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     toAdminResponse(admin),
	}, nil
}

// Logout records the logout in the audit trail. Tokens are stateless,
// the client simply discards its copy.
func (s *AuthService) Logout(ctx context.Context, adminID uuid.UUID, ip string) {
	s.writeAudit(ctx, &adminID, audit.ActionLogout, "Admin logged out", ip)
}

// Me returns the authenticated admin's account
func (s *AuthService) Me(ctx context.Context, adminID uuid.UUID) (*AdminResponse, error) {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	resp := toAdminResponse(admin)
	return &resp, nil
}

func (s *AuthService) writeAudit(ctx context.Context, adminID *uuid.UUID, action audit.Action, details, ip string) {
	entry, err := audit.NewAuditLog(adminID, action, "admin_user", adminID, details, ip)
	if err != nil {
		return
	}
	if err := s.auditLogs.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit log", zap.String("action", string(action)), zap.Error(err))
	}
}
