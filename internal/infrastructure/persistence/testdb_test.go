package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/listings/backend/internal/infrastructure/persistence/models"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProjectModel{},
		&models.ProjectBankModel{},
		&models.DeveloperModel{},
		&models.BankModel{},
		&models.CityModel{},
		&models.DistrictModel{},
		&models.FavoriteModel{},
		&models.ImportJobModel{},
		&models.ImportJobErrorModel{},
		&models.AdminUserModel{},
		&models.IPBanModel{},
		&models.AuditLogModel{},
		&models.PageViewModel{},
	)
	require.NoError(t, err)

	return db
}
