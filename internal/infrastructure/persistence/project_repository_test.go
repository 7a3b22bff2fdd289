package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
)

func seedProject(t *testing.T, db *gorm.DB, name string) *listing.Project {
	t.Helper()
	repo := NewGormProjectRepository(db)
	p, err := listing.NewProject(name, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestGormProjectRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRepository(db)
	ctx := context.Background()

	p := seedProject(t, db, "Sunrise Park")

	found, err := repo.FindByID(ctx, p.GetID())
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Park", found.Name)
	assert.Equal(t, listing.ProjectStatusActive, found.Status)

	byName, err := repo.FindByName(ctx, "Sunrise Park")
	require.NoError(t, err)
	assert.Equal(t, p.GetID(), byName.GetID())

	_, err = repo.FindByName(ctx, "Nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProjectRepository_SoftDeleteAndRestore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRepository(db)
	ctx := context.Background()

	p := seedProject(t, db, "Sunrise Park")

	require.NoError(t, repo.SoftDelete(ctx, p.GetID()))

	// FindByID still returns the row, FindByName does not
	found, err := repo.FindByID(ctx, p.GetID())
	require.NoError(t, err)
	assert.True(t, found.IsDeleted())

	_, err = repo.FindByName(ctx, "Sunrise Park")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// deleting an already-deleted row reports not found
	assert.ErrorIs(t, repo.SoftDelete(ctx, p.GetID()), shared.ErrNotFound)

	require.NoError(t, repo.Restore(ctx, p.GetID()))
	restored, err := repo.FindByName(ctx, "Sunrise Park")
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())

	assert.ErrorIs(t, repo.Restore(ctx, p.GetID()), shared.ErrNotFound)
}

func TestGormProjectRepository_FindAllFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRepository(db)
	ctx := context.Background()

	active := seedProject(t, db, "Sunrise Park")

	hidden := seedProject(t, db, "Hidden Court")
	require.NoError(t, hidden.Hide())
	require.NoError(t, repo.Save(ctx, hidden))

	deleted := seedProject(t, db, "Gone Towers")
	require.NoError(t, repo.SoftDelete(ctx, deleted.GetID()))

	t.Run("public view excludes hidden and deleted", func(t *testing.T) {
		result, err := repo.FindAll(ctx, listing.ProjectFilter{}, 1, 10)
		require.NoError(t, err)
		require.Equal(t, int64(1), result.Total)
		assert.Equal(t, active.GetID(), result.Items[0].GetID())
	})

	t.Run("admin view includes everything", func(t *testing.T) {
		result, err := repo.FindAll(ctx, listing.ProjectFilter{IncludeHidden: true, IncludeDeleted: true}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Total)
	})

	t.Run("filter by city", func(t *testing.T) {
		cityID := active.CityID
		result, err := repo.FindAll(ctx, listing.ProjectFilter{CityID: &cityID}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
	})

	t.Run("search by name", func(t *testing.T) {
		result, err := repo.FindAll(ctx, listing.ProjectFilter{Search: "sunrise"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
	})
}

func TestGormProjectRepository_FindInBounds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRepository(db)
	ctx := context.Background()

	inside := seedProject(t, db, "Inside")
	require.NoError(t, inside.SetCoordinates(41.3, 69.25))
	require.NoError(t, repo.Save(ctx, inside))

	outside := seedProject(t, db, "Outside")
	require.NoError(t, outside.SetCoordinates(10, 10))
	require.NoError(t, repo.Save(ctx, outside))

	// no coordinates at all
	seedProject(t, db, "Unmapped")

	found, err := repo.FindInBounds(ctx, listing.MapBounds{MinLat: 41, MaxLat: 42, MinLng: 69, MaxLng: 70}, 100)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Inside", found[0].Name)
}

func TestGormProjectRepository_BankLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRepository(db)
	bankRepo := NewGormBankRepository(db)
	ctx := context.Background()

	p := seedProject(t, db, "Sunrise Park")

	bank, err := listing.NewBank("First National")
	require.NoError(t, err)
	require.NoError(t, bankRepo.Save(ctx, bank))

	require.NoError(t, repo.LinkBank(ctx, p.GetID(), bank.GetID()))
	// linking twice is a no-op
	require.NoError(t, repo.LinkBank(ctx, p.GetID(), bank.GetID()))

	banks, err := repo.FindBanks(ctx, p.GetID())
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, "First National", banks[0].Name)

	bankID := bank.GetID()
	result, err := repo.FindAll(ctx, listing.ProjectFilter{BankID: &bankID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	require.NoError(t, repo.UnlinkBank(ctx, p.GetID(), bank.GetID()))
	banks, err = repo.FindBanks(ctx, p.GetID())
	require.NoError(t, err)
	assert.Empty(t, banks)
}
