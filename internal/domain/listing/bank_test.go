package listing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBank(t *testing.T) {
	t.Run("valid bank", func(t *testing.T) {
		b, err := NewBank("  First National  ")
		require.NoError(t, err)
		assert.Equal(t, "First National", b.Name)
		assert.True(t, b.BaseRate.IsZero())
		assert.False(t, b.IsDeleted())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewBank("   ")
		assert.Error(t, err)
	})
}

func TestBankSetBaseRate(t *testing.T) {
	b, err := NewBank("First National")
	require.NoError(t, err)

	require.NoError(t, b.SetBaseRate(decimal.NewFromFloat(14.5)))
	assert.True(t, b.BaseRate.Equal(decimal.NewFromFloat(14.5)))

	assert.Error(t, b.SetBaseRate(decimal.NewFromFloat(-0.1)))
	assert.Error(t, b.SetBaseRate(decimal.NewFromInt(101)))
	// rejected rates leave the current one intact
	assert.True(t, b.BaseRate.Equal(decimal.NewFromFloat(14.5)))
}

func TestBankSoftDelete(t *testing.T) {
	b, err := NewBank("First National")
	require.NoError(t, err)

	require.NoError(t, b.SoftDelete())
	assert.True(t, b.IsDeleted())
	assert.Error(t, b.SoftDelete())

	require.NoError(t, b.Undelete())
	assert.False(t, b.IsDeleted())
	assert.Error(t, b.Undelete())
}

func TestNewDeveloper(t *testing.T) {
	d, err := NewDeveloper("Skyline Group")
	require.NoError(t, err)
	assert.Equal(t, "Skyline Group", d.Name)

	_, err = NewDeveloper("")
	assert.Error(t, err)
}

func TestDeveloperUpdate(t *testing.T) {
	d, err := NewDeveloper("Skyline Group")
	require.NoError(t, err)
	before := d.GetVersion()

	require.NoError(t, d.Update("Skyline Group LLC", "Builds towers", "https://skyline.example", "+100200300", ""))
	assert.Equal(t, "Skyline Group LLC", d.Name)
	assert.Equal(t, before+1, d.GetVersion())

	assert.Error(t, d.Update("", "", "", "", ""))
}

func TestNewDistrict(t *testing.T) {
	cityID := uuid.New()

	d, err := NewDistrict("Old Town", cityID)
	require.NoError(t, err)
	assert.True(t, d.BelongsTo(cityID))
	assert.False(t, d.BelongsTo(uuid.New()))

	_, err = NewDistrict("", cityID)
	assert.Error(t, err)

	_, err = NewDistrict("Old Town", uuid.Nil)
	assert.Error(t, err)
}

func TestNewFavorite(t *testing.T) {
	projectID := uuid.New()

	f, err := NewFavorite("visitor-abc", projectID)
	require.NoError(t, err)
	assert.Equal(t, "visitor-abc", f.VisitorID)
	assert.Equal(t, projectID, f.ProjectID)

	_, err = NewFavorite("", projectID)
	assert.Error(t, err)

	_, err = NewFavorite("visitor-abc", uuid.Nil)
	assert.Error(t, err)
}
