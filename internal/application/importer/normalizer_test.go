package importer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listings/backend/internal/infrastructure/csvimport"
)

func testRow(line int, data map[string]string) *csvimport.Row {
	return &csvimport.Row{LineNumber: line, Data: data}
}

func validProjectData() map[string]string {
	return map[string]string{
		"name":      "Riverside Towers",
		"developer": "Acme Homes",
		"city":      "Springfield",
		"district":  "North End",
	}
}

func TestNormalizeProjectRowRequiredFields(t *testing.T) {
	f := setupFixtures(t)
	res := f.resolver(t)

	for _, missing := range []string{"name", "developer", "city", "district"} {
		data := validProjectData()
		data[missing] = ""
		_, rowErr := NormalizeProjectRow(testRow(2, data), res)
		require.NotNil(t, rowErr, "missing %s should fail", missing)
		assert.Equal(t, "Missing required fields: name, developer, city, district", rowErr.Message)
		assert.Equal(t, 2, rowErr.Line)
	}
}

func TestNormalizeProjectRowResolvesReferences(t *testing.T) {
	f := setupFixtures(t)
	res := f.resolver(t)

	// names are matched case-insensitively with surrounding whitespace ignored
	data := validProjectData()
	data["developer"] = "  ACME homes "
	data["city"] = "springfield"
	data["district"] = "NORTH END"

	payload, rowErr := NormalizeProjectRow(testRow(2, data), res)
	require.Nil(t, rowErr)
	assert.Equal(t, f.developer.ID, payload.DeveloperID)
	assert.Equal(t, f.city.ID, payload.CityID)
	assert.Equal(t, f.district.ID, payload.DistrictID)
}

func TestNormalizeProjectRowUnknownReferences(t *testing.T) {
	f := setupFixtures(t)
	res := f.resolver(t)

	cases := []struct {
		field   string
		value   string
		message string
	}{
		{"developer", "Ghost Builders", "Developer not found: Ghost Builders"},
		{"city", "Atlantis", "City not found: Atlantis"},
		{"district", "Nowhere", "District not found: Nowhere"},
	}
	for _, tc := range cases {
		data := validProjectData()
		data[tc.field] = tc.value
		_, rowErr := NormalizeProjectRow(testRow(2, data), res)
		require.NotNil(t, rowErr)
		assert.Equal(t, tc.message, rowErr.Message)
	}
}

func TestNormalizeProjectRowDistrictCityMismatch(t *testing.T) {
	f := setupFixtures(t)
	res := f.resolver(t)

	data := validProjectData()
	data["district"] = "Old Town" // belongs to Shelbyville

	_, rowErr := NormalizeProjectRow(testRow(2, data), res)
	require.NotNil(t, rowErr)
	assert.Equal(t, "District Old Town does not belong to city Springfield", rowErr.Message)
}

func TestNormalizeProjectRowCompletionDate(t *testing.T) {
	f := setupFixtures(t)
	res := f.resolver(t)

	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-06-01", "06/01/2025"} {
		data := validProjectData()
		data["completion_date"] = raw
		payload, rowErr := NormalizeProjectRow(testRow(2, data), res)
		require.Nil(t, rowErr, "format %s", raw)
		require.NotNil(t, payload.CompletionDate)
		assert.True(t, payload.CompletionDate.Equal(want), "format %s", raw)
	}

	data := validProjectData()
	data["completion_date"] = "not-a-date"
	_, rowErr := NormalizeProjectRow(testRow(2, data), res)
	require.NotNil(t, rowErr)
	assert.Equal(t, "Invalid completion date format: not-a-date", rowErr.Message)

	data = validProjectData()
	payload, rowErr := NormalizeProjectRow(testRow(2, data), res)
	require.Nil(t, rowErr)
	assert.Nil(t, payload.CompletionDate)
}

func TestNormalizePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want *int64
	}{
		{"$1,500,000", int64Ptr(1500000)},
		{"1200.6", int64Ptr(1201)},
		{"750000", int64Ptr(750000)},
		{"N/A", nil},
		{"", nil},
		{"TBD", nil},
	}
	for _, tc := range cases {
		got := normalizePrice(tc.raw)
		if tc.want == nil {
			assert.Nil(t, got, "input %q", tc.raw)
		} else {
			require.NotNil(t, got, "input %q", tc.raw)
			assert.Equal(t, *tc.want, *got, "input %q", tc.raw)
		}
	}
}

func TestNormalizeProjectRowCoordinates(t *testing.T) {
	f := setupFixtures(t)
	res := f.resolver(t)

	data := validProjectData()
	data["latitude"] = "95"
	data["longitude"] = "10"
	_, rowErr := NormalizeProjectRow(testRow(2, data), res)
	require.NotNil(t, rowErr)
	assert.Equal(t, "Invalid latitude: 95", rowErr.Message)

	data = validProjectData()
	data["latitude"] = "40.758"
	data["longitude"] = "-73.9855"
	payload, rowErr := NormalizeProjectRow(testRow(2, data), res)
	require.Nil(t, rowErr)
	require.NotNil(t, payload.Latitude)
	require.NotNil(t, payload.Longitude)
	assert.InDelta(t, 40.758, *payload.Latitude, 1e-9)
	assert.InDelta(t, -73.9855, *payload.Longitude, 1e-9)

	data = validProjectData()
	data["longitude"] = "181"
	_, rowErr = NormalizeProjectRow(testRow(2, data), res)
	require.NotNil(t, rowErr)
	assert.Equal(t, "Invalid longitude: 181", rowErr.Message)

	data = validProjectData()
	payload, rowErr = NormalizeProjectRow(testRow(2, data), res)
	require.Nil(t, rowErr)
	assert.Nil(t, payload.Latitude)
	assert.Nil(t, payload.Longitude)
}

func TestNormalizeProjectRowBanks(t *testing.T) {
	f := setupFixtures(t)
	res := f.resolver(t)

	data := validProjectData()
	data["banks"] = "Alpha Bank, beta bank, Vanished Bank"

	payload, rowErr := NormalizeProjectRow(testRow(2, data), res)
	require.Nil(t, rowErr)
	assert.ElementsMatch(t, []uuid.UUID{f.bankAlpha.ID, f.bankBeta.ID}, payload.BankIDs)
	assert.Equal(t, []string{"Vanished Bank"}, payload.UnresolvedBanks)
}

func TestNormalizeDeveloperRow(t *testing.T) {
	payload, rowErr := NormalizeDeveloperRow(testRow(2, map[string]string{
		"name":    "New Builder",
		"website": "https://example.com",
	}))
	require.Nil(t, rowErr)
	assert.Equal(t, "New Builder", payload.Name)
	assert.Equal(t, "https://example.com", payload.Website)

	_, rowErr = NormalizeDeveloperRow(testRow(3, map[string]string{"name": ""}))
	require.NotNil(t, rowErr)
	assert.Equal(t, "Missing required fields: name", rowErr.Message)
}

func TestNormalizeBankRow(t *testing.T) {
	payload, rowErr := NormalizeBankRow(testRow(2, map[string]string{
		"name":      "Gamma Bank",
		"base_rate": "4.25",
	}))
	require.Nil(t, rowErr)
	require.NotNil(t, payload.BaseRate)
	assert.Equal(t, "4.25", payload.BaseRate.String())

	_, rowErr = NormalizeBankRow(testRow(2, map[string]string{
		"name":      "Gamma Bank",
		"base_rate": "cheap",
	}))
	require.NotNil(t, rowErr)
	assert.Equal(t, "Invalid base rate: cheap", rowErr.Message)
}

func int64Ptr(v int64) *int64 { return &v }
