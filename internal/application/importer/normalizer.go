package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/listings/backend/internal/infrastructure/csvimport"
)

// completionDateLayouts are the accepted completion_date formats, tried in order.
var completionDateLayouts = []string{"2006-01-02", "01/02/2006"}

// ProjectPayload is a fully validated project row, ready to insert.
type ProjectPayload struct {
	Name             string
	DeveloperID      uuid.UUID
	CityID           uuid.UUID
	DistrictID       uuid.UUID
	Address          string
	ShortDescription string
	Description      string
	Latitude         *float64
	Longitude        *float64
	PriceFrom        *int64
	Currency         string
	CompletionDate   *time.Time
	CoverImageURL    string
	BankIDs          []uuid.UUID
	// UnresolvedBanks carries bank names that matched nothing; they are
	// logged as warnings and skipped, never failing the row.
	UnresolvedBanks []string
}

// DeveloperPayload is a validated developer row.
type DeveloperPayload struct {
	Name        string
	Description string
	Website     string
	Phone       string
	LogoURL     string
}

// BankPayload is a validated bank row.
type BankPayload struct {
	Name     string
	LogoURL  string
	Website  string
	BaseRate *decimal.Decimal
}

// NormalizeProjectRow turns one parsed CSV record into an insert
// payload, or a row error with an operator-facing message. Reference
// names are resolved against the job's resolver tables.
func NormalizeProjectRow(row *csvimport.Row, res *Resolver) (*ProjectPayload, *csvimport.RowError) {
	name := row.Get("name")
	developerName := row.Get("developer")
	cityName := row.Get("city")
	districtName := row.Get("district")
	if name == "" || developerName == "" || cityName == "" || districtName == "" {
		return nil, csvimport.NewRowError(row, "Missing required fields: name, developer, city, district")
	}

	developer, ok := res.Developer(developerName)
	if !ok {
		return nil, csvimport.NewRowError(row, "Developer not found: "+developerName)
	}
	city, ok := res.City(cityName)
	if !ok {
		return nil, csvimport.NewRowError(row, "City not found: "+cityName)
	}
	district, ok := res.District(districtName)
	if !ok {
		return nil, csvimport.NewRowError(row, "District not found: "+districtName)
	}
	if !district.BelongsTo(city.ID) {
		return nil, csvimport.NewRowError(row, "District "+district.Name+" does not belong to city "+city.Name)
	}

	payload := &ProjectPayload{
		Name:             name,
		DeveloperID:      developer.ID,
		CityID:           city.ID,
		DistrictID:       district.ID,
		Address:          row.Get("address"),
		ShortDescription: row.Get("short_description"),
		Description:      row.Get("description"),
		Currency:         row.Get("currency"),
		CoverImageURL:    row.Get("cover_image_url"),
		PriceFrom:        normalizePrice(row.Get("price_from")),
	}

	if raw := row.Get("completion_date"); raw != "" {
		date, ok := parseCompletionDate(raw)
		if !ok {
			return nil, csvimport.NewRowError(row, "Invalid completion date format: "+raw)
		}
		payload.CompletionDate = &date
	}

	if raw := row.Get("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, csvimport.NewRowError(row, "Invalid latitude: "+raw)
		}
		payload.Latitude = &lat
	}
	if raw := row.Get("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil || lng < -180 || lng > 180 {
			return nil, csvimport.NewRowError(row, "Invalid longitude: "+raw)
		}
		payload.Longitude = &lng
	}

	for _, bankName := range splitBankList(row.Get("banks")) {
		if bank, ok := res.Bank(bankName); ok {
			payload.BankIDs = append(payload.BankIDs, bank.ID)
		} else {
			payload.UnresolvedBanks = append(payload.UnresolvedBanks, bankName)
		}
	}

	return payload, nil
}

// NormalizeDeveloperRow validates one developer CSV record.
func NormalizeDeveloperRow(row *csvimport.Row) (*DeveloperPayload, *csvimport.RowError) {
	name := row.Get("name")
	if name == "" {
		return nil, csvimport.NewRowError(row, "Missing required fields: name")
	}
	return &DeveloperPayload{
		Name:        name,
		Description: row.Get("description"),
		Website:     row.Get("website"),
		Phone:       row.Get("phone"),
		LogoURL:     row.Get("logo_url"),
	}, nil
}

// NormalizeBankRow validates one bank CSV record.
func NormalizeBankRow(row *csvimport.Row) (*BankPayload, *csvimport.RowError) {
	name := row.Get("name")
	if name == "" {
		return nil, csvimport.NewRowError(row, "Missing required fields: name")
	}

	payload := &BankPayload{
		Name:    name,
		LogoURL: row.Get("logo_url"),
		Website: row.Get("website"),
	}

	if raw := row.Get("base_rate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || rate.IsNegative() {
			return nil, csvimport.NewRowError(row, "Invalid base rate: "+raw)
		}
		payload.BaseRate = &rate
	}

	return payload, nil
}

// normalizePrice strips currency symbols and thousand separators, then
// parses the remainder as a float and rounds to the nearest integer.
// Anything that still fails to parse becomes null without raising.
func normalizePrice(raw string) *int64 {
	if raw == "" {
		return nil
	}
	var b strings.Builder
	for _, c := range raw {
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteRune(c)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	v := int64(math.Round(f))
	return &v
}

func parseCompletionDate(raw string) (time.Time, bool) {
	for _, layout := range completionDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func splitBankList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
