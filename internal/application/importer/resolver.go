package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/listings/backend/internal/domain/listing"
)

// Resolver holds name-keyed lookup tables for the reference entities a
// CSV row can mention. It is built once per job from bulk reads and
// lives in memory for that job only, so repeated lookups across
// thousands of rows cost nothing and reference-data changes between
// jobs are always picked up.
type Resolver struct {
	developers map[string]*listing.Developer
	cities     map[string]*listing.City
	districts  map[string]*listing.District
	banks      map[string]*listing.Bank
}

// ResolverSources are the repositories the resolver reads from.
type ResolverSources struct {
	Developers listing.DeveloperRepository
	Cities     listing.CityRepository
	Districts  listing.DistrictRepository
	Banks      listing.BankRepository
}

// BuildResolver loads every active reference entity into lookup maps.
func BuildResolver(ctx context.Context, src ResolverSources) (*Resolver, error) {
	r := &Resolver{
		developers: make(map[string]*listing.Developer),
		cities:     make(map[string]*listing.City),
		districts:  make(map[string]*listing.District),
		banks:      make(map[string]*listing.Bank),
	}

	developers, err := src.Developers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load developers: %w", err)
	}
	for i := range developers {
		r.developers[resolverKey(developers[i].Name)] = &developers[i]
	}

	cities, err := src.Cities.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	for _, c := range cities {
		r.cities[resolverKey(c.Name)] = c
	}

	districts, err := src.Districts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load districts: %w", err)
	}
	for _, d := range districts {
		r.districts[resolverKey(d.Name)] = d
	}

	banks, err := src.Banks.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load banks: %w", err)
	}
	for i := range banks {
		r.banks[resolverKey(banks[i].Name)] = &banks[i]
	}

	return r, nil
}

// Developer resolves a developer by case-insensitive name.
func (r *Resolver) Developer(name string) (*listing.Developer, bool) {
	d, ok := r.developers[resolverKey(name)]
	return d, ok
}

// City resolves a city by case-insensitive name.
func (r *Resolver) City(name string) (*listing.City, bool) {
	c, ok := r.cities[resolverKey(name)]
	return c, ok
}

// District resolves a district by case-insensitive name.
func (r *Resolver) District(name string) (*listing.District, bool) {
	d, ok := r.districts[resolverKey(name)]
	return d, ok
}

// Bank resolves a bank by case-insensitive name.
func (r *Resolver) Bank(name string) (*listing.Bank, bool) {
	b, ok := r.banks[resolverKey(name)]
	return b, ok
}

func resolverKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
