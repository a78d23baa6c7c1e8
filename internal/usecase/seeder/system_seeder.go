package seeder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/simaogato/harvestflow-backend/internal/domain"
)

// MarketGardenName is the name of the built-in catalog
const MarketGardenName = "market-garden"

// Fixed UUID for the built-in catalog so every deployment agrees on it
var MarketGardenID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// marketGardenAssets are the four crops of the market garden
var marketGardenAssets = []domain.Asset{
	{Name: "Cauliflower", Cost: 80, Payoff: 175, MaturationDelay: 6},
	{Name: "Garlic", Cost: 40, Payoff: 60, MaturationDelay: 6},
	{Name: "Kale", Cost: 70, Payoff: 110, MaturationDelay: 3},
	{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 2},
}

// MarketGarden builds the built-in catalog
func MarketGarden() *domain.Catalog {
	catalog, err := domain.NewCatalog(MarketGardenName, marketGardenAssets, domain.WithID(MarketGardenID))
	if err != nil {
		// The assets above are constants; failing here is a programming error
		panic(err)
	}
	return catalog
}

// CatalogSeeder handles seeding of the built-in catalog
type CatalogSeeder struct {
	repo domain.CatalogRepository
}

// NewCatalogSeeder creates a new CatalogSeeder instance
func NewCatalogSeeder(repo domain.CatalogRepository) *CatalogSeeder {
	return &CatalogSeeder{
		repo: repo,
	}
}

// Seed ensures the built-in catalog exists in the repository
// If it doesn't exist, it creates it; an existing catalog of that name is left alone
func (s *CatalogSeeder) Seed(ctx context.Context) error {
	_, err := s.repo.GetByName(ctx, MarketGardenName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrCatalogNotFound) {
		return err
	}

	return s.repo.Save(ctx, MarketGarden())
}

// Import saves every catalog into the repository, replacing same-named ones
func (s *CatalogSeeder) Import(ctx context.Context, catalogs []*domain.Catalog) error {
	for _, catalog := range catalogs {
		if err := s.repo.Save(ctx, catalog); err != nil {
			return err
		}
	}
	return nil
}
