package allocator

import (
	"sort"

	"github.com/simaogato/harvestflow-backend/internal/domain"
)

// MaxPurchaseLog is the longest purchase log AllocateOnce will build
const MaxPurchaseLog = 1 << 20

// Allocation is the result of a single-day greedy allocation
type Allocation struct {
	Purchases []string // Asset names in the order they were bought
	Remaining int64
}

// AllocateOnce spends startingBalance across the catalog in a single pass
// Logic:
//  1. Rank assets by daily yield (highest first), see Rank for tie-breaks
//  2. For each asset in that order, buy units while the balance covers its cost
//  3. Move on when the asset becomes unaffordable, never returning to it
//
// Safety: the balance never goes negative. The result is greedy, not optimal.
// Allocations listing more than MaxPurchaseLog units are rejected.
func AllocateOnce(startingBalance int64, catalog *domain.Catalog) (*Allocation, error) {
	if startingBalance < 0 {
		return nil, domain.NewConfigurationError("starting balance must not be negative")
	}

	if catalog == nil {
		return nil, domain.NewConfigurationError("catalog is required")
	}

	type lot struct {
		name  string
		units int64
	}
	var lots []lot
	var total int64
	remaining := Spend(startingBalance, Rank(catalog.Assets()), func(asset domain.Asset, units int64) {
		lots = append(lots, lot{asset.Name, units})
		// Every unit costs at least 1, so total never exceeds startingBalance
		total += units
	})
	if total > MaxPurchaseLog {
		return nil, domain.NewConfigurationError("allocation buys %d units, more than the %d a purchase log can list", total, MaxPurchaseLog)
	}

	purchases := make([]string, 0, total)
	for _, l := range lots {
		for i := int64(0); i < l.units; i++ {
			purchases = append(purchases, l.name)
		}
	}

	return &Allocation{
		Purchases: purchases,
		Remaining: remaining,
	}, nil
}

// Rank returns a copy of assets ordered for greedy purchasing.
// Order: daily yield descending, then cost descending, then name, payoff and
// maturation delay descending. Only the assets' own fields decide the order, so
// two catalogs listing the same assets in different orders rank identically.
func Rank(assets []domain.Asset) []domain.Asset {
	// Create a copy of assets to avoid mutating the caller's slice
	ranked := make([]domain.Asset, len(assets))
	copy(ranked, assets)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranksBefore(ranked[i], ranked[j])
	})

	return ranked
}

// ranksBefore reports whether a should be bought before b
func ranksBefore(a, b domain.Asset) bool {
	if c := a.CompareYield(b); c != 0 {
		return c > 0
	}
	if a.Cost != b.Cost {
		return a.Cost > b.Cost
	}
	if a.Name != b.Name {
		return a.Name > b.Name
	}
	if a.Payoff != b.Payoff {
		return a.Payoff > b.Payoff
	}
	return a.MaturationDelay > b.MaturationDelay
}

// Spend walks ranked assets once, buying each one while balance >= cost, and
// calls buy once per asset bought with the number of units. Returns the balance
// left over. A skipped asset is never revisited within the same call.
func Spend(balance int64, ranked []domain.Asset, buy func(asset domain.Asset, units int64)) int64 {
	for _, asset := range ranked {
		// Unvalidated zero-cost assets would never exhaust the balance
		if asset.Cost <= 0 || balance < asset.Cost {
			continue
		}
		// Same result as buying one unit at a time until the balance runs short
		units := balance / asset.Cost
		balance -= units * asset.Cost
		buy(asset, units)
	}
	return balance
}
