package simulator

import (
	"context"
	"fmt"

	"github.com/simaogato/harvestflow-backend/internal/domain"
	"github.com/simaogato/harvestflow-backend/internal/usecase/allocator"
)

// Config holds the parameters of a simulation run
type Config struct {
	StartingBalance int64 // Cash available on day 1
	Horizon         int   // Number of simulated days
	Trace           bool  // Record a DayRecord for every day in Result.Days
}

// Validate ensures the config can drive a run
// Returns an error wrapping domain.ErrInvalidConfiguration if validation fails
func (c Config) Validate() error {
	if c.StartingBalance < 0 {
		return domain.NewConfigurationError("starting balance must not be negative")
	}

	if c.Horizon <= 0 {
		return domain.NewConfigurationError("horizon must be positive")
	}

	return nil
}

// Result is the outcome of a simulation run
type Result struct {
	StartingBalance int64
	Horizon         int
	FinalBalance    int64
	Unmatured       int64              // Payoff still pending after the last day; not part of FinalBalance
	Days            []domain.DayRecord // One record per day when Config.Trace is set, otherwise empty
}

// Purchases returns every purchase made during a traced run in purchase order
func (r *Result) Purchases() []domain.Purchase {
	out := make([]domain.Purchase, 0)
	for _, day := range r.Days {
		out = append(out, day.Purchases...)
	}
	return out
}

// Simulator runs the multi-day greedy allocation with deferred maturation.
// A Simulator holds only its configuration; each Run allocates fresh state,
// so one Simulator can be reused across catalogs.
type Simulator struct {
	cfg Config
}

// New creates a Simulator after validating cfg
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{cfg: cfg}, nil
}

// Config returns the simulator's configuration
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run simulates days 1..Horizon against catalog. See RunContext.
func (s *Simulator) Run(catalog *domain.Catalog) (*Result, error) {
	return s.RunContext(context.Background(), catalog)
}

// RunContext simulates days 1..Horizon against catalog, stopping with ctx.Err()
// if ctx is done between days.
// Logic, for each day:
//  1. Maturation: credit and discard every pending purchase maturing today
//  2. Admissibility: keep assets with day + MaturationDelay <= Horizon
//  3. Purchase: spend greedily over the admissible assets in rank order,
//     scheduling one pending payoff per purchase
//
// Maturities are only credited in step 1, so money returned later cannot
// make a skipped asset affordable again on the same day. After step 3 the
// balance is below the cost of every admissible asset, so a day with nothing
// to credit buys nothing; untraced runs jump straight to the next maturity day.
//
// Returns an error wrapping domain.ErrAmountOverflow if the balance or a
// payoff outgrows an int64.
func (s *Simulator) RunContext(ctx context.Context, catalog *domain.Catalog) (*Result, error) {
	if catalog == nil {
		return nil, domain.NewConfigurationError("catalog is required")
	}

	r := &run{
		horizon: s.cfg.Horizon,
		balance: s.cfg.StartingBalance,
		pending: newPendingQueue(),
		// Filtering keeps relative order, so ranking once up front is the same
		// as ranking the admissible subset every day.
		ranked: allocator.Rank(catalog.Assets()),
	}

	var days []domain.DayRecord
	for day := 1; day <= s.cfg.Horizon; day = r.nextDay(day, s.cfg.Trace) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.step(day)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", day, err)
		}
		if s.cfg.Trace {
			days = append(days, record)
		}
	}

	unmatured, err := r.pending.value()
	if err != nil {
		return nil, err
	}

	return &Result{
		StartingBalance: s.cfg.StartingBalance,
		Horizon:         s.cfg.Horizon,
		FinalBalance:    r.balance,
		Unmatured:       unmatured,
		Days:            days,
	}, nil
}

// Simulate runs an untraced simulation and returns only the final balance
func Simulate(startingBalance int64, catalog *domain.Catalog, horizon int) (int64, error) {
	sim, err := New(Config{StartingBalance: startingBalance, Horizon: horizon})
	if err != nil {
		return 0, err
	}

	result, err := sim.Run(catalog)
	if err != nil {
		return 0, err
	}

	return result.FinalBalance, nil
}

// run is the mutable state of one simulation; it is discarded when Run returns
type run struct {
	horizon int
	balance int64
	pending *pendingQueue
	ranked  []domain.Asset
}

// nextDay returns the day after day that can change the balance, or the next
// calendar day when every day is traced
func (r *run) nextDay(day int, trace bool) int {
	if trace {
		return day + 1
	}
	next, ok := r.pending.next()
	if !ok || next > r.horizon {
		return r.horizon + 1
	}
	return next
}

func (r *run) step(day int) (domain.DayRecord, error) {
	record := domain.DayRecord{
		Day:            day,
		OpeningBalance: r.balance,
	}

	// Phase A: maturation
	record.Matured = r.pending.resolve(day)
	for _, m := range record.Matured {
		credited, err := domain.AddAmounts(record.Credited, m.Payoff)
		if err != nil {
			return record, err
		}
		record.Credited = credited
	}
	balance, err := domain.AddAmounts(r.balance, record.Credited)
	if err != nil {
		return record, err
	}
	r.balance = balance

	// Phase B: admissibility
	admissible := Admissible(r.ranked, day, r.horizon)
	record.Admissible = make([]string, 0, len(admissible))
	for _, asset := range admissible {
		record.Admissible = append(record.Admissible, asset.Name)
	}

	// Phase C: greedy purchase
	var scheduleErr error
	r.balance = allocator.Spend(r.balance, admissible, func(asset domain.Asset, units int64) {
		purchase := domain.Purchase{
			Asset:       asset.Name,
			Day:         day,
			Units:       units,
			UnitCost:    asset.Cost,
			MaturityDay: asset.MaturityDay(day),
			UnitPayoff:  asset.Payoff,
		}
		record.Purchases = append(record.Purchases, purchase)

		payoff, err := domain.MulAmount(units, asset.Payoff)
		if err != nil {
			if scheduleErr == nil {
				scheduleErr = fmt.Errorf("payoff of %d %s: %w", units, asset.Name, err)
			}
			return
		}
		r.pending.schedule(domain.Maturation{
			Asset:       asset.Name,
			MaturityDay: purchase.MaturityDay,
			Units:       units,
			Payoff:      payoff,
		})
	})
	if scheduleErr != nil {
		return record, scheduleErr
	}

	record.ClosingBalance = r.balance
	return record, nil
}

// Admissible returns the assets that bought on day would mature no later than horizon.
// The input order is preserved.
func Admissible(assets []domain.Asset, day, horizon int) []domain.Asset {
	out := make([]domain.Asset, 0, len(assets))
	for _, asset := range assets {
		if asset.MaturityDay(day) <= horizon {
			out = append(out, asset)
		}
	}
	return out
}
