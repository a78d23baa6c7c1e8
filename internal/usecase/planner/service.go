package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/simaogato/harvestflow-backend/internal/domain"
	"github.com/simaogato/harvestflow-backend/internal/usecase/allocator"
	"github.com/simaogato/harvestflow-backend/internal/usecase/simulator"
)

// AllocateInput represents the input for a single-day allocation
type AllocateInput struct {
	CatalogName     string // Empty selects the service's default catalog
	StartingBalance int64
}

// SimulateInput represents the input for a multi-day simulation
type SimulateInput struct {
	CatalogName     string // Empty selects the service's default catalog
	StartingBalance int64
	Horizon         int
	Trace           bool // Keep a DayRecord for every day in the result
}

// AllocationReport is the outcome of AllocateOnce
type AllocationReport struct {
	RunID           uuid.UUID
	Catalog         *domain.Catalog
	StartingBalance int64
	Allocation      *allocator.Allocation
}

// SimulationReport is the outcome of Simulate
type SimulationReport struct {
	RunID   uuid.UUID
	Catalog *domain.Catalog
	Result  *simulator.Result
}

// PlannerService handles catalog lookup and runs the allocation core
type PlannerService struct {
	CatalogRepo    domain.CatalogRepository
	DefaultCatalog string
	log            zerolog.Logger
}

// NewPlannerService creates a new PlannerService instance
func NewPlannerService(catalogRepo domain.CatalogRepository, defaultCatalog string, log zerolog.Logger) *PlannerService {
	return &PlannerService{
		CatalogRepo:    catalogRepo,
		DefaultCatalog: defaultCatalog,
		log:            log.With().Str("component", "planner").Logger(),
	}
}

// AllocateOnce spends the starting balance across the named catalog in one pass
// Logic:
//  1. Resolve the catalog (default when unnamed)
//  2. Run allocator.AllocateOnce
//  3. Log the outcome under a fresh run ID
func (s *PlannerService) AllocateOnce(ctx context.Context, input AllocateInput) (*AllocationReport, error) {
	catalog, err := s.catalog(ctx, input.CatalogName)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	started := time.Now()

	allocation, err := allocator.AllocateOnce(input.StartingBalance, catalog)
	if err != nil {
		s.log.Warn().Err(err).Str("run_id", runID.String()).Msg("allocation rejected")
		return nil, err
	}

	s.log.Info().
		Str("run_id", runID.String()).
		Str("catalog", catalog.Name()).
		Int64("starting_balance", input.StartingBalance).
		Int("purchases", len(allocation.Purchases)).
		Int64("remaining", allocation.Remaining).
		Dur("elapsed", time.Since(started)).
		Msg("allocation complete")

	return &AllocationReport{
		RunID:           runID,
		Catalog:         catalog,
		StartingBalance: input.StartingBalance,
		Allocation:      allocation,
	}, nil
}

// Simulate runs the multi-day greedy simulation against the named catalog
// Logic:
//  1. Resolve the catalog (default when unnamed)
//  2. Validate the run parameters before any day is simulated
//  3. Run the simulator under ctx and log the outcome under a fresh run ID
func (s *PlannerService) Simulate(ctx context.Context, input SimulateInput) (*SimulationReport, error) {
	catalog, err := s.catalog(ctx, input.CatalogName)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	log := s.log.With().Str("run_id", runID.String()).Str("catalog", catalog.Name()).Logger()

	sim, err := simulator.New(simulator.Config{
		StartingBalance: input.StartingBalance,
		Horizon:         input.Horizon,
		Trace:           input.Trace,
	})
	if err != nil {
		log.Warn().Err(err).Msg("simulation rejected")
		return nil, err
	}

	started := time.Now()
	result, err := sim.RunContext(ctx, catalog)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(started)).Msg("simulation failed")
		return nil, err
	}

	log.Info().
		Int64("starting_balance", result.StartingBalance).
		Int("horizon", result.Horizon).
		Bool("trace", input.Trace).
		Int64("final_balance", result.FinalBalance).
		Dur("elapsed", time.Since(started)).
		Msg("simulation complete")

	return &SimulationReport{
		RunID:   runID,
		Catalog: catalog,
		Result:  result,
	}, nil
}

// ListCatalogs returns the names of every available catalog
func (s *PlannerService) ListCatalogs(ctx context.Context) ([]string, error) {
	names, err := s.CatalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	return names, nil
}

// catalog resolves name (or the default) through the repository
func (s *PlannerService) catalog(ctx context.Context, name string) (*domain.Catalog, error) {
	if name == "" {
		name = s.DefaultCatalog
	}
	if name == "" {
		return nil, domain.NewConfigurationError("catalog name is required")
	}

	catalog, err := s.CatalogRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}
