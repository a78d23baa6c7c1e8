// Command harvestsim runs the greedy allocator from the command line, either
// in-process against local catalogs or against a running planner server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/simaogato/harvestflow-backend/internal/adapter/catalogfile"
	grpcadapter "github.com/simaogato/harvestflow-backend/internal/adapter/grpc"
	"github.com/simaogato/harvestflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/harvestflow-backend/internal/config"
	"github.com/simaogato/harvestflow-backend/internal/domain"
	"github.com/simaogato/harvestflow-backend/internal/logger"
	"github.com/simaogato/harvestflow-backend/internal/usecase/planner"
	"github.com/simaogato/harvestflow-backend/internal/usecase/seeder"
)

// plannerClient is satisfied by the gRPC client and by localPlanner
type plannerClient interface {
	AllocateOnce(ctx context.Context, input planner.AllocateInput) (*grpcadapter.AllocationResponse, error)
	Simulate(ctx context.Context, input planner.SimulateInput) (*grpcadapter.SimulationResponse, error)
	ListCatalogs(ctx context.Context) ([]string, error)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "harvestsim:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("harvestsim", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML config file supplying defaults")
	mode := fs.String("mode", "simulate", "once (single-day allocation), simulate or list")
	catalogName := fs.String("catalog", "", "catalog name (defaults to the configured catalog)")
	catalogFile := fs.String("catalog-file", "", "YAML catalog file to load in local mode")
	balance := fs.Int64("balance", -1, "starting balance (defaults to the configured balance)")
	horizon := fs.Int("horizon", 0, "number of simulated days (defaults to the configured horizon)")
	trace := fs.Bool("trace", false, "print the per-day trace")
	addr := fs.String("addr", "", "planner server address; empty runs in-process")
	token := fs.String("token", "", "API token for the planner server (defaults to the configured token)")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *balance < 0 {
		*balance = cfg.Simulation.StartingBalance
	}
	if *horizon == 0 {
		*horizon = cfg.Simulation.Horizon
	}
	if *token == "" {
		*token = cfg.Server.APIToken
	}
	if *catalogFile == "" {
		*catalogFile = cfg.Catalog.File
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var client plannerClient
	if *addr != "" {
		remote, conn, err := grpcadapter.Dial(*addr, *token)
		if err != nil {
			return err
		}
		defer conn.Close()
		client = remote
	} else {
		local, err := newLocalPlanner(ctx, *catalogFile, cfg.Catalog.DefaultName, log)
		if err != nil {
			return err
		}
		client = local
	}

	switch *mode {
	case "once":
		resp, err := client.AllocateOnce(ctx, planner.AllocateInput{
			CatalogName:     *catalogName,
			StartingBalance: *balance,
		})
		if err != nil {
			return err
		}
		printAllocation(out, resp)
	case "simulate":
		resp, err := client.Simulate(ctx, planner.SimulateInput{
			CatalogName:     *catalogName,
			StartingBalance: *balance,
			Horizon:         *horizon,
			Trace:           *trace,
		})
		if err != nil {
			return err
		}
		printSimulation(out, resp)
	case "list":
		names, err := client.ListCatalogs(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
	default:
		return fmt.Errorf("unknown mode %q (want once, simulate or list)", *mode)
	}

	return nil
}

// localPlanner runs the planner in-process over a memory repository
type localPlanner struct {
	service *planner.PlannerService
}

func newLocalPlanner(ctx context.Context, catalogFile, defaultCatalog string, log zerolog.Logger) (*localPlanner, error) {
	repo := memory.NewCatalogRepository()
	catalogSeeder := seeder.NewCatalogSeeder(repo)

	if catalogFile != "" {
		catalogs, err := catalogfile.Load(catalogFile)
		if err != nil {
			return nil, err
		}
		if err := catalogSeeder.Import(ctx, catalogs); err != nil {
			return nil, err
		}
	}
	if err := catalogSeeder.Seed(ctx); err != nil {
		return nil, err
	}

	return &localPlanner{service: planner.NewPlannerService(repo, defaultCatalog, log)}, nil
}

func (p *localPlanner) AllocateOnce(ctx context.Context, input planner.AllocateInput) (*grpcadapter.AllocationResponse, error) {
	report, err := p.service.AllocateOnce(ctx, input)
	if err != nil {
		return nil, err
	}
	return &grpcadapter.AllocationResponse{
		RunID:           report.RunID.String(),
		Catalog:         report.Catalog.Name(),
		StartingBalance: report.StartingBalance,
		Purchases:       report.Allocation.Purchases,
		Remaining:       report.Allocation.Remaining,
	}, nil
}

func (p *localPlanner) Simulate(ctx context.Context, input planner.SimulateInput) (*grpcadapter.SimulationResponse, error) {
	report, err := p.service.Simulate(ctx, input)
	if err != nil {
		return nil, err
	}

	resp := &grpcadapter.SimulationResponse{
		RunID:           report.RunID.String(),
		Catalog:         report.Catalog.Name(),
		StartingBalance: report.Result.StartingBalance,
		Horizon:         report.Result.Horizon,
		FinalBalance:    report.Result.FinalBalance,
		Unmatured:       report.Result.Unmatured,
		Days:            report.Result.Days,
	}
	return resp, nil
}

func (p *localPlanner) ListCatalogs(ctx context.Context) ([]string, error) {
	return p.service.ListCatalogs(ctx)
}

func printAllocation(out io.Writer, resp *grpcadapter.AllocationResponse) {
	fmt.Fprintf(out, "catalog:   %s\n", resp.Catalog)
	fmt.Fprintf(out, "balance:   %s\n", humanize.Comma(resp.StartingBalance))
	fmt.Fprintf(out, "purchases: %s\n", summarize(resp.Purchases))
	fmt.Fprintf(out, "remaining: %s\n", humanize.Comma(resp.Remaining))
}

func printSimulation(out io.Writer, resp *grpcadapter.SimulationResponse) {
	if len(resp.Days) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DAY\tOPEN\tCREDITED\tADMISSIBLE\tPURCHASES\tCLOSE")
		for _, day := range resp.Days {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				humanize.Ordinal(day.Day),
				humanize.Comma(day.OpeningBalance),
				humanize.Comma(day.Credited),
				orDash(strings.Join(day.Admissible, ",")),
				summarizeLots(day.Purchases),
				humanize.Comma(day.ClosingBalance),
			)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "catalog: %s\n", resp.Catalog)
	fmt.Fprintf(out, "horizon: %s\n", humanize.Comma(int64(resp.Horizon)))
	fmt.Fprintf(out, "start:   %s\n", humanize.Comma(resp.StartingBalance))
	fmt.Fprintf(out, "final:   %s\n", humanize.Comma(resp.FinalBalance))
}

// summarizeLots renders each purchase as "Name xUnits"
func summarizeLots(purchases []domain.Purchase) string {
	if len(purchases) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(purchases))
	for _, p := range purchases {
		if p.Units > 1 {
			parts = append(parts, fmt.Sprintf("%s x%s", p.Asset, humanize.Comma(p.Units)))
		} else {
			parts = append(parts, p.Asset)
		}
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// summarize renders consecutive repeats as "Name x3"
func summarize(names []string) string {
	if len(names) == 0 {
		return "-"
	}

	var parts []string
	for i := 0; i < len(names); {
		j := i
		for j < len(names) && names[j] == names[i] {
			j++
		}
		if n := j - i; n > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", names[i], n))
		} else {
			parts = append(parts, names[i])
		}
		i = j
	}
	return strings.Join(parts, ", ")
}
