package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/harvestflow-backend/internal/adapter/catalogfile"
	grpcadapter "github.com/simaogato/harvestflow-backend/internal/adapter/grpc"
	"github.com/simaogato/harvestflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/harvestflow-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/harvestflow-backend/internal/config"
	"github.com/simaogato/harvestflow-backend/internal/domain"
	"github.com/simaogato/harvestflow-backend/internal/logger"
	"github.com/simaogato/harvestflow-backend/internal/usecase/planner"
	"github.com/simaogato/harvestflow-backend/internal/usecase/seeder"
)

const (
	dbConnectAttempts = 5
	dbConnectBackoff  = 2 * time.Second
)

func main() {
	configPath := flag.String("config", "harvestflow.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load configuration and logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// 2. Initialize catalog repository (Postgres when configured, memory otherwise)
	catalogRepo, closeRepo := openRepository(ctx, cfg, log)
	defer closeRepo()

	// 3. Seed catalogs: file catalogs first, then the built-in catalog if still missing
	catalogSeeder := seeder.NewCatalogSeeder(catalogRepo)
	if cfg.Catalog.File != "" {
		catalogs, err := catalogfile.Load(cfg.Catalog.File)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Catalog.File).Msg("Failed to load catalog file")
		}
		if err := catalogSeeder.Import(ctx, catalogs); err != nil {
			log.Fatal().Err(err).Msg("Failed to import catalogs")
		}
		log.Info().Int("catalogs", len(catalogs)).Str("file", cfg.Catalog.File).Msg("Catalogs imported")
	}
	if err := catalogSeeder.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed built-in catalog")
	}
	log.Info().Str("catalog", seeder.MarketGardenName).Msg("Built-in catalog seeded")

	// 4. Initialize services (use cases)
	plannerService := planner.NewPlannerService(catalogRepo, cfg.Catalog.DefaultName, log)

	// 5. Start gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)
	grpcadapter.RegisterPlannerServiceServer(grpcServer, grpcadapter.NewServer(plannerService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddress)
	if err != nil {
		log.Fatal().Err(err).Str("address", cfg.Server.GRPCAddress).Msg("Failed to listen")
	}

	go func() {
		log.Info().Str("address", cfg.Server.GRPCAddress).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve gRPC server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, log)
}

// openRepository returns the catalog repository selected by the configuration
// together with a function releasing its resources
func openRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.CatalogRepository, func()) {
	if cfg.Database.ConnString == "" {
		log.Info().Msg("No database configured, keeping catalogs in memory")
		return memory.NewCatalogRepository(), func() {}
	}

	var db *postgres.DB
	var err error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err = postgres.NewDB(ctx, cfg.Database.ConnString)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("Database not ready, retrying")
		time.Sleep(dbConnectBackoff)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	return postgres.NewCatalogRepository(db), func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	grpcServer.GracefulStop()
	log.Info().Msg("gRPC server stopped")
}
