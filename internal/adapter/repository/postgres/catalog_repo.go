package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/harvestflow-backend/internal/domain"
)

// catalogRepository implements domain.CatalogRepository
type catalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *DB) domain.CatalogRepository {
	return &catalogRepository{db: db}
}

// GetByName retrieves a catalog by its name
// This method joins the catalogs and catalog_assets tables
func (r *catalogRepository) GetByName(ctx context.Context, name string) (*domain.Catalog, error) {
	// First, get the catalog row
	catalogQuery := `
		SELECT id
		FROM catalogs
		WHERE name = $1
	`

	var catalogID uuid.UUID
	err := r.db.QueryRowContext(ctx, catalogQuery, name).Scan(&catalogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, name)
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	// Then, get its assets in catalog order
	assetsQuery := `
		SELECT name, cost, payoff, maturation_delay
		FROM catalog_assets
		WHERE catalog_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, assetsQuery, catalogID)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog assets: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(&asset.Name, &asset.Cost, &asset.Payoff, &asset.MaturationDelay); err != nil {
			return nil, fmt.Errorf("failed to scan catalog asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog assets: %w", err)
	}

	// Rebuild through the constructor so stored rows are validated like any other input
	catalog, err := domain.NewCatalog(name, assets, domain.WithID(catalogID))
	if err != nil {
		return nil, fmt.Errorf("stored catalog %s is invalid: %w", name, err)
	}

	return catalog, nil
}

// Save stores a catalog, replacing any existing catalog with the same name
func (r *catalogRepository) Save(ctx context.Context, catalog *domain.Catalog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// Assets are removed by ON DELETE CASCADE
	if _, err := tx.ExecContext(ctx, `DELETE FROM catalogs WHERE name = $1`, catalog.Name()); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalogs (id, name) VALUES ($1, $2)`,
		catalog.ID(),
		catalog.Name(),
	); err != nil {
		return fmt.Errorf("failed to insert catalog: %w", err)
	}

	assetQuery := `
		INSERT INTO catalog_assets (id, catalog_id, position, name, cost, payoff, maturation_delay)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for position, asset := range catalog.Assets() {
		if _, err := tx.ExecContext(ctx, assetQuery,
			uuid.New(),
			catalog.ID(),
			position,
			asset.Name,
			asset.Cost,
			asset.Payoff,
			asset.MaturationDelay,
		); err != nil {
			return fmt.Errorf("failed to insert catalog asset %s: %w", asset.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	return nil
}

// List retrieves the names of all stored catalogs in ascending order
func (r *catalogRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM catalogs ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan catalog name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalogs: %w", err)
	}

	return names, nil
}
