//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/harvestflow-backend/internal/domain"
)

// openTestDB connects to the database named by DB_CONN_STR, skipping when it is unset
func openTestDB(t *testing.T) *DB {
	t.Helper()

	connStr := os.Getenv("DB_CONN_STR")
	if connStr == "" {
		t.Skip("DB_CONN_STR not set")
	}

	ctx := context.Background()
	db, err := NewDB(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestCatalogRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(openTestDB(t))

	catalog, err := domain.NewCatalog("integration-garden", []domain.Asset{
		{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 2},
		{Name: "Kale", Cost: 70, Payoff: 110, MaturationDelay: 3},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, catalog))

	loaded, err := repo.GetByName(ctx, "integration-garden")
	require.NoError(t, err)
	assert.Equal(t, catalog.ID(), loaded.ID())
	assert.Equal(t, catalog.Assets(), loaded.Assets(), "asset order must survive a round trip")

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "integration-garden")
}

func TestCatalogRepository_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(openTestDB(t))

	first, err := domain.NewCatalog("integration-replace", []domain.Asset{
		{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 2},
	})
	require.NoError(t, err)
	second, err := domain.NewCatalog("integration-replace", []domain.Asset{
		{Name: "Garlic", Cost: 40, Payoff: 60, MaturationDelay: 6},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.GetByName(ctx, "integration-replace")
	require.NoError(t, err)
	assert.Equal(t, second.Assets(), loaded.Assets())
}

func TestCatalogRepository_NotFound(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))

	_, err := repo.GetByName(context.Background(), "no-such-catalog")

	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}
