package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "harvestflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.GRPCAddress)
	assert.Equal(t, "dev-token", cfg.Server.APIToken)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "market-garden", cfg.Catalog.DefaultName)
	assert.Equal(t, int64(60), cfg.Simulation.StartingBalance)
	assert.Equal(t, 5, cfg.Simulation.Horizon)
	assert.Empty(t, cfg.Database.ConnString)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	path := writeFile(t, `
server:
  grpc_address: ":9090"
  api_token: "file-token"
log:
  level: debug
  pretty: true
catalog:
  file: catalogs.yaml
  default_name: orchard
simulation:
  starting_balance: 250
  horizon: 30
database:
  conn_string: "host=db dbname=harvestflow"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.GRPCAddress)
	assert.Equal(t, "file-token", cfg.Server.APIToken)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "catalogs.yaml", cfg.Catalog.File)
	assert.Equal(t, "orchard", cfg.Catalog.DefaultName)
	assert.Equal(t, int64(250), cfg.Simulation.StartingBalance)
	assert.Equal(t, 30, cfg.Simulation.Horizon)
	assert.Equal(t, "host=db dbname=harvestflow", cfg.Database.ConnString)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
server:
  api_token: "file-token"
simulation:
  horizon: 30
`)
	t.Setenv("API_TOKEN", "env-token")
	t.Setenv("HARVESTFLOW_HORIZON", "12")
	t.Setenv("HARVESTFLOW_STARTING_BALANCE", "500")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("DB_CONN_STR", "host=env")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Server.APIToken)
	assert.Equal(t, 12, cfg.Simulation.Horizon)
	assert.Equal(t, int64(500), cfg.Simulation.StartingBalance)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "host=env", cfg.Database.ConnString)
}

func TestLoad_ExplicitZeroStartingBalance(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := writeFile(t, `
simulation:
  starting_balance: 0
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, int64(0), cfg.Simulation.StartingBalance)
		assert.Equal(t, 5, cfg.Simulation.Horizon)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("env", func(t *testing.T) {
		path := writeFile(t, `
simulation:
  starting_balance: 250
`)
		t.Setenv("HARVESTFLOW_STARTING_BALANCE", "0")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, int64(0), cfg.Simulation.StartingBalance)
	})
}

func TestLoad_ExplicitZeroHorizonFailsValidation(t *testing.T) {
	path := writeFile(t, `
simulation:
  horizon: 0
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Simulation.Horizon)
	assert.EqualError(t, cfg.Validate(), "default horizon must be positive")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("HARVESTFLOW_HORIZON", "soon")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HARVESTFLOW_HORIZON")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "server: [not, a, map")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Simulation.Horizon = -1
	assert.EqualError(t, cfg.Validate(), "default horizon must be positive")

	cfg.Simulation.Horizon = 5
	cfg.Simulation.StartingBalance = -10
	assert.EqualError(t, cfg.Validate(), "default starting balance must not be negative")
}
