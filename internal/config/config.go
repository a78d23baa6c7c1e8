// Package config loads harvestflow configuration from a YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultGRPCAddress     = ":8080"
	defaultAPIToken        = "dev-token"
	defaultLogLevel        = "info"
	defaultCatalogName     = "market-garden"
	defaultStartingBalance = 60
	defaultHorizon         = 5
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		GRPCAddress string `yaml:"grpc_address"`
		APIToken    string `yaml:"api_token"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Catalog struct {
		File        string `yaml:"file"`         // Optional YAML catalog file loaded at startup
		DefaultName string `yaml:"default_name"` // Catalog used when a request names none
	} `yaml:"catalog"`
	Simulation struct {
		StartingBalance int64 `yaml:"starting_balance"`
		Horizon         int   `yaml:"horizon"`
	} `yaml:"simulation"`
	Database struct {
		ConnString string `yaml:"conn_string"` // Empty means catalogs are kept in memory
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error. A .env file in the working directory is loaded
// first when present; variables already set in the environment win.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := newConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("HARVESTFLOW_GRPC_ADDRESS"); v != "" {
		c.Server.GRPCAddress = v
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		c.Server.APIToken = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse LOG_PRETTY: %w", err)
		}
		c.Log.Pretty = pretty
	}
	if v := os.Getenv("HARVESTFLOW_CATALOG_FILE"); v != "" {
		c.Catalog.File = v
	}
	if v := os.Getenv("HARVESTFLOW_DEFAULT_CATALOG"); v != "" {
		c.Catalog.DefaultName = v
	}
	if v := os.Getenv("HARVESTFLOW_STARTING_BALANCE"); v != "" {
		balance, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse HARVESTFLOW_STARTING_BALANCE: %w", err)
		}
		c.Simulation.StartingBalance = balance
	}
	if v := os.Getenv("HARVESTFLOW_HORIZON"); v != "" {
		horizon, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HARVESTFLOW_HORIZON: %w", err)
		}
		c.Simulation.Horizon = horizon
	}
	if v := os.Getenv("DB_CONN_STR"); v != "" {
		c.Database.ConnString = v
	}
	return nil
}

// newConfig returns a Config holding the numeric defaults. They are set before
// the file and environment are read so an explicit zero is kept.
func newConfig() *Config {
	cfg := &Config{}
	cfg.Simulation.StartingBalance = defaultStartingBalance
	cfg.Simulation.Horizon = defaultHorizon
	return cfg
}

// applyDefaults fills string settings left empty by the file and environment
func (c *Config) applyDefaults() {
	if c.Server.GRPCAddress == "" {
		c.Server.GRPCAddress = defaultGRPCAddress
	}
	if c.Server.APIToken == "" {
		c.Server.APIToken = defaultAPIToken
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Catalog.DefaultName == "" {
		c.Catalog.DefaultName = defaultCatalogName
	}
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if c.Server.GRPCAddress == "" {
		return errors.New("grpc address cannot be empty")
	}
	if c.Simulation.StartingBalance < 0 {
		return errors.New("default starting balance must not be negative")
	}
	if c.Simulation.Horizon <= 0 {
		return errors.New("default horizon must be positive")
	}
	return nil
}
