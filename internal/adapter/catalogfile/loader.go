// Package catalogfile reads asset catalogs from YAML documents.
package catalogfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/harvestflow-backend/internal/domain"
)

// File is the on-disk layout of a catalog document:
//
//	catalogs:
//	  - name: market-garden
//	    assets:
//	      - {name: Turnip, cost: 20, payoff: 35, maturation_delay: 2}
type File struct {
	Catalogs []CatalogEntry `yaml:"catalogs"`
}

// CatalogEntry is one named catalog in a File
type CatalogEntry struct {
	Name   string       `yaml:"name"`
	Assets []AssetEntry `yaml:"assets"`
}

// AssetEntry is one asset definition in a CatalogEntry
type AssetEntry struct {
	Name            string `yaml:"name"`
	Cost            int64  `yaml:"cost"`
	Payoff          int64  `yaml:"payoff"`
	MaturationDelay int    `yaml:"maturation_delay"`
}

// Load reads and validates every catalog in the YAML file at path
func Load(path string) ([]*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	catalogs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalogs, nil
}

// Parse decodes a catalog document. Unknown fields are rejected so that a
// misspelt key fails loudly instead of silently zeroing a value.
func Parse(data []byte) ([]*domain.Catalog, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	if len(file.Catalogs) == 0 {
		return nil, errors.New("catalog file must define at least one catalog")
	}

	seen := make(map[string]bool, len(file.Catalogs))
	catalogs := make([]*domain.Catalog, 0, len(file.Catalogs))
	for _, entry := range file.Catalogs {
		if seen[entry.Name] {
			return nil, fmt.Errorf("duplicate catalog name %q", entry.Name)
		}
		seen[entry.Name] = true

		catalog, err := domain.NewCatalog(entry.Name, entry.toAssets())
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, catalog)
	}

	return catalogs, nil
}

func (e CatalogEntry) toAssets() []domain.Asset {
	assets := make([]domain.Asset, 0, len(e.Assets))
	for _, a := range e.Assets {
		assets = append(assets, domain.Asset{
			Name:            a.Name,
			Cost:            a.Cost,
			Payoff:          a.Payoff,
			MaturationDelay: a.MaturationDelay,
		})
	}
	return assets
}
