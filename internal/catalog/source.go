package catalog

import (
	"context"
	"fmt"

	"github.com/conorfabian/streamlinks/pkg/database"
	"github.com/conorfabian/streamlinks/pkg/utils"
)

// Open builds the catalog from the configured source: the SQLite store when
// DBPath is set, otherwise the catalog file or the embedded data. Any error
// here means the process should not start.
func Open(ctx context.Context, cfg utils.CatalogConfig) (*Catalog, error) {
	if cfg.DBPath != "" {
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		sites, err := NewRepo(db).LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog from %s: %w", cfg.DBPath, err)
		}
		return New(sites)
	}

	sites, err := Load(cfg.Path)
	if err != nil {
		return nil, err
	}
	return New(sites)
}
