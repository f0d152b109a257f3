package main

import (
	"context"
	"flag"
	"time"

	"github.com/gofrs/flock"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/logging"
	"github.com/conorfabian/streamlinks/pkg/database"
)

func main() {
	var (
		in     = flag.String("in", "", "catalog file to import (.toml or .csv); empty imports the built-in catalog")
		dbPath = flag.String("db", "", "SQLite database path (default $STREAMLINKS_CATALOG_DB or ~/.streamlinks/catalog.db)")
	)
	flag.Parse()

	logger := logging.New("import")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := database.DefaultConfig()
	if *dbPath != "" {
		cfg.Path = *dbPath
	}
	db := database.MustOpen(cfg)
	defer db.Close()

	lock := flock.New(cfg.Path + ".import.lock")
	ok, err := lock.TryLock()
	if err != nil {
		logger.Fatal("acquire import lock", "err", err)
	}
	if !ok {
		logger.Fatal("another import is already running", "db", cfg.Path)
	}
	defer lock.Unlock()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate failed", "err", err)
	}

	sites, err := catalog.Load(*in)
	if err != nil {
		logger.Fatal("read catalog failed", "in", *in, "err", err)
	}
	// Validate before touching the store so a bad file never replaces a good catalog.
	if _, err := catalog.New(sites); err != nil {
		logger.Fatal("catalog invalid", "in", *in, "err", err)
	}
	if err := catalog.NewRepo(db).Replace(ctx, sites); err != nil {
		logger.Fatal("import failed", "err", err)
	}

	source := *in
	if source == "" {
		source = "built-in catalog"
	}
	logger.Info("imported catalog", "sites", len(sites), "from", source, "db", cfg.Path)
}
