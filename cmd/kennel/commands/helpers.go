package commands

import (
	"context"
	"time"

	"github.com/dyluth/kennel/internal/catalog"
	"github.com/dyluth/kennel/internal/config"
	"github.com/dyluth/kennel/internal/printer"
	"github.com/dyluth/kennel/pkg/shelter"
)

// loadCatalog returns the built-in catalog, or one loaded from the given
// YAML file when a path is supplied.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, printer.Error(
			"Invalid filter catalog",
			err.Error(),
			[]string{"Fix the catalog file or omit --catalog to use the built-in filters"},
		)
	}
	return cat, nil
}

// connectStore loads the environment configuration and opens a verified
// store connection. A connection that cannot be established is fatal - no
// command can do anything useful without the store.
func connectStore(ctx context.Context) (*shelter.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, printer.Error(
			"Invalid configuration",
			err.Error(),
			[]string{"Check the KENNEL_STORE_* environment variables"},
		)
	}

	store, err := shelter.NewClient(cfg.StoreOptions(), config.Database, config.Collection)
	if err != nil {
		return nil, nil, printer.Error("Cannot create store client", err.Error(), nil)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, nil, printer.Error(
			"Cannot connect to the record store",
			err.Error(),
			[]string{
				"Verify the store is running and reachable at " + cfg.StoreOptions().Addr,
				"Check KENNEL_STORE_USER and KENNEL_STORE_PASS",
			},
		)
	}

	return store, cfg, nil
}
