package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-core/internal/application/warehouse"
	"github.com/jhoicas/bodega-core/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-core/internal/infrastructure/snapshot"
	"github.com/jhoicas/bodega-core/pkg/collate"
	"github.com/jhoicas/bodega-core/pkg/config"
	"github.com/jhoicas/bodega-core/pkg/logger"
)

// buildWarehouse construye la bodega y el backend de snapshots según la
// configuración. cleanup libera los recursos del backend (pool de conexiones).
func buildWarehouse(ctx context.Context, cfg *config.Config, log *logger.Logger) (*warehouse.Warehouse, warehouse.SnapshotStore, func(), error) {
	cmp, err := collate.New(cfg.Engine.CollatorLocale)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("comparador: %w", err)
	}

	wh := warehouse.New(
		warehouse.WithComparator(cmp),
		warehouse.WithLogger(log),
	)

	switch cfg.Snapshot.Backend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		repo := postgres.NewSnapshotRepository(pool, cfg.Snapshot.Name)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return wh, repo, pool.Close, nil
	default:
		return wh, snapshot.NewFileStore(cfg.Snapshot.Path), func() {}, nil
	}
}
