package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bodega-core/internal/application/warehouse"
	"github.com/jhoicas/bodega-core/internal/domain"
)

// Asegura que SnapshotRepo implementa warehouse.SnapshotStore.
var _ warehouse.SnapshotStore = (*SnapshotRepo)(nil)

// SnapshotRepo persistencia de snapshots de la bodega sobre PostgreSQL.
// Cada snapshot lógico (por nombre) ocupa una fila; Save sobrescribe.
type SnapshotRepo struct {
	pool *pgxpool.Pool
	name string
}

// NewSnapshotRepository construye el adaptador para el snapshot con ese nombre.
func NewSnapshotRepository(pool *pgxpool.Pool, name string) *SnapshotRepo {
	return &SnapshotRepo{pool: pool, name: name}
}

// EnsureSchema crea la tabla de snapshots si no existe.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS warehouse_snapshots (
			name       TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("crear tabla de snapshots: %w", err)
	}
	return nil
}

// Save guarda (o sobrescribe) el snapshot.
func (r *SnapshotRepo) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO warehouse_snapshots (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, r.name, data); err != nil {
		return fmt.Errorf("guardar snapshot: %w", err)
	}
	return nil
}

// Load lee el snapshot; si no existe devuelve domain.ErrNotFound.
func (r *SnapshotRepo) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM warehouse_snapshots WHERE name = $1`
	err := r.pool.QueryRow(ctx, query, r.name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %q: %w", r.name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	return data, nil
}
