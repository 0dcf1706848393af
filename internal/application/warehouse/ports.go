package warehouse

import "context"

// SnapshotStore puerto de persistencia del estado de la bodega. El motor
// exporta e importa snapshots opacos; la durabilidad real (fichero, tabla
// PostgreSQL) es del adaptador.
type SnapshotStore interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}
