package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/bodega-core/internal/application/warehouse"
	"github.com/jhoicas/bodega-core/internal/domain"
)

// Asegura que FileStore implementa warehouse.SnapshotStore.
var _ warehouse.SnapshotStore = (*FileStore)(nil)

// FileStore persistencia de snapshots en un fichero local. Escribe a un
// fichero temporal y renombra para que un guardado interrumpido no corrompa
// el snapshot anterior.
type FileStore struct {
	path string
}

// NewFileStore construye el adaptador para la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save escribe el snapshot de forma atómica.
func (s *FileStore) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("renombrar snapshot: %w", err)
	}
	return nil
}

// Load lee el snapshot; si el fichero no existe devuelve domain.ErrNotFound.
func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot %s: %w", s.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	return data, nil
}
