package warehouse_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-core/internal/application/warehouse"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestWarehouse(t *testing.T, opts ...warehouse.Option) *warehouse.Warehouse {
	t.Helper()
	return warehouse.New(opts...)
}

// mustImport ingiere líneas de texto y falla el test ante cualquier error.
func mustImport(t *testing.T, w *warehouse.Warehouse, lines ...string) {
	t.Helper()
	err := w.ImportReader(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
}

// checkStockInvariant comprueba, para todos los productos, que el stock
// mantenido coincide con la suma de las cantidades de sus lotes vivos.
func checkStockInvariant(t *testing.T, w *warehouse.Warehouse) {
	t.Helper()
	for _, p := range w.Products() {
		batches, err := w.BatchesByProduct(p.ID())
		require.NoError(t, err)
		sum := 0
		for _, b := range batches {
			require.Greater(t, b.Quantity, 0, "lote muerto %d sigue indexado", b.ID)
			sum += b.Quantity
		}
		require.Equal(t, sum, p.Stock(), "stock de %s no cuadra con sus lotes", p.ID())
	}
}
