package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén de inventario: registro, lote más barato y consumo voraz
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterBatch_IndicesYMaxPrice(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"PARTNER|P2|Bob|Porto",
		"BATCH_S|A|P1|10|5",
		"BATCH_S|A|P2|8|20",
	)

	product, err := w.Product("A")
	require.NoError(t, err)
	assert.Equal(t, 25, product.Stock())
	assert.True(t, product.MaxPrice().Equal(dec("10")))

	byPartner, err := w.BatchesByPartner("P2")
	require.NoError(t, err)
	require.Len(t, byPartner, 1)
	assert.Equal(t, "A|P2|8|20", byPartner[0].Render())

	checkStockInvariant(t, w)
}

func TestCheapestBatch_EligeMenorPrecio(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"PARTNER|P2|Bob|Porto",
		"BATCH_S|A|P1|10|5",
		"BATCH_S|A|P2|8|20",
		"BATCH_S|A|P1|12|3",
	)

	cheapest, err := w.CheapestBatch("A")
	require.NoError(t, err)
	require.NotNil(t, cheapest)
	assert.True(t, cheapest.Price.Equal(dec("8")))

	// Producto sin lotes: nil, sin error
	mustImport(t, w, "BATCH_S|B|P1|1|1")
	_, err = w.AttemptSale("P1", "B", 1, 3)
	require.NoError(t, err)
	cheapest, err = w.CheapestBatch("B")
	require.NoError(t, err)
	assert.Nil(t, cheapest)
}

func TestConsume_MasBaratoPrimeroYCoste(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"PARTNER|P2|Bob|Porto",
		"BATCH_S|A|P1|10|5",
		"BATCH_S|A|P2|8|4",
	)

	// Vender 6: drena el lote de 8 (4 uds) y 2 uds del de 10 = 32 + 20
	sale, err := w.AttemptSale("P1", "A", 6, 5)
	require.NoError(t, err)
	assert.True(t, sale.BaseValue().Equal(dec("52")))

	product, err := w.Product("A")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock())
	checkStockInvariant(t, w)

	// El lote drenado del todo desaparece de todos los índices
	byPartner, err := w.BatchesByPartner("P2")
	require.NoError(t, err)
	assert.Empty(t, byPartner)
}

func TestConsume_TodoElStockDejaCeroLotes(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"BATCH_S|A|P1|10|5",
		"BATCH_S|A|P1|7|2",
	)

	_, err := w.AttemptSale("P1", "A", 7, 3)
	require.NoError(t, err)

	product, err := w.Product("A")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock())

	batches, err := w.BatchesByProduct("A")
	require.NoError(t, err)
	assert.Empty(t, batches)
	checkStockInvariant(t, w)
}

func TestBatches_OrdenCanonico(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P2|Bob|Porto",
		"PARTNER|P1|Alice|Lisboa",
		"BATCH_S|b|P2|5|1",
		"BATCH_S|A|P2|9|2",
		"BATCH_S|a|P1|10|3",
	)

	batches := w.Batches()
	require.Len(t, batches, 3)
	// Orden: productId colado (case-insensitive), luego partnerId, luego precio
	assert.Equal(t, "a|P1|10|3", batches[0].Render())
	assert.Equal(t, "A|P2|9|2", batches[1].Render())
	assert.Equal(t, "b|P2|5|1", batches[2].Render())
}

func TestBatchesUnderPrice_FiltroEstricto(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"BATCH_S|A|P1|10|5",
		"BATCH_S|B|P1|7|2",
		"BATCH_S|C|P1|12|1",
	)

	under := w.BatchesUnderPrice(dec("10"))
	require.Len(t, under, 1)
	assert.Equal(t, "B", under[0].ProductID)
}
