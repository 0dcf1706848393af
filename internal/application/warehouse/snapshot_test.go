package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Snapshots: export e import del estado completo
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshot_RoundtripPreservaElEstado(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"PARTNER|P2|Bob|Porto",
		"BATCH_S|A|P1|2|10",
		"BATCH_S|A|P2|5|4",
		"BATCH_M|D|P1|20|2|0.5|A:2",
	)

	// Historia variada: venta sin pagar, venta pagada, adquisición con
	// notificación, desagregación y un producto silenciado.
	_, err := w.AttemptSale("P1", "A", 3, 5)
	require.NoError(t, err)
	sale, err := w.AttemptSale("P2", "A", 2, 4)
	require.NoError(t, err)
	require.NoError(t, w.AdvanceDate(2))
	_, err = w.Pay(sale.ID())
	require.NoError(t, err)

	_, err = w.ToggleProductNotifications("P2", "A")
	require.NoError(t, err)
	_, err = w.Acquire("P1", "A", 1, dec("1")) // BARGAIN solo para P1
	require.NoError(t, err)

	_, err = w.AttemptBreakdown("P1", "D", 1)
	require.NoError(t, err)

	data, err := w.Snapshot()
	require.NoError(t, err)

	restored := newTestWarehouse(t)
	require.NoError(t, restored.Restore(data))

	assert.Equal(t, w.Date(), restored.Date())
	assert.True(t, w.AvailableBalance().Equal(restored.AvailableBalance()))
	assert.True(t, w.ContabilisticBalance().Equal(restored.ContabilisticBalance()))

	// Productos y lotes, en renders canónicos
	wantProducts := w.Products()
	gotProducts := restored.Products()
	require.Equal(t, len(wantProducts), len(gotProducts))
	for i := range wantProducts {
		assert.Equal(t, wantProducts[i].Render(), gotProducts[i].Render())
	}

	wantBatches := w.Batches()
	gotBatches := restored.Batches()
	require.Equal(t, len(wantBatches), len(gotBatches))
	for i := range wantBatches {
		assert.Equal(t, wantBatches[i].Render(), gotBatches[i].Render())
	}

	// Socios: puntos, historiales y renders
	wantPartners := w.Partners()
	gotPartners := restored.Partners()
	require.Equal(t, len(wantPartners), len(gotPartners))
	for i := range wantPartners {
		assert.Equal(t, wantPartners[i].Render(), gotPartners[i].Render())
		assert.Len(t, gotPartners[i].Sales, len(wantPartners[i].Sales))
		assert.Len(t, gotPartners[i].Acquisitions, len(wantPartners[i].Acquisitions))
	}

	// Libro mayor completo, transacción a transacción
	wantLedger := w.Ledger()
	gotLedger := restored.Ledger()
	require.Equal(t, len(wantLedger), len(gotLedger))
	for i := range wantLedger {
		assert.Equal(t, wantLedger[i].Render(w.Date()), gotLedger[i].Render(restored.Date()))
		assert.Equal(t, wantLedger[i].Paid(), gotLedger[i].Paid())
	}

	// Buzones: pendientes y silenciados sobreviven
	wantNs, err := w.PartnerNotifications("P1", "")
	require.NoError(t, err)
	gotNs, err := restored.PartnerNotifications("P1", "")
	require.NoError(t, err)
	require.Equal(t, len(wantNs), len(gotNs))
	for i := range wantNs {
		assert.Equal(t, wantNs[i].Render(), gotNs[i].Render())
	}

	checkStockInvariant(t, restored)
}

func TestSnapshot_SilenciadoSobrevive(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"PARTNER|P2|Bob|Porto",
		"BATCH_S|A|P1|5|10",
	)
	_, err := w.ToggleProductNotifications("P2", "A")
	require.NoError(t, err)

	data, err := w.Snapshot()
	require.NoError(t, err)
	restored := newTestWarehouse(t)
	require.NoError(t, restored.Restore(data))

	// Un evento posterior a la restauración respeta el silencio de P2
	_, err = restored.Acquire("P1", "A", 1, dec("2"))
	require.NoError(t, err)

	ns, err := restored.PartnerNotifications("P1", "")
	require.NoError(t, err)
	assert.Len(t, ns, 1)
	ns, err = restored.PartnerNotifications("P2", "")
	require.NoError(t, err)
	assert.Empty(t, ns)
}

func TestSnapshot_LaVidaContinuaTrasRestaurar(t *testing.T) {
	w := newTestWarehouse(t)
	mustImport(t, w,
		"PARTNER|P1|Alice|Lisboa",
		"BATCH_S|A|P1|10|5",
	)
	sale, err := w.AttemptSale("P1", "A", 2, 5)
	require.NoError(t, err)

	data, err := w.Snapshot()
	require.NoError(t, err)
	restored := newTestWarehouse(t)
	require.NoError(t, restored.Restore(data))

	// Pagar la venta pendiente en la instancia restaurada
	_, err = restored.Pay(sale.ID())
	require.NoError(t, err)
	assert.True(t, restored.AvailableBalance().Equal(dec("20")))

	// Los ids del libro mayor siguen la secuencia
	next, err := restored.AttemptSale("P1", "A", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, next.ID())

	// Y los lotes nuevos no chocan con los restaurados
	_, err = restored.Acquire("P1", "A", 2, dec("4"))
	require.NoError(t, err)
	checkStockInvariant(t, restored)
}

func TestRestore_DatosCorruptos(t *testing.T) {
	w := newTestWarehouse(t)
	assert.Error(t, w.Restore([]byte("{no es json")))
}
