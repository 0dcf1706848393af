package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Partner: niveles de fidelidad
// ──────────────────────────────────────────────────────────────────────────────

func TestPartner_StatusDerivadoDePuntos(t *testing.T) {
	p := entity.NewPartner("P1", "Alice", "Lisboa")
	assert.Equal(t, entity.StatusNormal, p.Status())

	p.AddPoints(dec("1999.9"))
	assert.Equal(t, entity.StatusNormal, p.Status())

	p.AddPoints(dec("0.1")) // exactamente 2000
	assert.Equal(t, entity.StatusSelection, p.Status())

	p.AddPoints(dec("23000")) // 25000
	assert.Equal(t, entity.StatusElite, p.Status())
}

func TestPartner_RenderFormato(t *testing.T) {
	p := entity.NewPartner("P1", "Alice", "Lisboa")
	assert.Equal(t, "P1|Alice|Lisboa|NORMAL|0|0|0|0", p.Render())
}

// ──────────────────────────────────────────────────────────────────────────────
// Transaction: valor real perezoso y transición de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestSale_RealValueCongeladoTrasPago(t *testing.T) {
	// Valoración de prueba: un 1% de recargo por día transcurrido.
	valuation := func(base decimal.Decimal, daysElapsed, _ int) decimal.Decimal {
		factor := decimal.NewFromInt(1).Add(dec("0.01").Mul(decimal.NewFromInt(int64(daysElapsed))))
		return base.Mul(factor)
	}
	sale := entity.NewSale(0, "P1", "A", 3, dec("100"), 0, 5, valuation)

	assert.True(t, sale.RealValue(0).Equal(dec("100")))
	assert.True(t, sale.RealValue(10).Equal(dec("110")))
	assert.False(t, sale.Paid())

	// Pagar congela el valor a la fecha del pago
	paid := sale.Settle(4)
	assert.True(t, paid.Equal(dec("104")))
	assert.True(t, sale.Paid())
	assert.True(t, sale.RealValue(30).Equal(dec("104")))

	// Settle es idempotente
	assert.True(t, sale.Settle(30).Equal(dec("104")))
	date, ok := sale.PaidDate()
	require.True(t, ok)
	assert.Equal(t, 4, date)
}

func TestAcquisition_LiquidadaAlCrearse(t *testing.T) {
	a := entity.NewAcquisition(1, "P1", "A", 10, dec("50"), 3)
	assert.True(t, a.Paid())
	date, ok := a.PaidDate()
	require.True(t, ok)
	assert.Equal(t, 3, date)
	assert.Equal(t, "COMPRA|1|P1|A|10|50|3", a.Render(99))
}

func TestBreakdown_RenderConRecibo(t *testing.T) {
	receipt := entity.Receipt{
		{ProductID: "A", Quantity: 2, Price: dec("10")},
		{ProductID: "B", Quantity: 1, Price: dec("3.5")},
	}
	b := entity.NewBreakdown(7, "P2", "D", 1, dec("-13.5"), 2, receipt)
	assert.True(t, b.Paid())
	assert.Equal(t, "DESAGREGAÇÃO|7|P2|D|1|-14|-14|2|A:2:10#B:1:4", b.Render(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mailbox: orden de entrega, filtro y silenciado
// ──────────────────────────────────────────────────────────────────────────────

func TestMailbox_OrdenYFiltro(t *testing.T) {
	mb := entity.NewMailbox()
	mb.Deliver(entity.Notification{Type: entity.NotificationNew, ProductID: "A", Price: dec("5")})
	mb.Deliver(entity.Notification{Type: entity.NotificationBargain, ProductID: "B", Price: dec("3")})
	mb.Deliver(entity.Notification{Type: entity.NotificationNew, ProductID: "C", Price: dec("8")})

	all := mb.List("")
	require.Len(t, all, 3)
	assert.Equal(t, "NEW|A|5", all[0].Render())
	assert.Equal(t, "BARGAIN|B|3", all[1].Render())

	news := mb.List(entity.NotificationNew)
	require.Len(t, news, 2)
	assert.Equal(t, "C", news[1].ProductID)

	mb.Clear()
	assert.Empty(t, mb.List(""))
}

func TestMailbox_Toggle(t *testing.T) {
	mb := entity.NewMailbox()
	assert.False(t, mb.Muted("a"))
	assert.True(t, mb.Toggle("a"))
	assert.True(t, mb.Muted("a"))
	assert.False(t, mb.Toggle("a"))
	assert.False(t, mb.Muted("a"))
}
