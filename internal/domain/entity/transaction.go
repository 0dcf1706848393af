package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionKind discrimina las variantes de transacción.
type TransactionKind string

const (
	KindAcquisition TransactionKind = "acquisition"
	KindSale        TransactionKind = "sale"
	KindBreakdown   TransactionKind = "breakdown"
)

// ValuationFunc calcula el valor real de una transacción no pagada a partir
// del valor base, los días transcurridos desde su creación y su plazo.
// La forma exacta de la curva es configurable; debe ser una función pura.
type ValuationFunc func(base decimal.Decimal, daysElapsed, deadline int) decimal.Decimal

// IdentityValuation valoración por defecto: el valor real no se desvía del
// valor base antes del pago.
func IdentityValuation(base decimal.Decimal, _, _ int) decimal.Decimal {
	return base
}

// Transaction vista común sobre adquisiciones, ventas y desagregaciones.
// Una transacción se crea, entra una única vez en el libro mayor y a partir
// de ahí solo cambia por la transición de pago. Antes del pago RealValue es
// función pura de la fecha consultada; después queda congelado.
type Transaction interface {
	ID() int
	Kind() TransactionKind
	PartnerID() string
	ProductID() string
	Amount() int
	BaseValue() decimal.Decimal
	// RealValue valor a la fecha dada; congelado si la transacción está pagada.
	RealValue(date int) decimal.Decimal
	CreatedDate() int
	Deadline() int
	Paid() bool
	// PaidDate fecha de pago; ok=false si aún no se pagó.
	PaidDate() (int, bool)
	// Settle congela el valor a la fecha dada y marca la transacción como
	// pagada. Idempotente: si ya está pagada devuelve el valor congelado.
	Settle(date int) decimal.Decimal
	// Render representación canónica pipe-delimited a la fecha dada.
	Render(date int) string
}

type txCore struct {
	id        int
	kind      TransactionKind
	partnerID string
	productID string
	amount    int
	base      decimal.Decimal
	created   int
	deadline  int // plazo en días desde la creación
	paidDate  *int
	paidValue decimal.Decimal
	valuation ValuationFunc
}

func (t *txCore) ID() int                    { return t.id }
func (t *txCore) Kind() TransactionKind      { return t.kind }
func (t *txCore) PartnerID() string          { return t.partnerID }
func (t *txCore) ProductID() string          { return t.productID }
func (t *txCore) Amount() int                { return t.amount }
func (t *txCore) BaseValue() decimal.Decimal { return t.base }
func (t *txCore) CreatedDate() int           { return t.created }
func (t *txCore) Deadline() int              { return t.deadline }
func (t *txCore) Paid() bool                 { return t.paidDate != nil }

func (t *txCore) PaidDate() (int, bool) {
	if t.paidDate == nil {
		return 0, false
	}
	return *t.paidDate, true
}

// RealValue se recalcula perezosamente contra la fecha consultada mientras la
// transacción no esté pagada; nunca se almacena de forma incremental.
func (t *txCore) RealValue(date int) decimal.Decimal {
	if t.paidDate != nil {
		return t.paidValue
	}
	if t.valuation == nil {
		return t.base
	}
	return t.valuation(t.base, date-t.created, t.deadline)
}

func (t *txCore) Settle(date int) decimal.Decimal {
	if t.paidDate != nil {
		return t.paidValue
	}
	value := t.RealValue(date)
	d := date
	t.paidDate = &d
	t.paidValue = value
	return value
}

// RestoreTransaction reconstruye una transacción desde un snapshot persistido,
// respetando el valor congelado de las ya pagadas.
func RestoreTransaction(kind TransactionKind, id int, partnerID, productID string, amount int,
	base decimal.Decimal, created, deadline int, paidDate *int, paidValue decimal.Decimal,
	receipt Receipt, valuation ValuationFunc) Transaction {

	core := txCore{
		id:        id,
		kind:      kind,
		partnerID: partnerID,
		productID: productID,
		amount:    amount,
		base:      base,
		created:   created,
		deadline:  deadline,
		valuation: valuation,
	}
	if paidDate != nil {
		d := *paidDate
		core.paidDate = &d
		core.paidValue = paidValue
	}
	switch kind {
	case KindAcquisition:
		return &Acquisition{core}
	case KindBreakdown:
		return &Breakdown{Sale: Sale{core}, receipt: receipt}
	default:
		return &Sale{core}
	}
}

// Acquisition compra de stock a un socio; se liquida al crearse.
type Acquisition struct {
	txCore
}

// NewAcquisition crea una adquisición ya pagada en la fecha de creación.
func NewAcquisition(id int, partnerID, productID string, amount int, value decimal.Decimal, date int) *Acquisition {
	a := &Acquisition{txCore{
		id:        id,
		kind:      KindAcquisition,
		partnerID: partnerID,
		productID: productID,
		amount:    amount,
		base:      value,
		created:   date,
	}}
	a.Settle(date)
	return a
}

func (a *Acquisition) Render(_ int) string {
	paid, _ := a.PaidDate()
	return fmt.Sprintf("COMPRA|%d|%s|%s|%d|%s|%d",
		a.id, a.partnerID, a.productID, a.amount, roundString(a.base), paid)
}

// Sale venta a un socio con pago diferido hasta un plazo.
type Sale struct {
	txCore
}

// NewSale crea una venta sin pagar; baseValue y valor real coinciden en la creación.
func NewSale(id int, partnerID, productID string, amount int, value decimal.Decimal, date, deadline int, valuation ValuationFunc) *Sale {
	return &Sale{txCore{
		id:        id,
		kind:      KindSale,
		partnerID: partnerID,
		productID: productID,
		amount:    amount,
		base:      value,
		created:   date,
		deadline:  deadline,
		valuation: valuation,
	}}
}

func (s *Sale) Render(date int) string {
	out := fmt.Sprintf("VENDA|%d|%s|%s|%d|%s|%s|%d",
		s.id, s.partnerID, s.productID, s.amount,
		roundString(s.base), roundString(s.RealValue(date)), s.deadline)
	if paid, ok := s.PaidDate(); ok {
		out += fmt.Sprintf("|%d", paid)
	}
	return out
}

// ReceiptEntry precio de reingreso elegido para un componente al desagregar.
type ReceiptEntry struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Receipt recibo de una desagregación, en el orden de la receta.
type Receipt []ReceiptEntry

// Render representación canónica `comp:qty:round(price)` separada por '#'.
func (r Receipt) Render() string {
	parts := make([]string, len(r))
	for i, e := range r {
		parts[i] = fmt.Sprintf("%s:%d:%s", e.ProductID, e.Quantity, roundString(e.Price))
	}
	return strings.Join(parts, "#")
}

// Breakdown desagregación: variante de venta que además lleva un recibo con
// los precios de reingreso de los componentes; se liquida al crearse.
type Breakdown struct {
	Sale
	receipt Receipt
}

// NewBreakdown crea una desagregación pagada en la fecha de creación.
func NewBreakdown(id int, partnerID, productID string, amount int, value decimal.Decimal, date int, receipt Receipt) *Breakdown {
	b := &Breakdown{
		Sale: Sale{txCore{
			id:        id,
			kind:      KindBreakdown,
			partnerID: partnerID,
			productID: productID,
			amount:    amount,
			base:      value,
			created:   date,
		}},
		receipt: receipt,
	}
	b.Settle(date)
	return b
}

// Receipt devuelve el recibo de la desagregación.
func (b *Breakdown) Receipt() Receipt { return b.receipt }

func (b *Breakdown) Render(date int) string {
	paid, _ := b.PaidDate()
	return fmt.Sprintf("DESAGREGAÇÃO|%d|%s|%s|%d|%s|%s|%d|%s",
		b.id, b.partnerID, b.productID, b.amount,
		roundString(b.base), roundString(b.RealValue(date)), paid, b.receipt.Render())
}
