package entity

import (
	"github.com/shopspring/decimal"
)

// Status nivel de fidelidad de un socio, derivado de sus puntos.
type Status string

const (
	StatusNormal    Status = "NORMAL"
	StatusSelection Status = "SELECTION"
	StatusElite     Status = "ELITE"
)

// Umbrales de nivel: [0, 2000) NORMAL, [2000, 25000) SELECTION, [25000, ∞) ELITE.
var (
	selectionThreshold = decimal.NewFromInt(2000)
	eliteThreshold     = decimal.NewFromInt(25000)
)

// Partner una contraparte comercial. Se crea al registrarse y nunca se
// destruye; el id es único (case-insensitive). Los lotes que posee se
// referencian por id de arena; el historial de transacciones es append-only.
type Partner struct {
	ID      string
	Name    string
	Address string
	Points  decimal.Decimal

	// Batches ids de arena de los lotes vivos suministrados por el socio.
	Batches map[int]struct{}

	// Sales y Acquisitions historiales append-only; Breakdowns entran en Sales.
	Sales        []Transaction
	Acquisitions []Transaction

	Mailbox *Mailbox
}

// NewPartner crea un socio con buzón vacío y cero puntos.
func NewPartner(id, name, address string) *Partner {
	return &Partner{
		ID:      id,
		Name:    name,
		Address: address,
		Points:  decimal.Zero,
		Batches: make(map[int]struct{}),
		Mailbox: NewMailbox(),
	}
}

// Status deriva el nivel actual a partir de los puntos.
func (p *Partner) Status() Status {
	switch {
	case p.Points.GreaterThanOrEqual(eliteThreshold):
		return StatusElite
	case p.Points.GreaterThanOrEqual(selectionThreshold):
		return StatusSelection
	default:
		return StatusNormal
	}
}

// AddPoints acumula puntos de fidelidad (el nivel se deriva al leerse).
func (p *Partner) AddPoints(points decimal.Decimal) {
	p.Points = p.Points.Add(points)
}

// TotalBuyValue valor total de las adquisiciones del socio.
func (p *Partner) TotalBuyValue() decimal.Decimal {
	total := decimal.Zero
	for _, t := range p.Acquisitions {
		total = total.Add(t.BaseValue())
	}
	return total
}

// TotalSellValue valor base total de las ventas (y desagregaciones) del socio.
func (p *Partner) TotalSellValue() decimal.Decimal {
	total := decimal.Zero
	for _, t := range p.Sales {
		total = total.Add(t.BaseValue())
	}
	return total
}

// SellPaidValue valor ya pagado de las ventas del socio.
func (p *Partner) SellPaidValue() decimal.Decimal {
	total := decimal.Zero
	for _, t := range p.Sales {
		if t.Paid() {
			total = total.Add(t.RealValue(0)) // pagada: el valor está congelado
		}
	}
	return total
}
