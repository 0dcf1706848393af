package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// roundString redondea a entero con half-away-from-zero (la semántica de
// decimal.Round) y devuelve la forma textual. Es el redondeo del contrato de
// presentación: 2.5 -> "3", -2.5 -> "-3".
func roundString(d decimal.Decimal) string {
	return d.Round(0).String()
}

// RoundString expone el redondeo canónico para otros paquetes de presentación.
func RoundString(d decimal.Decimal) string {
	return roundString(d)
}

// Render representación canónica de un lote `productId|partnerId|round(price)|stock`.
func (b *Batch) Render() string {
	return fmt.Sprintf("%s|%s|%s|%d", b.ProductID, b.PartnerID, roundString(b.Price), b.Quantity)
}

// Render representación canónica de un socio
// `id|name|address|status|round(points)|round(buy)|round(sell)|round(sellPaid)`.
func (p *Partner) Render() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s",
		p.ID, p.Name, p.Address, p.Status(),
		roundString(p.Points),
		roundString(p.TotalBuyValue()),
		roundString(p.TotalSellValue()),
		roundString(p.SellPaidValue()))
}

// Render representación canónica `id|round(maxPrice)|stock`.
func (p *SimpleProduct) Render() string {
	return fmt.Sprintf("%s|%s|%d", p.ID(), roundString(p.MaxPrice()), p.Stock())
}

// Render representación canónica
// `id|round(maxPrice)|stock|multiplier|comp:qty#comp:qty...`.
func (p *DerivativeProduct) Render() string {
	parts := make([]string, len(p.recipe))
	for i, c := range p.recipe {
		parts[i] = fmt.Sprintf("%s:%d", c.ProductID, c.Quantity)
	}
	return fmt.Sprintf("%s|%s|%d|%s|%s",
		p.ID(), roundString(p.MaxPrice()), p.Stock(), p.multiplier.String(), strings.Join(parts, "#"))
}
