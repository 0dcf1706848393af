package warehouse

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// Contabilidad de saldos y transición de pago.
//
// El saldo disponible es caja realizada: solo lo mueven las adquisiciones,
// las desagregaciones y Pay. El saldo contabilístico se deriva en cada
// lectura y nunca se cachea.

// loyaltyFactor puntos otorgados por unidad de valor pagada puntualmente.
var loyaltyFactor = decimal.NewFromInt(10)

// AvailableBalance saldo disponible (caja realizada).
func (w *Warehouse) AvailableBalance() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.available
}

// ContabilisticBalance saldo acumulado: disponible más el valor real a fecha
// de hoy de todas las transacciones sin pagar, recalculado en cada lectura.
func (w *Warehouse) ContabilisticBalance() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	total := w.available
	for _, t := range w.ledger {
		if !t.Paid() {
			total = total.Add(t.RealValue(w.date))
		}
	}
	return total
}

// Pay liquida una transacción del libro mayor. Es idempotente: sobre una
// transacción ya pagada no hace nada y devuelve la transacción tal cual.
//
// Al pagar se congela el valor real a la fecha actual, se estampa la fecha de
// pago y el valor pasa al saldo disponible. Una venta pagada dentro de su
// plazo acumula puntos de fidelidad para el socio.
func (w *Warehouse) Pay(txID int) (entity.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	tx, err := w.lookupTransaction(txID)
	if err != nil {
		return nil, err
	}
	if tx.Paid() {
		return tx, nil
	}

	value := tx.Settle(w.date)
	w.available = w.available.Add(value)

	if tx.Kind() == entity.KindSale {
		onTime := w.date <= tx.CreatedDate()+tx.Deadline()
		if onTime && value.GreaterThan(decimal.Zero) {
			if partner, perr := w.lookupPartner(tx.PartnerID()); perr == nil {
				partner.AddPoints(value.Mul(loyaltyFactor))
			}
		}
	}

	w.log.Info().
		Int("tx", tx.ID()).
		Str("value", value.String()).
		Int("date", w.date).
		Msg("transacción pagada")
	return tx, nil
}
