package warehouse

import (
	"github.com/jhoicas/bodega-core/internal/domain"
	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// AttemptSale vende amount unidades del producto al socio con pago diferido
// hasta deadline (días desde hoy).
//
// Si el stock alcanza, consume directamente. Si no y el producto es derivado,
// comprueba si el déficit es satisfacible fabricando (bajando hasta las hojas
// simples de la receta); si lo es, fabrica el déficit y reintenta el consumo
// exactamente una vez, con éxito garantizado. En caso contrario falla con un
// StockShortageError: para productos simples nombra al propio producto; para
// derivados, al primer componente simple en falta del recorrido en
// profundidad de la receta.
//
// En éxito crea la venta con baseValue igual al coste del consumo, la entra
// al libro mayor y al historial del socio. El pago no ocurre aquí.
func (w *Warehouse) AttemptSale(partnerID, productID string, amount, deadline int) (*entity.Sale, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	partner, err := w.lookupPartner(partnerID)
	if err != nil {
		return nil, err
	}
	product, err := w.lookupProduct(productID)
	if err != nil {
		return nil, err
	}

	if product.Stock() < amount {
		derivative, ok := product.(*entity.DerivativeProduct)
		if !ok {
			return nil, &domain.StockShortageError{
				ProductID: product.ID(),
				Requested: amount,
				Available: product.Stock(),
			}
		}
		shortfall := amount - product.Stock()
		if err := w.craftable(derivative, shortfall); err != nil {
			return nil, err
		}
		// Viabilidad confirmada: las mutaciones de la fabricación van camino
		// de un resultado garantizado.
		if err := w.craft(derivative, partner, shortfall); err != nil {
			return nil, err
		}
	}

	price := w.consume(product, amount)
	sale := entity.NewSale(w.nextTransactionID(), partner.ID, product.ID(), amount, price, w.date, deadline, w.valuation)
	w.appendTransaction(sale)
	partner.Sales = append(partner.Sales, sale)

	w.log.Info().
		Int("tx", sale.ID()).
		Str("partner", partner.ID).
		Str("product", product.ID()).
		Int("amount", amount).
		Str("value", price.String()).
		Msg("venta registrada")
	return sale, nil
}
