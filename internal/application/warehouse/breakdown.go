package warehouse

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain"
	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// AttemptBreakdown desagrega amount unidades de un producto derivado del
// socio de vuelta a sus componentes de receta.
//
// Requiere stock suficiente del producto. Para productos simples no hay nada
// que descomponer: la operación es un no-op y devuelve (nil, nil).
//
// El producto se consume a su coste de origen; cada componente reingresa como
// un lote nuevo del mismo socio, a su precio máximo histórico si está sin
// stock o al precio de su lote más barato si no lo está. El valor neto de la
// transacción es coste − créditos de reingreso (normalmente negativo) y se
// liquida inmediatamente, sin diferimiento. El recibo registra el precio de
// reingreso elegido para cada componente.
func (w *Warehouse) AttemptBreakdown(partnerID, productID string, amount int) (*entity.Breakdown, error) {
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
	derivative, ok := product.(*entity.DerivativeProduct)
	if !ok {
		return nil, nil
	}
	if product.Stock() < amount {
		return nil, &domain.StockShortageError{
			ProductID: product.ID(),
			Requested: amount,
			Available: product.Stock(),
		}
	}

	price := w.consume(product, amount)

	receipt := make(entity.Receipt, 0, len(derivative.Recipe()))
	for _, c := range derivative.Recipe() {
		comp, err := w.lookupProduct(c.ProductID)
		if err != nil {
			return nil, err
		}
		// Precio de reingreso: máximo histórico si el componente está sin
		// stock, si no el precio de su lote más barato.
		var compPrice decimal.Decimal
		if comp.Stock() == 0 {
			compPrice = comp.MaxPrice()
		} else {
			compPrice = w.cheapestBatch(comp).Price
		}
		qty := amount * c.Quantity
		w.registerBatch(comp, partner, compPrice, qty)
		price = price.Sub(compPrice.Mul(decimal.NewFromInt(int64(qty))))
		receipt = append(receipt, entity.ReceiptEntry{ProductID: comp.ID(), Quantity: qty, Price: compPrice})
	}

	tx := entity.NewBreakdown(w.nextTransactionID(), partner.ID, product.ID(), amount, price, w.date, receipt)
	w.appendTransaction(tx)
	partner.Sales = append(partner.Sales, tx)

	// Liquidación inmediata: el valor neto entra al saldo disponible y, si es
	// positivo y puntual por construcción, acumula puntos de fidelidad.
	w.available = w.available.Add(price)
	if price.GreaterThan(decimal.Zero) {
		partner.AddPoints(price.Mul(loyaltyFactor))
	}

	w.log.Info().
		Int("tx", tx.ID()).
		Str("partner", partner.ID).
		Str("product", product.ID()).
		Int("amount", amount).
		Str("value", price.String()).
		Msg("desagregación registrada")
	return tx, nil
}
