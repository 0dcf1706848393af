package warehouse

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// Acquire compra amount unidades de un producto ya registrado al socio, a
// price por unidad. El pago de una adquisición se liquida en el acto: el
// saldo disponible baja amount × price al crearse la transacción.
func (w *Warehouse) Acquire(partnerID, productID string, amount int, price decimal.Decimal) (*entity.Acquisition, error) {
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
	return w.acquire(partner, product, amount, price, false), nil
}

// AcquireNewSimple compra registrando el producto simple si aún no existe.
// El primer registro de un producto no emite notificaciones.
func (w *Warehouse) AcquireNewSimple(partnerID, productID string, amount int, price decimal.Decimal) (*entity.Acquisition, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	partner, err := w.lookupPartner(partnerID)
	if err != nil {
		return nil, err
	}
	product, created, err := w.upsertSimple(productID)
	if err != nil {
		return nil, err
	}
	return w.acquire(partner, product, amount, price, created), nil
}

// AcquireNewDerivative compra registrando el producto derivado si aún no
// existe. La receta solo se usa en el primer registro; los componentes deben
// estar ya registrados y la receta ser acíclica.
func (w *Warehouse) AcquireNewDerivative(partnerID, productID string, amount int, price decimal.Decimal, multiplier decimal.Decimal, recipe entity.Recipe) (*entity.Acquisition, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	partner, err := w.lookupPartner(partnerID)
	if err != nil {
		return nil, err
	}
	product, created, err := w.upsertDerivative(productID, recipe, multiplier)
	if err != nil {
		return nil, err
	}
	return w.acquire(partner, product, amount, price, created), nil
}

// acquire ejecuta la adquisición: debita el saldo, evalúa las reglas de
// notificación contra el estado previo a la compra, registra el lote y crea
// la transacción liquidada.
func (w *Warehouse) acquire(partner *entity.Partner, product entity.Product, amount int, price decimal.Decimal, isNewRegistration bool) *entity.Acquisition {
	value := price.Mul(decimal.NewFromInt(int64(amount)))
	w.available = w.available.Sub(value)

	// Reglas sobre el estado pre-adquisición: NEW si el producto estaba sin
	// stock (y no es su primer registro); BARGAIN si existía un lote más caro
	// que el precio entrante como mínimo.
	if !isNewRegistration && product.Stock() == 0 {
		w.emit(entity.Notification{Type: entity.NotificationNew, ProductID: product.ID(), Price: price})
	}
	if cheapest := w.cheapestBatch(product); cheapest != nil && cheapest.Price.GreaterThan(price) {
		w.emit(entity.Notification{Type: entity.NotificationBargain, ProductID: product.ID(), Price: price})
	}

	w.registerBatch(product, partner, price, amount)

	tx := entity.NewAcquisition(w.nextTransactionID(), partner.ID, product.ID(), amount, value, w.date)
	w.appendTransaction(tx)
	partner.Acquisitions = append(partner.Acquisitions, tx)

	w.log.Info().
		Int("tx", tx.ID()).
		Str("partner", partner.ID).
		Str("product", product.ID()).
		Int("amount", amount).
		Str("value", value.String()).
		Msg("adquisición registrada")
	return tx
}
