package warehouse

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// Almacén de inventario: registro de lotes en la arena, consulta del lote más
// barato y consumo voraz del stock más barato primero.

// batchLess orden canónico de lotes: productId colado, partnerId colado,
// precio, cantidad. También desempata el consumo más-barato-primero.
func (w *Warehouse) batchLess(a, b *entity.Batch) bool {
	if c := w.cmp.Compare(a.ProductID, b.ProductID); c != 0 {
		return c < 0
	}
	if c := w.cmp.Compare(a.PartnerID, b.PartnerID); c != 0 {
		return c < 0
	}
	if !a.Price.Equal(b.Price) {
		return a.Price.LessThan(b.Price)
	}
	return a.Quantity < b.Quantity
}

// registerBatch crea un lote en la arena, lo enlaza en los índices del
// producto y del socio, sube el techo de precio del producto si procede y
// aumenta su stock. Un qty no positivo solo declara el precio: sube el techo
// sin dejar lotes muertos en la arena.
func (w *Warehouse) registerBatch(product entity.Product, partner *entity.Partner, price decimal.Decimal, qty int) *entity.Batch {
	if qty <= 0 {
		product.RaiseMaxPrice(price)
		return nil
	}
	b := &entity.Batch{
		ID:        w.nextBatch,
		ProductID: product.ID(),
		PartnerID: partner.ID,
		Price:     price,
		Quantity:  qty,
	}
	w.nextBatch++

	w.batches[b.ID] = b
	w.byProduct[w.cmp.Key(b.ProductID)][b.ID] = struct{}{}
	w.byPartner[w.cmp.Key(b.PartnerID)][b.ID] = struct{}{}
	partner.Batches[b.ID] = struct{}{}

	product.RaiseMaxPrice(price)
	product.AddStock(qty)
	return b
}

// removeBatch destruye un lote muerto: lo retira de la arena y de todos los
// índices que lo referencian.
func (w *Warehouse) removeBatch(b *entity.Batch) {
	delete(w.batches, b.ID)
	delete(w.byProduct[w.cmp.Key(b.ProductID)], b.ID)
	partnerKey := w.cmp.Key(b.PartnerID)
	delete(w.byPartner[partnerKey], b.ID)
	if p, ok := w.partners[partnerKey]; ok {
		delete(p.Batches, b.ID)
	}
}

// cheapestBatch devuelve el lote vivo de menor precio del producto, o nil si
// no tiene lotes. Los empates se resuelven por el orden canónico.
func (w *Warehouse) cheapestBatch(product entity.Product) *entity.Batch {
	var best *entity.Batch
	for id := range w.byProduct[w.cmp.Key(product.ID())] {
		b := w.batches[id]
		if best == nil || w.batchLess(b, best) {
			best = b
		}
	}
	return best
}

// consume drena qty unidades del producto empezando siempre por el lote más
// barato y devuelve el coste total (suma del precio de origen de cada unidad).
// Precondición del caller: product.Stock() >= qty; violarla agota los lotes.
func (w *Warehouse) consume(product entity.Product, qty int) decimal.Decimal {
	cost := decimal.Zero
	remaining := qty
	for remaining > 0 {
		b := w.cheapestBatch(product)
		if b == nil {
			break // violación de contrato del caller
		}
		take := remaining
		if take > b.Quantity {
			take = b.Quantity
		}
		cost = cost.Add(b.Price.Mul(decimal.NewFromInt(int64(take))))
		b.Quantity -= take
		remaining -= take
		if !b.Alive() {
			w.removeBatch(b)
		}
	}
	product.AddStock(-(qty - remaining))
	return cost
}

// sortedBatches materializa un índice de lotes en el orden canónico.
func (w *Warehouse) sortedBatches(ids map[int]struct{}) []*entity.Batch {
	out := make([]*entity.Batch, 0, len(ids))
	for id := range ids {
		out = append(out, w.batches[id])
	}
	sort.Slice(out, func(i, j int) bool { return w.batchLess(out[i], out[j]) })
	return out
}

// Batches lista todos los lotes vivos en el orden canónico.
func (w *Warehouse) Batches() []*entity.Batch {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make(map[int]struct{}, len(w.batches))
	for id := range w.batches {
		ids[id] = struct{}{}
	}
	return w.sortedBatches(ids)
}

// BatchesByPartner lista los lotes vivos suministrados por el socio.
func (w *Warehouse) BatchesByPartner(partnerID string) ([]*entity.Batch, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.lookupPartner(partnerID); err != nil {
		return nil, err
	}
	return w.sortedBatches(w.byPartner[w.cmp.Key(partnerID)]), nil
}

// BatchesByProduct lista los lotes vivos del producto.
func (w *Warehouse) BatchesByProduct(productID string) ([]*entity.Batch, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.lookupProduct(productID); err != nil {
		return nil, err
	}
	return w.sortedBatches(w.byProduct[w.cmp.Key(productID)]), nil
}

// BatchesUnderPrice lista los lotes vivos con precio estrictamente menor que
// limit, en el orden canónico.
func (w *Warehouse) BatchesUnderPrice(limit decimal.Decimal) []*entity.Batch {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make(map[int]struct{})
	for id, b := range w.batches {
		if b.Price.LessThan(limit) {
			ids[id] = struct{}{}
		}
	}
	return w.sortedBatches(ids)
}

// CheapestBatch devuelve el lote más barato del producto, o nil si no tiene.
func (w *Warehouse) CheapestBatch(productID string) (*entity.Batch, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, err := w.lookupProduct(productID)
	if err != nil {
		return nil, err
	}
	return w.cheapestBatch(p), nil
}
