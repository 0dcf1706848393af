package warehouse

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain"
	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// Resolutor de fabricación: produce stock de productos derivados bajo demanda
// fabricando recursivamente los componentes derivados en falta.

var one = decimal.NewFromInt(1)

// validateRecipe comprueba que todos los componentes existen y que la receta
// no alcanza transitivamente al propio producto. Las recetas de los
// componentes ya registrados son acíclicas por inducción, de modo que basta
// con buscar el id nuevo en la clausura.
func (w *Warehouse) validateRecipe(id string, recipe entity.Recipe) error {
	key := w.cmp.Key(id)
	var walk func(r entity.Recipe) error
	walk = func(r entity.Recipe) error {
		for _, c := range r {
			if w.cmp.Key(c.ProductID) == key {
				return &domain.CyclicRecipeError{ProductID: id}
			}
			comp, err := w.lookupProduct(c.ProductID)
			if err != nil {
				return err
			}
			if d, ok := comp.(*entity.DerivativeProduct); ok {
				if err := walk(d.Recipe()); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(recipe)
}

// craftable simula si qty unidades extra del derivado pueden fabricarse con
// el stock actual, bajando por el árbol de recetas hasta las hojas simples.
// Devuelve nil si es satisfacible; si no, un StockShortageError que nombra el
// primer producto simple en falta del recorrido en profundidad, con la
// cantidad pedida en ese punto y la que hay en mano.
//
// La simulación trabaja sobre una copia de los niveles de stock para que los
// componentes compartidos entre ramas no se cuenten dos veces.
func (w *Warehouse) craftable(product *entity.DerivativeProduct, qty int) error {
	avail := make(map[string]int, len(w.products))
	for key, p := range w.products {
		avail[key] = p.Stock()
	}
	// qty es el déficit neto: el stock propio del derivado ya está descontado.
	avail[w.cmp.Key(product.ID())] = 0

	var require func(p entity.Product, need int) error
	require = func(p entity.Product, need int) error {
		key := w.cmp.Key(p.ID())
		take := avail[key]
		if take > need {
			take = need
		}
		avail[key] -= take
		rest := need - take
		if rest == 0 {
			return nil
		}
		d, ok := p.(*entity.DerivativeProduct)
		if !ok {
			return &domain.StockShortageError{
				ProductID: p.ID(),
				Requested: need,
				Available: p.Stock(),
			}
		}
		for _, c := range d.Recipe() {
			comp, err := w.lookupProduct(c.ProductID)
			if err != nil {
				return err
			}
			if err := require(comp, rest*c.Quantity); err != nil {
				return err
			}
		}
		return nil
	}
	return require(product, qty)
}

// craft fabrica qty lotes nuevos de una unidad del derivado, uno a uno. Por
// cada unidad consume los componentes de la receta (fabricando antes el
// déficit de los componentes derivados) y registra un lote a precio
// coste × (1 + multiplicador). Como el consumo puede agotar lotes baratos
// entre iteraciones, unidades sucesivas pueden salir a precios distintos.
//
// Un componente simple con stock insuficiente es un StockShortageError: la
// fabricación solo aplica a componentes derivados. Los callers comprueban
// antes la viabilidad con craftable, de modo que en el camino de venta este
// error no se alcanza.
func (w *Warehouse) craft(product *entity.DerivativeProduct, partner *entity.Partner, qty int) error {
	for unit := 0; unit < qty; unit++ {
		cost := decimal.Zero
		for _, c := range product.Recipe() {
			comp, err := w.lookupProduct(c.ProductID)
			if err != nil {
				return err
			}
			if comp.Stock() < c.Quantity {
				shortfall := c.Quantity - comp.Stock()
				d, ok := comp.(*entity.DerivativeProduct)
				if !ok {
					return &domain.StockShortageError{
						ProductID: comp.ID(),
						Requested: c.Quantity,
						Available: comp.Stock(),
					}
				}
				if err := w.craft(d, partner, shortfall); err != nil {
					return err
				}
			}
			cost = cost.Add(w.consume(comp, c.Quantity))
		}
		price := cost.Mul(one.Add(product.Multiplier()))
		w.registerBatch(product, partner, price, 1)
	}
	return nil
}
