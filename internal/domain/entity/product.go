package entity

import (
	"github.com/shopspring/decimal"
)

// Product es la vista común sobre productos simples y derivados.
// El stock actual y el precio máximo histórico se mantienen aquí; los lotes
// vivos que los respaldan viven en la arena de la bodega.
type Product interface {
	ID() string
	// MaxPrice es el techo monótono sobre todos los lotes registrados del producto.
	MaxPrice() decimal.Decimal
	// RaiseMaxPrice sube el techo si price lo supera; nunca lo baja.
	RaiseMaxPrice(price decimal.Decimal)
	// Stock unidades vivas (suma de cantidades de los lotes del producto).
	Stock() int
	// AddStock ajusta el stock mantenido; delta puede ser negativo al consumir.
	AddStock(delta int)
	// Render representación canónica pipe-delimited del producto.
	Render() string
}

type productBase struct {
	id       string
	maxPrice decimal.Decimal
	stock    int
}

func (p *productBase) ID() string                { return p.id }
func (p *productBase) MaxPrice() decimal.Decimal { return p.maxPrice }
func (p *productBase) Stock() int                { return p.stock }
func (p *productBase) AddStock(delta int)        { p.stock += delta }

func (p *productBase) RaiseMaxPrice(price decimal.Decimal) {
	if price.GreaterThan(p.maxPrice) {
		p.maxPrice = price
	}
}

// SimpleProduct producto hoja, sin receta.
type SimpleProduct struct {
	productBase
}

// NewSimpleProduct crea un producto simple con stock cero.
func NewSimpleProduct(id string) *SimpleProduct {
	return &SimpleProduct{productBase{id: id}}
}

// DerivativeProduct producto fabricado a partir de una receta sobre otros
// productos, con un factor de margen sobre el coste de fabricación.
type DerivativeProduct struct {
	productBase
	recipe     Recipe
	multiplier decimal.Decimal
}

// NewDerivativeProduct crea un producto derivado con stock cero.
func NewDerivativeProduct(id string, recipe Recipe, multiplier decimal.Decimal) *DerivativeProduct {
	return &DerivativeProduct{
		productBase: productBase{id: id},
		recipe:      recipe,
		multiplier:  multiplier,
	}
}

// Recipe devuelve la receta del producto.
func (p *DerivativeProduct) Recipe() Recipe { return p.recipe }

// Multiplier devuelve el factor de margen de fabricación.
func (p *DerivativeProduct) Multiplier() decimal.Decimal { return p.multiplier }

// Component un ingrediente de una receta: qty unidades del producto
// identificado por ProductID para fabricar una unidad del derivado.
type Component struct {
	ProductID string
	Quantity  int
}

// Recipe lista ordenada de componentes. El orden es relevante: el recorrido
// en profundidad que reporta el primer componente en falta sigue este orden.
type Recipe []Component
