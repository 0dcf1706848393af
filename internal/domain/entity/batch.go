package entity

import (
	"github.com/shopspring/decimal"
)

// Batch un lote de stock: cantidad de un producto suministrada por un socio a
// un precio unitario. La identidad (producto, socio, precio) es inmutable; la
// cantidad baja al consumir y el lote muere al llegar a cero, momento en el
// que la bodega lo retira de la arena y de todos los índices.
type Batch struct {
	ID        int // id de arena, asignado por la bodega
	ProductID string
	PartnerID string
	Price     decimal.Decimal
	Quantity  int
}

// Alive indica si el lote sigue teniendo stock.
func (b *Batch) Alive() bool { return b.Quantity > 0 }
