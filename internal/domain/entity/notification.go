package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tipos de evento de precio emitidos por la estación de notificaciones.
const (
	NotificationNew     = "NEW"     // producto sin stock vuelve a estar disponible
	NotificationBargain = "BARGAIN" // aparece un lote más barato que el mínimo previo
)

// Notification un evento de precio sobre un producto.
type Notification struct {
	Type      string
	ProductID string
	Price     decimal.Decimal
}

// Render representación canónica `type|productId|round(price)`.
func (n Notification) Render() string {
	return fmt.Sprintf("%s|%s|%s", n.Type, n.ProductID, roundString(n.Price))
}

// Mailbox buzón de un socio: notificaciones entregadas en orden de inserción
// más el conjunto de productos silenciados. Un producto silenciado no recibe
// entregas; el interruptor puede cambiarse en cualquier momento.
type Mailbox struct {
	notifications []Notification
	muted         map[string]struct{} // claves canónicas de producto
}

// NewMailbox crea un buzón vacío sin productos silenciados.
func NewMailbox() *Mailbox {
	return &Mailbox{muted: make(map[string]struct{})}
}

// Deliver añade una notificación al final del buzón.
func (m *Mailbox) Deliver(n Notification) {
	m.notifications = append(m.notifications, n)
}

// List devuelve las notificaciones del tipo dado en orden de entrega.
// typeTag vacío = todos los tipos.
func (m *Mailbox) List(typeTag string) []Notification {
	if typeTag == "" {
		return append([]Notification(nil), m.notifications...)
	}
	var out []Notification
	for _, n := range m.notifications {
		if n.Type == typeTag {
			out = append(out, n)
		}
	}
	return out
}

// Clear vacía el buzón (las notificaciones se consumen al mostrarse).
func (m *Mailbox) Clear() {
	m.notifications = nil
}

// Toggle invierte el silenciado del producto; devuelve true si quedó silenciado.
func (m *Mailbox) Toggle(productKey string) bool {
	if _, ok := m.muted[productKey]; ok {
		delete(m.muted, productKey)
		return false
	}
	m.muted[productKey] = struct{}{}
	return true
}

// Muted indica si el producto está silenciado en este buzón.
func (m *Mailbox) Muted(productKey string) bool {
	_, ok := m.muted[productKey]
	return ok
}

// MutedProducts claves de los productos silenciados (para snapshots).
func (m *Mailbox) MutedProducts() []string {
	out := make([]string, 0, len(m.muted))
	for k := range m.muted {
		out = append(out, k)
	}
	return out
}
