package warehouse

import (
	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// Estación de notificaciones: mantiene el buzón de cada socio registrado y
// reparte los eventos de precio a todos los buzones salvo los que tienen el
// producto silenciado.

type station struct {
	mailboxes map[string]*entity.Mailbox // clave canónica de socio -> buzón
}

func newStation() *station {
	return &station{mailboxes: make(map[string]*entity.Mailbox)}
}

// register da de alta el buzón de un socio (uno por socio, al registrarse).
func (s *station) register(partnerKey string, mb *entity.Mailbox) {
	s.mailboxes[partnerKey] = mb
}

// emit entrega el evento a todos los buzones sin el producto silenciado.
func (w *Warehouse) emit(n entity.Notification) {
	productKey := w.cmp.Key(n.ProductID)
	for _, mb := range w.station.mailboxes {
		if !mb.Muted(productKey) {
			mb.Deliver(n)
		}
	}
	w.log.Debug().Str("type", n.Type).Str("product", n.ProductID).Msg("notificación emitida")
}

// PartnerNotifications devuelve las notificaciones del socio filtradas por
// tipo de evento (typeTag vacío = todas), sin consumirlas.
func (w *Warehouse) PartnerNotifications(partnerID, typeTag string) ([]entity.Notification, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	partner, err := w.lookupPartner(partnerID)
	if err != nil {
		return nil, err
	}
	return partner.Mailbox.List(typeTag), nil
}

// ReadPartnerNotifications devuelve todas las notificaciones del socio y
// vacía el buzón: las notificaciones se consumen al mostrarse.
func (w *Warehouse) ReadPartnerNotifications(partnerID string) ([]entity.Notification, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	partner, err := w.lookupPartner(partnerID)
	if err != nil {
		return nil, err
	}
	out := partner.Mailbox.List("")
	partner.Mailbox.Clear()
	return out, nil
}

// ToggleProductNotifications invierte el silenciado del producto en el buzón
// del socio; devuelve true si el producto quedó silenciado.
func (w *Warehouse) ToggleProductNotifications(partnerID, productID string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	partner, err := w.lookupPartner(partnerID)
	if err != nil {
		return false, err
	}
	if _, err := w.lookupProduct(productID); err != nil {
		return false, err
	}
	return partner.Mailbox.Toggle(w.cmp.Key(productID)), nil
}
