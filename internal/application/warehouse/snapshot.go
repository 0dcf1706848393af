package warehouse

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// Snapshots: el estado completo de la bodega como JSON. El formato de bytes
// lo consume un SnapshotStore; aquí solo se define el export/import lógico.

type componentSnap struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type productSnap struct {
	ID         string           `json:"id"`
	MaxPrice   decimal.Decimal  `json:"max_price"`
	Multiplier *decimal.Decimal `json:"multiplier,omitempty"`
	Recipe     []componentSnap  `json:"recipe,omitempty"`
}

type notificationSnap struct {
	Type      string          `json:"type"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
}

type partnerSnap struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Address       string             `json:"address"`
	Points        decimal.Decimal    `json:"points"`
	Muted         []string           `json:"muted,omitempty"`
	Notifications []notificationSnap `json:"notifications,omitempty"`
}

type batchSnap struct {
	ID        int             `json:"id"`
	ProductID string          `json:"product_id"`
	PartnerID string          `json:"partner_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type receiptSnap struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type transactionSnap struct {
	ID        int                    `json:"id"`
	Kind      entity.TransactionKind `json:"kind"`
	PartnerID string                 `json:"partner_id"`
	ProductID string                 `json:"product_id"`
	Amount    int                    `json:"amount"`
	Base      decimal.Decimal        `json:"base_value"`
	Created   int                    `json:"created"`
	Deadline  int                    `json:"deadline"`
	PaidDate  *int                   `json:"paid_date,omitempty"`
	PaidValue decimal.Decimal        `json:"paid_value"`
	Receipt   []receiptSnap          `json:"receipt,omitempty"`
}

type snapshot struct {
	Date         int               `json:"date"`
	Available    decimal.Decimal   `json:"available"`
	NextBatchID  int               `json:"next_batch_id"`
	Products     []productSnap     `json:"products"`
	Partners     []partnerSnap     `json:"partners"`
	Batches      []batchSnap       `json:"batches"`
	Transactions []transactionSnap `json:"transactions"`
}

// Snapshot serializa el estado completo de la bodega.
func (w *Warehouse) Snapshot() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := snapshot{
		Date:        w.date,
		Available:   w.available,
		NextBatchID: w.nextBatch,
	}

	for _, p := range w.products {
		ps := productSnap{ID: p.ID(), MaxPrice: p.MaxPrice()}
		if d, ok := p.(*entity.DerivativeProduct); ok {
			m := d.Multiplier()
			ps.Multiplier = &m
			for _, c := range d.Recipe() {
				ps.Recipe = append(ps.Recipe, componentSnap{ProductID: c.ProductID, Quantity: c.Quantity})
			}
		}
		snap.Products = append(snap.Products, ps)
	}

	for _, p := range w.partners {
		ps := partnerSnap{
			ID:      p.ID,
			Name:    p.Name,
			Address: p.Address,
			Points:  p.Points,
			Muted:   p.Mailbox.MutedProducts(),
		}
		for _, n := range p.Mailbox.List("") {
			ps.Notifications = append(ps.Notifications, notificationSnap{Type: n.Type, ProductID: n.ProductID, Price: n.Price})
		}
		snap.Partners = append(snap.Partners, ps)
	}

	for _, b := range w.batches {
		snap.Batches = append(snap.Batches, batchSnap{
			ID: b.ID, ProductID: b.ProductID, PartnerID: b.PartnerID, Price: b.Price, Quantity: b.Quantity,
		})
	}

	for _, t := range w.ledger {
		ts := transactionSnap{
			ID:        t.ID(),
			Kind:      t.Kind(),
			PartnerID: t.PartnerID(),
			ProductID: t.ProductID(),
			Amount:    t.Amount(),
			Base:      t.BaseValue(),
			Created:   t.CreatedDate(),
			Deadline:  t.Deadline(),
		}
		if paid, ok := t.PaidDate(); ok {
			ts.PaidDate = &paid
			ts.PaidValue = t.RealValue(paid)
		}
		if b, ok := t.(*entity.Breakdown); ok {
			for _, e := range b.Receipt() {
				ts.Receipt = append(ts.Receipt, receiptSnap{ProductID: e.ProductID, Quantity: e.Quantity, Price: e.Price})
			}
		}
		snap.Transactions = append(snap.Transactions, ts)
	}

	return json.Marshal(snap)
}

// Restore reemplaza el estado de la bodega por el del snapshot. El stock de
// cada producto se recalcula desde los lotes vivos; los historiales de los
// socios se reconstruyen desde el libro mayor en orden de id.
func (w *Warehouse) Restore(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decodificar snapshot: %w", err)
	}

	w.date = snap.Date
	w.available = snap.Available
	w.nextBatch = snap.NextBatchID
	w.products = make(map[string]entity.Product, len(snap.Products))
	w.partners = make(map[string]*entity.Partner, len(snap.Partners))
	w.batches = make(map[int]*entity.Batch, len(snap.Batches))
	w.byProduct = make(map[string]map[int]struct{}, len(snap.Products))
	w.byPartner = make(map[string]map[int]struct{}, len(snap.Partners))
	w.ledger = nil
	w.station = newStation()

	// Productos: los derivados pueden referenciar componentes aún no vistos,
	// así que primero entran todos los simples y luego los derivados.
	for _, ps := range snap.Products {
		if ps.Multiplier != nil {
			continue
		}
		p := entity.NewSimpleProduct(ps.ID)
		p.RaiseMaxPrice(ps.MaxPrice)
		key := w.cmp.Key(ps.ID)
		w.products[key] = p
		w.byProduct[key] = make(map[int]struct{})
	}
	for _, ps := range snap.Products {
		if ps.Multiplier == nil {
			continue
		}
		recipe := make(entity.Recipe, 0, len(ps.Recipe))
		for _, c := range ps.Recipe {
			recipe = append(recipe, entity.Component{ProductID: c.ProductID, Quantity: c.Quantity})
		}
		p := entity.NewDerivativeProduct(ps.ID, recipe, *ps.Multiplier)
		p.RaiseMaxPrice(ps.MaxPrice)
		key := w.cmp.Key(ps.ID)
		w.products[key] = p
		w.byProduct[key] = make(map[int]struct{})
	}

	for _, ps := range snap.Partners {
		p := entity.NewPartner(ps.ID, ps.Name, ps.Address)
		p.Points = ps.Points
		for _, muted := range ps.Muted {
			p.Mailbox.Toggle(muted)
		}
		for _, n := range ps.Notifications {
			p.Mailbox.Deliver(entity.Notification{Type: n.Type, ProductID: n.ProductID, Price: n.Price})
		}
		key := w.cmp.Key(ps.ID)
		w.partners[key] = p
		w.byPartner[key] = make(map[int]struct{})
		w.station.register(key, p.Mailbox)
	}

	for _, bs := range snap.Batches {
		product, err := w.lookupProduct(bs.ProductID)
		if err != nil {
			return fmt.Errorf("snapshot inconsistente: %w", err)
		}
		partner, err := w.lookupPartner(bs.PartnerID)
		if err != nil {
			return fmt.Errorf("snapshot inconsistente: %w", err)
		}
		b := &entity.Batch{ID: bs.ID, ProductID: bs.ProductID, PartnerID: bs.PartnerID, Price: bs.Price, Quantity: bs.Quantity}
		w.batches[b.ID] = b
		w.byProduct[w.cmp.Key(b.ProductID)][b.ID] = struct{}{}
		w.byPartner[w.cmp.Key(b.PartnerID)][b.ID] = struct{}{}
		partner.Batches[b.ID] = struct{}{}
		product.AddStock(b.Quantity)
		if b.ID >= w.nextBatch {
			w.nextBatch = b.ID + 1
		}
	}

	for _, ts := range snap.Transactions {
		receipt := make(entity.Receipt, 0, len(ts.Receipt))
		for _, e := range ts.Receipt {
			receipt = append(receipt, entity.ReceiptEntry{ProductID: e.ProductID, Quantity: e.Quantity, Price: e.Price})
		}
		tx := entity.RestoreTransaction(ts.Kind, ts.ID, ts.PartnerID, ts.ProductID, ts.Amount,
			ts.Base, ts.Created, ts.Deadline, ts.PaidDate, ts.PaidValue, receipt, w.valuation)
		w.ledger = append(w.ledger, tx)

		partner, err := w.lookupPartner(ts.PartnerID)
		if err != nil {
			return fmt.Errorf("snapshot inconsistente: %w", err)
		}
		if ts.Kind == entity.KindAcquisition {
			partner.Acquisitions = append(partner.Acquisitions, tx)
		} else {
			partner.Sales = append(partner.Sales, tx)
		}
	}

	w.log.Info().
		Int("date", w.date).
		Int("products", len(w.products)).
		Int("partners", len(w.partners)).
		Int("batches", len(w.batches)).
		Int("transactions", len(w.ledger)).
		Msg("estado restaurado desde snapshot")
	return nil
}
