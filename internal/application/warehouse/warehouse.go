package warehouse

import (
	"sort"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain"
	"github.com/jhoicas/bodega-core/internal/domain/entity"
	"github.com/jhoicas/bodega-core/pkg/collate"
	"github.com/jhoicas/bodega-core/pkg/logger"
)

// Warehouse es el agregado raíz del motor de inventario: reloj lógico (contador
// de días), saldo disponible, registro de productos y socios, arena de lotes
// con sus índices, libro mayor de transacciones y estación de notificaciones.
//
// Es una estructura de un solo escritor. Todos los métodos exportados
// serializan tras un único mutex; los invariantes internos (consistencia de
// índices, monotonía de ids del libro mayor, consistencia de saldos) no son
// seguros bajo mutación concurrente sin esa serialización.
type Warehouse struct {
	mu sync.Mutex

	cmp       *collate.Comparator
	valuation entity.ValuationFunc
	log       *logger.Logger

	date      int
	available decimal.Decimal

	products map[string]entity.Product  // clave canónica -> producto
	partners map[string]*entity.Partner // clave canónica -> socio

	// Arena de lotes: los productos y socios solo guardan ids de arena,
	// nunca punteros, evitando ciclos de referencias.
	batches   map[int]*entity.Batch
	byProduct map[string]map[int]struct{}
	byPartner map[string]map[int]struct{}
	nextBatch int

	ledger  []entity.Transaction
	station *station
}

// Option configura la bodega en construcción.
type Option func(*Warehouse)

// WithComparator fija el comparador de ids (por defecto ordinal case-insensitive).
func WithComparator(cmp *collate.Comparator) Option {
	return func(w *Warehouse) { w.cmp = cmp }
}

// WithValuation fija la función de valoración de transacciones no pagadas.
func WithValuation(v entity.ValuationFunc) Option {
	return func(w *Warehouse) { w.valuation = v }
}

// WithLogger fija el logger del motor.
func WithLogger(l *logger.Logger) Option {
	return func(w *Warehouse) { w.log = l }
}

// New construye una bodega vacía en el día 0 con saldo cero.
func New(opts ...Option) *Warehouse {
	w := &Warehouse{
		available: decimal.Zero,
		products:  make(map[string]entity.Product),
		partners:  make(map[string]*entity.Partner),
		batches:   make(map[int]*entity.Batch),
		byProduct: make(map[string]map[int]struct{}),
		byPartner: make(map[string]map[int]struct{}),
		station:   newStation(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.cmp == nil {
		w.cmp, _ = collate.New("")
	}
	if w.valuation == nil {
		w.valuation = entity.IdentityValuation
	}
	if w.log == nil {
		w.log = logger.Nop()
	}
	return w
}

// Date día actual del reloj lógico.
func (w *Warehouse) Date() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.date
}

// AdvanceDate avanza el reloj lógico. days debe ser positivo.
func (w *Warehouse) AdvanceDate(days int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if days <= 0 {
		return &domain.InvalidDateError{Days: days}
	}
	w.date += days
	w.log.Debug().Int("days", days).Int("date", w.date).Msg("fecha avanzada")
	return nil
}

// RegisterPartner registra un nuevo socio y su buzón en la estación.
// Falla con DuplicatePartnerError si el id (case-insensitive) ya existe.
func (w *Warehouse) RegisterPartner(id, name, address string) (*entity.Partner, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registerPartner(id, name, address)
}

func (w *Warehouse) registerPartner(id, name, address string) (*entity.Partner, error) {
	key := w.cmp.Key(id)
	if _, ok := w.partners[key]; ok {
		return nil, &domain.DuplicatePartnerError{ID: id}
	}
	p := entity.NewPartner(id, name, address)
	w.partners[key] = p
	w.byPartner[key] = make(map[int]struct{})
	w.station.register(key, p.Mailbox)
	w.log.Debug().Str("partner", id).Msg("socio registrado")
	return p, nil
}

// RegisterSimpleProduct registra (o devuelve, si ya existe) un producto simple.
// Los productos se crean en el primer registro y nunca se destruyen.
func (w *Warehouse) RegisterSimpleProduct(id string) (entity.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, _, err := w.upsertSimple(id)
	return p, err
}

func (w *Warehouse) upsertSimple(id string) (entity.Product, bool, error) {
	key := w.cmp.Key(id)
	if p, ok := w.products[key]; ok {
		return p, false, nil
	}
	p := entity.NewSimpleProduct(id)
	w.products[key] = p
	w.byProduct[key] = make(map[int]struct{})
	return p, true, nil
}

// RegisterDerivativeProduct registra (o devuelve, si ya existe) un producto
// derivado. Cada componente de la receta debe estar ya registrado y la receta
// resultante debe ser acíclica; un ciclo falla con CyclicRecipeError.
// Si el producto ya existe, la receta entrante se ignora.
func (w *Warehouse) RegisterDerivativeProduct(id string, recipe entity.Recipe, multiplier decimal.Decimal) (entity.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, _, err := w.upsertDerivative(id, recipe, multiplier)
	return p, err
}

func (w *Warehouse) upsertDerivative(id string, recipe entity.Recipe, multiplier decimal.Decimal) (entity.Product, bool, error) {
	key := w.cmp.Key(id)
	if p, ok := w.products[key]; ok {
		return p, false, nil
	}
	if err := w.validateRecipe(id, recipe); err != nil {
		return nil, false, err
	}
	p := entity.NewDerivativeProduct(id, recipe, multiplier)
	w.products[key] = p
	w.byProduct[key] = make(map[int]struct{})
	return p, true, nil
}

// lookupProduct devuelve el producto por id o UnknownKeyError.
func (w *Warehouse) lookupProduct(id string) (entity.Product, error) {
	if p, ok := w.products[w.cmp.Key(id)]; ok {
		return p, nil
	}
	return nil, &domain.UnknownKeyError{Kind: "product", Key: id}
}

// lookupPartner devuelve el socio por id o UnknownKeyError.
func (w *Warehouse) lookupPartner(id string) (*entity.Partner, error) {
	if p, ok := w.partners[w.cmp.Key(id)]; ok {
		return p, nil
	}
	return nil, &domain.UnknownKeyError{Kind: "partner", Key: id}
}

// Partner devuelve un socio por id.
func (w *Warehouse) Partner(id string) (*entity.Partner, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lookupPartner(id)
}

// Product devuelve un producto por id.
func (w *Warehouse) Product(id string) (entity.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lookupProduct(id)
}

// Products lista todos los productos en el orden canónico de sus ids.
func (w *Warehouse) Products() []entity.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]entity.Product, 0, len(w.products))
	for _, p := range w.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return w.cmp.Less(out[i].ID(), out[j].ID()) })
	return out
}

// Partners lista todos los socios en el orden canónico de sus ids.
func (w *Warehouse) Partners() []*entity.Partner {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*entity.Partner, 0, len(w.partners))
	for _, p := range w.partners {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return w.cmp.Less(out[i].ID, out[j].ID) })
	return out
}

// Ledger devuelve el libro mayor completo en orden de id.
func (w *Warehouse) Ledger() []entity.Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]entity.Transaction(nil), w.ledger...)
}

// Transaction devuelve una transacción del libro mayor por id.
func (w *Warehouse) Transaction(id int) (entity.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lookupTransaction(id)
}

func (w *Warehouse) lookupTransaction(id int) (entity.Transaction, error) {
	if id < 0 || id >= len(w.ledger) {
		return nil, &domain.UnknownKeyError{Kind: "transaction", Key: strconv.Itoa(id)}
	}
	return w.ledger[id], nil
}

// appendTransaction asigna el siguiente id secuencial y entra la transacción
// al libro mayor. El libro es append-only: nada se elimina jamás.
func (w *Warehouse) nextTransactionID() int { return len(w.ledger) }

func (w *Warehouse) appendTransaction(t entity.Transaction) {
	w.ledger = append(w.ledger, t)
}
