package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-core/internal/application/warehouse"
	"github.com/jhoicas/bodega-core/internal/domain"
	httpiface "github.com/jhoicas/bodega-core/internal/interfaces/http"
	"github.com/jhoicas/bodega-core/pkg/logger"
)

// memStore guarda el snapshot en memoria para los tests de la API.
type memStore struct {
	data []byte
}

func (s *memStore) Save(_ context.Context, data []byte) error {
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *memStore) Load(_ context.Context) ([]byte, error) {
	if s.data == nil {
		return nil, domain.ErrNotFound
	}
	return s.data, nil
}

func newTestApp(t *testing.T) (*warehouse.Warehouse, *memStore, func(*http.Request) *http.Response) {
	t.Helper()
	wh := warehouse.New()
	store := &memStore{}
	app := httpiface.NewApp("bodega-test", wh, store, logger.Nop())
	do := func(req *http.Request) *http.Response {
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}
	return wh, store, do
}

func jsonReq(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo por la API
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCompleto(t *testing.T) {
	_, _, do := newTestApp(t)

	// Alta de socio
	resp := do(jsonReq(t, http.MethodPost, "/api/partners", map[string]string{
		"id": "P1", "name": "Alice", "address": "Lisboa",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var partner struct {
		Rendered string `json:"rendered"`
	}
	decode(t, resp, &partner)
	assert.Equal(t, "P1|Alice|Lisboa|NORMAL|0|0|0|0", partner.Rendered)

	// Duplicado: 409
	resp = do(jsonReq(t, http.MethodPost, "/api/partners", map[string]string{
		"id": "p1", "name": "Otra", "address": "Braga",
	}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Compra que registra el producto simple
	resp = do(jsonReq(t, http.MethodPost, "/api/transactions/acquisitions", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 5, "price": "10", "kind": "simple",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tx struct {
		ID       int    `json:"id"`
		Kind     string `json:"kind"`
		Rendered string `json:"rendered"`
	}
	decode(t, resp, &tx)
	assert.Equal(t, 0, tx.ID)
	assert.Equal(t, "acquisition", tx.Kind)
	assert.Equal(t, "COMPRA|0|P1|A|5|50|0", tx.Rendered)

	// Venta con pago diferido
	resp = do(jsonReq(t, http.MethodPost, "/api/transactions/sales", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 3, "deadline": 5,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &tx)
	assert.Equal(t, 1, tx.ID)
	assert.Equal(t, "VENDA|1|P1|A|3|30|30|5", tx.Rendered)

	// Saldos: caja -50, contabilístico -50 + 30 pendiente
	resp = do(httptest.NewRequest(http.MethodGet, "/api/balances", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var balances struct {
		Date          int    `json:"date"`
		Available     string `json:"available"`
		Contabilistic string `json:"contabilistic"`
	}
	decode(t, resp, &balances)
	assert.Equal(t, 0, balances.Date)
	assert.Equal(t, "-50", balances.Available)
	assert.Equal(t, "-20", balances.Contabilistic)

	// Pagar la venta
	resp = do(httptest.NewRequest(http.MethodPost, "/api/transactions/1/pay", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(httptest.NewRequest(http.MethodGet, "/api/balances", nil))
	decode(t, resp, &balances)
	assert.Equal(t, "-20", balances.Available)
}

func TestAPI_VentaSinStock(t *testing.T) {
	_, _, do := newTestApp(t)

	do(jsonReq(t, http.MethodPost, "/api/partners", map[string]string{
		"id": "P1", "name": "Alice", "address": "Lisboa",
	})).Body.Close()
	do(jsonReq(t, http.MethodPost, "/api/transactions/acquisitions", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 2, "price": "10", "kind": "simple",
	})).Body.Close()

	resp := do(jsonReq(t, http.MethodPost, "/api/transactions/sales", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 5, "deadline": 3,
	}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var body struct {
		Code      string `json:"code"`
		ProductID string `json:"product_id"`
		Requested int    `json:"requested"`
		Available int    `json:"available"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "A", body.ProductID)
	assert.Equal(t, 5, body.Requested)
	assert.Equal(t, 2, body.Available)
}

func TestAPI_NotificacionesDelSocio(t *testing.T) {
	_, _, do := newTestApp(t)

	do(jsonReq(t, http.MethodPost, "/api/partners", map[string]string{
		"id": "P1", "name": "Alice", "address": "Lisboa",
	})).Body.Close()
	do(jsonReq(t, http.MethodPost, "/api/transactions/acquisitions", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 5, "price": "10", "kind": "simple",
	})).Body.Close()
	// Segunda compra más barata: BARGAIN
	do(jsonReq(t, http.MethodPost, "/api/transactions/acquisitions", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 1, "price": "3",
	})).Body.Close()

	// Listado sin consumir
	resp := do(httptest.NewRequest(http.MethodGet, "/api/partners/P1/notifications?type=BARGAIN", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Notifications []string `json:"notifications"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "BARGAIN|A|3", list.Notifications[0])

	// Mostrar al socio las consume
	resp = do(httptest.NewRequest(http.MethodGet, "/api/partners/P1", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var shown struct {
		Rendered      string   `json:"rendered"`
		Notifications []string `json:"notifications"`
	}
	decode(t, resp, &shown)
	assert.Len(t, shown.Notifications, 1)

	resp = do(httptest.NewRequest(http.MethodGet, "/api/partners/P1", nil))
	decode(t, resp, &shown)
	assert.Empty(t, shown.Notifications)

	// Silenciar el producto
	resp = do(jsonReq(t, http.MethodPost, "/api/partners/P1/notifications/toggle", map[string]string{
		"product_id": "A",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled struct {
		Muted bool `json:"muted"`
	}
	decode(t, resp, &toggled)
	assert.True(t, toggled.Muted)
}

func TestAPI_DesagregacionSimpleEs204(t *testing.T) {
	_, _, do := newTestApp(t)

	do(jsonReq(t, http.MethodPost, "/api/partners", map[string]string{
		"id": "P1", "name": "Alice", "address": "Lisboa",
	})).Body.Close()
	do(jsonReq(t, http.MethodPost, "/api/transactions/acquisitions", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 5, "price": "10", "kind": "simple",
	})).Body.Close()

	resp := do(jsonReq(t, http.MethodPost, "/api/transactions/breakdowns", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 1,
	}))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ImportYSnapshot(t *testing.T) {
	wh, store, do := newTestApp(t)

	payload := "PARTNER|P1|Alice|Lisboa\nBATCH_S|A|P1|8|20\n"
	req := httptest.NewRequest(http.MethodPost, "/api/state/import", strings.NewReader(payload))
	resp := do(req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	product, err := wh.Product("A")
	require.NoError(t, err)
	assert.Equal(t, 20, product.Stock())

	// Guardar y recargar el estado
	resp = do(httptest.NewRequest(http.MethodPost, "/api/state/save", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.NotNil(t, store.data)

	resp = do(httptest.NewRequest(http.MethodPost, "/api/state/load", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Registro malformado: 400
	req = httptest.NewRequest(http.MethodPost, "/api/state/import", strings.NewReader("BOGUS|x\n"))
	resp = do(req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ErroresComunes(t *testing.T) {
	_, _, do := newTestApp(t)

	// Socio inexistente: 404
	resp := do(httptest.NewRequest(http.MethodGet, "/api/partners/ghost", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Transacción inexistente: 404
	resp = do(httptest.NewRequest(http.MethodGet, "/api/transactions/99", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Avance de fecha no positivo: 400
	resp = do(jsonReq(t, http.MethodPost, "/api/date/advance", map[string]int{"days": 0}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Sanidad
	resp = do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Precio ilegible en una compra: 400
	resp = do(jsonReq(t, http.MethodPost, "/api/transactions/acquisitions", map[string]any{
		"partner_id": "P1", "product_id": "A", "amount": 1, "price": "caro",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
