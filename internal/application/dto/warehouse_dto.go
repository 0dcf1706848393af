package dto

// DTOs de la superficie HTTP del motor de inventario. Las respuestas de
// listado devuelven además la representación canónica pipe-delimited que
// consume el colaborador de presentación.

// ErrorResponse respuesta uniforme de error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterPartnerRequest alta de socio.
type RegisterPartnerRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ComponentRequest un componente de receta.
type ComponentRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AcquisitionRequest compra de stock. Para registrar un producto nuevo en la
// misma operación se indica kind ("simple" o "derivative"); para derivados
// nuevos se añaden multiplier y recipe.
type AcquisitionRequest struct {
	PartnerID  string             `json:"partner_id"`
	ProductID  string             `json:"product_id"`
	Amount     int                `json:"amount"`
	Price      string             `json:"price"`
	Kind       string             `json:"kind,omitempty"`
	Multiplier string             `json:"multiplier,omitempty"`
	Recipe     []ComponentRequest `json:"recipe,omitempty"`
}

// SaleRequest venta con pago diferido.
type SaleRequest struct {
	PartnerID string `json:"partner_id"`
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
	Deadline  int    `json:"deadline"`
}

// BreakdownRequest desagregación de un producto derivado.
type BreakdownRequest struct {
	PartnerID string `json:"partner_id"`
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
}

// AdvanceDateRequest avance del reloj lógico.
type AdvanceDateRequest struct {
	Days int `json:"days"`
}

// ToggleNotificationsRequest interruptor de silenciado producto-socio.
type ToggleNotificationsRequest struct {
	ProductID string `json:"product_id"`
}

// TransactionResponse transacción en forma canónica.
type TransactionResponse struct {
	ID       int    `json:"id"`
	Kind     string `json:"kind"`
	Rendered string `json:"rendered"`
}

// PartnerResponse socio en forma canónica, con sus notificaciones pendientes.
type PartnerResponse struct {
	Rendered      string   `json:"rendered"`
	Notifications []string `json:"notifications,omitempty"`
}

// BalancesResponse saldos de la bodega.
type BalancesResponse struct {
	Date          int    `json:"date"`
	Available     string `json:"available"`
	Contabilistic string `json:"contabilistic"`
}
