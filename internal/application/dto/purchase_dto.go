package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/purchase-orders.
type CreateOrderRequest struct {
	ProviderID  string             `json:"provider_id"`
	WarehouseID string             `json:"warehouse_id"`
	Lines       []OrderLineRequest `json:"lines"`
}

// OrderLineRequest renglón de la orden.
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReceiveOrderRequest body para POST /api/purchase-orders/:id/receive.
// Cantidades parciales permitidas.
type ReceiveOrderRequest struct {
	Lines []ReceiveLineRequest `json:"lines"`
}

// ReceiveLineRequest cantidad recibida por renglón.
type ReceiveLineRequest struct {
	LineID   string `json:"line_id"`
	Quantity int64  `json:"quantity"`
}

// OrderResponse una orden de compra con sus renglones.
type OrderResponse struct {
	ID          string              `json:"id"`
	ProviderID  string              `json:"provider_id"`
	WarehouseID string              `json:"warehouse_id"`
	Status      string              `json:"status"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
	ReceivedAt  *time.Time          `json:"received_at,omitempty"`
}

// OrderLineResponse renglón con lo pedido y lo recibido.
type OrderLineResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         int64           `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	ReceivedQuantity int64           `json:"received_quantity"`
}
