package dto

import "time"

// AdjustRequest body para POST /api/stock/adjustments.
type AdjustRequest struct {
	ProductID    string `json:"product_id"`
	CoordenadaID string `json:"coordenada_id"`
	Delta        int64  `json:"delta"` // con signo; negativo resta
	Reason       string `json:"reason"`
}

// SaleRequest body para POST /api/stock/sales: salida con destino externo.
type SaleRequest struct {
	ProductID    string `json:"product_id"`
	CoordenadaID string `json:"coordenada_id"`
	Quantity     int64  `json:"quantity"`
	Reference    string `json:"reference,omitempty"` // factura, orden de trabajo, etc.
}

// MovementResponse una entrada del ledger.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	FromCoordenadaID *string   `json:"from_coordenada_id,omitempty"`
	ToCoordenadaID   *string   `json:"to_coordenada_id,omitempty"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	Reference        string    `json:"reference,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	CreatedBy        string    `json:"created_by"`
}

// StockResponse respuesta del agregador para un producto.
type StockResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id,omitempty"` // vacío = global
	Stock       int64  `json:"stock"`
}
