package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. RECIBIDA y CANCELADA son terminales.
const (
	OrderStatusPENDIENTE = "PENDIENTE"
	OrderStatusRECIBIDA  = "RECIBIDA"
	OrderStatusCANCELADA = "CANCELADA"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// Solo la recepción (Purchase Receiving) puede pasarla a RECIBIDA y es el único
// camino que genera movimientos PURCHASE para esa orden.
type PurchaseOrder struct {
	ID          string
	ProviderID  string
	WarehouseID string // bodega destino de la mercancía
	Status      string
	Lines       []PurchaseOrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	ReceivedAt  *time.Time
}

// PurchaseOrderLine es un renglón de la orden: producto, cantidad pedida y costo.
// ReceivedQuantity registra lo efectivamente recibido (puede ser menor a lo pedido;
// no se modela backorder: la orden queda RECIBIDA tras una pasada de recepción).
type PurchaseOrderLine struct {
	ID               string
	OrderID          string
	ProductID        string
	Quantity         int64
	UnitCost         decimal.Decimal
	ReceivedQuantity int64
}
