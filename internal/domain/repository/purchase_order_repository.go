package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra (DIP).
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la fila de la orden para la transición de estado.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	// UpdateStatus aplica la transición de estado (y received_at si aplica).
	UpdateStatus(order *entity.PurchaseOrder) error
	UpdateLineReceived(lineID string, receivedQuantity int64) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
