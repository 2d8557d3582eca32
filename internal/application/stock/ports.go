package stock

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// proyección materializada y ledger se escriben juntas o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		coordRepo repository.CoordenadaRepository,
	) error) error

	// RunReceiving agrega el repositorio de órdenes de compra (recepción).
	RunReceiving(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		coordRepo repository.CoordenadaRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error

	// RunTransfer agrega el repositorio de solicitudes de traslado.
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		coordRepo repository.CoordenadaRepository,
		requestRepo repository.TransferRequestRepository,
	) error) error
}

// AuditEvent es el resultado de una operación mutadora, reportado al módulo
// externo de auditoría. El motor emite el evento; no es dueño del almacenamiento.
type AuditEvent struct {
	Operation  string    `json:"operation"`
	ActorID    string    `json:"actor_id"`
	ProductID  string    `json:"product_id,omitempty"`
	MovementID string    `json:"movement_id,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	Quantity   int64     `json:"quantity,omitempty"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// AuditSink recibe los eventos de auditoría. Un fallo del sink nunca debe
// revertir la operación de inventario: el sink maneja sus propios errores.
type AuditSink interface {
	Report(ctx context.Context, ev AuditEvent)
}
