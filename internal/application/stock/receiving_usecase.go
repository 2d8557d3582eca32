package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ReceivingUseCase gobierna el ciclo de vida de las órdenes de compra:
// PENDIENTE -Receive-> RECIBIDA, PENDIENTE -Cancel-> CANCELADA. La recepción
// es el único camino que genera movimientos PURCHASE para una orden.
type ReceivingUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.PurchaseOrderRepository // lecturas fuera de tx
	audit         AuditSink
}

// NewReceivingUseCase construye el caso de uso.
func NewReceivingUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.PurchaseOrderRepository,
	audit AuditSink,
) *ReceivingUseCase {
	return &ReceivingUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
		audit:         audit,
	}
}

// OrderLineInput renglón para crear una orden de compra.
type OrderLineInput struct {
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
}

// CreateOrderInput entrada para registrar una orden de compra.
type CreateOrderInput struct {
	ProviderID  string
	WarehouseID string
	ActorID     string
	Lines       []OrderLineInput
}

// Create registra la orden en estado PENDIENTE. No afecta el stock.
func (uc *ReceivingUseCase) Create(ctx context.Context, in CreateOrderInput) (*entity.PurchaseOrder, error) {
	if in.ProviderID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrValidacion
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		ProviderID:  in.ProviderID,
		WarehouseID: in.WarehouseID,
		Status:      entity.OrderStatusPENDIENTE,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   in.ActorID,
	}
	for _, l := range in.Lines {
		if l.Quantity <= 0 || l.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: renglón con cantidad o costo inválido", domain.ErrValidacion)
		}
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		order.Lines = append(order.Lines, entity.PurchaseOrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		})
	}

	if err := uc.orderRepo.Create(order); err != nil {
		uc.audit.Report(ctx, AuditEvent{Operation: "purchase.create", ActorID: in.ActorID, Error: err.Error(), At: time.Now()})
		return nil, err
	}
	uc.audit.Report(ctx, AuditEvent{Operation: "purchase.create", ActorID: in.ActorID, Reference: order.ID, Success: true, At: time.Now()})
	return order, nil
}

// ReceiveLineInput cantidad recibida para un renglón de la orden.
type ReceiveLineInput struct {
	LineID   string
	Quantity int64
}

// Receive procesa la llegada de mercancía: por cada renglón recibido crea (si
// hace falta) la coordenada del producto en la bodega destino y escribe un
// movimiento PURCHASE con origen externo, todo en una transacción. Se admite
// recepción parcial por renglón; tras una pasada la orden queda RECIBIDA (no
// hay backorder). Recibir una orden no PENDIENTE falla con ErrEstadoInvalido.
func (uc *ReceivingUseCase) Receive(ctx context.Context, orderID string, lines []ReceiveLineInput, actorID string) (*entity.PurchaseOrder, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: recepción sin renglones", domain.ErrValidacion)
	}

	var received *entity.PurchaseOrder
	err := withRetry(ctx, func() error {
		return uc.txRunner.RunReceiving(ctx, func(
			movRepo repository.StockMovementRepository,
			coordRepo repository.CoordenadaRepository,
			orderRepo repository.PurchaseOrderRepository,
		) error {
			order, err := orderRepo.GetByIDForUpdate(orderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.ErrNotFound
			}
			if order.Status != entity.OrderStatusPENDIENTE {
				return domain.ErrEstadoInvalido
			}

			lineByID := make(map[string]*entity.PurchaseOrderLine, len(order.Lines))
			for i := range order.Lines {
				lineByID[order.Lines[i].ID] = &order.Lines[i]
			}

			for _, rl := range lines {
				line, ok := lineByID[rl.LineID]
				if !ok {
					return domain.ErrNotFound
				}
				if rl.Quantity <= 0 {
					return fmt.Errorf("%w: cantidad recibida inválida", domain.ErrValidacion)
				}
				if line.ReceivedQuantity+rl.Quantity > line.Quantity {
					return fmt.Errorf("%w: recepción excede lo pedido en el renglón %s", domain.ErrValidacion, line.ID)
				}

				coord, err := coordRepo.GetByProductAndWarehouseForUpdate(line.ProductID, order.WarehouseID)
				if err != nil {
					return err
				}
				if coord == nil {
					coord = &entity.Coordenada{
						ID:          uuid.New().String(),
						WarehouseID: order.WarehouseID,
						ProductID:   line.ProductID,
						Posicion:    "RECEPCION",
						Cantidad:    0,
						UpdatedAt:   time.Now(),
					}
					if err := coordRepo.Create(coord); err != nil {
						return err
					}
				}

				mov := &entity.StockMovement{
					ID:             uuid.New().String(),
					ProductID:      line.ProductID,
					ToCoordenadaID: &coord.ID,
					Type:           entity.MovementTypePURCHASE,
					Quantity:       rl.Quantity,
					Reference:      order.ID,
					CreatedAt:      time.Now(),
					CreatedBy:      actorID,
				}
				if err := applyMovement(movRepo, coordRepo, mov); err != nil {
					return err
				}

				line.ReceivedQuantity += rl.Quantity
				if err := orderRepo.UpdateLineReceived(line.ID, line.ReceivedQuantity); err != nil {
					return err
				}
			}

			now := time.Now()
			order.Status = entity.OrderStatusRECIBIDA
			order.ReceivedAt = &now
			order.UpdatedAt = now
			if err := orderRepo.UpdateStatus(order); err != nil {
				return err
			}
			received = order
			return nil
		})
	})

	ev := AuditEvent{Operation: "purchase.receive", ActorID: actorID, Reference: orderID, Success: err == nil, At: time.Now()}
	if err != nil {
		ev.Error = err.Error()
	}
	uc.audit.Report(ctx, ev)
	if err != nil {
		return nil, err
	}
	return received, nil
}

// Cancel pasa la orden PENDIENTE → CANCELADA. Cancelar una orden ya recibida
// falla con ErrEstadoInvalido.
func (uc *ReceivingUseCase) Cancel(ctx context.Context, orderID, actorID string) error {
	err := withRetry(ctx, func() error {
		return uc.txRunner.RunReceiving(ctx, func(
			_ repository.StockMovementRepository,
			_ repository.CoordenadaRepository,
			orderRepo repository.PurchaseOrderRepository,
		) error {
			order, err := orderRepo.GetByIDForUpdate(orderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.ErrNotFound
			}
			if order.Status != entity.OrderStatusPENDIENTE {
				return domain.ErrEstadoInvalido
			}
			order.Status = entity.OrderStatusCANCELADA
			order.UpdatedAt = time.Now()
			return orderRepo.UpdateStatus(order)
		})
	})

	ev := AuditEvent{Operation: "purchase.cancel", ActorID: actorID, Reference: orderID, Success: err == nil, At: time.Now()}
	if err != nil {
		ev.Error = err.Error()
	}
	uc.audit.Report(ctx, ev)
	return err
}

// GetByID devuelve una orden con sus renglones.
func (uc *ReceivingUseCase) GetByID(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *ReceivingUseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(status, limit, offset)
}
