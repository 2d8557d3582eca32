package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
// Las líneas viven en purchase_order_lines y se cargan siempre con la orden.
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderCols = `id, provider_id, warehouse_id, status, created_at, updated_at, created_by, received_at`

// Create persiste la orden y sus líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	ctx := context.Background()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_orders (` + orderCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.ProviderID, order.WarehouseID, order.Status,
		order.CreatedAt, order.UpdatedAt, order.CreatedBy, order.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_order_lines (id, order_id, product_id, quantity, unit_cost, received_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range order.Lines {
		line := &order.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.OrderID = order.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitCost, line.ReceivedQuantity,
		); err != nil {
			return fmt.Errorf("create purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate bloquea la fila de la orden (NOWAIT) antes de leerla.
// Si otra transacción la tiene bloqueada devuelve domain.ErrConflicto.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + orderCols + ` FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE NOWAIT`
	}
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ProviderID, &o.WarehouseID, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy, &o.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockUnavailable(err) {
			return nil, domain.ErrConflicto
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orderID string) ([]entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_cost, received_quantity
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitCost, &l.ReceivedQuantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateStatus aplica la transición de estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, updated_at = $3, received_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.UpdatedAt, order.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLineReceived registra la cantidad recibida de una línea.
func (r *PurchaseOrderRepo) UpdateLineReceived(lineID string, receivedQuantity int64) error {
	query := `UPDATE purchase_order_lines SET received_quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, lineID, receivedQuantity)
	if err != nil {
		return fmt.Errorf("update order line received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes (más recientes primero); status vacío = todas.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + orderCols + ` FROM purchase_orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.ProviderID, &o.WarehouseID, &o.Status,
			&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy, &o.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		lines, err := r.loadLines(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Lines = lines
	}
	return orders, nil
}
