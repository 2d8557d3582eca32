package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.CoordenadaRepository = (*CoordenadaRepo)(nil)

// CoordenadaRepo implementación de CoordenadaRepository sobre PostgreSQL (usable con pool o tx).
type CoordenadaRepo struct {
	q Querier
}

// NewCoordenadaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCoordenadaRepository(q Querier) *CoordenadaRepo {
	return &CoordenadaRepo{q: q}
}

const coordenadaCols = `id, warehouse_id, product_id, posicion, cantidad, updated_at`

// Create persiste una coordenada nueva.
func (r *CoordenadaRepo) Create(c *entity.Coordenada) error {
	query := `
		INSERT INTO coordenadas (id, warehouse_id, product_id, posicion, cantidad, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.WarehouseID, c.ProductID, c.Posicion, c.Cantidad, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: coordenada duplicada", domain.ErrValidacion)
		}
		return fmt.Errorf("insert coordenada: %w", err)
	}
	return nil
}

// GetByID obtiene una coordenada por ID.
func (r *CoordenadaRepo) GetByID(id string) (*entity.Coordenada, error) {
	query := `SELECT ` + coordenadaCols + ` FROM coordenadas WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get coordenada")
}

// GetByIDForUpdate obtiene la coordenada y bloquea la fila (SELECT FOR UPDATE NOWAIT).
// Si otra transacción tiene el bloqueo devuelve domain.ErrConflicto.
func (r *CoordenadaRepo) GetByIDForUpdate(id string) (*entity.Coordenada, error) {
	query := `SELECT ` + coordenadaCols + ` FROM coordenadas WHERE id = $1 FOR UPDATE NOWAIT`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get coordenada for update")
}

// GetByProductAndWarehouseForUpdate localiza y bloquea la coordenada de un producto
// en una bodega; nil sin error si no existe.
func (r *CoordenadaRepo) GetByProductAndWarehouseForUpdate(productID, warehouseID string) (*entity.Coordenada, error) {
	query := `
		SELECT ` + coordenadaCols + `
		FROM coordenadas WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY posicion LIMIT 1
		FOR UPDATE NOWAIT`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), "get coordenada por producto y bodega")
}

// UpdateCantidad actualiza la proyección materializada de la coordenada.
func (r *CoordenadaRepo) UpdateCantidad(id string, cantidad int64) error {
	query := `UPDATE coordenadas SET cantidad = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, cantidad)
	if err != nil {
		return fmt.Errorf("update cantidad: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByWarehouse lista coordenadas de una bodega.
func (r *CoordenadaRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Coordenada, error) {
	query := `
		SELECT ` + coordenadaCols + `
		FROM coordenadas WHERE warehouse_id = $1
		ORDER BY posicion LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list coordenadas by warehouse: %w", err)
	}
	return r.scanList(rows)
}

// ListByProduct lista dónde está físicamente un producto.
func (r *CoordenadaRepo) ListByProduct(productID string) ([]*entity.Coordenada, error) {
	query := `
		SELECT ` + coordenadaCols + `
		FROM coordenadas WHERE product_id = $1
		ORDER BY warehouse_id, posicion`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list coordenadas by product: %w", err)
	}
	return r.scanList(rows)
}

// SumByProduct agrega la cantidad del producto. warehouseID vacío = global.
// Sin coordenadas devuelve 0, no error.
func (r *CoordenadaRepo) SumByProduct(productID, warehouseID string) (int64, error) {
	query := `SELECT COALESCE(SUM(cantidad), 0) FROM coordenadas WHERE product_id = $1`
	args := []any{productID}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}

// SumByBrand agrega por producto para toda una marca.
func (r *CoordenadaRepo) SumByBrand(brand string) (map[string]int64, error) {
	query := `
		SELECT c.product_id, COALESCE(SUM(c.cantidad), 0)
		FROM coordenadas c
		JOIN products p ON p.id = c.product_id
		WHERE p.brand = $1
		GROUP BY c.product_id`
	rows, err := r.q.Query(context.Background(), query, brand)
	if err != nil {
		return nil, fmt.Errorf("sum stock by brand: %w", err)
	}
	defer rows.Close()
	result := make(map[string]int64)
	for rows.Next() {
		var productID string
		var total int64
		if err := rows.Scan(&productID, &total); err != nil {
			return nil, fmt.Errorf("scan sum by brand: %w", err)
		}
		result[productID] = total
	}
	return result, rows.Err()
}

func (r *CoordenadaRepo) scanOne(row pgx.Row, op string) (*entity.Coordenada, error) {
	var c entity.Coordenada
	err := row.Scan(&c.ID, &c.WarehouseID, &c.ProductID, &c.Posicion, &c.Cantidad, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockUnavailable(err) {
			return nil, domain.ErrConflicto
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (r *CoordenadaRepo) scanList(rows pgx.Rows) ([]*entity.Coordenada, error) {
	defer rows.Close()
	var list []*entity.Coordenada
	for rows.Next() {
		var c entity.Coordenada
		if err := rows.Scan(&c.ID, &c.WarehouseID, &c.ProductID, &c.Posicion, &c.Cantidad, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan coordenada: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
