package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// CoordenadaRepository define el puerto para consultar/actualizar coordenadas (DIP).
// Las variantes ForUpdate bloquean la fila (SELECT FOR UPDATE NOWAIT) y devuelven
// domain.ErrConflicto si otra transacción ya la tiene bloqueada.
type CoordenadaRepository interface {
	Create(c *entity.Coordenada) error
	GetByID(id string) (*entity.Coordenada, error)
	GetByIDForUpdate(id string) (*entity.Coordenada, error)
	// GetByProductAndWarehouseForUpdate localiza (y bloquea) la coordenada de un
	// producto en una bodega; nil sin error si no existe todavía.
	GetByProductAndWarehouseForUpdate(productID, warehouseID string) (*entity.Coordenada, error)
	UpdateCantidad(id string, cantidad int64) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Coordenada, error)
	ListByProduct(productID string) ([]*entity.Coordenada, error)

	// SumByProduct agrega la cantidad de todas las coordenadas del producto.
	// warehouseID vacío = global. Sin coordenadas devuelve 0, no error.
	SumByProduct(productID, warehouseID string) (int64, error)
	// SumByBrand agrega por producto para todos los productos de una marca.
	// Productos de la marca sin coordenadas no aparecen en el mapa.
	SumByBrand(brand string) (map[string]int64, error)
}
