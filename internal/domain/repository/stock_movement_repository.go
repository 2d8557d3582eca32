package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger (DIP).
// Los movimientos son inmutables: solo Create y lecturas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct lista movimientos de un producto en orden cronológico;
	// coordenadaID no vacío filtra a los que tocan esa coordenada (origen o destino).
	ListByProduct(productID, coordenadaID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
