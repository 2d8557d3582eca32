package entity

import "time"

// Coordenada es la unidad direccionable de stock: el lugar físico exacto dentro
// de una bodega donde hay existencia de UN producto. La tripleta
// (producto, bodega, posición) identifica el stock; Cantidad es la proyección
// materializada del ledger y nunca puede ser negativa.
// Una coordenada con cantidad 0 se conserva como placeholder, no se elimina.
type Coordenada struct {
	ID          string
	WarehouseID string
	ProductID   string
	Posicion    string // etiqueta pasillo/estante/casilla, opcional
	Cantidad    int64  // existencia actual; invariante: >= 0
	UpdatedAt   time.Time
}
