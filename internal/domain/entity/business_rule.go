package entity

import "time"

// Alcances de una regla de negocio.
const (
	RuleScopeGLOBAL = "GLOBAL" // stock agregado en todo el sistema
	RuleScopeBODEGA = "BODEGA" // stock agregado en una bodega
	RuleScopeMARCA  = "MARCA"  // todos los productos de una marca
)

// Acciones soportadas.
const (
	RuleActionSUGERIR_REORDEN = "SUGERIR_REORDEN"
)

// BusinessRule es configuración pura: un umbral que, comparado contra el stock
// agregado, produce sugerencias de reorden. Nunca es mutada por las operaciones
// de inventario; se evalúa de solo lectura y bajo demanda.
type BusinessRule struct {
	ID          string
	Scope       string
	ProductID   string // producto vigilado (GLOBAL y BODEGA)
	WarehouseID string // bodega, solo cuando Scope == BODEGA
	Brand       string // marca, solo cuando Scope == MARCA
	Threshold   int64
	Action      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
