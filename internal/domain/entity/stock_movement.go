package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypePURCHASE   = "PURCHASE"   // entrada por orden de compra (origen externo)
	MovementTypeSALE       = "SALE"       // salida por venta o baja (destino externo)
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre coordenadas
	MovementTypeADJUSTMENT = "ADJUSTMENT" // corrección manual con motivo obligatorio
)

// StockMovement es una entrada del ledger: un cambio atómico e inmutable de stock.
// Las correcciones se hacen agregando un movimiento inverso, nunca editando historia.
//
// Convención de lados y signo:
//   - PURCHASE:   From=nil, To=coordenada, Quantity > 0
//   - SALE:       From=coordenada, To=nil, Quantity > 0 (cantidad retirada)
//   - TRANSFER:   From=origen, To=destino, Quantity > 0 (un solo movimiento, dos lados)
//   - ADJUSTMENT: From=nil, To=coordenada, Quantity con signo (delta)
//
// El efecto neto en una coordenada C es +Quantity si To==C y -Quantity si From==C.
type StockMovement struct {
	ID               string
	ProductID        string
	FromCoordenadaID *string // nil = externo (ej. compra)
	ToCoordenadaID   *string // nil = externo (ej. venta, baja)
	Type             string
	Quantity         int64
	Reference        string // orden de compra, solicitud de traslado, factura, etc.
	Reason           string // obligatorio en ADJUSTMENT
	CreatedAt        time.Time
	CreatedBy        string // actor opaco, provisto por la capa de identidad
}
