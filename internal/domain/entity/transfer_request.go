package entity

import "time"

// Estados de una solicitud de traslado.
// COMPLETADO y RECHAZADO son terminales; solo COMPLETADO escribe en el ledger.
const (
	TransferStatusSOLICITADO = "SOLICITADO"
	TransferStatusAPROBADO   = "APROBADO"
	TransferStatusCOMPLETADO = "COMPLETADO"
	TransferStatusRECHAZADO  = "RECHAZADO"
)

// TransferRequest es el flujo de aprobación de un traslado: existe solo cuando el
// actor no tiene autoridad de traslado directo. Mientras está pendiente o
// rechazada no afecta el stock.
type TransferRequest struct {
	ID               string
	ProductID        string
	FromCoordenadaID string
	ToCoordenadaID   string
	Quantity         int64
	Justification    string // motivo del solicitante
	Status           string
	RequestedBy      string
	ResolvedBy       string  // quien aprobó o rechazó
	RejectReason     string  // obligatorio al rechazar
	MovementID       *string // ledger entry generada al completar
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
