package dto

import "time"

// TransferRequestBody body para POST /api/transfers. Justification solo se usa
// cuando el actor no tiene autoridad de traslado directo y se crea solicitud.
type TransferRequestBody struct {
	ProductID        string `json:"product_id"`
	Quantity         int64  `json:"quantity"`
	FromCoordenadaID string `json:"from_coordenada_id"`
	ToCoordenadaID   string `json:"to_coordenada_id"`
	Justification    string `json:"justification,omitempty"`
}

// RejectRequestBody body para rechazar una solicitud.
type RejectRequestBody struct {
	Reason string `json:"reason"`
}

// TransferRequestResponse estado de una solicitud de traslado.
type TransferRequestResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	FromCoordenadaID string    `json:"from_coordenada_id"`
	ToCoordenadaID   string    `json:"to_coordenada_id"`
	Quantity         int64     `json:"quantity"`
	Justification    string    `json:"justification"`
	Status           string    `json:"status"`
	RequestedBy      string    `json:"requested_by"`
	ResolvedBy       string    `json:"resolved_by,omitempty"`
	RejectReason     string    `json:"reject_reason,omitempty"`
	MovementID       *string   `json:"movement_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
