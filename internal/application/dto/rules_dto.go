package dto

import "time"

// CreateRuleRequest body para POST /api/rules.
type CreateRuleRequest struct {
	Scope       string `json:"scope"` // GLOBAL, BODEGA, MARCA
	ProductID   string `json:"product_id,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Threshold   int64  `json:"threshold"`
}

// RuleResponse una regla configurada.
type RuleResponse struct {
	ID          string    `json:"id"`
	Scope       string    `json:"scope"`
	ProductID   string    `json:"product_id,omitempty"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Threshold   int64     `json:"threshold"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
}

// SuggestionDTO sugerencia de reorden producida por la evaluación de reglas.
type SuggestionDTO struct {
	RuleID              string `json:"rule_id"`
	ProductID           string `json:"product_id"`
	Scope               string `json:"scope"`
	WarehouseID         string `json:"warehouse_id,omitempty"` // vacío = global
	CurrentStock        int64  `json:"current_stock"`
	Threshold           int64  `json:"threshold"`
	SuggestedReorderQty int64  `json:"suggested_reorder_qty"`
	Action              string `json:"action"`
}
