package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo del taller.
// La identidad (ID, SKU) es inmutable; los campos descriptivos pueden cambiar.
// El stock NO vive aquí: se materializa por coordenada y se deriva del ledger.
type Product struct {
	ID          string
	SKU         string // código único
	Brand       string // marca, usada por reglas de negocio por marca
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario de referencia
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
