package entity

import "time"

// Roles válidos para User. El rol determina la autoridad de traslado directo:
// admin y bodeguero trasladan sin aprobación, vendedor debe solicitar.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario del sistema. Para el motor de stock es solo un
// actor opaco: el motor registra su ID, nunca valida identidad.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
