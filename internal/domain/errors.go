package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidacion         = errors.New("entrada inválida")
	ErrEstadoInvalido     = errors.New("estado inválido para la operación")
	ErrConflicto          = errors.New("conflicto de concurrencia")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)

// ErrStockInsuficiente es una violación de no-negatividad: envuelve ErrValidacion
// para que errors.Is lo clasifique como error de validación del caller.
var ErrStockInsuficiente = fmt.Errorf("stock insuficiente: %w", ErrValidacion)
