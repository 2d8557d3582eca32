package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// BusinessRuleRepository define el puerto de persistencia para reglas de negocio (DIP).
// Las reglas son configuración: el motor de stock nunca las muta.
type BusinessRuleRepository interface {
	Create(rule *entity.BusinessRule) error
	GetByID(id string) (*entity.BusinessRule, error)
	List(limit, offset int) ([]*entity.BusinessRule, error)
	Delete(id string) error
}
