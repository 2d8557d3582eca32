package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// RulesUseCase evalúa las reglas de negocio configuradas contra el stock
// agregado y produce sugerencias de reorden. Función pura de la configuración
// y el stock actual: nada se persiste, se recalcula bajo demanda.
type RulesUseCase struct {
	ruleRepo      repository.BusinessRuleRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	aggregator    *AggregatorUseCase
}

// NewRulesUseCase construye el caso de uso.
func NewRulesUseCase(
	ruleRepo repository.BusinessRuleRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	aggregator *AggregatorUseCase,
) *RulesUseCase {
	return &RulesUseCase{
		ruleRepo:      ruleRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		aggregator:    aggregator,
	}
}

// Evaluate recorre todas las reglas y emite una sugerencia por cada producto
// cuyo stock agregado (en el alcance de la regla) está por debajo del umbral.
// Reglas con el mismo alcance se evalúan de forma independiente: puede haber
// varias sugerencias para el mismo producto y no se deduplican aquí.
func (uc *RulesUseCase) Evaluate(ctx context.Context) ([]dto.SuggestionDTO, error) {
	rules, err := uc.ruleRepo.List(500, 0)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.SuggestionDTO, 0)
	for _, rule := range rules {
		switch rule.Scope {
		case entity.RuleScopeGLOBAL:
			current, err := uc.aggregator.StockOf(ctx, rule.ProductID, "")
			if err != nil {
				return nil, err
			}
			if s, ok := suggestionFor(rule, rule.ProductID, "", current); ok {
				suggestions = append(suggestions, s)
			}
		case entity.RuleScopeBODEGA:
			current, err := uc.aggregator.StockOf(ctx, rule.ProductID, rule.WarehouseID)
			if err != nil {
				return nil, err
			}
			if s, ok := suggestionFor(rule, rule.ProductID, rule.WarehouseID, current); ok {
				suggestions = append(suggestions, s)
			}
		case entity.RuleScopeMARCA:
			products, err := uc.productRepo.ListByBrand(rule.Brand)
			if err != nil {
				return nil, err
			}
			stockByProduct, err := uc.aggregator.StockOfBrand(ctx, rule.Brand)
			if err != nil {
				return nil, err
			}
			for _, p := range products {
				// Productos sin coordenadas no están en el mapa: stock 0.
				if s, ok := suggestionFor(rule, p.ID, "", stockByProduct[p.ID]); ok {
					suggestions = append(suggestions, s)
				}
			}
		}
	}
	return suggestions, nil
}

// suggestionFor aplica el umbral: emite solo si current < threshold.
// La cantidad sugerida lleva el stock al nivel ideal (1.5x el umbral), mínimo 1.
func suggestionFor(rule *entity.BusinessRule, productID, warehouseID string, current int64) (dto.SuggestionDTO, bool) {
	if current >= rule.Threshold {
		return dto.SuggestionDTO{}, false
	}
	ideal := rule.Threshold + rule.Threshold/2
	suggested := ideal - current
	if suggested < 1 {
		suggested = 1
	}
	return dto.SuggestionDTO{
		RuleID:              rule.ID,
		ProductID:           productID,
		Scope:               rule.Scope,
		WarehouseID:         warehouseID,
		CurrentStock:        current,
		Threshold:           rule.Threshold,
		SuggestedReorderQty: suggested,
		Action:              rule.Action,
	}, true
}

// CreateRuleInput entrada para configurar una regla.
type CreateRuleInput struct {
	Scope       string
	ProductID   string
	WarehouseID string
	Brand       string
	Threshold   int64
}

// CreateRule valida y persiste una regla de negocio.
func (uc *RulesUseCase) CreateRule(ctx context.Context, in CreateRuleInput) (*entity.BusinessRule, error) {
	if in.Threshold <= 0 {
		return nil, fmt.Errorf("%w: el umbral debe ser positivo", domain.ErrValidacion)
	}
	switch in.Scope {
	case entity.RuleScopeGLOBAL:
		if err := uc.requireProduct(in.ProductID); err != nil {
			return nil, err
		}
	case entity.RuleScopeBODEGA:
		if err := uc.requireProduct(in.ProductID); err != nil {
			return nil, err
		}
		warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.ErrNotFound
		}
	case entity.RuleScopeMARCA:
		if in.Brand == "" {
			return nil, fmt.Errorf("%w: la regla por marca requiere marca", domain.ErrValidacion)
		}
	default:
		return nil, fmt.Errorf("%w: alcance desconocido", domain.ErrValidacion)
	}

	now := time.Now()
	rule := &entity.BusinessRule{
		ID:          uuid.New().String(),
		Scope:       in.Scope,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Brand:       in.Brand,
		Threshold:   in.Threshold,
		Action:      entity.RuleActionSUGERIR_REORDEN,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (uc *RulesUseCase) requireProduct(productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: la regla requiere producto", domain.ErrValidacion)
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ListRules lista la configuración vigente.
func (uc *RulesUseCase) ListRules(ctx context.Context, limit, offset int) ([]*entity.BusinessRule, error) {
	return uc.ruleRepo.List(limit, offset)
}

// DeleteRule elimina una regla.
func (uc *RulesUseCase) DeleteRule(ctx context.Context, id string) error {
	rule, err := uc.ruleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return domain.ErrNotFound
	}
	return uc.ruleRepo.Delete(id)
}
