package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

func newRules(f *fixture) *stock.RulesUseCase {
	aggregator := stock.NewAggregatorUseCase(f.coordRepo)
	return stock.NewRulesUseCase(f.ruleRepo, f.productRepo, f.warehouseRepo, aggregator)
}

func rulesFixture() *fixture {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addProduct("p2", "SKU-2", "ACME")
	f.store.addProduct("p3", "SKU-3", "OTRA")
	f.store.addWarehouse("w1", "Central")
	f.store.addWarehouse("w2", "Sucursal Norte")
	return f
}

func TestEvaluate_Global_DebajoDelUmbral(t *testing.T) {
	f := rulesFixture()
	f.store.addCoordenada("c1", "w1", "p1", 3)
	f.store.addCoordenada("c2", "w2", "p1", 1)
	uc := newRules(f)
	ctx := context.Background()

	rule, err := uc.CreateRule(ctx, stock.CreateRuleInput{Scope: entity.RuleScopeGLOBAL, ProductID: "p1", Threshold: 10})
	require.NoError(t, err)
	assert.Equal(t, entity.RuleActionSUGERIR_REORDEN, rule.Action)

	sugerencias, err := uc.Evaluate(ctx)
	require.NoError(t, err)
	require.Len(t, sugerencias, 1)

	s := sugerencias[0]
	assert.Equal(t, rule.ID, s.RuleID)
	assert.Equal(t, "p1", s.ProductID)
	assert.Equal(t, int64(4), s.CurrentStock, "global = suma de todas las bodegas")
	// Nivel ideal 1.5x el umbral: 15 - 4 actuales.
	assert.Equal(t, int64(11), s.SuggestedReorderQty)
}

func TestEvaluate_EnElUmbral_NoSugiere(t *testing.T) {
	f := rulesFixture()
	f.store.addCoordenada("c1", "w1", "p1", 10)
	uc := newRules(f)
	ctx := context.Background()

	_, err := uc.CreateRule(ctx, stock.CreateRuleInput{Scope: entity.RuleScopeGLOBAL, ProductID: "p1", Threshold: 10})
	require.NoError(t, err)

	sugerencias, err := uc.Evaluate(ctx)
	require.NoError(t, err)
	assert.Empty(t, sugerencias, "el umbral es estrictamente menor: 10 >= 10 no dispara")
}

func TestEvaluate_PorBodega_IgnoraOtrasBodegas(t *testing.T) {
	f := rulesFixture()
	f.store.addCoordenada("c1", "w1", "p1", 2)
	f.store.addCoordenada("c2", "w2", "p1", 50)
	uc := newRules(f)
	ctx := context.Background()

	_, err := uc.CreateRule(ctx, stock.CreateRuleInput{Scope: entity.RuleScopeBODEGA, ProductID: "p1", WarehouseID: "w1", Threshold: 5})
	require.NoError(t, err)

	sugerencias, err := uc.Evaluate(ctx)
	require.NoError(t, err)
	require.Len(t, sugerencias, 1, "el stock global sobra pero en w1 falta")
	assert.Equal(t, "w1", sugerencias[0].WarehouseID)
	assert.Equal(t, int64(2), sugerencias[0].CurrentStock)
	// ideal 7 (5 + 5/2 entero), sugiere 5.
	assert.Equal(t, int64(5), sugerencias[0].SuggestedReorderQty)
}

func TestEvaluate_PorMarca_IncluyeProductosSinStock(t *testing.T) {
	f := rulesFixture()
	// p1 con algo de stock, p2 (misma marca) sin coordenadas, p3 de otra marca.
	f.store.addCoordenada("c1", "w1", "p1", 2)
	f.store.addCoordenada("c3", "w1", "p3", 0)
	uc := newRules(f)
	ctx := context.Background()

	_, err := uc.CreateRule(ctx, stock.CreateRuleInput{Scope: entity.RuleScopeMARCA, Brand: "ACME", Threshold: 4})
	require.NoError(t, err)

	sugerencias, err := uc.Evaluate(ctx)
	require.NoError(t, err)
	require.Len(t, sugerencias, 2, "una por producto de la marca debajo del umbral")

	porProducto := make(map[string]int64)
	for _, s := range sugerencias {
		porProducto[s.ProductID] = s.CurrentStock
	}
	assert.Equal(t, int64(2), porProducto["p1"])
	assert.Equal(t, int64(0), porProducto["p2"], "sin coordenadas cuenta como stock cero")
	assert.NotContains(t, porProducto, "p3", "otra marca no participa")
}

func TestEvaluate_ReglasIndependientes_PuedenRepetirProducto(t *testing.T) {
	f := rulesFixture()
	f.store.addCoordenada("c1", "w1", "p1", 1)
	uc := newRules(f)
	ctx := context.Background()

	_, err := uc.CreateRule(ctx, stock.CreateRuleInput{Scope: entity.RuleScopeGLOBAL, ProductID: "p1", Threshold: 5})
	require.NoError(t, err)
	_, err = uc.CreateRule(ctx, stock.CreateRuleInput{Scope: entity.RuleScopeBODEGA, ProductID: "p1", WarehouseID: "w1", Threshold: 5})
	require.NoError(t, err)

	sugerencias, err := uc.Evaluate(ctx)
	require.NoError(t, err)
	assert.Len(t, sugerencias, 2, "cada regla se evalúa por separado, sin deduplicar")
}

func TestCreateRule_Validaciones(t *testing.T) {
	f := rulesFixture()
	uc := newRules(f)
	ctx := context.Background()

	casos := []struct {
		nombre string
		in     stock.CreateRuleInput
		want   error
	}{
		{"umbral cero", stock.CreateRuleInput{Scope: entity.RuleScopeGLOBAL, ProductID: "p1", Threshold: 0}, domain.ErrValidacion},
		{"alcance desconocido", stock.CreateRuleInput{Scope: "PAIS", ProductID: "p1", Threshold: 5}, domain.ErrValidacion},
		{"global sin producto", stock.CreateRuleInput{Scope: entity.RuleScopeGLOBAL, Threshold: 5}, domain.ErrValidacion},
		{"producto inexistente", stock.CreateRuleInput{Scope: entity.RuleScopeGLOBAL, ProductID: "fantasma", Threshold: 5}, domain.ErrNotFound},
		{"bodega inexistente", stock.CreateRuleInput{Scope: entity.RuleScopeBODEGA, ProductID: "p1", WarehouseID: "fantasma", Threshold: 5}, domain.ErrNotFound},
		{"marca vacía", stock.CreateRuleInput{Scope: entity.RuleScopeMARCA, Threshold: 5}, domain.ErrValidacion},
	}
	for _, tc := range casos {
		_, err := uc.CreateRule(ctx, tc.in)
		assert.ErrorIs(t, err, tc.want, tc.nombre)
	}
}

func TestDeleteRule_NoEncontrada(t *testing.T) {
	f := rulesFixture()
	uc := newRules(f)
	ctx := context.Background()

	err := uc.DeleteRule(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rule, err := uc.CreateRule(ctx, stock.CreateRuleInput{Scope: entity.RuleScopeGLOBAL, ProductID: "p1", Threshold: 5})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteRule(ctx, rule.ID))

	quedan, err := uc.ListRules(ctx, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, quedan)
}
