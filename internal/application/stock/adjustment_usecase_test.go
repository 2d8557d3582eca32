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

func newAdjustment(f *fixture) *stock.AdjustmentUseCase {
	return stock.NewAdjustmentUseCase(f.txRunner, f.coordRepo, f.sink)
}

func TestAdjust_DeltaPositivoYNegativo(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 10)
	uc := newAdjustment(f)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, stock.AdjustInput{ProductID: "p1", CoordenadaID: "c1", Delta: 5, Reason: "conteo físico", ActorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(15), f.store.coordenadas["c1"].Cantidad)

	_, err = uc.Adjust(ctx, stock.AdjustInput{ProductID: "p1", CoordenadaID: "c1", Delta: -7, Reason: "mercancía dañada", ActorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), f.store.coordenadas["c1"].Cantidad)

	require.Len(t, f.store.movimientos, 2)
	for _, m := range f.store.movimientos {
		assert.Equal(t, entity.MovementTypeADJUSTMENT, m.Type)
		assert.NotEmpty(t, m.Reason, "todo ajuste lleva motivo")
	}
}

func TestAdjust_SinMotivo_Rechazado(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 10)
	uc := newAdjustment(f)

	for _, reason := range []string{"", "   "} {
		_, err := uc.Adjust(context.Background(), stock.AdjustInput{
			ProductID: "p1", CoordenadaID: "c1", Delta: -1, Reason: reason, ActorID: "u1",
		})
		assert.ErrorIs(t, err, domain.ErrValidacion, "el motivo es obligatorio")
	}
	assert.Equal(t, int64(10), f.store.coordenadas["c1"].Cantidad)
	assert.Empty(t, f.store.movimientos)
}

func TestAdjust_DeltaCero_Rechazado(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 10)
	uc := newAdjustment(f)

	_, err := uc.Adjust(context.Background(), stock.AdjustInput{
		ProductID: "p1", CoordenadaID: "c1", Delta: 0, Reason: "nada", ActorID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestAdjust_NoDejaCoordenadaNegativa(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 4)
	uc := newAdjustment(f)

	_, err := uc.Adjust(context.Background(), stock.AdjustInput{
		ProductID: "p1", CoordenadaID: "c1", Delta: -5, Reason: "pérdida", ActorID: "u1",
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, int64(4), f.store.coordenadas["c1"].Cantidad, "el ajuste fallido no cambia nada")
	assert.Empty(t, f.store.movimientos)
}

func TestAdjust_CoordenadaInexistente(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	uc := newAdjustment(f)

	_, err := uc.Adjust(context.Background(), stock.AdjustInput{
		ProductID: "p1", CoordenadaID: "fantasma", Delta: 1, Reason: "conteo", ActorID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
