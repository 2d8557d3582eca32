package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/stock"
)

func ptr(s string) *string { return &s }

func TestNetEffect_PorTipoDeMovimiento(t *testing.T) {
	compra := &entity.StockMovement{Type: entity.MovementTypePURCHASE, ToCoordenadaID: ptr("c1"), Quantity: 10}
	assert.Equal(t, int64(10), stock.NetEffect(compra, "c1"), "la compra suma en el destino")
	assert.Equal(t, int64(0), stock.NetEffect(compra, "c2"), "la compra no toca otras coordenadas")

	venta := &entity.StockMovement{Type: entity.MovementTypeSALE, FromCoordenadaID: ptr("c1"), Quantity: 4}
	assert.Equal(t, int64(-4), stock.NetEffect(venta, "c1"), "la venta resta en el origen")

	traslado := &entity.StockMovement{Type: entity.MovementTypeTRANSFER, FromCoordenadaID: ptr("c1"), ToCoordenadaID: ptr("c2"), Quantity: 3}
	assert.Equal(t, int64(-3), stock.NetEffect(traslado, "c1"), "el traslado resta en el origen")
	assert.Equal(t, int64(3), stock.NetEffect(traslado, "c2"), "el traslado suma en el destino")
	assert.Equal(t, int64(0), stock.NetEffect(traslado, "c3"), "el traslado no toca terceros")
}

func TestNetEffect_AjusteConSigno(t *testing.T) {
	positivo := &entity.StockMovement{Type: entity.MovementTypeADJUSTMENT, ToCoordenadaID: ptr("c1"), Quantity: 5}
	assert.Equal(t, int64(5), stock.NetEffect(positivo, "c1"))

	negativo := &entity.StockMovement{Type: entity.MovementTypeADJUSTMENT, ToCoordenadaID: ptr("c1"), Quantity: -2}
	assert.Equal(t, int64(-2), stock.NetEffect(negativo, "c1"), "el delta negativo resta")
}

// El replay del historial debe reconstruir exactamente la cantidad materializada.
func TestReplay_ReconstruyeLaProyeccion(t *testing.T) {
	historial := []*entity.StockMovement{
		{Type: entity.MovementTypePURCHASE, ToCoordenadaID: ptr("c1"), Quantity: 10},
		{Type: entity.MovementTypeTRANSFER, FromCoordenadaID: ptr("c1"), ToCoordenadaID: ptr("c2"), Quantity: 4},
		{Type: entity.MovementTypeSALE, FromCoordenadaID: ptr("c2"), Quantity: 1},
		{Type: entity.MovementTypeADJUSTMENT, ToCoordenadaID: ptr("c1"), Quantity: -2},
	}

	assert.Equal(t, int64(4), stock.Replay(historial, "c1"), "c1: +10 -4 -2")
	assert.Equal(t, int64(3), stock.Replay(historial, "c2"), "c2: +4 -1")
	assert.Equal(t, int64(0), stock.Replay(historial, "c3"), "coordenada sin historia queda en 0")
}
