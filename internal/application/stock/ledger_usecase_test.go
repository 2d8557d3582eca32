package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	stockdomain "github.com/jhoicas/Taller-api/internal/domain/stock"
)

func newLedger(f *fixture) *stock.LedgerUseCase {
	return stock.NewLedgerUseCase(f.txRunner, f.movRepo, f.productRepo, f.sink)
}

func strptr(s string) *string { return &s }

func TestLedger_CompraSumaEnDestino(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 0)
	uc := newLedger(f)

	movID, err := uc.Append(context.Background(), stock.AppendMovementInput{
		ProductID:      "p1",
		ToCoordenadaID: strptr("c1"),
		Type:           entity.MovementTypePURCHASE,
		Quantity:       10,
		Reference:      "orden-1",
		ActorID:        "u1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, movID)

	assert.Equal(t, int64(10), f.store.coordenadas["c1"].Cantidad, "la proyección debe reflejar la compra")
	require.Len(t, f.store.movimientos, 1, "debe quedar exactamente una entrada en el ledger")

	ev := f.sink.last()
	require.NotNil(t, ev)
	assert.Equal(t, "ledger.append", ev.Operation)
	assert.True(t, ev.Success)
	assert.Equal(t, movID, ev.MovementID)
}

func TestLedger_VentaSinStock_FallaYNoCambiaNada(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 3)
	uc := newLedger(f)

	_, err := uc.Append(context.Background(), stock.AppendMovementInput{
		ProductID:        "p1",
		FromCoordenadaID: strptr("c1"),
		Type:             entity.MovementTypeSALE,
		Quantity:         5,
		ActorID:          "u1",
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	require.ErrorIs(t, err, domain.ErrValidacion, "stock insuficiente clasifica como error de validación")

	assert.Equal(t, int64(3), f.store.coordenadas["c1"].Cantidad, "la cantidad no debe cambiar")
	assert.Empty(t, f.store.movimientos, "nada se escribe en el ledger")

	ev := f.sink.last()
	require.NotNil(t, ev)
	assert.False(t, ev.Success, "la auditoría registra también los fallos")
	assert.NotEmpty(t, ev.Error)
}

func TestLedger_ProductoInexistente(t *testing.T) {
	f := newFixture()
	uc := newLedger(f)

	_, err := uc.Append(context.Background(), stock.AppendMovementInput{
		ProductID:      "no-existe",
		ToCoordenadaID: strptr("c1"),
		Type:           entity.MovementTypePURCHASE,
		Quantity:       1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_CoordenadaDeOtroProducto(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addProduct("p2", "SKU-2", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c2", "w1", "p2", 0)
	uc := newLedger(f)

	_, err := uc.Append(context.Background(), stock.AppendMovementInput{
		ProductID:      "p1",
		ToCoordenadaID: strptr("c2"), // coordenada de p2
		Type:           entity.MovementTypePURCHASE,
		Quantity:       5,
	})
	assert.ErrorIs(t, err, domain.ErrValidacion, "una coordenada solo acepta su propio producto")
}

func TestLedger_TipoDesconocidoRechazado(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	uc := newLedger(f)

	_, err := uc.Append(context.Background(), stock.AppendMovementInput{
		ProductID:      "p1",
		ToCoordenadaID: strptr("c1"),
		Type:           "REGALO",
		Quantity:       1,
	})
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

// Tras una serie de operaciones, el replay del historial debe coincidir con la
// proyección materializada de cada coordenada.
func TestLedger_ReplayCoincideConProyeccion(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 0)
	f.store.addCoordenada("c2", "w1", "p1", 0)
	uc := newLedger(f)
	ctx := context.Background()

	_, err := uc.Append(ctx, stock.AppendMovementInput{ProductID: "p1", ToCoordenadaID: strptr("c1"), Type: entity.MovementTypePURCHASE, Quantity: 20, ActorID: "u1"})
	require.NoError(t, err)
	_, err = uc.Append(ctx, stock.AppendMovementInput{ProductID: "p1", FromCoordenadaID: strptr("c1"), ToCoordenadaID: strptr("c2"), Type: entity.MovementTypeTRANSFER, Quantity: 8, ActorID: "u1"})
	require.NoError(t, err)
	_, err = uc.Append(ctx, stock.AppendMovementInput{ProductID: "p1", FromCoordenadaID: strptr("c2"), Type: entity.MovementTypeSALE, Quantity: 3, ActorID: "u1"})
	require.NoError(t, err)

	for _, id := range []string{"c1", "c2"} {
		replayed := stockdomain.Replay(f.store.movimientos, id)
		assert.Equal(t, f.store.coordenadas[id].Cantidad, replayed,
			"replay del ledger debe reconstruir la coordenada %s", id)
	}
}

func TestLedger_ReintentaTrasConflictoYTermina(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 0)
	f.store.conflictosPendientes = 1 // el primer intento pierde el lock
	uc := newLedger(f)

	movID, err := uc.Append(context.Background(), stock.AppendMovementInput{
		ProductID:      "p1",
		ToCoordenadaID: strptr("c1"),
		Type:           entity.MovementTypePURCHASE,
		Quantity:       7,
		ActorID:        "u1",
	})
	require.NoError(t, err, "un conflicto transitorio debe resolverse con reintento")
	require.NotEmpty(t, movID)
	assert.Equal(t, int64(7), f.store.coordenadas["c1"].Cantidad)
}

func TestLedger_ConflictoPersistentePropagaErrConflicto(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 0)
	f.store.conflictosPendientes = 100 // nunca suelta el lock
	uc := newLedger(f)

	_, err := uc.Append(context.Background(), stock.AppendMovementInput{
		ProductID:      "p1",
		ToCoordenadaID: strptr("c1"),
		Type:           entity.MovementTypePURCHASE,
		Quantity:       7,
	})
	assert.ErrorIs(t, err, domain.ErrConflicto)
	assert.Equal(t, int64(0), f.store.coordenadas["c1"].Cantidad)
	assert.Empty(t, f.store.movimientos)
}

func TestLedger_MovementsFor_FiltraPorCoordenada(t *testing.T) {
	f := newFixture()
	f.store.addProduct("p1", "SKU-1", "ACME")
	f.store.addWarehouse("w1", "Central")
	f.store.addCoordenada("c1", "w1", "p1", 0)
	f.store.addCoordenada("c2", "w1", "p1", 0)
	uc := newLedger(f)
	ctx := context.Background()

	_, err := uc.Append(ctx, stock.AppendMovementInput{ProductID: "p1", ToCoordenadaID: strptr("c1"), Type: entity.MovementTypePURCHASE, Quantity: 5})
	require.NoError(t, err)
	_, err = uc.Append(ctx, stock.AppendMovementInput{ProductID: "p1", ToCoordenadaID: strptr("c2"), Type: entity.MovementTypePURCHASE, Quantity: 2})
	require.NoError(t, err)

	todos, err := uc.MovementsFor(ctx, "p1", "", nil, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	soloC2, err := uc.MovementsFor(ctx, "p1", "c2", nil, nil, 50, 0)
	require.NoError(t, err)
	require.Len(t, soloC2, 1)
	assert.Equal(t, "c2", *soloC2[0].ToCoordenadaID)
}
