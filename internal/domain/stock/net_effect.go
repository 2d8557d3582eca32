package stock

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// NetEffect calcula el efecto neto de un movimiento sobre una coordenada
// (servicio de dominio). Positivo si la coordenada es destino, negativo si es
// origen. Un TRANSFER sobre la misma coordenada en ambos lados netea a cero,
// pero ese caso está prohibido aguas arriba (origen != destino).
func NetEffect(m *entity.StockMovement, coordenadaID string) int64 {
	var effect int64
	if m.ToCoordenadaID != nil && *m.ToCoordenadaID == coordenadaID {
		effect += m.Quantity
	}
	if m.FromCoordenadaID != nil && *m.FromCoordenadaID == coordenadaID {
		effect -= m.Quantity
	}
	return effect
}

// Replay suma el efecto neto de una secuencia de movimientos sobre una
// coordenada. Invariante del ledger: Replay(historial, c) == c.Cantidad.
func Replay(movs []*entity.StockMovement, coordenadaID string) int64 {
	var total int64
	for _, m := range movs {
		total += NetEffect(m, coordenadaID)
	}
	return total
}
