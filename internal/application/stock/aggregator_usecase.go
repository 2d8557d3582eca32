package stock

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// AggregatorUseCase responde "cuánto stock existe y dónde" sumando la
// proyección materializada. Es el único punto de agregación del sistema: todo
// consumidor (catálogo, dashboard, reglas) pasa por aquí en vez de reducir
// listas de coordenadas por su cuenta.
type AggregatorUseCase struct {
	coordRepo repository.CoordenadaRepository
}

// NewAggregatorUseCase construye el agregador.
func NewAggregatorUseCase(coordRepo repository.CoordenadaRepository) *AggregatorUseCase {
	return &AggregatorUseCase{coordRepo: coordRepo}
}

// StockOf devuelve el stock agregado de un producto. warehouseID vacío = global.
// Lectura pura: un producto sin coordenadas devuelve 0, no error.
func (uc *AggregatorUseCase) StockOf(ctx context.Context, productID, warehouseID string) (int64, error) {
	return uc.coordRepo.SumByProduct(productID, warehouseID)
}

// StockOfBrand devuelve el stock agregado por producto para una marca completa.
// Productos de la marca sin coordenadas no aparecen en el mapa (stock 0).
func (uc *AggregatorUseCase) StockOfBrand(ctx context.Context, brand string) (map[string]int64, error) {
	return uc.coordRepo.SumByBrand(brand)
}
