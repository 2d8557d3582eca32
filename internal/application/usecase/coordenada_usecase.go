package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// CoordenadaUseCase administra el catálogo de coordenadas (ubicaciones físicas).
// Crear una coordenada no crea stock: la cantidad inicial siempre es 0 y solo
// cambia a través del ledger.
type CoordenadaUseCase struct {
	coordRepo     repository.CoordenadaRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewCoordenadaUseCase construye el caso de uso.
func NewCoordenadaUseCase(
	coordRepo repository.CoordenadaRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *CoordenadaUseCase {
	return &CoordenadaUseCase{coordRepo: coordRepo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// Create crea una coordenada vacía para un producto en una bodega.
func (uc *CoordenadaUseCase) Create(in dto.CreateCoordenadaRequest) (*dto.CoordenadaResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	coord := &entity.Coordenada{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Posicion:    in.Posicion,
		Cantidad:    0,
		UpdatedAt:   time.Now(),
	}
	if err := uc.coordRepo.Create(coord); err != nil {
		return nil, err
	}
	return toCoordenadaResponse(coord), nil
}

// ListByWarehouse lista las coordenadas de una bodega.
func (uc *CoordenadaUseCase) ListByWarehouse(warehouseID string, limit, offset int) ([]dto.CoordenadaResponse, error) {
	list, err := uc.coordRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CoordenadaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCoordenadaResponse(c))
	}
	return items, nil
}

// ListByProduct lista dónde está físicamente un producto.
func (uc *CoordenadaUseCase) ListByProduct(productID string) ([]dto.CoordenadaResponse, error) {
	list, err := uc.coordRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CoordenadaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCoordenadaResponse(c))
	}
	return items, nil
}

func toCoordenadaResponse(c *entity.Coordenada) *dto.CoordenadaResponse {
	if c == nil {
		return nil
	}
	return &dto.CoordenadaResponse{
		ID:          c.ID,
		WarehouseID: c.WarehouseID,
		ProductID:   c.ProductID,
		Posicion:    c.Posicion,
		Cantidad:    c.Cantidad,
		UpdatedAt:   c.UpdatedAt,
	}
}
