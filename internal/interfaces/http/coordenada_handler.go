package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// CoordenadaHandler maneja las ubicaciones físicas de producto por bodega (protegido).
type CoordenadaHandler struct {
	uc *usecase.CoordenadaUseCase
}

// NewCoordenadaHandler construye el handler.
func NewCoordenadaHandler(uc *usecase.CoordenadaUseCase) *CoordenadaHandler {
	return &CoordenadaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear coordenada
// @Description  Crea la ubicación de un producto en una bodega con cantidad 0.
//
//	El stock solo entra después, vía movimientos.
//
// @Tags         coordenadas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCoordenadaRequest  true  "warehouse_id, product_id, posicion"
// @Success      201   {object}  dto.CoordenadaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/coordenadas [post]
func (h *CoordenadaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCoordenadaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.WarehouseID == "" || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id y product_id son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByWarehouse godoc
// @Summary      Listar coordenadas de una bodega
// @Tags         coordenadas
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "ID de la bodega"
// @Param        limit         query  int     false  "Tamaño de página (default 20)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.CoordenadaResponse
// @Router       /api/warehouses/{warehouse_id}/coordenadas [get]
func (h *CoordenadaHandler) ListByWarehouse(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListByWarehouse(c.Params("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Ubicaciones físicas de un producto
// @Tags         coordenadas
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.CoordenadaResponse
// @Router       /api/products/{product_id}/coordenadas [get]
func (h *CoordenadaHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
