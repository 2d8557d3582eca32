package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// StockHandler maneja consultas de stock, historial del ledger, ajustes y
// salidas por venta (protegido).
type StockHandler struct {
	ledger     *stock.LedgerUseCase
	aggregator *stock.AggregatorUseCase
	adjustment *stock.AdjustmentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, aggregator *stock.AggregatorUseCase, adjustment *stock.AdjustmentUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, aggregator: aggregator, adjustment: adjustment}
}

// GetStock godoc
// @Summary      Stock agregado de un producto
// @Description  Suma la proyección materializada. warehouse_id vacío = global.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        warehouse_id  query  string  false  "Limitar a una bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	warehouseID := c.Query("warehouse_id")
	total, err := h.aggregator.StockOf(c.Context(), productID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Stock: total})
}

// GetMovements godoc
// @Summary      Historial de movimientos de un producto
// @Description  Lista del ledger en orden cronológico. coordenada_id restringe a
//
//	los movimientos que tocan esa coordenada; from/to en RFC 3339.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  true   "ID del producto"
// @Param        coordenada_id  query  string  false  "Filtrar por coordenada"
// @Param        from           query  string  false  "Desde (RFC 3339)"
// @Param        to             query  string  false  "Hasta (RFC 3339)"
// @Param        limit          query  int     false  "Tamaño de página (default 20)"
// @Param        offset         query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) GetMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC 3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC 3339"})
		}
		to = &t
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	movs, err := h.ledger.MovementsFor(c.Context(), productID, c.Query("coordenada_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:               m.ID,
			ProductID:        m.ProductID,
			FromCoordenadaID: m.FromCoordenadaID,
			ToCoordenadaID:   m.ToCoordenadaID,
			Type:             m.Type,
			Quantity:         m.Quantity,
			Reference:        m.Reference,
			Reason:           m.Reason,
			CreatedAt:        m.CreatedAt,
			CreatedBy:        m.CreatedBy,
		})
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Registra un movimiento ADJUSTMENT con delta con signo. El motivo
//
//	es obligatorio. Un delta que deje la coordenada en negativo falla con 409.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "product_id, coordenada_id, delta, reason"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movementID, err := h.adjustment.Adjust(c.Context(), stock.AdjustInput{
		ProductID:    in.ProductID,
		CoordenadaID: in.CoordenadaID,
		Delta:        in.Delta,
		Reason:       in.Reason,
		ActorID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement_id": movementID})
}

// Sale godoc
// @Summary      Salida por venta
// @Description  Registra un movimiento SALE (destino externo) descontando de la
//
//	coordenada de origen. Falla con 409 si no hay stock suficiente.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "product_id, coordenada_id, quantity, reference"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/sales [post]
func (h *StockHandler) Sale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CoordenadaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "coordenada_id es requerido"})
	}
	movementID, err := h.ledger.Append(c.Context(), stock.AppendMovementInput{
		ProductID:        in.ProductID,
		FromCoordenadaID: &in.CoordenadaID,
		Type:             entity.MovementTypeSALE,
		Quantity:         in.Quantity,
		Reference:        in.Reference,
		ActorID:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement_id": movementID})
}
