package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// RulesHandler maneja la configuración de reglas de negocio y la consulta de
// sugerencias de reorden (protegido).
type RulesHandler struct {
	uc *stock.RulesUseCase
}

// NewRulesHandler construye el handler.
func NewRulesHandler(uc *stock.RulesUseCase) *RulesHandler {
	return &RulesHandler{uc: uc}
}

// Create godoc
// @Summary      Crear regla de reorden
// @Description  scope GLOBAL y BODEGA vigilan un producto; MARCA vigila todos
//
//	los productos de una marca con el mismo umbral.
//
// @Tags         rules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRuleRequest  true  "scope, product_id/warehouse_id/brand según scope, threshold"
// @Success      201   {object}  dto.RuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rules [post]
func (h *RulesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rule, err := h.uc.CreateRule(c.Context(), stock.CreateRuleInput{
		Scope:       in.Scope,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Brand:       in.Brand,
		Threshold:   in.Threshold,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRuleResponse(rule))
}

// List godoc
// @Summary      Listar reglas configuradas
// @Tags         rules
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.RuleResponse
// @Router       /api/rules [get]
func (h *RulesHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	rules, err := h.uc.ListRules(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, *toRuleResponse(r))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar regla
// @Tags         rules
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rules/{id} [delete]
func (h *RulesHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteRule(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "regla eliminada"})
}

// Suggestions godoc
// @Summary      Sugerencias de reorden
// @Description  Evalúa todas las reglas contra el stock agregado actual. Nada se
//
//	persiste: se recalcula en cada consulta.
//
// @Tags         rules
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SuggestionDTO
// @Router       /api/rules/suggestions [get]
func (h *RulesHandler) Suggestions(c *fiber.Ctx) error {
	suggestions, err := h.uc.Evaluate(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suggestions)
}

func toRuleResponse(r *entity.BusinessRule) *dto.RuleResponse {
	if r == nil {
		return nil
	}
	return &dto.RuleResponse{
		ID:          r.ID,
		Scope:       r.Scope,
		ProductID:   r.ProductID,
		WarehouseID: r.WarehouseID,
		Brand:       r.Brand,
		Threshold:   r.Threshold,
		Action:      r.Action,
		CreatedAt:   r.CreatedAt,
	}
}
