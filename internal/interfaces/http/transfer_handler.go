package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// TransferHandler maneja traslados entre coordenadas (protegido). El mismo
// endpoint de creación decide por rol: autoridad directa ejecuta el traslado,
// sin autoridad crea una solicitud SOLICITADO.
type TransferHandler struct {
	uc *stock.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *stock.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Trasladar stock entre coordenadas
// @Description  admin y bodeguero ejecutan el traslado directo (201 con
//
//	movement_id); vendedor crea una solicitud de aprobación (202 con la
//	solicitud). justification es obligatoria solo en el segundo caso.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequestBody  true  "product_id, quantity, from_coordenada_id, to_coordenada_id, justification"
// @Success      201   {object}  map[string]string
// @Success      202   {object}  dto.TransferRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequestBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := stock.TransferInput{
		ProductID:        in.ProductID,
		Quantity:         in.Quantity,
		FromCoordenadaID: in.FromCoordenadaID,
		ToCoordenadaID:   in.ToCoordenadaID,
		ActorID:          GetUserID(c),
	}

	if CanTransferDirect(GetRole(c)) {
		movementID, err := h.uc.Transfer(c.Context(), input)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement_id": movementID})
	}

	req, err := h.uc.Request(c.Context(), stock.RequestInput{TransferInput: input, Justification: in.Justification})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(toTransferResponse(req))
}

// Approve godoc
// @Summary      Aprobar solicitud de traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.TransferRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/requests/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	req, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(req))
}

// Reject godoc
// @Summary      Rechazar solicitud de traslado
// @Description  El motivo es obligatorio. Una solicitud rechazada nunca afecta el stock.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.RejectRequestBody  true  "reason"
// @Success      200   {object}  dto.TransferRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/requests/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequestBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(req))
}

// Complete godoc
// @Summary      Ejecutar traslado aprobado
// @Description  Escribe el movimiento TRANSFER y marca la solicitud COMPLETADO
//
//	en la misma transacción. La disponibilidad se verifica aquí.
//
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/requests/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	movementID, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"movement_id": movementID})
}

// ListPending godoc
// @Summary      Solicitudes de traslado pendientes
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.TransferRequestResponse
// @Router       /api/transfers/requests/pending [get]
func (h *TransferHandler) ListPending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.ListPending(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferRequestResponse, 0, len(list))
	for _, req := range list {
		out = append(out, *toTransferResponse(req))
	}
	return c.JSON(out)
}

func toTransferResponse(req *entity.TransferRequest) *dto.TransferRequestResponse {
	if req == nil {
		return nil
	}
	return &dto.TransferRequestResponse{
		ID:               req.ID,
		ProductID:        req.ProductID,
		FromCoordenadaID: req.FromCoordenadaID,
		ToCoordenadaID:   req.ToCoordenadaID,
		Quantity:         req.Quantity,
		Justification:    req.Justification,
		Status:           req.Status,
		RequestedBy:      req.RequestedBy,
		ResolvedBy:       req.ResolvedBy,
		RejectReason:     req.RejectReason,
		MovementID:       req.MovementID,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}
