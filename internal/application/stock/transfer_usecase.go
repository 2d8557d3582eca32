package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TransferUseCase mueve cantidad entre coordenadas. El traslado directo escribe
// un único movimiento TRANSFER con los dos lados en la misma transacción; la
// variante con aprobación pasa por la máquina de estados de TransferRequest y
// solo Complete toca el stock.
type TransferUseCase struct {
	txRunner    TxRunner
	coordRepo   repository.CoordenadaRepository
	requestRepo repository.TransferRequestRepository
	audit       AuditSink
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	coordRepo repository.CoordenadaRepository,
	requestRepo repository.TransferRequestRepository,
	audit AuditSink,
) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, coordRepo: coordRepo, requestRepo: requestRepo, audit: audit}
}

// TransferInput entrada para un traslado entre coordenadas.
type TransferInput struct {
	ProductID        string
	Quantity         int64
	FromCoordenadaID string
	ToCoordenadaID   string
	ActorID          string
}

func (in TransferInput) validate() error {
	if in.ProductID == "" || in.FromCoordenadaID == "" || in.ToCoordenadaID == "" {
		return domain.ErrValidacion
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrValidacion)
	}
	if in.FromCoordenadaID == in.ToCoordenadaID {
		return fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrValidacion)
	}
	return nil
}

// Transfer ejecuta un traslado directo: decremento en origen e incremento en
// destino como un único movimiento atómico. Si algo falla a mitad de camino no
// queda ningún lado aplicado.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}

	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		FromCoordenadaID: &in.FromCoordenadaID,
		ToCoordenadaID:   &in.ToCoordenadaID,
		Type:             entity.MovementTypeTRANSFER,
		Quantity:         in.Quantity,
		CreatedAt:        time.Now(),
		CreatedBy:        in.ActorID,
	}

	err := withRetry(ctx, func() error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			coordRepo repository.CoordenadaRepository,
		) error {
			return applyMovement(movRepo, coordRepo, mov)
		})
	})

	uc.audit.Report(ctx, auditFor("transfer.direct", mov, err))
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// RequestInput entrada para solicitar un traslado que requiere aprobación.
type RequestInput struct {
	TransferInput
	Justification string
}

// Request crea una solicitud en estado SOLICITADO. No toca el stock: la
// cantidad disponible se verifica recién al completar, contra lectura bloqueada.
func (uc *TransferUseCase) Request(ctx context.Context, in RequestInput) (*entity.TransferRequest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Justification) == "" {
		return nil, fmt.Errorf("%w: la solicitud requiere justificación", domain.ErrValidacion)
	}
	for _, id := range []string{in.FromCoordenadaID, in.ToCoordenadaID} {
		coord, err := uc.coordRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if coord == nil {
			return nil, domain.ErrNotFound
		}
		if coord.ProductID != in.ProductID {
			return nil, fmt.Errorf("%w: la coordenada %s no corresponde al producto", domain.ErrValidacion, id)
		}
	}

	now := time.Now()
	req := &entity.TransferRequest{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		FromCoordenadaID: in.FromCoordenadaID,
		ToCoordenadaID:   in.ToCoordenadaID,
		Quantity:         in.Quantity,
		Justification:    in.Justification,
		Status:           entity.TransferStatusSOLICITADO,
		RequestedBy:      in.ActorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.requestRepo.Create(req); err != nil {
		uc.audit.Report(ctx, AuditEvent{Operation: "transfer.request", ActorID: in.ActorID, ProductID: in.ProductID, Quantity: in.Quantity, Error: err.Error(), At: time.Now()})
		return nil, err
	}
	uc.audit.Report(ctx, AuditEvent{Operation: "transfer.request", ActorID: in.ActorID, ProductID: in.ProductID, Reference: req.ID, Quantity: in.Quantity, Success: true, At: time.Now()})
	return req, nil
}

// Approve pasa la solicitud SOLICITADO → APROBADO.
func (uc *TransferUseCase) Approve(ctx context.Context, requestID, approverID string) (*entity.TransferRequest, error) {
	return uc.resolve(ctx, "transfer.approve", requestID, approverID, entity.TransferStatusAPROBADO, "")
}

// Reject pasa la solicitud SOLICITADO → RECHAZADO con motivo obligatorio.
// Una solicitud rechazada nunca afecta el stock.
func (uc *TransferUseCase) Reject(ctx context.Context, requestID, approverID, reason string) (*entity.TransferRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: el rechazo requiere motivo", domain.ErrValidacion)
	}
	return uc.resolve(ctx, "transfer.reject", requestID, approverID, entity.TransferStatusRECHAZADO, reason)
}

func (uc *TransferUseCase) resolve(ctx context.Context, operation, requestID, approverID, newStatus, reason string) (*entity.TransferRequest, error) {
	var resolved *entity.TransferRequest
	err := withRetry(ctx, func() error {
		return uc.txRunner.RunTransfer(ctx, func(
			_ repository.StockMovementRepository,
			_ repository.CoordenadaRepository,
			requestRepo repository.TransferRequestRepository,
		) error {
			req, err := requestRepo.GetByIDForUpdate(requestID)
			if err != nil {
				return err
			}
			if req == nil {
				return domain.ErrNotFound
			}
			if req.Status != entity.TransferStatusSOLICITADO {
				return domain.ErrEstadoInvalido
			}
			req.Status = newStatus
			req.ResolvedBy = approverID
			req.RejectReason = reason
			req.UpdatedAt = time.Now()
			if err := requestRepo.Update(req); err != nil {
				return err
			}
			resolved = req
			return nil
		})
	})

	ev := AuditEvent{Operation: operation, ActorID: approverID, Reference: requestID, Success: err == nil, At: time.Now()}
	if err != nil {
		ev.Error = err.Error()
	}
	uc.audit.Report(ctx, ev)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// Complete ejecuta el traslado de una solicitud APROBADO: escribe el movimiento
// TRANSFER y marca la solicitud COMPLETADO en la misma transacción. La
// verificación de stock ocurre aquí, contra la fila bloqueada, no al aprobar.
func (uc *TransferUseCase) Complete(ctx context.Context, requestID, actorID string) (string, error) {
	var mov *entity.StockMovement
	err := withRetry(ctx, func() error {
		return uc.txRunner.RunTransfer(ctx, func(
			movRepo repository.StockMovementRepository,
			coordRepo repository.CoordenadaRepository,
			requestRepo repository.TransferRequestRepository,
		) error {
			req, err := requestRepo.GetByIDForUpdate(requestID)
			if err != nil {
				return err
			}
			if req == nil {
				return domain.ErrNotFound
			}
			if req.Status != entity.TransferStatusAPROBADO {
				return domain.ErrEstadoInvalido
			}

			mov = &entity.StockMovement{
				ID:               uuid.New().String(),
				ProductID:        req.ProductID,
				FromCoordenadaID: &req.FromCoordenadaID,
				ToCoordenadaID:   &req.ToCoordenadaID,
				Type:             entity.MovementTypeTRANSFER,
				Quantity:         req.Quantity,
				Reference:        req.ID,
				CreatedAt:        time.Now(),
				CreatedBy:        actorID,
			}
			if err := applyMovement(movRepo, coordRepo, mov); err != nil {
				return err
			}

			req.Status = entity.TransferStatusCOMPLETADO
			req.MovementID = &mov.ID
			req.UpdatedAt = time.Now()
			return requestRepo.Update(req)
		})
	})

	ev := AuditEvent{Operation: "transfer.complete", ActorID: actorID, Reference: requestID, Success: err == nil, At: time.Now()}
	if err != nil {
		ev.Error = err.Error()
	} else {
		ev.MovementID = mov.ID
		ev.ProductID = mov.ProductID
		ev.Quantity = mov.Quantity
	}
	uc.audit.Report(ctx, ev)
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// ListPending devuelve las solicitudes en estado SOLICITADO para la capa de
// notificación (consulta simple, sin push).
func (uc *TransferUseCase) ListPending(ctx context.Context, limit, offset int) ([]*entity.TransferRequest, error) {
	return uc.requestRepo.ListByStatus(entity.TransferStatusSOLICITADO, limit, offset)
}
