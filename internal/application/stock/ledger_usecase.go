package stock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	stockdomain "github.com/jhoicas/Taller-api/internal/domain/stock"
)

// LedgerUseCase es la puerta de entrada al ledger: registra movimientos de
// forma transaccional con bloqueo de fila por coordenada y mantiene la
// proyección materializada (Coordenada.Cantidad) en la misma transacción.
type LedgerUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository // lecturas fuera de tx
	productRepo repository.ProductRepository
	audit       AuditSink
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	audit AuditSink,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, productRepo: productRepo, audit: audit}
}

// AppendMovementInput entrada para registrar un movimiento en el ledger.
// Los lados From/To siguen la convención de entity.StockMovement.
type AppendMovementInput struct {
	ProductID        string
	FromCoordenadaID *string
	ToCoordenadaID   *string
	Type             string
	Quantity         int64
	Reference        string
	Reason           string
	ActorID          string
}

// Append valida el movimiento, bloquea las coordenadas afectadas y escribe el
// ledger junto con la proyección. Devuelve el ID del movimiento creado.
// Reintenta ante ErrConflicto con lectura fresca (hasta maxAttempts).
func (uc *LedgerUseCase) Append(ctx context.Context, input AppendMovementInput) (string, error) {
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}

	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		ProductID:        input.ProductID,
		FromCoordenadaID: input.FromCoordenadaID,
		ToCoordenadaID:   input.ToCoordenadaID,
		Type:             input.Type,
		Quantity:         input.Quantity,
		Reference:        input.Reference,
		Reason:           input.Reason,
		CreatedAt:        time.Now(),
		CreatedBy:        input.ActorID,
	}

	err = withRetry(ctx, func() error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			coordRepo repository.CoordenadaRepository,
		) error {
			return applyMovement(movRepo, coordRepo, mov)
		})
	})

	uc.audit.Report(ctx, auditFor("ledger.append", mov, err))
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// MovementsFor lista los movimientos de un producto en orden cronológico;
// coordenadaID no vacío restringe a los que tocan esa coordenada.
func (uc *LedgerUseCase) MovementsFor(ctx context.Context, productID, coordenadaID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByProduct(productID, coordenadaID, from, to, limit, offset)
}

// applyMovement es el núcleo del ledger, compartido por los motores de
// traslado, ajuste y recepción. Debe ejecutarse dentro de una transacción:
// bloquea las coordenadas afectadas (en orden de ID para evitar deadlocks),
// verifica no-negatividad contra la lectura bloqueada, actualiza la proyección
// y persiste el movimiento. Todo o nada.
func applyMovement(
	movRepo repository.StockMovementRepository,
	coordRepo repository.CoordenadaRepository,
	mov *entity.StockMovement,
) error {
	if err := validateMovement(mov); err != nil {
		return err
	}

	ids := affectedCoordenadas(mov)
	sort.Strings(ids)

	for _, id := range ids {
		coord, err := coordRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if coord == nil {
			return domain.ErrNotFound
		}
		if coord.ProductID != mov.ProductID {
			return fmt.Errorf("%w: la coordenada %s no corresponde al producto %s", domain.ErrValidacion, id, mov.ProductID)
		}
		nueva := coord.Cantidad + stockdomain.NetEffect(mov, id)
		if nueva < 0 {
			return domain.ErrStockInsuficiente
		}
		if err := coordRepo.UpdateCantidad(id, nueva); err != nil {
			return err
		}
	}

	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	return movRepo.Create(mov)
}

// validateMovement aplica las reglas estructurales por tipo de movimiento.
func validateMovement(m *entity.StockMovement) error {
	switch m.Type {
	case entity.MovementTypePURCHASE:
		if m.FromCoordenadaID != nil || m.ToCoordenadaID == nil || m.Quantity <= 0 {
			return domain.ErrValidacion
		}
	case entity.MovementTypeSALE:
		if m.FromCoordenadaID == nil || m.ToCoordenadaID != nil || m.Quantity <= 0 {
			return domain.ErrValidacion
		}
	case entity.MovementTypeTRANSFER:
		if m.FromCoordenadaID == nil || m.ToCoordenadaID == nil || m.Quantity <= 0 {
			return domain.ErrValidacion
		}
		if *m.FromCoordenadaID == *m.ToCoordenadaID {
			return fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrValidacion)
		}
	case entity.MovementTypeADJUSTMENT:
		if m.FromCoordenadaID != nil || m.ToCoordenadaID == nil || m.Quantity == 0 {
			return domain.ErrValidacion
		}
		if strings.TrimSpace(m.Reason) == "" {
			return fmt.Errorf("%w: el ajuste requiere motivo", domain.ErrValidacion)
		}
	default:
		return domain.ErrValidacion
	}
	return nil
}

// affectedCoordenadas devuelve las coordenadas que el movimiento toca.
func affectedCoordenadas(m *entity.StockMovement) []string {
	var ids []string
	if m.FromCoordenadaID != nil {
		ids = append(ids, *m.FromCoordenadaID)
	}
	if m.ToCoordenadaID != nil {
		ids = append(ids, *m.ToCoordenadaID)
	}
	return ids
}

// auditFor arma el evento de auditoría de una operación sobre el ledger.
func auditFor(operation string, mov *entity.StockMovement, err error) AuditEvent {
	ev := AuditEvent{
		Operation:  operation,
		ActorID:    mov.CreatedBy,
		ProductID:  mov.ProductID,
		Reference:  mov.Reference,
		Quantity:   mov.Quantity,
		Success:    err == nil,
		At:         time.Now(),
	}
	if err != nil {
		ev.Error = err.Error()
	} else {
		ev.MovementID = mov.ID
	}
	return ev
}
