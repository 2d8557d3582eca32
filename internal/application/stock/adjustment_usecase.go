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

// AdjustmentUseCase aplica correcciones manuales de stock (daño, pérdida,
// conteo físico) sobre una sola coordenada, siempre con motivo.
type AdjustmentUseCase struct {
	txRunner  TxRunner
	coordRepo repository.CoordenadaRepository
	audit     AuditSink
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, coordRepo repository.CoordenadaRepository, audit AuditSink) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, coordRepo: coordRepo, audit: audit}
}

// AdjustInput entrada para un ajuste de inventario.
type AdjustInput struct {
	ProductID    string
	CoordenadaID string
	Delta        int64 // con signo; negativo resta
	ActorID      string
	Reason       string
}

// Adjust registra exactamente un movimiento ADJUSTMENT. El motivo se valida
// aquí, además de en el ledger, para que el caller reciba el error preciso
// antes de abrir la transacción. Falla con ErrStockInsuficiente si el delta
// dejaría la coordenada en negativo.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, in AdjustInput) (string, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return "", fmt.Errorf("%w: el ajuste requiere motivo", domain.ErrValidacion)
	}
	if in.Delta == 0 {
		return "", fmt.Errorf("%w: el delta no puede ser cero", domain.ErrValidacion)
	}

	coord, err := uc.coordRepo.GetByID(in.CoordenadaID)
	if err != nil {
		return "", err
	}
	if coord == nil {
		return "", domain.ErrNotFound
	}
	if coord.ProductID != in.ProductID {
		return "", fmt.Errorf("%w: la coordenada no corresponde al producto", domain.ErrValidacion)
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		ToCoordenadaID: &in.CoordenadaID,
		Type:           entity.MovementTypeADJUSTMENT,
		Quantity:       in.Delta,
		Reason:         in.Reason,
		CreatedAt:      time.Now(),
		CreatedBy:      in.ActorID,
	}

	err = withRetry(ctx, func() error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			coordRepo repository.CoordenadaRepository,
		) error {
			return applyMovement(movRepo, coordRepo, mov)
		})
	})

	uc.audit.Report(ctx, auditFor("stock.adjust", mov, err))
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}
