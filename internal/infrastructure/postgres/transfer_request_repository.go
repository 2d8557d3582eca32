package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.TransferRequestRepository = (*TransferRequestRepo)(nil)

// TransferRequestRepo implementación de TransferRequestRepository sobre PostgreSQL.
type TransferRequestRepo struct {
	q Querier
}

func NewTransferRequestRepository(q Querier) *TransferRequestRepo {
	return &TransferRequestRepo{q: q}
}

const transferCols = `id, product_id, from_coordenada_id, to_coordenada_id, quantity,
	justification, status, requested_by, resolved_by, reject_reason, movement_id,
	created_at, updated_at`

// Create persiste una solicitud de traslado.
func (r *TransferRequestRepo) Create(request *entity.TransferRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfer_requests (` + transferCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.ProductID, request.FromCoordenadaID, request.ToCoordenadaID,
		request.Quantity, request.Justification, request.Status, request.RequestedBy,
		request.ResolvedBy, request.RejectReason, request.MovementID,
		request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer request: %w", err)
	}
	return nil
}

// GetByID obtiene la solicitud; nil si no existe.
func (r *TransferRequestRepo) GetByID(id string) (*entity.TransferRequest, error) {
	return r.get(id, false)
}

// GetByIDForUpdate bloquea la fila (NOWAIT) antes de leerla.
// Si otra transacción la tiene bloqueada devuelve domain.ErrConflicto.
func (r *TransferRequestRepo) GetByIDForUpdate(id string) (*entity.TransferRequest, error) {
	return r.get(id, true)
}

func (r *TransferRequestRepo) get(id string, forUpdate bool) (*entity.TransferRequest, error) {
	query := `SELECT ` + transferCols + ` FROM transfer_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE NOWAIT`
	}
	var t entity.TransferRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProductID, &t.FromCoordenadaID, &t.ToCoordenadaID, &t.Quantity,
		&t.Justification, &t.Status, &t.RequestedBy, &t.ResolvedBy, &t.RejectReason,
		&t.MovementID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockUnavailable(err) {
			return nil, domain.ErrConflicto
		}
		return nil, fmt.Errorf("get transfer request: %w", err)
	}
	return &t, nil
}

// Update persiste la transición de estado (status, resolutor, movement_id).
func (r *TransferRequestRepo) Update(request *entity.TransferRequest) error {
	query := `
		UPDATE transfer_requests
		SET status = $2, resolved_by = $3, reject_reason = $4, movement_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		request.ID, request.Status, request.ResolvedBy, request.RejectReason,
		request.MovementID, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStatus lista solicitudes por estado (más antiguas primero, para la cola de aprobación).
func (r *TransferRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.TransferRequest, error) {
	query := `SELECT ` + transferCols + ` FROM transfer_requests`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferRequest
	for rows.Next() {
		var t entity.TransferRequest
		if err := rows.Scan(&t.ID, &t.ProductID, &t.FromCoordenadaID, &t.ToCoordenadaID,
			&t.Quantity, &t.Justification, &t.Status, &t.RequestedBy, &t.ResolvedBy,
			&t.RejectReason, &t.MovementID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer request: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
