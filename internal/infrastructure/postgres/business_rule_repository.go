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

var _ repository.BusinessRuleRepository = (*BusinessRuleRepo)(nil)

// BusinessRuleRepo implementación de BusinessRuleRepository sobre PostgreSQL.
type BusinessRuleRepo struct {
	q Querier
}

func NewBusinessRuleRepository(q Querier) *BusinessRuleRepo {
	return &BusinessRuleRepo{q: q}
}

const ruleCols = `id, scope, product_id, warehouse_id, brand, threshold, action, created_at, updated_at`

// Create persiste una regla.
func (r *BusinessRuleRepo) Create(rule *entity.BusinessRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	query := `
		INSERT INTO business_rules (` + ruleCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.Scope, rule.ProductID, rule.WarehouseID, rule.Brand,
		rule.Threshold, rule.Action, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create business rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla; nil si no existe.
func (r *BusinessRuleRepo) GetByID(id string) (*entity.BusinessRule, error) {
	query := `SELECT ` + ruleCols + ` FROM business_rules WHERE id = $1`
	var b entity.BusinessRule
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Scope, &b.ProductID, &b.WarehouseID, &b.Brand,
		&b.Threshold, &b.Action, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business rule: %w", err)
	}
	return &b, nil
}

// List lista reglas en orden de creación.
func (r *BusinessRuleRepo) List(limit, offset int) ([]*entity.BusinessRule, error) {
	query := `SELECT ` + ruleCols + ` FROM business_rules ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list business rules: %w", err)
	}
	defer rows.Close()
	var rules []*entity.BusinessRule
	for rows.Next() {
		var b entity.BusinessRule
		if err := rows.Scan(&b.ID, &b.Scope, &b.ProductID, &b.WarehouseID, &b.Brand,
			&b.Threshold, &b.Action, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business rule: %w", err)
		}
		rules = append(rules, &b)
	}
	return rules, rows.Err()
}

// Delete elimina una regla.
func (r *BusinessRuleRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM business_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete business rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
