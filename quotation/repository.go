package quotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PGRepository stores quotation requests in PostgreSQL. It implements
// Submitter; the delivery target is the user's registered email.
type PGRepository struct {
	pool TxBeginner
}

// NewRepository creates a PostgreSQL-backed submitter.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Submit inserts the request and its plans in one transaction.
func (r *PGRepository) Submit(ctx context.Context, req Request) (Receipt, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("quotation: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var email string
	if err := tx.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, req.UserID).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Receipt{Accepted: false, Message: "Usuario no encontrado"}, nil
		}
		return Receipt{}, fmt.Errorf("quotation: load user: %w", err)
	}

	const insertSQL = `
		INSERT INTO quotation_requests (id, user_id, comments, status, created_at)
		VALUES ($1, $2, NULLIF($3, ''), 'PENDIENTE', $4)
	`
	if _, err := tx.Exec(ctx, insertSQL, req.ID, req.UserID, req.Comments, req.RequestedAt); err != nil {
		return Receipt{}, fmt.Errorf("quotation: insert request: %w", err)
	}

	const planSQL = `
		INSERT INTO quotation_request_plans (request_id, plan_id)
		SELECT $1, p.id FROM plans p WHERE p.id = $2 AND p.active
	`
	seen := make(map[int64]bool, len(req.PlanIDs))
	for _, planID := range req.PlanIDs {
		if seen[planID] {
			continue
		}
		seen[planID] = true
		tag, err := tx.Exec(ctx, planSQL, req.ID, planID)
		if err != nil {
			return Receipt{}, fmt.Errorf("quotation: insert plan %d: %w", planID, err)
		}
		if tag.RowsAffected() == 0 {
			return Receipt{Accepted: false, Message: fmt.Sprintf("El plan %d ya no está disponible", planID)}, nil
		}
	}

	const activitySQL = `
		INSERT INTO activity_log (user_id, kind, description)
		VALUES ($1, 'cotizacion', $2)
	`
	if _, err := tx.Exec(ctx, activitySQL, req.UserID, fmt.Sprintf("Solicitud de cotización de %d plan(es)", len(req.PlanIDs))); err != nil {
		return Receipt{}, fmt.Errorf("quotation: append activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Receipt{}, fmt.Errorf("quotation: commit: %w", err)
	}

	return Receipt{Accepted: true, DeliveryTarget: email}, nil
}
