package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chairflow/chairflow/internal/domain/tier"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/types"
)

type tierRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewTierRepository creates a postgres-backed pricing tier repository
func NewTierRepository(db *sqlx.DB, log *logger.Logger) tier.Repository {
	return &tierRepository{db: db, log: log}
}

const insertTierQuery = `
	INSERT INTO pricing_tiers (
		id, name, discount_percentage, minimum_job_value,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :name, :discount_percentage, :minimum_job_value,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *tierRepository) CreateTier(ctx context.Context, t *tier.PricingTier) error {
	if _, err := r.db.NamedExecContext(ctx, insertTierQuery, t); err != nil {
		return wrapDBError(err, "pricing tier")
	}
	return nil
}

func (r *tierRepository) GetTier(ctx context.Context, id string) (*tier.PricingTier, error) {
	var t tier.PricingTier
	err := r.db.GetContext(ctx, &t,
		`SELECT * FROM pricing_tiers WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "pricing tier")
	}
	return &t, nil
}

func (r *tierRepository) ListTiers(ctx context.Context) ([]*tier.PricingTier, error) {
	var tiers []*tier.PricingTier
	err := r.db.SelectContext(ctx, &tiers,
		`SELECT * FROM pricing_tiers WHERE status = $1 ORDER BY discount_percentage`,
		types.StatusPublished)
	if err != nil {
		return nil, wrapDBError(err, "pricing tiers")
	}
	return tiers, nil
}

// AssignClient archives any previous assignment so a client carries at most
// one active tier.
func (r *tierRepository) AssignClient(ctx context.Context, assignment *tier.Assignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapDBError(err, "tier assignment")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`UPDATE tier_assignments SET status = $1, updated_at = $2, updated_by = $3
		 WHERE client_id = $4 AND status = $5`,
		types.StatusArchived, assignment.UpdatedAt, assignment.UpdatedBy,
		assignment.ClientID, types.StatusPublished)
	if err != nil {
		return wrapDBError(err, "tier assignment")
	}

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO tier_assignments (
			id, client_id, tier_id,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :client_id, :tier_id,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`, assignment)
	if err != nil {
		return wrapDBError(err, "tier assignment")
	}

	if err := tx.Commit(); err != nil {
		return wrapDBError(err, "tier assignment")
	}
	return nil
}

func (r *tierRepository) GetAssignmentByClient(ctx context.Context, clientID string) (*tier.Assignment, error) {
	var assignment tier.Assignment
	err := r.db.GetContext(ctx, &assignment,
		`SELECT * FROM tier_assignments WHERE client_id = $1 AND status = $2`,
		clientID, types.StatusPublished)
	if err != nil {
		return nil, wrapDBError(err, "tier assignment")
	}
	return &assignment, nil
}
