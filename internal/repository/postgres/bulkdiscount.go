package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/types"
)

type bulkDiscountRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewBulkDiscountRepository creates a postgres-backed bulk discount repository
func NewBulkDiscountRepository(db *sqlx.DB, log *logger.Logger) bulkdiscount.Repository {
	return &bulkDiscountRepository{db: db, log: log}
}

const insertBulkRuleQuery = `
	INSERT INTO bulk_discount_rules (
		id, name, applies_to, minimum_quantity, discount_type,
		discount_percentage, discount_value, is_active,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :name, :applies_to, :minimum_quantity, :discount_type,
		:discount_percentage, :discount_value, :is_active,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *bulkDiscountRepository) Create(ctx context.Context, rule *bulkdiscount.Rule) error {
	if _, err := r.db.NamedExecContext(ctx, insertBulkRuleQuery, rule); err != nil {
		return wrapDBError(err, "bulk discount rule")
	}
	return nil
}

func (r *bulkDiscountRepository) Get(ctx context.Context, id string) (*bulkdiscount.Rule, error) {
	var rule bulkdiscount.Rule
	err := r.db.GetContext(ctx, &rule,
		`SELECT * FROM bulk_discount_rules WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "bulk discount rule")
	}
	return &rule, nil
}

func (r *bulkDiscountRepository) ListActive(ctx context.Context) ([]*bulkdiscount.Rule, error) {
	var rules []*bulkdiscount.Rule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT * FROM bulk_discount_rules
		 WHERE is_active = true AND status = $1
		 ORDER BY minimum_quantity`,
		types.StatusPublished)
	if err != nil {
		return nil, wrapDBError(err, "bulk discount rules")
	}
	return rules, nil
}
