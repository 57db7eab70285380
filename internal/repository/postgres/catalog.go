package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/types"
)

type catalogRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewCatalogRepository creates a postgres-backed price catalog repository
func NewCatalogRepository(db *sqlx.DB, log *logger.Logger) catalog.Repository {
	return &catalogRepository{db: db, log: log}
}

const insertServiceQuery = `
	INSERT INTO service_price_entries (
		id, name, category, base_price, cost_price, is_active,
		estimated_duration_minutes, status, created_at, updated_at,
		created_by, updated_by
	) VALUES (
		:id, :name, :category, :base_price, :cost_price, :is_active,
		:estimated_duration_minutes, :status, :created_at, :updated_at,
		:created_by, :updated_by
	)`

func (r *catalogRepository) CreateService(ctx context.Context, service *catalog.ServicePriceEntry) error {
	if _, err := r.db.NamedExecContext(ctx, insertServiceQuery, service); err != nil {
		return wrapDBError(err, "service")
	}
	return nil
}

func (r *catalogRepository) GetService(ctx context.Context, id string) (*catalog.ServicePriceEntry, error) {
	var entry catalog.ServicePriceEntry
	err := r.db.GetContext(ctx, &entry,
		`SELECT * FROM service_price_entries WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "service")
	}
	return &entry, nil
}

func (r *catalogRepository) ListActiveServices(ctx context.Context) ([]*catalog.ServicePriceEntry, error) {
	var entries []*catalog.ServicePriceEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM service_price_entries
		 WHERE is_active = true AND status = $1
		 ORDER BY name`,
		types.StatusPublished)
	if err != nil {
		return nil, wrapDBError(err, "services")
	}
	return entries, nil
}

func (r *catalogRepository) GetServicesByIDs(ctx context.Context, ids []string) ([]*catalog.ServicePriceEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT * FROM service_price_entries WHERE id IN (?) AND status != ?`,
		ids, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "services")
	}

	var entries []*catalog.ServicePriceEntry
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return nil, wrapDBError(err, "services")
	}
	return entries, nil
}

const insertPartQuery = `
	INSERT INTO part_price_entries (
		id, name, sell_price, cost_price, is_active,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :name, :sell_price, :cost_price, :is_active,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *catalogRepository) CreatePart(ctx context.Context, part *catalog.PartPriceEntry) error {
	if _, err := r.db.NamedExecContext(ctx, insertPartQuery, part); err != nil {
		return wrapDBError(err, "part")
	}
	return nil
}

func (r *catalogRepository) GetPart(ctx context.Context, id string) (*catalog.PartPriceEntry, error) {
	var entry catalog.PartPriceEntry
	err := r.db.GetContext(ctx, &entry,
		`SELECT * FROM part_price_entries WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "part")
	}
	return &entry, nil
}

func (r *catalogRepository) ListActiveParts(ctx context.Context) ([]*catalog.PartPriceEntry, error) {
	var entries []*catalog.PartPriceEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM part_price_entries
		 WHERE is_active = true AND status = $1
		 ORDER BY name`,
		types.StatusPublished)
	if err != nil {
		return nil, wrapDBError(err, "parts")
	}
	return entries, nil
}

func (r *catalogRepository) GetPartsByIDs(ctx context.Context, ids []string) ([]*catalog.PartPriceEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT * FROM part_price_entries WHERE id IN (?) AND status != ?`,
		ids, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "parts")
	}

	var entries []*catalog.PartPriceEntry
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return nil, wrapDBError(err, "parts")
	}
	return entries, nil
}
