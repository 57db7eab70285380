package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chairflow/chairflow/internal/domain/client"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/types"
)

type clientRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewClientRepository creates a postgres-backed client repository
func NewClientRepository(db *sqlx.DB, log *logger.Logger) client.Repository {
	return &clientRepository{db: db, log: log}
}

const insertClientQuery = `
	INSERT INTO clients (
		id, name, email, phone, address, distance_from_base_km,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :name, :email, :phone, :address, :distance_from_base_km,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	if _, err := r.db.NamedExecContext(ctx, insertClientQuery, c); err != nil {
		return wrapDBError(err, "client")
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	var c client.Client
	err := r.db.GetContext(ctx, &c,
		`SELECT * FROM clients WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "client")
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.SelectContext(ctx, &clients,
		`SELECT * FROM clients WHERE status = $1 ORDER BY name`,
		types.StatusPublished)
	if err != nil {
		return nil, wrapDBError(err, "clients")
	}
	return clients, nil
}
