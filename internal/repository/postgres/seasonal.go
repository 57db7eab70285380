package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/types"
)

type seasonalRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewSeasonalRepository creates a postgres-backed seasonal window repository
func NewSeasonalRepository(db *sqlx.DB, log *logger.Logger) seasonal.Repository {
	return &seasonalRepository{db: db, log: log}
}

// windowRow adapts the domain model's service id slice to a text array
// column.
type windowRow struct {
	seasonal.Window
	ServiceIDsArr pq.StringArray `db:"service_ids"`
}

func toWindowRow(w *seasonal.Window) *windowRow {
	return &windowRow{Window: *w, ServiceIDsArr: pq.StringArray(w.ServiceIDs)}
}

func (r *windowRow) toWindow() *seasonal.Window {
	w := r.Window
	w.ServiceIDs = []string(r.ServiceIDsArr)
	return &w
}

const insertWindowQuery = `
	INSERT INTO seasonal_windows (
		id, name, start_date, end_date, applies_to, service_ids,
		adjustment_type, adjustment_value, is_active,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :name, :start_date, :end_date, :applies_to, :service_ids,
		:adjustment_type, :adjustment_value, :is_active,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *seasonalRepository) Create(ctx context.Context, window *seasonal.Window) error {
	if _, err := r.db.NamedExecContext(ctx, insertWindowQuery, toWindowRow(window)); err != nil {
		return wrapDBError(err, "seasonal window")
	}
	return nil
}

func (r *seasonalRepository) Get(ctx context.Context, id string) (*seasonal.Window, error) {
	var row windowRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM seasonal_windows WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "seasonal window")
	}
	return row.toWindow(), nil
}

func (r *seasonalRepository) ListActive(ctx context.Context) ([]*seasonal.Window, error) {
	var rows []*windowRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM seasonal_windows
		 WHERE is_active = true AND status = $1
		 ORDER BY start_date`,
		types.StatusPublished)
	if err != nil {
		return nil, wrapDBError(err, "seasonal windows")
	}
	return lo.Map(rows, func(row *windowRow, _ int) *seasonal.Window {
		return row.toWindow()
	}), nil
}
