package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/chairflow/chairflow/internal/domain/job"
	"github.com/chairflow/chairflow/internal/domain/pricing"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/types"
)

type jobRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewJobRepository creates a postgres-backed job repository
func NewJobRepository(db *sqlx.DB, log *logger.Logger) job.Repository {
	return &jobRepository{db: db, log: log}
}

// jobRow flattens the job's selections and calculation snapshot into jsonb
// columns.
type jobRow struct {
	job.Job
	ServicesJSON    []byte `db:"services"`
	PartsJSON       []byte `db:"parts"`
	CalculationJSON []byte `db:"calculation"`
}

func toJobRow(j *job.Job) (*jobRow, error) {
	row := &jobRow{Job: *j}

	var err error
	if row.ServicesJSON, err = json.Marshal(j.Services); err != nil {
		return nil, ierr.WithError(err).
			WithHint("could not encode job services").
			Mark(ierr.ErrSystem)
	}
	if row.PartsJSON, err = json.Marshal(j.Parts); err != nil {
		return nil, ierr.WithError(err).
			WithHint("could not encode job parts").
			Mark(ierr.ErrSystem)
	}
	if j.Calculation != nil {
		if row.CalculationJSON, err = json.Marshal(j.Calculation); err != nil {
			return nil, ierr.WithError(err).
				WithHint("could not encode job calculation").
				Mark(ierr.ErrSystem)
		}
	}
	return row, nil
}

func (r *jobRow) toJob() (*job.Job, error) {
	j := r.Job

	if len(r.ServicesJSON) > 0 {
		if err := json.Unmarshal(r.ServicesJSON, &j.Services); err != nil {
			return nil, ierr.WithError(err).
				WithHint("could not decode job services").
				Mark(ierr.ErrSystem)
		}
	}
	if len(r.PartsJSON) > 0 {
		if err := json.Unmarshal(r.PartsJSON, &j.Parts); err != nil {
			return nil, ierr.WithError(err).
				WithHint("could not decode job parts").
				Mark(ierr.ErrSystem)
		}
	}
	if len(r.CalculationJSON) > 0 {
		var calc pricing.Calculation
		if err := json.Unmarshal(r.CalculationJSON, &calc); err != nil {
			return nil, ierr.WithError(err).
				WithHint("could not decode job calculation").
				Mark(ierr.ErrSystem)
		}
		j.Calculation = &calc
	}
	return &j, nil
}

const insertJobQuery = `
	INSERT INTO jobs (
		id, job_number, client_id, chair_count, urgency, scheduled_date,
		distance_from_base_km, services, parts, job_status, calculation,
		actual_labor_hours, completed_at,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :job_number, :client_id, :chair_count, :urgency, :scheduled_date,
		:distance_from_base_km, :services, :parts, :job_status, :calculation,
		:actual_labor_hours, :completed_at,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *jobRepository) Create(ctx context.Context, j *job.Job) error {
	row, err := toJobRow(j)
	if err != nil {
		return err
	}
	if _, err := r.db.NamedExecContext(ctx, insertJobQuery, row); err != nil {
		return wrapDBError(err, "job")
	}
	return nil
}

func (r *jobRepository) Get(ctx context.Context, id string) (*job.Job, error) {
	var row jobRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM jobs WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "job")
	}
	return row.toJob()
}

const updateJobQuery = `
	UPDATE jobs SET
		chair_count = :chair_count,
		urgency = :urgency,
		scheduled_date = :scheduled_date,
		distance_from_base_km = :distance_from_base_km,
		services = :services,
		parts = :parts,
		job_status = :job_status,
		calculation = :calculation,
		actual_labor_hours = :actual_labor_hours,
		completed_at = :completed_at,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND status != :status_deleted`

func (r *jobRepository) Update(ctx context.Context, j *job.Job) error {
	row, err := toJobRow(j)
	if err != nil {
		return err
	}

	res, err := r.db.NamedExecContext(ctx, updateJobQuery, map[string]any{
		"id":                    row.ID,
		"chair_count":           row.ChairCount,
		"urgency":               row.Urgency,
		"scheduled_date":        row.ScheduledDate,
		"distance_from_base_km": row.DistanceFromBaseKm,
		"services":              row.ServicesJSON,
		"parts":                 row.PartsJSON,
		"job_status":            row.JobStatus,
		"calculation":           row.CalculationJSON,
		"actual_labor_hours":    row.ActualLaborHours,
		"completed_at":          row.CompletedAt,
		"updated_at":            row.UpdatedAt,
		"updated_by":            row.UpdatedBy,
		"status_deleted":        types.StatusDeleted,
	})
	if err != nil {
		return wrapDBError(err, "job")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("job not found").
			WithHintf("job %s does not exist", j.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *jobRepository) ListByClient(ctx context.Context, clientID string) ([]*job.Job, error) {
	var rows []*jobRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM jobs
		 WHERE client_id = $1 AND status != $2
		 ORDER BY scheduled_date DESC`,
		clientID, types.StatusDeleted)
	if err != nil {
		return nil, wrapDBError(err, "jobs")
	}

	jobs := make([]*job.Job, 0, len(rows))
	for _, row := range rows {
		j, err := row.toJob()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
