package job

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/pricing"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// ServiceSelection records one catalog service on a job with the number of
// chairs it covers.
type ServiceSelection struct {
	ServiceID string `db:"service_id" json:"service_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// PartSelection records one replacement part on a job.
type PartSelection struct {
	PartID   string `db:"part_id" json:"part_id"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// Job is one maintenance visit: what gets done, for whom, when, and at what
// price. The pricing calculation stored here is the snapshot the quote was
// issued on; repricing replaces it with a fresh calculation.
type Job struct {
	ID        string `db:"id" json:"id"`
	JobNumber string `db:"job_number" json:"job_number"`
	ClientID  string `db:"client_id" json:"client_id"`

	ChairCount         int              `db:"chair_count" json:"chair_count"`
	Urgency            types.Urgency    `db:"urgency" json:"urgency"`
	ScheduledDate      time.Time        `db:"scheduled_date" json:"scheduled_date"`
	DistanceFromBaseKm *decimal.Decimal `db:"distance_from_base_km" json:"distance_from_base_km,omitempty"`

	Services []ServiceSelection `json:"services"`
	Parts    []PartSelection    `json:"parts,omitempty"`

	JobStatus   types.JobStatus      `db:"job_status" json:"job_status"`
	Calculation *pricing.Calculation `json:"calculation,omitempty"`

	ActualLaborHours *decimal.Decimal `db:"actual_labor_hours" json:"actual_labor_hours,omitempty"`
	CompletedAt      *time.Time       `db:"completed_at" json:"completed_at,omitempty"`

	types.BaseModel
}

func (j *Job) Validate() error {
	if j.ClientID == "" {
		return ierr.NewError("client id is required").
			WithHint("a job must belong to a client").
			Mark(ierr.ErrValidation)
	}
	if j.ChairCount <= 0 {
		return ierr.NewError("chair count must be positive").
			WithHint("a job must cover at least one chair").
			Mark(ierr.ErrValidation)
	}
	if err := j.Urgency.Validate(); err != nil {
		return err
	}
	if err := j.JobStatus.Validate(); err != nil {
		return err
	}
	if len(j.Services) == 0 {
		return ierr.NewError("a job needs at least one service").
			WithHint("select at least one service for the job").
			Mark(ierr.ErrValidation)
	}
	for _, s := range j.Services {
		if s.ServiceID == "" || s.Quantity <= 0 {
			return ierr.NewError("invalid service selection").
				WithHint("each selected service needs an id and a positive quantity").
				Mark(ierr.ErrValidation)
		}
	}
	for _, p := range j.Parts {
		if p.PartID == "" || p.Quantity <= 0 {
			return ierr.NewError("invalid part selection").
				WithHint("each selected part needs an id and a positive quantity").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// CanComplete reports whether the job may transition to completed.
func (j *Job) CanComplete() bool {
	return j.JobStatus == types.JobStatusScheduled || j.JobStatus == types.JobStatusInProgress
}

// MarkCompleted records the actual labor hours and completion time.
func (j *Job) MarkCompleted(laborHours decimal.Decimal, at time.Time) error {
	if !j.CanComplete() {
		return ierr.NewError("job cannot be completed").
			WithHintf("job in status %s cannot be completed", j.JobStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	if laborHours.IsNegative() {
		return ierr.NewError("labor hours cannot be negative").
			WithHint("actual labor hours must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	j.JobStatus = types.JobStatusCompleted
	j.ActualLaborHours = &laborHours
	j.CompletedAt = &at
	return nil
}
