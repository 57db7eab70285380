package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/job"
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// CreateJobRequest creates a job from a priced selection. The embedded
// pricing fields are evaluated at creation time and the resulting
// calculation is stored on the job as its quote snapshot.
type CreateJobRequest struct {
	CalculatePriceRequest
	Notes string `json:"notes,omitempty"`
}

// CompleteJobRequest closes out a job with the technician's actual hours.
type CompleteJobRequest struct {
	ActualLaborHours decimal.Decimal `json:"actual_labor_hours"`
}

func (r *CompleteJobRequest) Validate() error {
	if r.ActualLaborHours.IsNegative() {
		return ierr.NewError("actual_labor_hours cannot be negative").
			WithHint("Please provide zero or positive labor hours").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// JobResponse represents the response for job data
type JobResponse struct {
	*job.Job
}

// ListJobsResponse represents the response for listing a client's jobs
type ListJobsResponse struct {
	Jobs       []*JobResponse `json:"jobs"`
	TotalCount int            `json:"total_count"`
}
