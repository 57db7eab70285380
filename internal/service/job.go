package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/domain/job"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// JobService owns the job lifecycle: creation with a priced quote snapshot,
// completion with actual hours, and repricing against current rules.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(ctx context.Context, id string) (*dto.JobResponse, error)
	ListClientJobs(ctx context.Context, clientID string) (*dto.ListJobsResponse, error)
	CompleteJob(ctx context.Context, id string, req *dto.CompleteJobRequest) (*dto.JobResponse, error)
	// RepriceJob recalculates an open job against the current rule tables
	// and replaces its calculation snapshot.
	RepriceJob(ctx context.Context, id string) (*dto.JobResponse, error)
}

type jobService struct {
	ServiceParams
	pricingService PricingService
}

// NewJobService creates a new job service
func NewJobService(params ServiceParams) JobService {
	return &jobService{
		ServiceParams:  params,
		pricingService: NewPricingService(params),
	}
}

func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ClientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}

	priced, err := s.pricingService.CalculatePrice(ctx, &req.CalculatePriceRequest)
	if err != nil {
		return nil, err
	}

	j := &job.Job{
		ID:                 types.GenerateUUIDWithPrefix(types.UUIDPrefixJob),
		JobNumber:          types.GenerateJobNumber(),
		ClientID:           req.ClientID,
		ChairCount:         req.ChairCount,
		Urgency:            req.Urgency,
		ScheduledDate:      req.ScheduledDate,
		DistanceFromBaseKm: req.DistanceFromBaseKm,
		Services: lo.Map(req.Services, func(sel dto.ServiceSelectionRequest, _ int) job.ServiceSelection {
			quantity := sel.Quantity
			if quantity == 0 {
				quantity = req.ChairCount
			}
			return job.ServiceSelection{ServiceID: sel.ServiceID, Quantity: quantity}
		}),
		Parts: lo.Map(req.Parts, func(sel dto.PartSelectionRequest, _ int) job.PartSelection {
			return job.PartSelection{PartID: sel.PartID, Quantity: sel.Quantity}
		}),
		JobStatus:   types.JobStatusScheduled,
		Calculation: priced.Calculation,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	j.Calculation.JobID = j.ID

	if err := j.Validate(); err != nil {
		return nil, err
	}
	if err := s.JobRepo.Create(ctx, j); err != nil {
		return nil, err
	}

	s.Logger.Infow("job created",
		"job_id", j.ID,
		"job_number", j.JobNumber,
		"client_id", j.ClientID,
		"final_total", j.Calculation.FinalTotal.String(),
	)
	return &dto.JobResponse{Job: j}, nil
}

func (s *jobService) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	j, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.JobResponse{Job: j}, nil
}

func (s *jobService) ListClientJobs(ctx context.Context, clientID string) (*dto.ListJobsResponse, error) {
	jobs, err := s.JobRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &dto.ListJobsResponse{
		Jobs: lo.Map(jobs, func(j *job.Job, _ int) *dto.JobResponse {
			return &dto.JobResponse{Job: j}
		}),
		TotalCount: len(jobs),
	}, nil
}

func (s *jobService) CompleteJob(ctx context.Context, id string, req *dto.CompleteJobRequest) (*dto.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	j, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := j.MarkCompleted(req.ActualLaborHours, time.Now().UTC()); err != nil {
		return nil, err
	}
	j.UpdatedAt = time.Now().UTC()
	j.UpdatedBy = types.GetUserID(ctx)

	if err := s.JobRepo.Update(ctx, j); err != nil {
		return nil, err
	}

	s.Logger.Infow("job completed",
		"job_id", j.ID,
		"actual_labor_hours", req.ActualLaborHours.String(),
	)
	return &dto.JobResponse{Job: j}, nil
}

func (s *jobService) RepriceJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	j, err := s.JobRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.JobStatus == types.JobStatusCompleted || j.JobStatus == types.JobStatusCancelled {
		return nil, ierr.NewError("job cannot be repriced").
			WithHintf("Jobs in status %s cannot be repriced", j.JobStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	req := &dto.CalculatePriceRequest{
		ClientID:           j.ClientID,
		ChairCount:         j.ChairCount,
		Urgency:            j.Urgency,
		ScheduledDate:      j.ScheduledDate,
		DistanceFromBaseKm: j.DistanceFromBaseKm,
		Services: lo.Map(j.Services, func(sel job.ServiceSelection, _ int) dto.ServiceSelectionRequest {
			return dto.ServiceSelectionRequest{ServiceID: sel.ServiceID, Quantity: sel.Quantity}
		}),
		Parts: lo.Map(j.Parts, func(sel job.PartSelection, _ int) dto.PartSelectionRequest {
			return dto.PartSelectionRequest{PartID: sel.PartID, Quantity: sel.Quantity}
		}),
	}

	priced, err := s.pricingService.CalculatePrice(ctx, req)
	if err != nil {
		return nil, err
	}

	// A repriced job gets a fresh calculation; the old snapshot is replaced,
	// never mutated.
	priced.Calculation.JobID = j.ID
	j.Calculation = priced.Calculation
	j.UpdatedAt = time.Now().UTC()
	j.UpdatedBy = types.GetUserID(ctx)

	if err := s.JobRepo.Update(ctx, j); err != nil {
		return nil, err
	}
	return &dto.JobResponse{Job: j}, nil
}
