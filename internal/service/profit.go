package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/job"
	"github.com/chairflow/chairflow/internal/domain/pricing"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// ProfitService computes post-completion margin breakdowns for reporting.
type ProfitService interface {
	AnalyzeJob(ctx context.Context, jobID string) (*dto.ProfitAnalysisResponse, error)
}

type profitService struct {
	ServiceParams
}

// NewProfitService creates a new profit service
func NewProfitService(params ServiceParams) ProfitService {
	return &profitService{ServiceParams: params}
}

func (s *profitService) AnalyzeJob(ctx context.Context, jobID string) (*dto.ProfitAnalysisResponse, error) {
	j, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if j.JobStatus != types.JobStatusCompleted {
		return nil, ierr.NewError("job is not completed").
			WithHint("Profit analysis requires a completed job with actual labor hours").
			Mark(ierr.ErrInvalidOperation)
	}
	if j.Calculation == nil {
		return nil, ierr.NewError("job has no pricing calculation").
			WithHint("The job was persisted without a price; it cannot be analyzed").
			Mark(ierr.ErrInvalidOperation)
	}

	laborHours := lo.FromPtr(j.ActualLaborHours)

	services, parts, err := s.loadJobLines(ctx, j)
	if err != nil {
		return nil, err
	}

	analysis := s.Engine.AnalyzeProfit(j.ID, j.Calculation.FinalTotal, services, parts, laborHours)
	return &dto.ProfitAnalysisResponse{ProfitAnalysis: analysis}, nil
}

// loadJobLines rebuilds the priced lines from the job's stored selections
// so cost prices reflect the current catalog.
func (s *profitService) loadJobLines(ctx context.Context, j *job.Job) ([]pricing.ServiceLine, []pricing.PartLine, error) {
	serviceIDs := lo.Map(j.Services, func(sel job.ServiceSelection, _ int) string { return sel.ServiceID })
	serviceEntries, err := s.CatalogRepo.GetServicesByIDs(ctx, lo.Uniq(serviceIDs))
	if err != nil {
		return nil, nil, ierr.WithError(err).
			WithHint("Could not load the job's services").
			Mark(ierr.ErrDatabase)
	}
	servicesByID := lo.KeyBy(serviceEntries, func(e *catalog.ServicePriceEntry) string { return e.ID })

	var services []pricing.ServiceLine
	for _, sel := range j.Services {
		entry, ok := servicesByID[sel.ServiceID]
		if !ok {
			return nil, nil, ierr.NewError("job references unknown service").
				WithHintf("Service %s no longer exists in the catalog", sel.ServiceID).
				Mark(ierr.ErrNotFound)
		}
		services = append(services, pricing.ServiceLine{Service: entry, Quantity: sel.Quantity})
	}

	var parts []pricing.PartLine
	if len(j.Parts) > 0 {
		partIDs := lo.Map(j.Parts, func(sel job.PartSelection, _ int) string { return sel.PartID })
		partEntries, err := s.CatalogRepo.GetPartsByIDs(ctx, lo.Uniq(partIDs))
		if err != nil {
			return nil, nil, ierr.WithError(err).
				WithHint("Could not load the job's parts").
				Mark(ierr.ErrDatabase)
		}
		partsByID := lo.KeyBy(partEntries, func(e *catalog.PartPriceEntry) string { return e.ID })

		for _, sel := range j.Parts {
			entry, ok := partsByID[sel.PartID]
			if !ok {
				return nil, nil, ierr.NewError("job references unknown part").
					WithHintf("Part %s no longer exists in the catalog", sel.PartID).
					Mark(ierr.ErrNotFound)
			}
			parts = append(parts, pricing.PartLine{Part: entry, Quantity: sel.Quantity})
		}
	}

	return services, parts, nil
}
