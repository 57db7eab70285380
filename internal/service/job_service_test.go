package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/client"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

type JobServiceSuite struct {
	suite.Suite
	ctx     context.Context
	stores  *serviceTestStores
	service JobService
	profit  ProfitService
}

func TestJobService(t *testing.T) {
	suite.Run(t, new(JobServiceSuite))
}

func (s *JobServiceSuite) SetupTest() {
	s.ctx = context.Background()

	params, stores := newTestServiceParams(s.T())
	s.stores = stores
	s.service = NewJobService(params)
	s.profit = NewProfitService(params)

	s.NoError(stores.client.Create(s.ctx, &client.Client{
		ID:   "clnt_acme",
		Name: "Acme Office Park",
	}))
	s.NoError(stores.catalog.CreateService(s.ctx, &catalog.ServicePriceEntry{
		ID:        "svc_clean",
		Name:      "Deep clean upholstery",
		Category:  types.ServiceCategoryCleaning,
		BasePrice: decimal.NewFromInt(150),
		CostPrice: decimal.NewFromInt(60),
		IsActive:  true,
	}))
	s.NoError(stores.catalog.CreatePart(s.ctx, &catalog.PartPriceEntry{
		ID:        "part_castors",
		Name:      "Castor set",
		SellPrice: decimal.NewFromInt(80),
		CostPrice: decimal.NewFromInt(35),
		IsActive:  true,
	}))
	s.NoError(stores.bulk.Create(s.ctx, &bulkdiscount.Rule{
		ID:                 "rule_bulk_clean",
		Name:               "5+ cleans",
		AppliesTo:          types.BulkScopeCleaning,
		MinimumQuantity:    5,
		DiscountType:       types.DiscountTypePercentage,
		DiscountPercentage: decimal.NewFromInt(10),
		IsActive:           true,
	}))
}

func (s *JobServiceSuite) createRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		CalculatePriceRequest: dto.CalculatePriceRequest{
			ClientID:      "clnt_acme",
			ChairCount:    6,
			Urgency:       types.UrgencyNormal,
			ScheduledDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Services: []dto.ServiceSelectionRequest{
				{ServiceID: "svc_clean"},
			},
		},
	}
}

func (s *JobServiceSuite) TestCreateJob() {
	resp, err := s.service.CreateJob(s.ctx, s.createRequest())
	s.NoError(err)
	s.True(strings.HasPrefix(resp.ID, "job_"))
	s.True(strings.HasPrefix(resp.JobNumber, "JOB-"))
	s.Equal(types.JobStatusScheduled, resp.JobStatus)

	// the quote snapshot is attached and bound to the job
	s.NotNil(resp.Calculation)
	s.Equal(resp.ID, resp.Calculation.JobID)
	s.Equal("900", resp.Calculation.BaseTotal.String())
	s.Equal("810", resp.Calculation.FinalTotal.String())

	// zero-quantity selections are normalized to the chair count
	s.Equal(6, resp.Services[0].Quantity)

	stored, err := s.stores.job.Get(s.ctx, resp.ID)
	s.NoError(err)
	s.Equal(resp.JobNumber, stored.JobNumber)
}

func (s *JobServiceSuite) TestCreateJobUnknownClient() {
	req := s.createRequest()
	req.ClientID = "clnt_nope"

	_, err := s.service.CreateJob(s.ctx, req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *JobServiceSuite) TestGetAndListJobs() {
	created, err := s.service.CreateJob(s.ctx, s.createRequest())
	s.NoError(err)

	fetched, err := s.service.GetJob(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(created.JobNumber, fetched.JobNumber)

	list, err := s.service.ListClientJobs(s.ctx, "clnt_acme")
	s.NoError(err)
	s.Equal(1, list.TotalCount)

	_, err = s.service.GetJob(s.ctx, "job_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *JobServiceSuite) TestCompleteJob() {
	created, err := s.service.CreateJob(s.ctx, s.createRequest())
	s.NoError(err)

	completed, err := s.service.CompleteJob(s.ctx, created.ID, &dto.CompleteJobRequest{
		ActualLaborHours: decimal.NewFromInt(2),
	})
	s.NoError(err)
	s.Equal(types.JobStatusCompleted, completed.JobStatus)
	s.NotNil(completed.CompletedAt)
	s.Equal("2", completed.ActualLaborHours.String())

	// completing twice is rejected
	_, err = s.service.CompleteJob(s.ctx, created.ID, &dto.CompleteJobRequest{
		ActualLaborHours: decimal.NewFromInt(3),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *JobServiceSuite) TestCompleteJobRejectsNegativeHours() {
	created, err := s.service.CreateJob(s.ctx, s.createRequest())
	s.NoError(err)

	_, err = s.service.CompleteJob(s.ctx, created.ID, &dto.CompleteJobRequest{
		ActualLaborHours: decimal.NewFromInt(-1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *JobServiceSuite) TestProfitAnalysis() {
	created, err := s.service.CreateJob(s.ctx, s.createRequest())
	s.NoError(err)

	// analysis needs actual hours, so an open job is rejected
	_, err = s.profit.AnalyzeJob(s.ctx, created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.service.CompleteJob(s.ctx, created.ID, &dto.CompleteJobRequest{
		ActualLaborHours: decimal.NewFromInt(2),
	})
	s.NoError(err)

	// revenue 810: labor 2h * 350 = 700, services 6 * 60 = 360,
	// overhead 15% = 121.5
	analysis, err := s.profit.AnalyzeJob(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(created.ID, analysis.JobID)
	s.Equal("810", analysis.TotalRevenue.String())
	s.Equal("700", analysis.LaborCosts.String())
	s.Equal("360", analysis.ServiceCosts.String())
	s.Equal("121.5", analysis.OverheadCosts.String())
	s.Equal("1181.5", analysis.TotalCosts.String())
	s.Equal("-371.5", analysis.GrossProfit.String())
	s.True(analysis.ProfitMarginPercent.IsNegative())
}

func (s *JobServiceSuite) TestRepriceJob() {
	created, err := s.service.CreateJob(s.ctx, s.createRequest())
	s.NoError(err)
	s.Equal("810", created.Calculation.FinalTotal.String())
	originalCalcID := created.Calculation.ID

	s.NoError(s.stores.bulk.Create(s.ctx, &bulkdiscount.Rule{
		ID:                 "rule_bulk_clean",
		Name:               "5+ cleans",
		AppliesTo:          types.BulkScopeCleaning,
		MinimumQuantity:    5,
		DiscountType:       types.DiscountTypePercentage,
		DiscountPercentage: decimal.NewFromInt(20),
		IsActive:           true,
	}))

	repriced, err := s.service.RepriceJob(s.ctx, created.ID)
	s.NoError(err)
	s.Equal("720", repriced.Calculation.FinalTotal.String())
	s.Equal(created.ID, repriced.Calculation.JobID)
	s.NotEqual(originalCalcID, repriced.Calculation.ID)
}

func (s *JobServiceSuite) TestRepriceCompletedJobRejected() {
	created, err := s.service.CreateJob(s.ctx, s.createRequest())
	s.NoError(err)

	_, err = s.service.CompleteJob(s.ctx, created.ID, &dto.CompleteJobRequest{
		ActualLaborHours: decimal.NewFromInt(2),
	})
	s.NoError(err)

	_, err = s.service.RepriceJob(s.ctx, created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
