package service

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/config"
	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/client"
	"github.com/chairflow/chairflow/internal/domain/pricing"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/testutil"
	"github.com/chairflow/chairflow/internal/types"
)

type serviceTestStores struct {
	catalog  *testutil.InMemoryCatalogStore
	bulk     *testutil.InMemoryBulkDiscountStore
	tier     *testutil.InMemoryTierStore
	seasonal *testutil.InMemorySeasonalStore
	client   *testutil.InMemoryClientStore
	job      *testutil.InMemoryJobStore
}

func newTestServiceParams(t *testing.T) (ServiceParams, *serviceTestStores) {
	t.Helper()

	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	if err != nil {
		t.Fatalf("failed to build test logger: %v", err)
	}

	stores := &serviceTestStores{
		catalog:  testutil.NewInMemoryCatalogStore(),
		bulk:     testutil.NewInMemoryBulkDiscountStore(),
		tier:     testutil.NewInMemoryTierStore(),
		seasonal: testutil.NewInMemorySeasonalStore(),
		client:   testutil.NewInMemoryClientStore(),
		job:      testutil.NewInMemoryJobStore(),
	}

	params := ServiceParams{
		Logger:           log,
		Config:           cfg,
		Engine:           NewPricingEngine(types.DefaultPricingPolicy()),
		CatalogRepo:      stores.catalog,
		BulkDiscountRepo: stores.bulk,
		TierRepo:         stores.tier,
		SeasonalRepo:     stores.seasonal,
		ClientRepo:       stores.client,
		JobRepo:          stores.job,
	}
	return params, stores
}

type PricingServiceSuite struct {
	suite.Suite
	ctx     context.Context
	stores  *serviceTestStores
	service PricingService
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.ctx = context.Background()

	params, stores := newTestServiceParams(s.T())
	s.stores = stores
	s.service = NewPricingService(params)

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
	s.NoError(stores.catalog.CreateService(s.ctx, &catalog.ServicePriceEntry{
		ID:        "svc_lift",
		Name:      "Replace gas lift",
		Category:  types.ServiceCategoryRepair,
		BasePrice: decimal.NewFromInt(450),
		CostPrice: decimal.NewFromInt(200),
		IsActive:  true,
	}))
	s.NoError(stores.catalog.CreateService(s.ctx, &catalog.ServicePriceEntry{
		ID:        "svc_retired",
		Name:      "Fabric protection (discontinued)",
		Category:  types.ServiceCategoryCleaning,
		BasePrice: decimal.NewFromInt(90),
		CostPrice: decimal.NewFromInt(30),
		IsActive:  false,
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
	s.NoError(stores.seasonal.Create(s.ctx, &seasonal.Window{
		ID:              "seas_winter",
		Name:            "Winter promo",
		StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		AppliesTo:       types.SeasonalScopeAllServices,
		AdjustmentType:  types.SeasonalAdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(-10),
		IsActive:        true,
	}))
}

func (s *PricingServiceSuite) baseRequest() *dto.CalculatePriceRequest {
	return &dto.CalculatePriceRequest{
		ClientID:      "clnt_acme",
		ChairCount:    6,
		Urgency:       types.UrgencyNormal,
		ScheduledDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Services: []dto.ServiceSelectionRequest{
			{ServiceID: "svc_clean", Quantity: 6},
		},
	}
}

func (s *PricingServiceSuite) TestCalculatePrice() {
	resp, err := s.service.CalculatePrice(s.ctx, s.baseRequest())
	s.NoError(err)
	s.Equal("900", resp.BaseTotal.String())
	s.Equal("810", resp.FinalTotal.String())
	s.Empty(resp.DegradedRuleTables)
	s.Equal("ZAR", resp.Currency)
}

func (s *PricingServiceSuite) TestQuantityZeroMeansEveryChair() {
	req := s.baseRequest()
	req.Services[0].Quantity = 0

	resp, err := s.service.CalculatePrice(s.ctx, req)
	s.NoError(err)
	s.Equal("900", resp.BaseTotal.String())
}

func (s *PricingServiceSuite) TestCalculatePriceWithTierAndParts() {
	s.NoError(s.stores.tier.CreateTier(s.ctx, &tier.PricingTier{
		ID:                 "tier_gold",
		Name:               "Gold",
		DiscountPercentage: decimal.NewFromInt(15),
	}))
	s.NoError(s.stores.tier.AssignClient(s.ctx, &tier.Assignment{
		ID:       "tasn_acme",
		ClientID: "clnt_acme",
		TierID:   "tier_gold",
	}))

	req := s.baseRequest()
	req.Parts = []dto.PartSelectionRequest{{PartID: "part_castors", Quantity: 2}}

	// base 900 + 160 parts = 1060; bulk 10% of 900 = 90; tier 15% of 1060 = 159
	resp, err := s.service.CalculatePrice(s.ctx, req)
	s.NoError(err)
	s.Equal("1060", resp.BaseTotal.String())
	s.Equal("811", resp.FinalTotal.String())

	kinds := lo.Map(resp.Adjustments, func(a pricing.Adjustment, _ int) types.AdjustmentKind {
		return a.Kind
	})
	s.Contains(kinds, types.AdjustmentKindBulkDiscount)
	s.Contains(kinds, types.AdjustmentKindTierDiscount)
}

func (s *PricingServiceSuite) TestSeasonalWindowOnScheduledDate() {
	req := s.baseRequest()
	req.ScheduledDate = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	// bulk 90 plus winter -10% of 900
	resp, err := s.service.CalculatePrice(s.ctx, req)
	s.NoError(err)
	s.Equal("720", resp.FinalTotal.String())
}

// Rule-table outages must not block pricing: the price falls back to the
// base total and the response names every degraded table.
func (s *PricingServiceSuite) TestRuleTableOutagesDegradeGracefully() {
	forced := ierr.NewError("connection refused").Mark(ierr.ErrDatabase)
	s.stores.bulk.SetForcedError(forced)
	s.stores.tier.SetForcedError(forced)
	s.stores.seasonal.SetForcedError(forced)

	resp, err := s.service.CalculatePrice(s.ctx, s.baseRequest())
	s.NoError(err)
	s.Equal("900", resp.BaseTotal.String())
	s.Equal("900", resp.FinalTotal.String())
	s.ElementsMatch(
		[]pricing.RuleTable{
			pricing.RuleTableBulkDiscounts,
			pricing.RuleTableClientTier,
			pricing.RuleTableSeasonal,
		},
		resp.DegradedRuleTables,
	)
}

func (s *PricingServiceSuite) TestCatalogOutageIsFatal() {
	s.stores.catalog.SetForcedError(ierr.NewError("connection refused").Mark(ierr.ErrDatabase))

	_, err := s.service.CalculatePrice(s.ctx, s.baseRequest())
	s.Error(err)
	s.Equal(500, ierr.HTTPStatusFromErr(err))
}

func (s *PricingServiceSuite) TestUnknownServiceRejected() {
	req := s.baseRequest()
	req.Services = []dto.ServiceSelectionRequest{{ServiceID: "svc_nope", Quantity: 1}}

	_, err := s.service.CalculatePrice(s.ctx, req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PricingServiceSuite) TestInactiveServiceRejected() {
	req := s.baseRequest()
	req.Services = append(req.Services, dto.ServiceSelectionRequest{ServiceID: "svc_retired", Quantity: 1})

	_, err := s.service.CalculatePrice(s.ctx, req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

// Rules are read fresh on every calculation; an edit takes effect on the
// very next call without any restart or cache expiry.
func (s *PricingServiceSuite) TestRuleEditsApplyImmediately() {
	resp, err := s.service.CalculatePrice(s.ctx, s.baseRequest())
	s.NoError(err)
	s.Equal("810", resp.FinalTotal.String())

	s.NoError(s.stores.bulk.Create(s.ctx, &bulkdiscount.Rule{
		ID:                 "rule_bulk_clean",
		Name:               "5+ cleans",
		AppliesTo:          types.BulkScopeCleaning,
		MinimumQuantity:    5,
		DiscountType:       types.DiscountTypePercentage,
		DiscountPercentage: decimal.NewFromInt(20),
		IsActive:           true,
	}))

	resp, err = s.service.CalculatePrice(s.ctx, s.baseRequest())
	s.NoError(err)
	s.Equal("720", resp.FinalTotal.String())
}

func (s *PricingServiceSuite) TestPreviewMatchesCalculate() {
	calculated, err := s.service.CalculatePrice(s.ctx, s.baseRequest())
	s.NoError(err)
	previewed, err := s.service.PreviewPrice(s.ctx, s.baseRequest())
	s.NoError(err)
	s.Equal(calculated.FinalTotal.String(), previewed.FinalTotal.String())
}

func (s *PricingServiceSuite) TestValidationErrors() {
	testCases := []struct {
		name   string
		mutate func(req *dto.CalculatePriceRequest)
	}{
		{"missing client", func(req *dto.CalculatePriceRequest) { req.ClientID = "" }},
		{"zero chairs", func(req *dto.CalculatePriceRequest) { req.ChairCount = 0 }},
		{"bad urgency", func(req *dto.CalculatePriceRequest) { req.Urgency = "overnight" }},
		{"no services", func(req *dto.CalculatePriceRequest) { req.Services = nil }},
		{"negative distance", func(req *dto.CalculatePriceRequest) {
			req.DistanceFromBaseKm = lo.ToPtr(decimal.NewFromInt(-5))
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := s.baseRequest()
			tc.mutate(req)
			_, err := s.service.CalculatePrice(s.ctx, req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}
