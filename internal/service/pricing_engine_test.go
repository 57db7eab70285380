package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/pricing"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

type PricingEngineSuite struct {
	suite.Suite
	engine *PricingEngine
}

func TestPricingEngine(t *testing.T) {
	suite.Run(t, new(PricingEngineSuite))
}

func (s *PricingEngineSuite) SetupTest() {
	s.engine = NewPricingEngine(types.DefaultPricingPolicy())
}

func (s *PricingEngineSuite) cleaningService(basePrice, costPrice int64) *catalog.ServicePriceEntry {
	return &catalog.ServicePriceEntry{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixService),
		Name:      "Deep clean upholstery",
		Category:  types.ServiceCategoryCleaning,
		BasePrice: decimal.NewFromInt(basePrice),
		CostPrice: decimal.NewFromInt(costPrice),
		IsActive:  true,
	}
}

func (s *PricingEngineSuite) repairService(basePrice, costPrice int64) *catalog.ServicePriceEntry {
	return &catalog.ServicePriceEntry{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixService),
		Name:      "Replace gas lift",
		Category:  types.ServiceCategoryRepair,
		BasePrice: decimal.NewFromInt(basePrice),
		CostPrice: decimal.NewFromInt(costPrice),
		IsActive:  true,
	}
}

func (s *PricingEngineSuite) context(chairs int, urgency types.Urgency) *pricing.Context {
	return &pricing.Context{
		ClientID:      "clnt_test",
		ChairCount:    chairs,
		Urgency:       urgency,
		ScheduledDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

// Six chairs of a R150 cleaning service with a 10% bulk rule at minimum
// quantity five: base R900, discount R90, final R810.
func (s *PricingEngineSuite) TestBulkDiscountScenario() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(150, 60), Quantity: 6}}
	rule := &bulkdiscount.Rule{
		ID:                 "rule_bulk_cleaning",
		Name:               "5+ cleans",
		AppliesTo:          types.BulkScopeCleaning,
		MinimumQuantity:    5,
		DiscountType:       types.DiscountTypePercentage,
		DiscountPercentage: decimal.NewFromInt(10),
		IsActive:           true,
	}

	calc, err := s.engine.Aggregate(
		s.context(6, types.UrgencyNormal),
		services,
		nil,
		&pricing.RuleSnapshot{BulkRules: []*bulkdiscount.Rule{rule}},
	)
	s.NoError(err)
	s.Equal("900", calc.BaseTotal.String())
	s.Len(calc.Adjustments, 1)
	s.Equal(types.AdjustmentKindBulkDiscount, calc.Adjustments[0].Kind)
	s.Equal(types.AdjustmentDirectionDecrease, calc.Adjustments[0].Direction)
	s.Equal("90", calc.Adjustments[0].Amount.String())
	s.Equal("810", calc.FinalTotal.String())
}

func (s *PricingEngineSuite) TestBulkRuleBelowThresholdDoesNotQualify() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(150, 60), Quantity: 4}}
	rule := &bulkdiscount.Rule{
		ID:                 "rule_bulk_cleaning",
		Name:               "5+ cleans",
		AppliesTo:          types.BulkScopeCleaning,
		MinimumQuantity:    5,
		DiscountType:       types.DiscountTypePercentage,
		DiscountPercentage: decimal.NewFromInt(10),
		IsActive:           true,
	}

	adjustments := s.engine.EvaluateBulkDiscounts(s.context(4, types.UrgencyNormal), services, []*bulkdiscount.Rule{rule})
	s.Empty(adjustments)
}

func (s *PricingEngineSuite) TestBulkScopeAllQualifiesOnChairCount() {
	// one repair on a ten-chair job: scope "all" counts chairs, not lines
	services := []pricing.ServiceLine{{Service: s.repairService(200, 80), Quantity: 1}}
	rule := &bulkdiscount.Rule{
		ID:              "rule_bulk_all",
		Name:            "Fleet rate",
		AppliesTo:       types.BulkScopeAll,
		MinimumQuantity: 10,
		DiscountType:    types.DiscountTypeFixedAmount,
		DiscountValue:   decimal.NewFromInt(50),
		IsActive:        true,
	}

	adjustments := s.engine.EvaluateBulkDiscounts(s.context(10, types.UrgencyNormal), services, []*bulkdiscount.Rule{rule})
	s.Len(adjustments, 1)
	s.Equal("50", adjustments[0].Amount.String())
}

// Two qualifying rules sum under the cumulative policy and collapse to the
// single largest under best_only. The same inputs must never price
// differently between code paths, so the policy is part of PricingPolicy.
func (s *PricingEngineSuite) TestBulkSelectionPolicies() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(100, 40), Quantity: 10}}
	rules := []*bulkdiscount.Rule{
		{
			ID: "rule_a", Name: "10% over 5",
			AppliesTo: types.BulkScopeCleaning, MinimumQuantity: 5,
			DiscountType: types.DiscountTypePercentage, DiscountPercentage: decimal.NewFromInt(10),
			IsActive: true,
		},
		{
			ID: "rule_b", Name: "R60 over 8",
			AppliesTo: types.BulkScopeCleaning, MinimumQuantity: 8,
			DiscountType: types.DiscountTypeFixedAmount, DiscountValue: decimal.NewFromInt(60),
			IsActive: true,
		},
	}

	cumulative := s.engine.EvaluateBulkDiscounts(s.context(10, types.UrgencyNormal), services, rules)
	s.Len(cumulative, 2)
	total := lo.Reduce(cumulative, func(acc decimal.Decimal, a pricing.Adjustment, _ int) decimal.Decimal {
		return acc.Add(a.Amount)
	}, decimal.Zero)
	s.Equal("160", total.String())

	bestPolicy := types.DefaultPricingPolicy()
	bestPolicy.BulkSelection = types.BulkSelectionBestOnly
	bestEngine := NewPricingEngine(bestPolicy)

	best := bestEngine.EvaluateBulkDiscounts(s.context(10, types.UrgencyNormal), services, rules)
	s.Len(best, 1)
	s.Equal("100", best[0].Amount.String())
}

// A fixed discount bigger than the category it matched on still contributes
// its full value; the base total absorbs it and only the final total is
// floored. Cleaning R30 + repair R970 with a fixed R50 cleaning rule prices
// at R950, not R970.
func (s *PricingEngineSuite) TestFixedDiscountLargerThanCategorySubtotal() {
	services := []pricing.ServiceLine{
		{Service: s.cleaningService(30, 10), Quantity: 1},
		{Service: s.repairService(970, 400), Quantity: 1},
	}
	rule := &bulkdiscount.Rule{
		ID:              "rule_fixed_clean",
		Name:            "Cleaning promo",
		AppliesTo:       types.BulkScopeCleaning,
		MinimumQuantity: 1,
		DiscountType:    types.DiscountTypeFixedAmount,
		DiscountValue:   decimal.NewFromInt(50),
		IsActive:        true,
	}

	calc, err := s.engine.Aggregate(
		s.context(2, types.UrgencyNormal),
		services,
		nil,
		&pricing.RuleSnapshot{BulkRules: []*bulkdiscount.Rule{rule}},
	)
	s.NoError(err)
	s.Equal("1000", calc.BaseTotal.String())
	s.Len(calc.Adjustments, 1)
	s.Equal("50", calc.Adjustments[0].Amount.String())
	s.Equal("950", calc.FinalTotal.String())
}

func (s *PricingEngineSuite) TestTierDiscount() {
	baseTotal := decimal.NewFromInt(1000)

	s.Nil(s.engine.EvaluateTierDiscount(nil, baseTotal))

	gold := &tier.PricingTier{
		ID:                 "tier_gold",
		Name:               "Gold",
		DiscountPercentage: decimal.NewFromInt(15),
	}
	adj := s.engine.EvaluateTierDiscount(gold, baseTotal)
	s.NotNil(adj)
	s.Equal(types.AdjustmentKindTierDiscount, adj.Kind)
	s.Equal(types.AdjustmentDirectionDecrease, adj.Direction)
	s.Equal("150", adj.Amount.String())

	// below the tier's minimum job value the discount does not apply
	gold.MinimumJobValue = lo.ToPtr(decimal.NewFromInt(2000))
	s.Nil(s.engine.EvaluateTierDiscount(gold, baseTotal))

	// exactly at the floor it applies
	gold.MinimumJobValue = lo.ToPtr(decimal.NewFromInt(1000))
	s.NotNil(s.engine.EvaluateTierDiscount(gold, baseTotal))
}

// Base R1000 priced urgent adds a 25% surcharge: final R1250. The price
// must increase, never decrease, under urgency.
func (s *PricingEngineSuite) TestUrgencyScenario() {
	services := []pricing.ServiceLine{{Service: s.repairService(1000, 400), Quantity: 1}}

	calc, err := s.engine.Aggregate(
		s.context(1, types.UrgencyUrgent),
		services,
		nil,
		&pricing.RuleSnapshot{},
	)
	s.NoError(err)
	s.Len(calc.Adjustments, 1)
	s.Equal(types.AdjustmentKindUrgencySurcharge, calc.Adjustments[0].Kind)
	s.Equal(types.AdjustmentDirectionIncrease, calc.Adjustments[0].Direction)
	s.Equal("250", calc.Adjustments[0].Amount.String())
	s.Equal("1250", calc.FinalTotal.String())
	s.True(calc.FinalTotal.GreaterThan(calc.BaseTotal))
}

func (s *PricingEngineSuite) TestEmergencySurcharge() {
	adj := s.engine.EvaluateUrgencySurcharge(types.UrgencyEmergency, decimal.NewFromInt(1000))
	s.NotNil(adj)
	s.Equal("500", adj.Amount.String())

	s.Nil(s.engine.EvaluateUrgencySurcharge(types.UrgencyNormal, decimal.NewFromInt(1000)))
}

// 35 km out: 15 chargeable km, two started 10 km blocks, R100.
func (s *PricingEngineSuite) TestTravelScenarios() {
	testCases := []struct {
		name       string
		distanceKm *decimal.Decimal
		want       string
	}{
		{"no distance recorded", nil, ""},
		{"inside free radius", lo.ToPtr(decimal.NewFromInt(12)), ""},
		{"exactly at free radius", lo.ToPtr(decimal.NewFromInt(20)), ""},
		{"one started block", lo.ToPtr(decimal.NewFromInt(21)), "50"},
		{"two blocks at 35 km", lo.ToPtr(decimal.NewFromInt(35)), "100"},
		{"exact block boundary", lo.ToPtr(decimal.NewFromInt(40)), "100"},
		{"four blocks at 55 km", lo.ToPtr(decimal.NewFromInt(55)), "200"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			adj := s.engine.EvaluateTravelSurcharge(tc.distanceKm)
			if tc.want == "" {
				s.Nil(adj)
				return
			}
			s.NotNil(adj)
			s.Equal(types.AdjustmentKindTravelSurcharge, adj.Kind)
			s.Equal(types.AdjustmentDirectionIncrease, adj.Direction)
			s.Equal(tc.want, adj.Amount.String())
		})
	}
}

// Both window boundaries are inclusive; the day after the window is out.
func (s *PricingEngineSuite) TestSeasonalBoundary() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(100, 40), Quantity: 1}}
	window := &seasonal.Window{
		ID:              "seas_winter",
		Name:            "Winter promo",
		StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		AppliesTo:       types.SeasonalScopeAllServices,
		AdjustmentType:  types.SeasonalAdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(-10),
		IsActive:        true,
	}
	windows := []*seasonal.Window{window}

	firstDay := s.engine.EvaluateSeasonalAdjustments(
		time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), services, windows)
	s.Len(firstDay, 1)
	s.Equal(types.AdjustmentDirectionDecrease, firstDay[0].Direction)
	s.Equal("10", firstDay[0].Amount.String())

	lastDay := s.engine.EvaluateSeasonalAdjustments(
		time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC), services, windows)
	s.Len(lastDay, 1)

	dayAfter := s.engine.EvaluateSeasonalAdjustments(
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), services, windows)
	s.Empty(dayAfter)
}

// Overlapping windows each apply independently: +5% and -3% on the same
// subtotal both land and net to +2%.
func (s *PricingEngineSuite) TestSeasonalCumulative() {
	svc := s.cleaningService(1000, 400)
	services := []pricing.ServiceLine{{Service: svc, Quantity: 1}}
	scheduled := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	windows := []*seasonal.Window{
		{
			ID: "seas_peak", Name: "Peak season",
			StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			AppliesTo: types.SeasonalScopeAllServices,
			AdjustmentType: types.SeasonalAdjustmentPercentage, AdjustmentValue: decimal.NewFromInt(5),
			IsActive: true,
		},
		{
			ID: "seas_promo", Name: "Mid-year promo",
			StartDate: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			AppliesTo: types.SeasonalScopeSpecificServices, ServiceIDs: []string{svc.ID},
			AdjustmentType: types.SeasonalAdjustmentPercentage, AdjustmentValue: decimal.NewFromInt(-3),
			IsActive: true,
		},
	}

	adjustments := s.engine.EvaluateSeasonalAdjustments(scheduled, services, windows)
	s.Len(adjustments, 2)

	net := lo.Reduce(adjustments, func(acc decimal.Decimal, a pricing.Adjustment, _ int) decimal.Decimal {
		return acc.Add(a.SignedAmount())
	}, decimal.Zero)
	s.Equal("20", net.String())
}

func (s *PricingEngineSuite) TestSeasonalSpecificServiceScope() {
	cleaning := s.cleaningService(100, 40)
	repair := s.repairService(200, 80)
	services := []pricing.ServiceLine{
		{Service: cleaning, Quantity: 1},
		{Service: repair, Quantity: 1},
	}
	window := &seasonal.Window{
		ID: "seas_repair", Name: "Repair special",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		AppliesTo: types.SeasonalScopeSpecificServices, ServiceIDs: []string{repair.ID},
		AdjustmentType: types.SeasonalAdjustmentPercentage, AdjustmentValue: decimal.NewFromInt(10),
		IsActive: true,
	}

	adjustments := s.engine.EvaluateSeasonalAdjustments(
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), services, []*seasonal.Window{window})
	s.Len(adjustments, 1)
	// 10% of the repair subtotal only
	s.Equal("20", adjustments[0].Amount.String())
}

// A fixed-amount window scoped to specific services does not land on a job
// carrying none of them.
func (s *PricingEngineSuite) TestSeasonalFixedWindowSkipsUncoveredJob() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(100, 40), Quantity: 1}}
	window := &seasonal.Window{
		ID: "seas_repair_flat", Name: "Repair call-out special",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		AppliesTo: types.SeasonalScopeSpecificServices, ServiceIDs: []string{"svc_other"},
		AdjustmentType: types.SeasonalAdjustmentFixed, AdjustmentValue: decimal.NewFromInt(-40),
		IsActive: true,
	}

	adjustments := s.engine.EvaluateSeasonalAdjustments(
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), services, []*seasonal.Window{window})
	s.Empty(adjustments)
}

// A fixed discount bigger than the job still never prices below zero, and
// the zero final total must not blow up the margin computation.
func (s *PricingEngineSuite) TestFinalTotalFlooredAtZero() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(50, 20), Quantity: 1}}
	rule := &bulkdiscount.Rule{
		ID: "rule_huge", Name: "Oversized fixed discount",
		AppliesTo: types.BulkScopeAll, MinimumQuantity: 1,
		DiscountType: types.DiscountTypeFixedAmount, DiscountValue: decimal.NewFromInt(10000),
		IsActive: true,
	}
	window := &seasonal.Window{
		ID: "seas_neg", Name: "Deep promo",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		AppliesTo: types.SeasonalScopeAllServices,
		AdjustmentType: types.SeasonalAdjustmentFixed, AdjustmentValue: decimal.NewFromInt(-500),
		IsActive: true,
	}

	calc, err := s.engine.Aggregate(
		s.context(1, types.UrgencyNormal),
		services,
		nil,
		&pricing.RuleSnapshot{
			BulkRules:       []*bulkdiscount.Rule{rule},
			SeasonalWindows: []*seasonal.Window{window},
		},
	)
	s.NoError(err)
	s.True(calc.FinalTotal.IsZero())
	s.True(calc.ProfitMarginPercent.IsZero())
}

// Identical snapshots and context must produce identical calculations
// (ids and timestamps aside).
func (s *PricingEngineSuite) TestAggregateIdempotent() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(150, 60), Quantity: 6}}
	parts := []pricing.PartLine{{
		Part: &catalog.PartPriceEntry{
			ID: "part_castors", Name: "Castor set",
			SellPrice: decimal.NewFromInt(80), CostPrice: decimal.NewFromInt(35),
			IsActive: true,
		},
		Quantity: 2,
	}}
	snapshot := &pricing.RuleSnapshot{
		BulkRules: []*bulkdiscount.Rule{{
			ID: "rule_bulk", Name: "5+ cleans",
			AppliesTo: types.BulkScopeCleaning, MinimumQuantity: 5,
			DiscountType: types.DiscountTypePercentage, DiscountPercentage: decimal.NewFromInt(10),
			IsActive: true,
		}},
	}

	pctx := s.context(6, types.UrgencyUrgent)
	pctx.DistanceFromBaseKm = lo.ToPtr(decimal.NewFromInt(35))

	first, err := s.engine.Aggregate(pctx, services, parts, snapshot)
	s.NoError(err)
	second, err := s.engine.Aggregate(pctx, services, parts, snapshot)
	s.NoError(err)

	s.Equal(first.BaseTotal.String(), second.BaseTotal.String())
	s.Equal(first.FinalTotal.String(), second.FinalTotal.String())
	s.Equal(first.TotalCosts.String(), second.TotalCosts.String())
	s.Equal(len(first.Adjustments), len(second.Adjustments))
	for i := range first.Adjustments {
		s.Equal(first.Adjustments[i].Kind, second.Adjustments[i].Kind)
		s.Equal(first.Adjustments[i].Amount.String(), second.Adjustments[i].Amount.String())
	}
}

func (s *PricingEngineSuite) TestAggregateRejectsMalformedContext() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(150, 60), Quantity: 1}}

	pctx := s.context(0, types.UrgencyNormal)
	_, err := s.engine.Aggregate(pctx, services, nil, &pricing.RuleSnapshot{})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	pctx = s.context(1, types.Urgency("overnight"))
	_, err = s.engine.Aggregate(pctx, services, nil, &pricing.RuleSnapshot{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingEngineSuite) TestAnalyzeProfit() {
	services := []pricing.ServiceLine{{Service: s.cleaningService(150, 60), Quantity: 2}}
	parts := []pricing.PartLine{{
		Part: &catalog.PartPriceEntry{
			ID: "part_lift", Name: "Gas lift",
			SellPrice: decimal.NewFromInt(120), CostPrice: decimal.NewFromInt(50),
			IsActive: true,
		},
		Quantity: 1,
	}}

	// revenue 1000: labor 2h * 350 = 700, services 120, parts 50,
	// overhead 15% = 150 -> costs 1020, gross -20, margin -2%
	analysis := s.engine.AnalyzeProfit(
		"job_test",
		decimal.NewFromInt(1000),
		services,
		parts,
		decimal.NewFromInt(2),
	)
	s.Equal("700", analysis.LaborCosts.String())
	s.Equal("120", analysis.ServiceCosts.String())
	s.Equal("50", analysis.PartsCosts.String())
	s.Equal("150", analysis.OverheadCosts.String())
	s.Equal("1020", analysis.TotalCosts.String())
	s.Equal("-20", analysis.GrossProfit.String())
	s.Equal("-2", analysis.ProfitMarginPercent.String())
}

func (s *PricingEngineSuite) TestAnalyzeProfitZeroRevenue() {
	analysis := s.engine.AnalyzeProfit("job_test", decimal.Zero, nil, nil, decimal.Zero)
	s.True(analysis.ProfitMarginPercent.IsZero())
	s.True(analysis.GrossProfit.IsZero() || analysis.GrossProfit.IsNegative())
}
