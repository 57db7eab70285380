package service

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/pricing"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	"github.com/chairflow/chairflow/internal/types"
)

var hundred = decimal.NewFromInt(100)

// PricingEngine combines the rule evaluators into a final price. It is
// stateless: every method is a pure function of its arguments and the
// configured policy, so arbitrarily many calculations can run in parallel.
type PricingEngine struct {
	policy types.PricingPolicy
}

// NewPricingEngine creates a pricing engine with the given policy
func NewPricingEngine(policy types.PricingPolicy) *PricingEngine {
	return &PricingEngine{policy: policy}
}

// Policy returns the engine's policy
func (e *PricingEngine) Policy() types.PricingPolicy {
	return e.policy
}

// EvaluateBulkDiscounts returns one adjustment per qualifying bulk rule.
// How multiple qualifying rules combine is decided by the policy's bulk
// selection: cumulative sums them all, best_only keeps the single largest.
func (e *PricingEngine) EvaluateBulkDiscounts(
	pctx *pricing.Context,
	services []pricing.ServiceLine,
	rules []*bulkdiscount.Rule,
) []pricing.Adjustment {
	categoryCounts := pricing.CategoryCounts(services)

	var adjustments []pricing.Adjustment
	for _, rule := range rules {
		if !rule.Qualifies(pctx.ChairCount, categoryCounts) {
			continue
		}

		subtotal := pricing.ServicesSubtotal(services)
		if rule.AppliesTo != types.BulkScopeAll {
			subtotal = pricing.CategorySubtotal(services, rule.AppliesTo.ServiceCategory())
		}

		amount := rule.DiscountFor(subtotal)
		if amount.IsZero() {
			continue
		}

		adjustment := pricing.Adjustment{
			Kind:        types.AdjustmentKindBulkDiscount,
			Direction:   types.AdjustmentDirectionDecrease,
			Description: fmt.Sprintf("Bulk discount: %s", rule.Name),
			Amount:      amount,
		}
		if rule.DiscountType == types.DiscountTypePercentage {
			adjustment.Percentage = lo.ToPtr(rule.DiscountPercentage)
		}
		adjustments = append(adjustments, adjustment)
	}

	if e.policy.BulkSelection == types.BulkSelectionBestOnly && len(adjustments) > 1 {
		best := lo.MaxBy(adjustments, func(a, b pricing.Adjustment) bool {
			return a.Amount.GreaterThan(b.Amount)
		})
		return []pricing.Adjustment{best}
	}

	return adjustments
}

// EvaluateTierDiscount returns the client tier's adjustment, or nil when
// the client has no tier or the base total is below the tier's floor.
func (e *PricingEngine) EvaluateTierDiscount(
	clientTier *tier.PricingTier,
	baseTotal decimal.Decimal,
) *pricing.Adjustment {
	if clientTier == nil {
		return nil
	}

	amount := clientTier.DiscountFor(baseTotal)
	if amount.IsZero() {
		return nil
	}

	return &pricing.Adjustment{
		Kind:        types.AdjustmentKindTierDiscount,
		Direction:   types.AdjustmentDirectionDecrease,
		Description: fmt.Sprintf("Client tier discount: %s", clientTier.Name),
		Amount:      amount,
		Percentage:  lo.ToPtr(clientTier.DiscountPercentage),
	}
}

// EvaluateSeasonalAdjustments returns one adjustment per active window
// covering the scheduled date. Overlapping windows all apply; their
// amounts sum in the aggregator. A window's signed value maps onto the
// adjustment direction, so a negative value becomes a decrease.
func (e *PricingEngine) EvaluateSeasonalAdjustments(
	scheduledDate time.Time,
	services []pricing.ServiceLine,
	windows []*seasonal.Window,
) []pricing.Adjustment {
	var adjustments []pricing.Adjustment
	for _, window := range windows {
		if !window.IsActive || !window.Contains(scheduledDate) {
			continue
		}

		// a window only lands when the job carries a service it covers,
		// fixed adjustments included
		subtotal := decimal.Zero
		applicable := false
		for _, line := range services {
			if window.AppliesToService(line.Service.ID) {
				applicable = true
				subtotal = subtotal.Add(line.Subtotal())
			}
		}
		if !applicable {
			continue
		}
		if subtotal.IsZero() && window.AdjustmentType == types.SeasonalAdjustmentPercentage {
			continue
		}

		signed := window.AdjustmentFor(subtotal)
		if signed.IsZero() {
			continue
		}

		direction := types.AdjustmentDirectionIncrease
		if signed.IsNegative() {
			direction = types.AdjustmentDirectionDecrease
		}

		adjustment := pricing.Adjustment{
			Kind:        types.AdjustmentKindSeasonal,
			Direction:   direction,
			Description: fmt.Sprintf("Seasonal pricing: %s", window.Name),
			Amount:      signed.Abs(),
		}
		if window.AdjustmentType == types.SeasonalAdjustmentPercentage {
			adjustment.Percentage = lo.ToPtr(window.AdjustmentValue)
		}
		adjustments = append(adjustments, adjustment)
	}
	return adjustments
}

// EvaluateUrgencySurcharge returns the urgency markup, or nil for normal
// scheduling. The surcharge always increases the price.
func (e *PricingEngine) EvaluateUrgencySurcharge(
	urgency types.Urgency,
	baseTotal decimal.Decimal,
) *pricing.Adjustment {
	var percent decimal.Decimal
	switch urgency {
	case types.UrgencyUrgent:
		percent = e.policy.UrgentSurchargePercent
	case types.UrgencyEmergency:
		percent = e.policy.EmergencySurchargePercent
	default:
		return nil
	}

	amount := baseTotal.Mul(percent).Div(hundred)
	if amount.IsZero() {
		return nil
	}

	return &pricing.Adjustment{
		Kind:        types.AdjustmentKindUrgencySurcharge,
		Direction:   types.AdjustmentDirectionIncrease,
		Description: fmt.Sprintf("Urgency surcharge (%s)", urgency),
		Amount:      amount,
		Percentage:  lo.ToPtr(percent),
	}
}

// EvaluateTravelSurcharge returns the stepped travel fee, or nil within the
// free radius. Every started block beyond the radius is charged in full.
func (e *PricingEngine) EvaluateTravelSurcharge(distanceKm *decimal.Decimal) *pricing.Adjustment {
	if distanceKm == nil || distanceKm.LessThanOrEqual(e.policy.FreeTravelRadiusKm) {
		return nil
	}

	chargeableKm := distanceKm.Sub(e.policy.FreeTravelRadiusKm)
	blocks := chargeableKm.Div(e.policy.TravelBlockKm).Ceil()
	amount := blocks.Mul(e.policy.TravelBlockFee)
	if amount.IsZero() {
		return nil
	}

	return &pricing.Adjustment{
		Kind:      types.AdjustmentKindTravelSurcharge,
		Direction: types.AdjustmentDirectionIncrease,
		Description: fmt.Sprintf(
			"Travel surcharge: %s km beyond %s km radius",
			chargeableKm.String(), e.policy.FreeTravelRadiusKm.String(),
		),
		Amount: amount,
	}
}

// Aggregate runs every evaluator over the snapshot and folds the results
// into one calculation. The final total is floored at zero; the margin
// guard avoids dividing by a zero final total.
func (e *PricingEngine) Aggregate(
	pctx *pricing.Context,
	services []pricing.ServiceLine,
	parts []pricing.PartLine,
	snapshot *pricing.RuleSnapshot,
) (*pricing.Calculation, error) {
	if err := pctx.Validate(); err != nil {
		return nil, err
	}

	baseTotal := pricing.ServicesSubtotal(services).Add(pricing.PartsSubtotal(parts))

	adjustments := e.EvaluateBulkDiscounts(pctx, services, snapshot.BulkRules)
	if tierAdj := e.EvaluateTierDiscount(snapshot.Tier, baseTotal); tierAdj != nil {
		adjustments = append(adjustments, *tierAdj)
	}
	adjustments = append(adjustments, e.EvaluateSeasonalAdjustments(pctx.ScheduledDate, services, snapshot.SeasonalWindows)...)
	if urgencyAdj := e.EvaluateUrgencySurcharge(pctx.Urgency, baseTotal); urgencyAdj != nil {
		adjustments = append(adjustments, *urgencyAdj)
	}
	if travelAdj := e.EvaluateTravelSurcharge(pctx.DistanceFromBaseKm); travelAdj != nil {
		adjustments = append(adjustments, *travelAdj)
	}

	finalTotal := lo.Reduce(adjustments, func(acc decimal.Decimal, a pricing.Adjustment, _ int) decimal.Decimal {
		return acc.Add(a.SignedAmount())
	}, baseTotal)
	if finalTotal.IsNegative() {
		finalTotal = decimal.Zero
	}

	totalCosts := decimal.Zero
	for _, line := range services {
		totalCosts = totalCosts.Add(line.CostSubtotal())
	}
	for _, line := range parts {
		totalCosts = totalCosts.Add(line.CostSubtotal())
	}

	marginPercent := decimal.Zero
	if finalTotal.IsPositive() {
		marginPercent = finalTotal.Sub(totalCosts).Div(finalTotal).Mul(hundred)
	}

	return &pricing.Calculation{
		ID:                  types.GenerateUUIDWithPrefix(types.UUIDPrefixCalculation),
		ClientID:            pctx.ClientID,
		Currency:            e.policy.Currency,
		BaseTotal:           baseTotal,
		Adjustments:         adjustments,
		FinalTotal:          finalTotal,
		TotalCosts:          totalCosts,
		ProfitMarginPercent: marginPercent,
		CalculatedAt:        time.Now().UTC(),
	}, nil
}

// AnalyzeProfit computes the completed-job margin breakdown from realized
// revenue and actual labor hours.
func (e *PricingEngine) AnalyzeProfit(
	jobID string,
	revenue decimal.Decimal,
	services []pricing.ServiceLine,
	parts []pricing.PartLine,
	laborHours decimal.Decimal,
) *pricing.ProfitAnalysis {
	laborCosts := laborHours.Mul(e.policy.HourlyLaborRate)

	partsCosts := decimal.Zero
	for _, line := range parts {
		partsCosts = partsCosts.Add(line.CostSubtotal())
	}

	serviceCosts := decimal.Zero
	for _, line := range services {
		serviceCosts = serviceCosts.Add(line.CostSubtotal())
	}

	overheadCosts := revenue.Mul(e.policy.OverheadRate)
	totalCosts := laborCosts.Add(partsCosts).Add(serviceCosts).Add(overheadCosts)
	grossProfit := revenue.Sub(totalCosts)

	marginPercent := decimal.Zero
	if revenue.IsPositive() {
		marginPercent = grossProfit.Div(revenue).Mul(hundred)
	}

	return &pricing.ProfitAnalysis{
		JobID:               jobID,
		TotalRevenue:        revenue,
		LaborCosts:          laborCosts,
		PartsCosts:          partsCosts,
		ServiceCosts:        serviceCosts,
		OverheadCosts:       overheadCosts,
		TotalCosts:          totalCosts,
		GrossProfit:         grossProfit,
		ProfitMarginPercent: marginPercent,
	}
}
