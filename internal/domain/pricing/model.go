package pricing

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/catalog"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// Context is the situational input of one pricing request.
type Context struct {
	ClientID      string          `json:"client_id"`
	ChairCount    int             `json:"chair_count"`
	Urgency       types.Urgency   `json:"urgency"`
	ScheduledDate time.Time       `json:"scheduled_date"`
	// DistanceFromBaseKm is optional; nil means on-site travel is not charged.
	DistanceFromBaseKm *decimal.Decimal `json:"distance_from_base_km,omitempty"`
}

func (c *Context) Validate() error {
	if c.ClientID == "" {
		return ierr.NewError("client id is required").
			WithHint("pricing requires a client").
			Mark(ierr.ErrValidation)
	}
	if c.ChairCount <= 0 {
		return ierr.NewError("chair count must be positive").
			WithHint("a job must cover at least one chair").
			WithReportableDetails(map[string]any{"chair_count": c.ChairCount}).
			Mark(ierr.ErrValidation)
	}
	if err := c.Urgency.Validate(); err != nil {
		return err
	}
	if c.ScheduledDate.IsZero() {
		return ierr.NewError("scheduled date is required").
			WithHint("pricing requires the job's scheduled date").
			Mark(ierr.ErrValidation)
	}
	if c.DistanceFromBaseKm != nil && c.DistanceFromBaseKm.IsNegative() {
		return ierr.NewError("distance from base cannot be negative").
			WithHint("distance from base must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ServiceLine is one selected service with the number of chairs it is
// applied to. Catalog prices are per chair, so a six-chair clean is one
// line with quantity six.
type ServiceLine struct {
	Service  *catalog.ServicePriceEntry `json:"service"`
	Quantity int                        `json:"quantity"`
}

// Subtotal is the sell-price subtotal of the line.
func (l ServiceLine) Subtotal() decimal.Decimal {
	return l.Service.BasePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CostSubtotal is the cost-price subtotal of the line.
func (l ServiceLine) CostSubtotal() decimal.Decimal {
	return l.Service.CostPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PartLine is one selected part with its quantity.
type PartLine struct {
	Part     *catalog.PartPriceEntry `json:"part"`
	Quantity int                     `json:"quantity"`
}

func (l PartLine) Subtotal() decimal.Decimal {
	return l.Part.SellPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l PartLine) CostSubtotal() decimal.Decimal {
	return l.Part.CostPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ServicesSubtotal sums the sell-price subtotals of all service lines.
func ServicesSubtotal(lines []ServiceLine) decimal.Decimal {
	return lo.Reduce(lines, func(acc decimal.Decimal, l ServiceLine, _ int) decimal.Decimal {
		return acc.Add(l.Subtotal())
	}, decimal.Zero)
}

// PartsSubtotal sums the sell-price subtotals of all part lines.
func PartsSubtotal(lines []PartLine) decimal.Decimal {
	return lo.Reduce(lines, func(acc decimal.Decimal, l PartLine, _ int) decimal.Decimal {
		return acc.Add(l.Subtotal())
	}, decimal.Zero)
}

// CategoryCounts tallies service units per catalog category.
func CategoryCounts(lines []ServiceLine) map[types.ServiceCategory]int {
	counts := make(map[types.ServiceCategory]int)
	for _, l := range lines {
		counts[l.Service.Category] += l.Quantity
	}
	return counts
}

// CategorySubtotal sums the sell-price subtotal of service lines in the
// given category.
func CategorySubtotal(lines []ServiceLine, category types.ServiceCategory) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Service.Category == category {
			subtotal = subtotal.Add(l.Subtotal())
		}
	}
	return subtotal
}

// Adjustment is one contributing rule's effect on the price. Amount is
// always non-negative; Direction says which way it moves the total.
type Adjustment struct {
	Kind        types.AdjustmentKind      `json:"kind"`
	Direction   types.AdjustmentDirection `json:"direction"`
	Description string                    `json:"description"`
	Amount      decimal.Decimal           `json:"amount"`
	// Percentage is informational, set when the source rule was percentage based
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// SignedAmount folds the direction into the amount: positive raises the
// total, negative lowers it.
func (a Adjustment) SignedAmount() decimal.Decimal {
	if a.Direction == types.AdjustmentDirectionDecrease {
		return a.Amount.Neg()
	}
	return a.Amount
}

// Calculation is the engine's result for one pricing request. It is
// produced once and never mutated; repricing a job produces a new one.
type Calculation struct {
	ID       string `json:"id"`
	// JobID is assigned by the job-creation flow after persistence
	JobID    string `json:"job_id,omitempty"`
	ClientID string `json:"client_id"`
	Currency string `json:"currency"`

	BaseTotal   decimal.Decimal `json:"base_total"`
	Adjustments []Adjustment    `json:"adjustments"`
	FinalTotal  decimal.Decimal `json:"final_total"`

	TotalCosts          decimal.Decimal `json:"total_costs"`
	ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`

	CalculatedAt time.Time `json:"calculated_at"`
}

// TotalByDirection sums adjustment amounts moving the total the given way.
func (c *Calculation) TotalByDirection(direction types.AdjustmentDirection) decimal.Decimal {
	total := decimal.Zero
	for _, a := range c.Adjustments {
		if a.Direction == direction {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// ProfitAnalysis is the post-completion margin breakdown for a job.
type ProfitAnalysis struct {
	JobID               string          `json:"job_id"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	LaborCosts          decimal.Decimal `json:"labor_costs"`
	PartsCosts          decimal.Decimal `json:"parts_costs"`
	ServiceCosts        decimal.Decimal `json:"service_costs"`
	OverheadCosts       decimal.Decimal `json:"overhead_costs"`
	TotalCosts          decimal.Decimal `json:"total_costs"`
	GrossProfit         decimal.Decimal `json:"gross_profit"`
	ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
}
