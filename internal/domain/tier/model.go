package tier

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

var hundred = decimal.NewFromInt(100)

// PricingTier is a loyalty classification granting a standing discount,
// e.g. bronze/silver/gold corporate accounts.
type PricingTier struct {
	ID                 string          `db:"id" json:"id"`
	Name               string          `db:"name" json:"name"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage" json:"discount_percentage"`
	// MinimumJobValue is an optional floor below which the tier discount
	// does not apply. Nil means no floor.
	MinimumJobValue *decimal.Decimal `db:"minimum_job_value" json:"minimum_job_value,omitempty"`

	types.BaseModel
}

func (t *PricingTier) Validate() error {
	if t.Name == "" {
		return ierr.NewError("tier name is required").
			WithHint("tier name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if t.DiscountPercentage.IsNegative() || t.DiscountPercentage.GreaterThan(hundred) {
		return ierr.NewError("tier discount percentage out of range").
			WithHint("discount percentage must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	if t.MinimumJobValue != nil && t.MinimumJobValue.IsNegative() {
		return ierr.NewError("minimum job value cannot be negative").
			WithHint("minimum job value must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AppliesTo reports whether the tier discount applies at the given job value.
func (t *PricingTier) AppliesTo(baseTotal decimal.Decimal) bool {
	if t.MinimumJobValue == nil {
		return true
	}
	return baseTotal.GreaterThanOrEqual(*t.MinimumJobValue)
}

// DiscountFor computes the tier discount over the base total, honoring the
// minimum-job-value floor. Returns zero when the tier does not apply.
func (t *PricingTier) DiscountFor(baseTotal decimal.Decimal) decimal.Decimal {
	if !t.AppliesTo(baseTotal) {
		return decimal.Zero
	}
	return baseTotal.Mul(t.DiscountPercentage).Div(hundred)
}

// Assignment links a client to their pricing tier. A client has at most one
// active assignment; no assignment means no tier discount.
type Assignment struct {
	ID       string `db:"id" json:"id"`
	ClientID string `db:"client_id" json:"client_id"`
	TierID   string `db:"tier_id" json:"tier_id"`

	types.BaseModel
}

func (a *Assignment) Validate() error {
	if a.ClientID == "" || a.TierID == "" {
		return ierr.NewError("client id and tier id are required").
			WithHint("tier assignments need both a client and a tier").
			Mark(ierr.ErrValidation)
	}
	return nil
}
