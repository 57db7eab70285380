package bulkdiscount

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

var hundred = decimal.NewFromInt(100)

// Rule is a quantity-threshold discount: once a job contains at least
// MinimumQuantity matching units, the rule's discount applies to the
// matching subtotal.
type Rule struct {
	ID                 string                  `db:"id" json:"id"`
	Name               string                  `db:"name" json:"name"`
	AppliesTo          types.BulkDiscountScope `db:"applies_to" json:"applies_to"`
	MinimumQuantity    int                     `db:"minimum_quantity" json:"minimum_quantity"`
	DiscountType       types.DiscountType      `db:"discount_type" json:"discount_type"`
	DiscountPercentage decimal.Decimal         `db:"discount_percentage" json:"discount_percentage"`
	DiscountValue      decimal.Decimal         `db:"discount_value" json:"discount_value"`
	IsActive           bool                    `db:"is_active" json:"is_active"`

	types.BaseModel
}

func (r *Rule) Validate() error {
	if err := r.AppliesTo.Validate(); err != nil {
		return err
	}
	if err := r.DiscountType.Validate(); err != nil {
		return err
	}
	if r.MinimumQuantity < 1 {
		return ierr.NewError("minimum quantity must be at least 1").
			WithHint("bulk rules require a minimum quantity of 1 or more").
			Mark(ierr.ErrValidation)
	}
	if r.DiscountPercentage.IsNegative() || r.DiscountPercentage.GreaterThan(hundred) {
		return ierr.NewError("discount percentage out of range").
			WithHint("discount percentage must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	if r.DiscountValue.IsNegative() {
		return ierr.NewError("discount value cannot be negative").
			WithHint("fixed discount value must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Qualifies reports whether the rule's quantity threshold is met.
// Scope "all" counts chairs on the job; category scopes count the selected
// services in that category.
func (r *Rule) Qualifies(chairCount int, categoryCounts map[types.ServiceCategory]int) bool {
	if !r.IsActive {
		return false
	}
	if r.AppliesTo == types.BulkScopeAll {
		return chairCount >= r.MinimumQuantity
	}
	return categoryCounts[r.AppliesTo.ServiceCategory()] >= r.MinimumQuantity
}

// DiscountFor computes the rule's discount amount over the applicable
// subtotal. A fixed amount contributes its full value even past the
// subtotal it matched on; only the aggregated final total is floored at
// zero. The result is never negative.
func (r *Rule) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch r.DiscountType {
	case types.DiscountTypePercentage:
		amount = subtotal.Mul(r.DiscountPercentage).Div(hundred)
	case types.DiscountTypeFixedAmount:
		amount = r.DiscountValue
	default:
		return decimal.Zero
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
