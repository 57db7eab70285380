package seasonal

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

var hundred = decimal.NewFromInt(100)

// Window is a date-bounded pricing rule. AdjustmentValue carries its own
// sign: positive raises the price (peak season), negative lowers it
// (winter promotion).
type Window struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`

	AppliesTo  types.SeasonalScope `db:"applies_to" json:"applies_to"`
	ServiceIDs []string            `db:"service_ids" json:"service_ids,omitempty"`

	AdjustmentType  types.SeasonalAdjustmentType `db:"adjustment_type" json:"adjustment_type"`
	AdjustmentValue decimal.Decimal              `db:"adjustment_value" json:"adjustment_value"`
	IsActive        bool                         `db:"is_active" json:"is_active"`

	types.BaseModel
}

func (w *Window) Validate() error {
	if w.Name == "" {
		return ierr.NewError("window name is required").
			WithHint("seasonal window name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if err := w.AppliesTo.Validate(); err != nil {
		return err
	}
	if err := w.AdjustmentType.Validate(); err != nil {
		return err
	}
	if w.EndDate.Before(w.StartDate) {
		return ierr.NewError("window end date before start date").
			WithHint("end date must not be before start date").
			Mark(ierr.ErrValidation)
	}
	if w.AppliesTo == types.SeasonalScopeSpecificServices && len(w.ServiceIDs) == 0 {
		return ierr.NewError("specific-service window without service ids").
			WithHint("windows scoped to specific services must list at least one service").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Contains reports whether the scheduled date falls inside the window.
// Both boundaries are inclusive and only the calendar date matters.
func (w *Window) Contains(scheduled time.Time) bool {
	day := toDate(scheduled)
	return !day.Before(toDate(w.StartDate)) && !day.After(toDate(w.EndDate))
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AppliesToService reports whether the window adjusts the given service.
func (w *Window) AppliesToService(serviceID string) bool {
	if w.AppliesTo == types.SeasonalScopeAllServices {
		return true
	}
	return lo.Contains(w.ServiceIDs, serviceID)
}

// AdjustmentFor computes the signed adjustment over the applicable subtotal.
func (w *Window) AdjustmentFor(subtotal decimal.Decimal) decimal.Decimal {
	switch w.AdjustmentType {
	case types.SeasonalAdjustmentPercentage:
		return subtotal.Mul(w.AdjustmentValue).Div(hundred)
	case types.SeasonalAdjustmentFixed:
		return w.AdjustmentValue
	default:
		return decimal.Zero
	}
}
