package types

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chairflow/chairflow/internal/errors"
)

// PricingPolicy carries every tunable business constant used by the pricing
// engine and the profit analyzer. Nothing in the engine reads a literal; the
// policy comes from configuration and can be swapped wholesale in tests.
type PricingPolicy struct {
	Currency string `json:"currency"`

	// Profit analysis
	HourlyLaborRate decimal.Decimal `json:"hourly_labor_rate"`
	OverheadRate    decimal.Decimal `json:"overhead_rate"` // fraction of revenue, e.g. 0.15

	// Urgency surcharges as a percent of base total
	UrgentSurchargePercent    decimal.Decimal `json:"urgent_surcharge_percent"`
	EmergencySurchargePercent decimal.Decimal `json:"emergency_surcharge_percent"`

	// Travel surcharge: flat fee per started block beyond the free radius
	FreeTravelRadiusKm decimal.Decimal `json:"free_travel_radius_km"`
	TravelBlockKm      decimal.Decimal `json:"travel_block_km"`
	TravelBlockFee     decimal.Decimal `json:"travel_block_fee"`

	BulkSelection BulkSelectionPolicy `json:"bulk_selection"`
}

// DefaultPricingPolicy returns the stock policy used when configuration does
// not override it.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		Currency:                  "ZAR",
		HourlyLaborRate:           decimal.NewFromInt(350),
		OverheadRate:              decimal.NewFromFloat(0.15),
		UrgentSurchargePercent:    decimal.NewFromInt(25),
		EmergencySurchargePercent: decimal.NewFromInt(50),
		FreeTravelRadiusKm:        decimal.NewFromInt(20),
		TravelBlockKm:             decimal.NewFromInt(10),
		TravelBlockFee:            decimal.NewFromInt(50),
		BulkSelection:             BulkSelectionCumulative,
	}
}

func (p PricingPolicy) Validate() error {
	if p.HourlyLaborRate.IsNegative() {
		return ierr.NewError("hourly labor rate cannot be negative").
			WithHint("hourly labor rate must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if p.OverheadRate.IsNegative() || p.OverheadRate.GreaterThan(decimal.NewFromInt(1)) {
		return ierr.NewError("overhead rate out of range").
			WithHint("overhead rate must be a fraction between 0 and 1").
			Mark(ierr.ErrValidation)
	}
	if p.UrgentSurchargePercent.IsNegative() || p.EmergencySurchargePercent.IsNegative() {
		return ierr.NewError("urgency surcharge cannot be negative").
			WithHint("urgency surcharges must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if p.FreeTravelRadiusKm.IsNegative() {
		return ierr.NewError("free travel radius cannot be negative").
			WithHint("free travel radius must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if !p.TravelBlockKm.IsPositive() {
		return ierr.NewError("travel block size must be positive").
			WithHint("travel block size must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if p.TravelBlockFee.IsNegative() {
		return ierr.NewError("travel block fee cannot be negative").
			WithHint("travel block fee must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if err := p.BulkSelection.Validate(); err != nil {
		return err
	}
	return nil
}
