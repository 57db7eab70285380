package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/pricing"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// ServiceSelectionRequest selects one catalog service for a job. Quantity
// is the number of chairs the service covers; zero means every chair on
// the job.
type ServiceSelectionRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
	Quantity  int    `json:"quantity,omitempty"`
}

// PartSelectionRequest selects one replacement part for a job.
type PartSelectionRequest struct {
	PartID   string `json:"part_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CalculatePriceRequest prices a prospective job without persisting it.
type CalculatePriceRequest struct {
	ClientID           string                    `json:"client_id" validate:"required"`
	ChairCount         int                       `json:"chair_count" validate:"required,min=1"`
	Urgency            types.Urgency             `json:"urgency"`
	ScheduledDate      time.Time                 `json:"scheduled_date" validate:"required"`
	DistanceFromBaseKm *decimal.Decimal          `json:"distance_from_base_km,omitempty"`
	Services           []ServiceSelectionRequest `json:"services" validate:"required,min=1"`
	Parts              []PartSelectionRequest    `json:"parts,omitempty"`
}

func (r *CalculatePriceRequest) Validate() error {
	if r.ClientID == "" {
		return ierr.NewError("client_id is required").
			WithHint("Please provide the client to price for").
			Mark(ierr.ErrValidation)
	}
	if r.ChairCount <= 0 {
		return ierr.NewError("chair_count must be positive").
			WithHint("Please provide the number of chairs on the job").
			Mark(ierr.ErrValidation)
	}
	if r.Urgency == "" {
		r.Urgency = types.UrgencyNormal
	}
	if err := r.Urgency.Validate(); err != nil {
		return err
	}
	if r.ScheduledDate.IsZero() {
		return ierr.NewError("scheduled_date is required").
			WithHint("Please provide the job's scheduled date").
			Mark(ierr.ErrValidation)
	}
	if r.DistanceFromBaseKm != nil && r.DistanceFromBaseKm.IsNegative() {
		return ierr.NewError("distance_from_base_km cannot be negative").
			WithHint("Please provide a zero or positive travel distance").
			Mark(ierr.ErrValidation)
	}
	if len(r.Services) == 0 {
		return ierr.NewError("at least one service is required").
			WithHint("Please select at least one service").
			Mark(ierr.ErrValidation)
	}
	for _, s := range r.Services {
		if s.ServiceID == "" {
			return ierr.NewError("service_id is required").
				WithHint("Every selected service needs an id").
				Mark(ierr.ErrValidation)
		}
		if s.Quantity < 0 {
			return ierr.NewError("service quantity cannot be negative").
				WithHint("Service quantities must be zero (all chairs) or positive").
				Mark(ierr.ErrValidation)
		}
	}
	for _, p := range r.Parts {
		if p.PartID == "" || p.Quantity <= 0 {
			return ierr.NewError("invalid part selection").
				WithHint("Every selected part needs an id and a positive quantity").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ToPricingContext converts the request's situational fields.
func (r *CalculatePriceRequest) ToPricingContext() *pricing.Context {
	return &pricing.Context{
		ClientID:           r.ClientID,
		ChairCount:         r.ChairCount,
		Urgency:            r.Urgency,
		ScheduledDate:      r.ScheduledDate,
		DistanceFromBaseKm: r.DistanceFromBaseKm,
	}
}

// PriceCalculationResponse wraps the engine's calculation.
type PriceCalculationResponse struct {
	*pricing.Calculation
	// DegradedRuleTables lists rule tables that could not be fetched; the
	// price was computed without their adjustments.
	DegradedRuleTables []pricing.RuleTable `json:"degraded_rule_tables,omitempty"`
}

// ProfitAnalysisResponse wraps a completed job's margin breakdown.
type ProfitAnalysisResponse struct {
	*pricing.ProfitAnalysis
}
