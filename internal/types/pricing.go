package types

import (
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// Urgency represents how quickly a job must be attended to
type Urgency string

const (
	// UrgencyNormal is the default scheduling lane, no surcharge
	UrgencyNormal Urgency = "normal"
	// UrgencyUrgent is same-week service, surcharged
	UrgencyUrgent Urgency = "urgent"
	// UrgencyEmergency is same-day call-out, surcharged
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) Validate() error {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return nil
	default:
		return ierr.NewError("invalid urgency").
			WithHintf("urgency must be one of: %s, %s, %s", UrgencyNormal, UrgencyUrgent, UrgencyEmergency).
			Mark(ierr.ErrValidation)
	}
}

// ServiceCategory classifies catalog services for rule matching
type ServiceCategory string

const (
	ServiceCategoryCleaning ServiceCategory = "cleaning"
	ServiceCategoryRepair   ServiceCategory = "repair"
)

func (c ServiceCategory) Validate() error {
	switch c {
	case ServiceCategoryCleaning, ServiceCategoryRepair:
		return nil
	default:
		return ierr.NewError("invalid service category").
			WithHintf("category must be one of: %s, %s", ServiceCategoryCleaning, ServiceCategoryRepair).
			Mark(ierr.ErrValidation)
	}
}

// DiscountType represents the type of a discount (fixed amount or percentage)
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

func (t DiscountType) Validate() error {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixedAmount:
		return nil
	default:
		return ierr.NewError("invalid discount type").
			WithHintf("discount type must be one of: %s, %s", DiscountTypePercentage, DiscountTypeFixedAmount).
			Mark(ierr.ErrValidation)
	}
}

// BulkDiscountScope selects which services a bulk rule counts and discounts
type BulkDiscountScope string

const (
	// BulkScopeAll qualifies on chair count and discounts every service
	BulkScopeAll BulkDiscountScope = "all"
	// BulkScopeCleaning qualifies on cleaning-service count
	BulkScopeCleaning BulkDiscountScope = "cleaning"
	// BulkScopeRepair qualifies on repair-service count
	BulkScopeRepair BulkDiscountScope = "repair"
)

func (s BulkDiscountScope) Validate() error {
	switch s {
	case BulkScopeAll, BulkScopeCleaning, BulkScopeRepair:
		return nil
	default:
		return ierr.NewError("invalid bulk discount scope").
			WithHintf("applies_to must be one of: %s, %s, %s", BulkScopeAll, BulkScopeCleaning, BulkScopeRepair).
			Mark(ierr.ErrValidation)
	}
}

// ServiceCategory returns the catalog category a scoped rule matches against
func (s BulkDiscountScope) ServiceCategory() ServiceCategory {
	return ServiceCategory(s)
}

// BulkSelectionPolicy decides how multiple qualifying bulk rules combine.
// Every pricing code path (job creation and quote generation alike) uses the
// policy configured on PricingPolicy so the same inputs always price the same.
type BulkSelectionPolicy string

const (
	// BulkSelectionCumulative sums every qualifying rule's discount
	BulkSelectionCumulative BulkSelectionPolicy = "cumulative"
	// BulkSelectionBestOnly applies only the single largest discount
	BulkSelectionBestOnly BulkSelectionPolicy = "best_only"
)

func (p BulkSelectionPolicy) Validate() error {
	switch p {
	case BulkSelectionCumulative, BulkSelectionBestOnly:
		return nil
	default:
		return ierr.NewError("invalid bulk selection policy").
			WithHintf("policy must be one of: %s, %s", BulkSelectionCumulative, BulkSelectionBestOnly).
			Mark(ierr.ErrValidation)
	}
}

// SeasonalScope selects which services a seasonal window adjusts
type SeasonalScope string

const (
	SeasonalScopeAllServices      SeasonalScope = "all_services"
	SeasonalScopeSpecificServices SeasonalScope = "specific_services"
)

func (s SeasonalScope) Validate() error {
	switch s {
	case SeasonalScopeAllServices, SeasonalScopeSpecificServices:
		return nil
	default:
		return ierr.NewError("invalid seasonal scope").
			WithHintf("applies_to must be one of: %s, %s", SeasonalScopeAllServices, SeasonalScopeSpecificServices).
			Mark(ierr.ErrValidation)
	}
}

// SeasonalAdjustmentType represents how a seasonal window's value is applied
type SeasonalAdjustmentType string

const (
	SeasonalAdjustmentPercentage SeasonalAdjustmentType = "percentage"
	SeasonalAdjustmentFixed      SeasonalAdjustmentType = "fixed"
)

func (t SeasonalAdjustmentType) Validate() error {
	switch t {
	case SeasonalAdjustmentPercentage, SeasonalAdjustmentFixed:
		return nil
	default:
		return ierr.NewError("invalid seasonal adjustment type").
			WithHintf("adjustment type must be one of: %s, %s", SeasonalAdjustmentPercentage, SeasonalAdjustmentFixed).
			Mark(ierr.ErrValidation)
	}
}

// AdjustmentKind identifies which rule family produced an adjustment
type AdjustmentKind string

const (
	AdjustmentKindBulkDiscount     AdjustmentKind = "bulk_discount"
	AdjustmentKindTierDiscount     AdjustmentKind = "tier_discount"
	AdjustmentKindUrgencySurcharge AdjustmentKind = "urgency_surcharge"
	AdjustmentKindSeasonal         AdjustmentKind = "seasonal"
	AdjustmentKindTravelSurcharge  AdjustmentKind = "travel_surcharge"
)

// AdjustmentDirection makes the aggregator arithmetic explicit: amounts are
// always non-negative and the direction says whether they add to or subtract
// from the base total.
type AdjustmentDirection string

const (
	AdjustmentDirectionIncrease AdjustmentDirection = "increase"
	AdjustmentDirectionDecrease AdjustmentDirection = "decrease"
)

// JobStatus tracks a job through its lifecycle
type JobStatus string

const (
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Validate() error {
	switch s {
	case JobStatusScheduled, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return nil
	default:
		return ierr.NewError("invalid job status").
			WithHint("unknown job status").
			Mark(ierr.ErrValidation)
	}
}
