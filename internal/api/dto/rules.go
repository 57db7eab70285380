package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// CreateBulkDiscountRuleRequest adds a bulk discount rule
type CreateBulkDiscountRuleRequest struct {
	Name               string                  `json:"name" validate:"required"`
	AppliesTo          types.BulkDiscountScope `json:"applies_to" validate:"required"`
	MinimumQuantity    int                     `json:"minimum_quantity" validate:"required,min=1"`
	DiscountType       types.DiscountType      `json:"discount_type" validate:"required"`
	DiscountPercentage decimal.Decimal         `json:"discount_percentage,omitempty"`
	DiscountValue      decimal.Decimal         `json:"discount_value,omitempty"`
}

func (r *CreateBulkDiscountRuleRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a rule name").
			Mark(ierr.ErrValidation)
	}
	rule := r.ToRule()
	return rule.Validate()
}

// ToRule builds the domain model from the request
func (r *CreateBulkDiscountRuleRequest) ToRule() *bulkdiscount.Rule {
	return &bulkdiscount.Rule{
		Name:               r.Name,
		AppliesTo:          r.AppliesTo,
		MinimumQuantity:    r.MinimumQuantity,
		DiscountType:       r.DiscountType,
		DiscountPercentage: r.DiscountPercentage,
		DiscountValue:      r.DiscountValue,
		IsActive:           true,
	}
}

// BulkDiscountRuleResponse represents the response for bulk rule data
type BulkDiscountRuleResponse struct {
	*bulkdiscount.Rule
}

// ListBulkDiscountRulesResponse represents the response for listing bulk rules
type ListBulkDiscountRulesResponse struct {
	Rules      []*BulkDiscountRuleResponse `json:"rules"`
	TotalCount int                         `json:"total_count"`
}

// CreatePricingTierRequest adds a client loyalty tier
type CreatePricingTierRequest struct {
	Name               string           `json:"name" validate:"required"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	MinimumJobValue    *decimal.Decimal `json:"minimum_job_value,omitempty"`
}

func (r *CreatePricingTierRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a tier name").
			Mark(ierr.ErrValidation)
	}
	t := r.ToTier()
	return t.Validate()
}

// ToTier builds the domain model from the request
func (r *CreatePricingTierRequest) ToTier() *tier.PricingTier {
	return &tier.PricingTier{
		Name:               r.Name,
		DiscountPercentage: r.DiscountPercentage,
		MinimumJobValue:    r.MinimumJobValue,
	}
}

// AssignClientTierRequest links a client to a tier
type AssignClientTierRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	TierID   string `json:"tier_id" validate:"required"`
}

func (r *AssignClientTierRequest) Validate() error {
	if r.ClientID == "" || r.TierID == "" {
		return ierr.NewError("client_id and tier_id are required").
			WithHint("Please provide both the client and the tier").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PricingTierResponse represents the response for tier data
type PricingTierResponse struct {
	*tier.PricingTier
}

// ListPricingTiersResponse represents the response for listing tiers
type ListPricingTiersResponse struct {
	Tiers      []*PricingTierResponse `json:"tiers"`
	TotalCount int                    `json:"total_count"`
}

// TierAssignmentResponse represents the response for a tier assignment
type TierAssignmentResponse struct {
	*tier.Assignment
}

// CreateSeasonalWindowRequest adds a seasonal pricing window
type CreateSeasonalWindowRequest struct {
	Name            string                       `json:"name" validate:"required"`
	StartDate       time.Time                    `json:"start_date" validate:"required"`
	EndDate         time.Time                    `json:"end_date" validate:"required"`
	AppliesTo       types.SeasonalScope          `json:"applies_to" validate:"required"`
	ServiceIDs      []string                     `json:"service_ids,omitempty"`
	AdjustmentType  types.SeasonalAdjustmentType `json:"adjustment_type" validate:"required"`
	AdjustmentValue decimal.Decimal              `json:"adjustment_value"`
}

func (r *CreateSeasonalWindowRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a window name").
			Mark(ierr.ErrValidation)
	}
	w := r.ToWindow()
	return w.Validate()
}

// ToWindow builds the domain model from the request
func (r *CreateSeasonalWindowRequest) ToWindow() *seasonal.Window {
	return &seasonal.Window{
		Name:            r.Name,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		AppliesTo:       r.AppliesTo,
		ServiceIDs:      r.ServiceIDs,
		AdjustmentType:  r.AdjustmentType,
		AdjustmentValue: r.AdjustmentValue,
		IsActive:        true,
	}
}

// SeasonalWindowResponse represents the response for seasonal window data
type SeasonalWindowResponse struct {
	*seasonal.Window
}

// ListSeasonalWindowsResponse represents the response for listing windows
type ListSeasonalWindowsResponse struct {
	Windows    []*SeasonalWindowResponse `json:"windows"`
	TotalCount int                       `json:"total_count"`
}
