package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/catalog"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// CreateServiceRequest adds a service to the price catalog
type CreateServiceRequest struct {
	Name                     string                `json:"name" validate:"required"`
	Category                 types.ServiceCategory `json:"category" validate:"required"`
	BasePrice                decimal.Decimal       `json:"base_price"`
	CostPrice                decimal.Decimal       `json:"cost_price"`
	EstimatedDurationMinutes int                   `json:"estimated_duration_minutes,omitempty"`
}

func (r *CreateServiceRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a service name").
			Mark(ierr.ErrValidation)
	}
	if err := r.Category.Validate(); err != nil {
		return err
	}
	if r.BasePrice.IsNegative() || r.CostPrice.IsNegative() {
		return ierr.NewError("prices cannot be negative").
			WithHint("Base and cost price must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if r.EstimatedDurationMinutes < 0 {
		return ierr.NewError("estimated duration cannot be negative").
			WithHint("Estimated duration must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToService builds the domain model from the request
func (r *CreateServiceRequest) ToService() *catalog.ServicePriceEntry {
	return &catalog.ServicePriceEntry{
		Name:                     r.Name,
		Category:                 r.Category,
		BasePrice:                r.BasePrice,
		CostPrice:                r.CostPrice,
		IsActive:                 true,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
	}
}

// CreatePartRequest adds a replacement part to the price catalog
type CreatePartRequest struct {
	Name      string          `json:"name" validate:"required"`
	SellPrice decimal.Decimal `json:"sell_price"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

func (r *CreatePartRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a part name").
			Mark(ierr.ErrValidation)
	}
	if r.SellPrice.IsNegative() || r.CostPrice.IsNegative() {
		return ierr.NewError("prices cannot be negative").
			WithHint("Sell and cost price must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPart builds the domain model from the request
func (r *CreatePartRequest) ToPart() *catalog.PartPriceEntry {
	return &catalog.PartPriceEntry{
		Name:      r.Name,
		SellPrice: r.SellPrice,
		CostPrice: r.CostPrice,
		IsActive:  true,
	}
}

// ServiceResponse represents the response for service catalog data
type ServiceResponse struct {
	*catalog.ServicePriceEntry
}

// PartResponse represents the response for part catalog data
type PartResponse struct {
	*catalog.PartPriceEntry
}

// ListServicesResponse represents the response for listing services
type ListServicesResponse struct {
	Services   []*ServiceResponse `json:"services"`
	TotalCount int                `json:"total_count"`
}

// ListPartsResponse represents the response for listing parts
type ListPartsResponse struct {
	Parts      []*PartResponse `json:"parts"`
	TotalCount int             `json:"total_count"`
}
