package catalog

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// ServicePriceEntry is a priced maintenance service from the catalog,
// e.g. "Deep clean upholstery" or "Replace gas lift".
type ServicePriceEntry struct {
	ID                       string                `db:"id" json:"id"`
	Name                     string                `db:"name" json:"name"`
	Category                 types.ServiceCategory `db:"category" json:"category"`
	BasePrice                decimal.Decimal       `db:"base_price" json:"base_price"`
	CostPrice                decimal.Decimal       `db:"cost_price" json:"cost_price"`
	IsActive                 bool                  `db:"is_active" json:"is_active"`
	EstimatedDurationMinutes int                   `db:"estimated_duration_minutes" json:"estimated_duration_minutes"`

	types.BaseModel
}

func (s *ServicePriceEntry) Validate() error {
	if s.Name == "" {
		return ierr.NewError("service name is required").
			WithHint("service name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if err := s.Category.Validate(); err != nil {
		return err
	}
	if s.BasePrice.IsNegative() || s.CostPrice.IsNegative() {
		return ierr.NewError("service prices cannot be negative").
			WithHint("base and cost price must be zero or positive").
			WithReportableDetails(map[string]any{
				"base_price": s.BasePrice.String(),
				"cost_price": s.CostPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if s.EstimatedDurationMinutes < 0 {
		return ierr.NewError("estimated duration cannot be negative").
			WithHint("estimated duration must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PartPriceEntry is a priced replacement part, e.g. castors or armrest pads.
type PartPriceEntry struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	SellPrice decimal.Decimal `db:"sell_price" json:"sell_price"`
	CostPrice decimal.Decimal `db:"cost_price" json:"cost_price"`
	IsActive  bool            `db:"is_active" json:"is_active"`

	types.BaseModel
}

func (p *PartPriceEntry) Validate() error {
	if p.Name == "" {
		return ierr.NewError("part name is required").
			WithHint("part name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if p.SellPrice.IsNegative() || p.CostPrice.IsNegative() {
		return ierr.NewError("part prices cannot be negative").
			WithHint("sell and cost price must be zero or positive").
			WithReportableDetails(map[string]any{
				"sell_price": p.SellPrice.String(),
				"cost_price": p.CostPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
