package client

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/types"
)

// Client is a customer account: an office whose chairs we maintain.
type Client struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
	// DistanceFromBaseKm is the travel distance from the workshop, used as
	// the default for travel surcharges when a job does not override it.
	DistanceFromBaseKm *decimal.Decimal `db:"distance_from_base_km" json:"distance_from_base_km,omitempty"`

	types.BaseModel
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return ierr.NewError("client name is required").
			WithHint("client name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if c.Email == "" {
		return ierr.NewError("client email is required").
			WithHint("client email cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if c.DistanceFromBaseKm != nil && c.DistanceFromBaseKm.IsNegative() {
		return ierr.NewError("distance from base cannot be negative").
			WithHint("distance from base must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}
