package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chairflow/chairflow/internal/domain/client"
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// CreateClientRequest registers a client account
type CreateClientRequest struct {
	Name               string           `json:"name" validate:"required"`
	Email              string           `json:"email" validate:"required,email"`
	Phone              string           `json:"phone,omitempty"`
	Address            string           `json:"address,omitempty"`
	DistanceFromBaseKm *decimal.Decimal `json:"distance_from_base_km,omitempty"`
}

func (r *CreateClientRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide the client's name").
			Mark(ierr.ErrValidation)
	}
	if r.Email == "" {
		return ierr.NewError("email is required").
			WithHint("Please provide the client's email").
			Mark(ierr.ErrValidation)
	}
	if r.DistanceFromBaseKm != nil && r.DistanceFromBaseKm.IsNegative() {
		return ierr.NewError("distance_from_base_km cannot be negative").
			WithHint("Please provide a zero or positive distance").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToClient builds the domain model from the request
func (r *CreateClientRequest) ToClient() *client.Client {
	return &client.Client{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		Address:            r.Address,
		DistanceFromBaseKm: r.DistanceFromBaseKm,
	}
}

// ClientResponse represents the response for client data
type ClientResponse struct {
	*client.Client
}

// ListClientsResponse represents the response for listing clients
type ListClientsResponse struct {
	Clients    []*ClientResponse `json:"clients"`
	TotalCount int               `json:"total_count"`
}
