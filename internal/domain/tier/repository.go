package tier

import (
	"context"
)

// Repository defines the interface for pricing tier data access
type Repository interface {
	CreateTier(ctx context.Context, tier *PricingTier) error
	GetTier(ctx context.Context, id string) (*PricingTier, error)
	ListTiers(ctx context.Context) ([]*PricingTier, error)

	AssignClient(ctx context.Context, assignment *Assignment) error
	// GetAssignmentByClient returns the client's active assignment, or a
	// not-found error when the client has no tier.
	GetAssignmentByClient(ctx context.Context, clientID string) (*Assignment, error)
}
