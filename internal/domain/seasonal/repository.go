package seasonal

import (
	"context"
)

// Repository defines the interface for seasonal pricing window data access
type Repository interface {
	Create(ctx context.Context, window *Window) error
	Get(ctx context.Context, id string) (*Window, error)
	ListActive(ctx context.Context) ([]*Window, error)
}
