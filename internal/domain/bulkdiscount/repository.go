package bulkdiscount

import (
	"context"
)

// Repository defines the interface for bulk discount rule data access
type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	Get(ctx context.Context, id string) (*Rule, error)
	ListActive(ctx context.Context) ([]*Rule, error)
}
