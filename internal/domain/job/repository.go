package job

import (
	"context"
)

// Repository defines the interface for job data access
type Repository interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, job *Job) error
	ListByClient(ctx context.Context, clientID string) ([]*Job, error)
}
