package client

import (
	"context"
)

// Repository defines the interface for client data access
type Repository interface {
	Create(ctx context.Context, client *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
}
