package catalog

import (
	"context"
)

// Repository defines the interface for price catalog data access
type Repository interface {
	CreateService(ctx context.Context, service *ServicePriceEntry) error
	GetService(ctx context.Context, id string) (*ServicePriceEntry, error)
	ListActiveServices(ctx context.Context) ([]*ServicePriceEntry, error)
	GetServicesByIDs(ctx context.Context, ids []string) ([]*ServicePriceEntry, error)

	CreatePart(ctx context.Context, part *PartPriceEntry) error
	GetPart(ctx context.Context, id string) (*PartPriceEntry, error)
	ListActiveParts(ctx context.Context) ([]*PartPriceEntry, error)
	GetPartsByIDs(ctx context.Context, ids []string) ([]*PartPriceEntry, error)
}
