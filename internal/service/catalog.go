package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/types"
)

// CatalogService manages the price catalog the admin portal edits.
type CatalogService interface {
	CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetService(ctx context.Context, id string) (*dto.ServiceResponse, error)
	ListServices(ctx context.Context) (*dto.ListServicesResponse, error)

	CreatePart(ctx context.Context, req *dto.CreatePartRequest) (*dto.PartResponse, error)
	ListParts(ctx context.Context) (*dto.ListPartsResponse, error)
}

type catalogService struct {
	ServiceParams
}

// NewCatalogService creates a new catalog service
func NewCatalogService(params ServiceParams) CatalogService {
	return &catalogService{ServiceParams: params}
}

func (s *catalogService) CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := req.ToService()
	entry.ID = types.GenerateUUIDWithPrefix(types.UUIDPrefixService)
	entry.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.CatalogRepo.CreateService(ctx, entry); err != nil {
		return nil, err
	}
	return &dto.ServiceResponse{ServicePriceEntry: entry}, nil
}

func (s *catalogService) GetService(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	entry, err := s.CatalogRepo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ServiceResponse{ServicePriceEntry: entry}, nil
}

func (s *catalogService) ListServices(ctx context.Context) (*dto.ListServicesResponse, error) {
	entries, err := s.CatalogRepo.ListActiveServices(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ListServicesResponse{
		Services: lo.Map(entries, func(e *catalog.ServicePriceEntry, _ int) *dto.ServiceResponse {
			return &dto.ServiceResponse{ServicePriceEntry: e}
		}),
		TotalCount: len(entries),
	}, nil
}

func (s *catalogService) CreatePart(ctx context.Context, req *dto.CreatePartRequest) (*dto.PartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := req.ToPart()
	entry.ID = types.GenerateUUIDWithPrefix(types.UUIDPrefixPart)
	entry.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.CatalogRepo.CreatePart(ctx, entry); err != nil {
		return nil, err
	}
	return &dto.PartResponse{PartPriceEntry: entry}, nil
}

func (s *catalogService) ListParts(ctx context.Context) (*dto.ListPartsResponse, error) {
	entries, err := s.CatalogRepo.ListActiveParts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ListPartsResponse{
		Parts: lo.Map(entries, func(e *catalog.PartPriceEntry, _ int) *dto.PartResponse {
			return &dto.PartResponse{PartPriceEntry: e}
		}),
		TotalCount: len(entries),
	}, nil
}
