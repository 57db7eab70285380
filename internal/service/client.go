package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/domain/client"
	"github.com/chairflow/chairflow/internal/types"
)

// ClientService manages client accounts.
type ClientService interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context) (*dto.ListClientsResponse, error)
}

type clientService struct {
	ServiceParams
}

// NewClientService creates a new client service
func NewClientService(params ServiceParams) ClientService {
	return &clientService{ServiceParams: params}
}

func (s *clientService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient()
	c.ID = types.GenerateUUIDWithPrefix(types.UUIDPrefixClient)
	c.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) ListClients(ctx context.Context) (*dto.ListClientsResponse, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ListClientsResponse{
		Clients: lo.Map(clients, func(c *client.Client, _ int) *dto.ClientResponse {
			return &dto.ClientResponse{Client: c}
		}),
		TotalCount: len(clients),
	}, nil
}
