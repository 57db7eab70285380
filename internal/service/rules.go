package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	"github.com/chairflow/chairflow/internal/types"
)

// RuleService manages the rule tables the pricing engine reads: bulk
// discount rules, pricing tiers and assignments, seasonal windows.
type RuleService interface {
	CreateBulkRule(ctx context.Context, req *dto.CreateBulkDiscountRuleRequest) (*dto.BulkDiscountRuleResponse, error)
	ListBulkRules(ctx context.Context) (*dto.ListBulkDiscountRulesResponse, error)

	CreateTier(ctx context.Context, req *dto.CreatePricingTierRequest) (*dto.PricingTierResponse, error)
	ListTiers(ctx context.Context) (*dto.ListPricingTiersResponse, error)
	AssignClientTier(ctx context.Context, req *dto.AssignClientTierRequest) (*dto.TierAssignmentResponse, error)

	CreateSeasonalWindow(ctx context.Context, req *dto.CreateSeasonalWindowRequest) (*dto.SeasonalWindowResponse, error)
	ListSeasonalWindows(ctx context.Context) (*dto.ListSeasonalWindowsResponse, error)
}

type ruleService struct {
	ServiceParams
}

// NewRuleService creates a new rule service
func NewRuleService(params ServiceParams) RuleService {
	return &ruleService{ServiceParams: params}
}

func (s *ruleService) CreateBulkRule(ctx context.Context, req *dto.CreateBulkDiscountRuleRequest) (*dto.BulkDiscountRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rule := req.ToRule()
	rule.ID = types.GenerateUUIDWithPrefix(types.UUIDPrefixBulkRule)
	rule.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.BulkDiscountRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return &dto.BulkDiscountRuleResponse{Rule: rule}, nil
}

func (s *ruleService) ListBulkRules(ctx context.Context) (*dto.ListBulkDiscountRulesResponse, error) {
	rules, err := s.BulkDiscountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ListBulkDiscountRulesResponse{
		Rules: lo.Map(rules, func(r *bulkdiscount.Rule, _ int) *dto.BulkDiscountRuleResponse {
			return &dto.BulkDiscountRuleResponse{Rule: r}
		}),
		TotalCount: len(rules),
	}, nil
}

func (s *ruleService) CreateTier(ctx context.Context, req *dto.CreatePricingTierRequest) (*dto.PricingTierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := req.ToTier()
	t.ID = types.GenerateUUIDWithPrefix(types.UUIDPrefixTier)
	t.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.TierRepo.CreateTier(ctx, t); err != nil {
		return nil, err
	}
	return &dto.PricingTierResponse{PricingTier: t}, nil
}

func (s *ruleService) ListTiers(ctx context.Context) (*dto.ListPricingTiersResponse, error) {
	tiers, err := s.TierRepo.ListTiers(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ListPricingTiersResponse{
		Tiers: lo.Map(tiers, func(t *tier.PricingTier, _ int) *dto.PricingTierResponse {
			return &dto.PricingTierResponse{PricingTier: t}
		}),
		TotalCount: len(tiers),
	}, nil
}

func (s *ruleService) AssignClientTier(ctx context.Context, req *dto.AssignClientTierRequest) (*dto.TierAssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Both sides must exist before linking them
	if _, err := s.ClientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.TierRepo.GetTier(ctx, req.TierID); err != nil {
		return nil, err
	}

	assignment := &tier.Assignment{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixTierAssignment),
		ClientID:  req.ClientID,
		TierID:    req.TierID,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if err := s.TierRepo.AssignClient(ctx, assignment); err != nil {
		return nil, err
	}
	return &dto.TierAssignmentResponse{Assignment: assignment}, nil
}

func (s *ruleService) CreateSeasonalWindow(ctx context.Context, req *dto.CreateSeasonalWindowRequest) (*dto.SeasonalWindowResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w := req.ToWindow()
	w.ID = types.GenerateUUIDWithPrefix(types.UUIDPrefixSeasonalWindow)
	w.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.SeasonalRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return &dto.SeasonalWindowResponse{Window: w}, nil
}

func (s *ruleService) ListSeasonalWindows(ctx context.Context) (*dto.ListSeasonalWindowsResponse, error) {
	windows, err := s.SeasonalRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ListSeasonalWindowsResponse{
		Windows: lo.Map(windows, func(w *seasonal.Window, _ int) *dto.SeasonalWindowResponse {
			return &dto.SeasonalWindowResponse{Window: w}
		}),
		TotalCount: len(windows),
	}, nil
}
