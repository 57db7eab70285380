package service

import (
	"github.com/chairflow/chairflow/internal/config"
	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/client"
	"github.com/chairflow/chairflow/internal/domain/job"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	"github.com/chairflow/chairflow/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Engine *PricingEngine

	// Repositories
	CatalogRepo      catalog.Repository
	BulkDiscountRepo bulkdiscount.Repository
	TierRepo         tier.Repository
	SeasonalRepo     seasonal.Repository
	ClientRepo       client.Repository
	JobRepo          job.Repository
}

// NewPricingEngineFromConfig builds the engine from the configured policy
func NewPricingEngineFromConfig(cfg *config.Configuration) *PricingEngine {
	return NewPricingEngine(cfg.Pricing.Policy())
}
