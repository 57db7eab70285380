package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"

	"github.com/chairflow/chairflow/internal/api"
	v1 "github.com/chairflow/chairflow/internal/api/v1"
	"github.com/chairflow/chairflow/internal/config"
	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/client"
	"github.com/chairflow/chairflow/internal/domain/job"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/postgres"
	"github.com/chairflow/chairflow/internal/repository"
	"github.com/chairflow/chairflow/internal/service"
	"github.com/chairflow/chairflow/internal/types"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			postgres.NewDB,

			repository.NewCatalogRepository,
			repository.NewBulkDiscountRepository,
			repository.NewTierRepository,
			repository.NewSeasonalRepository,
			repository.NewClientRepository,
			repository.NewJobRepository,

			service.NewPricingEngineFromConfig,
			newServiceParams,
			service.NewPricingService,
			service.NewJobService,
			service.NewProfitService,
			service.NewCatalogService,
			service.NewRuleService,
			service.NewClientService,

			v1.NewHealthHandler,
			v1.NewPricingHandler,
			v1.NewJobHandler,
			v1.NewCatalogHandler,
			v1.NewRuleHandler,
			v1.NewClientHandler,
			newHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

type repositoryParams struct {
	fx.In

	Catalog      catalog.Repository
	BulkDiscount bulkdiscount.Repository
	Tier         tier.Repository
	Seasonal     seasonal.Repository
	Client       client.Repository
	Job          job.Repository
}

func newServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	engine *service.PricingEngine,
	repos repositoryParams,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:           log,
		Config:           cfg,
		Engine:           engine,
		CatalogRepo:      repos.Catalog,
		BulkDiscountRepo: repos.BulkDiscount,
		TierRepo:         repos.Tier,
		SeasonalRepo:     repos.Seasonal,
		ClientRepo:       repos.Client,
		JobRepo:          repos.Job,
	}
}

func newHandlers(
	health *v1.HealthHandler,
	pricing *v1.PricingHandler,
	job *v1.JobHandler,
	catalog *v1.CatalogHandler,
	rule *v1.RuleHandler,
	client *v1.ClientHandler,
) api.Handlers {
	return api.Handlers{
		Health:  health,
		Pricing: pricing,
		Job:     job,
		Catalog: catalog,
		Rule:    rule,
		Client:  client,
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	db *sqlx.DB,
	log *logger.Logger,
) {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return db.Close()
		},
	})
}
