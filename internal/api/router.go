package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/chairflow/chairflow/internal/api/v1"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/rest/middleware"
)

// Handlers collects every route handler the router mounts.
type Handlers struct {
	Health  *v1.HealthHandler
	Pricing *v1.PricingHandler
	Job     *v1.JobHandler
	Catalog *v1.CatalogHandler
	Rule    *v1.RuleHandler
	Client  *v1.ClientHandler
}

// NewRouter builds the gin engine with middleware and all v1 routes.
func NewRouter(handlers Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(),
		middleware.ErrorHandler(log),
	)

	router.GET("/health", handlers.Health.Health)

	routerV1 := router.Group("/v1")

	pricing := routerV1.Group("/pricing")
	{
		pricing.POST("/calculate", handlers.Pricing.CalculatePrice)
		pricing.POST("/preview", handlers.Pricing.PreviewPrice)
	}

	jobs := routerV1.Group("/jobs")
	{
		jobs.POST("", handlers.Job.CreateJob)
		jobs.GET("/:id", handlers.Job.GetJob)
		jobs.POST("/:id/complete", handlers.Job.CompleteJob)
		jobs.POST("/:id/reprice", handlers.Job.RepriceJob)
		jobs.GET("/:id/profit", handlers.Job.GetJobProfit)
	}

	catalog := routerV1.Group("/catalog")
	{
		catalog.POST("/services", handlers.Catalog.CreateService)
		catalog.GET("/services", handlers.Catalog.ListServices)
		catalog.GET("/services/:id", handlers.Catalog.GetService)
		catalog.POST("/parts", handlers.Catalog.CreatePart)
		catalog.GET("/parts", handlers.Catalog.ListParts)
	}

	rules := routerV1.Group("/rules")
	{
		rules.POST("/bulk-discounts", handlers.Rule.CreateBulkRule)
		rules.GET("/bulk-discounts", handlers.Rule.ListBulkRules)
		rules.POST("/tiers", handlers.Rule.CreateTier)
		rules.GET("/tiers", handlers.Rule.ListTiers)
		rules.POST("/tiers/assignments", handlers.Rule.AssignClientTier)
		rules.POST("/seasonal-windows", handlers.Rule.CreateSeasonalWindow)
		rules.GET("/seasonal-windows", handlers.Rule.ListSeasonalWindows)
	}

	clients := routerV1.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.ListClients)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.GET("/:id/jobs", handlers.Client.ListClientJobs)
	}

	return router
}
