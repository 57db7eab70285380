package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/client"
	"github.com/chairflow/chairflow/internal/domain/job"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/repository/postgres"
)

// NewCatalogRepository creates a new price catalog repository
func NewCatalogRepository(db *sqlx.DB, log *logger.Logger) catalog.Repository {
	return postgres.NewCatalogRepository(db, log)
}

// NewBulkDiscountRepository creates a new bulk discount rule repository
func NewBulkDiscountRepository(db *sqlx.DB, log *logger.Logger) bulkdiscount.Repository {
	return postgres.NewBulkDiscountRepository(db, log)
}

// NewTierRepository creates a new pricing tier repository
func NewTierRepository(db *sqlx.DB, log *logger.Logger) tier.Repository {
	return postgres.NewTierRepository(db, log)
}

// NewSeasonalRepository creates a new seasonal window repository
func NewSeasonalRepository(db *sqlx.DB, log *logger.Logger) seasonal.Repository {
	return postgres.NewSeasonalRepository(db, log)
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sqlx.DB, log *logger.Logger) client.Repository {
	return postgres.NewClientRepository(db, log)
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sqlx.DB, log *logger.Logger) job.Repository {
	return postgres.NewJobRepository(db, log)
}
