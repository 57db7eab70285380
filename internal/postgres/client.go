package postgres

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/chairflow/chairflow/internal/config"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
)

// NewDB opens the configured postgres connection pool and verifies it with
// a ping.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"port", cfg.Postgres.Port,
		"dbname", cfg.Postgres.DBName,
	)
	return db, nil
}
