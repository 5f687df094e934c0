// Package checkers holds readiness probes for the service's backing stores.
package checkers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// probeTimeout bounds a single dependency ping.
const probeTimeout = time.Second

type PostgresChecker struct {
	pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (c *PostgresChecker) Name() string { return "postgres" }

// Check pings the pool and confirms the schema is migrated.
func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := c.pool.Ping(ctx); err != nil {
		return err
	}
	var ok bool
	if err := c.pool.QueryRow(ctx, `SELECT to_regclass('public.slide_decks') IS NOT NULL`).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return errors.New("schema not migrated")
	}
	return nil
}
