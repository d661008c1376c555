package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/rmacedo/portal-pedidos-api/pkg/config"
)

// NewPool cria o pool de conexões PostgreSQL. O ping inicial tenta um número
// finito de vezes com backoff linear (cfg.ConnectRetries/ConnectBackoff) para
// cobrir a subida do banco em containers sem travar o bootstrap para sempre.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Codec NUMERIC/DECIMAL -> shopspring/decimal em todas as conexões do pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("criar pool: %w", err)
	}

	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}
	backoff := time.Duration(cfg.ConnectBackoff) * time.Second
	for attempt := 1; ; attempt++ {
		err = pool.Ping(ctx)
		if err == nil {
			return pool, nil
		}
		if attempt >= retries {
			break
		}
		wait := time.Duration(attempt) * backoff
		log.Warn().Err(err).
			Int("tentativa", attempt).
			Dur("espera", wait).
			Msg("banco indisponível; aguardando para tentar de novo")
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	pool.Close()
	return nil, fmt.Errorf("ping DB após %d tentativas: %w", retries, err)
}
