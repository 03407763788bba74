// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hr-assistant/internal/common/config"
	apperrors "hr-assistant/internal/common/errors"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the pool the collaborator stores read from.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens the pool without dialing; call Ping to verify reachability.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// ConnectPostgres opens the pool and pings it with backoff until it answers.
// Exhausted retries surface as DATABASE_CONNECTION_FAILED.
func ConnectPostgres(ctx context.Context, cfg config.PostgresConfig, policy RetryPolicy, log Logger) (*PostgresClient, error) {
	client, err := NewPostgres(cfg)
	if err != nil {
		return nil, err
	}

	err = RetryWithBackoff(ctx, policy, log, "postgres connect", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	})
	if err != nil {
		_ = client.Close()
		return nil, apperrors.NewDatabaseConnectionFailedError(err)
	}
	return client, nil
}
